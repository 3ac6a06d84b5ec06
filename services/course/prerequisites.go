package courseService

import (
	"errors"

	"lms/models"
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// MissingPrerequisites returns the direct prerequisites of the course the
// user has not completed yet. Only direct prerequisites are checked, never
// transitively, so prerequisite cycles cannot loop.
func MissingPrerequisites(db *gorm.DB, userID, courseID uint) ([]courseModels.Course, error) {
	var course courseModels.Course
	err := db.Preload("Prerequisites", "is_deleted = ?", false).
		Where("id = ? AND is_deleted = ?", courseID, false).
		First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	missing := []courseModels.Course{}
	for _, prerequisite := range course.Prerequisites {
		var enrollment courseModels.Enrollment
		err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ? AND completed_at IS NOT NULL",
			userID, prerequisite.ID, false).First(&enrollment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			missing = append(missing, *prerequisite)
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	return missing, nil
}

// CanEnroll reports whether the user may enroll, along with the prerequisites
// still blocking them.
func CanEnroll(db *gorm.DB, userID, courseID uint) (bool, []courseModels.Course, error) {
	missing, err := MissingPrerequisites(db, userID, courseID)
	if err != nil {
		return false, nil, err
	}
	return len(missing) == 0, missing, nil
}

// CanAccessCourse checks content access for a user: an active enrollment and
// no missing prerequisites. Administrators bypass both checks.
func CanAccessCourse(db *gorm.DB, user *models.User, courseID uint) error {
	if user.IsAdmin() {
		return nil
	}

	var enrollment courseModels.Enrollment
	err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotEnrolled
	}
	if err != nil {
		return err
	}

	missing, err := MissingPrerequisites(db, user.ID, courseID)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return ErrPrerequisitesPending
	}
	return nil
}
