package courseService

import (
	"errors"
	"math"
	"strings"
	"time"

	courseModels "lms/models/course"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProgressSummary is the result of recomputing a user's course progress
type ProgressSummary struct {
	CourseID          uint       `json:"course_id"`
	TotalContents     int        `json:"total_contents"`
	CompletedContents int        `json:"completed_contents"`
	Percent           int        `json:"percent"`
	CompletedAt       *time.Time `json:"completed_at"`
}

// CompletionState is returned by completion mutations
type CompletionState struct {
	ContentID uint            `json:"content_id"`
	Completed bool            `json:"completed"`
	Summary   ProgressSummary `json:"summary"`
}

// ToggleCompletion flips the completion mark for (user, content): an existing
// progress row is removed, a missing one is created with CompletedAt = now.
// The enrollment must already exist; the course progress is recomputed in the
// same transaction.
func ToggleCompletion(db *gorm.DB, userID, contentID uint) (*CompletionState, error) {
	var content courseModels.Content
	err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", contentID, false, true).First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	state := &CompletionState{ContentID: contentID}
	err = db.Transaction(func(tx *gorm.DB) error {
		var row courseModels.UserProgress
		err := tx.Where("user_id = ? AND content_id = ?", userID, contentID).First(&row).Error
		switch {
		case err == nil:
			// Hard delete so the (user, content) unique index stays free for
			// the next toggle.
			if err := tx.Unscoped().Delete(&row).Error; err != nil {
				return err
			}
			state.Completed = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			now := time.Now()
			row = courseModels.UserProgress{
				UserID:      userID,
				CourseID:    content.CourseID,
				ContentID:   contentID,
				CompletedAt: &now,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			state.Completed = true
		default:
			return err
		}

		summary, err := RecomputeProgress(tx, userID, content.CourseID)
		if err != nil {
			return err
		}
		state.Summary = *summary
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// RecomputeProgress recounts completed contents for (user, course) and writes
// percent and completion timestamp onto the enrollment. Every mutation path
// that can change a progress row converges here so the stored numbers never
// drift from the rows.
func RecomputeProgress(db *gorm.DB, userID, courseID uint) (*ProgressSummary, error) {
	var enrollment courseModels.Enrollment
	err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotEnrolled
	}
	if err != nil {
		return nil, err
	}

	tree, err := LoadCourseTree(db, courseID)
	if err != nil {
		return nil, err
	}
	contents := OrderedContents(tree)
	total := len(contents)

	var done int64
	if total > 0 {
		contentIDs := make([]uint, len(contents))
		for i, content := range contents {
			contentIDs[i] = content.ID
		}
		if err := db.Model(&courseModels.UserProgress{}).
			Where("user_id = ? AND content_id IN ? AND completed_at IS NOT NULL", userID, contentIDs).
			Count(&done).Error; err != nil {
			return nil, err
		}
	}

	percent := 0
	if total > 0 {
		percent = int(math.Round(float64(done) * 100 / float64(total)))
	}

	enrollment.Progress = percent
	if total > 0 && int(done) == total {
		if enrollment.CompletedAt == nil {
			now := time.Now()
			enrollment.CompletedAt = &now
		}
		enrollment.Status = "COMPLETED"
	} else {
		// A course with no content never auto-completes.
		enrollment.CompletedAt = nil
		if done > 0 {
			enrollment.Status = "IN_PROGRESS"
		} else {
			enrollment.Status = "ENROLLED"
		}
	}

	if err := db.Save(&enrollment).Error; err != nil {
		return nil, err
	}

	return &ProgressSummary{
		CourseID:          courseID,
		TotalContents:     total,
		CompletedContents: int(done),
		Percent:           percent,
		CompletedAt:       enrollment.CompletedAt,
	}, nil
}

// ApplyScormStatus stores the SCORM player state blob for (user, content) and
// marks the content complete when the blob reports a completed/passed lesson
// status. Completion is never revoked by a later blob.
func ApplyScormStatus(db *gorm.DB, userID, contentID uint, data map[string]interface{}) (*CompletionState, error) {
	var content courseModels.Content
	err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", contentID, false, true).First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	state := &CompletionState{ContentID: contentID}
	err = db.Transaction(func(tx *gorm.DB) error {
		var row courseModels.UserProgress
		err := tx.Where("user_id = ? AND content_id = ?", userID, contentID).First(&row).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = courseModels.UserProgress{
				UserID:    userID,
				CourseID:  content.CourseID,
				ContentID: contentID,
				Data:      datatypes.JSONMap(data),
			}
			if scormReportsComplete(data) {
				now := time.Now()
				row.CompletedAt = &now
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		case err == nil:
			row.Data = datatypes.JSONMap(data)
			if row.CompletedAt == nil && scormReportsComplete(data) {
				now := time.Now()
				row.CompletedAt = &now
			}
			if err := tx.Save(&row).Error; err != nil {
				return err
			}
		default:
			return err
		}
		state.Completed = row.CompletedAt != nil

		summary, err := RecomputeProgress(tx, userID, content.CourseID)
		if err != nil {
			return err
		}
		state.Summary = *summary
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// scormReportsComplete inspects the two status keys SCORM 1.2 and 2004
// players write.
func scormReportsComplete(data map[string]interface{}) bool {
	for _, key := range []string{"cmi.core.lesson_status", "cmi.completion_status"} {
		value, ok := data[key].(string)
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "completed", "passed":
			return true
		}
	}
	return false
}
