package courseService

import (
	"errors"
	"fmt"
	"time"

	courseModels "lms/models/course"
	"lms/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newCertificateNumber is swappable in tests to force number collisions.
var newCertificateNumber = utils.GenerateCertificateNumber

// IssueOrGet returns the certificate for (user, course), creating it on
// first call. The enrollment must be completed. Issuance is permanent: once a
// row exists its number and verification id are returned unchanged forever.
// The boolean result reports whether this call created the row.
func IssueOrGet(db *gorm.DB, userID, courseID uint) (*courseModels.Certificate, bool, error) {
	var enrollment courseModels.Enrollment
	err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, ErrNotEnrolled
	}
	if err != nil {
		return nil, false, err
	}
	if enrollment.CompletedAt == nil {
		return nil, false, ErrCourseNotCompleted
	}

	var certificate courseModels.Certificate
	err = db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&certificate).Error
	if err == nil {
		return &certificate, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	// The human-readable number is generated independently of the
	// verification id, so a number collision just means trying again. A
	// (user, course) collision means a concurrent request already created
	// the row, so return theirs.
	for i := 0; i < 5; i++ {
		certificate = courseModels.Certificate{
			UserID:            userID,
			CourseID:          courseID,
			VerificationID:    uuid.NewString(),
			CertificateNumber: newCertificateNumber(),
			IssuedAt:          time.Now(),
		}
		createErr := db.Create(&certificate).Error
		if createErr == nil {
			return &certificate, true, nil
		}

		var existing courseModels.Certificate
		if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; err == nil {
			return &existing, false, nil
		}
		if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
			return nil, false, createErr
		}
	}
	return nil, false, fmt.Errorf("could not allocate a unique certificate number")
}

// FindByVerificationID looks a certificate up by its public verification id.
func FindByVerificationID(db *gorm.DB, verificationID string) (*courseModels.Certificate, error) {
	var certificate courseModels.Certificate
	err := db.Where("verification_id = ? AND is_deleted = ?", verificationID, false).First(&certificate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &certificate, nil
}
