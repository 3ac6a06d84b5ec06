package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate represents an issued certificate for course completion.
// At most one row exists per (user, course); its number and verification id
// never change once created.
type Certificate struct {
	gorm.Model
	UserID            uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_certificate_user_course"`
	CourseID          uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_certificate_user_course"`
	VerificationID    string    `json:"verification_id" gorm:"uniqueIndex;size:36"`
	CertificateNumber string    `json:"certificate_number" gorm:"uniqueIndex"`
	IssuedAt          time.Time `json:"issued_at"`
	IsDeleted         bool      `gorm:"default:false"`
}
