package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Content types
const (
	ContentTypeText     = "TEXT"
	ContentTypeVideo    = "VIDEO"
	ContentTypeQuiz     = "QUIZ"
	ContentTypeScorm    = "SCORM"
	ContentTypeDocument = "DOCUMENT"
)

// Content represents the smallest addressable learning unit within a module
type Content struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ContentType string `json:"content_type" gorm:"default:'TEXT'"` // TEXT, VIDEO, QUIZ, SCORM, DOCUMENT
	TextContent string `json:"text_content" gorm:"type:text"`      // For TEXT type
	VideoURL    string `json:"video_url"`                          // For VIDEO type
	FilePath    string `json:"file_path"`                          // For SCORM and DOCUMENT types
	Position    int    `json:"position" gorm:"default:0"`          // Order within module
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`

	Quiz *Quiz `json:"quiz,omitempty" gorm:"foreignKey:ContentID"` // only when ContentType is QUIZ
}

// UserProgress marks completion of one content item for one user.
// A row with non-null CompletedAt means "done"; SCORM contents may hold a
// row carrying only player state before any completion is reported.
type UserProgress struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"index;not null;uniqueIndex:idx_progress_user_content"`
	CourseID    uint       `json:"course_id" gorm:"index;not null"`
	ContentID   uint       `json:"content_id" gorm:"index;not null;uniqueIndex:idx_progress_user_content"`
	CompletedAt *time.Time `json:"completed_at"`

	// Opaque key-value state written by the SCORM player bridge.
	Data datatypes.JSONMap `json:"data,omitempty"`
}
