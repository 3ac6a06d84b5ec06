package course

import "gorm.io/gorm"

// Question types
const (
	QuestionTypeMultipleChoice = "MULTIPLE_CHOICE"
	QuestionTypeTrueFalse      = "TRUE_FALSE"
	QuestionTypeShortAnswer    = "SHORT_ANSWER"
)

// Quiz belongs to exactly one QUIZ content item
type Quiz struct {
	gorm.Model
	ContentID        uint   `json:"content_id" gorm:"uniqueIndex;not null"`
	Title            string `json:"title"`
	PassingScore     int    `json:"passing_score" gorm:"default:70"` // percent, 0-100
	TimeLimit        *int   `json:"time_limit"`                      // minutes, optional
	ShuffleQuestions bool   `json:"shuffle_questions" gorm:"default:false"`

	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
}

// Question belongs to one quiz
type Question struct {
	gorm.Model
	QuizID       uint   `json:"quiz_id" gorm:"index;not null"`
	QuestionType string `json:"question_type" gorm:"default:'MULTIPLE_CHOICE'"` // MULTIPLE_CHOICE, TRUE_FALSE, SHORT_ANSWER
	Text         string `json:"text" gorm:"type:text"`
	Points       int    `json:"points" gorm:"default:1"`
	Position     int    `json:"position" gorm:"default:0"`

	// For choice questions these are the selectable options; for short answer
	// questions the options flagged correct store the accepted answer strings.
	Options []QuestionOption `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
}

// QuestionOption represents one option (or accepted answer) for a question
type QuestionOption struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	Position   int    `json:"position" gorm:"default:0"`
}
