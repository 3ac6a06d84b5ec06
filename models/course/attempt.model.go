package course

import "gorm.io/gorm"

// QuizAttempt represents one scored submission of a quiz by a user.
// Attempts are unlimited; the most recent one is authoritative for status.
type QuizAttempt struct {
	gorm.Model
	QuizID   uint `json:"quiz_id" gorm:"index;not null"`
	UserID   uint `json:"user_id" gorm:"index;not null"`
	Score    int  `json:"score"`     // points earned
	MaxScore int  `json:"max_score"` // total possible points
	Passed   bool `json:"passed" gorm:"default:false"`

	Answers []QuizAnswer `json:"answers,omitempty" gorm:"foreignKey:AttemptID"`
}

// QuizAnswer captures what was submitted for one question and how it was judged
type QuizAnswer struct {
	gorm.Model
	AttemptID  uint   `json:"attempt_id" gorm:"index;not null"`
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	OptionID   *uint  `json:"option_id"`   // selected option, choice questions
	TextAnswer string `json:"text_answer"` // submitted text, short answer questions
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
}
