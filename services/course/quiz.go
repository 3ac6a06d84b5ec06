package courseService

import (
	"errors"
	"strings"
	"time"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// SubmittedAnswer is one answer in a quiz submission payload
type SubmittedAnswer struct {
	QuestionID uint   `json:"question_id" validate:"required"`
	OptionID   *uint  `json:"option_id"`
	TextAnswer string `json:"text_answer"`
}

// SubmitQuiz grades a submission against the quiz definition, persists the
// attempt with its per-question answers atomically, and on a pass feeds the
// owning content's completion back into the progress tracker within the same
// transaction. Unmatched or invalid answers degrade to incorrect; only a
// structurally malformed payload rejects before grading.
func SubmitQuiz(db *gorm.DB, userID, quizID uint, answers []SubmittedAnswer) (*courseModels.QuizAttempt, error) {
	if answers == nil {
		return nil, ErrMalformedSubmission
	}
	for _, answer := range answers {
		if answer.QuestionID == 0 {
			return nil, ErrMalformedSubmission
		}
	}

	var quiz courseModels.Quiz
	err := db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc, id asc")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc, id asc")
		}).
		Where("id = ?", quizID).
		First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// Resolve the owning content; a dangling quiz is a data integrity issue
	// that skips the completion step but never fails the submission.
	var content courseModels.Content
	hasContent := false
	err = db.Where("id = ? AND is_deleted = ?", quiz.ContentID, false).First(&content).Error
	if err == nil {
		hasContent = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if hasContent {
		var enrollment courseModels.Enrollment
		err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, content.CourseID, false).First(&enrollment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		if err != nil {
			return nil, err
		}
	}

	// First submitted answer per question wins; duplicates are ignored.
	byQuestion := make(map[uint]SubmittedAnswer, len(answers))
	for _, answer := range answers {
		if _, seen := byQuestion[answer.QuestionID]; !seen {
			byQuestion[answer.QuestionID] = answer
		}
	}

	totalPoints := 0
	score := 0
	var attemptAnswers []courseModels.QuizAnswer

	// Grade in the quiz's stored order; shuffling is presentation-only.
	for _, question := range quiz.Questions {
		totalPoints += question.Points

		submitted, answered := byQuestion[question.ID]
		if !answered {
			continue
		}

		correct := false
		switch question.QuestionType {
		case courseModels.QuestionTypeMultipleChoice, courseModels.QuestionTypeTrueFalse:
			// An option from another question, or no selection, is incorrect.
			if submitted.OptionID != nil {
				for _, option := range question.Options {
					if option.ID == *submitted.OptionID {
						correct = option.IsCorrect
						break
					}
				}
			}
		case courseModels.QuestionTypeShortAnswer:
			// Options flagged correct store the accepted answer strings.
			text := strings.ToLower(strings.TrimSpace(submitted.TextAnswer))
			if text != "" {
				for _, option := range question.Options {
					if option.IsCorrect && strings.ToLower(strings.TrimSpace(option.Text)) == text {
						correct = true
						break
					}
				}
			}
		}

		if correct {
			score += question.Points
		}
		attemptAnswers = append(attemptAnswers, courseModels.QuizAnswer{
			QuestionID: question.ID,
			OptionID:   submitted.OptionID,
			TextAnswer: submitted.TextAnswer,
			IsCorrect:  correct,
		})
	}

	// Pass when the score clears ceil(passing_score% of total points). A quiz
	// with no points grades every attempt as passed.
	threshold := (quiz.PassingScore*totalPoints + 99) / 100
	passed := score >= threshold

	attempt := &courseModels.QuizAttempt{
		QuizID:   quiz.ID,
		UserID:   userID,
		Score:    score,
		MaxScore: totalPoints,
		Passed:   passed,
		Answers:  attemptAnswers,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}
		if passed && hasContent {
			if err := completeContent(tx, userID, &content); err != nil {
				return err
			}
			if _, err := RecomputeProgress(tx, userID, content.CourseID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

// completeContent upserts a completed progress row for (user, content).
// Unlike ToggleCompletion this is idempotent: re-passing a quiz never flips
// the content back to incomplete.
func completeContent(tx *gorm.DB, userID uint, content *courseModels.Content) error {
	var row courseModels.UserProgress
	err := tx.Where("user_id = ? AND content_id = ?", userID, content.ID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		now := time.Now()
		return tx.Create(&courseModels.UserProgress{
			UserID:      userID,
			CourseID:    content.CourseID,
			ContentID:   content.ID,
			CompletedAt: &now,
		}).Error
	}
	if err != nil {
		return err
	}
	if row.CompletedAt == nil {
		now := time.Now()
		return tx.Model(&row).Update("completed_at", &now).Error
	}
	return nil
}
