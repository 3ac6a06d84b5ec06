package courseService

import (
	"fmt"
	"testing"
	"time"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database per test
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Content{},
		&courseModels.Quiz{},
		&courseModels.Question{},
		&courseModels.QuestionOption{},
		&courseModels.QuizAttempt{},
		&courseModels.QuizAnswer{},
		&courseModels.Enrollment{},
		&courseModels.UserProgress{},
		&courseModels.Certificate{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role string) models.User {
	t.Helper()

	user := models.User{
		Name:     "Test User",
		Email:    fmt.Sprintf("user-%d@example.com", time.Now().UnixNano()),
		Role:     role,
		Password: "secret",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint) courseModels.Enrollment {
	t.Helper()

	enrollment := courseModels.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   "ENROLLED",
	}
	require.NoError(t, db.Create(&enrollment).Error)
	return enrollment
}

// seedCourseWithQuiz builds the reference course: two modules, three contents
// (two lessons plus a quiz with one 10 point multiple choice question,
// passing score 70).
func seedCourseWithQuiz(t *testing.T, db *gorm.DB) (courseModels.Course, []courseModels.Content, courseModels.Quiz) {
	t.Helper()

	course := courseModels.Course{Title: "Go Fundamentals", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	moduleOne := courseModels.Module{CourseID: course.ID, Title: "Basics", Position: 1}
	moduleTwo := courseModels.Module{CourseID: course.ID, Title: "Assessment", Position: 2}
	require.NoError(t, db.Create(&moduleOne).Error)
	require.NoError(t, db.Create(&moduleTwo).Error)

	lessonOne := courseModels.Content{
		CourseID: course.ID, ModuleID: moduleOne.ID,
		Title: "Lesson 1", ContentType: courseModels.ContentTypeText, Position: 1, IsPublished: true,
	}
	lessonTwo := courseModels.Content{
		CourseID: course.ID, ModuleID: moduleOne.ID,
		Title: "Lesson 2", ContentType: courseModels.ContentTypeVideo, Position: 2, IsPublished: true,
	}
	quizContent := courseModels.Content{
		CourseID: course.ID, ModuleID: moduleTwo.ID,
		Title: "Final Quiz", ContentType: courseModels.ContentTypeQuiz, Position: 1, IsPublished: true,
	}
	require.NoError(t, db.Create(&lessonOne).Error)
	require.NoError(t, db.Create(&lessonTwo).Error)
	require.NoError(t, db.Create(&quizContent).Error)

	quiz := courseModels.Quiz{ContentID: quizContent.ID, Title: "Final Quiz", PassingScore: 70}
	require.NoError(t, db.Create(&quiz).Error)

	question := courseModels.Question{
		QuizID: quiz.ID, QuestionType: courseModels.QuestionTypeMultipleChoice,
		Text: "What does := do?", Points: 10, Position: 1,
	}
	require.NoError(t, db.Create(&question).Error)
	require.NoError(t, db.Create(&courseModels.QuestionOption{
		QuestionID: question.ID, Text: "Declares and assigns", IsCorrect: true, Position: 1,
	}).Error)
	require.NoError(t, db.Create(&courseModels.QuestionOption{
		QuestionID: question.ID, Text: "Compares values", Position: 2,
	}).Error)

	return course, []courseModels.Content{lessonOne, lessonTwo, quizContent}, quiz
}

func correctOption(t *testing.T, db *gorm.DB, questionID uint) courseModels.QuestionOption {
	t.Helper()

	var option courseModels.QuestionOption
	require.NoError(t, db.Where("question_id = ? AND is_correct = ?", questionID, true).First(&option).Error)
	return option
}

func wrongOption(t *testing.T, db *gorm.DB, questionID uint) courseModels.QuestionOption {
	t.Helper()

	var option courseModels.QuestionOption
	require.NoError(t, db.Where("question_id = ? AND is_correct = ?", questionID, false).First(&option).Error)
	return option
}
