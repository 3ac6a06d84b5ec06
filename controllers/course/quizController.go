package controllers

import (
	"errors"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	courseService "lms/services/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SubmitQuizAttempt grades a quiz submission and records the attempt
func SubmitQuizAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	quizID := c.Locals("quizID").(int)

	// Retrieve the validated submission payload
	answers, ok := c.Locals("validatedQuizSubmission").([]courseService.SubmittedAnswer)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// The access gate runs against the quiz's owning course
	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ?", quizID).First(&quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong, please try again!", nil)
	}
	var content courseModels.Content
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quiz.ContentID, false).First(&content).Error; err == nil {
		if err := courseService.CanAccessCourse(database.Database.Db, &user, content.CourseID); err != nil {
			return serviceErrorResponse(c, err, "Course not found!")
		}
	}

	attempt, err := courseService.SubmitQuiz(database.Database.Db, userID, uint(quizID), answers)
	if err != nil {
		return serviceErrorResponse(c, err, "Quiz not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted!", fiber.Map{
		"attempt":   attempt,
		"passed":    attempt.Passed,
		"score":     attempt.Score,
		"max_score": attempt.MaxScore,
	})
}

// GetQuizAttempts returns the caller's attempt history for a quiz, newest
// first. The first entry is authoritative for current status displays.
func GetQuizAttempts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	quizID := c.Locals("quizID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ?", quizID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var attempts []courseModels.QuizAttempt
	if err := database.Database.Db.Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Preload("Answers").Order("created_at desc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts": attempts,
		"total":    len(attempts),
	})
}
