package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"
	courseService "lms/services/course"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// SubmitQuiz validates the quiz ID and the structure of the submission
// payload. Structurally malformed payloads reject here, before grading;
// answers referencing unknown questions or options are left for the grading
// engine, which judges them incorrect rather than failing.
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		quizIDStr := strings.TrimSpace(c.Params("quiz_id"))
		quizID, err := strconv.Atoi(quizIDStr)
		if err != nil || quizID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Quiz ID!", nil)
		}

		reqData := new(struct {
			Answers []courseService.SubmittedAnswer `json:"answers" validate:"required,dive"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Answers":
					errors["answers"] = "Answers are required!"
				case "QuestionID":
					errors["question_id"] = "Each answer needs a question ID!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("quizID", quizID)
		c.Locals("validatedQuizSubmission", reqData.Answers)
		return c.Next()
	}
}

// GetQuizAttempts validates the quiz ID for the attempt history endpoint
func GetQuizAttempts() fiber.Handler {
	return func(c *fiber.Ctx) error {
		quizIDStr := strings.TrimSpace(c.Params("quiz_id"))
		quizID, err := strconv.Atoi(quizIDStr)
		if err != nil || quizID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Quiz ID!", nil)
		}

		c.Locals("quizID", quizID)
		return c.Next()
	}
}
