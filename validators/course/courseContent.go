package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// CourseContentList validates params for the content listing
func CourseContentList() fiber.Handler {
	return courseIDParam("id")
}

// ToggleContentComplete validates course and content IDs for the completion toggle
func ToggleContentComplete() fiber.Handler {
	return contentParams()
}

// UpdateScormStatus validates course and content IDs for SCORM state updates
func UpdateScormStatus() fiber.Handler {
	return contentParams()
}

// contentParams validates :course_id and :content_id path parameters
func contentParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("course_id"))
		contentIDStr := strings.TrimSpace(c.Params("content_id"))

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		contentID, err := strconv.Atoi(contentIDStr)
		if err != nil || contentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Content ID!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("contentID", contentID)
		return c.Next()
	}
}
