package courseValidator

import (
	"github.com/gofiber/fiber/v2"
)

// EnrollCourse validates the course ID for enrollment
func EnrollCourse() fiber.Handler {
	return courseIDParam("id")
}

// GetCourseProgress validates the course ID for the progress endpoint
func GetCourseProgress() fiber.Handler {
	return courseIDParam("course_id")
}

// RequestCertificate validates the course ID for certificate retrieval
func RequestCertificate() fiber.Handler {
	return courseIDParam("course_id")
}
