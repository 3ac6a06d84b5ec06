package controllers

import (
	"lms/middleware"
	"lms/scheduler"

	"github.com/gofiber/fiber/v2"
)

// ReconcileProgress runs the enrollment progress reconciliation on demand,
// the same routine the nightly job runs. Useful right after bulk content
// edits instead of waiting for the schedule.
func ReconcileProgress(c *fiber.Ctx) error {
	go scheduler.ReconcileEnrollmentProgress()

	return middleware.JsonResponse(c, fiber.StatusAccepted, true, "Progress reconciliation started!", nil)
}
