package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Course listing and details (published courses)
	courseGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.GetCourseDetail(), controllers.GetCourseDetails)

	// Enrollment (gated on prerequisites)
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.EnrollCourse(), controllers.EnrollInCourse)

	// Content viewing (for enrolled users)
	courseGroup.Get("/:id/content", middleware.JWTMiddleware, validators.CourseContentList(), controllers.GetCourseContent)

	// Content completion toggle
	courseGroup.Post("/:course_id/content/:content_id/complete", middleware.JWTMiddleware, validators.ToggleContentComplete(), controllers.ToggleContentComplete)

	// SCORM player state bridge
	courseGroup.Post("/:course_id/content/:content_id/scorm", middleware.JWTMiddleware, validators.UpdateScormStatus(), controllers.UpdateScormStatus)

	// Quiz submission and attempt history
	quizGroup := app.Group("/quiz")
	quizGroup.Post("/:quiz_id/submit", middleware.JWTMiddleware, validators.SubmitQuiz(), controllers.SubmitQuizAttempt)
	quizGroup.Get("/:quiz_id/attempts", middleware.JWTMiddleware, validators.GetQuizAttempts(), controllers.GetQuizAttempts)

	// Progress tracking
	courseGroup.Get("/:course_id/progress", middleware.JWTMiddleware, validators.GetCourseProgress(), controllers.GetUserProgress)

	// Certificate retrieval (mints on first request)
	courseGroup.Get("/:course_id/certificate", middleware.JWTMiddleware, validators.RequestCertificate(), controllers.GetCourseCertificate)

	// User enrollments and certificates
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetUserEnrollmentsList)
	userGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)

	// Public certificate verification, no auth required
	app.Get("/certificate/verify/:verification_id", controllers.VerifyCertificate)

	// Manual trigger for the nightly progress reconciliation
	adminGroup := app.Group("/admin")
	adminGroup.Post("/reconcile-progress", middleware.JWTMiddleware, middleware.RequireAdmin(), controllers.ReconcileProgress)
}
