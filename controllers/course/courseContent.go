package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	courseService "lms/services/course"

	"github.com/gofiber/fiber/v2"
)

// ContentWithState represents a content item with the caller's completion flag
type ContentWithState struct {
	courseModels.Content
	IsCompleted bool `json:"is_completed"`
}

// GetCourseContent returns the course's ordered content sequence with the
// caller's completion state per item
func GetCourseContent(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Check if user exists
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	// Access requires an active enrollment and completed prerequisites;
	// admins bypass both
	if err := courseService.CanAccessCourse(database.Database.Db, &user, uint(courseID)); err != nil {
		return serviceErrorResponse(c, err, "Course not found!")
	}

	course, err := courseService.LoadCourseTree(database.Database.Db, uint(courseID))
	if err != nil {
		return serviceErrorResponse(c, err, "Course not found!")
	}

	contents := courseService.OrderedContents(course)

	// Completed content ids for this user
	var completedRows []courseModels.UserProgress
	database.Database.Db.Where("user_id = ? AND course_id = ? AND completed_at IS NOT NULL", userID, course.ID).Find(&completedRows)
	completed := make(map[uint]bool, len(completedRows))
	for _, row := range completedRows {
		completed[row.ContentID] = true
	}

	result := make([]ContentWithState, len(contents))
	for i, content := range contents {
		result[i] = ContentWithState{
			Content:     content,
			IsCompleted: completed[content.ID],
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course content fetched successfully!", fiber.Map{
		"contents": result,
		"total":    len(result),
	})
}

// ToggleContentComplete flips the completion mark for the content and returns
// the recomputed course progress
func ToggleContentComplete(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Check if user exists
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Retrieve validated IDs
	courseID := c.Locals("courseID").(int)
	contentID := c.Locals("contentID").(int)

	// Check if course content exists under this course
	var content courseModels.Content
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", contentID, courseID, false, true).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course content not found!", nil)
	}

	if err := courseService.CanAccessCourse(database.Database.Db, &user, uint(courseID)); err != nil {
		return serviceErrorResponse(c, err, "Course not found!")
	}

	state, err := courseService.ToggleCompletion(database.Database.Db, userID, uint(contentID))
	if err != nil {
		return serviceErrorResponse(c, err, "Course content not found!")
	}

	message := "Content marked as completed!"
	if !state.Completed {
		message = "Content marked as incomplete!"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, state)
}

// UpdateScormStatus stores the SCORM player state for the content and applies
// any completion it reports
func UpdateScormStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	contentID := c.Locals("contentID").(int)

	var content courseModels.Content
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", contentID, courseID, false, true).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course content not found!", nil)
	}
	if content.ContentType != courseModels.ContentTypeScorm {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content is not a SCORM package!", nil)
	}

	if err := courseService.CanAccessCourse(database.Database.Db, &user, uint(courseID)); err != nil {
		return serviceErrorResponse(c, err, "Course not found!")
	}

	data := make(map[string]interface{})
	if err := c.BodyParser(&data); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	state, err := courseService.ApplyScormStatus(database.Database.Db, userID, uint(contentID), data)
	if err != nil {
		return serviceErrorResponse(c, err, "Course content not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "SCORM status saved!", state)
}

// GetUserProgress returns the caller's progress in a course. The summary is
// recomputed through the same routine the mutation paths use, so a stale
// stored percentage self-heals on read.
func GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	summary, err := courseService.RecomputeProgress(database.Database.Db, userID, uint(courseID))
	if err != nil {
		return serviceErrorResponse(c, err, "Course not found!")
	}

	var enrollment courseModels.Enrollment
	database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment": enrollment,
		"summary":    summary,
	})
}
