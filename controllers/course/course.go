package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	courseService "lms/services/course"

	"github.com/gofiber/fiber/v2"
)

func GetAllCourses(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Check if user exists
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Retrieve validated pagination request
	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})
	if !ok {
		// If no pagination validator is set, proceed without pagination
		var courses []courseModels.Course
		if err := database.Database.Db.Where("is_deleted = ? AND is_published = ?", false, true).Find(&courses).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
			"courses": courses,
		})
	}

	// Set default pagination
	page := 1
	limit := 10
	if reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	// Fetch published courses with pagination
	var courses []courseModels.Course
	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ? AND is_published = ?", false, true)

	// Get total count
	var total int64
	db.Count(&total)

	// Fetch paginated data
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	// Prepare response
	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

func GetCourseDetails(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Check if user exists
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	course, err := courseService.LoadCourseTree(database.Database.Db, uint(courseID))
	if err != nil {
		return serviceErrorResponse(c, err, "Course not found!")
	}
	if !course.IsPublished && !user.IsAdmin() {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Prerequisite state for the enroll button
	canEnroll, missing, err := courseService.CanEnroll(database.Database.Db, userId, course.ID)
	if err != nil {
		return serviceErrorResponse(c, err, "Course not found!")
	}
	missingIDs := make([]uint, len(missing))
	for i, m := range missing {
		missingIDs[i] = m.ID
	}

	// Enrollment state, when there is one
	var enrollment courseModels.Enrollment
	enrolled := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, course.ID, false).First(&enrollment).Error == nil

	response := fiber.Map{
		"course":                course,
		"can_enroll":            canEnroll,
		"missing_prerequisites": missingIDs,
		"is_enrolled":           enrolled,
	}
	if enrolled {
		response["enrollment"] = enrollment
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", response)
}

// serviceErrorResponse maps service errors onto the response envelope
func serviceErrorResponse(c *fiber.Ctx, err error, notFoundMsg string) error {
	switch {
	case err == courseService.ErrNotFound:
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, notFoundMsg, nil)
	case err == courseService.ErrNotEnrolled:
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	case err == courseService.ErrPrerequisitesPending:
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Prerequisite courses must be completed first!", nil)
	case err == courseService.ErrMalformedSubmission:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid submission payload!", nil)
	case err == courseService.ErrCourseNotCompleted:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please complete the course first!", nil)
	default:
		// Storage failure; safe for the caller to retry, details stay in logs
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong, please try again!", nil)
	}
}
