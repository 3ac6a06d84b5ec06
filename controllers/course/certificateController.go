package controllers

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	courseService "lms/services/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// GetCourseCertificate returns the caller's certificate for a completed
// course, minting it on first request. Duplicate clicks and concurrent
// requests always resolve to the same certificate row.
func GetCourseCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	certificate, created, err := courseService.IssueOrGet(database.Database.Db, userID, course.ID)
	if err != nil {
		return serviceErrorResponse(c, err, "Course not found!")
	}

	if created {
		// Certificate committed; notifications are best-effort
		payload := utils.CertificatePayload{
			CertificateNumber: certificate.CertificateNumber,
			VerificationID:    certificate.VerificationID,
			UserName:          user.Name,
			UserEmail:         user.Email,
			CourseTitle:       course.Title,
			CertificateTitle:  course.CertificateTitle,
			IssuedAt:          certificate.IssuedAt,
		}
		go utils.NotifyCertificateIssued(payload)
		go func() {
			if err := utils.SendCertificateEmail(user.Email, user.Name, course.Title, certificate.CertificateNumber, certificate.VerificationID); err != nil {
				log.Printf("Certificate email failed for user %d: %v", user.ID, err)
			}
		}()
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", fiber.Map{
		"certificate":       certificate,
		"course_title":      course.Title,
		"certificate_title": course.CertificateTitle,
		"certificate_body":  course.CertificateBody,
	})
}

// GetUserCertificates gets all certificates for the current user
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	type CertificateWithCourse struct {
		courseModels.Certificate
		CourseTitle string `json:"course_title"`
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	result := make([]CertificateWithCourse, len(certificates))
	for i, cert := range certificates {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", cert.CourseID).First(&course)
		result[i] = CertificateWithCourse{
			Certificate: cert,
			CourseTitle: course.Title,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}

// VerifyCertificate is the public verification endpoint: given a
// verification id it returns who earned what, and nothing else.
func VerifyCertificate(c *fiber.Ctx) error {
	verificationID := c.Params("verification_id")
	if verificationID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Verification ID is required!", nil)
	}

	certificate, err := courseService.FindByVerificationID(database.Database.Db, verificationID)
	if err != nil {
		return serviceErrorResponse(c, err, "Certificate not found!")
	}

	var user models.User
	database.Database.Db.Where("id = ?", certificate.UserID).First(&user)
	var course courseModels.Course
	database.Database.Db.Where("id = ?", certificate.CourseID).First(&course)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate is valid!", fiber.Map{
		"certificate_number": certificate.CertificateNumber,
		"issued_at":          certificate.IssuedAt,
		"user_name":          user.Name,
		"course_title":       course.Title,
	})
}
