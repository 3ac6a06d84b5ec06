package scheduler

import (
	"errors"
	"log"

	"lms/config"
	"lms/database"
	courseModels "lms/models/course"
	courseService "lms/services/course"

	"github.com/robfig/cron/v3"
)

// ReconcileEnrollmentProgress recomputes progress for every active
// enrollment through the shared recompute routine, correcting any drift
// between stored percentages and the underlying progress rows (content
// unpublished or deleted after completion marks were written, for example).
func ReconcileEnrollmentProgress() {
	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.Where("is_deleted = ?", false).Find(&enrollments).Error; err != nil {
		log.Printf("Progress reconciliation: failed to list enrollments: %v", err)
		return
	}

	corrected := 0
	for _, enrollment := range enrollments {
		before := enrollment.Progress
		summary, err := courseService.RecomputeProgress(db, enrollment.UserID, enrollment.CourseID)
		if err != nil {
			// Courses can disappear under an enrollment; skip those rows.
			if errors.Is(err, courseService.ErrNotFound) || errors.Is(err, courseService.ErrNotEnrolled) {
				continue
			}
			log.Printf("Progress reconciliation failed for user %d course %d: %v", enrollment.UserID, enrollment.CourseID, err)
			continue
		}
		if summary.Percent != before {
			corrected++
		}
	}

	log.Printf("Progress reconciliation finished: %d enrollments checked, %d corrected", len(enrollments), corrected)
}

// InitializeProgressScheduler starts the nightly reconciliation job
func InitializeProgressScheduler() *cron.Cron {
	c := cron.New()

	spec := config.AppConfig.ProgressReconcileSpec
	if _, err := c.AddFunc(spec, ReconcileEnrollmentProgress); err != nil {
		log.Printf("Failed to schedule progress reconciliation (%q): %v", spec, err)
		return c
	}

	c.Start()
	log.Printf("Progress reconciliation scheduled (%q)", spec)
	return c
}
