package courseService

import (
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func loadEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint) courseModels.Enrollment {
	t.Helper()

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error)
	return enrollment
}

func TestToggleCompletionMarksAndRecomputes(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "USER")
	course, contents, _ := seedCourseWithQuiz(t, db)
	seedEnrollment(t, db, user.ID, course.ID)

	state, err := ToggleCompletion(db, user.ID, contents[0].ID)
	require.NoError(t, err)
	assert.True(t, state.Completed)
	assert.Equal(t, 3, state.Summary.TotalContents)
	assert.Equal(t, 1, state.Summary.CompletedContents)
	assert.Equal(t, 33, state.Summary.Percent)
	assert.Nil(t, state.Summary.CompletedAt)

	enrollment := loadEnrollment(t, db, user.ID, course.ID)
	assert.Equal(t, 33, enrollment.Progress)
	assert.Equal(t, "IN_PROGRESS", enrollment.Status)
}

func TestToggleCompletionTwiceRestoresOriginalState(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "USER")
	course, contents, _ := seedCourseWithQuiz(t, db)
	seedEnrollment(t, db, user.ID, course.ID)

	before := loadEnrollment(t, db, user.ID, course.ID)

	state, err := ToggleCompletion(db, user.ID, contents[0].ID)
	require.NoError(t, err)
	assert.True(t, state.Completed)

	state, err = ToggleCompletion(db, user.ID, contents[0].ID)
	require.NoError(t, err)
	assert.False(t, state.Completed)
	assert.Equal(t, 0, state.Summary.Percent)

	after := loadEnrollment(t, db, user.ID, course.ID)
	assert.Equal(t, before.Progress, after.Progress)
	assert.Equal(t, before.CompletedAt, after.CompletedAt)

	var count int64
	db.Model(&courseModels.UserProgress{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestToggleCompletionRequiresEnrollment(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "USER")
	_, contents, _ := seedCourseWithQuiz(t, db)

	_, err := ToggleCompletion(db, user.ID, contents[0].ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)

	// The failed toggle must not leave a progress row behind
	var count int64
	db.Model(&courseModels.UserProgress{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestToggleCompletionUnknownContent(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "USER")

	_, err := ToggleCompletion(db, user.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProgressReachesCompletionAcrossAllContents(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "USER")
	course, contents, _ := seedCourseWithQuiz(t, db)
	seedEnrollment(t, db, user.ID, course.ID)

	state, err := ToggleCompletion(db, user.ID, contents[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 33, state.Summary.Percent)

	state, err = ToggleCompletion(db, user.ID, contents[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 67, state.Summary.Percent)

	state, err = ToggleCompletion(db, user.ID, contents[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 100, state.Summary.Percent)
	require.NotNil(t, state.Summary.CompletedAt)

	enrollment := loadEnrollment(t, db, user.ID, course.ID)
	assert.Equal(t, "COMPLETED", enrollment.Status)
	require.NotNil(t, enrollment.CompletedAt)

	// Un-completing one content clears the completion timestamp again
	state, err = ToggleCompletion(db, user.ID, contents[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 67, state.Summary.Percent)
	assert.Nil(t, state.Summary.CompletedAt)

	enrollment = loadEnrollment(t, db, user.ID, course.ID)
	assert.Nil(t, enrollment.CompletedAt)
}

func TestEmptyCourseNeverAutoCompletes(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "USER")

	course := courseModels.Course{Title: "Empty", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)
	seedEnrollment(t, db, user.ID, course.ID)

	summary, err := RecomputeProgress(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalContents)
	assert.Equal(t, 0, summary.Percent)
	assert.Nil(t, summary.CompletedAt)
}

func TestRecomputeProgressRequiresEnrollment(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "USER")
	course, _, _ := seedCourseWithQuiz(t, db)

	_, err := RecomputeProgress(db, user.ID, course.ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestRecomputeProgressHealsDrift(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "USER")
	course, contents, _ := seedCourseWithQuiz(t, db)
	enrollment := seedEnrollment(t, db, user.ID, course.ID)

	_, err := ToggleCompletion(db, user.ID, contents[0].ID)
	require.NoError(t, err)

	// Simulate drift written outside the tracker
	require.NoError(t, db.Model(&enrollment).Update("progress", 95).Error)

	summary, err := RecomputeProgress(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 33, summary.Percent)
	assert.Equal(t, 33, loadEnrollment(t, db, user.ID, course.ID).Progress)
}

func TestApplyScormStatusCompletesOnCompletedStatus(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "USER")
	course, contents, _ := seedCourseWithQuiz(t, db)
	seedEnrollment(t, db, user.ID, course.ID)

	state, err := ApplyScormStatus(db, user.ID, contents[0].ID, map[string]interface{}{
		"cmi.core.lesson_status": "completed",
		"cmi.core.score.raw":     "88",
	})
	require.NoError(t, err)
	assert.True(t, state.Completed)
	assert.Equal(t, 33, state.Summary.Percent)
}

func TestApplyScormStatusStoresStateWithoutCompleting(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "USER")
	course, contents, _ := seedCourseWithQuiz(t, db)
	seedEnrollment(t, db, user.ID, course.ID)

	state, err := ApplyScormStatus(db, user.ID, contents[0].ID, map[string]interface{}{
		"cmi.core.lesson_status": "incomplete",
		"cmi.suspend_data":       "bookmark=3",
	})
	require.NoError(t, err)
	assert.False(t, state.Completed)
	assert.Equal(t, 0, state.Summary.Percent)

	var row courseModels.UserProgress
	require.NoError(t, db.Where("user_id = ? AND content_id = ?", user.ID, contents[0].ID).First(&row).Error)
	assert.Nil(t, row.CompletedAt)
	assert.Equal(t, "bookmark=3", row.Data["cmi.suspend_data"])
}

func TestApplyScormStatusNeverRevokesCompletion(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "USER")
	course, contents, _ := seedCourseWithQuiz(t, db)
	seedEnrollment(t, db, user.ID, course.ID)

	_, err := ApplyScormStatus(db, user.ID, contents[0].ID, map[string]interface{}{
		"cmi.completion_status": "passed",
	})
	require.NoError(t, err)

	state, err := ApplyScormStatus(db, user.ID, contents[0].ID, map[string]interface{}{
		"cmi.completion_status": "incomplete",
	})
	require.NoError(t, err)
	assert.True(t, state.Completed)
	assert.Equal(t, 33, state.Summary.Percent)
}
