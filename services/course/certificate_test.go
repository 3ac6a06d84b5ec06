package courseService

import (
	"regexp"
	"testing"
	"time"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueOrGetCreatesOnceAndReturnsSameCertificate(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "USER")
	course, _, _ := seedCourseWithQuiz(t, db)
	completeEnrollment(t, db, user.ID, course.ID)

	first, created, err := IssueOrGet(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, first.VerificationID)
	assert.NotEmpty(t, first.CertificateNumber)

	second, created, err := IssueOrGet(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.VerificationID, second.VerificationID)
	assert.Equal(t, first.CertificateNumber, second.CertificateNumber)

	var count int64
	db.Model(&courseModels.Certificate{}).Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestIssueOrGetRequiresCompletedCourse(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "USER")
	course, _, _ := seedCourseWithQuiz(t, db)

	_, _, err := IssueOrGet(db, user.ID, course.ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)

	seedEnrollment(t, db, user.ID, course.ID)
	_, _, err = IssueOrGet(db, user.ID, course.ID)
	assert.ErrorIs(t, err, ErrCourseNotCompleted)
}

func TestIssueOrGetAfterCompletingEveryContent(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "USER")
	course, contents, _ := seedCourseWithQuiz(t, db)
	seedEnrollment(t, db, user.ID, course.ID)

	for _, content := range contents {
		_, err := ToggleCompletion(db, user.ID, content.ID)
		require.NoError(t, err)
	}

	certificate, created, err := IssueOrGet(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, certificate.IssuedAt.IsZero())
}

func TestCertificateNumberFormat(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "USER")
	course, _, _ := seedCourseWithQuiz(t, db)
	completeEnrollment(t, db, user.ID, course.ID)

	certificate, _, err := IssueOrGet(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^CERT-\d{4}-[ABCDEFGHJKLMNPQRSTUVWXYZ23456789]{8}$`), certificate.CertificateNumber)
}

func TestFindByVerificationID(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "USER")
	course, _, _ := seedCourseWithQuiz(t, db)
	completeEnrollment(t, db, user.ID, course.ID)

	issued, _, err := IssueOrGet(db, user.ID, course.ID)
	require.NoError(t, err)

	found, err := FindByVerificationID(db, issued.VerificationID)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, found.ID)

	_, err = FindByVerificationID(db, "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIssueOrGetRetriesOnNumberCollision(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "USER")
	other := seedUser(t, db, "USER")
	course, _, _ := seedCourseWithQuiz(t, db)
	completeEnrollment(t, db, user.ID, course.ID)

	// A certificate elsewhere already holds the first number we generate
	taken := courseModels.Certificate{
		UserID: other.ID, CourseID: course.ID + 1,
		VerificationID:    "11111111-1111-1111-1111-111111111111",
		CertificateNumber: "CERT-2026-TAKEN234",
		IssuedAt:          time.Now(),
	}
	require.NoError(t, db.Create(&taken).Error)

	numbers := []string{"CERT-2026-TAKEN234", "CERT-2026-FRESH567"}
	calls := 0
	original := newCertificateNumber
	newCertificateNumber = func() string {
		number := numbers[calls]
		calls++
		return number
	}
	t.Cleanup(func() { newCertificateNumber = original })

	certificate, created, err := IssueOrGet(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "CERT-2026-FRESH567", certificate.CertificateNumber)
}

func TestIssueOrGetReturnsConcurrentWinnersRow(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "USER")
	course, _, _ := seedCourseWithQuiz(t, db)
	completeEnrollment(t, db, user.ID, course.ID)

	// A concurrent request commits its row between our existence check and
	// our insert; the number generator is the last step before the insert,
	// so committing the winner inside it reproduces that window.
	winner := courseModels.Certificate{
		UserID: user.ID, CourseID: course.ID,
		VerificationID:    "22222222-2222-2222-2222-222222222222",
		CertificateNumber: "CERT-2026-WINNER89",
		IssuedAt:          time.Now(),
	}
	original := newCertificateNumber
	newCertificateNumber = func() string {
		if winner.ID == 0 {
			require.NoError(t, db.Create(&winner).Error)
		}
		return "CERT-2026-LOSER234"
	}
	t.Cleanup(func() { newCertificateNumber = original })

	certificate, created, err := IssueOrGet(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, winner.ID, certificate.ID)
	assert.Equal(t, "CERT-2026-WINNER89", certificate.CertificateNumber)

	var count int64
	db.Model(&courseModels.Certificate{}).Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
