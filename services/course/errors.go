package courseService

import "errors"

// Service errors. Controllers map these onto response status codes; anything
// else coming out of the service layer is a storage failure the caller may
// retry.
var (
	// ErrNotFound means the referenced course/content/quiz does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrNotEnrolled means the operation requires an active enrollment the
	// user does not have. Progress mutations treat this as a caller bug.
	ErrNotEnrolled = errors.New("user is not enrolled in this course")

	// ErrPrerequisitesPending means one or more prerequisite courses are not
	// completed yet.
	ErrPrerequisitesPending = errors.New("prerequisite courses not completed")

	// ErrMalformedSubmission means the quiz payload is structurally invalid
	// and grading never started.
	ErrMalformedSubmission = errors.New("malformed quiz submission")

	// ErrCourseNotCompleted means certificate issuance was requested before
	// the enrollment reached completion.
	ErrCourseNotCompleted = errors.New("course is not completed")
)
