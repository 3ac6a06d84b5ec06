package courseService

import (
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedContentsFollowsModuleAndContentPositions(t *testing.T) {
	db := setupTestDB(t)

	course := courseModels.Course{Title: "Ordering", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	// Insert modules and contents deliberately out of order
	late := courseModels.Module{CourseID: course.ID, Title: "Second", Position: 2}
	early := courseModels.Module{CourseID: course.ID, Title: "First", Position: 1}
	require.NoError(t, db.Create(&late).Error)
	require.NoError(t, db.Create(&early).Error)

	require.NoError(t, db.Create(&courseModels.Content{
		CourseID: course.ID, ModuleID: late.ID, Title: "C", Position: 1, IsPublished: true,
	}).Error)
	require.NoError(t, db.Create(&courseModels.Content{
		CourseID: course.ID, ModuleID: early.ID, Title: "B", Position: 5, IsPublished: true,
	}).Error)
	require.NoError(t, db.Create(&courseModels.Content{
		CourseID: course.ID, ModuleID: early.ID, Title: "A", Position: 1, IsPublished: true,
	}).Error)

	tree, err := LoadCourseTree(db, course.ID)
	require.NoError(t, err)

	contents := OrderedContents(tree)
	require.Len(t, contents, 3)
	assert.Equal(t, "A", contents[0].Title)
	assert.Equal(t, "B", contents[1].Title)
	assert.Equal(t, "C", contents[2].Title)
}

func TestOrderedContentsSkipsUnpublishedAndDeleted(t *testing.T) {
	db := setupTestDB(t)

	course := courseModels.Course{Title: "Filtering", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)
	module := courseModels.Module{CourseID: course.ID, Title: "Only", Position: 1}
	require.NoError(t, db.Create(&module).Error)

	require.NoError(t, db.Create(&courseModels.Content{
		CourseID: course.ID, ModuleID: module.ID, Title: "Visible", Position: 1, IsPublished: true,
	}).Error)
	require.NoError(t, db.Create(&courseModels.Content{
		CourseID: course.ID, ModuleID: module.ID, Title: "Draft", Position: 2, IsPublished: false,
	}).Error)
	require.NoError(t, db.Create(&courseModels.Content{
		CourseID: course.ID, ModuleID: module.ID, Title: "Removed", Position: 3, IsPublished: true, IsDeleted: true,
	}).Error)

	tree, err := LoadCourseTree(db, course.ID)
	require.NoError(t, err)

	contents := OrderedContents(tree)
	require.Len(t, contents, 1)
	assert.Equal(t, "Visible", contents[0].Title)
}

func TestLoadCourseTreeNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := LoadCourseTree(db, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFirstAndAdjacentContents(t *testing.T) {
	db := setupTestDB(t)
	_, contents, _ := seedCourseWithQuiz(t, db)

	course, err := LoadCourseTree(db, contents[0].CourseID)
	require.NoError(t, err)

	first := FirstContent(course)
	require.NotNil(t, first)
	assert.Equal(t, contents[0].ID, first.ID)

	sequence := OrderedContents(course)

	prev, next := AdjacentContents(sequence, contents[1].ID)
	require.NotNil(t, prev)
	require.NotNil(t, next)
	assert.Equal(t, contents[0].ID, prev.ID)
	assert.Equal(t, contents[2].ID, next.ID)

	prev, next = AdjacentContents(sequence, contents[0].ID)
	assert.Nil(t, prev)
	require.NotNil(t, next)
	assert.Equal(t, contents[1].ID, next.ID)

	prev, next = AdjacentContents(sequence, 424242)
	assert.Nil(t, prev)
	assert.Nil(t, next)
}

func TestFirstContentEmptyCourse(t *testing.T) {
	db := setupTestDB(t)

	course := courseModels.Course{Title: "Empty", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	tree, err := LoadCourseTree(db, course.ID)
	require.NoError(t, err)
	assert.Nil(t, FirstContent(tree))
}
