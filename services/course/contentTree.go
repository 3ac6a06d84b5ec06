package courseService

import (
	"errors"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// LoadCourseTree fetches a course with its modules and published contents,
// each level ordered by position (insertion order breaks ties). Everything a
// progress computation needs is loaded here upfront; nothing below fetches
// lazily.
func LoadCourseTree(db *gorm.DB, courseID uint) (*courseModels.Course, error) {
	var course courseModels.Course
	err := db.
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("position asc, id asc")
		}).
		Preload("Modules.Contents", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ? AND is_published = ?", false, true).Order("position asc, id asc")
		}).
		Where("id = ? AND is_deleted = ?", courseID, false).
		First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// OrderedContents flattens the course tree into one ordered content sequence:
// modules by ascending position, then contents within each module.
func OrderedContents(course *courseModels.Course) []courseModels.Content {
	var contents []courseModels.Content
	for _, module := range course.Modules {
		contents = append(contents, module.Contents...)
	}
	return contents
}

// FirstContent returns the first content item of the course, or nil for an
// empty course.
func FirstContent(course *courseModels.Course) *courseModels.Content {
	contents := OrderedContents(course)
	if len(contents) == 0 {
		return nil
	}
	return &contents[0]
}

// AdjacentContents returns the previous and next content items around
// contentID in the flattened sequence. Either may be nil at the edges, and
// both are nil when contentID is not part of the sequence.
func AdjacentContents(contents []courseModels.Content, contentID uint) (prev, next *courseModels.Content) {
	for i := range contents {
		if contents[i].ID != contentID {
			continue
		}
		if i > 0 {
			prev = &contents[i-1]
		}
		if i < len(contents)-1 {
			next = &contents[i+1]
		}
		return prev, next
	}
	return nil, nil
}
