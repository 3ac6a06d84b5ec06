package utils

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)
	slugHyphens = regexp.MustCompile(`-+`)
)

// Slugify converts free text into a url-safe slug [a-z0-9-]
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugInvalid.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "course"
	}
	if len(s) > 100 {
		s = strings.Trim(s[:100], "-")
	}
	return s
}

// EnsureUniqueSlug returns baseSlug, or baseSlug with the first free numeric
// suffix (-2, -3, ...) when the column already holds it.
func EnsureUniqueSlug(db *gorm.DB, table, column, baseSlug string) (string, error) {
	slug := baseSlug
	for i := 0; i < 50; i++ {
		var count int64
		if err := db.Table(table).Where(fmt.Sprintf("%s = ?", column), slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", baseSlug, i+2)
	}
	return "", fmt.Errorf("could not find a free slug for %q", baseSlug)
}
