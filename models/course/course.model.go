package course

import (
	"lms/utils"

	"gorm.io/gorm"
)

// Course represents a learning course made up of ordered modules
type Course struct {
	gorm.Model
	Title            string `json:"title"`
	Slug             string `json:"slug" gorm:"uniqueIndex;size:120"`
	Description      string `json:"description"`
	Author           string `json:"author"`
	Duration         int64  `json:"duration" gorm:"default:0"` // estimated duration in hours
	ThumbnailURL     string `json:"thumbnail_url"`
	IsPublished      bool   `json:"is_published" gorm:"default:false"`
	CertificateTitle string `json:"certificate_title"`
	CertificateBody  string `json:"certificate_body" gorm:"type:text"`
	IsDeleted        bool   `gorm:"default:false"`

	Modules []Module `json:"modules,omitempty" gorm:"foreignKey:CourseID"`

	// Direct prerequisites only; the gate never resolves these transitively.
	Prerequisites []*Course `json:"prerequisites,omitempty" gorm:"many2many:course_prerequisites;joinForeignKey:CourseID;joinReferences:PrerequisiteID"`
}

// BeforeCreate derives a unique slug from the title when none is given.
func (course *Course) BeforeCreate(tx *gorm.DB) error {
	if course.Slug != "" {
		return nil
	}
	slug, err := utils.EnsureUniqueSlug(tx, "courses", "slug", utils.Slugify(course.Title))
	if err != nil {
		return err
	}
	course.Slug = slug
	return nil
}
