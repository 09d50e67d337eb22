package course

import "gorm.io/gorm"

// Course status values. The authoring workflow only ever moves a course
// DRAFT -> PUBLISHED; ARCHIVED is set by the admin delete endpoint.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Course levels
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Course is the aggregate root: modules, lessons, assessments, questions,
// answer options and announcements all hang off its id and are fully
// replaced on every save.
type Course struct {
	gorm.Model
	Title                  string   `json:"title"`
	Description            string   `json:"description" gorm:"type:text"`
	Category               string   `json:"category"`
	Level                  string   `json:"level" gorm:"default:'beginner'"`
	Language               string   `json:"language" gorm:"default:'English'"`
	Price                  float64  `json:"price" gorm:"default:0"`
	DiscountedPrice        *float64 `json:"discounted_price"`
	ThumbnailURL           string   `json:"thumbnail_url"`
	NumberOfLessons        int      `json:"number_of_lessons" gorm:"default:0"`
	CertificateAvailable   bool     `json:"certificate_available" gorm:"default:false"`
	CertificateTemplateURL string   `json:"certificate_template_url"`
	EnableSelfEnrollment   bool     `json:"enable_self_enrollment"`
	TrackProgress          bool     `json:"track_progress"`
	Status                 string   `json:"status" gorm:"default:'draft'"`
	InstructorID           uint     `json:"instructor_id" gorm:"index"`
	CreatedBy              uint     `json:"created_by" gorm:"index"`
	IsDeleted              bool     `gorm:"default:false" json:"-"`
}
