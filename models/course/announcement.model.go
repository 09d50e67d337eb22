package course

import "gorm.io/gorm"

// Announcement types
const (
	AnnouncementWelcome  = "welcome"
	AnnouncementGeneral  = "general"
	AnnouncementUrgent   = "urgent"
	AnnouncementReminder = "reminder"
)

// Announcement represents a course announcement. The authoring workflow
// inserts the welcome announcement unpublished; publishing the course
// flips the flag.
type Announcement struct {
	gorm.Model
	CourseID         uint   `json:"course_id" gorm:"index;not null"`
	Title            string `json:"title"`
	Content          string `json:"content" gorm:"type:text"`
	AnnouncementType string `json:"announcement_type" gorm:"default:'general'"`
	Published        bool   `json:"published" gorm:"default:false"`
	CreatedBy        uint   `json:"created_by"`
}
