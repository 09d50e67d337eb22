package course

import "gorm.io/gorm"

// ModuleLesson represents a lesson within a module
type ModuleLesson struct {
	gorm.Model
	ModuleID   uint   `json:"module_id" gorm:"index;not null"`
	Title      string `json:"title"`
	Content    string `json:"content" gorm:"type:text"`
	VideoURL   string `json:"video_url"`
	Duration   int    `json:"duration" gorm:"default:1"` // duration in minutes
	OrderIndex int    `json:"order_index" gorm:"default:0"`
}
