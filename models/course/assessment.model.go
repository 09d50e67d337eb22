package course

import "gorm.io/gorm"

// Assessment represents a quiz attached to a course
type Assessment struct {
	gorm.Model
	CourseID     uint   `json:"course_id" gorm:"index;not null"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	PassingScore int    `json:"passing_score" gorm:"default:70"` // percentage (0-100)
	TimeLimit    *int   `json:"time_limit"`                      // in minutes, nil means untimed
	MaxAttempts  int    `json:"max_attempts" gorm:"default:1"`
	OrderIndex   int    `json:"order_index" gorm:"default:0"`
}
