package course

import "gorm.io/gorm"

// CourseModule represents a section within a course. Order indices are
// reassigned densely from 1 on every save, following form order.
type CourseModule struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
}
