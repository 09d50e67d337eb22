package models

import "gorm.io/gorm"

// CourseCategory is a catalog grouping, selectable on the authoring form
type CourseCategory struct {
	gorm.Model
	Name        string `json:"name" gorm:"unique;not null"`
	Description string `json:"description"`
	IconName    string `json:"icon_name"`
	Color       string `json:"color"`
}
