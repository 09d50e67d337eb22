package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Instructor represents a teaching profile shown on course pages.
// SocialLinks holds an object like {"linkedin": "...", "twitter": "..."};
// empty entries are pruned before the row is written.
type Instructor struct {
	gorm.Model
	Name            string         `json:"name"`
	Tagline         string         `json:"tagline"`
	Background      string         `json:"background" gorm:"type:text"`
	Bio             string         `json:"bio" gorm:"type:text"`
	Email           string         `json:"email" gorm:"index;not null"`
	ProfileImageURL string         `json:"profile_image_url"`
	SocialLinks     datatypes.JSON `json:"social_links"`
	IsActive        bool           `json:"is_active" gorm:"default:true"`
	IsDeleted       bool           `gorm:"default:false" json:"-"`
}
