package models

import "gorm.io/gorm"

// Course represents a learning course
type Course struct {
	gorm.Model
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	Category    string `json:"category" gorm:"default:'GENERAL'"` // BUDGETING, INVESTING, CREDIT, ...
	Duration    int    `json:"duration" gorm:"default:0"`         // estimated minutes
	IsPublished bool   `json:"is_published" gorm:"default:true"`
	IsDeleted   bool   `gorm:"default:false"`
}

// Lesson belongs to a course; OrderIndex fixes its position
type Lesson struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Title      string `json:"title" gorm:"not null"`
	Content    string `json:"content" gorm:"type:text"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	XPReward   int    `json:"xp_reward" gorm:"default:10"`
	IsDeleted  bool   `gorm:"default:false"`

	Course Course `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
