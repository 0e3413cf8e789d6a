package models

import "gorm.io/gorm"

// School is a tenant; every user belongs to exactly one school
type School struct {
	gorm.Model
	Name         string `json:"name" gorm:"not null"`
	Domain       string `json:"domain" gorm:"unique"`
	PrimaryColor string `json:"primary_color" gorm:"default:'#18453B'"`
	City         string `json:"city"`
	State        string `json:"state"`
	IsActive     bool   `json:"is_active" gorm:"default:true"`
	IsDeleted    bool   `gorm:"default:false"`
}
