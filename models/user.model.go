package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleStudent    = "STUDENT"
	RoleTeacher    = "TEACHER"
	RoleSuperAdmin = "SUPER_ADMIN"
)

type User struct {
	gorm.Model
	FirstName string `json:"first_name" gorm:"not null"`
	LastName  string `json:"last_name" gorm:"not null"`
	Email     string `json:"email" gorm:"unique;not null"`
	Password  string `json:"-" gorm:"not null"`
	Role      string `json:"role" gorm:"default:'STUDENT'"` // STUDENT, TEACHER, SUPER_ADMIN
	SchoolID  uint   `json:"school_id" gorm:"index;not null"`

	// Gamification state. TotalPoints only ever increases; LongestStreak >= CurrentStreak.
	// UpdatedAt doubles as the last-activity timestamp for streak calculation.
	TotalPoints   int `json:"total_points" gorm:"default:0"`
	CurrentStreak int `json:"current_streak" gorm:"default:0"`
	LongestStreak int `json:"longest_streak" gorm:"default:0"`

	ResetToken       string     `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	LastLogin *time.Time `json:"last_login"`
	IsDeleted bool       `gorm:"default:false"`

	School School `json:"-" gorm:"foreignKey:SchoolID"`
}

// Level is derived from XP, never stored
func (u *User) Level() int {
	return u.TotalPoints/100 + 1
}
