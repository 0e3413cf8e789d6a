package models

import (
	"time"

	"gorm.io/gorm"
)

// Class is a teacher-managed group of students joined by code
type Class struct {
	gorm.Model
	TeacherID uint   `json:"teacher_id" gorm:"index;not null"`
	SchoolID  uint   `json:"school_id" gorm:"index;not null"`
	Name      string `json:"name" gorm:"not null"`
	Code      string `json:"code" gorm:"unique;not null"` // join code shared with students
	IsActive  bool   `json:"is_active" gorm:"default:true"`
	IsDeleted bool   `gorm:"default:false"`

	Teacher User   `json:"-" gorm:"foreignKey:TeacherID"`
	School  School `json:"-" gorm:"foreignKey:SchoolID"`
}

// ClassStudent is the class membership join row
type ClassStudent struct {
	gorm.Model
	ClassID   uint `json:"class_id" gorm:"uniqueIndex:idx_class_student;not null"`
	StudentID uint `json:"student_id" gorm:"uniqueIndex:idx_class_student;not null"`

	Class   Class `json:"-" gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE"`
	Student User  `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}

// Assignment is a course assigned to a class with a due date. ReminderSent
// flips once when the deadline scheduler has notified the class.
type Assignment struct {
	gorm.Model
	ClassID      uint      `json:"class_id" gorm:"index;not null"`
	CourseID     uint      `json:"course_id" gorm:"index;not null"`
	Title        string    `json:"title"`
	DueDate      time.Time `json:"due_date"`
	ReminderSent bool      `json:"reminder_sent" gorm:"default:false"`
	IsDeleted    bool      `gorm:"default:false"`

	Class  Class  `json:"-" gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE"`
	Course Course `json:"course" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
