package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses
const (
	EnrollmentNotStarted = "NOT_STARTED"
	EnrollmentInProgress = "IN_PROGRESS"
	EnrollmentCompleted  = "COMPLETED"
)

// Enrollment tracks a user's relationship to a course.
// Status is COMPLETED iff Progress >= 100; CompletedAt is written exactly once,
// on the transition into COMPLETED.
type Enrollment struct {
	gorm.Model
	UserID   uint    `json:"user_id" gorm:"uniqueIndex:idx_user_course;not null"`
	CourseID uint    `json:"course_id" gorm:"uniqueIndex:idx_user_course;not null"`
	Status   string  `json:"status" gorm:"default:'NOT_STARTED'"`
	Progress float64 `json:"progress" gorm:"default:0"` // 0-100

	Grade        *int       `json:"grade"`         // average best passing quiz percentage
	GradePercent *int       `json:"grade_percent"` // kept in lockstep with Grade
	CompletedAt  *time.Time `json:"completed_at"`
	LastAccessed *time.Time `json:"last_accessed_at"`

	IsDeleted bool `gorm:"default:false"`

	User   User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course Course `json:"course" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

// LessonCompletion is the append-only (user, lesson) completion log.
// The composite unique index is the idempotency guard against double XP.
type LessonCompletion struct {
	gorm.Model
	UserID    uint `json:"user_id" gorm:"uniqueIndex:idx_user_lesson;not null"`
	LessonID  uint `json:"lesson_id" gorm:"uniqueIndex:idx_user_lesson;not null"`
	TimeSpent int  `json:"time_spent" gorm:"default:0"` // seconds

	User   User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Lesson Lesson `json:"-" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`
}
