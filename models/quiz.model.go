package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quiz belongs to a lesson and stores its question bank as a JSON array.
// Question shapes are a tagged union handled by the progression package.
type Quiz struct {
	gorm.Model
	LessonID     uint           `json:"lesson_id" gorm:"uniqueIndex;not null"`
	Title        string         `json:"title" gorm:"not null"`
	PassingScore int            `json:"passing_score" gorm:"default:70"` // percentage
	Questions    datatypes.JSON `json:"questions"`
	IsDeleted    bool           `gorm:"default:false"`

	Lesson Lesson `json:"-" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`
}

// QuizAttempt is one scored submission. Rows are append-only history; "best
// attempt" and "first pass" are derived by querying, never by mutating rows.
type QuizAttempt struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"index;not null"`
	QuizID   uint `json:"quiz_id" gorm:"index;not null"`
	CourseID uint `json:"course_id" gorm:"index;not null"`

	QuizTitle     string         `json:"quiz_title"`
	Score         int            `json:"score"`
	MaxScore      int            `json:"max_score"`
	Percentage    int            `json:"percentage"`
	Passed        bool           `json:"passed" gorm:"default:false"`
	AttemptNumber int            `json:"attempt_number" gorm:"default:1"`
	TimeSpent     int            `json:"time_spent" gorm:"default:0"` // seconds
	Answers       datatypes.JSON `json:"answers"`                     // graded transcript

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Quiz Quiz `json:"-" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
}

// QuizPassAward records the one-time pass bonus per (user, quiz). The unique
// index turns the "has the user already passed" check into an atomic insert,
// so two concurrent passing submissions can never both award the bonus.
type QuizPassAward struct {
	gorm.Model
	UserID        uint `json:"user_id" gorm:"uniqueIndex:idx_user_quiz_award;not null"`
	QuizID        uint `json:"quiz_id" gorm:"uniqueIndex:idx_user_quiz_award;not null"`
	QuizAttemptID uint `json:"quiz_attempt_id" gorm:"not null"`
	XPAwarded     int  `json:"xp_awarded"`
}
