package progression

import (
	"errors"
	"time"

	"sprout/config"
	"sprout/models"

	"gorm.io/gorm"
)

// CompleteLessonResult is what the web layer reports back after a completion
type CompleteLessonResult struct {
	AlreadyCompleted bool              `json:"already_completed"`
	CompletedCourse  bool              `json:"completed_course"`
	Enrollment       models.Enrollment `json:"enrollment"`
	XPEarned         int               `json:"xp_earned"`
	Ledger           LedgerResult      `json:"ledger"`
}

// CompleteLesson is the canonical completion flow: record the completion,
// recount enrollment progress, then settle XP and streak, all in one
// transaction. Replaying a completion is a no-op that earns nothing.
func CompleteLesson(db *gorm.DB, userID, lessonID uint, timeSpent int, now time.Time) (*CompleteLessonResult, error) {
	lesson, err := loadLesson(db, lessonID)
	if err != nil {
		return nil, err
	}

	var result CompleteLessonResult
	txErr := db.Transaction(func(tx *gorm.DB) error {
		rec, err := RecordLessonCompletion(tx, userID, lesson, timeSpent)
		if err != nil {
			return err
		}

		if rec.AlreadyCompleted {
			enrollment, err := loadEnrollment(tx, userID, lesson.CourseID)
			if err != nil {
				return err
			}
			result = CompleteLessonResult{AlreadyCompleted: true, Enrollment: *enrollment}
			return nil
		}

		progress, err := RecomputeProgress(tx, userID, lesson.CourseID, now)
		if err != nil {
			return err
		}

		xp := rec.XPReward
		if progress.CompletedCourse {
			xp += config.AppConfig.CourseCompletionXP
		}

		ledger, err := ApplyActivity(tx, userID, xp, now)
		if err != nil {
			return err
		}

		result = CompleteLessonResult{
			CompletedCourse: progress.CompletedCourse,
			Enrollment:      progress.Enrollment,
			XPEarned:        xp,
			Ledger:          *ledger,
		}
		return nil
	})
	if txErr != nil {
		return nil, translateDBError(txErr)
	}
	return &result, nil
}

// CompleteLessonLegacy is the deprecated increment-based flow used by clients
// that report course progress without enumerating lessons. lessonID is
// optional; when present the completion row still guards against double XP.
func CompleteLessonLegacy(db *gorm.DB, userID, courseID uint, lessonID *uint, increment float64, now time.Time) (*CompleteLessonResult, error) {
	var result CompleteLessonResult
	txErr := db.Transaction(func(tx *gorm.DB) error {
		lessonXP := 0
		alreadyCompleted := false

		if lessonID != nil {
			lesson, err := loadLesson(tx, *lessonID)
			if err != nil {
				return err
			}
			rec, err := RecordLessonCompletion(tx, userID, lesson, 0)
			if err != nil {
				return err
			}
			alreadyCompleted = rec.AlreadyCompleted
			lessonXP = rec.XPReward
		} else {
			// No lesson reference at all: pay the flat legacy reward.
			lessonXP = 10
		}

		progress, err := IncrementProgress(tx, userID, courseID, increment, now)
		if err != nil {
			return err
		}

		xp := lessonXP
		if progress.CompletedCourse {
			xp += config.AppConfig.CourseCompletionXP
		}

		ledger, err := ApplyActivity(tx, userID, xp, now)
		if err != nil {
			return err
		}

		result = CompleteLessonResult{
			AlreadyCompleted: alreadyCompleted,
			CompletedCourse:  progress.CompletedCourse,
			Enrollment:       progress.Enrollment,
			XPEarned:         xp,
			Ledger:           *ledger,
		}
		return nil
	})
	if txErr != nil {
		return nil, translateDBError(txErr)
	}
	return &result, nil
}

func loadLesson(db *gorm.DB, lessonID uint) (*models.Lesson, error) {
	var lesson models.Lesson
	err := db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translateDBError(err)
	}
	return &lesson, nil
}
