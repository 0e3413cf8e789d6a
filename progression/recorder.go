package progression

import (
	"errors"
	"fmt"

	"sprout/models"

	"gorm.io/gorm"
)

// CompletionResult reports whether a lesson completion was newly recorded and
// how much XP the lesson is worth. A replayed completion earns zero XP.
type CompletionResult struct {
	AlreadyCompleted bool
	XPReward         int
}

// RecordLessonCompletion idempotently records that a user finished a lesson.
// It only writes the completion row; enrollment and XP updates are separate
// steps the caller runs inside the same transaction. The unique index on
// (user_id, lesson_id) is the real guard: two concurrent first completions
// collapse into one row and one XP reward.
func RecordLessonCompletion(tx *gorm.DB, userID uint, lesson *models.Lesson, timeSpent int) (*CompletionResult, error) {
	var existing models.LessonCompletion
	err := tx.Where("user_id = ? AND lesson_id = ?", userID, lesson.ID).First(&existing).Error
	if err == nil {
		return &CompletionResult{AlreadyCompleted: true, XPReward: 0}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, translateDBError(err)
	}

	completion := models.LessonCompletion{
		UserID:    userID,
		LessonID:  lesson.ID,
		TimeSpent: timeSpent,
	}
	if err := tx.Create(&completion).Error; err != nil {
		if isUniqueViolation(err) {
			// Lost the race to a concurrent request; treat as a replay.
			return &CompletionResult{AlreadyCompleted: true, XPReward: 0}, nil
		}
		return nil, fmt.Errorf("record lesson completion: %w", translateDBError(err))
	}

	return &CompletionResult{AlreadyCompleted: false, XPReward: lesson.XPReward}, nil
}
