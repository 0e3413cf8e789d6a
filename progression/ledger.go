package progression

import (
	"fmt"
	"time"

	"sprout/models"

	"gorm.io/gorm"
)

// LedgerResult reports the gamification outcome of one qualifying activity
type LedgerResult struct {
	XPAwarded      int  `json:"xp_awarded"`
	NewTotalPoints int  `json:"new_total_points"`
	Level          int  `json:"level"`
	LeveledUp      bool `json:"leveled_up"`
	CurrentStreak  int  `json:"current_streak"`
	LongestStreak  int  `json:"longest_streak"`
	StreakUpdated  bool `json:"streak_updated"`
}

// ApplyActivity credits an XP delta and advances the daily streak for a user
// performing a qualifying activity at `now`. The user's UpdatedAt timestamp
// doubles as the last-activity marker: same calendar day leaves the streak
// alone, exactly one day later extends it, any longer gap resets it to 1.
// Callers must invoke this at most once per logical activity event.
func ApplyActivity(tx *gorm.DB, userID uint, xpDelta int, now time.Time) (*LedgerResult, error) {
	if xpDelta < 0 {
		return nil, fmt.Errorf("%w: negative XP delta", ErrPreconditionFailed)
	}

	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		return nil, translateDBError(err)
	}

	today := calendarDay(now)
	yesterday := today.AddDate(0, 0, -1)
	lastActivity := calendarDay(user.UpdatedAt)

	newStreak := user.CurrentStreak
	if !lastActivity.Equal(today) {
		if lastActivity.Equal(yesterday) {
			newStreak = user.CurrentStreak + 1
		} else {
			newStreak = 1
		}
	}

	oldPoints := user.TotalPoints
	streakUpdated := newStreak != user.CurrentStreak
	newPoints := oldPoints + xpDelta
	newLongest := user.LongestStreak
	if newStreak > newLongest {
		newLongest = newStreak
	}

	// UpdateColumns so `now` lands in updated_at verbatim; Save would stamp
	// its own wall-clock time and break the last-activity bookkeeping.
	err := tx.Model(&models.User{}).Where("id = ?", user.ID).
		UpdateColumns(map[string]interface{}{
			"total_points":   newPoints,
			"current_streak": newStreak,
			"longest_streak": newLongest,
			"updated_at":     now,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("update user ledger: %w", translateDBError(err))
	}

	return &LedgerResult{
		XPAwarded:      xpDelta,
		NewTotalPoints: newPoints,
		Level:          newPoints/100 + 1,
		LeveledUp:      newPoints/100 > oldPoints/100,
		CurrentStreak:  newStreak,
		LongestStreak:  newLongest,
		StreakUpdated:  streakUpdated,
	}, nil
}

// calendarDay strips the time of day, keeping the location
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
