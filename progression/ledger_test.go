package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noon = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func TestApplyActivityStreaks(t *testing.T) {
	cases := []struct {
		name         string
		lastActivity time.Time
		startStreak  int
		wantStreak   int
		wantUpdated  bool
	}{
		{"same day keeps streak", noon.Add(-3 * time.Hour), 4, 4, false},
		{"yesterday extends streak", noon.AddDate(0, 0, -1), 4, 5, true},
		{"late yesterday still extends", time.Date(2026, time.March, 9, 23, 59, 0, 0, time.UTC), 4, 5, true},
		{"two day gap resets to one", noon.AddDate(0, 0, -2), 4, 1, true},
		{"long gap resets to one", noon.AddDate(0, 0, -30), 9, 1, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := newTestDB(t)
			school := seedSchool(t, db)
			user := seedStudent(t, db, school, tc.lastActivity)
			require.NoError(t, db.Model(user).UpdateColumns(map[string]interface{}{
				"current_streak": tc.startStreak,
				"longest_streak": tc.startStreak,
				"updated_at":     tc.lastActivity,
			}).Error)

			result, err := ApplyActivity(db, user.ID, 10, noon)
			require.NoError(t, err)

			assert.Equal(t, tc.wantStreak, result.CurrentStreak)
			assert.Equal(t, tc.wantUpdated, result.StreakUpdated)

			stored := reloadUser(t, db, user.ID)
			assert.Equal(t, tc.wantStreak, stored.CurrentStreak)
			assert.Equal(t, noon.Unix(), stored.UpdatedAt.Unix())
		})
	}
}

func TestApplyActivityLongestStreakHighWater(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	user := seedStudent(t, db, school, noon.AddDate(0, 0, -1))
	require.NoError(t, db.Model(user).UpdateColumns(map[string]interface{}{
		"current_streak": 6,
		"longest_streak": 6,
		"updated_at":     noon.AddDate(0, 0, -1),
	}).Error)

	result, err := ApplyActivity(db, user.ID, 5, noon)
	require.NoError(t, err)
	assert.Equal(t, 7, result.CurrentStreak)
	assert.Equal(t, 7, result.LongestStreak)

	// A reset never lowers the high water mark
	result, err = ApplyActivity(db, user.ID, 5, noon.AddDate(0, 0, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, result.CurrentStreak)
	assert.Equal(t, 7, result.LongestStreak)
}

func TestApplyActivityLevels(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	user := seedStudent(t, db, school, noon)
	require.NoError(t, db.Model(user).UpdateColumn("total_points", 90).Error)

	result, err := ApplyActivity(db, user.ID, 5, noon)
	require.NoError(t, err)
	assert.Equal(t, 95, result.NewTotalPoints)
	assert.Equal(t, 1, result.Level)
	assert.False(t, result.LeveledUp)

	// 95 + 10 crosses the 100 point boundary into level 2
	result, err = ApplyActivity(db, user.ID, 10, noon)
	require.NoError(t, err)
	assert.Equal(t, 105, result.NewTotalPoints)
	assert.Equal(t, 2, result.Level)
	assert.True(t, result.LeveledUp)

	stored := reloadUser(t, db, user.ID)
	assert.Equal(t, 2, stored.Level())
}

func TestApplyActivityZeroXPStillCountsForStreak(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	user := seedStudent(t, db, school, noon.AddDate(0, 0, -1))
	require.NoError(t, db.Model(user).UpdateColumns(map[string]interface{}{
		"current_streak": 2,
		"longest_streak": 2,
		"updated_at":     noon.AddDate(0, 0, -1),
	}).Error)

	result, err := ApplyActivity(db, user.ID, 0, noon)
	require.NoError(t, err)
	assert.Equal(t, 0, result.XPAwarded)
	assert.Equal(t, 3, result.CurrentStreak)
}

func TestApplyActivityRejectsNegativeDelta(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	user := seedStudent(t, db, school, noon)

	_, err := ApplyActivity(db, user.ID, -1, noon)
	assert.ErrorIs(t, err, ErrPreconditionFailed)
}

func TestApplyActivityMissingUser(t *testing.T) {
	db := newTestDB(t)

	_, err := ApplyActivity(db, 999, 10, noon)
	assert.ErrorIs(t, err, ErrNotFound)
}
