package progression

import (
	"testing"

	"sprout/config"
	"sprout/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteLessonAwardsXPAndProgress(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	user := seedStudent(t, db, school, noon.AddDate(0, 0, -1))
	course, lessons := seedCourse(t, db, 2)
	seedEnrollment(t, db, user.ID, course.ID)

	result, err := CompleteLesson(db, user.ID, lessons[0].ID, 300, noon)
	require.NoError(t, err)

	assert.False(t, result.AlreadyCompleted)
	assert.False(t, result.CompletedCourse)
	assert.Equal(t, 10, result.XPEarned)
	assert.InDelta(t, 50, result.Enrollment.Progress, 0.001)
	assert.Equal(t, models.EnrollmentInProgress, result.Enrollment.Status)
	assert.Equal(t, 10, result.Ledger.NewTotalPoints)
	assert.Equal(t, 1, result.Ledger.CurrentStreak)
}

func TestCompleteLessonCourseCompletionBonus(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	user := seedStudent(t, db, school, noon)
	course, lessons := seedCourse(t, db, 2)
	seedEnrollment(t, db, user.ID, course.ID)

	_, err := CompleteLesson(db, user.ID, lessons[0].ID, 0, noon)
	require.NoError(t, err)

	result, err := CompleteLesson(db, user.ID, lessons[1].ID, 0, noon)
	require.NoError(t, err)

	assert.True(t, result.CompletedCourse)
	assert.Equal(t, 10+config.AppConfig.CourseCompletionXP, result.XPEarned)
	assert.Equal(t, models.EnrollmentCompleted, result.Enrollment.Status)

	stored := reloadUser(t, db, user.ID)
	assert.Equal(t, 20+config.AppConfig.CourseCompletionXP, stored.TotalPoints)
}

func TestCompleteLessonReplayEarnsNothing(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	user := seedStudent(t, db, school, noon)
	course, lessons := seedCourse(t, db, 2)
	seedEnrollment(t, db, user.ID, course.ID)

	_, err := CompleteLesson(db, user.ID, lessons[0].ID, 0, noon)
	require.NoError(t, err)
	before := reloadUser(t, db, user.ID)

	result, err := CompleteLesson(db, user.ID, lessons[0].ID, 0, noon)
	require.NoError(t, err)

	assert.True(t, result.AlreadyCompleted)
	assert.Zero(t, result.XPEarned)
	assert.InDelta(t, 50, result.Enrollment.Progress, 0.001)

	after := reloadUser(t, db, user.ID)
	assert.Equal(t, before.TotalPoints, after.TotalPoints)
	assert.Equal(t, before.UpdatedAt.Unix(), after.UpdatedAt.Unix(), "replay is not a qualifying activity")
}

func TestCompleteLessonUnknownLesson(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	user := seedStudent(t, db, school, noon)

	_, err := CompleteLesson(db, user.ID, 404, 0, noon)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteLessonRequiresEnrollment(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	user := seedStudent(t, db, school, noon)
	_, lessons := seedCourse(t, db, 1)

	_, err := CompleteLesson(db, user.ID, lessons[0].ID, 0, noon)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteLessonLegacyFlatReward(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	user := seedStudent(t, db, school, noon)
	course, _ := seedCourse(t, db, 3)
	seedEnrollment(t, db, user.ID, course.ID)

	// No lesson reference: flat reward, increment-based progress
	result, err := CompleteLessonLegacy(db, user.ID, course.ID, nil, 34, noon)
	require.NoError(t, err)

	assert.Equal(t, 10, result.XPEarned)
	assert.InDelta(t, 34, result.Enrollment.Progress, 0.001)
	assert.Equal(t, models.EnrollmentInProgress, result.Enrollment.Status)
}

func TestCompleteLessonLegacyWithLessonGuardsDoubleXP(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	user := seedStudent(t, db, school, noon)
	course, lessons := seedCourse(t, db, 2)
	seedEnrollment(t, db, user.ID, course.ID)

	result, err := CompleteLessonLegacy(db, user.ID, course.ID, &lessons[0].ID, 50, noon)
	require.NoError(t, err)
	assert.False(t, result.AlreadyCompleted)
	assert.Equal(t, 10, result.XPEarned)

	// Replaying with the same lesson still moves progress but pays no lesson XP
	result, err = CompleteLessonLegacy(db, user.ID, course.ID, &lessons[0].ID, 50, noon)
	require.NoError(t, err)
	assert.True(t, result.AlreadyCompleted)
	assert.True(t, result.CompletedCourse)
	assert.Equal(t, config.AppConfig.CourseCompletionXP, result.XPEarned)

	stored := reloadUser(t, db, user.ID)
	assert.Equal(t, 10+config.AppConfig.CourseCompletionXP, stored.TotalPoints)
}
