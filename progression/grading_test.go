package progression

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"sprout/config"
	"sprout/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const quizBank = `[
	{"id":"q1","question":"Pick the need","options":["Rent","Concert"],"correctAnswer":0},
	{"id":"q2","question":"Pick the want","options":["Groceries","Streaming"],"correctAnswer":1},
	{"id":"q3","type":"true_false","question":"Interest compounds","correctAnswer":true},
	{"id":"q4","type":"numeric","question":"20% of 125","correctAnswer":25,"tolerance":0.5}
]`

func answers(raw ...string) Submission {
	sub := Submission{TimeSpent: 90}
	for _, r := range raw {
		sub.Answers = append(sub.Answers, json.RawMessage(r))
	}
	return sub
}

// quizFixture seeds a one-lesson course with a quiz and an enrolled student
func quizFixture(t *testing.T, db *gorm.DB) (*models.User, *models.Course, *models.Quiz) {
	t.Helper()
	school := seedSchool(t, db)
	user := seedStudent(t, db, school, time.Now())
	course, lessons := seedCourse(t, db, 1)
	seedEnrollment(t, db, user.ID, course.ID)
	quiz := seedQuiz(t, db, lessons[0].ID, 70, quizBank)
	return user, course, quiz
}

func TestSubmitQuizPassing(t *testing.T) {
	db := newTestDB(t)
	user, _, quiz := quizFixture(t, db)

	// Three of four correct: 75% against a 70% bar
	result, err := SubmitQuiz(db, user.ID, quiz.ID, answers(`0`, `0`, `true`, `25`), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Score)
	assert.Equal(t, 4, result.MaxScore)
	assert.Equal(t, 75, result.Percentage)
	assert.True(t, result.Passed)
	assert.Equal(t, 1, result.AttemptNumber)
	assert.Equal(t, config.AppConfig.QuizPassXP, result.XPAwarded)
	require.NotNil(t, result.Ledger)
	assert.Equal(t, config.AppConfig.QuizPassXP, result.Ledger.NewTotalPoints)
	require.NotNil(t, result.Grade)
	assert.Equal(t, 75, *result.Grade)

	require.Len(t, result.Answers, 4)
	assert.True(t, result.Answers[0].IsCorrect)
	assert.False(t, result.Answers[1].IsCorrect)
}

func TestSubmitQuizFailing(t *testing.T) {
	db := newTestDB(t)
	user, _, quiz := quizFixture(t, db)

	result, err := SubmitQuiz(db, user.ID, quiz.ID, answers(`1`, `0`, `false`, `99`), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
	assert.False(t, result.Passed)
	assert.Zero(t, result.XPAwarded)
	assert.Nil(t, result.Ledger)
	assert.Nil(t, result.Grade)

	// A failed attempt is still history
	var count int64
	require.NoError(t, db.Model(&models.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", user.ID, quiz.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	stored := reloadUser(t, db, user.ID)
	assert.Zero(t, stored.TotalPoints)
}

func TestSubmitQuizPassBonusAwardedOnce(t *testing.T) {
	db := newTestDB(t)
	user, _, quiz := quizFixture(t, db)
	base := time.Now()

	first, err := SubmitQuiz(db, user.ID, quiz.ID, answers(`0`, `0`, `true`, `25`), base)
	require.NoError(t, err)
	assert.Equal(t, config.AppConfig.QuizPassXP, first.XPAwarded)

	// A later perfect score raises the grade but pays no second bonus
	second, err := SubmitQuiz(db, user.ID, quiz.ID, answers(`0`, `1`, `true`, `25`), base.Add(time.Hour))
	require.NoError(t, err)

	assert.True(t, second.Passed)
	assert.Equal(t, 2, second.AttemptNumber)
	assert.Zero(t, second.XPAwarded)
	assert.Nil(t, second.Ledger)
	require.NotNil(t, second.Grade)
	assert.Equal(t, 100, *second.Grade)

	stored := reloadUser(t, db, user.ID)
	assert.Equal(t, config.AppConfig.QuizPassXP, stored.TotalPoints)

	var awards int64
	require.NoError(t, db.Model(&models.QuizPassAward{}).
		Where("user_id = ? AND quiz_id = ?", user.ID, quiz.ID).Count(&awards).Error)
	assert.EqualValues(t, 1, awards)
}

func TestSubmitQuizConcurrentPassesSingleBonus(t *testing.T) {
	db := newTestDB(t)
	user, _, quiz := quizFixture(t, db)

	// Clock offsets keep both submissions outside each other's duplicate
	// window so the only arbiter of the bonus is the pass-award insert.
	base := time.Now()
	clocks := []time.Time{base.Add(time.Hour), base.Add(2 * time.Hour)}

	var wg sync.WaitGroup
	results := make([]*QuizResult, 2)
	errs := make([]error, 2)
	for g := 0; g < 2; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			results[g], errs[g] = SubmitQuiz(db, user.ID, quiz.ID, answers(`0`, `1`, `true`, `25`), clocks[g])
		}(g)
	}
	wg.Wait()

	awarded := 0
	for g := 0; g < 2; g++ {
		require.NoError(t, errs[g])
		require.True(t, results[g].Passed)
		if results[g].XPAwarded > 0 {
			awarded++
		}
	}
	assert.Equal(t, 1, awarded, "exactly one submission wins the bonus")

	var attempts int64
	require.NoError(t, db.Model(&models.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", user.ID, quiz.ID).Count(&attempts).Error)
	assert.EqualValues(t, 2, attempts, "both attempts are history")

	var awards int64
	require.NoError(t, db.Model(&models.QuizPassAward{}).
		Where("user_id = ? AND quiz_id = ?", user.ID, quiz.ID).Count(&awards).Error)
	assert.EqualValues(t, 1, awards)

	stored := reloadUser(t, db, user.ID)
	assert.Equal(t, config.AppConfig.QuizPassXP, stored.TotalPoints)
}

func TestSubmitQuizDuplicateWindow(t *testing.T) {
	db := newTestDB(t)
	user, _, quiz := quizFixture(t, db)
	base := time.Now()

	_, err := SubmitQuiz(db, user.ID, quiz.ID, answers(`0`, `1`, `true`, `25`), base)
	require.NoError(t, err)

	// A double-click lands within the rejection window
	_, err = SubmitQuiz(db, user.ID, quiz.ID, answers(`0`, `1`, `true`, `25`), base.Add(time.Second))
	assert.ErrorIs(t, err, ErrConflictDuplicate)

	var count int64
	require.NoError(t, db.Model(&models.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", user.ID, quiz.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitQuizGradeAveragesBestPerQuiz(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	user := seedStudent(t, db, school, time.Now())
	course, lessons := seedCourse(t, db, 2)
	seedEnrollment(t, db, user.ID, course.ID)
	quizA := seedQuiz(t, db, lessons[0].ID, 70, quizBank)
	quizB := seedQuiz(t, db, lessons[1].ID, 70, quizBank)
	base := time.Now()

	// Quiz A best: 75. Quiz B best: 100. Grade: round((75+100)/2) = 88.
	_, err := SubmitQuiz(db, user.ID, quizA.ID, answers(`0`, `0`, `true`, `25`), base)
	require.NoError(t, err)

	result, err := SubmitQuiz(db, user.ID, quizB.ID, answers(`0`, `1`, `true`, `25`), base.Add(time.Hour))
	require.NoError(t, err)

	require.NotNil(t, result.Grade)
	assert.Equal(t, 88, *result.Grade)

	enrollment := reloadEnrollment(t, db, user.ID, course.ID)
	require.NotNil(t, enrollment.Grade)
	assert.Equal(t, 88, *enrollment.Grade)
	require.NotNil(t, enrollment.GradePercent)
	assert.Equal(t, 88, *enrollment.GradePercent)
}

func TestSubmitQuizAnswerCountMismatch(t *testing.T) {
	db := newTestDB(t)
	user, _, quiz := quizFixture(t, db)

	_, err := SubmitQuiz(db, user.ID, quiz.ID, answers(`0`, `1`), time.Now())
	assert.ErrorIs(t, err, ErrPreconditionFailed)

	// Nothing was persisted
	var count int64
	require.NoError(t, db.Model(&models.QuizAttempt{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitQuizEmptyQuestionBank(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	user := seedStudent(t, db, school, time.Now())
	course, lessons := seedCourse(t, db, 1)
	seedEnrollment(t, db, user.ID, course.ID)
	quiz := seedQuiz(t, db, lessons[0].ID, 70, `[]`)

	// A zero-question bank must be rejected before any division or persistence
	_, err := SubmitQuiz(db, user.ID, quiz.ID, Submission{}, time.Now())
	assert.ErrorIs(t, err, ErrPreconditionFailed)

	var count int64
	require.NoError(t, db.Model(&models.QuizAttempt{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitQuizUnknownQuiz(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	user := seedStudent(t, db, school, time.Now())

	_, err := SubmitQuiz(db, user.ID, 404, answers(`0`), time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitQuizWithoutEnrollment(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	user := seedStudent(t, db, school, time.Now())
	_, lessons := seedCourse(t, db, 1)
	quiz := seedQuiz(t, db, lessons[0].ID, 70, quizBank)

	// The attempt still records and pays the bonus; there is just no
	// enrollment grade to refresh.
	result, err := SubmitQuiz(db, user.ID, quiz.ID, answers(`0`, `1`, `true`, `25`), time.Now())
	require.NoError(t, err)

	assert.True(t, result.Passed)
	assert.Equal(t, config.AppConfig.QuizPassXP, result.XPAwarded)
	assert.Nil(t, result.Grade)
}
