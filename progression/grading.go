package progression

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"sprout/config"
	"sprout/models"

	"gorm.io/gorm"
)

// duplicateWindow is the trailing window inside which a second submission of
// the same quiz by the same user is treated as a double-click and rejected.
const duplicateWindow = 5 * time.Second

// Submission is an ordered answer set for one quiz
type Submission struct {
	Answers   []json.RawMessage `json:"answers"`
	TimeSpent int               `json:"time_spent"`
}

// QuizResult is the graded outcome of one submission
type QuizResult struct {
	Score         int            `json:"score"`
	MaxScore      int            `json:"max_score"`
	Percentage    int            `json:"percentage"`
	Passed        bool           `json:"passed"`
	PassingScore  int            `json:"passing_score"`
	AttemptNumber int            `json:"attempt_number"`
	XPAwarded     int            `json:"xp_awarded"`
	Answers       []GradedAnswer `json:"answers"`
	Grade         *int           `json:"grade"` // enrollment aggregate after this attempt
	Ledger        *LedgerResult  `json:"ledger,omitempty"`
}

// SubmitQuiz grades a submission, appends an attempt row, settles the
// first-pass XP bonus and refreshes the enrollment's aggregate grade, all in
// one serializable transaction. Attempts are append-only; "first pass" is
// decided by the unique (user, quiz) pass-award insert, so two concurrent
// passing submissions record two attempts but exactly one bonus.
func SubmitQuiz(db *gorm.DB, userID, quizID uint, sub Submission, now time.Time) (*QuizResult, error) {
	var quiz models.Quiz
	err := db.Preload("Lesson").Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translateDBError(err)
	}

	questions, err := ParseQuestions(quiz.Questions)
	if err != nil {
		return nil, err
	}

	// Grading is pure and deterministic; only persistence needs the transaction.
	correct, transcript, err := GradeSubmission(questions, sub.Answers)
	if err != nil {
		return nil, err
	}

	percentage := int(math.Round(float64(correct) / float64(len(questions)) * 100))
	passed := percentage >= quiz.PassingScore
	courseID := quiz.Lesson.CourseID

	answersJSON, err := json.Marshal(transcript)
	if err != nil {
		return nil, fmt.Errorf("encode transcript: %w", err)
	}

	result := QuizResult{
		Score:        correct,
		MaxScore:     len(questions),
		Percentage:   percentage,
		Passed:       passed,
		PassingScore: quiz.PassingScore,
		Answers:      transcript,
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		// Double-click defense: reject if another attempt landed moments ago.
		var recent int64
		if err := tx.Model(&models.QuizAttempt{}).
			Where("user_id = ? AND quiz_id = ? AND created_at > ?", userID, quizID, now.Add(-duplicateWindow)).
			Count(&recent).Error; err != nil {
			return translateDBError(err)
		}
		if recent > 0 {
			return fmt.Errorf("%w: please wait before submitting again", ErrConflictDuplicate)
		}

		var priorAttempts int64
		if err := tx.Model(&models.QuizAttempt{}).
			Where("user_id = ? AND quiz_id = ?", userID, quizID).
			Count(&priorAttempts).Error; err != nil {
			return translateDBError(err)
		}
		result.AttemptNumber = int(priorAttempts) + 1

		attempt := models.QuizAttempt{
			UserID:        userID,
			QuizID:        quizID,
			CourseID:      courseID,
			QuizTitle:     quiz.Title,
			Score:         correct,
			MaxScore:      len(questions),
			Percentage:    percentage,
			Passed:        passed,
			AttemptNumber: result.AttemptNumber,
			TimeSpent:     sub.TimeSpent,
			Answers:       answersJSON,
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return translateDBError(err)
		}

		if passed {
			xp, err := settlePassBonus(tx, userID, quizID, attempt.ID)
			if err != nil {
				return err
			}
			result.XPAwarded = xp
			if xp > 0 {
				ledger, err := ApplyActivity(tx, userID, xp, now)
				if err != nil {
					return err
				}
				result.Ledger = ledger
			}

			grade, err := refreshEnrollmentGrade(tx, userID, courseID)
			if err != nil {
				return err
			}
			result.Grade = grade
		}
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if txErr != nil {
		return nil, translateDBError(txErr)
	}

	return &result, nil
}

// settlePassBonus awards the one-time quiz-pass XP. The unique index on
// (user_id, quiz_id) makes this an atomic conditional write: whoever inserts
// the award row first gets the bonus, everyone else gets zero.
func settlePassBonus(tx *gorm.DB, userID, quizID, attemptID uint) (int, error) {
	award := models.QuizPassAward{
		UserID:        userID,
		QuizID:        quizID,
		QuizAttemptID: attemptID,
		XPAwarded:     config.AppConfig.QuizPassXP,
	}
	if err := tx.Create(&award).Error; err != nil {
		if isUniqueViolation(err) {
			return 0, nil // already passed before, or a concurrent pass won
		}
		return 0, translateDBError(err)
	}
	return award.XPAwarded, nil
}

// refreshEnrollmentGrade recomputes the enrollment grade as the rounded
// average of each distinct quiz's best passing percentage for the course
func refreshEnrollmentGrade(tx *gorm.DB, userID, courseID uint) (*int, error) {
	var enrollment models.Enrollment
	err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // quiz taken outside an enrollment; nothing to aggregate
	}
	if err != nil {
		return nil, translateDBError(err)
	}

	var best []struct {
		QuizID uint
		Best   int
	}
	err = tx.Model(&models.QuizAttempt{}).
		Select("quiz_id, MAX(percentage) AS best").
		Where("user_id = ? AND course_id = ? AND passed = ?", userID, courseID, true).
		Group("quiz_id").
		Scan(&best).Error
	if err != nil {
		return nil, translateDBError(err)
	}
	if len(best) == 0 {
		return nil, nil
	}

	sum := 0
	for _, b := range best {
		sum += b.Best
	}
	grade := int(math.Round(float64(sum) / float64(len(best))))

	err = tx.Model(&models.Enrollment{}).
		Where("id = ?", enrollment.ID).
		Updates(map[string]interface{}{"grade": grade, "grade_percent": grade}).Error
	if err != nil {
		return nil, translateDBError(err)
	}
	return &grade, nil
}
