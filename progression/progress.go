package progression

import (
	"errors"
	"fmt"
	"math"
	"time"

	"sprout/models"

	"gorm.io/gorm"
)

// ProgressResult is the enrollment state after a progress update
type ProgressResult struct {
	Enrollment       models.Enrollment
	CompletedLessons int
	TotalLessons     int
	CompletedCourse  bool // true only on the transition into COMPLETED
}

// RecomputeProgress is the canonical progress update: it recounts the user's
// completed lessons for the course and derives progress, status and
// completedAt from the counts. A course with no lessons stays at 0 /
// NOT_STARTED.
func RecomputeProgress(tx *gorm.DB, userID, courseID uint, now time.Time) (*ProgressResult, error) {
	enrollment, err := loadEnrollment(tx, userID, courseID)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := tx.Model(&models.Lesson{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Count(&total).Error; err != nil {
		return nil, translateDBError(err)
	}

	var completed int64
	if err := tx.Model(&models.LessonCompletion{}).
		Joins("JOIN lessons ON lessons.id = lesson_completions.lesson_id").
		Where("lesson_completions.user_id = ? AND lessons.course_id = ? AND lessons.is_deleted = ?", userID, courseID, false).
		Count(&completed).Error; err != nil {
		return nil, translateDBError(err)
	}

	progress := float64(0)
	if total > 0 {
		progress = math.Round(float64(completed) / float64(total) * 100)
	}

	transitioned := applyProgress(enrollment, progress, now)
	if err := tx.Save(enrollment).Error; err != nil {
		return nil, fmt.Errorf("update enrollment: %w", translateDBError(err))
	}

	return &ProgressResult{
		Enrollment:       *enrollment,
		CompletedLessons: int(completed),
		TotalLessons:     int(total),
		CompletedCourse:  transitioned,
	}, nil
}

// IncrementProgress is the deprecated flat-increment update kept for the
// legacy complete-lesson flow, which does not enumerate lessons. Progress is
// clamped to [0, 100]; status and completedAt follow the same derivation as
// the canonical path.
func IncrementProgress(tx *gorm.DB, userID, courseID uint, increment float64, now time.Time) (*ProgressResult, error) {
	if increment < 0 {
		return nil, fmt.Errorf("%w: negative progress increment", ErrPreconditionFailed)
	}

	enrollment, err := loadEnrollment(tx, userID, courseID)
	if err != nil {
		return nil, err
	}

	progress := math.Min(enrollment.Progress+increment, 100)
	transitioned := applyProgress(enrollment, progress, now)
	if err := tx.Save(enrollment).Error; err != nil {
		return nil, fmt.Errorf("update enrollment: %w", translateDBError(err))
	}

	return &ProgressResult{Enrollment: *enrollment, CompletedCourse: transitioned}, nil
}

func loadEnrollment(tx *gorm.DB, userID, courseID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: not enrolled in this course", ErrNotFound)
	}
	if err != nil {
		return nil, translateDBError(err)
	}
	return &enrollment, nil
}

// applyProgress writes the new percentage and derives status. CompletedAt is
// set exactly once, on the transition into COMPLETED, and never cleared.
// Returns whether this update completed the course.
func applyProgress(enrollment *models.Enrollment, progress float64, now time.Time) bool {
	wasCompleted := enrollment.Status == models.EnrollmentCompleted

	enrollment.Progress = progress
	switch {
	case progress >= 100:
		enrollment.Status = models.EnrollmentCompleted
	case progress > 0:
		enrollment.Status = models.EnrollmentInProgress
	default:
		enrollment.Status = models.EnrollmentNotStarted
	}
	enrollment.LastAccessed = &now

	if enrollment.Status == models.EnrollmentCompleted && !wasCompleted {
		completedAt := now
		enrollment.CompletedAt = &completedAt
		return true
	}
	return false
}
