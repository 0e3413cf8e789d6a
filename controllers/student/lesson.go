package studentController

import (
	"time"

	"sprout/database"
	"sprout/middleware"
	"sprout/progression"
	studentValidator "sprout/validators/student"

	"github.com/gofiber/fiber/v2"
)

// CompleteLesson marks a lesson done: completion row, recounted enrollment
// progress, XP and streak settlement, all in one transaction. Replays are
// answered with already_completed and earn nothing.
func CompleteLesson(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	lessonID := c.Locals("lessonID").(uint)

	reqData, ok := c.Locals("validatedCompleteLesson").(*studentValidator.CompleteLessonInput)
	if !ok {
		reqData = &studentValidator.CompleteLessonInput{}
	}

	result, err := progression.CompleteLesson(database.Database.Db, userID, lessonID, reqData.TimeSpent, time.Now())
	if err != nil {
		return respondProgressionError(c, err)
	}

	if result.AlreadyCompleted {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson already completed.", fiber.Map{
			"already_completed": true,
			"xp_earned":         0,
			"enrollment":        result.Enrollment,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson completed successfully!", fiber.Map{
		"already_completed": false,
		"enrollment":        result.Enrollment,
		"xp_earned":         result.XPEarned,
		"new_total_xp":      result.Ledger.NewTotalPoints,
		"leveled_up":        result.Ledger.LeveledUp,
		"level":             result.Ledger.Level,
		"current_streak":    result.Ledger.CurrentStreak,
		"streak_updated":    result.Ledger.StreakUpdated,
		"completed_course":  result.CompletedCourse,
	})
}

// CompleteLessonLegacy is the deprecated flat-increment completion endpoint
// kept for clients that report progress without enumerating lessons
func CompleteLessonLegacy(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedLegacyComplete").(*studentValidator.LegacyCompleteInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	increment := float64(10)
	if reqData.ProgressIncrement != nil {
		increment = *reqData.ProgressIncrement
	}

	result, err := progression.CompleteLessonLegacy(database.Database.Db, userID, reqData.CourseID, reqData.LessonID, increment, time.Now())
	if err != nil {
		return respondProgressionError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress recorded.", fiber.Map{
		"enrollment":       result.Enrollment,
		"xp_earned":        result.XPEarned,
		"new_total_xp":     result.Ledger.NewTotalPoints,
		"leveled_up":       result.Ledger.LeveledUp,
		"current_streak":   result.Ledger.CurrentStreak,
		"streak_updated":   result.Ledger.StreakUpdated,
		"completed_course": result.CompletedCourse,
	})
}
