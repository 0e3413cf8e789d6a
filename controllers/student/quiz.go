package studentController

import (
	"time"

	"sprout/database"
	"sprout/middleware"
	"sprout/models"
	"sprout/progression"
	studentValidator "sprout/validators/student"

	"github.com/gofiber/fiber/v2"
)

// SubmitQuizAttempt grades a submission through the quiz grading engine
func SubmitQuizAttempt(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	quizID := c.Locals("quizID").(uint)

	reqData, ok := c.Locals("validatedSubmitQuiz").(*studentValidator.SubmitQuizInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	submission := progression.Submission{
		Answers:   reqData.Answers,
		TimeSpent: reqData.TimeSpent,
	}

	result, err := progression.SubmitQuiz(database.Database.Db, userID, quizID, submission, time.Now())
	if err != nil {
		return respondProgressionError(c, err)
	}

	message := "You passed!"
	if !result.Passed {
		message = "Keep practicing - you can retake this quiz."
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, result)
}

// GetQuizAttempts returns the student's append-only attempt history for a quiz
func GetQuizAttempts(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	quizID := c.Locals("quizID").(uint)
	db := database.Database.Db

	var quiz models.Quiz
	if err := db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var attempts []models.QuizAttempt
	if err := db.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("attempt_number asc").
		Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	// Best attempt is derived from history, never from a stored flag
	var best *models.QuizAttempt
	for i := range attempts {
		if best == nil || attempts[i].Percentage > best.Percentage {
			best = &attempts[i]
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"quiz_title":    quiz.Title,
		"passing_score": quiz.PassingScore,
		"attempts":      attempts,
		"best_attempt":  best,
	})
}
