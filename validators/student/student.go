package studentValidator

import (
	"encoding/json"
	"strconv"
	"strings"

	"sprout/middleware"

	"github.com/gofiber/fiber/v2"
)

// paramID validates a positive integer route parameter and stashes it in Locals
func paramID(c *fiber.Ctx, name, local, label string) error {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" is required!", nil)
	}

	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+"!", nil)
	}

	c.Locals(local, uint(id))
	return c.Next()
}

func EnrollCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return paramID(c, "id", "courseID", "Course ID")
	}
}

func CourseLessons() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return paramID(c, "id", "courseID", "Course ID")
	}
}

// CompleteLessonInput is the canonical completion payload
type CompleteLessonInput struct {
	TimeSpent int `json:"time_spent"`
}

func CompleteLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonIDStr := strings.TrimSpace(c.Params("id"))
		lessonID, err := strconv.Atoi(lessonIDStr)
		if err != nil || lessonID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		reqData := new(CompleteLessonInput)
		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}
		if reqData.TimeSpent < 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"time_spent": "Time spent cannot be negative!"})
		}

		c.Locals("lessonID", uint(lessonID))
		c.Locals("validatedCompleteLesson", reqData)
		return c.Next()
	}
}

// LegacyCompleteInput is the deprecated increment-based completion payload
type LegacyCompleteInput struct {
	CourseID          uint     `json:"course_id"`
	LessonID          *uint    `json:"lesson_id"`
	ProgressIncrement *float64 `json:"progress_increment"`
}

func CompleteLessonLegacy() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LegacyCompleteInput)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}
		if reqData.ProgressIncrement != nil && (*reqData.ProgressIncrement < 0 || *reqData.ProgressIncrement > 100) {
			errors["progress_increment"] = "Progress increment must be between 0 and 100!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLegacyComplete", reqData)
		return c.Next()
	}
}

// SubmitQuizInput is the quiz submission payload
type SubmitQuizInput struct {
	Answers   []json.RawMessage `json:"answers"`
	TimeSpent int               `json:"time_spent"`
}

func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		quizIDStr := strings.TrimSpace(c.Params("id"))
		quizID, err := strconv.Atoi(quizIDStr)
		if err != nil || quizID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Quiz ID!", nil)
		}

		reqData := new(SubmitQuizInput)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if len(reqData.Answers) == 0 {
			errors["answers"] = "At least one answer is required!"
		}
		if reqData.TimeSpent < 0 {
			errors["time_spent"] = "Time spent cannot be negative!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("quizID", uint(quizID))
		c.Locals("validatedSubmitQuiz", reqData)
		return c.Next()
	}
}

func QuizAttempts() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return paramID(c, "id", "quizID", "Quiz ID")
	}
}

// JoinClassInput carries the class join code
type JoinClassInput struct {
	Code string `json:"code"`
}

func JoinClass() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(JoinClassInput)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Code = strings.ToUpper(strings.TrimSpace(reqData.Code))
		if len(reqData.Code) != 6 {
			return middleware.ValidationErrorResponse(c, map[string]string{"code": "Class code must be 6 characters!"})
		}

		c.Locals("validatedJoinClass", reqData)
		return c.Next()
	}
}

func LeaveClass() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return paramID(c, "id", "classID", "Class ID")
	}
}
