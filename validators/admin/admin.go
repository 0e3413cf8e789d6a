package adminValidator

import (
	"encoding/json"
	"strconv"
	"strings"

	"sprout/middleware"
	"sprout/progression"

	"github.com/gofiber/fiber/v2"
)

// CreateSchoolInput registers a new school tenant
type CreateSchoolInput struct {
	Name         string `json:"name"`
	Domain       string `json:"domain"`
	PrimaryColor string `json:"primary_color"`
	City         string `json:"city"`
	State        string `json:"state"`
}

func CreateSchool() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateSchoolInput)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Domain = strings.ToLower(strings.TrimSpace(reqData.Domain))
		if reqData.Name == "" {
			errors["name"] = "School name is required!"
		}
		if reqData.Domain == "" {
			errors["domain"] = "School domain is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateSchool", reqData)
		return c.Next()
	}
}

// CreateCourseInput creates a course
type CreateCourseInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Duration    int    `json:"duration"`
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseInput)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateCourse", reqData)
		return c.Next()
	}
}

// CreateLessonInput adds a lesson to a course
type CreateLessonInput struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	OrderIndex int    `json:"order_index"`
	XPReward   int    `json:"xp_reward"`
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(CreateLessonInput)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.XPReward < 0 {
			errors["xp_reward"] = "XP reward cannot be negative!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		if reqData.XPReward == 0 {
			reqData.XPReward = 10
		}

		c.Locals("courseID", uint(courseID))
		c.Locals("validatedCreateLesson", reqData)
		return c.Next()
	}
}

// CreateQuizInput attaches a quiz to a lesson. Questions are validated
// through the progression package's tagged-union parser so a malformed bank
// never reaches students.
type CreateQuizInput struct {
	Title        string          `json:"title"`
	PassingScore int             `json:"passing_score"`
	Questions    json.RawMessage `json:"questions"`
}

func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonIDStr := strings.TrimSpace(c.Params("id"))
		lessonID, err := strconv.Atoi(lessonIDStr)
		if err != nil || lessonID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		reqData := new(CreateQuizInput)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.PassingScore < 0 || reqData.PassingScore > 100 {
			errors["passing_score"] = "Passing score must be between 0 and 100!"
		}

		questions, parseErr := progression.ParseQuestions(reqData.Questions)
		if parseErr != nil {
			errors["questions"] = "Questions must be a non-empty JSON array!"
		} else {
			for i, q := range questions {
				if _, err := q.Grade(q.CorrectAnswer); err != nil {
					errors["questions"] = "Question " + strconv.Itoa(i+1) + " has an unknown type!"
					break
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		if reqData.PassingScore == 0 {
			reqData.PassingScore = 70
		}

		c.Locals("lessonID", uint(lessonID))
		c.Locals("validatedCreateQuiz", reqData)
		return c.Next()
	}
}

func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		c.Locals("courseID", uint(id))
		return c.Next()
	}
}

func SchoolID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid School ID!", nil)
		}
		c.Locals("schoolID", uint(id))
		return c.Next()
	}
}

// UserListInput carries pagination for the admin user listings
type UserListInput struct {
	Page  *int `query:"page"`
	Limit *int `query:"limit"`
}

func UserList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UserListInput)

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if reqData.Page == nil {
			page := 1
			reqData.Page = &page
		}
		if reqData.Limit == nil {
			limit := 20
			reqData.Limit = &limit
		}

		errors := make(map[string]string)
		if *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if *reqData.Limit < 1 || *reqData.Limit > 100 {
			errors["limit"] = "Limit must be between 1 and 100!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUserList", reqData)
		return c.Next()
	}
}
