package teacherValidator

import (
	"strconv"
	"strings"
	"time"

	"sprout/middleware"

	"github.com/gofiber/fiber/v2"
)

func classIDParam(c *fiber.Ctx) error {
	idStr := strings.TrimSpace(c.Params("id"))
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Class ID!", nil)
	}
	c.Locals("classID", uint(id))
	return c.Next()
}

// CreateClassInput names a new class
type CreateClassInput struct {
	Name string `json:"name"`
}

func CreateClass() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateClassInput)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)
		if reqData.Name == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"name": "Class name is required!"})
		}
		if len(reqData.Name) < 3 {
			return middleware.ValidationErrorResponse(c, map[string]string{"name": "Class name must be at least 3 characters long!"})
		}

		c.Locals("validatedCreateClass", reqData)
		return c.Next()
	}
}

func GetClass() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return classIDParam(c)
	}
}

// UpdateClassInput renames or toggles a class
type UpdateClassInput struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

func UpdateClass() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Class ID!", nil)
		}

		reqData := new(UpdateClassInput)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Name != nil && len(strings.TrimSpace(*reqData.Name)) < 3 {
			return middleware.ValidationErrorResponse(c, map[string]string{"name": "Class name must be at least 3 characters long!"})
		}

		c.Locals("classID", uint(id))
		c.Locals("validatedUpdateClass", reqData)
		return c.Next()
	}
}

// AssignCourseInput assigns a course to a class with a due date
type AssignCourseInput struct {
	CourseID uint   `json:"course_id"`
	Title    string `json:"title"`
	DueDate  string `json:"due_date"` // RFC 3339
}

func AssignCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Class ID!", nil)
		}

		reqData := new(AssignCourseInput)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}
		var dueDate time.Time
		if reqData.DueDate == "" {
			errors["due_date"] = "Due date is required!"
		} else {
			dueDate, err = time.Parse(time.RFC3339, reqData.DueDate)
			if err != nil {
				errors["due_date"] = "Due date must be RFC 3339!"
			} else if dueDate.Before(time.Now()) {
				errors["due_date"] = "Due date must be in the future!"
			}
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("classID", uint(id))
		c.Locals("validatedAssignCourse", reqData)
		c.Locals("assignDueDate", dueDate)
		return c.Next()
	}
}

func RemoveStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		classIDStr := strings.TrimSpace(c.Params("id"))
		classID, err := strconv.Atoi(classIDStr)
		if err != nil || classID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Class ID!", nil)
		}

		studentIDStr := strings.TrimSpace(c.Params("studentId"))
		studentID, err := strconv.Atoi(studentIDStr)
		if err != nil || studentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Student ID!", nil)
		}

		c.Locals("classID", uint(classID))
		c.Locals("studentID", uint(studentID))
		return c.Next()
	}
}

func Gradebook() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return classIDParam(c)
	}
}

// Export validates the class id and optional format (csv default, xlsx)
func Export() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Class ID!", nil)
		}

		format := strings.ToLower(c.Query("format", "csv"))
		if format != "csv" && format != "xlsx" {
			return middleware.ValidationErrorResponse(c, map[string]string{"format": "Format must be csv or xlsx!"})
		}

		c.Locals("classID", uint(id))
		c.Locals("exportFormat", format)
		return c.Next()
	}
}
