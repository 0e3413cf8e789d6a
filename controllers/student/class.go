package studentController

import (
	"time"

	"sprout/database"
	"sprout/middleware"
	"sprout/models"
	studentValidator "sprout/validators/student"

	"github.com/gofiber/fiber/v2"
)

// JoinClass adds the student to an active class by join code
func JoinClass(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedJoinClass").(*studentValidator.JoinClassInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var class models.Class
	if err := db.Where("code = ? AND is_active = ? AND is_deleted = ?", reqData.Code, true, false).First(&class).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class code!", nil)
	}

	var existing models.ClassStudent
	if err := db.Where("class_id = ? AND student_id = ?", class.ID, userID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already in this class!", nil)
	}

	membership := models.ClassStudent{ClassID: class.ID, StudentID: userID}
	if err := db.Create(&membership).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to join class!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Joined "+class.Name+"!", fiber.Map{
		"class_id":   class.ID,
		"class_name": class.Name,
	})
}

// LeaveClass removes the student's membership row
func LeaveClass(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	classID := c.Locals("classID").(uint)
	db := database.Database.Db

	var membership models.ClassStudent
	if err := db.Where("class_id = ? AND student_id = ?", classID, userID).First(&membership).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "You are not in this class!", nil)
	}

	if err := db.Delete(&membership).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to leave class!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Left class.", nil)
}

// GetAssignments lists upcoming assignments from every class the student is in
func GetAssignments(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var classIDs []uint
	db.Model(&models.ClassStudent{}).Where("student_id = ?", userID).Pluck("class_id", &classIDs)

	if len(classIDs) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", []models.Assignment{})
	}

	var assignments []models.Assignment
	if err := db.Preload("Course").
		Where("class_id IN ? AND is_deleted = ? AND due_date > ?", classIDs, false, time.Now().Add(-7*24*time.Hour)).
		Order("due_date asc").
		Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", assignments)
}
