package superAdminController

import (
	"gorm.io/datatypes"

	"sprout/database"
	"sprout/middleware"
	"sprout/models"
	adminValidator "sprout/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// CreateCourse adds a course to the platform catalog
func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateCourse").(*adminValidator.CreateCourseInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := models.Course{
		Title:       reqData.Title,
		Description: reqData.Description,
		Duration:    reqData.Duration,
		IsPublished: true,
	}
	if reqData.Category != "" {
		course.Category = reqData.Category
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// GetCourses lists all courses with lesson counts, drafts included
func GetCourses(c *fiber.Ctx) error {
	db := database.Database.Db

	var courses []models.Course
	if err := db.Where("is_deleted = ?", false).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	type courseEntry struct {
		Course      models.Course `json:"course"`
		LessonCount int64         `json:"lesson_count"`
	}

	entries := make([]courseEntry, len(courses))
	for i, course := range courses {
		entries[i] = courseEntry{Course: course}
		db.Model(&models.Lesson{}).Where("course_id = ? AND is_deleted = ?", course.ID, false).
			Count(&entries[i].LessonCount)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", entries)
}

// UpdateCourse edits course fields or toggles publication
func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData := new(struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		Duration    *int    `json:"duration"`
		IsPublished *bool   `json:"is_published"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.Category != nil {
		course.Category = *reqData.Category
	}
	if reqData.Duration != nil {
		course.Duration = *reqData.Duration
	}
	if reqData.IsPublished != nil {
		course.IsPublished = *reqData.IsPublished
	}

	if err := db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// CreateLesson appends a lesson to a course
func CreateLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedCreateLesson").(*adminValidator.CreateLessonInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	orderIndex := reqData.OrderIndex
	if orderIndex == 0 {
		var maxOrder int
		db.Model(&models.Lesson{}).Where("course_id = ? AND is_deleted = ?", courseID, false).
			Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)
		orderIndex = maxOrder + 1
	}

	lesson := models.Lesson{
		CourseID:   course.ID,
		Title:      reqData.Title,
		Content:    reqData.Content,
		OrderIndex: orderIndex,
		XPReward:   reqData.XPReward,
	}

	if err := db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// CreateQuiz attaches a quiz to a lesson. Each lesson carries at most one
// quiz; the unique index on lesson_id backs that up.
func CreateQuiz(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(uint)
	reqData, ok := c.Locals("validatedCreateQuiz").(*adminValidator.CreateQuizInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var lesson models.Lesson
	if err := db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if err := db.Where("lesson_id = ? AND is_deleted = ?", lessonID, false).First(&models.Quiz{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "This lesson already has a quiz!", nil)
	}

	quiz := models.Quiz{
		LessonID:     lesson.ID,
		Title:        reqData.Title,
		PassingScore: reqData.PassingScore,
		Questions:    datatypes.JSON(reqData.Questions),
	}

	if err := db.Create(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}
