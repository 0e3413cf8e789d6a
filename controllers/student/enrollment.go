package studentController

import (
	"sprout/database"
	"sprout/middleware"
	"sprout/models"

	"github.com/gofiber/fiber/v2"
)

// GetCourses lists the published course catalog with the student's
// enrollment state attached
func GetCourses(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var courses []models.Course
	if err := db.Where("is_published = ? AND is_deleted = ?", true, false).
		Order("created_at asc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	var enrollments []models.Enrollment
	db.Where("user_id = ? AND is_deleted = ?", userID, false).Find(&enrollments)

	byCourse := make(map[uint]models.Enrollment, len(enrollments))
	for _, e := range enrollments {
		byCourse[e.CourseID] = e
	}

	type courseEntry struct {
		Course     models.Course      `json:"course"`
		Enrollment *models.Enrollment `json:"enrollment"`
	}

	entries := make([]courseEntry, len(courses))
	for i, course := range courses {
		entries[i] = courseEntry{Course: course}
		if e, ok := byCourse[course.ID]; ok {
			enrollment := e
			entries[i].Enrollment = &enrollment
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", entries)
}

// EnrollInCourse creates a fresh NOT_STARTED enrollment
func EnrollInCourse(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var existing models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
	}

	enrollment := models.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   models.EnrollmentNotStarted,
		Progress: 0,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	enrollment.Course = course
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in "+course.Title+"!", enrollment)
}

// GetCourseLessons lists a course's lessons with per-lesson completion flags
func GetCourseLessons(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var lessons []models.Lesson
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	var completions []models.LessonCompletion
	db.Joins("JOIN lessons ON lessons.id = lesson_completions.lesson_id").
		Where("lesson_completions.user_id = ? AND lessons.course_id = ?", userID, courseID).
		Find(&completions)

	completed := make(map[uint]bool, len(completions))
	for _, completion := range completions {
		completed[completion.LessonID] = true
	}

	type lessonEntry struct {
		Lesson    models.Lesson `json:"lesson"`
		Completed bool          `json:"completed"`
	}

	entries := make([]lessonEntry, len(lessons))
	for i, lesson := range lessons {
		entries[i] = lessonEntry{Lesson: lesson, Completed: completed[lesson.ID]}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", fiber.Map{
		"course":  course,
		"lessons": entries,
	})
}

// GetEnrollments lists the student's enrollments with course details
func GetEnrollments(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var enrollments []models.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Preload("Course").
		Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}
