package teacherController

import (
	"sprout/database"
	"sprout/middleware"
	"sprout/models"

	"github.com/gofiber/fiber/v2"
)

// studentReport is one gradebook row: a student's standing in every course
// assigned to the class
type studentReport struct {
	StudentID   uint           `json:"student_id"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Email       string         `json:"email"`
	TotalPoints int            `json:"total_points"`
	Courses     []courseReport `json:"courses"`
}

type courseReport struct {
	CourseID     uint    `json:"course_id"`
	CourseTitle  string  `json:"course_title"`
	Progress     float64 `json:"progress"`
	Status       string  `json:"status"`
	Grade        *int    `json:"grade"`
	QuizAttempts int64   `json:"quiz_attempts"`
}

// buildGradebook assembles the per-student, per-assigned-course report for a
// class. Shared by the JSON gradebook endpoint and the export endpoint.
func buildGradebook(classID uint) ([]studentReport, []models.Course, error) {
	db := database.Database.Db

	var assignments []models.Assignment
	if err := db.Preload("Course").Where("class_id = ? AND is_deleted = ?", classID, false).
		Find(&assignments).Error; err != nil {
		return nil, nil, err
	}

	courses := make([]models.Course, 0, len(assignments))
	seen := make(map[uint]bool)
	for _, assignment := range assignments {
		if !seen[assignment.CourseID] {
			seen[assignment.CourseID] = true
			courses = append(courses, assignment.Course)
		}
	}

	var memberships []models.ClassStudent
	if err := db.Preload("Student").Where("class_id = ?", classID).Find(&memberships).Error; err != nil {
		return nil, nil, err
	}

	reports := make([]studentReport, len(memberships))
	for i, membership := range memberships {
		student := membership.Student
		report := studentReport{
			StudentID:   student.ID,
			FirstName:   student.FirstName,
			LastName:    student.LastName,
			Email:       student.Email,
			TotalPoints: student.TotalPoints,
			Courses:     make([]courseReport, 0, len(courses)),
		}

		for _, course := range courses {
			entry := courseReport{
				CourseID:    course.ID,
				CourseTitle: course.Title,
				Status:      models.EnrollmentNotStarted,
			}

			var enrollment models.Enrollment
			if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", student.ID, course.ID, false).
				First(&enrollment).Error; err == nil {
				entry.Progress = enrollment.Progress
				entry.Status = enrollment.Status
				entry.Grade = enrollment.Grade
			}

			db.Model(&models.QuizAttempt{}).
				Where("user_id = ? AND course_id = ?", student.ID, course.ID).
				Count(&entry.QuizAttempts)

			report.Courses = append(report.Courses, entry)
		}
		reports[i] = report
	}

	return reports, courses, nil
}

// GetGradebook returns the class gradebook as JSON
func GetGradebook(c *fiber.Ctx) error {
	teacher := c.Locals("user").(*models.User)
	classID := c.Locals("classID").(uint)

	class, err := loadOwnedClass(database.Database.Db, classID, teacher.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
	}

	reports, courses, err := buildGradebook(class.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build gradebook!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Gradebook fetched successfully!", fiber.Map{
		"class":    class,
		"courses":  courses,
		"students": reports,
	})
}
