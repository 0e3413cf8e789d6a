package teacherController

import (
	"errors"
	"time"

	"sprout/database"
	"sprout/middleware"
	"sprout/models"
	"sprout/utils"
	teacherValidator "sprout/validators/teacher"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// loadOwnedClass fetches a class and checks the caller teaches it
func loadOwnedClass(db *gorm.DB, classID, teacherID uint) (*models.Class, error) {
	var class models.Class
	err := db.Where("id = ? AND teacher_id = ? AND is_deleted = ?", classID, teacherID, false).First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

// CreateClass creates a class with a fresh join code
func CreateClass(c *fiber.Ctx) error {
	teacher := c.Locals("user").(*models.User)

	reqData, ok := c.Locals("validatedCreateClass").(*teacherValidator.CreateClassInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Retry on the off chance the generated code collides
	for attempt := 0; attempt < 5; attempt++ {
		class := models.Class{
			TeacherID: teacher.ID,
			SchoolID:  teacher.SchoolID,
			Name:      reqData.Name,
			Code:      utils.GenerateClassCode(),
			IsActive:  true,
		}
		if err := db.Create(&class).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusCreated, true, "Class created successfully!", class)
		}
	}
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create class!", nil)
}

// GetClasses lists the teacher's classes with student counts
func GetClasses(c *fiber.Ctx) error {
	teacher := c.Locals("user").(*models.User)
	db := database.Database.Db

	var classes []models.Class
	if err := db.Where("teacher_id = ? AND is_deleted = ?", teacher.ID, false).
		Order("created_at desc").Find(&classes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch classes!", nil)
	}

	type classEntry struct {
		Class        models.Class `json:"class"`
		StudentCount int64        `json:"student_count"`
	}

	entries := make([]classEntry, len(classes))
	for i, class := range classes {
		var count int64
		db.Model(&models.ClassStudent{}).Where("class_id = ?", class.ID).Count(&count)
		entries[i] = classEntry{Class: class, StudentCount: count}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Classes fetched successfully!", entries)
}

// GetClass returns one class with its roster
func GetClass(c *fiber.Ctx) error {
	teacher := c.Locals("user").(*models.User)
	classID := c.Locals("classID").(uint)
	db := database.Database.Db

	class, err := loadOwnedClass(db, classID, teacher.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
	}

	var memberships []models.ClassStudent
	db.Preload("Student").Where("class_id = ?", class.ID).Find(&memberships)

	type rosterEntry struct {
		StudentID     uint   `json:"student_id"`
		FirstName     string `json:"first_name"`
		LastName      string `json:"last_name"`
		Email         string `json:"email"`
		TotalPoints   int    `json:"total_points"`
		CurrentStreak int    `json:"current_streak"`
	}

	roster := make([]rosterEntry, len(memberships))
	for i, membership := range memberships {
		student := membership.Student
		roster[i] = rosterEntry{
			StudentID:     student.ID,
			FirstName:     student.FirstName,
			LastName:      student.LastName,
			Email:         student.Email,
			TotalPoints:   student.TotalPoints,
			CurrentStreak: student.CurrentStreak,
		}
	}

	var assignments []models.Assignment
	db.Preload("Course").Where("class_id = ? AND is_deleted = ?", class.ID, false).
		Order("due_date asc").Find(&assignments)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Class fetched successfully!", fiber.Map{
		"class":       class,
		"students":    roster,
		"assignments": assignments,
	})
}

// UpdateClass renames or activates/deactivates a class
func UpdateClass(c *fiber.Ctx) error {
	teacher := c.Locals("user").(*models.User)
	classID := c.Locals("classID").(uint)

	reqData, ok := c.Locals("validatedUpdateClass").(*teacherValidator.UpdateClassInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	class, err := loadOwnedClass(db, classID, teacher.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
	}

	if reqData.Name != nil {
		class.Name = *reqData.Name
	}
	if reqData.IsActive != nil {
		class.IsActive = *reqData.IsActive
	}

	if err := db.Save(class).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update class!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Class updated successfully!", class)
}

// DeleteClass soft-deletes a class
func DeleteClass(c *fiber.Ctx) error {
	teacher := c.Locals("user").(*models.User)
	classID := c.Locals("classID").(uint)
	db := database.Database.Db

	class, err := loadOwnedClass(db, classID, teacher.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
	}

	class.IsDeleted = true
	class.IsActive = false
	if err := db.Save(class).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete class!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Class deleted.", nil)
}

// RemoveStudent drops a student from the class roster
func RemoveStudent(c *fiber.Ctx) error {
	teacher := c.Locals("user").(*models.User)
	classID := c.Locals("classID").(uint)
	studentID := c.Locals("studentID").(uint)
	db := database.Database.Db

	if _, err := loadOwnedClass(db, classID, teacher.ID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
	}

	var membership models.ClassStudent
	if err := db.Where("class_id = ? AND student_id = ?", classID, studentID).First(&membership).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student is not in this class!", nil)
	}

	if err := db.Delete(&membership).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove student!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student removed from class.", nil)
}

// AssignCourse creates an assignment and enrolls every class member that
// isn't already enrolled in the course
func AssignCourse(c *fiber.Ctx) error {
	teacher := c.Locals("user").(*models.User)
	classID := c.Locals("classID").(uint)

	reqData, ok := c.Locals("validatedAssignCourse").(*teacherValidator.AssignCourseInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	dueDate := c.Locals("assignDueDate").(time.Time)

	db := database.Database.Db

	class, err := loadOwnedClass(db, classID, teacher.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
	}

	var course models.Course
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", reqData.CourseID, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	title := reqData.Title
	if title == "" {
		title = course.Title
	}

	assignment := models.Assignment{
		ClassID:  class.ID,
		CourseID: course.ID,
		Title:    title,
		DueDate:  dueDate,
	}

	enrolled := 0
	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}

		var memberships []models.ClassStudent
		if err := tx.Where("class_id = ?", class.ID).Find(&memberships).Error; err != nil {
			return err
		}

		for _, membership := range memberships {
			var existing models.Enrollment
			err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?", membership.StudentID, course.ID, false).
				First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			enrollment := models.Enrollment{
				UserID:   membership.StudentID,
				CourseID: course.ID,
				Status:   models.EnrollmentNotStarted,
			}
			if err := tx.Create(&enrollment).Error; err != nil {
				return err
			}
			enrolled++
		}
		return nil
	})
	if txErr != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course assigned to class!", fiber.Map{
		"assignment":        assignment,
		"students_enrolled": enrolled,
	})
}
