package superAdminController

import (
	"sprout/database"
	"sprout/middleware"
	"sprout/models"
	adminValidator "sprout/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// CreateSchool registers a new school tenant
func CreateSchool(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateSchool").(*adminValidator.CreateSchoolInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("domain = ?", reqData.Domain).First(&models.School{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A school with this domain already exists!", nil)
	}

	school := models.School{
		Name:     reqData.Name,
		Domain:   reqData.Domain,
		City:     reqData.City,
		State:    reqData.State,
		IsActive: true,
	}
	if reqData.PrimaryColor != "" {
		school.PrimaryColor = reqData.PrimaryColor
	}

	if err := db.Create(&school).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create school!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "School created successfully!", school)
}

// GetSchools lists all schools with user counts
func GetSchools(c *fiber.Ctx) error {
	db := database.Database.Db

	var schools []models.School
	if err := db.Where("is_deleted = ?", false).Order("name asc").Find(&schools).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch schools!", nil)
	}

	type schoolEntry struct {
		School       models.School `json:"school"`
		StudentCount int64         `json:"student_count"`
		TeacherCount int64         `json:"teacher_count"`
	}

	entries := make([]schoolEntry, len(schools))
	for i, school := range schools {
		entries[i] = schoolEntry{School: school}
		db.Model(&models.User{}).Where("school_id = ? AND role = ? AND is_deleted = ?", school.ID, models.RoleStudent, false).
			Count(&entries[i].StudentCount)
		db.Model(&models.User{}).Where("school_id = ? AND role = ? AND is_deleted = ?", school.ID, models.RoleTeacher, false).
			Count(&entries[i].TeacherCount)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Schools fetched successfully!", entries)
}

// UpdateSchool edits a school or toggles its active flag
func UpdateSchool(c *fiber.Ctx) error {
	schoolID := c.Locals("schoolID").(uint)
	db := database.Database.Db

	var school models.School
	if err := db.Where("id = ? AND is_deleted = ?", schoolID, false).First(&school).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "School not found!", nil)
	}

	reqData := new(struct {
		Name         *string `json:"name"`
		PrimaryColor *string `json:"primary_color"`
		City         *string `json:"city"`
		State        *string `json:"state"`
		IsActive     *bool   `json:"is_active"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Name != nil {
		school.Name = *reqData.Name
	}
	if reqData.PrimaryColor != nil {
		school.PrimaryColor = *reqData.PrimaryColor
	}
	if reqData.City != nil {
		school.City = *reqData.City
	}
	if reqData.State != nil {
		school.State = *reqData.State
	}
	if reqData.IsActive != nil {
		school.IsActive = *reqData.IsActive
	}

	if err := db.Save(&school).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update school!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "School updated successfully!", school)
}

// GetOverview reports platform-wide counts for the admin dashboard
func GetOverview(c *fiber.Ctx) error {
	db := database.Database.Db

	var schools, students, teachers, courses, enrollments, completions, attempts int64
	db.Model(&models.School{}).Where("is_deleted = ?", false).Count(&schools)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleStudent, false).Count(&students)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleTeacher, false).Count(&teachers)
	db.Model(&models.Course{}).Where("is_deleted = ?", false).Count(&courses)
	db.Model(&models.Enrollment{}).Where("is_deleted = ?", false).Count(&enrollments)
	db.Model(&models.LessonCompletion{}).Count(&completions)
	db.Model(&models.QuizAttempt{}).Count(&attempts)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Overview fetched successfully!", fiber.Map{
		"schools":            schools,
		"students":           students,
		"teachers":           teachers,
		"courses":            courses,
		"enrollments":        enrollments,
		"lesson_completions": completions,
		"quiz_attempts":      attempts,
	})
}

// GetUsers lists students or teachers with pagination
func GetUsers(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUserList").(*adminValidator.UserListInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	role := models.RoleStudent
	if c.Query("role") == "TEACHER" {
		role = models.RoleTeacher
	}

	db := database.Database.Db
	offset := (*reqData.Page - 1) * (*reqData.Limit)

	var users []models.User
	var total int64

	query := db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", role, false)
	query.Count(&total)

	if err := query.Preload("School").
		Offset(offset).Limit(*reqData.Limit).
		Order("created_at desc").
		Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	for i := range users {
		users[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  *reqData.Page,
			"limit": *reqData.Limit,
		},
	})
}
