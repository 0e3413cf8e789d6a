package adminRoutes

import (
	superAdminController "sprout/controllers/superAdmin"
	"sprout/middleware"
	"sprout/models"
	adminValidator "sprout/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole(models.RoleSuperAdmin))

	// Schools
	adminGroup.Post("/school", adminValidator.CreateSchool(), superAdminController.CreateSchool)
	adminGroup.Get("/schools", superAdminController.GetSchools)
	adminGroup.Put("/school/:id", adminValidator.SchoolID(), superAdminController.UpdateSchool)

	// Platform dashboard
	adminGroup.Get("/overview", superAdminController.GetOverview)
	adminGroup.Get("/users", adminValidator.UserList(), superAdminController.GetUsers)

	// Content authoring
	adminGroup.Post("/course", adminValidator.CreateCourse(), superAdminController.CreateCourse)
	adminGroup.Get("/courses", superAdminController.GetCourses)
	adminGroup.Put("/course/:id", adminValidator.CourseID(), superAdminController.UpdateCourse)
	adminGroup.Post("/course/:id/lesson", adminValidator.CreateLesson(), superAdminController.CreateLesson)
	adminGroup.Post("/lesson/:id/quiz", adminValidator.CreateQuiz(), superAdminController.CreateQuiz)
}
