package teacherRoutes

import (
	teacherController "sprout/controllers/teacher"
	"sprout/middleware"
	"sprout/models"
	teacherValidator "sprout/validators/teacher"

	"github.com/gofiber/fiber/v2"
)

func SetupTeacherRoutes(app *fiber.App) {
	teacherGroup := app.Group("/teacher", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTeacher))

	// Class management
	teacherGroup.Post("/class", teacherValidator.CreateClass(), teacherController.CreateClass)
	teacherGroup.Get("/classes", teacherController.GetClasses)
	teacherGroup.Get("/class/:id", teacherValidator.GetClass(), teacherController.GetClass)
	teacherGroup.Put("/class/:id", teacherValidator.UpdateClass(), teacherController.UpdateClass)
	teacherGroup.Delete("/class/:id", teacherValidator.GetClass(), teacherController.DeleteClass)
	teacherGroup.Delete("/class/:id/student/:studentId", teacherValidator.RemoveStudent(), teacherController.RemoveStudent)

	// Assignments
	teacherGroup.Post("/class/:id/assign", teacherValidator.AssignCourse(), teacherController.AssignCourse)

	// Gradebook and exports
	teacherGroup.Get("/class/:id/gradebook", teacherValidator.Gradebook(), teacherController.GetGradebook)
	teacherGroup.Get("/class/:id/export", teacherValidator.Export(), teacherController.ExportProgress)
}
