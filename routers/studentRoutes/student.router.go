package studentRoutes

import (
	studentController "sprout/controllers/student"
	"sprout/middleware"
	"sprout/models"
	studentValidator "sprout/validators/student"

	"github.com/gofiber/fiber/v2"
)

func SetupStudentRoutes(app *fiber.App) {
	studentGroup := app.Group("/student", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent))

	// Catalog and enrollments
	studentGroup.Get("/courses", studentController.GetCourses)
	studentGroup.Post("/course/:id/enroll", studentValidator.EnrollCourse(), studentController.EnrollInCourse)
	studentGroup.Get("/course/:id/lessons", studentValidator.CourseLessons(), studentController.GetCourseLessons)
	studentGroup.Get("/enrollments", studentController.GetEnrollments)

	// Progression
	studentGroup.Post("/lesson/:id/complete", studentValidator.CompleteLesson(), studentController.CompleteLesson)
	studentGroup.Post("/progress", studentValidator.CompleteLessonLegacy(), studentController.CompleteLessonLegacy)

	// Quizzes
	studentGroup.Post("/quiz/:id/submit", studentValidator.SubmitQuiz(), studentController.SubmitQuizAttempt)
	studentGroup.Get("/quiz/:id/attempts", studentValidator.QuizAttempts(), studentController.GetQuizAttempts)

	// Gamification
	studentGroup.Get("/leaderboard", studentController.GetLeaderboard)

	// Classes
	studentGroup.Post("/class/join", studentValidator.JoinClass(), studentController.JoinClass)
	studentGroup.Delete("/class/:id/leave", studentValidator.LeaveClass(), studentController.LeaveClass)
	studentGroup.Get("/assignments", studentController.GetAssignments)
}
