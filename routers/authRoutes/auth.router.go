package authRoutes

import (
	authController "sprout/controllers/auth"
	"sprout/middleware"
	authValidator "sprout/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authValidator.Register(), authController.Register)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Get("/me", middleware.JWTMiddleware, authController.Me)
	authGroup.Post("/logout", middleware.JWTMiddleware, authController.Logout)
	authGroup.Post("/forgot/password", authController.ForgotPassword)
	authGroup.Patch("/reset/password", authValidator.ResetPassword(), authController.ResetPassword)
}
