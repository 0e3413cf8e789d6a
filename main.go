package main

import (
	"log"

	"sprout/config"
	"sprout/database"
	adminRoutes "sprout/routers/adminRoutes"
	authRoutes "sprout/routers/authRoutes"
	studentRoutes "sprout/routers/studentRoutes"
	teacherRoutes "sprout/routers/teacherRoutes"
	"sprout/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: true,
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	studentRoutes.SetupStudentRoutes(app)
	teacherRoutes.SetupTeacherRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	// Hourly assignment deadline reminders
	utils.InitializeSchedulers()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
