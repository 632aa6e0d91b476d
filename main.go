package main

import (
	"log"

	"lms-educate/config"
	"lms-educate/database"
	courseRoutes "lms-educate/routers/courseRoutes"
	learnerRoutes "lms-educate/routers/learnerRoutes"
	organizationRoutes "lms-educate/routers/organizationRoutes"
	"lms-educate/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	organizationRoutes.SetupOrganizationRoutes(app)
	courseRoutes.SetupManagementRoutes(app)
	learnerRoutes.SetupLearnerRoutes(app)

	utils.InitializeCleanupScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
