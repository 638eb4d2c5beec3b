package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	controller "tasknest/controllers"
	"tasknest/middleware"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	authLogger := log.New(os.Stdout, "AUTH: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Auth routes group with logging middleware
	auth := app.Group("/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Public auth endpoints (no authentication required)
	auth.Post("/register", controller.Register)
	auth.Post("/login", middleware.LoginRateLimiter(), controller.Login)

	// Protected auth endpoints (require valid JWT)
	protectedAuth := auth.Group("", middleware.Protected())
	protectedAuth.Post("/refresh", controller.RefreshToken)
	protectedAuth.Post("/logout", controller.Logout)
	protectedAuth.Post("/me", controller.Me)

	authLogger.Println("Authentication routes initialized successfully")
}

func SetupAPIRoutes(app *fiber.App, db *gorm.DB) {
	taskController := controller.NewTaskController(db, log.New(os.Stdout, "TASK: ", log.LstdFlags))
	messageController := controller.NewMessageController(db, log.New(os.Stdout, "MESSAGE: ", log.LstdFlags))
	logController := controller.NewLogController(db, log.New(os.Stdout, "LOG: ", log.LstdFlags))

	requestLogger := logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	})

	// Task routes. Literal paths are registered before the :id matcher.
	task := app.Group("/task", middleware.Protected(), requestLogger)
	task.Post("/create", taskController.CreateTask)
	task.Patch("/update", taskController.UpdateTask)
	task.Delete("/delete/:id", taskController.DeleteTask)
	task.Get("/show", taskController.ShowTasks)
	task.Patch("/close", taskController.CloseTask)
	task.Get("/:id", taskController.TaskInfo)

	// Message routes
	message := app.Group("/message", middleware.Protected(), requestLogger)
	message.Post("/create", messageController.CreateMessage)
	message.Patch("/update", messageController.UpdateMessage)
	message.Delete("/delete/:id", messageController.DeleteMessage)
	message.Get("/show/:id", messageController.ShowMessages)
	message.Get("/:id", messageController.MessageInfo)

	// Access-log routes
	logGroup := app.Group("/log", middleware.Protected(), requestLogger)
	logGroup.Get("/:id", logController.ShowLogs)

	log.Println("API routes initialized successfully")
}

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Setup health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Setup auth routes
	SetupAuthRoutes(app, db)

	// Setup API routes
	SetupAPIRoutes(app, db)

	// Setup 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})
}
