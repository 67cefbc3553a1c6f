package main

import (
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/workdeck/workdeck-api/internal/config"
	"github.com/workdeck/workdeck-api/internal/constants"
	"github.com/workdeck/workdeck-api/internal/database"
	"github.com/workdeck/workdeck-api/internal/handlers"
	"github.com/workdeck/workdeck-api/internal/logger"
	"github.com/workdeck/workdeck-api/internal/middleware"
	"github.com/workdeck/workdeck-api/internal/repository"
	"github.com/workdeck/workdeck-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,                        // Redis pool size
		"tcp",                     // network type
		redisAddr,                 // Redis address from config
		"",                        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.WithError(err).Fatal("Failed to create Redis store")
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	// Services
	activityService := services.NewActivityService(activityRepo, log)
	collabService := services.NewCollaborationService(userRepo)
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, activityService)
	projectService := services.NewProjectService(projectRepo, collabService, activityService)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo, collabService, activityService, log)
	metricsService := services.NewMetricsService(taskRepo, projectRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService, activityService)
	taskHandler := handlers.NewTaskHandler(taskService, activityService)
	metricsHandler := handlers.NewMetricsHandler(metricsService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// User administration (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.PATCH("/:id/role", userHandler.AssignRole)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PATCH("/:id", projectHandler.UpdateProject)
			projects.POST("/:id/archive", projectHandler.ArchiveProject)
			projects.POST("/:id/unarchive", projectHandler.UnarchiveProject)
			projects.POST("/:id/collaborators", projectHandler.AddCollaborator)
			projects.DELETE("/:id/collaborators/:user_id", projectHandler.RemoveCollaborator)
			projects.GET("/:id/activity", projectHandler.GetProjectActivity)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/assign", taskHandler.AssignTask)
			tasks.POST("/:id/status", taskHandler.UpdateStatus)
			tasks.POST("/:id/collaborators", taskHandler.AddCollaborator)
			tasks.DELETE("/:id/collaborators/:user_id", taskHandler.RemoveCollaborator)
			tasks.POST("/:id/attachments", taskHandler.AddAttachment)
			tasks.DELETE("/:id/attachments/:attachment_id", taskHandler.RemoveAttachment)
			tasks.POST("/:id/subtasks", taskHandler.CreateSubtask)
			tasks.PATCH("/:id/subtasks/:subtask_id", taskHandler.UpdateSubtask)
			tasks.GET("/:id/activity", taskHandler.GetTaskActivity)
		}

		// Metrics (protected)
		metrics := api.Group("/metrics")
		metrics.Use(middleware.RequireAuth())
		{
			metrics.GET("/dashboard", metricsHandler.GetDashboard)
		}
	}

	// Start server
	log.Info("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}
