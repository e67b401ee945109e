package main

import (
	"log"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/blossom-focus/blossom-api/internal/config"
	"github.com/blossom-focus/blossom-api/internal/constants"
	"github.com/blossom-focus/blossom-api/internal/database"
	"github.com/blossom-focus/blossom-api/internal/handlers"
	"github.com/blossom-focus/blossom-api/internal/mailer"
	"github.com/blossom-focus/blossom-api/internal/middleware"
	"github.com/blossom-focus/blossom-api/internal/repository"
	"github.com/blossom-focus/blossom-api/internal/services"
	"github.com/blossom-focus/blossom-api/internal/token"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Cookie session carries only the short-lived OAuth state nonce;
	// API auth itself is stateless bearer tokens.
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   cfg.GinMode == "release",
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	petRepo := repository.NewPetRepository(db)
	focusRepo := repository.NewFocusTimeRepository(db)

	// Collaborators
	tokens := token.NewService(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	mail := mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)

	// Services
	authService := services.NewAuthService(userRepo, tokens, mail)
	oauthService := services.NewOAuthService(userRepo, tokens, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthRedirectURL)
	taskService := services.NewTaskService(taskRepo, userRepo)
	petService := services.NewPetService(petRepo, userRepo)
	focusService := services.NewFocusService(focusRepo)
	statsService := services.NewStatsService(taskRepo, focusRepo, userRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, oauthService, cfg.FrontendURL)
	taskHandler := handlers.NewTaskHandler(taskService)
	petHandler := handlers.NewPetHandler(petService)
	focusHandler := handlers.NewFocusHandler(focusService)
	statsHandler := handlers.NewStatsHandler(statsService)
	userHandler := handlers.NewUserHandler(authService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Blossom API is running",
		})
	})

	requireAuth := middleware.RequireAuth(tokens, userRepo)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/verify-email", authHandler.VerifyEmail)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/forgot-password/reset", authHandler.CompleteForgotPassword)
			auth.GET("/google/login", authHandler.GoogleLogin)
			auth.GET("/google/callback", authHandler.GoogleCallback)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
			auth.POST("/reset-password", requireAuth, authHandler.ResetPassword)
			auth.DELETE("/account", requireAuth, authHandler.DeleteAccount)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.PATCH("/:id/completion", taskHandler.PatchCompletion)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		// Pet routes (protected)
		pets := api.Group("/pets")
		pets.Use(requireAuth)
		{
			pets.GET("", petHandler.ListPets)
			pets.POST("", petHandler.CreatePet)
			pets.PUT("/:id", petHandler.UpdatePet)
			pets.PATCH("/:id/feed", petHandler.FeedPet)
			pets.DELETE("/:id", petHandler.DeletePet)
		}

		// Focus session routes (protected)
		focus := api.Group("/focus")
		focus.Use(requireAuth)
		{
			focus.GET("", focusHandler.ListSessions)
			focus.POST("", focusHandler.LogSession)
		}

		// Stats and user preference routes (protected)
		api.GET("/stats", requireAuth, statsHandler.GetStats)
		user := api.Group("/user")
		user.Use(requireAuth)
		{
			user.GET("/xp", userHandler.GetXP)
			user.GET("/theme", userHandler.GetTheme)
			user.PATCH("/theme", userHandler.UpdateTheme)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
