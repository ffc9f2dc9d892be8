package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"inan-survey-server/config"
	"inan-survey-server/database"
	"inan-survey-server/jobs"
	"inan-survey-server/middleware"
	"inan-survey-server/models"
	"inan-survey-server/routes"
	"inan-survey-server/services"
	ws "inan-survey-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Seed the initial admin account and the singleton settings document
	if err := seedAdminUser(); err != nil {
		log.Printf("❌ Admin seed failed: %v", err)
	}
	if err := seedSettings(); err != nil {
		log.Printf("❌ Settings seed failed: %v", err)
	}

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security headers (must be first)
	router.Use(middleware.SecurityHeadersMiddleware())

	// Input validation
	router.Use(middleware.InputValidationMiddleware())

	// Rate limiting
	router.Use(middleware.RateLimitMiddleware())

	// Secure CORS
	router.Use(middleware.CORSMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Inan Survey Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Live results hub
	resultsHub := ws.NewHub()
	go resultsHub.Run()
	routes.InitResultsHub(resultsHub)

	// Nomination roster (missing file is not fatal; nominee validation is
	// skipped until a roster is loaded)
	routes.InitRoster(config.AppConfig.Survey.RosterFile)

	// Public share surface: the root-level paths QR codes and copied
	// share links resolve against
	routes.RegisterShareRoutes(router)

	// API routes
	api := router.Group("/api/v1")
	{
		routes.RegisterWebSocketRoutes(api)

		// Auth routes (no authentication required) - with strict rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes)
		api.GET("/auth/me", middleware.AdminAuthMiddleware(), routes.GetCurrentUser)

		// Public respondent-facing routes
		routes.RegisterPollRoutes(api)
		routes.RegisterFormRoutes(api, models.KindFeedback, "/feedback-forms")
		routes.RegisterFormRoutes(api, models.KindQuestionnaire, "/questionnaires")
		routes.RegisterNominationRoutes(api)

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			admin.GET("/dashboard/stats", routes.GetDashboardStats)

			routes.RegisterAdminPollRoutes(admin)
			routes.RegisterAdminFormRoutes(admin, models.KindFeedback, "/feedback-forms")
			routes.RegisterAdminFormRoutes(admin, models.KindQuestionnaire, "/questionnaires")
			routes.RegisterAdminNominationRoutes(admin)
			routes.RegisterSettingsRoutes(admin)
		}
	}

	// Start background jobs
	archiveJob := jobs.NewArchiveJob()
	archiveJob.Start()
	defer archiveJob.Stop()

	// Start token cleanup job
	go func() {
		ticker := time.NewTicker(24 * time.Hour) // Run daily
		defer ticker.Stop()

		for range ticker.C {
			jwtService := services.NewJWTService()
			if err := jwtService.CleanupExpiredTokens(); err != nil {
				log.Printf("❌ Token cleanup failed: %v", err)
			}
		}
	}()

	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
