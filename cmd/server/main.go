// @title           Spec Docs Backend API
// @version         1.0.0
// @description     Backend API for uploading API specification files (OpenAPI/Postman) and polling AI documentation-generation status. Files are stored in Supabase Storage with project, file and job records in Supabase Postgres.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"log"
	"net/http"
	"net/url"
	"os"

	"specdocs-backend/docs"
	"specdocs-backend/internal/config"
	"specdocs-backend/internal/database"
	"specdocs-backend/internal/handlers"
	"specdocs-backend/internal/middleware"
	"specdocs-backend/internal/openrouter"
	"specdocs-backend/internal/services"
	"specdocs-backend/internal/supabase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		if baseURL, err := url.Parse(cfg.BaseURL); err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	openrouterClient := openrouter.NewClient(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey)

	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required: set it to your Supabase PostgreSQL connection string")
	}

	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database client: %v", err)
	}
	defer dbClient.Close()

	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	defer migrator.Close()
	if err := migrator.Run(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully")

	submissionService := services.NewSubmissionService(
		storageClient, dbClient, logger, cfg.MaxUploadBytes, cfg.AllowedExtensions)
	poller := services.NewStatusPoller(
		dbClient, services.NewTimeBasedEstimator(cfg.CompletionThreshold), cfg.CompletionThreshold)

	submitHandler := handlers.NewSubmitHandler(submissionService, logger)
	statusHandler := handlers.NewStatusHandler(poller)
	projectsHandler := handlers.NewProjectsHandler(dbClient, storageClient)
	filesHandler := handlers.NewFilesHandler(dbClient)
	usersHandler := handlers.NewUsersHandler(supabaseClient)
	previewHandler := handlers.NewPreviewHandler(dbClient, storageClient, openrouterClient, cfg.OpenRouterModel, logger)

	router := gin.Default()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	// Submission and polling
	api.POST("/specs", submitHandler.Submit)
	api.GET("/projects/:project_id/status", statusHandler.GetStatus)

	// Project routes
	api.GET("/projects", projectsHandler.ListProjects)
	api.GET("/projects/:project_id", projectsHandler.GetProject)
	api.DELETE("/projects/:project_id", projectsHandler.DeleteProject)
	api.GET("/projects/:project_id/file", filesHandler.GetFile)
	api.POST("/projects/:project_id/preview", previewHandler.GeneratePreview)

	// Users
	api.GET("/users/me", usersHandler.GetCurrentUser)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
