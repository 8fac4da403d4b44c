package main

import (
	"context"
	"log"
	"os"
	"time"

	"admissions-intake-api/config"
	"admissions-intake-api/controllers"
	"admissions-intake-api/metrics"
	"admissions-intake-api/middleware"
	"admissions-intake-api/models"
	"admissions-intake-api/routes"
	"admissions-intake-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	// Initialize database
	config.InitDB()

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = config.LogWriter

	if err := controllers.RegisterValidators(); err != nil {
		log.Fatal("❌ Failed to register validators:", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Create bucket folders if not exists
	uploadPath := config.UploadPath()
	storage := services.NewLocalObjectStorage(uploadPath, config.PublicBaseURL())
	if err := storage.ProvisionBucket(models.AdmissionsBucket, models.BucketFolders()); err != nil {
		log.Printf("Warning: Failed to create upload directory: %v", err)
	}

	repo := services.NewAdmissionRepository(config.DB)
	submissions := services.NewSubmissionService(storage, repo, services.NewMailConfirmationSender(), m)
	wizards := services.NewWizardStore(submissions, config.WizardSessionTTL(), m)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wizards.StartSweeper(ctx, time.Minute)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORSMiddleware())

	routes.SetupRoutes(router, routes.Dependencies{
		Wizards:     wizards,
		Admissions:  repo,
		UploadPath:  uploadPath,
		MetricsFrom: registry,
	})

	port := config.ServerPort()
	log.Printf("🚀 Server starting on port %s", port)
	log.Printf("📂 Storage bucket %s at %s", models.AdmissionsBucket, uploadPath)
	if !config.MailConfigured() {
		log.Printf("✉️  SMTP not configured, confirmation mails disabled")
	}

	if ginMode == "release" {
		log.Printf("🏭 Running in production mode")
	} else {
		log.Printf("🔧 Running in development mode")
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatal("❌ Failed to start server:", err)
	}
}
