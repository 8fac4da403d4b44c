// Schema migration and bucket provisioning
// cmd/migrate/main.go
package main

import (
	"log"

	"admissions-intake-api/config"
	"admissions-intake-api/models"
	"admissions-intake-api/services"

	"github.com/joho/godotenv"
)

func main() {
	log.Println("🗂  Starting admissions migration...")

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to environment variables")
	}

	// Initialize database
	config.InitDB()

	if err := config.MigrateSchema(config.DB); err != nil {
		log.Fatal("❌ Failed to migrate schema:", err)
	}
	log.Println("✅ admissions table is up to date")

	storage := services.NewLocalObjectStorage(config.UploadPath(), config.PublicBaseURL())
	if err := storage.ProvisionBucket(models.AdmissionsBucket, models.BucketFolders()); err != nil {
		log.Fatalf("❌ failed to provision bucket: %v", err)
	}
	for _, folder := range models.BucketFolders() {
		log.Printf("✅ %s/%s ready", models.AdmissionsBucket, folder)
	}

	log.Println("Migration completed!")
}
