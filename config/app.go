package config

import (
	"log"
	"os"
	"strings"
	"time"
)

const defaultWizardSessionTTL = 2 * time.Hour

// IsProduction reports whether ENVIRONMENT=production.
func IsProduction() bool {
	return strings.ToLower(os.Getenv("ENVIRONMENT")) == "production"
}

func ServerPort() string {
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}
	return port
}

// UploadPath is the root directory holding storage buckets.
func UploadPath() string {
	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	return uploadPath
}

// PublicBaseURL is prefixed to public object URLs.
func PublicBaseURL() string {
	base := strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/")
	if base == "" {
		base = "http://localhost:" + ServerPort()
	}
	return base
}

func WizardSessionTTL() time.Duration {
	raw := os.Getenv("WIZARD_SESSION_TTL")
	if raw == "" {
		return defaultWizardSessionTTL
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil || ttl <= 0 {
		log.Printf("Warning: invalid WIZARD_SESSION_TTL %q, using %s", raw, defaultWizardSessionTTL)
		return defaultWizardSessionTTL
	}
	return ttl
}

// LogAccessToken guards the /logs endpoint. Empty disables it.
func LogAccessToken() string {
	return os.Getenv("LOG_ACCESS_TOKEN")
}

// AllowedOrigins parses CORS_ALLOWED_ORIGINS as a comma separated list.
func AllowedOrigins() []string {
	raw := os.Getenv("CORS_ALLOWED_ORIGINS")
	if strings.TrimSpace(raw) == "" {
		return []string{"http://localhost:3000"}
	}
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
