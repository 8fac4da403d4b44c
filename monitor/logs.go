package monitor

import (
	"net/http"
	"os"

	"admissions-intake-api/config"

	"github.com/gin-gonic/gin"
)

// RegisterLogRoute exposes the backend log file at /logs?token=. The route
// is not mounted when LOG_ACCESS_TOKEN is empty.
func RegisterLogRoute(router *gin.Engine) {
	accessToken := config.LogAccessToken()
	if accessToken == "" {
		return
	}

	router.GET("/logs", func(c *gin.Context) {
		if c.Query("token") != accessToken {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		logData, err := os.ReadFile(config.LogFilePath())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to read log"})
			return
		}

		c.Data(http.StatusOK, "text/plain; charset=utf-8", logData)
	})
}
