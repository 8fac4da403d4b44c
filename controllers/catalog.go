package controllers

import (
	"net/http"

	"admissions-intake-api/models"
	"admissions-intake-api/services"

	"github.com/gin-gonic/gin"
)

// GetCatalog returns the option lists and step titles of the intake form
func GetCatalog(c *gin.Context) {
	steps := make([]string, 0, services.StepCount)
	for i := 0; i < services.StepCount; i++ {
		steps = append(steps, services.StepTitle(i))
	}

	c.JSON(http.StatusOK, gin.H{
		"catalog": models.NewCatalog(),
		"steps":   steps,
	})
}
