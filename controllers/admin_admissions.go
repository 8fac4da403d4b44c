package controllers

import (
	"net/http"

	"admissions-intake-api/services"

	"github.com/gin-gonic/gin"
)

// GetAdmissions returns every stored application, newest first
func (h *AdmissionHandler) GetAdmissions(c *gin.Context) {
	admissions, err := services.ListAdmissionViews(c.Request.Context(), h.lister)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admissions": admissions,
		"total":      len(admissions),
	})
}
