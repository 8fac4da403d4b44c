package routes

import (
	"admissions-intake-api/controllers"
	"admissions-intake-api/middleware"
	"admissions-intake-api/monitor"
	"admissions-intake-api/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the services the routes are wired to.
type Dependencies struct {
	Wizards     *services.WizardStore
	Admissions  services.AdmissionLister
	UploadPath  string
	MetricsFrom prometheus.Gatherer
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	handler := controllers.NewAdmissionHandler(deps.Wizards, deps.Admissions)

	// Must wrap every route below; a failure ends the wizard it occurred in.
	router.Use(middleware.RenderSupervisor(handler.DiscardSession))

	// Uploaded objects are public
	router.Static(services.FilesRoute, deps.UploadPath)

	if deps.MetricsFrom != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.MetricsFrom, promhttp.HandlerOpts{})))
	}

	monitor.RegisterAdmissionsPage(router, deps.Admissions)
	monitor.RegisterLogRoute(router)

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"message": "Admissions Intake API is running",
			})
		})

		v1.GET("/catalog", controllers.GetCatalog)

		// Intake wizard
		wizard := v1.Group("/admissions/wizard")
		{
			wizard.POST("", handler.StartWizard)
			wizard.GET("/:id", handler.GetWizard)
			wizard.PATCH("/:id/fields", handler.UpdateFields)
			wizard.PUT("/:id/attachments/:slot", handler.UploadAttachment)
			wizard.DELETE("/:id/attachments/:slot", handler.RemoveAttachment)
			wizard.GET("/:id/photo-preview/:preview", handler.GetPhotoPreview)
			wizard.POST("/:id/back", handler.GoBack)
			wizard.POST("/:id/next", handler.Advance)
		}

		// Admin listing (read only)
		v1.GET("/admin/admissions", handler.GetAdmissions)
	}
}
