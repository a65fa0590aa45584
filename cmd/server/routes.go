package main

import (
	"github.com/gin-gonic/gin"

	"github.com/dovira-ua/dovira/backend/internal/handlers"
	"github.com/dovira-ua/dovira/backend/internal/middleware"
	"github.com/dovira-ua/dovira/backend/internal/models"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for the public submission endpoint
	submitLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.CheckHealth)

	feedbackHandler := handlers.NewFeedbackHandler(models.GetDB())
	officerHandler := handlers.NewOfficerHandler(models.GetDB(), svc.lexicon)
	evaluationHandler := handlers.NewEvaluationHandler(models.GetDB())
	citizenHandler := handlers.NewCitizenHandler(models.GetDB(), svc.lexicon)
	maintenanceHandler := handlers.NewMaintenanceHandler(models.GetDB())
	notificationHandler := handlers.NewNotificationHandler(models.GetDB())

	api := r.Group("/api")
	{
		// Public submission route (rate limited)
		public := api.Group("/public", submitLimiter.Middleware())
		{
			public.POST("/submit", feedbackHandler.Submit)
		}

		// Officers
		api.GET("/officers", officerHandler.List)
		api.GET("/officers/:id", officerHandler.GetByID)
		api.POST("/officers", officerHandler.Create)
		api.PATCH("/officers/:id", officerHandler.Update)
		api.DELETE("/officers/:id", officerHandler.Delete)
		api.GET("/officers/:id/insights", officerHandler.Insights)

		// Evaluations
		api.GET("/officers/:id/evaluations", evaluationHandler.ListByOfficer)
		api.POST("/officers/:id/evaluations", evaluationHandler.Create)
		api.DELETE("/evaluations/:id", evaluationHandler.Delete)

		// Feedback
		api.GET("/feedback", feedbackHandler.List)
		api.GET("/feedback/:id", feedbackHandler.GetByID)
		api.POST("/feedback/:id/resolve", feedbackHandler.Resolve)
		api.DELETE("/feedback/:id", feedbackHandler.Delete)

		// Citizens
		api.GET("/citizens/:id/profile", citizenHandler.Profile)

		// Notifications
		api.GET("/notifications", notificationHandler.List)
		api.POST("/notifications/:id/read", notificationHandler.MarkRead)

		// Maintenance
		api.POST("/maintenance/reconcile", maintenanceHandler.Reconcile)
		api.POST("/maintenance/purge-orphans", maintenanceHandler.PurgeOrphans)
		api.POST("/maintenance/recalibrate", officerHandler.Recalibrate)
		api.GET("/maintenance/logs", maintenanceHandler.Logs)
	}
}
