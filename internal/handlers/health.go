package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dovira-ua/dovira/backend/internal/models"
	"github.com/dovira-ua/dovira/backend/internal/services"
)

// HealthHandler provides the health check endpoint.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// CheckHealth returns the health status of all subsystems.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	taskQueue := services.GetTaskQueue()
	queueMode := "sync"
	if taskQueue != nil && taskQueue.IsAsync() {
		queueMode = "async (Redis)"
	}

	var pendingCount int64
	models.GetDB().Model(&models.Feedback{}).
		Where("status = ?", models.FeedbackStatusNew).
		Count(&pendingCount)

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "dovira",
		"components": gin.H{
			"database":         dbStatus,
			"queue_mode":       queueMode,
			"pending_feedback": pendingCount,
		},
	})
}
