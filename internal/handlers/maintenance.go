package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dovira-ua/dovira/backend/internal/models"
	"github.com/dovira-ua/dovira/backend/internal/services"
	"github.com/dovira-ua/dovira/backend/pkg/response"
)

type MaintenanceHandler struct {
	db          *gorm.DB
	syncService *services.ConfirmationSyncService
}

func NewMaintenanceHandler(db *gorm.DB) *MaintenanceHandler {
	stats := services.NewStatsService(db)
	return &MaintenanceHandler{
		db:          db,
		syncService: services.NewConfirmationSyncService(db, stats),
	}
}

// Reconcile runs a confirmation reconciliation pass on demand
// POST /api/maintenance/reconcile
func (h *MaintenanceHandler) Reconcile(c *gin.Context) {
	if err := h.syncService.ReconcileAll(); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "confirmation flags reconciled"})
}

// PurgeOrphans deletes evaluations whose source feedback is gone or
// unconfirmed
// POST /api/maintenance/purge-orphans
func (h *MaintenanceHandler) PurgeOrphans(c *gin.Context) {
	deleted, err := h.syncService.PurgeOrphanedEvaluations()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"deleted": deleted})
}

// Logs returns recent maintenance log rows
// GET /api/maintenance/logs
func (h *MaintenanceHandler) Logs(c *gin.Context) {
	var logs []models.MaintenanceLog
	if err := h.db.Order("created_at DESC").Limit(100).Find(&logs).Error; err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, logs)
}
