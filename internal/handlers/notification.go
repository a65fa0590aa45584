package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dovira-ua/dovira/backend/internal/models"
	"github.com/dovira-ua/dovira/backend/pkg/response"
)

type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

// List returns recent admin notifications, unread first
// GET /api/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	var rows []models.AdminNotification
	err := h.db.Order("read_at IS NOT NULL, created_at DESC").
		Limit(100).Find(&rows).Error
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, rows)
}

// MarkRead stamps a notification as read
// POST /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid notification id")
		return
	}

	now := time.Now()
	result := h.db.Model(&models.AdminNotification{}).
		Where("id = ? AND read_at IS NULL", id).
		Update("read_at", now)
	if result.Error != nil {
		response.ServerError(c, result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		response.NotFound(c, "notification not found or already read")
		return
	}

	response.Success(c, gin.H{"read_at": now})
}
