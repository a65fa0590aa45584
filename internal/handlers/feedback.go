package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dovira-ua/dovira/backend/internal/services"
	"github.com/dovira-ua/dovira/backend/pkg/response"
)

type FeedbackHandler struct {
	feedbackService *services.FeedbackService
	syncService     *services.ConfirmationSyncService
}

func NewFeedbackHandler(db *gorm.DB) *FeedbackHandler {
	stats := services.NewStatsService(db)
	syncSvc := services.NewConfirmationSyncService(db, stats)
	return &FeedbackHandler{
		feedbackService: services.NewFeedbackService(db, stats, syncSvc),
		syncService:     syncSvc,
	}
}

// Submit accepts a public feedback submission
// POST /api/public/submit
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req services.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	fb, err := h.feedbackService.Submit(&req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Created(c, gin.H{"id": fb.ID, "client_generated_id": fb.ClientGeneratedID})
}

// List returns paginated feedback
// GET /api/feedback
func (h *FeedbackHandler) List(c *gin.Context) {
	var req services.FeedbackListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.feedbackService.List(&req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// GetByID returns one feedback with its links
// GET /api/feedback/:id
func (h *FeedbackHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid feedback id")
		return
	}

	fb, err := h.feedbackService.GetByID(uint(id))
	if err != nil {
		response.NotFound(c, "feedback not found")
		return
	}

	response.Success(c, fb)
}

// Resolve records the resolution verdict for a feedback
// POST /api/feedback/:id/resolve
func (h *FeedbackHandler) Resolve(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid feedback id")
		return
	}

	var req services.ResolveFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	fb, err := h.feedbackService.Resolve(uint(id), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, fb)
}

// Delete removes a feedback and its derived evaluations
// DELETE /api/feedback/:id
func (h *FeedbackHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid feedback id")
		return
	}

	if err := h.feedbackService.Delete(uint(id)); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "feedback deleted successfully"})
}
