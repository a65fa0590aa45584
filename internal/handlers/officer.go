package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dovira-ua/dovira/backend/internal/analytics"
	"github.com/dovira-ua/dovira/backend/internal/services"
	"github.com/dovira-ua/dovira/backend/pkg/response"
)

type OfficerHandler struct {
	officerService  *services.OfficerService
	insightsService *services.InsightsService
	statsService    *services.StatsService
}

func NewOfficerHandler(db *gorm.DB, lex *analytics.Lexicon) *OfficerHandler {
	return &OfficerHandler{
		officerService:  services.NewOfficerService(db),
		insightsService: services.NewInsightsService(db, lex),
		statsService:    services.NewStatsService(db),
	}
}

// List returns paginated officers
// GET /api/officers
func (h *OfficerHandler) List(c *gin.Context) {
	var req services.OfficerListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.officerService.List(&req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// GetByID returns an officer by ID
// GET /api/officers/:id
func (h *OfficerHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid officer id")
		return
	}

	officer, err := h.officerService.GetByID(uint(id))
	if err != nil {
		response.NotFound(c, "officer not found")
		return
	}

	response.Success(c, officer)
}

// Create registers a new officer
// POST /api/officers
func (h *OfficerHandler) Create(c *gin.Context) {
	var req services.CreateOfficerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	officer, err := h.officerService.Create(&req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Created(c, officer)
}

// Update applies partial changes to an officer
// PATCH /api/officers/:id
func (h *OfficerHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid officer id")
		return
	}

	var req services.UpdateOfficerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	officer, err := h.officerService.Update(uint(id), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, officer)
}

// Delete removes an officer and unlinks their feedback
// DELETE /api/officers/:id
func (h *OfficerHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid officer id")
		return
	}

	if err := h.officerService.Delete(uint(id)); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "officer deleted successfully"})
}

// Insights returns the full analytics view for an officer
// GET /api/officers/:id/insights
func (h *OfficerHandler) Insights(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid officer id")
		return
	}

	insights, err := h.insightsService.GetOfficerInsights(uint(id), time.Now())
	if err != nil {
		response.NotFound(c, "officer not found")
		return
	}

	response.Success(c, insights)
}

// Recalibrate recomputes every officer's denormalized summary
// POST /api/maintenance/recalibrate
func (h *OfficerHandler) Recalibrate(c *gin.Context) {
	if err := h.statsService.RefreshAllOfficerStats(); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "officer stats recalibrated"})
}
