package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dovira-ua/dovira/backend/internal/analytics"
	"github.com/dovira-ua/dovira/backend/internal/services"
	"github.com/dovira-ua/dovira/backend/pkg/response"
)

type CitizenHandler struct {
	insightsService *services.InsightsService
}

func NewCitizenHandler(db *gorm.DB, lex *analytics.Lexicon) *CitizenHandler {
	return &CitizenHandler{
		insightsService: services.NewInsightsService(db, lex),
	}
}

// Profile returns the citizen dossier: behavioral tags and per-officer
// interaction summaries
// GET /api/citizens/:id/profile
func (h *CitizenHandler) Profile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid citizen id")
		return
	}

	profile, err := h.insightsService.GetCitizenProfile(uint(id))
	if err != nil {
		response.NotFound(c, "citizen not found")
		return
	}

	response.Success(c, profile)
}
