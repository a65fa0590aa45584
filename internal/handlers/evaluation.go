package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dovira-ua/dovira/backend/internal/services"
	"github.com/dovira-ua/dovira/backend/pkg/response"
)

type EvaluationHandler struct {
	evaluationService *services.EvaluationService
}

func NewEvaluationHandler(db *gorm.DB) *EvaluationHandler {
	return &EvaluationHandler{
		evaluationService: services.NewEvaluationService(db, services.NewStatsService(db)),
	}
}

// ListByOfficer returns an officer's evaluations
// GET /api/officers/:id/evaluations
func (h *EvaluationHandler) ListByOfficer(c *gin.Context) {
	officerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid officer id")
		return
	}

	evals, err := h.evaluationService.ListByOfficer(uint(officerID))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, evals)
}

// Create stores a manual evaluation for an officer
// POST /api/officers/:id/evaluations
func (h *EvaluationHandler) Create(c *gin.Context) {
	officerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid officer id")
		return
	}

	var req services.CreateEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	eval, err := h.evaluationService.Create(uint(officerID), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Created(c, eval)
}

// Delete removes an evaluation
// DELETE /api/evaluations/:id
func (h *EvaluationHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid evaluation id")
		return
	}

	if err := h.evaluationService.Delete(uint(id)); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "evaluation deleted successfully"})
}
