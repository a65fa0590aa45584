package services

import (
	"fmt"

	"github.com/dovira-ua/dovira/backend/internal/models"
	"gorm.io/gorm"
)

// EvaluationService manages manual officer evaluations. Derived
// CITIZEN_FEEDBACK evaluations are created by the feedback service and
// maintained by confirmation sync; this service only reads them.
type EvaluationService struct {
	db    *gorm.DB
	stats *StatsService
}

func NewEvaluationService(db *gorm.DB, stats *StatsService) *EvaluationService {
	return &EvaluationService{db: db, stats: stats}
}

type CreateEvaluationRequest struct {
	Evaluator string `json:"evaluator"`

	ScoreKnowledge       *int `json:"score_knowledge" binding:"omitempty,min=1,max=5"`
	ScoreTactics         *int `json:"score_tactics" binding:"omitempty,min=1,max=5"`
	ScoreCommunication   *int `json:"score_communication" binding:"omitempty,min=1,max=5"`
	ScoreProfessionalism *int `json:"score_professionalism" binding:"omitempty,min=1,max=5"`
	ScorePhysical        *int `json:"score_physical" binding:"omitempty,min=1,max=5"`

	Strengths       string `json:"strengths"`
	Weaknesses      string `json:"weaknesses"`
	Recommendations string `json:"recommendations"`
	Notes           string `json:"notes"`
}

// Create stores a manual evaluation and refreshes the officer's stats.
func (s *EvaluationService) Create(officerID uint, req *CreateEvaluationRequest) (*models.Evaluation, error) {
	var officer models.Officer
	if err := s.db.First(&officer, officerID).Error; err != nil {
		return nil, fmt.Errorf("load officer %d: %w", officerID, err)
	}

	eval := &models.Evaluation{
		OfficerID:            officerID,
		Evaluator:            req.Evaluator,
		Type:                 models.EvaluationTypeManual,
		ScoreKnowledge:       req.ScoreKnowledge,
		ScoreTactics:         req.ScoreTactics,
		ScoreCommunication:   req.ScoreCommunication,
		ScoreProfessionalism: req.ScoreProfessionalism,
		ScorePhysical:        req.ScorePhysical,
		Strengths:            req.Strengths,
		Weaknesses:           req.Weaknesses,
		Recommendations:      req.Recommendations,
		Notes:                req.Notes,
		IsConfirmed:          true,
	}
	if err := s.db.Create(eval).Error; err != nil {
		return nil, fmt.Errorf("create evaluation: %w", err)
	}

	s.stats.RequestRefresh(officerID)
	return eval, nil
}

// Delete removes an evaluation and refreshes its officer's stats.
func (s *EvaluationService) Delete(evaluationID uint) error {
	var eval models.Evaluation
	if err := s.db.First(&eval, evaluationID).Error; err != nil {
		return fmt.Errorf("load evaluation %d: %w", evaluationID, err)
	}

	if err := s.db.Delete(&models.Evaluation{}, evaluationID).Error; err != nil {
		return fmt.Errorf("delete evaluation %d: %w", evaluationID, err)
	}

	s.stats.RequestRefresh(eval.OfficerID)
	return nil
}

// ListByOfficer returns an officer's evaluations, newest first.
func (s *EvaluationService) ListByOfficer(officerID uint) ([]models.Evaluation, error) {
	var evals []models.Evaluation
	err := s.db.Where("officer_id = ?", officerID).
		Order("created_at DESC").
		Find(&evals).Error
	if err != nil {
		return nil, err
	}
	return evals, nil
}
