package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dovira-ua/dovira/backend/internal/models"
	"github.com/dovira-ua/dovira/backend/pkg/logger"
	"gorm.io/gorm"
)

// ConfirmationSyncService keeps derived evaluations' confirmation flags in
// step with their source feedback rows.
//
// Invariant: every evaluation with a source feedback id carries the same
// is_confirmed value as that feedback row. Flips are applied here and the
// stats of every touched officer are recomputed afterwards.
type ConfirmationSyncService struct {
	db    *gorm.DB
	stats *StatsService
}

func NewConfirmationSyncService(db *gorm.DB, stats *StatsService) *ConfirmationSyncService {
	return &ConfirmationSyncService{db: db, stats: stats}
}

// ApplyConfirmation flips a feedback's confirmation flag, mirrors it onto all
// evaluations derived from that feedback, and refreshes every officer the
// feedback touches: the direct officer, all currently tagged officers, and
// officers that were tagged before this operation but removed by it (their
// scores would otherwise keep a stale contribution).
func (s *ConfirmationSyncService) ApplyConfirmation(feedbackID uint, confirmed bool, previouslyTagged []uint) error {
	var fb models.Feedback
	if err := s.db.Preload("TaggedOfficers").First(&fb, feedbackID).Error; err != nil {
		return fmt.Errorf("load feedback %d: %w", feedbackID, err)
	}

	if err := s.db.Model(&models.Feedback{}).Where("id = ?", feedbackID).
		Update("is_confirmed", confirmed).Error; err != nil {
		return fmt.Errorf("update feedback %d confirmation: %w", feedbackID, err)
	}

	if err := s.db.Model(&models.Evaluation{}).
		Where("source_feedback_id = ?", feedbackID).
		Update("is_confirmed", confirmed).Error; err != nil {
		return fmt.Errorf("sync evaluations for feedback %d: %w", feedbackID, err)
	}

	touched := make(map[uint]struct{})
	if fb.OfficerID != nil {
		touched[*fb.OfficerID] = struct{}{}
	}
	for i := range fb.TaggedOfficers {
		touched[fb.TaggedOfficers[i].ID] = struct{}{}
	}
	for _, id := range previouslyTagged {
		touched[id] = struct{}{}
	}

	for id := range touched {
		s.stats.RequestRefresh(id)
	}

	logger.Infof("[Sync] Feedback %d confirmation set to %v, %d officers refreshed", feedbackID, confirmed, len(touched))
	return nil
}

// ReconcileAll scans every evaluation that references a source feedback,
// compares confirmation flags against the live feedback row and corrects
// mismatches. A missing feedback row is treated as unconfirmed; the orphaned
// evaluation itself is left for PurgeOrphanedEvaluations. Every officer whose
// evaluation was corrected gets a stats refresh. Per-evaluation errors are
// logged and the scan continues.
func (s *ConfirmationSyncService) ReconcileAll() error {
	var evals []models.Evaluation
	if err := s.db.Where("source_feedback_id IS NOT NULL").Find(&evals).Error; err != nil {
		return fmt.Errorf("scan derived evaluations: %w", err)
	}

	corrected := 0
	failed := 0
	impacted := make(map[uint]struct{})

	for i := range evals {
		ev := &evals[i]

		var fb models.Feedback
		want := false
		err := s.db.Select("id", "is_confirmed").First(&fb, *ev.SourceFeedbackID).Error
		switch {
		case err == nil:
			want = fb.IsConfirmed
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Source is gone: the evaluation counts as unconfirmed until a
			// purge removes it.
		default:
			failed++
			logger.Errorf("[Sync] Reconcile: load feedback %d for evaluation %d: %v", *ev.SourceFeedbackID, ev.ID, err)
			continue
		}

		if ev.IsConfirmed == want {
			continue
		}

		if err := s.db.Model(&models.Evaluation{}).Where("id = ?", ev.ID).
			Update("is_confirmed", want).Error; err != nil {
			failed++
			logger.Errorf("[Sync] Reconcile: update evaluation %d: %v", ev.ID, err)
			continue
		}

		corrected++
		impacted[ev.OfficerID] = struct{}{}
	}

	for id := range impacted {
		if err := s.stats.RefreshOfficerStats(id); err != nil {
			logger.Errorf("[Sync] Reconcile: refresh officer %d: %v", id, err)
		}
	}

	s.logMaintenance(models.MaintenanceOpReconcile,
		fmt.Sprintf("Reconciled %d derived evaluations: %d corrected, %d failed", len(evals), corrected, failed),
		map[string]interface{}{
			"scanned":   len(evals),
			"corrected": corrected,
			"failed":    failed,
			"officers":  len(impacted),
		})

	logger.Infof("[Sync] Reconcile done: scanned=%d corrected=%d failed=%d officers=%d", len(evals), corrected, failed, len(impacted))
	return nil
}

// PurgeOrphanedEvaluations deletes derived evaluations whose source feedback
// no longer exists or is unconfirmed, then refreshes impacted officers.
// Explicit maintenance, never part of steady-state sync.
func (s *ConfirmationSyncService) PurgeOrphanedEvaluations() (int, error) {
	var evals []models.Evaluation
	err := s.db.Where("type = ? AND source_feedback_id IS NOT NULL", models.EvaluationTypeCitizenFeedback).
		Find(&evals).Error
	if err != nil {
		return 0, fmt.Errorf("scan derived evaluations: %w", err)
	}

	deleted := 0
	impacted := make(map[uint]struct{})

	for i := range evals {
		ev := &evals[i]

		var fb models.Feedback
		err := s.db.Select("id", "is_confirmed").First(&fb, *ev.SourceFeedbackID).Error
		orphaned := false
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			orphaned = true
		case err != nil:
			logger.Errorf("[Sync] Purge: load feedback %d for evaluation %d: %v", *ev.SourceFeedbackID, ev.ID, err)
			continue
		default:
			orphaned = !fb.IsConfirmed
		}

		if !orphaned {
			continue
		}

		if err := s.db.Delete(&models.Evaluation{}, ev.ID).Error; err != nil {
			logger.Errorf("[Sync] Purge: delete evaluation %d: %v", ev.ID, err)
			continue
		}

		deleted++
		impacted[ev.OfficerID] = struct{}{}
	}

	for id := range impacted {
		if err := s.stats.RefreshOfficerStats(id); err != nil {
			logger.Errorf("[Sync] Purge: refresh officer %d: %v", id, err)
		}
	}

	s.logMaintenance(models.MaintenanceOpPurgeOrphan,
		fmt.Sprintf("Purged %d orphaned evaluations, refreshed %d officers", deleted, len(impacted)),
		map[string]interface{}{
			"deleted":  deleted,
			"officers": len(impacted),
		})

	logger.Infof("[Sync] Purge done: deleted=%d officers=%d", deleted, len(impacted))
	return deleted, nil
}

func (s *ConfirmationSyncService) logMaintenance(op, message string, extra map[string]interface{}) {
	payload, _ := json.Marshal(extra)
	row := models.MaintenanceLog{
		Operation: op,
		Message:   message,
		Extra:     string(payload),
	}
	if err := s.db.Create(&row).Error; err != nil {
		logger.Errorf("[Sync] Failed to write maintenance log (%s): %v", op, err)
	}
}
