package services

import (
	"fmt"
	"math"

	"github.com/dovira-ua/dovira/backend/internal/models"
	"github.com/dovira-ua/dovira/backend/pkg/logger"
	"gorm.io/gorm"
)

// StatsService recomputes the denormalized officer summary (avg_score,
// total_evaluations, total_responses) from the source tables. It is the only
// writer of those columns.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// RefreshOfficerStats recalculates one officer's summary from scratch.
//
// The average blends two pools: the per-evaluation mean of each evaluation's
// positive dimension scores, and the overall rating of every confirmed rated
// feedback linked to the officer directly or via tagging. Each contributor
// weighs 1 regardless of how many dimensions it carries.
//
// total_responses intentionally counts rated feedback regardless of the
// confirmation flag, while the average input above is confirmation-filtered.
// The discrepancy is inherited behavior, kept until the domain owners decide
// whether unconfirmed submissions should drop out of the counter too.
//
// Idempotent: unchanged sources yield an identical summary row.
func (s *StatsService) RefreshOfficerStats(officerID uint) error {
	var evals []models.Evaluation
	if err := s.db.Where("officer_id = ?", officerID).Find(&evals).Error; err != nil {
		return fmt.Errorf("load evaluations for officer %d: %w", officerID, err)
	}

	var ratings []int
	err := s.db.Model(&models.Feedback{}).
		Where("officer_id = ? OR id IN (?)", officerID, s.taggedFeedbackIDs(officerID)).
		Where("is_confirmed = ?", true).
		Where("rate_overall > 0").
		Pluck("rate_overall", &ratings).Error
	if err != nil {
		return fmt.Errorf("load confirmed feedback for officer %d: %w", officerID, err)
	}

	var totalResponses int64
	err = s.db.Model(&models.Feedback{}).
		Where("officer_id = ? OR id IN (?)", officerID, s.taggedFeedbackIDs(officerID)).
		Where("rate_overall > 0").
		Count(&totalResponses).Error
	if err != nil {
		return fmt.Errorf("count responses for officer %d: %w", officerID, err)
	}

	var totalPoints float64
	var totalCount int

	for i := range evals {
		scores := evals[i].DimensionScores()
		if len(scores) == 0 {
			continue
		}
		sum := 0
		for _, sc := range scores {
			sum += sc
		}
		totalPoints += float64(sum) / float64(len(scores))
		totalCount++
	}

	for _, r := range ratings {
		totalPoints += float64(r)
		totalCount++
	}

	avgScore := 0.0
	if totalCount > 0 {
		avgScore = round2(totalPoints / float64(totalCount))
	}

	err = s.db.Model(&models.Officer{}).Where("id = ?", officerID).Updates(map[string]interface{}{
		"avg_score":         avgScore,
		"total_evaluations": len(evals),
		"total_responses":   totalResponses,
	}).Error
	if err != nil {
		return fmt.Errorf("update summary for officer %d: %w", officerID, err)
	}

	return nil
}

// RefreshAllOfficerStats recalculates every officer sequentially. A failure
// on one officer is logged and the run continues.
func (s *StatsService) RefreshAllOfficerStats() error {
	var ids []uint
	if err := s.db.Model(&models.Officer{}).Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("list officers: %w", err)
	}

	failed := 0
	for _, id := range ids {
		if err := s.RefreshOfficerStats(id); err != nil {
			failed++
			logger.Errorf("[Stats] Refresh failed for officer %d: %v", id, err)
		}
	}

	logger.Infof("[Stats] Recalibrated %d officers (%d failed)", len(ids), failed)
	return nil
}

// RequestRefresh routes a per-officer refresh through the task queue when one
// is initialized, so concurrent mutations for the same officer serialize on
// the worker instead of racing on the summary row. Without a queue it
// refreshes in-line. Errors are logged, not returned: the summary is a cache
// and the next refresh self-corrects.
func (s *StatsService) RequestRefresh(officerID uint) {
	if q := GetTaskQueue(); q != nil {
		err := q.Enqueue(&StatsTask{OfficerID: officerID})
		if err == nil {
			return
		}
		logger.Warnf("[Stats] Enqueue failed for officer %d, refreshing in-line: %v", officerID, err)
	}
	if err := s.RefreshOfficerStats(officerID); err != nil {
		logger.Errorf("[Stats] Refresh failed for officer %d: %v", officerID, err)
	}
}

// taggedFeedbackIDs builds the subquery of feedback ids where the officer is
// tagged. Built fresh per use; gorm chains are not reusable.
func (s *StatsService) taggedFeedbackIDs(officerID uint) *gorm.DB {
	return s.db.Table("feedback_tagged_officers").
		Select("feedback_id").
		Where("officer_id = ?", officerID)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
