package services

import (
	"testing"

	"github.com/dovira-ua/dovira/backend/internal/models"
)

func TestApplyConfirmation_PropagatesToEvaluations(t *testing.T) {
	db := setupTestDB(t)
	stats := NewStatsService(db)
	syncSvc := NewConfirmationSyncService(db, stats)
	officer := createOfficer(t, db, "NPU-3001")

	fb := models.Feedback{ClientGeneratedID: "fb-sync", OfficerID: &officer.ID, RateOverall: 5, IsConfirmed: true, Status: models.FeedbackStatusNew}
	if err := db.Create(&fb).Error; err != nil {
		t.Fatalf("create feedback: %v", err)
	}
	eval := models.Evaluation{
		OfficerID:          officer.ID,
		Type:               models.EvaluationTypeCitizenFeedback,
		SourceFeedbackID:   &fb.ID,
		ScoreCommunication: intPtr(5),
		IsConfirmed:        true,
	}
	if err := db.Create(&eval).Error; err != nil {
		t.Fatalf("create evaluation: %v", err)
	}

	if err := stats.RefreshOfficerStats(officer.ID); err != nil {
		t.Fatalf("initial refresh: %v", err)
	}
	var before models.Officer
	db.First(&before, officer.ID)
	if before.AvgScore != 5.0 {
		t.Fatalf("AvgScore before flip = %v, expected 5.0", before.AvgScore)
	}

	if err := syncSvc.ApplyConfirmation(fb.ID, false, nil); err != nil {
		t.Fatalf("ApplyConfirmation() error = %v", err)
	}

	var gotFb models.Feedback
	db.First(&gotFb, fb.ID)
	if gotFb.IsConfirmed {
		t.Error("feedback still confirmed after flip")
	}
	var gotEval models.Evaluation
	db.First(&gotEval, eval.ID)
	if gotEval.IsConfirmed {
		t.Error("derived evaluation still confirmed after flip")
	}

	// The unconfirmed feedback drops out of the average pool; the evaluation
	// row itself (now unconfirmed) still contributes until purged, matching
	// how the aggregator reads its sources.
	var after models.Officer
	db.First(&after, officer.ID)
	if after.TotalResponses != 1 {
		t.Errorf("TotalResponses = %d, expected 1 (counter ignores confirmation)", after.TotalResponses)
	}
	if after.AvgScore != 5.0 {
		t.Errorf("AvgScore = %v, expected 5.0 from the remaining evaluation", after.AvgScore)
	}
}

func TestApplyConfirmation_RefreshesPreviouslyTagged(t *testing.T) {
	db := setupTestDB(t)
	stats := NewStatsService(db)
	syncSvc := NewConfirmationSyncService(db, stats)
	removed := createOfficer(t, db, "NPU-3002")

	// The officer was tagged on a confirmed rated feedback, then untagged;
	// its summary still carries the stale contribution.
	fb := models.Feedback{ClientGeneratedID: "fb-untag", RateOverall: 5, IsConfirmed: true, Status: models.FeedbackStatusNew}
	if err := db.Create(&fb).Error; err != nil {
		t.Fatalf("create feedback: %v", err)
	}
	if err := db.Model(&fb).Association("TaggedOfficers").Append(removed); err != nil {
		t.Fatalf("tag officer: %v", err)
	}
	if err := stats.RefreshOfficerStats(removed.ID); err != nil {
		t.Fatalf("initial refresh: %v", err)
	}
	if err := db.Model(&fb).Association("TaggedOfficers").Clear(); err != nil {
		t.Fatalf("untag officer: %v", err)
	}

	if err := syncSvc.ApplyConfirmation(fb.ID, true, []uint{removed.ID}); err != nil {
		t.Fatalf("ApplyConfirmation() error = %v", err)
	}

	var got models.Officer
	db.First(&got, removed.ID)
	if got.AvgScore != 0 || got.TotalResponses != 0 {
		t.Errorf("stale summary not cleared: avg=%v responses=%d", got.AvgScore, got.TotalResponses)
	}
}

func TestReconcileAll_FixesDrift(t *testing.T) {
	db := setupTestDB(t)
	stats := NewStatsService(db)
	syncSvc := NewConfirmationSyncService(db, stats)
	officer := createOfficer(t, db, "NPU-3003")

	fb := models.Feedback{ClientGeneratedID: "fb-drift", OfficerID: &officer.ID, RateOverall: 4, IsConfirmed: false, Status: models.FeedbackStatusNew}
	if err := db.Create(&fb).Error; err != nil {
		t.Fatalf("create feedback: %v", err)
	}
	// Drifted: evaluation says confirmed, source says not.
	eval := models.Evaluation{
		OfficerID:        officer.ID,
		Type:             models.EvaluationTypeCitizenFeedback,
		SourceFeedbackID: &fb.ID,
		ScoreCommunication: intPtr(4),
		IsConfirmed:      true,
	}
	if err := db.Create(&eval).Error; err != nil {
		t.Fatalf("create evaluation: %v", err)
	}

	if err := syncSvc.ReconcileAll(); err != nil {
		t.Fatalf("ReconcileAll() error = %v", err)
	}

	var gotEval models.Evaluation
	db.First(&gotEval, eval.ID)
	if gotEval.IsConfirmed {
		t.Error("drifted evaluation not corrected")
	}

	var logs []models.MaintenanceLog
	db.Where("operation = ?", models.MaintenanceOpReconcile).Find(&logs)
	if len(logs) != 1 {
		t.Errorf("maintenance log rows = %d, expected 1", len(logs))
	}
}

func TestReconcileAll_MissingSourceTreatedAsUnconfirmed(t *testing.T) {
	db := setupTestDB(t)
	stats := NewStatsService(db)
	syncSvc := NewConfirmationSyncService(db, stats)
	officer := createOfficer(t, db, "NPU-3004")

	ghost := uint(99999)
	eval := models.Evaluation{
		OfficerID:        officer.ID,
		Type:             models.EvaluationTypeCitizenFeedback,
		SourceFeedbackID: &ghost,
		IsConfirmed:      true,
	}
	if err := db.Create(&eval).Error; err != nil {
		t.Fatalf("create evaluation: %v", err)
	}

	if err := syncSvc.ReconcileAll(); err != nil {
		t.Fatalf("ReconcileAll() error = %v", err)
	}

	var gotEval models.Evaluation
	db.First(&gotEval, eval.ID)
	if gotEval.IsConfirmed {
		t.Error("orphaned evaluation should be marked unconfirmed, not deleted")
	}
	var count int64
	db.Model(&models.Evaluation{}).Count(&count)
	if count != 1 {
		t.Errorf("evaluation rows = %d, expected 1 (reconcile never deletes)", count)
	}
}

func TestPurgeOrphanedEvaluations(t *testing.T) {
	db := setupTestDB(t)
	stats := NewStatsService(db)
	syncSvc := NewConfirmationSyncService(db, stats)
	officer := createOfficer(t, db, "NPU-3005")

	fbUnconf := models.Feedback{ClientGeneratedID: "fb-unconf-purge", OfficerID: &officer.ID, RateOverall: 2, IsConfirmed: false, Status: models.FeedbackStatusNew}
	if err := db.Create(&fbUnconf).Error; err != nil {
		t.Fatalf("create feedback: %v", err)
	}
	ghost := uint(88888)

	evals := []models.Evaluation{
		{OfficerID: officer.ID, Type: models.EvaluationTypeCitizenFeedback, SourceFeedbackID: &fbUnconf.ID, ScoreCommunication: intPtr(2), IsConfirmed: false},
		{OfficerID: officer.ID, Type: models.EvaluationTypeCitizenFeedback, SourceFeedbackID: &ghost, ScoreCommunication: intPtr(1), IsConfirmed: false},
		// Manual evaluation: untouched by the purge.
		{OfficerID: officer.ID, Type: models.EvaluationTypeManual, ScoreKnowledge: intPtr(5), IsConfirmed: true},
	}
	for i := range evals {
		if err := db.Create(&evals[i]).Error; err != nil {
			t.Fatalf("create evaluation: %v", err)
		}
	}

	deleted, err := syncSvc.PurgeOrphanedEvaluations()
	if err != nil {
		t.Fatalf("PurgeOrphanedEvaluations() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, expected 2", deleted)
	}

	var remaining []models.Evaluation
	db.Find(&remaining)
	if len(remaining) != 1 || remaining[0].Type != models.EvaluationTypeManual {
		t.Errorf("remaining evaluations = %+v, expected only the manual one", remaining)
	}

	// Impacted officer got refreshed from the surviving sources.
	var got models.Officer
	db.First(&got, officer.ID)
	if got.AvgScore != 5.0 {
		t.Errorf("AvgScore = %v, expected 5.0 after purge refresh", got.AvgScore)
	}
	if got.TotalEvaluations != 1 {
		t.Errorf("TotalEvaluations = %d, expected 1", got.TotalEvaluations)
	}

	var logs []models.MaintenanceLog
	db.Where("operation = ?", models.MaintenanceOpPurgeOrphan).Find(&logs)
	if len(logs) != 1 {
		t.Errorf("maintenance log rows = %d, expected 1", len(logs))
	}
}
