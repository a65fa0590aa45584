package services

import (
	"fmt"
	"testing"

	"github.com/dovira-ua/dovira/backend/internal/models"
)

func feedbackFixture(t *testing.T) (*FeedbackService, *StatsService, *ConfirmationSyncService, *models.Officer) {
	t.Helper()
	db := setupTestDB(t)
	stats := NewStatsService(db)
	syncSvc := NewConfirmationSyncService(db, stats)
	svc := NewFeedbackService(db, stats, syncSvc)
	officer := createOfficer(t, db, "NPU-4001")
	return svc, stats, syncSvc, officer
}

func TestSubmit_LinksOfficerAndDerivesEvaluation(t *testing.T) {
	svc, _, _, officer := feedbackFixture(t)

	fb, err := svc.Submit(&SubmitFeedbackRequest{
		BadgeNumber:         "NPU-4001",
		RatePoliteness:      4,
		RateProfessionalism: 5,
		RateEffectiveness:   3,
		RateOverall:         4,
		Comment:             "Дуже ввічливий патруль",
	}, "203.0.113.7", "test-agent")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if fb.OfficerID == nil || *fb.OfficerID != officer.ID {
		t.Fatalf("OfficerID = %v, expected %d", fb.OfficerID, officer.ID)
	}
	if fb.ClientGeneratedID == "" {
		t.Error("ClientGeneratedID should be generated when absent")
	}
	if fb.Suspicious {
		t.Error("first submission should not be suspicious")
	}

	var eval models.Evaluation
	if err := svc.db.Where("source_feedback_id = ?", fb.ID).First(&eval).Error; err != nil {
		t.Fatalf("derived evaluation not found: %v", err)
	}
	if eval.Type != models.EvaluationTypeCitizenFeedback {
		t.Errorf("Type = %q, expected CITIZEN_FEEDBACK", eval.Type)
	}
	if eval.ScoreCommunication == nil || *eval.ScoreCommunication != 4 {
		t.Errorf("ScoreCommunication = %v, expected politeness rating 4", eval.ScoreCommunication)
	}
	if eval.ScoreProfessionalism == nil || *eval.ScoreProfessionalism != 5 {
		t.Errorf("ScoreProfessionalism = %v, expected 5", eval.ScoreProfessionalism)
	}
	if eval.Notes != "Дуже ввічливий патруль" {
		t.Errorf("Notes = %q, expected the comment", eval.Notes)
	}

	// The summary was recomputed in-line (no queue in tests):
	// evaluation mean (4+5)/2 = 4.5 blended with the confirmed rating 4.
	var got models.Officer
	svc.db.First(&got, officer.ID)
	if got.AvgScore != 4.25 {
		t.Errorf("AvgScore = %v, expected 4.25", got.AvgScore)
	}
	if got.TotalResponses != 1 {
		t.Errorf("TotalResponses = %d, expected 1", got.TotalResponses)
	}
}

func TestSubmit_UnknownBadgeSkipsEvaluation(t *testing.T) {
	svc, _, _, _ := feedbackFixture(t)

	fb, err := svc.Submit(&SubmitFeedbackRequest{
		BadgeNumber:         "NO-SUCH-BADGE",
		RatePoliteness:      3,
		RateProfessionalism: 3,
		RateEffectiveness:   3,
		RateOverall:         3,
	}, "203.0.113.8", "test-agent")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if fb.OfficerID != nil {
		t.Errorf("OfficerID = %v, expected nil for unknown badge", fb.OfficerID)
	}
	var count int64
	svc.db.Model(&models.Evaluation{}).Count(&count)
	if count != 0 {
		t.Errorf("evaluations = %d, expected none", count)
	}
}

func TestSubmit_CreatesCitizenByPhone(t *testing.T) {
	svc, _, _, _ := feedbackFixture(t)

	req := &SubmitFeedbackRequest{
		ContactPhone:        "+380501234567",
		ContactName:         "Іван Франко",
		RatePoliteness:      5,
		RateProfessionalism: 5,
		RateEffectiveness:   5,
		RateOverall:         5,
	}
	first, err := svc.Submit(req, "203.0.113.9", "test-agent")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	second, err := svc.Submit(req, "203.0.113.9", "test-agent")
	if err != nil {
		t.Fatalf("second Submit() error = %v", err)
	}

	if first.CitizenID == nil || second.CitizenID == nil {
		t.Fatal("both submissions should link a citizen")
	}
	if *first.CitizenID != *second.CitizenID {
		t.Errorf("citizen ids differ (%d vs %d), expected reuse by phone", *first.CitizenID, *second.CitizenID)
	}
	var count int64
	svc.db.Model(&models.Citizen{}).Count(&count)
	if count != 1 {
		t.Errorf("citizens = %d, expected 1", count)
	}
}

func TestSubmit_SuspiciousAfterRapidSubmissions(t *testing.T) {
	svc, _, _, _ := feedbackFixture(t)

	req := func(i int) *SubmitFeedbackRequest {
		return &SubmitFeedbackRequest{
			ClientGeneratedID:   fmt.Sprintf("rapid-%d", i),
			RatePoliteness:      3,
			RateProfessionalism: 3,
			RateEffectiveness:   3,
			RateOverall:         3,
		}
	}

	for i := 0; i < suspiciousThreshold; i++ {
		fb, err := svc.Submit(req(i), "198.51.100.1", "test-agent")
		if err != nil {
			t.Fatalf("Submit(%d) error = %v", i, err)
		}
		if fb.Suspicious {
			t.Errorf("submission %d flagged suspicious too early", i)
		}
	}

	fb, err := svc.Submit(req(suspiciousThreshold), "198.51.100.1", "test-agent")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !fb.Suspicious {
		t.Errorf("submission %d should be suspicious", suspiciousThreshold)
	}

	// A different address is unaffected.
	other, err := svc.Submit(req(100), "198.51.100.2", "test-agent")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if other.Suspicious {
		t.Error("submission from a fresh address flagged suspicious")
	}
}

func TestSubmit_CriticalRatingNotification(t *testing.T) {
	svc, _, _, _ := feedbackFixture(t)

	_, err := svc.Submit(&SubmitFeedbackRequest{
		RatePoliteness:      1,
		RateProfessionalism: 1,
		RateEffectiveness:   1,
		RateOverall:         2,
		DistrictOrCity:      "Львів",
	}, "203.0.113.10", "test-agent")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	var normal, urgent []models.AdminNotification
	svc.db.Where("type = ?", models.NotificationTypeNewFeedback).Find(&normal)
	svc.db.Where("type = ?", models.NotificationTypeCriticalRating).Find(&urgent)
	if len(normal) != 1 {
		t.Errorf("NEW_FEEDBACK notifications = %d, expected 1", len(normal))
	}
	if len(urgent) != 1 {
		t.Fatalf("CRITICAL_RATING notifications = %d, expected 1", len(urgent))
	}
	if urgent[0].Priority != "URGENT" {
		t.Errorf("Priority = %q, expected URGENT", urgent[0].Priority)
	}
}

func TestResolve_TagsOfficersAndSyncsConfirmation(t *testing.T) {
	svc, _, _, officer := feedbackFixture(t)
	tagged := createOfficer(t, svc.db, "NPU-4002")

	fb, err := svc.Submit(&SubmitFeedbackRequest{
		BadgeNumber:         officer.BadgeNumber,
		RatePoliteness:      5,
		RateProfessionalism: 5,
		RateEffectiveness:   5,
		RateOverall:         5,
	}, "203.0.113.11", "test-agent")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	confirmed := false
	resolved, err := svc.Resolve(fb.ID, &ResolveFeedbackRequest{
		ResolutionNotes:  "Факт не підтверджено після дзвінка",
		IncidentCategory: "DOC_CHECK",
		TaggedOfficerIDs: []uint{tagged.ID},
		IsConfirmed:      &confirmed,
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if resolved.Status != models.FeedbackStatusResolved {
		t.Errorf("Status = %q, expected RESOLVED", resolved.Status)
	}
	if resolved.ResolutionDate == nil {
		t.Error("ResolutionDate not set")
	}
	if resolved.IsConfirmed {
		t.Error("feedback should be unconfirmed after resolution verdict")
	}
	if len(resolved.TaggedOfficers) != 1 || resolved.TaggedOfficers[0].ID != tagged.ID {
		t.Errorf("TaggedOfficers = %+v, expected just officer %d", resolved.TaggedOfficers, tagged.ID)
	}

	var eval models.Evaluation
	if err := svc.db.Where("source_feedback_id = ?", fb.ID).First(&eval).Error; err != nil {
		t.Fatalf("derived evaluation not found: %v", err)
	}
	if eval.IsConfirmed {
		t.Error("derived evaluation should mirror the unconfirmed verdict")
	}

	// Unconfirmed rating leaves the average pool for both officers.
	var gotDirect, gotTagged models.Officer
	svc.db.First(&gotDirect, officer.ID)
	svc.db.First(&gotTagged, tagged.ID)
	if gotDirect.TotalResponses != 1 {
		t.Errorf("direct officer TotalResponses = %d, expected 1", gotDirect.TotalResponses)
	}
	if gotTagged.TotalResponses != 1 {
		t.Errorf("tagged officer TotalResponses = %d, expected 1", gotTagged.TotalResponses)
	}
	if gotTagged.AvgScore != 0 {
		t.Errorf("tagged officer AvgScore = %v, expected 0 (unconfirmed rating excluded)", gotTagged.AvgScore)
	}
}

func TestDelete_RemovesDerivedEvaluationsAndRefreshes(t *testing.T) {
	svc, _, _, officer := feedbackFixture(t)

	fb, err := svc.Submit(&SubmitFeedbackRequest{
		BadgeNumber:         officer.BadgeNumber,
		RatePoliteness:      5,
		RateProfessionalism: 5,
		RateEffectiveness:   5,
		RateOverall:         5,
	}, "203.0.113.12", "test-agent")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if err := svc.Delete(fb.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var fbCount, evalCount int64
	svc.db.Model(&models.Feedback{}).Count(&fbCount)
	svc.db.Model(&models.Evaluation{}).Count(&evalCount)
	if fbCount != 0 || evalCount != 0 {
		t.Errorf("rows after delete: feedback=%d evaluations=%d, expected 0/0", fbCount, evalCount)
	}

	var got models.Officer
	svc.db.First(&got, officer.ID)
	if got.AvgScore != 0 || got.TotalEvaluations != 0 || got.TotalResponses != 0 {
		t.Errorf("summary = {%v %d %d}, expected zeros after delete", got.AvgScore, got.TotalEvaluations, got.TotalResponses)
	}
}

func TestHashIP_StableAndOpaque(t *testing.T) {
	a := hashIP("203.0.113.1")
	b := hashIP("203.0.113.1")
	c := hashIP("203.0.113.2")

	if a != b {
		t.Error("hash must be stable for the same address")
	}
	if a == c {
		t.Error("different addresses must not collide trivially")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, expected 64 hex chars", len(a))
	}
}
