package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dovira-ua/dovira/backend/internal/models"
	"github.com/dovira-ua/dovira/backend/pkg/logger"
)

// Submissions from one IP hash within the last hour at or above this count
// are flagged suspicious.
const suspiciousThreshold = 5

// FeedbackService owns the citizen feedback lifecycle: public submission,
// admin resolution and deletion.
type FeedbackService struct {
	db    *gorm.DB
	stats *StatsService
	sync  *ConfirmationSyncService
}

func NewFeedbackService(db *gorm.DB, stats *StatsService, sync *ConfirmationSyncService) *FeedbackService {
	return &FeedbackService{db: db, stats: stats, sync: sync}
}

type SubmitFeedbackRequest struct {
	ClientGeneratedID string `json:"client_generated_id"`
	ContactName       string `json:"contact_name"`
	ContactPhone      string `json:"contact_phone"`
	DistrictOrCity    string `json:"district_or_city"`
	IncidentType      string `json:"incident_type"`
	PatrolRef         string `json:"patrol_ref"`
	OfficerName       string `json:"officer_name"`
	BadgeNumber       string `json:"badge_number"`

	RatePoliteness      int `json:"rate_politeness" binding:"required,min=1,max=5"`
	RateProfessionalism int `json:"rate_professionalism" binding:"required,min=1,max=5"`
	RateEffectiveness   int `json:"rate_effectiveness" binding:"required,min=1,max=5"`
	RateOverall         int `json:"rate_overall" binding:"required,min=1,max=5"`

	Comment string `json:"comment"`
}

// Submit stores a public feedback submission.
//
// The submitter is linked to a citizen row by phone (created on first
// contact) and to an officer by badge number when it resolves. A resolved
// officer also gets an auto-derived CITIZEN_FEEDBACK evaluation mirroring the
// politeness and professionalism ratings, followed by a stats refresh.
// Repeated submissions from the same IP hash within an hour mark the row
// suspicious but never reject it.
func (s *FeedbackService) Submit(req *SubmitFeedbackRequest, clientIP, userAgent string) (*models.Feedback, error) {
	ipHash := hashIP(clientIP)

	var recent int64
	oneHourAgo := time.Now().Add(-time.Hour)
	if err := s.db.Model(&models.Feedback{}).
		Where("ip_hash = ? AND created_at >= ?", ipHash, oneHourAgo).
		Count(&recent).Error; err != nil {
		return nil, fmt.Errorf("count recent submissions: %w", err)
	}
	suspicious := recent >= suspiciousThreshold

	fb := &models.Feedback{
		ClientGeneratedID:   req.ClientGeneratedID,
		IPHash:              ipHash,
		UserAgent:           userAgent,
		Suspicious:          suspicious,
		DistrictOrCity:      req.DistrictOrCity,
		IncidentType:        req.IncidentType,
		PatrolRef:           req.PatrolRef,
		OfficerName:         req.OfficerName,
		BadgeNumber:         req.BadgeNumber,
		RatePoliteness:      req.RatePoliteness,
		RateProfessionalism: req.RateProfessionalism,
		RateEffectiveness:   req.RateEffectiveness,
		RateOverall:         req.RateOverall,
		Comment:             req.Comment,
		IsConfirmed:         true,
		Status:              models.FeedbackStatusNew,
	}
	if fb.ClientGeneratedID == "" {
		fb.ClientGeneratedID = uuid.NewString()
	}

	var officerID *uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.ContactPhone != "" {
			citizen, err := findOrCreateCitizen(tx, req.ContactPhone, req.ContactName, ipHash)
			if err != nil {
				return err
			}
			fb.CitizenID = &citizen.ID
		}

		if req.BadgeNumber != "" {
			var officer models.Officer
			err := tx.Where("badge_number = ?", req.BadgeNumber).First(&officer).Error
			if err == nil {
				officerID = &officer.ID
				fb.OfficerID = officerID
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		if err := tx.Create(fb).Error; err != nil {
			return err
		}

		if officerID != nil {
			eval := models.Evaluation{
				OfficerID:            *officerID,
				Type:                 models.EvaluationTypeCitizenFeedback,
				SourceFeedbackID:     &fb.ID,
				ScoreCommunication:   &req.RatePoliteness,
				ScoreProfessionalism: &req.RateProfessionalism,
				Notes:                req.Comment,
				IsConfirmed:          true,
			}
			if err := tx.Create(&eval).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store feedback: %w", err)
	}

	if officerID != nil {
		s.stats.RequestRefresh(*officerID)
	}

	// Notification rows are best-effort: a failure must not lose the report.
	s.notify(models.NotificationTypeNewFeedback, "NORMAL",
		"Новий відгук",
		fmt.Sprintf("Отримано новий відгук (%d/5) у справі %s.", req.RateOverall, orUnknown(req.PatrolRef)),
		fmt.Sprintf("/admin/reports/%d", fb.ID))

	if req.RateOverall <= 2 {
		s.notify(models.NotificationTypeCriticalRating, "URGENT",
			"Критично низька оцінка",
			fmt.Sprintf("Отримано відгук з оцінкою %d у районі %s.", req.RateOverall, orUnknown(req.DistrictOrCity)),
			fmt.Sprintf("/admin/reports/%d", fb.ID))
	}

	logger.Infof("[Feedback] Submission %d stored (officer=%v, suspicious=%v)", fb.ID, fb.OfficerID, suspicious)
	return fb, nil
}

type ResolveFeedbackRequest struct {
	ResolutionNotes  string `json:"resolution_notes" binding:"required"`
	IncidentCategory string `json:"incident_category" binding:"required"`
	TaggedOfficerIDs []uint `json:"tagged_officer_ids"`
	IsConfirmed      *bool  `json:"is_confirmed"`
}

// Resolve closes out a feedback: resolution notes, incident category, the
// final tagged officer set and the confirmation verdict. The confirmation
// flip (and the officer refreshes it entails, including officers untagged by
// this resolution) runs through the confirmation sync service.
func (s *FeedbackService) Resolve(feedbackID uint, req *ResolveFeedbackRequest) (*models.Feedback, error) {
	var fb models.Feedback
	if err := s.db.Preload("TaggedOfficers").First(&fb, feedbackID).Error; err != nil {
		return nil, fmt.Errorf("load feedback %d: %w", feedbackID, err)
	}

	previouslyTagged := make([]uint, 0, len(fb.TaggedOfficers))
	for i := range fb.TaggedOfficers {
		previouslyTagged = append(previouslyTagged, fb.TaggedOfficers[i].ID)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"resolution_notes":  req.ResolutionNotes,
		"incident_category": req.IncidentCategory,
		"resolution_date":   now,
		"status":            models.FeedbackStatusResolved,
	}
	if err := s.db.Model(&fb).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("resolve feedback %d: %w", feedbackID, err)
	}

	if req.TaggedOfficerIDs != nil {
		var officers []models.Officer
		if len(req.TaggedOfficerIDs) > 0 {
			if err := s.db.Find(&officers, req.TaggedOfficerIDs).Error; err != nil {
				return nil, fmt.Errorf("load tagged officers: %w", err)
			}
		}
		if err := s.db.Model(&fb).Association("TaggedOfficers").Replace(officers); err != nil {
			return nil, fmt.Errorf("replace tagged officers: %w", err)
		}
	}

	confirmed := fb.IsConfirmed
	if req.IsConfirmed != nil {
		confirmed = *req.IsConfirmed
	}
	if err := s.sync.ApplyConfirmation(feedbackID, confirmed, previouslyTagged); err != nil {
		return nil, err
	}

	if err := s.db.Preload("TaggedOfficers").First(&fb, feedbackID).Error; err != nil {
		return nil, fmt.Errorf("reload feedback %d: %w", feedbackID, err)
	}
	return &fb, nil
}

// Delete removes a feedback and its derived evaluations, then refreshes the
// officers it touched.
func (s *FeedbackService) Delete(feedbackID uint) error {
	var fb models.Feedback
	if err := s.db.Preload("TaggedOfficers").First(&fb, feedbackID).Error; err != nil {
		return fmt.Errorf("load feedback %d: %w", feedbackID, err)
	}

	touched := make(map[uint]struct{})
	if fb.OfficerID != nil {
		touched[*fb.OfficerID] = struct{}{}
	}
	for i := range fb.TaggedOfficers {
		touched[fb.TaggedOfficers[i].ID] = struct{}{}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("source_feedback_id = ?", feedbackID).Delete(&models.Evaluation{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&fb).Association("TaggedOfficers").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Feedback{}, feedbackID).Error
	})
	if err != nil {
		return fmt.Errorf("delete feedback %d: %w", feedbackID, err)
	}

	for id := range touched {
		s.stats.RequestRefresh(id)
	}
	return nil
}

// GetByID returns one feedback with its linked officer, citizen and tags.
func (s *FeedbackService) GetByID(feedbackID uint) (*models.Feedback, error) {
	var fb models.Feedback
	err := s.db.Preload("Officer").Preload("Citizen").Preload("TaggedOfficers").
		First(&fb, feedbackID).Error
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

type FeedbackListRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status    string `form:"status"`
	OfficerID uint   `form:"officer_id"`
	Rating    int    `form:"rating"`
}

type FeedbackListResponse struct {
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Items    []models.Feedback `json:"items"`
}

// List returns paginated feedback, newest first.
func (s *FeedbackService) List(req *FeedbackListRequest) (*FeedbackListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	var items []models.Feedback
	var total int64

	query := s.db.Model(&models.Feedback{}).Preload("Officer")
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.OfficerID > 0 {
		query = query.Where("officer_id = ?", req.OfficerID)
	}
	if req.Rating > 0 {
		query = query.Where("rate_overall = ?", req.Rating)
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}

	return &FeedbackListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    items,
	}, nil
}

func (s *FeedbackService) notify(kind, priority, title, message, link string) {
	row := models.AdminNotification{
		Type:     kind,
		Priority: priority,
		Title:    title,
		Message:  message,
		Link:     link,
	}
	if err := s.db.Create(&row).Error; err != nil {
		logger.Errorf("[Feedback] Failed to create %s notification: %v", kind, err)
	}
}

func findOrCreateCitizen(tx *gorm.DB, phone, fullName, ipHash string) (*models.Citizen, error) {
	var citizen models.Citizen
	err := tx.Where("phone = ?", phone).First(&citizen).Error
	if err == nil {
		return &citizen, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	citizen = models.Citizen{
		Phone:    phone,
		FullName: fullName,
		IPHash:   ipHash,
	}
	if err := tx.Create(&citizen).Error; err != nil {
		return nil, err
	}
	return &citizen, nil
}

// hashIP hides the raw client address behind a salted hash so rate analysis
// never stores PII.
func hashIP(ip string) string {
	salt := os.Getenv("IP_HASH_SECRET")
	if salt == "" {
		salt = "salt"
	}
	sum := sha256.Sum256([]byte(ip + salt))
	return hex.EncodeToString(sum[:])
}

func orUnknown(v string) string {
	if v == "" {
		return "не вказано"
	}
	return v
}
