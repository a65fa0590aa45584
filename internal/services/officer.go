package services

import (
	"fmt"
	"time"

	"github.com/dovira-ua/dovira/backend/internal/models"
	"github.com/dovira-ua/dovira/backend/pkg/logger"
	"gorm.io/gorm"
)

// OfficerService manages the officer roster.
type OfficerService struct {
	db *gorm.DB
}

func NewOfficerService(db *gorm.DB) *OfficerService {
	return &OfficerService{db: db}
}

type CreateOfficerRequest struct {
	BadgeNumber string `json:"badge_number" binding:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name" binding:"required"`
	MiddleName  string `json:"middle_name"`
	Rank        string `json:"rank"`
	Department  string `json:"department"`
	HireDate    string `json:"hire_date"`
}

// Create registers a new officer.
func (s *OfficerService) Create(req *CreateOfficerRequest) (*models.Officer, error) {
	officer := &models.Officer{
		BadgeNumber: req.BadgeNumber,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		MiddleName:  req.MiddleName,
		Rank:        req.Rank,
		Department:  req.Department,
		Status:      "ACTIVE",
	}
	if req.HireDate != "" {
		if parsed, err := time.Parse("2006-01-02", req.HireDate); err == nil {
			officer.HireDate = &parsed
		}
	}

	if err := s.db.Create(officer).Error; err != nil {
		return nil, fmt.Errorf("create officer: %w", err)
	}
	return officer, nil
}

type UpdateOfficerRequest struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	MiddleName *string `json:"middle_name"`
	Rank       *string `json:"rank"`
	Department *string `json:"department"`
	Status     *string `json:"status"`
}

// Update applies partial changes to an officer row. The denormalized stats
// columns are not touchable here.
func (s *OfficerService) Update(officerID uint, req *UpdateOfficerRequest) (*models.Officer, error) {
	var officer models.Officer
	if err := s.db.First(&officer, officerID).Error; err != nil {
		return nil, fmt.Errorf("load officer %d: %w", officerID, err)
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.MiddleName != nil {
		updates["middle_name"] = *req.MiddleName
	}
	if req.Rank != nil {
		updates["rank"] = *req.Rank
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := s.db.Model(&officer).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update officer %d: %w", officerID, err)
		}
	}
	return &officer, nil
}

// GetByID returns one officer.
func (s *OfficerService) GetByID(officerID uint) (*models.Officer, error) {
	var officer models.Officer
	if err := s.db.First(&officer, officerID).Error; err != nil {
		return nil, err
	}
	return &officer, nil
}

// GetByBadge returns the officer with the given badge number.
func (s *OfficerService) GetByBadge(badge string) (*models.Officer, error) {
	var officer models.Officer
	if err := s.db.Where("badge_number = ?", badge).First(&officer).Error; err != nil {
		return nil, err
	}
	return &officer, nil
}

type OfficerListRequest struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Department string `form:"department"`
	Status     string `form:"status"`
	Search     string `form:"search"`
}

type OfficerListResponse struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []models.Officer `json:"items"`
}

// List returns paginated officers, best rated first.
func (s *OfficerService) List(req *OfficerListRequest) (*OfficerListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	var items []models.Officer
	var total int64

	query := s.db.Model(&models.Officer{})
	if req.Department != "" {
		query = query.Where("department = ?", req.Department)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("last_name LIKE ? OR first_name LIKE ? OR badge_number LIKE ?", like, like, like)
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).
		Order("avg_score DESC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	return &OfficerListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    items,
	}, nil
}

// Delete hard-deletes an officer. Direct feedback references are unlinked
// first (the reports themselves survive); derived and manual evaluations go
// with the officer; tag rows are cleaned via the join table. No stats refresh
// follows since there is no summary row left to update.
func (s *OfficerService) Delete(officerID uint) error {
	var officer models.Officer
	if err := s.db.First(&officer, officerID).Error; err != nil {
		return fmt.Errorf("load officer %d: %w", officerID, err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Feedback{}).
			Where("officer_id = ?", officerID).
			Update("officer_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("officer_id = ?", officerID).Delete(&models.Evaluation{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM feedback_tagged_officers WHERE officer_id = ?", officerID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Officer{}, officerID).Error
	})
	if err != nil {
		return fmt.Errorf("delete officer %d: %w", officerID, err)
	}

	logger.Infof("[Officer] Deleted officer %d (badge %s), feedback unlinked", officerID, officer.BadgeNumber)
	return nil
}
