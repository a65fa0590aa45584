package models

import (
	"time"
)

// Feedback statuses
const (
	FeedbackStatusNew      = "NEW"
	FeedbackStatusAssigned = "ASSIGNED"
	FeedbackStatusResolved = "RESOLVED"
)

// Feedback is one citizen feedback submission about an officer encounter.
//
// A feedback row is never hard-deleted during normal operation; when an
// officer is removed the direct OfficerID reference is nulled instead.
// IsConfirmed marks whether the submission counts toward trusted statistics;
// flipping it must go through the confirmation sync service so derived
// evaluations stay in step.
type Feedback struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	ClientGeneratedID string `gorm:"uniqueIndex;size:64" json:"client_generated_id"`
	IPHash            string `gorm:"size:64;index" json:"-"`
	UserAgent         string `gorm:"size:500" json:"-"`
	Suspicious        bool   `gorm:"default:false" json:"suspicious"`

	DistrictOrCity string `gorm:"size:200" json:"district_or_city"`
	IncidentType   string `gorm:"size:100" json:"incident_type"`
	PatrolRef      string `gorm:"size:100" json:"patrol_ref"`

	// Officer link as submitted (free text) and resolved (FK).
	OfficerName string   `gorm:"size:200" json:"officer_name"`
	BadgeNumber string   `gorm:"size:50" json:"badge_number"`
	OfficerID   *uint    `gorm:"index" json:"officer_id"`
	Officer     *Officer `gorm:"foreignKey:OfficerID" json:"officer,omitempty"`

	CitizenID *uint    `gorm:"index" json:"citizen_id"`
	Citizen   *Citizen `gorm:"foreignKey:CitizenID" json:"citizen,omitempty"`

	// Officers additionally tagged during resolution.
	TaggedOfficers []Officer `gorm:"many2many:feedback_tagged_officers" json:"tagged_officers,omitempty"`

	RatePoliteness      int `json:"rate_politeness"`
	RateProfessionalism int `json:"rate_professionalism"`
	RateEffectiveness   int `json:"rate_effectiveness"`
	// RateOverall 1-5; 0 means unrated and such rows are excluded from all
	// rating-derived analytics.
	RateOverall int    `gorm:"index" json:"rate_overall"`
	Comment     string `gorm:"type:text" json:"comment"`

	IsConfirmed bool `gorm:"default:true" json:"is_confirmed"`

	Status           string     `gorm:"size:50;default:NEW" json:"status"`
	IncidentCategory string     `gorm:"size:100" json:"incident_category"`
	ResolutionNotes  string     `gorm:"type:text" json:"resolution_notes"`
	ResolutionDate   *time.Time `json:"resolution_date"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Feedback) TableName() string { return "feedbacks" }
