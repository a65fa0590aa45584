package models

import (
	"time"
)

// Officer represents an evaluated patrol officer.
//
// AvgScore, TotalEvaluations and TotalResponses are a denormalized cache of
// the officer's evaluations and confirmed citizen feedback. They are written
// only by the stats service and must always be recomputable from the source
// tables; nothing else may update them.
type Officer struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	BadgeNumber string     `gorm:"uniqueIndex;size:50;not null" json:"badge_number"`
	FirstName   string     `gorm:"size:100" json:"first_name"`
	LastName    string     `gorm:"size:100;not null" json:"last_name"`
	MiddleName  string     `gorm:"size:100" json:"middle_name"`
	Rank        string     `gorm:"size:100" json:"rank"`
	Department  string     `gorm:"size:200" json:"department"`
	Status      string     `gorm:"size:50;default:ACTIVE" json:"status"` // ACTIVE, SUSPENDED, DISMISSED
	HireDate    *time.Time `json:"hire_date"`

	AvgScore         float64 `gorm:"default:0" json:"avg_score"`
	TotalEvaluations int     `gorm:"default:0" json:"total_evaluations"`
	TotalResponses   int     `gorm:"default:0" json:"total_responses"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Officer) TableName() string { return "officers" }

// FullName returns "LastName FirstName" for display and logs.
func (o *Officer) FullName() string {
	if o.FirstName == "" {
		return o.LastName
	}
	return o.LastName + " " + o.FirstName
}
