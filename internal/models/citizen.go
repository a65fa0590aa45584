package models

import "time"

// Citizen is the originator of feedback submissions, matched by phone number.
// Behavioral tags for a citizen are derived on demand from their feedback
// history and are never persisted.
type Citizen struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Phone    string `gorm:"uniqueIndex;size:30;not null" json:"phone"`
	FullName string `gorm:"size:200" json:"full_name"`
	IPHash   string `gorm:"size:64" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Citizen) TableName() string { return "citizens" }
