package models

import "time"

// Notification types
const (
	NotificationTypeNewFeedback    = "NEW_FEEDBACK"
	NotificationTypeCriticalRating = "CRITICAL_RATING"
	NotificationTypeBurnoutAlert   = "BURNOUT_ALERT"
)

// AdminNotification is an in-app notification row for the admin panel.
// Delivery (push, email) is handled by an external system; this engine only
// creates the rows.
type AdminNotification struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	Type     string     `gorm:"size:50;index" json:"type"`
	Priority string     `gorm:"size:20;default:NORMAL" json:"priority"` // NORMAL, URGENT
	Title    string     `gorm:"size:200" json:"title"`
	Message  string     `gorm:"type:text" json:"message"`
	Link     string     `gorm:"size:500" json:"link"`
	ReadAt   *time.Time `json:"read_at"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (AdminNotification) TableName() string { return "admin_notifications" }
