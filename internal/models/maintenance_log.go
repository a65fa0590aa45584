package models

import "time"

// Maintenance operations
const (
	MaintenanceOpReconcile   = "CONFIRMATION_RECONCILE"
	MaintenanceOpPurgeOrphan = "PURGE_ORPHANED_EVALUATIONS"
	MaintenanceOpRecalibrate = "RECALIBRATE_STATS"
)

// MaintenanceLog records batch maintenance runs: confirmation reconciliation,
// orphaned evaluation purges and full stats recalibrations.
type MaintenanceLog struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Operation string `gorm:"size:100;index" json:"operation"`
	Message   string `gorm:"type:text" json:"message"`
	// Extra holds JSON details (affected ids, counts).
	Extra string `gorm:"type:text" json:"extra"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (MaintenanceLog) TableName() string { return "maintenance_logs" }
