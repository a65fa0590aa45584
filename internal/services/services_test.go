package services

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dovira-ua/dovira/backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Officer{},
		&models.Citizen{},
		&models.Feedback{},
		&models.Evaluation{},
		&models.AdminNotification{},
		&models.MaintenanceLog{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}

func createOfficer(t *testing.T, db *gorm.DB, badge string) *models.Officer {
	t.Helper()
	officer := &models.Officer{
		BadgeNumber: badge,
		FirstName:   "Тарас",
		LastName:    "Шевченко",
		Status:      "ACTIVE",
	}
	if err := db.Create(officer).Error; err != nil {
		t.Fatalf("create officer: %v", err)
	}
	return officer
}

func intPtr(v int) *int { return &v }
