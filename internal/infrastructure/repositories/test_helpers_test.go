package repositories

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&DBUser{}, &DBProvider{}, &DBReview{}, &DBPayment{}, &DBContactLog{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, user DBUser) DBUser {
	t.Helper()
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedProvider(t *testing.T, db *gorm.DB, provider DBProvider) DBProvider {
	t.Helper()
	if err := db.Create(&provider).Error; err != nil {
		t.Fatalf("failed to seed provider: %v", err)
	}
	return provider
}

func timePtr(v time.Time) *time.Time { return &v }

func floatPtr(v float64) *float64 { return &v }
