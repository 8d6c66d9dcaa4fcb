package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"match-typer/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a per-test in-memory database. The name makes each
// test's database private while keeping it shared across the pool's
// connections.
func setupTestDB(t *testing.T) *gorm.DB {
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Match{},
		&models.Prediction{},
		&models.AdminUser{},
		&models.AdminLog{},
		&models.PlatformStats{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, id, username string) *models.User {
	user := &models.User{ID: id, Username: username}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", id, err)
	}
	return user
}

func createTestMatch(t *testing.T, db *gorm.DB, format models.MatchFormat, startTime *time.Time) *models.Match {
	match := &models.Match{
		Player1:   "Alpha",
		Player2:   "Bravo",
		Format:    format,
		StartTime: startTime,
		Status:    models.MatchStatusUpcoming,
	}
	if err := db.Create(match).Error; err != nil {
		t.Fatalf("failed to create match: %v", err)
	}
	return match
}

func userPoints(t *testing.T, db *gorm.DB, id string) int {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		t.Fatalf("failed to load user %s: %v", id, err)
	}
	return user.Points
}

func timePtr(t time.Time) *time.Time {
	return &t
}
