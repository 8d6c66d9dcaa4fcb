package database

import (
	"fmt"
	"log"

	"match-typer/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect establishes a connection to the PostgreSQL database
func Connect(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established successfully")
	return nil
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate() error {
	coreModels := []interface{}{
		&models.User{},
		&models.Match{},
		&models.Prediction{},
	}

	for _, model := range coreModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("migration failed for %T: %w", model, err)
		}
	}

	adminModels := []interface{}{
		&models.AdminUser{},
		&models.AdminLog{},
		&models.PlatformStats{},
	}

	for _, model := range adminModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("migration failed for %T: %w", model, err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedAdmins grants the admin capability to the configured user ids. Users
// that never logged in yet get their admin row ahead of the first session.
func SeedAdmins(ids []string) error {
	for _, id := range ids {
		admin := models.AdminUser{UserID: id, Role: "SUPER_ADMIN"}
		err := DB.Where("user_id = ?", id).FirstOrCreate(&admin).Error
		if err != nil {
			return fmt.Errorf("failed to seed admin %s: %w", id, err)
		}
	}

	if len(ids) > 0 {
		log.Printf("Seeded %d admin id(s)", len(ids))
	}
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
