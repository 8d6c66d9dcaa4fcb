package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JSONB for PostgreSQL JSON support
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, &j)
}

// AdminUser marks a user as holding the admin capability. Membership is
// checked by handlers before any lifecycle or scoring operation.
type AdminUser struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:64;uniqueIndex;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      string    `gorm:"size:20;not null" json:"role"` // SUPER_ADMIN, MODERATOR
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}

// AdminLog records admin actions for audit trail
type AdminLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AdminID      string    `gorm:"size:64;not null;index" json:"admin_id"`
	Action       string    `gorm:"size:50;not null" json:"action"`
	ResourceType string    `gorm:"size:50" json:"resource_type"`
	ResourceID   *string   `gorm:"size:64" json:"resource_id"`
	Details      JSONB     `gorm:"type:jsonb" json:"details"`
	CreatedAt    time.Time `json:"created_at"`
}

func (AdminLog) TableName() string {
	return "admin_logs"
}

// PlatformStats stores daily platform statistics
type PlatformStats struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Date             time.Time `gorm:"uniqueIndex;not null" json:"date"`
	TotalUsers       int       `gorm:"default:0" json:"total_users"`
	OpenMatches      int       `gorm:"default:0" json:"open_matches"`
	FinishedMatches  int       `gorm:"default:0" json:"finished_matches"`
	TotalPredictions int       `gorm:"default:0" json:"total_predictions"`
	PointsAwarded    int       `gorm:"default:0" json:"points_awarded"`
	CreatedAt        time.Time `json:"created_at"`
}

func (PlatformStats) TableName() string {
	return "platform_stats"
}

// PromoteAdminRequest represents a request to grant admin capability.
type PromoteAdminRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role"`
}
