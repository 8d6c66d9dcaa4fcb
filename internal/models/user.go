package models

import (
	"time"
)

// User represents a community member. The ID is issued by the external
// identity provider and stays stable across logins.
type User struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Username  string    `gorm:"size:255;not null" json:"username"`
	Avatar    string    `gorm:"size:500" json:"avatar"`
	Points    int       `gorm:"not null;default:0" json:"points"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// Identity is the authenticated identity handed over by the login gateway.
type Identity struct {
	ID       string `json:"id" binding:"required"`
	Username string `json:"username" binding:"required"`
	Avatar   string `json:"avatar"`
}

// RankingEntry is a single row of the points ranking.
type RankingEntry struct {
	Username string `json:"username"`
	Points   int    `json:"points"`
}
