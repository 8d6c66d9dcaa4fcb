package models

import (
	"time"

	"github.com/google/uuid"
)

// Prediction is a user's bet on a match outcome. At most one row exists per
// (match, user) pair; resubmissions overwrite the bet value in place.
type Prediction struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MatchID   uint      `gorm:"not null;uniqueIndex:idx_predictions_match_user" json:"match_id"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex:idx_predictions_match_user" json:"user_id"`
	BetValue  string    `gorm:"size:255;not null" json:"bet_value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Prediction) TableName() string {
	return "predictions"
}

// SubmitPredictionRequest represents a user's bet submission.
type SubmitPredictionRequest struct {
	MatchID  uint   `json:"match_id" binding:"required"`
	BetValue string `json:"bet_value" binding:"required"`
}

// HistoryEntry is one row of a user's prediction history: the match summary,
// the bet that was placed, and the declared result if any.
type HistoryEntry struct {
	MatchID   uint        `json:"match_id"`
	Player1   string      `json:"player_1"`
	Player2   string      `json:"player_2"`
	Format    MatchFormat `json:"format"`
	StartTime *time.Time  `json:"start_time"`
	Status    MatchStatus `json:"status"`
	BetValue  string      `json:"bet_value"`
	Result    *string     `json:"result"`
	Hit       *bool       `json:"hit"`
}
