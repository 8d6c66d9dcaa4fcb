package models

import (
	"time"
)

type MatchStatus string

const (
	MatchStatusUpcoming MatchStatus = "UPCOMING"
	MatchStatusFinished MatchStatus = "FINISHED"
)

type MatchFormat string

const (
	MatchFormatBO3 MatchFormat = "BO3"
	MatchFormatBO5 MatchFormat = "BO5"
)

// Outcomes returns the outcome space implied by the format. The TAK/NIE
// tokens are accepted for every format. An empty slice means the format is
// not recognized and any token is accepted.
func (f MatchFormat) Outcomes() []string {
	switch f {
	case MatchFormatBO3:
		return []string{"2-0", "2-1", "1-2", "0-2", "TAK", "NIE"}
	case MatchFormatBO5:
		return []string{"3-0", "3-1", "3-2", "2-3", "1-3", "0-3", "TAK", "NIE"}
	}
	return nil
}

// ValidOutcome reports whether value lies in the format's outcome space.
func (f MatchFormat) ValidOutcome(value string) bool {
	outcomes := f.Outcomes()
	if len(outcomes) == 0 {
		return true
	}
	for _, o := range outcomes {
		if o == value {
			return true
		}
	}
	return false
}

// Match represents a scheduled match between two players.
type Match struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Player1   string      `gorm:"size:255;not null" json:"player_1"`
	Player2   string      `gorm:"size:255;not null" json:"player_2"`
	Format    MatchFormat `gorm:"size:20;not null" json:"format"`
	StartTime *time.Time  `json:"start_time"`
	Status    MatchStatus `gorm:"size:20;not null;default:UPCOMING;index" json:"status"`
	Result    *string     `gorm:"size:255" json:"result"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (Match) TableName() string {
	return "matches"
}

// Locked reports whether the match has stopped accepting predictions.
// The lock is derived from wall-clock time, never stored: an upcoming match
// locks the moment its scheduled start time passes.
func (m *Match) Locked(now time.Time) bool {
	return m.Status == MatchStatusUpcoming && m.StartTime != nil && !m.StartTime.After(now)
}

// MatchView is a match annotated with the derived lock flag for listings.
type MatchView struct {
	Match
	Locked bool `json:"locked"`
}

// CreateMatchRequest represents an admin request to schedule a match.
type CreateMatchRequest struct {
	Player1   string     `json:"player_1" binding:"required"`
	Player2   string     `json:"player_2" binding:"required"`
	Format    string     `json:"format" binding:"required"`
	StartTime *time.Time `json:"start_time"`
}

// EditMatchRequest carries the fields an admin may overwrite on an
// upcoming match. Nil fields are left untouched.
type EditMatchRequest struct {
	Player1   *string    `json:"player_1"`
	Player2   *string    `json:"player_2"`
	Format    *string    `json:"format"`
	StartTime *time.Time `json:"start_time"`
}

// DeclareResultRequest represents an admin request to declare an outcome.
type DeclareResultRequest struct {
	Outcome string `json:"outcome" binding:"required"`
}
