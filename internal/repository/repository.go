package repository

import (
	"context"

	"match-typer/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Transaction runs fn against a transaction-bound repository. Any error
// returned by fn rolls the whole transaction back.
func (r *Repository) Transaction(ctx context.Context, fn func(r *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// CreateMatch persists a new match
func (r *Repository) CreateMatch(ctx context.Context, match *models.Match) error {
	return r.db.WithContext(ctx).Create(match).Error
}

// GetMatchByID retrieves a match by ID
func (r *Repository) GetMatchByID(ctx context.Context, matchID uint) (*models.Match, error) {
	var match models.Match
	err := r.db.WithContext(ctx).Where("id = ?", matchID).First(&match).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// UpdateMatchFields overwrites the given match columns
func (r *Repository) UpdateMatchFields(ctx context.Context, matchID uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.Match{}).
		Where("id = ?", matchID).
		Updates(fields).Error
}

// ListMatchesByStatus retrieves matches in the given status, scheduled ones
// first (start time ascending), then unscheduled ones in creation order.
func (r *Repository) ListMatchesByStatus(ctx context.Context, status models.MatchStatus) ([]*models.Match, error) {
	var matches []*models.Match
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("start_time ASC NULLS LAST").
		Order("created_at ASC").
		Order("id ASC").
		Find(&matches).Error

	if err != nil {
		return nil, err
	}

	return matches, nil
}

// UpsertPrediction inserts the prediction or, when the (match, user) pair
// already has one, overwrites its bet value in place. The composite unique
// index carries the uniqueness invariant; there is no read-then-write race.
func (r *Repository) UpsertPrediction(ctx context.Context, prediction *models.Prediction) error {
	if prediction.ID == uuid.Nil {
		prediction.ID = uuid.New()
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "match_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"bet_value":  prediction.BetValue,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(prediction).Error
}

// GetPrediction retrieves the prediction for a (match, user) pair
func (r *Repository) GetPrediction(ctx context.Context, matchID uint, userID string) (*models.Prediction, error) {
	var prediction models.Prediction
	err := r.db.WithContext(ctx).
		Where("match_id = ? AND user_id = ?", matchID, userID).
		First(&prediction).Error
	if err != nil {
		return nil, err
	}
	return &prediction, nil
}

// GetUserHistory joins a user's predictions with their matches, most recent
// match first. Matches without a start time sort last, then by submission.
func (r *Repository) GetUserHistory(ctx context.Context, userID string) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	err := r.db.WithContext(ctx).
		Table("predictions").
		Select("matches.id AS match_id, matches.player1, matches.player2, matches.format, matches.start_time, matches.status, matches.result, predictions.bet_value").
		Joins("JOIN matches ON matches.id = predictions.match_id").
		Where("predictions.user_id = ?", userID).
		Order("matches.start_time DESC NULLS LAST").
		Order("predictions.created_at DESC").
		Scan(&entries).Error

	if err != nil {
		return nil, err
	}

	for i := range entries {
		if entries[i].Status == models.MatchStatusFinished && entries[i].Result != nil {
			hit := entries[i].BetValue == *entries[i].Result
			entries[i].Hit = &hit
		}
	}

	return entries, nil
}

// GetUserByID retrieves a user by ID
func (r *Repository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertUser creates the user on first login or refreshes the display name
// and avatar on later ones. Points are never written here; only the scoring
// engine mutates them.
func (r *Repository) UpsertUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "avatar", "updated_at"}),
	}).Create(user).Error
}
