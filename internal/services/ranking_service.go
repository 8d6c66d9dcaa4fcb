package services

import (
	"context"
	"fmt"

	"match-typer/internal/models"

	"gorm.io/gorm"
)

// RankingService is a read-only projection of users ordered by point total.
type RankingService struct {
	db *gorm.DB
}

func NewRankingService(db *gorm.DB) *RankingService {
	return &RankingService{db: db}
}

// Ranking returns all users ordered by points descending. Ties break on
// username ascending so repeated calls return identical output.
func (s *RankingService) Ranking(ctx context.Context) ([]models.RankingEntry, error) {
	var entries []models.RankingEntry

	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Select("username, points").
		Order("points DESC").
		Order("username ASC").
		Scan(&entries).Error

	if err != nil {
		return nil, fmt.Errorf("failed to load ranking: %w", err)
	}

	return entries, nil
}
