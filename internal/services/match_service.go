package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"match-typer/internal/models"
	"match-typer/internal/repository"

	"github.com/itbasis/go-clock"
	"gorm.io/gorm"
)

// MatchService owns the match lifecycle: scheduling, editing while upcoming,
// and the open-match listing with the derived lock flag.
type MatchService struct {
	repo  *repository.Repository
	clock clock.Clock
}

func NewMatchService(repo *repository.Repository, clock clock.Clock) *MatchService {
	return &MatchService{
		repo:  repo,
		clock: clock,
	}
}

// CreateMatch schedules a new match. The caller's admin capability is
// checked by the request layer before this is reached.
func (s *MatchService) CreateMatch(ctx context.Context, req *models.CreateMatchRequest) (*models.Match, error) {
	match := &models.Match{
		Player1:   req.Player1,
		Player2:   req.Player2,
		Format:    models.MatchFormat(req.Format),
		StartTime: req.StartTime,
		Status:    models.MatchStatusUpcoming,
	}

	if err := s.repo.CreateMatch(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	log.Printf("[MatchService] Match %d created: %s vs %s (%s)", match.ID, match.Player1, match.Player2, match.Format)
	return match, nil
}

// EditMatch overwrites the supplied fields of an upcoming match. Finished
// matches are immutable until their result is undone.
func (s *MatchService) EditMatch(ctx context.Context, matchID uint, req *models.EditMatchRequest) (*models.Match, error) {
	match, err := s.repo.GetMatchByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match: %w", err)
	}

	if match.Status != models.MatchStatusUpcoming {
		return nil, ErrMatchFinished
	}

	fields := map[string]interface{}{}
	if req.Player1 != nil {
		fields["player1"] = *req.Player1
	}
	if req.Player2 != nil {
		fields["player2"] = *req.Player2
	}
	if req.Format != nil {
		fields["format"] = *req.Format
	}
	if req.StartTime != nil {
		fields["start_time"] = *req.StartTime
	}

	if len(fields) == 0 {
		return match, nil
	}

	if err := s.repo.UpdateMatchFields(ctx, matchID, fields); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	return s.repo.GetMatchByID(ctx, matchID)
}

// GetMatch retrieves a match by ID.
func (s *MatchService) GetMatch(ctx context.Context, matchID uint) (*models.Match, error) {
	match, err := s.repo.GetMatchByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

// ListOpenMatches returns all upcoming matches annotated with the lock flag.
// The flag is computed against the clock on every call; it is never cached
// because it flips purely with wall-clock time.
func (s *MatchService) ListOpenMatches(ctx context.Context) ([]models.MatchView, error) {
	matches, err := s.repo.ListMatchesByStatus(ctx, models.MatchStatusUpcoming)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	now := s.clock.Now()
	views := make([]models.MatchView, 0, len(matches))
	for _, m := range matches {
		views = append(views, models.MatchView{
			Match:  *m,
			Locked: m.Locked(now),
		})
	}

	return views, nil
}
