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

// PredictionService accepts and stores user predictions, enforcing the
// match lock and the one-prediction-per-user invariant.
type PredictionService struct {
	repo  *repository.Repository
	clock clock.Clock
}

func NewPredictionService(repo *repository.Repository, clock clock.Clock) *PredictionService {
	return &PredictionService{
		repo:  repo,
		clock: clock,
	}
}

// Submit records the user's bet for a match, replacing any earlier bet for
// the same match. Rejected once the match is locked or finished.
//
// The upsert and a status re-check run inside one transaction: if a result
// is declared concurrently, the re-check sees the finished status and the
// write is rolled back instead of leaving a bet on a settled match.
func (s *PredictionService) Submit(ctx context.Context, userID string, req *models.SubmitPredictionRequest) (*models.Prediction, error) {
	var prediction *models.Prediction

	err := s.repo.Transaction(ctx, func(r *repository.Repository) error {
		match, err := r.GetMatchByID(ctx, req.MatchID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMatchNotFound
			}
			return fmt.Errorf("failed to load match: %w", err)
		}

		if match.Status != models.MatchStatusUpcoming {
			return ErrMatchFinished
		}

		if match.Locked(s.clock.Now()) {
			return ErrMatchLocked
		}

		if !match.Format.ValidOutcome(req.BetValue) {
			return ErrInvalidBet
		}

		prediction = &models.Prediction{
			MatchID:  req.MatchID,
			UserID:   userID,
			BetValue: req.BetValue,
		}

		if err := r.UpsertPrediction(ctx, prediction); err != nil {
			return fmt.Errorf("failed to save prediction: %w", err)
		}

		// A declare that committed between the first read and the upsert
		// flips the status; roll the bet back in that case.
		recheck, err := r.GetMatchByID(ctx, req.MatchID)
		if err != nil {
			return fmt.Errorf("failed to re-check match: %w", err)
		}
		if recheck.Status != models.MatchStatusUpcoming {
			return ErrMatchFinished
		}

		return nil
	})

	if err != nil {
		return nil, translateStoreError(err)
	}

	log.Printf("[PredictionService] User %s bet %q on match %d", userID, req.BetValue, req.MatchID)
	return prediction, nil
}

// History returns the user's predictions joined with their matches, newest
// match first. Finished entries carry a hit flag for display.
func (s *PredictionService) History(ctx context.Context, userID string) ([]models.HistoryEntry, error) {
	entries, err := s.repo.GetUserHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return entries, nil
}
