package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"match-typer/internal/models"

	"gorm.io/gorm"
)

// ScoringService converts declared outcomes into point awards and reverses
// them on undo. Every operation runs as a single database transaction: a
// failure partway leaves the match and all point totals untouched.
type ScoringService struct {
	db *gorm.DB
}

func NewScoringService(db *gorm.DB) *ScoringService {
	return &ScoringService{db: db}
}

// DeclareResult finishes a match with the given outcome and awards one point
// to every user whose stored bet equals it verbatim.
//
// A second declare without an intervening undo is rejected; the status flip
// is a guarded update, so of two concurrent declares exactly one wins and
// points are awarded once.
func (s *ScoringService) DeclareResult(ctx context.Context, matchID uint, outcome string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var match models.Match
		if err := tx.First(&match, matchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMatchNotFound
			}
			return fmt.Errorf("failed to load match: %w", err)
		}

		if match.Status == models.MatchStatusFinished {
			return ErrAlreadyDeclared
		}

		res := tx.Model(&models.Match{}).
			Where("id = ? AND status = ?", matchID, models.MatchStatusUpcoming).
			Updates(map[string]interface{}{
				"status": models.MatchStatusFinished,
				"result": outcome,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to finish match: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Lost the race against a concurrent declare.
			return ErrAlreadyDeclared
		}

		winners := tx.Model(&models.Prediction{}).
			Select("user_id").
			Where("match_id = ? AND bet_value = ?", matchID, outcome)

		if err := tx.Model(&models.User{}).
			Where("id IN (?)", winners).
			Update("points", gorm.Expr("points + ?", 1)).Error; err != nil {
			return fmt.Errorf("failed to award points: %w", err)
		}

		return nil
	})

	if err != nil {
		return translateStoreError(err)
	}

	log.Printf("[ScoringService] Match %d finished with result %q", matchID, outcome)
	return nil
}

// UndoResult reverts a declared result: every point awarded for the current
// outcome is taken back and the match returns to upcoming with its result
// cleared. Predictions are left untouched, so a later declare scores them
// again. The outcome is read before it is cleared; the reverted selection is
// exactly the one that was scored.
func (s *ScoringService) UndoResult(ctx context.Context, matchID uint) error {
	var undone string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var match models.Match
		if err := tx.First(&match, matchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMatchNotFound
			}
			return fmt.Errorf("failed to load match: %w", err)
		}

		if match.Result == nil || match.Status != models.MatchStatusFinished {
			return ErrNothingToUndo
		}
		undone = *match.Result

		losers := tx.Model(&models.Prediction{}).
			Select("user_id").
			Where("match_id = ? AND bet_value = ?", matchID, undone)

		if err := tx.Model(&models.User{}).
			Where("id IN (?)", losers).
			Update("points", gorm.Expr("points - ?", 1)).Error; err != nil {
			return fmt.Errorf("failed to revert points: %w", err)
		}

		res := tx.Model(&models.Match{}).
			Where("id = ? AND status = ? AND result = ?", matchID, models.MatchStatusFinished, undone).
			Updates(map[string]interface{}{
				"status": models.MatchStatusUpcoming,
				"result": nil,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to reopen match: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// A concurrent undo got there first; the rollback restores
			// the point decrements made above.
			return ErrConflict
		}

		return nil
	})

	if err != nil {
		return translateStoreError(err)
	}

	log.Printf("[ScoringService] Match %d result %q undone", matchID, undone)
	return nil
}
