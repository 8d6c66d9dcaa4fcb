package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"match-typer/internal/models"
	"match-typer/internal/repository"

	"github.com/itbasis/go-clock"
	"gorm.io/gorm"
)

var testStart = time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

func newPredictionService(t *testing.T) (*PredictionService, *gorm.DB, *clock.Mock) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	mock := clock.NewMock()
	mock.Set(testStart.Add(-1 * time.Hour))
	return NewPredictionService(repo, mock), db, mock
}

func TestSubmitUpsertsSinglePrediction(t *testing.T) {
	svc, db, _ := newPredictionService(t)
	ctx := context.Background()

	createTestUser(t, db, "u1", "alice")
	match := createTestMatch(t, db, models.MatchFormatBO3, timePtr(testStart))

	if _, err := svc.Submit(ctx, "u1", &models.SubmitPredictionRequest{MatchID: match.ID, BetValue: "2-0"}); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	// Resubmission replaces the bet in place
	if _, err := svc.Submit(ctx, "u1", &models.SubmitPredictionRequest{MatchID: match.ID, BetValue: "2-1"}); err != nil {
		t.Fatalf("second submit failed: %v", err)
	}

	var count int64
	db.Model(&models.Prediction{}).Where("match_id = ? AND user_id = ?", match.ID, "u1").Count(&count)
	if count != 1 {
		t.Errorf("expected exactly 1 prediction, got %d", count)
	}

	stored, err := repository.NewRepository(db).GetPrediction(ctx, match.ID, "u1")
	if err != nil {
		t.Fatalf("failed to load prediction: %v", err)
	}
	if stored.BetValue != "2-1" {
		t.Errorf("expected latest bet 2-1, got %s", stored.BetValue)
	}
}

func TestSubmitRejectsLockedMatch(t *testing.T) {
	svc, db, mock := newPredictionService(t)
	ctx := context.Background()

	createTestUser(t, db, "u3", "carol")
	match := createTestMatch(t, db, models.MatchFormatBO3, timePtr(testStart))

	// Scenario: submission after the start time has passed
	mock.Set(testStart.Add(1 * time.Minute))

	_, err := svc.Submit(ctx, "u3", &models.SubmitPredictionRequest{MatchID: match.ID, BetValue: "2-0"})
	if !errors.Is(err, ErrMatchLocked) {
		t.Fatalf("expected ErrMatchLocked, got %v", err)
	}

	var count int64
	db.Model(&models.Prediction{}).Where("match_id = ?", match.ID).Count(&count)
	if count != 0 {
		t.Errorf("locked submit must not create a row, found %d", count)
	}
}

func TestSubmitLockBoundaryIsInclusive(t *testing.T) {
	svc, db, mock := newPredictionService(t)
	ctx := context.Background()

	createTestUser(t, db, "u1", "alice")
	match := createTestMatch(t, db, models.MatchFormatBO3, timePtr(testStart))

	// Exactly at start time the match is already locked
	mock.Set(testStart)

	_, err := svc.Submit(ctx, "u1", &models.SubmitPredictionRequest{MatchID: match.ID, BetValue: "2-0"})
	if !errors.Is(err, ErrMatchLocked) {
		t.Fatalf("expected ErrMatchLocked at start instant, got %v", err)
	}
}

func TestSubmitWithoutStartTimeNeverLocks(t *testing.T) {
	svc, db, mock := newPredictionService(t)
	ctx := context.Background()

	createTestUser(t, db, "u1", "alice")
	match := createTestMatch(t, db, models.MatchFormatBO3, nil)

	mock.Set(testStart.Add(100 * 24 * time.Hour))

	if _, err := svc.Submit(ctx, "u1", &models.SubmitPredictionRequest{MatchID: match.ID, BetValue: "2-0"}); err != nil {
		t.Fatalf("submit on unscheduled match failed: %v", err)
	}
}

func TestSubmitRejectsFinishedMatch(t *testing.T) {
	svc, db, _ := newPredictionService(t)
	ctx := context.Background()

	createTestUser(t, db, "u1", "alice")
	match := createTestMatch(t, db, models.MatchFormatBO3, nil)

	db.Model(match).Updates(map[string]interface{}{
		"status": models.MatchStatusFinished,
		"result": "2-0",
	})

	_, err := svc.Submit(ctx, "u1", &models.SubmitPredictionRequest{MatchID: match.ID, BetValue: "2-0"})
	if !errors.Is(err, ErrMatchFinished) {
		t.Fatalf("expected ErrMatchFinished, got %v", err)
	}
}

func TestSubmitUnknownMatch(t *testing.T) {
	svc, db, _ := newPredictionService(t)
	ctx := context.Background()

	createTestUser(t, db, "u1", "alice")

	_, err := svc.Submit(ctx, "u1", &models.SubmitPredictionRequest{MatchID: 4242, BetValue: "2-0"})
	if !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestSubmitValidatesBetAgainstFormat(t *testing.T) {
	svc, db, _ := newPredictionService(t)
	ctx := context.Background()

	createTestUser(t, db, "u1", "alice")
	bo3 := createTestMatch(t, db, models.MatchFormatBO3, timePtr(testStart))

	_, err := svc.Submit(ctx, "u1", &models.SubmitPredictionRequest{MatchID: bo3.ID, BetValue: "3-2"})
	if !errors.Is(err, ErrInvalidBet) {
		t.Fatalf("expected ErrInvalidBet for 3-2 on BO3, got %v", err)
	}

	// TAK/NIE are accepted for every format
	if _, err := svc.Submit(ctx, "u1", &models.SubmitPredictionRequest{MatchID: bo3.ID, BetValue: "TAK"}); err != nil {
		t.Fatalf("TAK on BO3 should be accepted: %v", err)
	}

	// Unknown formats skip validation
	odd := createTestMatch(t, db, models.MatchFormat("SHOWMATCH"), timePtr(testStart))
	if _, err := svc.Submit(ctx, "u1", &models.SubmitPredictionRequest{MatchID: odd.ID, BetValue: "whatever"}); err != nil {
		t.Fatalf("unknown format should accept any token: %v", err)
	}
}

func TestHistoryOrderAndHitFlag(t *testing.T) {
	svc, db, mock := newPredictionService(t)
	ctx := context.Background()

	createTestUser(t, db, "u1", "alice")

	early := createTestMatch(t, db, models.MatchFormatBO3, timePtr(testStart))
	late := createTestMatch(t, db, models.MatchFormatBO5, timePtr(testStart.Add(24*time.Hour)))

	mock.Set(testStart.Add(-1 * time.Hour))
	if _, err := svc.Submit(ctx, "u1", &models.SubmitPredictionRequest{MatchID: early.ID, BetValue: "2-1"}); err != nil {
		t.Fatalf("submit early failed: %v", err)
	}
	if _, err := svc.Submit(ctx, "u1", &models.SubmitPredictionRequest{MatchID: late.ID, BetValue: "3-0"}); err != nil {
		t.Fatalf("submit late failed: %v", err)
	}

	db.Model(early).Updates(map[string]interface{}{
		"status": models.MatchStatusFinished,
		"result": "2-1",
	})

	entries, err := svc.History(ctx, "u1")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	// Most recent match first
	if entries[0].MatchID != late.ID {
		t.Errorf("expected match %d first, got %d", late.ID, entries[0].MatchID)
	}
	if entries[0].Hit != nil {
		t.Errorf("unfinished match must not carry a hit flag")
	}

	if entries[1].MatchID != early.ID {
		t.Errorf("expected match %d second, got %d", early.ID, entries[1].MatchID)
	}
	if entries[1].Hit == nil || !*entries[1].Hit {
		t.Errorf("expected hit flag true for matching bet")
	}
}
