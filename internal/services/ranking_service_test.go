package services

import (
	"context"
	"testing"

	"match-typer/internal/models"
)

func TestRankingOrdersByPointsThenUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRankingService(db)

	createTestUser(t, db, "u1", "alice")
	createTestUser(t, db, "u2", "bob")
	createTestUser(t, db, "u3", "carol")
	createTestUser(t, db, "u4", "dave")

	db.Model(&models.User{}).Where("id = ?", "u2").Update("points", 5)
	db.Model(&models.User{}).Where("id = ?", "u3").Update("points", 5)
	db.Model(&models.User{}).Where("id = ?", "u4").Update("points", 2)

	entries, err := svc.Ranking(context.Background())
	if err != nil {
		t.Fatalf("ranking failed: %v", err)
	}

	want := []models.RankingEntry{
		{Username: "bob", Points: 5},
		{Username: "carol", Points: 5},
		{Username: "dave", Points: 2},
		{Username: "alice", Points: 0},
	}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, w := range want {
		if entries[i].Username != w.Username || entries[i].Points != w.Points {
			t.Errorf("entry %d = %s/%d, want %s/%d", i, entries[i].Username, entries[i].Points, w.Username, w.Points)
		}
	}
}

func TestRankingIsDeterministic(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRankingService(db)

	createTestUser(t, db, "u1", "alice")
	createTestUser(t, db, "u2", "bob")
	createTestUser(t, db, "u3", "carol")

	first, err := svc.Ranking(context.Background())
	if err != nil {
		t.Fatalf("ranking failed: %v", err)
	}
	second, err := svc.Ranking(context.Background())
	if err != nil {
		t.Fatalf("ranking failed: %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("entry %d differs between calls: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestRankingFollowsScoring(t *testing.T) {
	db := setupTestDB(t)
	ranking := NewRankingService(db)
	scoring := NewScoringService(db)
	ctx := context.Background()

	createTestUser(t, db, "u1", "alice")
	createTestUser(t, db, "u2", "bob")
	match := createTestMatch(t, db, models.MatchFormatBO3, nil)
	seedPrediction(t, db, match.ID, "u1", "2-0")
	seedPrediction(t, db, match.ID, "u2", "0-2")

	if err := scoring.DeclareResult(ctx, match.ID, "2-0"); err != nil {
		t.Fatalf("declare failed: %v", err)
	}

	entries, err := ranking.Ranking(ctx)
	if err != nil {
		t.Fatalf("ranking failed: %v", err)
	}
	if entries[0].Username != "alice" || entries[0].Points != 1 {
		t.Errorf("top entry = %s/%d, want alice/1", entries[0].Username, entries[0].Points)
	}

	if err := scoring.UndoResult(ctx, match.ID); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	entries, err = ranking.Ranking(ctx)
	if err != nil {
		t.Fatalf("ranking failed: %v", err)
	}
	for _, e := range entries {
		if e.Points != 0 {
			t.Errorf("%s has %d points after undo, want 0", e.Username, e.Points)
		}
	}
}
