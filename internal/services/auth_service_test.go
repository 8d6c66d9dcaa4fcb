package services

import (
	"context"
	"errors"
	"testing"

	"match-typer/internal/auth"
	"match-typer/internal/models"
	"match-typer/internal/repository"
)

func TestEstablishSessionCreatesAndRefreshesUser(t *testing.T) {
	auth.InitJWT("test-secret")
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewRepository(db))
	ctx := context.Background()

	user, token, err := svc.EstablishSession(ctx, &models.Identity{
		ID:       "u1",
		Username: "alice",
		Avatar:   "a.png",
	})
	if err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a session token")
	}
	if user.Points != 0 {
		t.Errorf("new user points = %d, want 0", user.Points)
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.UserID != "u1" || claims.Username != "alice" {
		t.Errorf("claims = %s/%s, want u1/alice", claims.UserID, claims.Username)
	}

	// A later login refreshes profile fields but never the point total
	db.Model(&models.User{}).Where("id = ?", "u1").Update("points", 7)

	user, _, err = svc.EstablishSession(ctx, &models.Identity{
		ID:       "u1",
		Username: "alice-renamed",
		Avatar:   "b.png",
	})
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	if user.Username != "alice-renamed" {
		t.Errorf("username = %s, want refreshed alice-renamed", user.Username)
	}
	if user.Points != 7 {
		t.Errorf("points = %d, want 7 preserved across login", user.Points)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("user count = %d, want 1", count)
	}
}

func TestGetUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewRepository(db))

	_, err := svc.GetUser(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
