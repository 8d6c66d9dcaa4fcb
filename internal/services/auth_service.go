package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"match-typer/internal/auth"
	"match-typer/internal/models"
	"match-typer/internal/repository"

	"gorm.io/gorm"
)

// AuthService turns an externally verified identity into a local user and a
// session token. The identity-provider handshake happens upstream; this
// service only consumes its result.
type AuthService struct {
	repo *repository.Repository
}

// NewAuthService creates a new AuthService
func NewAuthService(repo *repository.Repository) *AuthService {
	return &AuthService{repo: repo}
}

// EstablishSession creates the user on first login, refreshes the display
// name and avatar on later ones, and issues a session token. The user's
// points are never touched here.
func (s *AuthService) EstablishSession(ctx context.Context, identity *models.Identity) (*models.User, string, error) {
	user := &models.User{
		ID:       identity.ID,
		Username: identity.Username,
		Avatar:   identity.Avatar,
	}

	if err := s.repo.UpsertUser(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to upsert user: %w", err)
	}

	// Re-read so the response carries the stored point total.
	stored, err := s.repo.GetUserByID(ctx, identity.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}

	token, err := auth.GenerateToken(stored.ID, stored.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	log.Printf("[AuthService] Session established for user %s (%s)", stored.ID, stored.Username)
	return stored, token, nil
}

// GetUser retrieves a user profile by ID.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
