package handlers

import (
	"crypto/subtle"
	"net/http"

	"match-typer/internal/auth"
	"match-typer/internal/models"
	"match-typer/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService   *services.AuthService
	gatewaySecret string
}

func NewAuthHandler(authService *services.AuthService, gatewaySecret string) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		gatewaySecret: gatewaySecret,
	}
}

// EstablishSession exchanges a verified identity for a session token.
// POST /auth/session
//
// Only the login gateway may call this; it proves itself with the shared
// gateway secret after finishing the provider handshake.
func (h *AuthHandler) EstablishSession(c *gin.Context) {
	secret := c.GetHeader("X-Gateway-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.gatewaySecret)) != 1 {
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid gateway secret"})
		return
	}

	var identity models.Identity
	if err := c.ShouldBindJSON(&identity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.EstablishSession(c.Request.Context(), &identity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to establish session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// GetMe returns the current user's profile
// GET /auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Logout acknowledges a logout. Tokens are stateless; the client drops it.
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
