package handlers

import (
	"net/http"

	"match-typer/internal/auth"
	"match-typer/internal/models"
	"match-typer/internal/services"

	"github.com/gin-gonic/gin"
)

type PredictionHandler struct {
	predictionService *services.PredictionService
}

func NewPredictionHandler(predictionService *services.PredictionService) *PredictionHandler {
	return &PredictionHandler{
		predictionService: predictionService,
	}
}

// SubmitPrediction records or replaces the user's bet on a match
// POST /api/predictions
func (h *PredictionHandler) SubmitPrediction(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.SubmitPredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prediction, err := h.predictionService.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		respondMatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, prediction)
}

// GetMyPredictions returns the caller's prediction history. Anonymous
// callers get an empty list rather than an error.
// GET /api/predictions/mine
func (h *PredictionHandler) GetMyPredictions(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusOK, gin.H{"predictions": []models.HistoryEntry{}})
		return
	}

	entries, err := h.predictionService.History(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"predictions": entries})
}
