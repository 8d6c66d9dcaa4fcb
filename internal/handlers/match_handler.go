package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"match-typer/internal/auth"
	"match-typer/internal/models"
	"match-typer/internal/services"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchService   *services.MatchService
	scoringService *services.ScoringService
	adminService   *services.AdminService
}

func NewMatchHandler(matchService *services.MatchService, scoringService *services.ScoringService, adminService *services.AdminService) *MatchHandler {
	return &MatchHandler{
		matchService:   matchService,
		scoringService: scoringService,
		adminService:   adminService,
	}
}

// GetMatches lists all open matches with the derived locked flag
// GET /api/matches
func (h *MatchHandler) GetMatches(c *gin.Context) {
	matches, err := h.matchService.ListOpenMatches(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list matches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": matches,
		"total":   len(matches),
	})
}

// CreateMatch schedules a new match
// POST /api/admin/matches
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req models.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.matchService.CreateMatch(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create match"})
		return
	}

	h.logAdminAction(c, "CREATE_MATCH", match.ID)
	c.JSON(http.StatusCreated, match)
}

// UpdateMatch edits an upcoming match
// PUT /api/admin/matches/:id
func (h *MatchHandler) UpdateMatch(c *gin.Context) {
	matchID, ok := parseMatchID(c)
	if !ok {
		return
	}

	var req models.EditMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.matchService.EditMatch(c.Request.Context(), matchID, &req)
	if err != nil {
		respondMatchError(c, err)
		return
	}

	h.logAdminAction(c, "EDIT_MATCH", matchID)
	c.JSON(http.StatusOK, match)
}

// DeclareResult declares a match outcome and awards points
// POST /api/admin/matches/:id/result
func (h *MatchHandler) DeclareResult(c *gin.Context) {
	matchID, ok := parseMatchID(c)
	if !ok {
		return
	}

	var req models.DeclareResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.scoringService.DeclareResult(c.Request.Context(), matchID, req.Outcome); err != nil {
		respondMatchError(c, err)
		return
	}

	h.logAdminAction(c, "DECLARE_RESULT", matchID)
	c.JSON(http.StatusOK, gin.H{"message": "result declared"})
}

// UndoResult reverts a declared outcome and the points it awarded
// DELETE /api/admin/matches/:id/result
func (h *MatchHandler) UndoResult(c *gin.Context) {
	matchID, ok := parseMatchID(c)
	if !ok {
		return
	}

	if err := h.scoringService.UndoResult(c.Request.Context(), matchID); err != nil {
		respondMatchError(c, err)
		return
	}

	h.logAdminAction(c, "UNDO_RESULT", matchID)
	c.JSON(http.StatusOK, gin.H{"message": "result undone"})
}

func (h *MatchHandler) logAdminAction(c *gin.Context, action string, matchID uint) {
	adminID, exists := auth.GetUserID(c)
	if !exists {
		return
	}
	resourceID := strconv.FormatUint(uint64(matchID), 10)
	h.adminService.LogAdminAction(adminID, action, "MATCH", &resourceID, nil)
}

func parseMatchID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid match id"})
		return 0, false
	}
	return uint(id), true
}

// respondMatchError maps service errors onto HTTP statuses without leaking
// storage detail.
func respondMatchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
	case errors.Is(err, services.ErrMatchLocked):
		c.JSON(http.StatusConflict, gin.H{"error": "match is locked"})
	case errors.Is(err, services.ErrMatchFinished):
		c.JSON(http.StatusConflict, gin.H{"error": "match already finished"})
	case errors.Is(err, services.ErrAlreadyDeclared):
		c.JSON(http.StatusBadRequest, gin.H{"error": "result already declared"})
	case errors.Is(err, services.ErrNothingToUndo):
		c.JSON(http.StatusBadRequest, gin.H{"error": "no result to undo"})
	case errors.Is(err, services.ErrInvalidBet):
		c.JSON(http.StatusBadRequest, gin.H{"error": "bet value not valid for match format"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "conflicting update, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
