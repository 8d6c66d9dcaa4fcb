package handlers

import (
	"net/http"

	"match-typer/internal/services"

	"github.com/gin-gonic/gin"
)

type RankingHandler struct {
	rankingService *services.RankingService
}

func NewRankingHandler(rankingService *services.RankingService) *RankingHandler {
	return &RankingHandler{
		rankingService: rankingService,
	}
}

// GetRanking returns users ordered by point total
// GET /api/ranking
func (h *RankingHandler) GetRanking(c *gin.Context) {
	entries, err := h.rankingService.Ranking(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load ranking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ranking": entries})
}
