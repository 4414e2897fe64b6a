package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dice-nft-backend/internal/services"
)

type StatsHandler struct {
	games       *services.GameService
	serviceName string
}

func NewStatsHandler(games *services.GameService, serviceName string) *StatsHandler {
	return &StatsHandler{games: games, serviceName: serviceName}
}

func (h *StatsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.serviceName,
	})
}

func (h *StatsHandler) Leaderboard(c *gin.Context) {
	entries, err := h.games.Leaderboard(c.Request.Context(), parseLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

func (h *StatsHandler) Stats(c *gin.Context) {
	stats, err := h.games.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
