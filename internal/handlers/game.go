package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dice-nft-backend/internal/models"
	"dice-nft-backend/internal/services"
)

type GameHandler struct {
	games *services.GameService
}

func NewGameHandler(games *services.GameService) *GameHandler {
	return &GameHandler{games: games}
}

func (h *GameHandler) Play(c *gin.Context) {
	var req models.PlayRequest
	if err := bindQueryAndBody(c, &req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.games.Play(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *GameHandler) ListGames(c *gin.Context) {
	games, err := h.games.ListGames(c.Request.Context(), parseLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"games": games})
}

func (h *GameHandler) GetGame(c *gin.Context) {
	game, err := h.games.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, game)
}

func (h *GameHandler) ListNFTs(c *gin.Context) {
	nfts, err := h.games.ListNFTs(c.Request.Context(), c.Param("wallet_address"), parseLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"nfts": nfts})
}
