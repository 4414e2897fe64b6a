package handlers

import (
	"log"

	"github.com/gin-gonic/gin"

	"dice-nft-backend/internal/middleware"
	"dice-nft-backend/internal/services"
)

type RouterConfig struct {
	ServiceName    string
	AllowedOrigins []string
	// TrustedProxies lists the proxies whose forwarding headers are honoured
	// when resolving the client IP. Empty means the direct peer is used.
	TrustedProxies []string
	Release        bool
}

type Dependencies struct {
	Games       *services.GameService
	Users       *services.UserService
	WebSocket   *WebSocketHandler
	PlayLimiter services.RateLimiter
	UserLimiter services.RateLimiter
}

func NewRouter(cfg RouterConfig, deps Dependencies) *gin.Engine {
	if cfg.Release {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Printf("Invalid trusted proxies %v, ignoring forwarding headers: %v", cfg.TrustedProxies, err)
		router.SetTrustedProxies(nil)
	}
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	gameHandler := NewGameHandler(deps.Games)
	userHandler := NewUserHandler(deps.Users)
	statsHandler := NewStatsHandler(deps.Games, cfg.ServiceName)

	api := router.Group("/api")
	{
		api.GET("/health", statsHandler.Health)

		api.POST("/play", middleware.RateLimit(deps.PlayLimiter), gameHandler.Play)
		api.GET("/games", gameHandler.ListGames)
		api.GET("/game/:id", gameHandler.GetGame)

		api.POST("/user", middleware.RateLimit(deps.UserLimiter), userHandler.Register)
		api.GET("/user/:wallet_address", userHandler.GetUser)
		api.GET("/user/:wallet_address/nfts", gameHandler.ListNFTs)

		api.GET("/leaderboard", statsHandler.Leaderboard)
		api.GET("/stats", statsHandler.Stats)

		if deps.WebSocket != nil {
			api.GET("/ws", deps.WebSocket.HandleWebSocket)
		}
	}

	return router
}
