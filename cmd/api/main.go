package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"dice-nft-backend/internal/config"
	"dice-nft-backend/internal/handlers"
	"dice-nft-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var redisClient *redis.Client
	if cfg.StoreBackend == config.StoreRedis || cfg.RateLimitBackend == config.StoreRedis {
		redisClient, err = services.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		if cfg.StoreBackend != config.StoreRedis {
			defer redisClient.Close()
		}
	}

	store, err := newStore(cfg, redisClient)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreBackend, err)
	}
	defer store.Close()

	playLimiter, userLimiter := newLimiters(cfg, redisClient)

	wsHandler := handlers.NewWebSocketHandler()
	defer wsHandler.Close()

	rewards := services.NewRewardGenerator(services.RewardConfig{
		ImageBaseURL: cfg.NFTImageBaseURL,
		Creator:      cfg.NFTCreator,
		Twitter:      cfg.NFTTwitter,
		Network:      cfg.Network,
	})

	gameService := services.NewGameService(store, rewards, cfg.Network,
		services.WithBroadcaster(wsHandler))
	userService := services.NewUserService(store)

	router := handlers.NewRouter(handlers.RouterConfig{
		ServiceName:    cfg.ServiceName,
		AllowedOrigins: cfg.AllowedOrigins,
		TrustedProxies: cfg.TrustedProxies,
		Release:        cfg.IsProduction(),
	}, handlers.Dependencies{
		Games:       gameService,
		Users:       userService,
		WebSocket:   wsHandler,
		PlayLimiter: playLimiter,
		UserLimiter: userLimiter,
	})

	log.Printf("Server starting on port %s (store=%s, rate limit=%s)",
		cfg.Port, cfg.StoreBackend, cfg.RateLimitBackend)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newStore(cfg *config.Config, redisClient *redis.Client) (services.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreMongo:
		return services.NewMongoStore(context.Background(), cfg)
	case config.StoreMemory:
		log.Println("Using in-memory store, data will not survive a restart")
		return services.NewMemoryStore(), nil
	default:
		return services.NewRedisStore(redisClient), nil
	}
}

func newLimiters(cfg *config.Config, redisClient *redis.Client) (play, user services.RateLimiter) {
	if cfg.RateLimitBackend == config.StoreRedis {
		return services.NewRedisRateLimiter(redisClient, "play", cfg.PlayRateLimit, cfg.RateLimitWindow),
			services.NewRedisRateLimiter(redisClient, "user", cfg.UserRateLimit, cfg.RateLimitWindow)
	}
	return services.NewSlidingWindowLimiter(cfg.PlayRateLimit, cfg.RateLimitWindow),
		services.NewSlidingWindowLimiter(cfg.UserRateLimit, cfg.RateLimitWindow)
}
