package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8001"`
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"zama-dice-game"`
	Network     string `env:"NETWORK" envDefault:"sepolia"`

	StoreBackend string `env:"STORE_BACKEND" envDefault:"redis"`

	RedisURL  string `env:"REDIS_URL" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	MongoURL      string `env:"MONGO_URL" envDefault:"mongodb://localhost:27017/"`
	MongoDatabase string `env:"MONGO_DB" envDefault:"zama_dice_game"`

	RateLimitBackend string        `env:"RATE_LIMIT_BACKEND" envDefault:"memory"`
	RateLimitWindow  time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"60s"`
	PlayRateLimit    int           `env:"PLAY_RATE_LIMIT" envDefault:"20"`
	UserRateLimit    int           `env:"USER_RATE_LIMIT" envDefault:"30"`

	NFTImageBaseURL string `env:"NFT_IMAGE_BASE_URL" envDefault:"https://api.dicenft.game/images"`
	NFTCreator      string `env:"NFT_CREATOR" envDefault:"dropxtor"`
	NFTTwitter      string `env:"NFT_TWITTER" envDefault:"@0xDropxtor"`

	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// Load reads the configuration from the environment. Callers are expected to
// have loaded any .env file beforehand.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreRedis, StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("invalid STORE_BACKEND: %q", c.StoreBackend)
	}

	switch c.RateLimitBackend {
	case StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("invalid RATE_LIMIT_BACKEND: %q", c.RateLimitBackend)
	}

	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	if c.PlayRateLimit < 1 || c.UserRateLimit < 1 {
		return fmt.Errorf("rate limits must be at least 1")
	}

	c.NFTImageBaseURL = strings.TrimRight(c.NFTImageBaseURL, "/")
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
