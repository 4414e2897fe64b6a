package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"dice-nft-backend/internal/models"
)

// Timestamps are stored in milliseconds in a sorted set per client. The
// member carries a random suffix so two hits in the same millisecond both count.
var slidingWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local member = ARGV[4]

	redis.call("ZREMRANGEBYSCORE", key, "-inf", now - window)

	if redis.call("ZCARD", key) >= limit then
		return 0
	end

	redis.call("ZADD", key, now, member)
	redis.call("PEXPIRE", key, window)
	return 1
`)

// RedisRateLimiter is the shared-state variant of SlidingWindowLimiter for
// deployments running more than one instance.
type RedisRateLimiter struct {
	client *redis.Client
	scope  string
	max    int
	window time.Duration
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client, scope string, max int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		scope:  scope,
		max:    max,
		window: window,
		now:    time.Now,
	}
}

func (l *RedisRateLimiter) WithClock(now func() time.Time) *RedisRateLimiter {
	l.now = now
	return l
}

func (l *RedisRateLimiter) Window() time.Duration {
	return l.window
}

func (l *RedisRateLimiter) Allow(ctx context.Context, clientID string) (bool, error) {
	key := fmt.Sprintf(KeyRateLimit, l.scope, clientID)
	nowMS := l.now().UnixMilli()
	member := fmt.Sprintf("%d-%s", nowMS, models.GenerateID())

	allowed, err := slidingWindowScript.Run(ctx, l.client, []string{key},
		nowMS, l.window.Milliseconds(), l.max, member).Int()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}
	return allowed == 1, nil
}
