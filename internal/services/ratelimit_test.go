package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"dice-nft-backend/internal/services"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func exerciseLimiter(t *testing.T, limiter services.RateLimiter, clock *fakeClock) {
	t.Helper()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		clock.Advance(time.Second)
		allowed, err := limiter.Allow(ctx, "10.0.0.1")
		if err != nil {
			t.Fatalf("Allow failed: %v", err)
		}
		if !allowed {
			t.Fatalf("Request %d should be allowed", i+1)
		}
	}

	allowed, err := limiter.Allow(ctx, "10.0.0.1")
	if err != nil {
		t.Fatalf("Allow failed: %v", err)
	}
	if allowed {
		t.Fatal("4th request inside the window should be rejected")
	}

	allowed, _ = limiter.Allow(ctx, "10.0.0.2")
	if !allowed {
		t.Error("Other clients must not share the budget")
	}

	clock.Advance(61 * time.Second)
	allowed, err = limiter.Allow(ctx, "10.0.0.1")
	if err != nil {
		t.Fatalf("Allow failed: %v", err)
	}
	if !allowed {
		t.Error("Request after the window elapsed should be allowed")
	}
}

func TestSlidingWindowLimiter(t *testing.T) {
	clock := newFakeClock()
	limiter := services.NewSlidingWindowLimiter(3, time.Minute).WithClock(clock.Now)

	exerciseLimiter(t, limiter, clock)
}

func TestSlidingWindowLimiterRejectedCallsAreNotRecorded(t *testing.T) {
	clock := newFakeClock()
	limiter := services.NewSlidingWindowLimiter(2, time.Minute).WithClock(clock.Now)
	ctx := context.Background()

	limiter.Allow(ctx, "c")
	clock.Advance(30 * time.Second)
	limiter.Allow(ctx, "c")

	for i := 0; i < 5; i++ {
		if ok, _ := limiter.Allow(ctx, "c"); ok {
			t.Fatal("Limit reached, request should be rejected")
		}
	}

	// first hit expires, rejected attempts must not have taken its place
	clock.Advance(31 * time.Second)
	if ok, _ := limiter.Allow(ctx, "c"); !ok {
		t.Error("A slot should have opened when the first hit left the window")
	}
}

func TestSlidingWindowLimiterConcurrent(t *testing.T) {
	limiter := services.NewSlidingWindowLimiter(50, time.Minute)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow(ctx, "shared"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 50 {
		t.Errorf("Expected exactly 50 admitted requests, got %d", allowed)
	}
}

func TestRedisRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	clock := newFakeClock()
	limiter := services.NewRedisRateLimiter(client, "play", 3, time.Minute).WithClock(clock.Now)

	exerciseLimiter(t, limiter, clock)

	if limiter.Window() != time.Minute {
		t.Errorf("Unexpected window %s", limiter.Window())
	}
}
