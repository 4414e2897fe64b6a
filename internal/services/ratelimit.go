package services

import (
	"context"
	"sync"
	"time"
)

// RateLimiter admits or rejects a request for a client key.
type RateLimiter interface {
	Allow(ctx context.Context, clientID string) (bool, error)
	Window() time.Duration
}

// SlidingWindowLimiter counts requests per client over a trailing window.
// Client entries are never pruned, so memory grows with the number of
// distinct clients seen since startup.
type SlidingWindowLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration
	now    func() time.Time
}

func NewSlidingWindowLimiter(max int, window time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
		now:    time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (l *SlidingWindowLimiter) WithClock(now func() time.Time) *SlidingWindowLimiter {
	l.now = now
	return l
}

func (l *SlidingWindowLimiter) Window() time.Duration {
	return l.window
}

// Allow drops timestamps that fell out of the window, then records the
// request only if the client is still under the limit.
func (l *SlidingWindowLimiter) Allow(ctx context.Context, clientID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := l.hits[clientID][:0]
	for _, t := range l.hits[clientID] {
		if now.Sub(t) < l.window {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.max {
		l.hits[clientID] = recent
		return false, nil
	}

	l.hits[clientID] = append(recent, now)
	return true, nil
}
