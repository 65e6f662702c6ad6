package ratelimit

import (
	"sync"
	"time"

	"github.com/orgball2608/reels-client/pkg/config"
	"golang.org/x/time/rate"
)

// Limiter throttles repeated actions on the same key, e.g. like taps on one video.
type Limiter interface {
	Allow(key string) bool
}

// InMemoryLimiter keeps one token bucket per key.
type InMemoryLimiter struct {
	keys map[string]*rate.Limiter
	mu   sync.Mutex
	r    rate.Limit
	b    int
}

// NewInMemoryLimiter allows requests actions every per, with bursts of up to burst.
// Example: NewInMemoryLimiter(1, time.Second, 2) lets two quick taps through,
// then one per second.
func NewInMemoryLimiter(requests int, per time.Duration, burst int) *InMemoryLimiter {
	if requests <= 0 {
		requests = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &InMemoryLimiter{
		keys: make(map[string]*rate.Limiter),
		r:    rate.Every(per / time.Duration(requests)),
		b:    burst,
	}
}

// NewFromConfig builds the like-tap limiter from the FEED_LIKE_* settings.
func NewFromConfig(cfg *config.Config) Limiter {
	return NewInMemoryLimiter(cfg.Feed.LikeTaps, cfg.Feed.LikeInterval, cfg.Feed.LikeBurst)
}

func (l *InMemoryLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.keys[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.keys[key] = limiter
	}

	return limiter.Allow()
}
