package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type RateLimit struct {
	Window  time.Duration // e.g., 1 minute, 1 hour
	MaxHits int           // max hits per window
}

type Config struct {
	Name      string
	RateLimit RateLimit
}

// Limiter is a Redis sliding-window limiter keyed by an identifier such as
// a client IP.
type Limiter struct {
	redis  redis.UniversalClient
	config Config
	now    func() time.Time
}

func New(client redis.UniversalClient, config Config) *Limiter {
	return &Limiter{
		redis:  client,
		config: config,
		now:    time.Now,
	}
}

func (l *Limiter) key(identifier string) string {
	return fmt.Sprintf("rate_limit:%s:%s", l.config.Name, identifier)
}

// Allow records a hit for identifier and reports whether it is within the
// window's budget.
func (l *Limiter) Allow(ctx context.Context, identifier string) (bool, error) {
	key := l.key(identifier)

	pipe := l.redis.Pipeline()
	now := l.now()
	windowStart := now.Add(-l.config.RateLimit.Window).UnixNano()

	// Remove old entries
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))

	// Count current window
	count := pipe.ZCard(ctx, key)

	// Add new entry
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})

	// Set expiration
	pipe.Expire(ctx, key, l.config.RateLimit.Window*2)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis pipeline error: %w", err)
	}

	return count.Val() < int64(l.config.RateLimit.MaxHits), nil
}
