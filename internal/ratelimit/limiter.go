// Package ratelimit implements a fixed-window request limiter on Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "job-assistant:ratelimit"

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAfter time.Duration
}

// Limiter allows at most limit calls per client in each window. Windows are
// aligned to multiples of the window length.
type Limiter struct {
	rdb    redis.Cmdable
	limit  int
	window time.Duration
	now    func() time.Time
}

func New(rdb redis.Cmdable, limit int, window time.Duration) *Limiter {
	return &Limiter{rdb: rdb, limit: limit, window: window, now: time.Now}
}

func (l *Limiter) key(client string, slot int64) string {
	return fmt.Sprintf("%s:%s:%d", keyPrefix, client, slot)
}

// Allow counts one call for client. On a Redis error the decision allows
// the call and the error is returned so the caller can log it.
func (l *Limiter) Allow(ctx context.Context, client string) (Decision, error) {
	now := l.now()
	slot := now.UnixNano() / int64(l.window)
	reset := time.Duration(int64(l.window) - now.UnixNano()%int64(l.window))
	key := l.key(client, slot)

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{Allowed: true, Limit: l.limit, Remaining: l.limit, ResetAfter: reset}, fmt.Errorf("rate limit counter: %w", err)
	}

	count := int(incr.Val())
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:    count <= l.limit,
		Limit:      l.limit,
		Remaining:  remaining,
		ResetAfter: reset,
	}, nil
}
