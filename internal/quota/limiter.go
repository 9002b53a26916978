package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect opens a Redis client and verifies it with a ping.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

// Limiter is a fixed-window counter shared by every replica using the same Redis.
type Limiter struct {
	rdb    redis.Cmdable
	prefix string
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewLimiter allows limit calls per window under the given key prefix.
func NewLimiter(rdb redis.Cmdable, prefix string, limit int, window time.Duration) *Limiter {
	return &Limiter{
		rdb:    rdb,
		prefix: prefix,
		limit:  int64(limit),
		window: window,
		now:    time.Now,
	}
}

func (l *Limiter) windowKey() string {
	slot := l.now().UnixNano() / int64(l.window)
	return fmt.Sprintf("%s:%d", l.prefix, slot)
}

// Allow records one call and reports whether it fits in the current window.
func (l *Limiter) Allow(ctx context.Context) (bool, error) {
	if l == nil || l.rdb == nil {
		return false, fmt.Errorf("Redis client not available")
	}
	key := l.windowKey()

	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= l.limit, nil
}

// Remaining reports how many calls are left in the current window.
func (l *Limiter) Remaining(ctx context.Context) (int64, error) {
	count, err := l.rdb.Get(ctx, l.windowKey()).Int64()
	if err == redis.Nil {
		return l.limit, nil
	} else if err != nil {
		return 0, err
	}
	if count >= l.limit {
		return 0, nil
	}
	return l.limit - count, nil
}
