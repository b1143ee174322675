package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const viewCounterTTL = 90 * 24 * time.Hour

// ViewCounter keeps one page view counter per UTC day.
type ViewCounter struct {
	rdb redis.Cmdable
}

func NewViewCounter(rdb redis.Cmdable) *ViewCounter {
	return &ViewCounter{rdb: rdb}
}

func viewKey(day time.Time) string {
	return "views:" + day.UTC().Format("2006-01-02")
}

func (c *ViewCounter) Increment(ctx context.Context, at time.Time) (int64, error) {
	key := viewKey(at)
	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, viewCounterTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("increment %s: %w", key, err)
	}
	return incr.Val(), nil
}

func (c *ViewCounter) Count(ctx context.Context, day time.Time) (int64, error) {
	n, err := c.rdb.Get(ctx, viewKey(day)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", viewKey(day), err)
	}
	return n, nil
}
