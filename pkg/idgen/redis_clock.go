package idgen

import (
	"context"
	"time"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/redis/go-redis/v9"
)

// Clock abstracts the time source for the ID generator.
type Clock interface {
	// Now returns the current timestamp in milliseconds.
	Now() int64
}

// SystemClock uses the local system time.
type SystemClock struct{}

func (s *SystemClock) Now() int64 {
	return time.Now().UnixMilli()
}

// timeSource is the part of the redis client the clock needs.
type timeSource interface {
	Time(ctx context.Context) *redis.TimeCmd
}

// RedisClock reads the shared Redis server time so that several API
// instances allocate ids from the same clock.
type RedisClock struct {
	client  timeSource
	timeout time.Duration
}

func NewRedisClock(client timeSource) *RedisClock {
	return &RedisClock{
		client:  client,
		timeout: 500 * time.Millisecond,
	}
}

func (r *RedisClock) Now() int64 {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	res, err := r.client.Time(ctx).Result()
	if err != nil {
		// Snowflake still rejects a clock that moves backwards, so the
		// local fallback cannot hand out duplicate ids.
		logger.Warnw("Redis TIME failed, falling back to system clock", "error", err.Error())
		return time.Now().UnixMilli()
	}

	return res.UnixMilli()
}
