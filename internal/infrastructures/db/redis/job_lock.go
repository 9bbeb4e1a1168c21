package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	derr "github.com/michaelvbend/ajax-scraper/internal/domain/errors"
	"github.com/redis/go-redis/v9"
)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// JobLock is a single-key lease. Only the holder's token can release it.
type JobLock struct {
	redis *redis.Client
	key   string
}

func NewJobLock(redisClient *redis.Client, key string) *JobLock {
	return &JobLock{redis: redisClient, key: key}
}

func (l *JobLock) Acquire(ctx context.Context, ttl time.Duration) (func(context.Context) error, error) {
	token := uuid.NewString()

	ok, err := l.redis.SetNX(ctx, l.key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis acquire job lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", derr.ErrJobLocked, l.key)
	}

	release := func(ctx context.Context) error {
		err := releaseScript.Run(ctx, l.redis, []string{l.key}, token).Err()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("redis release job lock: %w", err)
		}
		return nil
	}
	return release, nil
}
