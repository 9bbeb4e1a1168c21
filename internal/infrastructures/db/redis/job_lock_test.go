package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	derr "github.com/michaelvbend/ajax-scraper/internal/domain/errors"
	"github.com/redis/go-redis/v9"
)

// Needs a live server: REDIS_TEST_ADDR=localhost:6379 go test ./...
func newTestClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	c := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = c.Close() })
	if err := c.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not reachable at %s: %v", addr, err)
	}
	return c
}

func TestJobLock_ExclusiveUntilReleased(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	key := "ajax-scraper:test:" + uuid.NewString()
	t.Cleanup(func() { c.Del(ctx, key) })

	first := NewJobLock(c, key)
	second := NewJobLock(c, key)

	release, err := first.Acquire(ctx, time.Minute)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := second.Acquire(ctx, time.Minute); !errors.Is(err, derr.ErrJobLocked) {
		t.Fatalf("expected ErrJobLocked, got %v", err)
	}

	if err := release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}

	releaseSecond, err := second.Acquire(ctx, time.Minute)
	if err != nil {
		t.Fatalf("expected lease after release, got %v", err)
	}
	_ = releaseSecond(ctx)
}

func TestJobLock_StaleReleaseKeepsNewHolder(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	key := "ajax-scraper:test:" + uuid.NewString()
	t.Cleanup(func() { c.Del(ctx, key) })

	lock := NewJobLock(c, key)
	staleRelease, err := lock.Acquire(ctx, time.Minute)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// simulate expiry and a new holder
	c.Del(ctx, key)
	if _, err := lock.Acquire(ctx, time.Minute); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := staleRelease(ctx); err != nil {
		t.Fatalf("stale release: %v", err)
	}
	if n, _ := c.Exists(ctx, key).Result(); n != 1 {
		t.Fatal("stale release removed the new holder's lease")
	}
}
