package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/notifykit/pkg/redis"
)

func TestConnect_InvalidConnectionURL(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  "not-a-redis-url",
		RetryAttempts:  1,
		RetryInterval:  time.Millisecond,
		ConnectTimeout: time.Second,
	})
	assert.ErrorIs(t, err, redis.ErrFailedToParseConnString)
}

func TestConnect_UnreachableServer(t *testing.T) {
	t.Parallel()

	// Port 1 on localhost refuses immediately; the retry loop must give up
	// after the configured attempts instead of hanging.
	_, err := redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  "redis://localhost:1/0",
		RetryAttempts:  2,
		RetryInterval:  10 * time.Millisecond,
		ConnectTimeout: 2 * time.Second,
	})
	assert.ErrorIs(t, err, redis.ErrNotReady)
}

func TestConnect_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := redis.Connect(ctx, redis.Config{
		ConnectionURL:  "redis://localhost:1/0",
		RetryAttempts:  5,
		RetryInterval:  time.Second,
		ConnectTimeout: time.Minute,
	})
	assert.ErrorIs(t, err, redis.ErrNotReady)
}
