package ratelimiter_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/identity/pkg/ratelimiter"
)

func newRedisLimiter(t *testing.T, cfg ratelimiter.Config) (*ratelimiter.Bucket, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter, err := ratelimiter.NewBucket(ratelimiter.NewRedisStore(client), cfg)
	require.NoError(t, err)
	return limiter, mr
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()

	t.Run("allows up to capacity then denies", func(t *testing.T) {
		limiter, _ := newRedisLimiter(t, ratelimiter.Config{Capacity: 3, RefillRate: 3, RefillInterval: time.Minute})

		for i := 0; i < 3; i++ {
			result, err := limiter.Allow(ctx, "1.2.3.4")
			require.NoError(t, err)
			assert.True(t, result.Allowed(), "request %d should be allowed", i)
			assert.Equal(t, 2-i, result.Remaining)
		}

		result, err := limiter.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.False(t, result.Allowed())
		assert.Positive(t, result.RetryAfter())
	})

	t.Run("refills after the interval", func(t *testing.T) {
		limiter, mr := newRedisLimiter(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: 100 * time.Millisecond})

		result, err := limiter.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		require.True(t, result.Allowed())

		result, err = limiter.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		require.False(t, result.Allowed())

		// Miniredis does not advance wall time; the script uses the
		// caller-supplied timestamp so real sleep is enough.
		mr.FastForward(time.Second)
		time.Sleep(110 * time.Millisecond)

		result, err = limiter.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, result.Allowed())
	})

	t.Run("keys are independent", func(t *testing.T) {
		limiter, _ := newRedisLimiter(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})

		result, err := limiter.Allow(ctx, "1.1.1.1")
		require.NoError(t, err)
		require.True(t, result.Allowed())

		result, err = limiter.Allow(ctx, "2.2.2.2")
		require.NoError(t, err)
		assert.True(t, result.Allowed())
	})

	t.Run("reset restores capacity", func(t *testing.T) {
		limiter, _ := newRedisLimiter(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})

		result, err := limiter.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		require.True(t, result.Allowed())

		require.NoError(t, limiter.Reset(ctx, "1.2.3.4"))

		result, err = limiter.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, result.Allowed())
	})

	t.Run("store failure surfaces as store unavailable", func(t *testing.T) {
		limiter, mr := newRedisLimiter(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})
		mr.Close()

		_, err := limiter.Allow(ctx, "1.2.3.4")
		assert.ErrorIs(t, err, ratelimiter.ErrStoreUnavailable)
	})
}
