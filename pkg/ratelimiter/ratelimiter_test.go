package ratelimiter_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/identity/pkg/ratelimiter"
)

func TestNewBucket(t *testing.T) {
	store := ratelimiter.NewMemoryStore()

	t.Run("nil store rejected", func(t *testing.T) {
		_, err := ratelimiter.NewBucket(nil, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		cases := []ratelimiter.Config{
			{Capacity: 0, RefillRate: 1, RefillInterval: time.Second},
			{Capacity: 1, RefillRate: 0, RefillInterval: time.Second},
			{Capacity: 1, RefillRate: 1, RefillInterval: 0},
		}
		for _, cfg := range cases {
			_, err := ratelimiter.NewBucket(store, cfg)
			assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
		}
	})

	t.Run("valid config accepted", func(t *testing.T) {
		_, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 5, RefillRate: 1, RefillInterval: time.Second})
		assert.NoError(t, err)
	})
}

func TestBucketAllow(t *testing.T) {
	ctx := context.Background()

	newLimiter := func(t *testing.T, cfg ratelimiter.Config) *ratelimiter.Bucket {
		t.Helper()
		limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), cfg)
		require.NoError(t, err)
		return limiter
	}

	t.Run("allows up to capacity then denies", func(t *testing.T) {
		limiter := newLimiter(t, ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: time.Hour})

		for i := 0; i < 3; i++ {
			result, err := limiter.Allow(ctx, "client")
			require.NoError(t, err)
			assert.True(t, result.Allowed(), "request %d should be allowed", i)
		}

		result, err := limiter.Allow(ctx, "client")
		require.NoError(t, err)
		assert.False(t, result.Allowed())
		assert.Positive(t, result.RetryAfter())
	})

	t.Run("denied request does not drain the bucket", func(t *testing.T) {
		limiter := newLimiter(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: 50 * time.Millisecond})

		result, err := limiter.Allow(ctx, "client")
		require.NoError(t, err)
		require.True(t, result.Allowed())

		for n := 0; n < 5; n++ {
			result, err = limiter.Allow(ctx, "client")
			require.NoError(t, err)
			assert.False(t, result.Allowed())
		}

		time.Sleep(60 * time.Millisecond)
		result, err = limiter.Allow(ctx, "client")
		require.NoError(t, err)
		assert.True(t, result.Allowed())
	})

	t.Run("keys are independent", func(t *testing.T) {
		limiter := newLimiter(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})

		result, err := limiter.Allow(ctx, "a")
		require.NoError(t, err)
		require.True(t, result.Allowed())

		result, err = limiter.Allow(ctx, "b")
		require.NoError(t, err)
		assert.True(t, result.Allowed())
	})

	t.Run("allow n consumes n tokens", func(t *testing.T) {
		limiter := newLimiter(t, ratelimiter.Config{Capacity: 5, RefillRate: 1, RefillInterval: time.Hour})

		result, err := limiter.AllowN(ctx, "client", 5)
		require.NoError(t, err)
		assert.True(t, result.Allowed())
		assert.Equal(t, 0, result.Remaining)

		result, err = limiter.Allow(ctx, "client")
		require.NoError(t, err)
		assert.False(t, result.Allowed())
	})

	t.Run("non-positive token count rejected", func(t *testing.T) {
		limiter := newLimiter(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})

		_, err := limiter.AllowN(ctx, "client", 0)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)

		_, err = limiter.AllowN(ctx, "client", -1)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
	})

	t.Run("reset restores capacity", func(t *testing.T) {
		limiter := newLimiter(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})

		result, err := limiter.Allow(ctx, "client")
		require.NoError(t, err)
		require.True(t, result.Allowed())

		require.NoError(t, limiter.Reset(ctx, "client"))

		result, err = limiter.Allow(ctx, "client")
		require.NoError(t, err)
		assert.True(t, result.Allowed())
	})
}

func TestMemoryStoreConcurrency(t *testing.T) {
	ctx := context.Background()
	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
		Capacity:       100,
		RefillRate:     1,
		RefillInterval: time.Hour,
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for n := 0; n < 200; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := limiter.Allow(ctx, "shared")
			if err == nil && result.Allowed() {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowed)
}
