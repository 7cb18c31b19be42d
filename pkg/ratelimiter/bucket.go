package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// Config defines token bucket parameters.
type Config struct {
	Capacity       int           // Maximum tokens the bucket holds
	RefillRate     int           // Tokens added per refill interval
	RefillInterval time.Duration // How often tokens are added
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be > 0", ErrInvalidConfig)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be > 0", ErrInvalidConfig)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be > 0", ErrInvalidConfig)
	}
	return nil
}

// Result describes the outcome of a rate limit check.
type Result struct {
	Limit     int       // Bucket capacity
	Remaining int       // Tokens left after the check; negative when denied
	ResetAt   time.Time // When the next refill happens
}

// Allowed reports whether the request may proceed.
func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long the caller should wait before retrying.
// Zero when the request was allowed.
func (r Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(time.Until(r.ResetAt), 0)
}

// Store persists bucket state. Implementations must be safe for concurrent
// use and must apply refill and consumption atomically per key.
type Store interface {
	// ConsumeTokens refills the bucket for key per config, then attempts to
	// consume the requested tokens. When the bucket holds fewer tokens than
	// requested, nothing is consumed and the returned remaining count is
	// negative.
	ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (remaining int, resetAt time.Time, err error)

	// Reset removes all state for key.
	Reset(ctx context.Context, key string) error
}

// RateLimiter is the consumer-facing contract.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (Result, error)
	AllowN(ctx context.Context, key string, tokens int) (Result, error)
}

// Bucket implements RateLimiter using the token bucket algorithm over a
// pluggable Store.
type Bucket struct {
	store  Store
	config Config
}

// NewBucket creates a rate limiter with the given store and configuration.
func NewBucket(store Store, config Config) (*Bucket, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is required", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Bucket{store: store, config: config}, nil
}

// Allow consumes a single token for key.
func (b *Bucket) Allow(ctx context.Context, key string) (Result, error) {
	return b.AllowN(ctx, key, 1)
}

// AllowN consumes n tokens for key.
func (b *Bucket) AllowN(ctx context.Context, key string, tokens int) (Result, error) {
	if tokens <= 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidTokenCount, tokens)
	}

	remaining, resetAt, err := b.store.ConsumeTokens(ctx, key, tokens, b.config)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return Result{Limit: b.config.Capacity, Remaining: remaining, ResetAt: resetAt}, nil
}

// Reset clears the bucket state for key.
func (b *Bucket) Reset(ctx context.Context, key string) error {
	return b.store.Reset(ctx, key)
}
