// Package ratelimiter provides token bucket rate limiting with pluggable
// storage backends.
//
// A bucket holds up to Capacity tokens and gains RefillRate tokens every
// RefillInterval. Each request consumes tokens; when the bucket runs dry the
// request is denied until the next refill. The algorithm allows short bursts
// while holding the average rate.
//
// # Usage
//
//	store := ratelimiter.NewMemoryStore()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       10,
//		RefillRate:     10,
//		RefillInterval: time.Minute,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := limiter.Allow(ctx, clientIP)
//	if err != nil {
//		// store failure, fail open or closed per caller policy
//	}
//	if !result.Allowed() {
//		// deny with Retry-After: result.RetryAfter()
//	}
//
// # Storage Backends
//
// MemoryStore keeps buckets in process memory and suits single-instance
// deployments and tests. RedisStore keeps buckets in Redis behind an atomic
// Lua script so multiple instances share the same limits:
//
//	store := ratelimiter.NewRedisStore(redisClient)
//	limiter, err := ratelimiter.NewBucket(store, cfg)
package ratelimiter
