// Package redis provides Redis client initialization and health checking on
// top of the go-redis client.
//
// # Key Features
//
//   - Connect: creates a Redis client with retry logic and connection verification
//   - Healthcheck: returns a probe function for health endpoints
//
// # Usage
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
// Both redis:// and rediss:// (TLS) URL schemes are supported. Connection
// establishment retries with a linearly growing interval and respects context
// cancellation; the whole process is bounded by ConnectTimeout.
//
// # Error Handling
//
// Errors can be classified with errors.Is:
//
//   - ErrFailedToParseRedisConnString: malformed connection URL
//   - ErrRedisNotReady: Redis did not become ready within the timeout
//   - ErrEmptyConnectionURL: no connection URL provided
//   - ErrHealthcheckFailed: health check ping failed
package redis
