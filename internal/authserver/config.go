package authserver

import (
	"fmt"
	"time"
)

// Config holds authorization server settings with environment variable mapping.
// Database and Redis settings load separately through their integration packages.
type Config struct {
	Host string `env:"SERVER_HOST" envDefault:"127.0.0.1"`
	Port int    `env:"SERVER_PORT" envDefault:"8082"`

	// Token endpoint rate limit: TokenRateLimit requests per TokenRateWindow
	// per client IP.
	TokenRateLimit  int           `env:"TOKEN_RATE_LIMIT" envDefault:"30"`
	TokenRateWindow time.Duration `env:"TOKEN_RATE_WINDOW" envDefault:"1m"`
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
