package tokenservice

import (
	"fmt"
	"time"
)

// Config holds token service settings with environment variable mapping.
// Redis settings load separately through the redis integration package.
type Config struct {
	Host string `env:"JWT_SERVICE_HOST" envDefault:"127.0.0.1"`
	Port int    `env:"JWT_SERVICE_PORT" envDefault:"8083"`

	// Secret signs access tokens; shorter than 32 bytes is startup-fatal.
	Secret string `env:"JWT_SECRET,required"`

	AccessTokenExpirySeconds  int `env:"JWT_ACCESS_TOKEN_EXPIRY_SECONDS" envDefault:"900"`
	RefreshTokenExpirySeconds int `env:"JWT_REFRESH_TOKEN_EXPIRY_SECONDS" envDefault:"604800"`
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AccessTokenTTL returns the configured access token lifetime.
func (c Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpirySeconds) * time.Second
}

// RefreshTokenTTL returns the configured refresh handle lifetime.
func (c Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenExpirySeconds) * time.Second
}
