package democlient

import (
	"fmt"
	"time"
)

// Config holds demo client settings with environment variable mapping.
type Config struct {
	Host string `env:"CLIENT_HOST" envDefault:"127.0.0.1"`
	Port int    `env:"CLIENT_PORT" envDefault:"8081"`

	ClientID     string `env:"OAUTH2_CLIENT_ID,required"`
	ClientSecret string `env:"OAUTH2_CLIENT_SECRET,required"`
	RedirectURI  string `env:"OAUTH2_REDIRECT_URI" envDefault:"http://127.0.0.1:8081/callback"`
	AuthorizeURL string `env:"OAUTH2_AUTHORIZE_URL" envDefault:"http://127.0.0.1:8082/oauth/authorize"`
	TokenURL     string `env:"OAUTH2_TOKEN_URL" envDefault:"http://127.0.0.1:8082/oauth/token"`
	UserinfoURL  string `env:"OAUTH2_USERINFO_URL" envDefault:"http://127.0.0.1:8082/oauth/userinfo"`
	Scope        string `env:"OAUTH2_SCOPE" envDefault:"profile"`

	// SessionSecret signs the state cookie. Must be at least 32 bytes.
	SessionSecret string `env:"SESSION_SECRET,required"`

	HTTPTimeout time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"10s"`
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
