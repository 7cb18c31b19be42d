// Package config loads environment variables into typed structs and caches
// the result per struct type, so every component sees the same configuration
// no matter how many times it loads.
//
// A .env file is loaded once on first use when present; the process
// environment always wins. Parsing is delegated to caarlos0/env struct tags.
//
//	type Config struct {
//		Host string `env:"SERVER_HOST" envDefault:"127.0.0.1"`
//		Port int    `env:"SERVER_PORT" envDefault:"8082"`
//		DSN  string `env:"DATABASE_URL,required"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg) // panics on missing required vars
package config
