package server

import "time"

// Defaults applied by DefaultConfig and New when no option overrides them.
const (
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// DefaultMaxHeaderBytes caps request headers at 1MB.
	DefaultMaxHeaderBytes = 1 << 20
)
