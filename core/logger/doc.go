// Package logger provides structured logging built on the standard slog
// package: environment presets, context-aware attribute extraction, and typed
// attribute helpers for common logging patterns.
//
// # Basic usage
//
//	log := logger.New(logger.WithDevelopment("authserver"))
//
//	log.Info("server starting",
//		logger.Component("server"),
//		logger.Event("startup"),
//	)
//
// # Environment presets
//
//	logger.New(logger.WithDevelopment("app")) // text format, debug level
//	logger.New(logger.WithStaging("app"))     // JSON format, info level
//	logger.New(logger.WithProduction("app"))  // JSON format, info level
//
// # Context-aware logging
//
// Extractors pull request-scoped values into every record logged with a
// context:
//
//	log := logger.New(
//		logger.WithProduction("app"),
//		logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.InfoContext(ctx, "processing request")
//
// # Attribute helpers
//
// Helpers keep attribute keys consistent across services:
//
//	log.Info("request processed",
//		logger.Method(r.Method),
//		logger.Path(r.URL.Path),
//		logger.StatusCode(status),
//		logger.ClientIP(ip),
//		logger.Duration(elapsed),
//	)
//
//	log.Error("operation failed",
//		logger.Component("storage"),
//		logger.Error(err),
//	)
package logger
