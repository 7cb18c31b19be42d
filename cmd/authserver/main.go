package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/identity/core/config"
	"github.com/dmitrymomot/identity/core/logger"
	"github.com/dmitrymomot/identity/core/server"
	"github.com/dmitrymomot/identity/integration/database/pg"
	redisdb "github.com/dmitrymomot/identity/integration/database/redis"
	"github.com/dmitrymomot/identity/internal/authserver"
	"github.com/dmitrymomot/identity/internal/authserver/migrations"
	"github.com/dmitrymomot/identity/pkg/ratelimiter"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg authserver.Config
	config.MustLoad(&cfg)
	var dbCfg pg.Config
	config.MustLoad(&dbCfg)
	var redisCfg redisdb.Config
	config.MustLoad(&redisCfg)

	log := logger.New(logger.WithDevelopment("authserver"))

	db, err := pg.Connect(ctx, dbCfg)
	if err != nil {
		log.Error("Failed to connect to database", logger.Component("database"), logger.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	if err := pg.Migrate(ctx, db, migrations.FS, ".", dbCfg, log.With("component", "migration")); err != nil {
		log.Error("Failed to migrate database", logger.Component("database.migration"), logger.Error(err))
		os.Exit(1)
	}

	redisClient, err := redisdb.Connect(ctx, redisCfg)
	if err != nil {
		log.Error("Failed to connect to redis", logger.Component("redis"), logger.Error(err))
		os.Exit(1)
	}
	defer redisClient.Close()

	// Token endpoint rate limiting shares state across replicas through Redis.
	limiter, err := ratelimiter.NewBucket(ratelimiter.NewRedisStore(redisClient), ratelimiter.Config{
		Capacity:       cfg.TokenRateLimit,
		RefillRate:     cfg.TokenRateLimit,
		RefillInterval: cfg.TokenRateWindow,
	})
	if err != nil {
		log.Error("Failed to create rate limiter", logger.Component("ratelimiter"), logger.Error(err))
		os.Exit(1)
	}

	h := authserver.NewHandler(authserver.NewPostgresStorage(db), log)
	r := authserver.NewRouter(h, limiter, map[string]func(context.Context) error{
		"postgres": pg.Healthcheck(db),
		"redis":    redisdb.Healthcheck(redisClient),
	}, log)

	eg, ctx := errgroup.WithContext(ctx)
	s := server.New(cfg.Addr(), server.WithLogger(log))
	eg.Go(s.Run(ctx, r))

	if err := eg.Wait(); err != nil {
		log.Error("Failed to run server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Authorization server stopped")
}
