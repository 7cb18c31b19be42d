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
	redisdb "github.com/dmitrymomot/identity/integration/database/redis"
	"github.com/dmitrymomot/identity/internal/tokenservice"
	"github.com/dmitrymomot/identity/pkg/jwt"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg tokenservice.Config
	config.MustLoad(&cfg)
	var redisCfg redisdb.Config
	config.MustLoad(&redisCfg)

	log := logger.New(logger.WithDevelopment("tokenservice"))

	redisClient, err := redisdb.Connect(ctx, redisCfg)
	if err != nil {
		log.Error("Failed to connect to redis", logger.Component("redis"), logger.Error(err))
		os.Exit(1)
	}
	defer redisClient.Close()

	signer, err := jwt.NewFromString(cfg.Secret)
	if err != nil {
		log.Error("Failed to create token signer", logger.Component("jwt"), logger.Error(err))
		os.Exit(1)
	}

	h := tokenservice.NewHandler(signer, tokenservice.NewCredentialStore(redisClient),
		cfg.AccessTokenTTL(), cfg.RefreshTokenTTL(), log)
	r := tokenservice.NewRouter(h, map[string]func(context.Context) error{
		"redis": redisdb.Healthcheck(redisClient),
	}, log)

	eg, ctx := errgroup.WithContext(ctx)
	s := server.New(cfg.Addr(), server.WithLogger(log))
	eg.Go(s.Run(ctx, r))

	if err := eg.Wait(); err != nil {
		log.Error("Failed to run server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Token service stopped")
}
