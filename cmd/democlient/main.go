package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/identity/core/config"
	"github.com/dmitrymomot/identity/core/cookie"
	"github.com/dmitrymomot/identity/core/logger"
	"github.com/dmitrymomot/identity/core/server"
	"github.com/dmitrymomot/identity/internal/democlient"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg democlient.Config
	config.MustLoad(&cfg)

	log := logger.New(logger.WithDevelopment("democlient"))

	cookieMgr, err := cookie.New([]string{cfg.SessionSecret})
	if err != nil {
		log.Error("Failed to create cookie manager", logger.Component("cookie"), logger.Error(err))
		os.Exit(1)
	}

	h := democlient.NewHandler(cfg, cookieMgr, &http.Client{Timeout: cfg.HTTPTimeout}, log)
	r := democlient.NewRouter(h, log)

	eg, ctx := errgroup.WithContext(ctx)
	s := server.New(cfg.Addr(), server.WithLogger(log))
	eg.Go(s.Run(ctx, r))

	if err := eg.Wait(); err != nil {
		log.Error("Failed to run server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Demo client stopped")
}
