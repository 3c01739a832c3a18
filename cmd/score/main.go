// Command score executes one batch scoring run: every stored country gets a
// fresh readiness snapshot, committed atomically.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"sovindex/internal/platform/config"
	"sovindex/internal/platform/logger"
	"sovindex/internal/platform/postgres"
	platformredis "sovindex/internal/platform/redis"
	"sovindex/internal/readiness/cache"
	"sovindex/internal/readiness/store"
	scoringmetrics "sovindex/internal/scoring/metrics"
	"sovindex/internal/scoring/runner"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DB)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err.Error())
		os.Exit(1)
	}
	defer db.Close()

	if err := store.EnsureSchema(ctx, db); err != nil {
		log.Error("failed to ensure schema", "error", err.Error())
		os.Exit(1)
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("failed to connect to redis", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	r := runner.New(store.NewPostgresTxRunner(db), log, scoringmetrics.New(), cache.New(redisClient))
	if err := r.Run(ctx); err != nil {
		os.Exit(1)
	}
}
