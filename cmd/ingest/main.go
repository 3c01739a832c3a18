// Command ingest fetches the curated policy sources, extracts indicator
// flags, and loads everything into the index store in one transaction.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"sovindex/internal/ingest"
	"sovindex/internal/platform/config"
	"sovindex/internal/platform/logger"
	"sovindex/internal/platform/postgres"
	"sovindex/internal/readiness/store"
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

	fetcher := ingest.NewFetcher(cfg.FetchTimeout, log, ingest.NewMetrics())
	docs := fetcher.FetchAll(ctx)
	if len(docs) == 0 {
		log.Warn("no sources fetched; nothing to load")
		return
	}

	loader := ingest.NewLoader(store.NewPostgresTxRunner(db), log)
	if err := loader.Load(ctx, docs); err != nil {
		log.Error("ingest failed", "error", err.Error())
		os.Exit(1)
	}
}
