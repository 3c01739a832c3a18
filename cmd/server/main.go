// Command server runs the readiness index query API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"sovindex/internal/platform/config"
	"sovindex/internal/platform/httpserver"
	"sovindex/internal/platform/logger"
	platformmetrics "sovindex/internal/platform/metrics"
	"sovindex/internal/platform/middleware"
	"sovindex/internal/platform/postgres"
	platformredis "sovindex/internal/platform/redis"
	"sovindex/internal/readiness/cache"
	"sovindex/internal/readiness/handler"
	"sovindex/internal/readiness/service"
	"sovindex/internal/readiness/store"
	"sovindex/web"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal packages.
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

	httpMetrics := platformmetrics.New()
	svc := service.New(store.NewPostgres(db), cache.New(redisClient))
	h := handler.New(svc, log)

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Latency(httpMetrics))
	h.Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Handle("/dashboard", http.StripPrefix("/dashboard", dashboardHandler()))

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting sovindex API", "addr", cfg.Addr)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err.Error())
		os.Exit(1)
	}
}

func dashboardHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, err := web.FS.ReadFile("dashboard.html")
		if err != nil {
			http.Error(w, "dashboard unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	})
}
