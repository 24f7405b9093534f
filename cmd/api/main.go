package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"trendkit/internal/app"
	"trendkit/internal/core/cache"
	"trendkit/internal/core/config"
	"trendkit/internal/core/logger"
	"trendkit/internal/core/metrics"
	"trendkit/internal/core/server"
	cachehandler "trendkit/internal/features/cache/handler"
	trendhandler "trendkit/internal/features/trends/handler"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// @title trendkit API
// @version 1.0
// @description Google Trends data for LLM agents: realtime and bulk trending keywords, related queries, interest over time and keyword comparison.
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		l.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer a.Close()

	janitor, err := cache.NewJanitor(cfg.Cache.CleanupSchedule, cache.Default, logger.Named("janitor"))
	if err != nil {
		l.Fatal("Invalid cache cleanup schedule", zap.Error(err))
	}
	janitor.Start()
	defer janitor.Stop()

	if err := metrics.RegisterCacheStats(prometheus.DefaultRegisterer, cache.GetStats); err != nil {
		l.Fatal("Failed to register cache metrics", zap.Error(err))
	}

	trendHdl := trendhandler.NewTrendHandler(a.Trends)
	cacheHdl := cachehandler.NewCacheHandler(cache.Default, a.Remote)

	srv := server.New(cfg, nil)

	// Register Routes
	srv.App.Get("/trends/trending", trendHdl.GetTrending)
	srv.App.Get("/trends/bulk", trendHdl.GetBulk)
	srv.App.Get("/trends/related/:keyword", trendHdl.GetRelated)
	srv.App.Get("/trends/interest", trendHdl.GetInterest)
	srv.App.Get("/trends/compare", trendHdl.GetCompare)
	srv.App.Get("/trends/geos", trendHdl.GetGeos)

	srv.App.Get("/cache/stats", cacheHdl.GetStats)
	srv.App.Delete("/cache", cacheHdl.Clear)
	srv.App.Post("/cache/cleanup", cacheHdl.Cleanup)
	srv.App.Post("/cache/stats/reset", cacheHdl.ResetStats)

	go func() {
		<-ctx.Done()
		l.Info("Shutting down")
		if err := srv.Shutdown(); err != nil {
			l.Error("Shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
