// Package app wires configuration, cache tiers, adapters and the trend service
// shared by the HTTP server and the CLI.
package app

import (
	"context"
	"time"

	"trendkit/internal/core/cache"
	"trendkit/internal/core/config"
	"trendkit/internal/core/httpclient"
	"trendkit/internal/core/logger"
	adapter "trendkit/internal/features/trends/adapters"
	"trendkit/internal/features/trends/service"

	"go.uber.org/zap"
)

// App is the assembled dependency graph.
type App struct {
	Config *config.AppConfig
	// Remote is the shared cache tier, nil when REDIS_URL is unset or unreachable.
	Remote cache.Remote
	Trends *service.TrendService

	closers []func() error
}

// New configures the default cache store and builds the trend service.
func New(ctx context.Context, cfg *config.AppConfig) (*App, error) {
	l := logger.Get()
	a := &App{Config: cfg}

	cache.Configure(cfg.Cache.MaxSize, cfg.Cache.DefaultTTL)

	if cfg.Cache.RedisURL != "" {
		redis, err := cache.NewRedisAdapter(cfg.Cache.RedisURL, "")
		if err != nil {
			return nil, err
		}

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := redis.Ping(pingCtx); err != nil {
			l.Warn("Shared cache unreachable, continuing with the in-process cache only", zap.Error(err))
			_ = redis.Close()
		} else {
			l.Info("Shared cache connected")
			a.Remote = redis
			a.closers = append(a.closers, redis.Close)
		}
	}

	proxySettings := cfg.Proxy.Settings()
	client := httpclient.NewClient(cfg.Trends.RequestTimeout, proxySettings)

	rss := adapter.NewRSSAdapter(cfg.Trends.BaseURL, client)
	explore := adapter.NewExploreAdapter(adapter.ExploreConfig{
		BaseURL:           cfg.Trends.BaseURL,
		HostLanguage:      cfg.Trends.HostLanguage,
		TZOffset:          cfg.Trends.TZOffset,
		RequestsPerSecond: cfg.Trends.RequestsPerSecond,
	}, client)
	browser := adapter.NewBrowserAdapter(adapter.BrowserConfig{
		BaseURL:      cfg.Trends.BaseURL,
		HostLanguage: cfg.Trends.HostLanguage,
		Timeout:      cfg.Browser.Timeout,
		Bin:          cfg.Browser.Bin,
		Proxy:        proxySettings,
	})

	a.Trends = service.NewTrendService(rss, explore, browser, service.Config{
		Retry:   cfg.Retry.Policy(),
		BaseURL: cfg.Trends.BaseURL,
		Remote:  a.Remote,
	})

	return a, nil
}

// Close releases every connection opened by New.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Get().Warn("Failed to close resource", zap.Error(err))
		}
	}
	a.closers = nil
}
