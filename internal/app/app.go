// Package app wires configuration into the services shared by the server
// and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/digital-twin-agent/internal/api"
	"github.com/BerylCAtieno/digital-twin-agent/internal/cache"
	"github.com/BerylCAtieno/digital-twin-agent/internal/census"
	"github.com/BerylCAtieno/digital-twin-agent/internal/config"
	"github.com/BerylCAtieno/digital-twin-agent/internal/insights"
	"github.com/BerylCAtieno/digital-twin-agent/internal/metrics"
	"github.com/BerylCAtieno/digital-twin-agent/internal/profiler"
	"github.com/BerylCAtieno/digital-twin-agent/internal/twin"
)

type App struct {
	Config     config.Config
	Logger     *zap.Logger
	Registry   *prometheus.Registry
	Metrics    *metrics.Metrics
	Census     *census.Service
	Comparator *insights.Comparator
	Analyst    *profiler.Analyst
	Twin       *twin.Service

	cacheHealth api.HealthChecker
	closers     []func() error
}

// New builds every service from cfg. The analyst is nil when no Gemini key is
// configured.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger, Registry: prometheus.NewRegistry()}
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.Metrics = metrics.New(a.Registry)

	client := census.NewClient(
		census.WithBaseURL(cfg.Census.BaseURL),
		census.WithYear(cfg.Census.Year),
		census.WithAPIKey(cfg.Census.APIKey),
	)
	a.Census = census.NewService(client, logger.Named("census"), a.Metrics)
	a.Comparator = insights.NewComparator(a.Census, logger.Named("insights"))

	var (
		summarizer twin.Summarizer
		extractor  twin.ProfileExtractor
	)
	if cfg.ModelEnabled() {
		analyst, err := a.newAnalyst(ctx)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Analyst = analyst
		summarizer, extractor = analyst, analyst
	} else {
		logger.Warn("GEMINI_API_KEY not set, language model features are disabled")
	}

	a.Twin = twin.NewService(a.Comparator, summarizer, extractor, logger.Named("twin"), a.Metrics)
	return a, nil
}

func (a *App) newAnalyst(ctx context.Context) (*profiler.Analyst, error) {
	cfg := a.Config

	ttl, err := cfg.CacheTTL()
	if err != nil {
		return nil, err
	}
	store, err := a.newStore(ctx)
	if err != nil {
		return nil, err
	}

	gemini, err := profiler.NewGeminiClient(ctx, cfg.Gemini.APIKey,
		profiler.WithModel(cfg.Gemini.Model),
		profiler.WithRateLimit(cfg.Gemini.RatePerMinute))
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, gemini.Close)

	return profiler.NewAnalyst(gemini,
		profiler.WithCache(store, ttl),
		profiler.WithLogger(a.Logger.Named("profiler")),
		profiler.WithMetrics(a.Metrics)), nil
}

func (a *App) newStore(ctx context.Context) (cache.Store, error) {
	if a.Config.Cache.RedisURL == "" {
		return cache.NewMemory(), nil
	}

	store, err := cache.NewRedis(ctx, a.Config.Cache.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("analysis cache: %w", err)
	}
	a.closers = append(a.closers, store.Close)
	a.cacheHealth = store
	a.Logger.Info("using redis analysis cache")
	return store, nil
}

// APIDeps returns the HTTP layer's dependencies.
func (a *App) APIDeps() api.Deps {
	return api.Deps{
		Census:     a.Census,
		Comparator: a.Comparator,
		Analyst:    a.Analyst,
		Twin:       a.Twin,
		Gatherer:   a.Registry,
		Logger:     a.Logger.Named("api"),
		Cache:      a.cacheHealth,
	}
}

// Close releases model and cache connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
