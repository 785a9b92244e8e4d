package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/digital-twin-agent/internal/a2a"
	"github.com/BerylCAtieno/digital-twin-agent/internal/api"
	"github.com/BerylCAtieno/digital-twin-agent/internal/app"
	"github.com/BerylCAtieno/digital-twin-agent/internal/config"
	"github.com/BerylCAtieno/digital-twin-agent/internal/logging"
)

var version = "dev"

func main() {
	configPath := flag.String("config", config.DefaultFile, "path to the TOML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	services, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer services.Close()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(services.APIDeps())
	a2a.NewHandler(services.Twin, a2a.NewAgentCard(cfg.BaseURL(), version), logger.Named("a2a")).Register(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("digital twin agent starting",
		zap.String("port", cfg.Server.Port),
		zap.String("version", version),
		zap.Bool("model_enabled", cfg.ModelEnabled()),
		zap.String("agent_card", cfg.BaseURL()+a2a.AgentCardPath),
		zap.String("a2a_endpoint", cfg.BaseURL()+a2a.EndpointPath))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
