package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/i474232898/eye-of-horus/internal/api/http"
	"github.com/i474232898/eye-of-horus/internal/config"
	"github.com/i474232898/eye-of-horus/internal/forecast"
	"github.com/i474232898/eye-of-horus/internal/forecast/providers"
	"github.com/i474232898/eye-of-horus/internal/logger"
	"github.com/i474232898/eye-of-horus/internal/scheduler"
)

func main() {
	envErr := config.LoadEnvFiles()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		logger.New(slog.LevelInfo).Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	if envErr != nil {
		log.Info("some env files were not loaded", logger.Err(envErr))
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	var exporter *forecast.Exporter
	if cfg.Export.Dir != "" {
		exporter = forecast.NewExporter(cfg.Export.Dir)
		log.Info("csv export enabled", "dir", cfg.Export.Dir)
	}

	service := forecast.NewService(log, exporter,
		providers.NewPowerProvider(httpClient, cfg.NASAPower, log),
		providers.NewMeteomaticsProvider(httpClient, cfg.Meteomatics, log),
	)

	// Scheduled CSV export of configured locations.
	sched := scheduler.New(cfg.Export, service, cfg.HTTPTimeout, log)
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", logger.Err(err))
		os.Exit(1)
	}
	defer sched.Stop()

	app := httpapi.NewApp(cfg.CORSOrigins, cfg.HTTPTimeout)
	httpapi.RegisterRoutes(app, service, cfg.DefaultPageSize)

	go func() {
		log.Info("starting server", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", logger.Err(err))
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", logger.Err(err))
	}
}
