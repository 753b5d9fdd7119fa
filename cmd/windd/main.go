package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/joho/godotenv"

	httpadapter "github.com/couchcryptid/wind-analytics-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/wind-analytics-service/internal/adapter/kafka"
	"github.com/couchcryptid/wind-analytics-service/internal/adapter/mapbox"
	"github.com/couchcryptid/wind-analytics-service/internal/catalog"
	"github.com/couchcryptid/wind-analytics-service/internal/config"
	"github.com/couchcryptid/wind-analytics-service/internal/dashboard"
	"github.com/couchcryptid/wind-analytics-service/internal/domain"
	"github.com/couchcryptid/wind-analytics-service/internal/observability"
)

func main() {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	metrics := observability.NewMetrics()

	dataset, err := catalog.LoadOrDefault(cfg.DatasetPath)
	if err != nil {
		logger.Error("failed to load dataset", "path", cfg.DatasetPath, "error", err)
		os.Exit(1)
	}
	logger.Info("dataset loaded", "states", dataset.Len(), "path", cfg.DatasetPath)

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger, metrics)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	// Feedback publishing (feature-flagged via FEEDBACK_ENABLED).
	var (
		publisher dashboard.FeedbackPublisher
		writer    *kafkaadapter.FeedbackWriter
	)
	if cfg.FeedbackEnabled {
		writer = kafkaadapter.NewFeedbackWriter(cfg, logger)
		publisher = writer
		logger.Info("feedback publishing enabled", "topic", cfg.FeedbackTopic, "brokers", cfg.KafkaBrokers)
	}

	svc := dashboard.New(dataset, geocoder, publisher, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Warm map labels; /readyz reports 503 until this completes.
	go func() {
		warmCtx, cancel := context.WithTimeout(ctx, cfg.WarmupTimeout)
		defer cancel()
		svc.Warm(warmCtx)
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
