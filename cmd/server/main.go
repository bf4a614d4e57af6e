package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/user-locations/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/user-locations/internal/adapter/kafka"
	"github.com/couchcryptid/user-locations/internal/adapter/randomuser"
	"github.com/couchcryptid/user-locations/internal/config"
	"github.com/couchcryptid/user-locations/internal/observability"
	"github.com/couchcryptid/user-locations/internal/pipeline"
	"github.com/couchcryptid/user-locations/internal/view"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := randomuser.NewClient(cfg.RandomUserURL, cfg.RandomUserResults, cfg.RandomUserTimeout, metrics, logger)
	store := view.NewStore(metrics, logger)

	// Kafka export is feature-flagged via KAFKA_ENABLED.
	var sinks []pipeline.BatchLoader
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, metrics, logger)
		sinks = append(sinks, writer)
		logger.Info("kafka export enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka export disabled")
	}

	p := pipeline.New(client, pipeline.NewTransformer(logger), store, logger, metrics, sinks...)

	srv := httpadapter.NewServer(cfg.HTTPAddr, store, p, cfg.CORSAllowedOrigins, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Initial load. A failure leaves the view empty; the server keeps running.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("initial load failed", "error", err)
		}
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
