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

	"github.com/couchcryptid/wildfire-risk-service/internal/adapter/aipredict"
	httpadapter "github.com/couchcryptid/wildfire-risk-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/wildfire-risk-service/internal/adapter/kafka"
	"github.com/couchcryptid/wildfire-risk-service/internal/config"
	"github.com/couchcryptid/wildfire-risk-service/internal/domain"
	"github.com/couchcryptid/wildfire-risk-service/internal/observability"
	"github.com/couchcryptid/wildfire-risk-service/internal/pipeline"
)

// alwaysReady backs /readyz when the Kafka pipeline is disabled.
type alwaysReady struct{}

func (alwaysReady) CheckReadiness(context.Context) error { return nil }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// AI predictor (feature-flagged via PREDICTOR_ENABLED / PREDICTOR_URL).
	var primary domain.RiskPredictor
	if cfg.PredictorEnabled {
		client := aipredict.NewClient(cfg.PredictorURL, cfg.PredictorToken, cfg.PredictorTimeout, metrics, logger)
		primary = aipredict.NewCachedPredictor(client, cfg.PredictorCacheSize, cfg.PredictorCacheTTL, metrics)
		metrics.PredictorEnabled.Set(1)
		logger.Info("ai predictor enabled", "url", cfg.PredictorURL, "cache_size", cfg.PredictorCacheSize, "cache_ttl", cfg.PredictorCacheTTL, "timeout", cfg.PredictorTimeout)
	} else {
		logger.Info("ai predictor disabled, using deterministic scorer")
	}
	predictor := domain.NewFallbackPredictor(primary, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		ready  sharedobs.ReadinessChecker = alwaysReady{}
		reader *kafkaadapter.Reader
		writer *kafkaadapter.Writer
	)
	if cfg.PipelineEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		writer = kafkaadapter.NewWriter(cfg, logger)
		transformer := pipeline.NewTransformer(logger, metrics)
		p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)
		ready = p

		// Start risk pipeline.
		go func() {
			if err := p.Run(ctx); err != nil {
				logger.Error("pipeline error", "error", err)
			}
		}()
	} else {
		logger.Info("kafka pipeline disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, ready, predictor, metrics, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
