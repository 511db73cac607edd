package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/climate-forecast/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/climate-forecast/internal/adapter/kafka"
	"github.com/couchcryptid/climate-forecast/internal/adapter/seriesapi"
	"github.com/couchcryptid/climate-forecast/internal/adapter/store"
	"github.com/couchcryptid/climate-forecast/internal/config"
	"github.com/couchcryptid/climate-forecast/internal/domain"
	"github.com/couchcryptid/climate-forecast/internal/observability"
	"github.com/couchcryptid/climate-forecast/internal/series"
	"github.com/couchcryptid/climate-forecast/internal/simulate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// Upstream series API (disabled when SERIES_API_URL is unset).
	var api domain.SeriesSource
	if cfg.SeriesAPIURL != "" {
		api = seriesapi.NewClient(cfg.SeriesAPIURL, cfg.SeriesAPITimeout, logger)
		logger.Info("upstream series api enabled", "url", cfg.SeriesAPIURL, "timeout", cfg.SeriesAPITimeout)
	} else {
		logger.Info("upstream series api disabled")
	}

	// Local series store (disabled when SERIES_DB_PATH is empty).
	var seriesStore series.Store
	if cfg.SeriesDBPath != "" {
		db, err := store.Open(cfg.SeriesDBPath, logger)
		if err != nil {
			logger.Error("failed to open series store", "path", cfg.SeriesDBPath, "error", err)
			os.Exit(1)
		}
		defer db.Close()
		seriesStore = db
		logger.Info("series store enabled", "path", cfg.SeriesDBPath)
	} else {
		logger.Info("series store disabled")
	}

	chain := series.NewChain(api, seriesStore, logger, metrics)
	refresher := series.NewRefresher(chain, cfg.SeriesRefreshInterval, logger, metrics)
	simulator := simulate.New(logger, metrics)

	// Results publisher (feature-flagged via KAFKA_ENABLED).
	var publisher httpadapter.ResultPublisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPublisher
		logger.Info("results publishing enabled", "topic", cfg.KafkaResultsTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("results publishing disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, refresher, simulator, publisher, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the background series refresher.
	go func() {
		if err := refresher.Run(ctx); err != nil {
			logger.Error("series refresher error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
