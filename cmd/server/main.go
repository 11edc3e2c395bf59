package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/quietriver/climate-charts/internal/adapter/giss"
	"github.com/quietriver/climate-charts/internal/adapter/httpapi"
	kafkaadapter "github.com/quietriver/climate-charts/internal/adapter/kafka"
	"github.com/quietriver/climate-charts/internal/adapter/usgs"
	"github.com/quietriver/climate-charts/internal/config"
	"github.com/quietriver/climate-charts/internal/monitor"
	"github.com/quietriver/climate-charts/internal/observability"
)

func main() {
	// Local development convenience; absent .env files are fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := giss.NewClient(cfg.DatasetURL, cfg.DatasetTimeout, logger, metrics)
	source := giss.NewCachedSource(client, cfg.DatasetTTL, logger, metrics)
	quakes := usgs.NewClient(cfg.USGSBaseURL, cfg.QuakeTimeout, logger, metrics)

	// Kafka publishing is feature-flagged via KAFKA_ENABLED.
	var writer *kafkaadapter.Writer
	var publisher monitor.Publisher
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaQuakeTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Warm the dataset cache so readiness does not wait for the first
	// chart request.
	go func() {
		if _, err := source.Fetch(ctx); err != nil {
			logger.Error("initial dataset load failed", "error", err)
		}
	}()

	// Readiness gates on the dataset plus, when enabled via MONITOR_ENABLED,
	// the earthquake monitor's first poll.
	ready := httpapi.ReadyAll(source)
	if cfg.MonitorEnabled {
		m := monitor.New(quakes, publisher, monitor.Options{
			Interval:     cfg.MonitorInterval,
			Lookback:     cfg.MonitorLookback,
			MinMagnitude: cfg.MonitorMinMagnitude,
		}, logger, metrics)
		ready = httpapi.ReadyAll(source, m)

		go func() {
			if err := m.Run(ctx); err != nil {
				logger.Error("monitor error", "error", err)
			}
		}()
	} else {
		logger.Info("earthquake monitor disabled")
	}

	srv := httpapi.NewServer(cfg.HTTPAddr, source, quakes, ready, logger, metrics)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
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
