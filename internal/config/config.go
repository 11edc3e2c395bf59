package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Temperature dataset configuration.
	DatasetURL     string
	DatasetTimeout time.Duration
	DatasetTTL     time.Duration

	// USGS earthquake feed configuration.
	USGSBaseURL  string
	QuakeTimeout time.Duration

	// Earthquake monitor configuration.
	MonitorEnabled      bool
	MonitorInterval     time.Duration
	MonitorLookback     time.Duration
	MonitorMinMagnitude float64

	// Kafka publishing configuration (feature-flagged via KAFKA_ENABLED).
	KafkaEnabled    bool
	KafkaBrokers    []string
	KafkaQuakeTopic string
}

const defaultDatasetURL = "https://data.giss.nasa.gov/gistemp/tabledata_v4/GLB.Ts+dSST.csv"

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	datasetTimeout, err := parseDuration("DATASET_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	datasetTTL, err := parseDuration("DATASET_TTL", "6h")
	if err != nil {
		return nil, err
	}
	quakeTimeout, err := parseDuration("QUAKE_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	monitorInterval, err := parseDuration("MONITOR_INTERVAL", "5m")
	if err != nil {
		return nil, err
	}
	monitorLookback, err := parseDuration("MONITOR_LOOKBACK", "24h")
	if err != nil {
		return nil, err
	}
	minMagnitude, err := parseFloat("MONITOR_MIN_MAGNITUDE", "4.5")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DatasetURL:     envOrDefault("DATASET_URL", defaultDatasetURL),
		DatasetTimeout: datasetTimeout,
		DatasetTTL:     datasetTTL,

		USGSBaseURL:  envOrDefault("USGS_BASE_URL", "https://earthquake.usgs.gov/fdsnws/event/1"),
		QuakeTimeout: quakeTimeout,

		MonitorEnabled:      os.Getenv("MONITOR_ENABLED") == "true",
		MonitorInterval:     monitorInterval,
		MonitorLookback:     monitorLookback,
		MonitorMinMagnitude: minMagnitude,

		KafkaEnabled:    os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:    parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaQuakeTopic: strings.TrimSpace(envOrDefault("KAFKA_QUAKE_TOPIC", "earthquake-events")),
	}

	if cfg.DatasetURL == "" {
		return nil, errors.New("DATASET_URL is required")
	}
	if cfg.USGSBaseURL == "" {
		return nil, errors.New("USGS_BASE_URL is required")
	}
	if cfg.MonitorMinMagnitude < 0 {
		return nil, errors.New("MONITOR_MIN_MAGNITUDE must not be negative")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaQuakeTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_QUAKE_TOPIC is not set")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseFloat(key, def string) (float64, error) {
	f, err := strconv.ParseFloat(envOrDefault(key, def), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return f, nil
}
