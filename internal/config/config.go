package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Upstream climate-series API. An empty URL disables the upstream link;
	// the service then serves from the local store or the bundled dataset.
	SeriesAPIURL          string
	SeriesAPITimeout      time.Duration
	SeriesRefreshInterval time.Duration

	// Local series store. An empty path disables persistence.
	SeriesDBPath string

	// Result publishing (feature-flagged via KAFKA_ENABLED).
	KafkaEnabled      bool
	KafkaBrokers      []string
	KafkaResultsTopic string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	apiTimeout, err := parsePositiveDuration("SERIES_API_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	refreshInterval, err := parsePositiveDuration("SERIES_REFRESH_INTERVAL", "6h")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		SeriesAPIURL:          os.Getenv("SERIES_API_URL"),
		SeriesAPITimeout:      apiTimeout,
		SeriesRefreshInterval: refreshInterval,
		SeriesDBPath:          envOrDefault("SERIES_DB_PATH", "data/climate.db"),

		KafkaEnabled:      os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:      parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaResultsTopic: envOrDefault("KAFKA_RESULTS_TOPIC", "forecast-results"),
	}

	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaResultsTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_RESULTS_TOPIC is empty")
		}
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	raw := envOrDefault(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}

func parseBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
