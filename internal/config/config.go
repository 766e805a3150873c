package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	PipelineEnabled  bool
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Remote AI predictor configuration.
	PredictorURL       string
	PredictorToken     string
	PredictorEnabled   bool
	PredictorTimeout   time.Duration
	PredictorCacheSize int
	PredictorCacheTTL  time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	predictorTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("PREDICTOR_TIMEOUT", "30s"))
	if err != nil || predictorTimeout <= 0 {
		return nil, errors.New("invalid PREDICTOR_TIMEOUT")
	}

	predictorCacheSize, err := parsePositiveInt("PREDICTOR_CACHE_SIZE", 500)
	if err != nil {
		return nil, err
	}

	predictorCacheTTL, err := time.ParseDuration(sharedcfg.EnvOrDefault("PREDICTOR_CACHE_TTL", "1h"))
	if err != nil || predictorCacheTTL <= 0 {
		return nil, errors.New("invalid PREDICTOR_CACHE_TTL")
	}

	pipelineEnabled, err := parseBool("PIPELINE_ENABLED", true)
	if err != nil {
		return nil, err
	}

	predictorURL := os.Getenv("PREDICTOR_URL")
	predictorEnabled, err := parseBool("PREDICTOR_ENABLED", predictorURL != "")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "environmental-readings"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "wildfire-risk-assessments"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "wildfire-risk"),
		PipelineEnabled:    pipelineEnabled,
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		PredictorURL:       predictorURL,
		PredictorToken:     os.Getenv("PREDICTOR_TOKEN"),
		PredictorEnabled:   predictorEnabled,
		PredictorTimeout:   predictorTimeout,
		PredictorCacheSize: predictorCacheSize,
		PredictorCacheTTL:  predictorCacheTTL,
	}

	if cfg.PipelineEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required")
		}
		if cfg.KafkaSourceTopic == "" {
			return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_SINK_TOPIC is required")
		}
	}
	if cfg.PredictorEnabled {
		if cfg.PredictorURL == "" {
			return nil, errors.New("PREDICTOR_ENABLED is true but PREDICTOR_URL is not set")
		}
		if u, err := url.Parse(cfg.PredictorURL); err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid PREDICTOR_URL %q", cfg.PredictorURL)
		}
	}

	return cfg, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", key, s)
	}
	return n, nil
}

func parseBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: must be true or false", key, s)
	}
	return b, nil
}
