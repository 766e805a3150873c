package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	defaultBroker    = "localhost:9092"
	testPredictorURL = "https://predictor.example.com"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "environmental-readings", cfg.KafkaSourceTopic)
	assert.Equal(t, "wildfire-risk-assessments", cfg.KafkaSinkTopic)
	assert.Equal(t, "wildfire-risk", cfg.KafkaGroupID)
	assert.True(t, cfg.PipelineEnabled)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.BatchFlushInterval)
	assert.False(t, cfg.PredictorEnabled)
	assert.Empty(t, cfg.PredictorURL)
	assert.Empty(t, cfg.PredictorToken)
	assert.Equal(t, 30*time.Second, cfg.PredictorTimeout)
	assert.Equal(t, 500, cfg.PredictorCacheSize)
	assert.Equal(t, time.Hour, cfg.PredictorCacheTTL)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SOURCE_TOPIC", "custom-source")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("KAFKA_GROUP_ID", "custom-group")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("BATCH_SIZE", "100")
	t.Setenv("BATCH_FLUSH_INTERVAL", "1s")
	t.Setenv("PREDICTOR_URL", testPredictorURL)
	t.Setenv("PREDICTOR_TOKEN", "secret")
	t.Setenv("PREDICTOR_TIMEOUT", "10s")
	t.Setenv("PREDICTOR_CACHE_SIZE", "50")
	t.Setenv("PREDICTOR_CACHE_TTL", "15m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-source", cfg.KafkaSourceTopic)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.Equal(t, "custom-group", cfg.KafkaGroupID)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 1*time.Second, cfg.BatchFlushInterval)
	assert.True(t, cfg.PredictorEnabled)
	assert.Equal(t, testPredictorURL, cfg.PredictorURL)
	assert.Equal(t, "secret", cfg.PredictorToken)
	assert.Equal(t, 10*time.Second, cfg.PredictorTimeout)
	assert.Equal(t, 50, cfg.PredictorCacheSize)
	assert.Equal(t, 15*time.Minute, cfg.PredictorCacheTTL)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		mention string
	}{
		{name: "invalid shutdown timeout", env: map[string]string{"SHUTDOWN_TIMEOUT": "not-a-duration"}, mention: "SHUTDOWN_TIMEOUT"},
		{name: "negative shutdown timeout", env: map[string]string{"SHUTDOWN_TIMEOUT": "-1s"}, mention: "SHUTDOWN_TIMEOUT"},
		{name: "zero batch size", env: map[string]string{"BATCH_SIZE": "0"}, mention: "BATCH_SIZE"},
		{name: "batch size too large", env: map[string]string{"BATCH_SIZE": "9999"}, mention: "BATCH_SIZE"},
		{name: "invalid flush interval", env: map[string]string{"BATCH_FLUSH_INTERVAL": "not-a-duration"}, mention: "BATCH_FLUSH_INTERVAL"},
		{name: "invalid predictor timeout", env: map[string]string{"PREDICTOR_TIMEOUT": "bad"}, mention: "PREDICTOR_TIMEOUT"},
		{name: "invalid cache size", env: map[string]string{"PREDICTOR_CACHE_SIZE": "-5"}, mention: "PREDICTOR_CACHE_SIZE"},
		{name: "invalid cache ttl", env: map[string]string{"PREDICTOR_CACHE_TTL": "0s"}, mention: "PREDICTOR_CACHE_TTL"},
		{name: "invalid pipeline flag", env: map[string]string{"PIPELINE_ENABLED": "maybe"}, mention: "PIPELINE_ENABLED"},
		{name: "predictor enabled without url", env: map[string]string{"PREDICTOR_ENABLED": "true"}, mention: "PREDICTOR_URL"},
		{name: "relative predictor url", env: map[string]string{"PREDICTOR_URL": "predictor.local"}, mention: "PREDICTOR_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.mention)
		})
	}
}

func TestLoad_PredictorURLImpliesEnabled(t *testing.T) {
	t.Setenv("PREDICTOR_URL", testPredictorURL)
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.PredictorEnabled)
}

func TestLoad_PredictorExplicitlyDisabled(t *testing.T) {
	t.Setenv("PREDICTOR_URL", testPredictorURL)
	t.Setenv("PREDICTOR_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.PredictorEnabled)
}

func TestLoad_PipelineDisabledSkipsKafkaChecks(t *testing.T) {
	t.Setenv("PIPELINE_ENABLED", "false")
	t.Setenv("KAFKA_BROKERS", ",")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.PipelineEnabled)
}
