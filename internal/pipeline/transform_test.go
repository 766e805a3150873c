package pipeline_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wildfire-risk-service/internal/domain"
	"github.com/couchcryptid/wildfire-risk-service/internal/observability"
	"github.com/couchcryptid/wildfire-risk-service/internal/pipeline"
)

func loadReadingFixtures(t *testing.T) []domain.RawEvent {
	t.Helper()
	data, err := os.ReadFile("testdata/readings.json")
	require.NoError(t, err)

	var rows []json.RawMessage
	require.NoError(t, json.Unmarshal(data, &rows))

	events := make([]domain.RawEvent, len(rows))
	for i, row := range rows {
		events[i] = domain.RawEvent{Value: row, Topic: "environmental-readings", Offset: int64(i)}
	}
	return events
}

func TestRiskTransformer_WithFixtureReadings(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2025, 7, 14, 16, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })

	metrics := observability.NewMetricsForTesting()
	tfm := pipeline.NewTransformer(slog.Default(), metrics)
	events := loadReadingFixtures(t)

	want := []struct {
		location string
		score    int
		level    domain.RiskLevel
	}{
		{"Kamloops", 75, domain.RiskLevelHigh},
		{"Thunder Bay", 0, domain.RiskLevelVeryLow},
		{"Fort McMurray", 100, domain.RiskLevelExtreme},
		{"Prince Albert", 43, domain.RiskLevelModerate},
	}

	for i, w := range want {
		t.Run(w.location, func(t *testing.T) {
			out, err := tfm.Transform(context.Background(), events[i])
			require.NoError(t, err)

			var rec domain.RiskRecord
			require.NoError(t, json.Unmarshal(out.Value, &rec))
			assert.Equal(t, w.location, rec.LocationName)
			assert.Equal(t, w.score, rec.RiskScore)
			assert.Equal(t, w.level, rec.RiskLevel)
			assert.Equal(t, rec.ID, string(out.Key))
			assert.Equal(t, w.level.String(), out.Headers["risk_level"])
			assert.Equal(t, "2025-07-14T16:00:00Z", out.Headers["processed_at"])
		})
	}

	t.Run("humidity out of range", func(t *testing.T) {
		_, err := tfm.Transform(context.Background(), events[4])
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("missing wind speed", func(t *testing.T) {
		_, err := tfm.Transform(context.Background(), events[5])
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "wind_speed")
	})

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.RiskLevels.WithLabelValues("extreme")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.RiskLevels.WithLabelValues("high")), 0)
}

func TestRiskTransformer_InvalidJSON(t *testing.T) {
	tfm := pipeline.NewTransformer(slog.Default(), observability.NewMetricsForTesting())
	_, err := tfm.Transform(context.Background(), domain.RawEvent{Value: []byte("not json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse raw event")
}

func TestPipeline_EndToEndWithFixtures(t *testing.T) {
	events := loadReadingFixtures(t)
	ext := &mockExtractor{batches: [][]domain.RawEvent{events}}
	ldr := &mockLoader{}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(ext, pipeline.NewTransformer(slog.Default(), metrics), ldr, slog.Default(), metrics, 50)
	runFor(t, p, 300*time.Millisecond)

	assert.Len(t, ldr.keys(), 4)
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.InvalidReadings), 0)
	assert.InDelta(t, 6, testutil.ToFloat64(metrics.ReadingsConsumed), 0)
}
