package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validInput() PredictionInput {
	return PredictionInput{
		Location:        "Kelowna, BC",
		Latitude:        49.888,
		Longitude:       -119.496,
		Reading:         EnvironmentalReading{Temperature: 33, WindSpeed: 18, Humidity: 22, DaysSincePrecipitation: 0},
		PrecipitationMM: 0,
		VegetationType:  "dry_forest",
		Season:          "summer",
	}
}

type stubPredictor struct {
	prediction Prediction
	err        error
	calls      int
}

func (s *stubPredictor) Predict(_ context.Context, _ PredictionInput) (Prediction, error) {
	s.calls++
	return s.prediction, s.err
}

func TestPredictionInput_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *PredictionInput)
		field  string
	}{
		{"valid", func(*PredictionInput) {}, ""},
		{"blank location", func(in *PredictionInput) { in.Location = "  " }, "location"},
		{"latitude out of range", func(in *PredictionInput) { in.Latitude = 91 }, "latitude"},
		{"longitude out of range", func(in *PredictionInput) { in.Longitude = -181 }, "longitude"},
		{"invalid reading", func(in *PredictionInput) { in.Reading.Humidity = 120 }, "humidity"},
		{"negative precipitation", func(in *PredictionInput) { in.PrecipitationMM = -2 }, "precipitation_mm"},
		{"missing vegetation", func(in *PredictionInput) { in.VegetationType = "" }, "vegetation_type"},
		{"unknown season", func(in *PredictionInput) { in.Season = "monsoon" }, "season"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := in.Validate()
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestRiskScorer_Predict(t *testing.T) {
	fixed := time.Date(2025, 7, 14, 18, 30, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { SetClock(nil) })

	p, err := NewRiskScorer().Predict(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, 30+15+25+20, p.Score)
	assert.Equal(t, RiskLevelExtreme, p.Level)
	assert.Equal(t, SourceDeterministic, p.Source)
	assert.Equal(t, fixed, p.GeneratedAt)
	assert.InDelta(t, 100, p.ConfidenceLevel, 0.0001)
	assert.Contains(t, p.KeyFactors, "temperature above 30°C")
	assert.NotEmpty(t, p.Recommendations)
	assert.Nil(t, p.FireWeatherIndex)
	require.NoError(t, ValidatePrediction(p))
}

func TestRiskScorer_PredictRejectsInvalidInput(t *testing.T) {
	in := validInput()
	in.Reading.WindSpeed = -5

	_, err := NewRiskScorer().Predict(context.Background(), in)
	require.ErrorIs(t, err, ErrValidation)
}

func TestValidatePrediction(t *testing.T) {
	assert.Error(t, ValidatePrediction(Prediction{Score: 101, Level: RiskLevelExtreme}))
	assert.Error(t, ValidatePrediction(Prediction{Score: 50}))
	assert.Error(t, ValidatePrediction(Prediction{Score: 50, Level: RiskLevelModerate, ConfidenceLevel: 140}))
	assert.NoError(t, ValidatePrediction(Prediction{Score: 50, Level: RiskLevelModerate, ConfidenceLevel: 70}))
}

func TestFallbackPredictor_UsesPrimary(t *testing.T) {
	primary := &stubPredictor{prediction: Prediction{Score: 72, Level: RiskLevelHigh, Source: SourceAI}}
	f := NewFallbackPredictor(primary, discardLogger())

	p, err := f.Predict(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, SourceAI, p.Source)
	assert.Equal(t, 72, p.Score)
	assert.Equal(t, 1, primary.calls)
}

func TestFallbackPredictor_FallsBackOnError(t *testing.T) {
	primary := &stubPredictor{err: errors.New("upstream timeout")}
	f := NewFallbackPredictor(primary, discardLogger())

	p, err := f.Predict(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, SourceDeterministic, p.Source)
	assert.Equal(t, RiskLevelExtreme, p.Level)
}

func TestFallbackPredictor_ValidationNotRetried(t *testing.T) {
	primary := &stubPredictor{}
	f := NewFallbackPredictor(primary, discardLogger())

	in := validInput()
	in.Season = ""
	_, err := f.Predict(context.Background(), in)
	require.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, primary.calls)
}

func TestFallbackPredictor_CancelledContext(t *testing.T) {
	primary := &stubPredictor{err: context.Canceled}
	f := NewFallbackPredictor(primary, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Predict(ctx, validInput())
	require.ErrorIs(t, err, context.Canceled)
}

func TestFallbackPredictor_NilPrimary(t *testing.T) {
	f := NewFallbackPredictor(nil, discardLogger())

	p, err := f.Predict(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, SourceDeterministic, p.Source)
}

func TestNewRiskRecord(t *testing.T) {
	fwi := 31.5
	generated := time.Date(2025, 7, 14, 18, 30, 0, 0, time.UTC)
	p := Prediction{Score: 88, Level: RiskLevelExtreme, FireWeatherIndex: &fwi, ConfidenceLevel: 80, GeneratedAt: generated}

	rec := NewRiskRecord(validInput(), p)

	assert.Equal(t, "Kelowna, BC", rec.LocationName)
	assert.Equal(t, 88, rec.RiskScore)
	assert.Equal(t, RiskLevelExtreme, rec.RiskLevel)
	assert.Equal(t, "very_dry", rec.VegetationDryness)
	assert.InDelta(t, 31.5, rec.FireWeatherIndex, 0.0001)
	assert.Equal(t, time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC), rec.PredictedForDate)
	assert.Equal(t, generated, rec.CreatedDate)

	in := validInput()
	in.VegetationType = "wetland"
	assert.Equal(t, "moderate", NewRiskRecord(in, p).VegetationDryness)
}
