package domain

import (
	"context"
	"errors"
	"log/slog"
)

// FallbackPredictor asks a primary predictor first and falls back to the
// deterministic scorer when the primary fails. Validation errors are returned
// as-is since the fallback would reject the same input.
type FallbackPredictor struct {
	primary  RiskPredictor
	fallback *RiskScorer
	logger   *slog.Logger
}

// NewFallbackPredictor wraps primary. A nil primary means scorer-only.
func NewFallbackPredictor(primary RiskPredictor, logger *slog.Logger) *FallbackPredictor {
	return &FallbackPredictor{
		primary:  primary,
		fallback: NewRiskScorer(),
		logger:   logger,
	}
}

func (f *FallbackPredictor) Predict(ctx context.Context, in PredictionInput) (Prediction, error) {
	if err := in.Validate(); err != nil {
		return Prediction{}, err
	}
	if f.primary == nil {
		return f.fallback.Predict(ctx, in)
	}

	p, err := f.primary.Predict(ctx, in)
	if err == nil {
		return p, nil
	}
	if errors.Is(err, ErrValidation) {
		return Prediction{}, err
	}
	if ctx.Err() != nil {
		return Prediction{}, ctx.Err()
	}

	f.logger.Warn("primary prediction failed, using deterministic scorer",
		"location", in.Location,
		"error", err,
	)
	return f.fallback.Predict(ctx, in)
}
