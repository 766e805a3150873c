package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/wildfire-risk-service/internal/domain"
	"github.com/couchcryptid/wildfire-risk-service/internal/observability"
)

// RiskTransformer implements Transformer by scoring each station reading
// with the deterministic scorer.
type RiskTransformer struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates a RiskTransformer.
func NewTransformer(logger *slog.Logger, metrics *observability.Metrics) *RiskTransformer {
	return &RiskTransformer{logger: logger, metrics: metrics}
}

func (t *RiskTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	msg, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	rec, err := domain.AssessReading(msg)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	t.metrics.RiskLevels.WithLabelValues(rec.RiskLevel.String()).Inc()
	if rec.RiskLevel >= domain.RiskLevelHigh {
		t.logger.Info("elevated wildfire risk",
			"location", rec.LocationName,
			"score", rec.RiskScore,
			"level", rec.RiskLevel.String(),
		)
	}

	return domain.SerializeRiskRecord(rec)
}
