package domain

import (
	"context"
	"math"
	"slices"
	"strings"
	"time"
)

// Prediction sources.
const (
	SourceDeterministic = "deterministic"
	SourceAI            = "ai"
)

var (
	seasons         = []string{"spring", "summer", "fall", "winter"}
	vegetationTypes = []string{"coniferous_forest", "mixed_forest", "grassland", "shrub_land", "dry_forest", "wetland"}
)

// PredictionInput is everything an operator submits for a risk prediction.
type PredictionInput struct {
	Location        string               `json:"location"`
	Latitude        float64              `json:"latitude"`
	Longitude       float64              `json:"longitude"`
	Reading         EnvironmentalReading `json:"reading"`
	PrecipitationMM float64              `json:"precipitation_mm"`
	VegetationType  string               `json:"vegetation_type"`
	Season          string               `json:"season"`
}

// Validate checks that every field is present and in range.
func (in PredictionInput) Validate() error {
	if strings.TrimSpace(in.Location) == "" {
		return &ValidationError{Field: "location", Reason: "is required"}
	}
	if !finite(in.Latitude) || in.Latitude < -90 || in.Latitude > 90 {
		return &ValidationError{Field: "latitude", Reason: "must be between -90 and 90"}
	}
	if !finite(in.Longitude) || in.Longitude < -180 || in.Longitude > 180 {
		return &ValidationError{Field: "longitude", Reason: "must be between -180 and 180"}
	}
	if err := in.Reading.Validate(); err != nil {
		return err
	}
	if !finite(in.PrecipitationMM) || in.PrecipitationMM < 0 {
		return &ValidationError{Field: "precipitation_mm", Reason: "must be a non-negative number"}
	}
	if !slices.Contains(vegetationTypes, in.VegetationType) {
		return &ValidationError{Field: "vegetation_type", Reason: "must be one of " + strings.Join(vegetationTypes, ", ")}
	}
	if !slices.Contains(seasons, in.Season) {
		return &ValidationError{Field: "season", Reason: "must be one of " + strings.Join(seasons, ", ")}
	}
	return nil
}

// Prediction is the structured result of a RiskPredictor.
type Prediction struct {
	Score                int       `json:"risk_score"`
	Level                RiskLevel `json:"risk_level"`
	FireWeatherIndex     *float64  `json:"fire_weather_index,omitempty"`
	ConfidenceLevel      float64   `json:"confidence_level"`
	KeyFactors           []string  `json:"key_factors,omitempty"`
	Recommendations      []string  `json:"recommendations,omitempty"`
	VegetationAssessment string    `json:"vegetation_assessment,omitempty"`
	WeatherImpact        string    `json:"weather_impact,omitempty"`
	FireBehavior         string    `json:"fire_behavior_prediction,omitempty"`
	Analysis             string    `json:"detailed_analysis,omitempty"`
	Source               string    `json:"source"`
	GeneratedAt          time.Time `json:"generated_at"`
}

// Assessment returns the score and level pair of the prediction.
func (p Prediction) Assessment() Assessment {
	return Assessment{Score: p.Score, Level: p.Level}
}

// RiskPredictor produces a risk prediction from operator input. The
// deterministic scorer and the external AI service both implement it, so
// callers do not depend on which one is active.
type RiskPredictor interface {
	Predict(ctx context.Context, in PredictionInput) (Prediction, error)
}

// RiskScorer is the deterministic RiskPredictor built on Score.
type RiskScorer struct{}

// NewRiskScorer creates a RiskScorer.
func NewRiskScorer() *RiskScorer {
	return &RiskScorer{}
}

// Predict validates the input and scores its reading. The result always has
// full confidence since the model is a fixed formula.
func (s *RiskScorer) Predict(_ context.Context, in PredictionInput) (Prediction, error) {
	if err := in.Validate(); err != nil {
		return Prediction{}, err
	}
	breakdown := Breakdown(in.Reading)
	assessment := Score(in.Reading)
	return Prediction{
		Score:           assessment.Score,
		Level:           assessment.Level,
		ConfidenceLevel: 100,
		KeyFactors:      breakdown.KeyFactors(),
		Recommendations: recommendationsFor(assessment.Level),
		Source:          SourceDeterministic,
		GeneratedAt:     clock.Now().UTC(),
	}, nil
}

// ValidatePrediction rejects predictions whose score or level is out of range.
// External predictors are not trusted to honor the schema.
func ValidatePrediction(p Prediction) error {
	if p.Score < 0 || p.Score > 100 {
		return &ValidationError{Field: "risk_score", Reason: "must be between 0 and 100"}
	}
	if p.Level.Rank() == 0 {
		return &ValidationError{Field: "risk_level", Reason: "is required"}
	}
	if math.IsNaN(p.ConfidenceLevel) || p.ConfidenceLevel < 0 || p.ConfidenceLevel > 100 {
		return &ValidationError{Field: "confidence_level", Reason: "must be between 0 and 100"}
	}
	return nil
}

func recommendationsFor(level RiskLevel) []string {
	switch level {
	case RiskLevelExtreme:
		return []string{"restrict all open burning", "pre-position suppression crews", "prepare evacuation notices"}
	case RiskLevelHigh:
		return []string{"ban open fires", "increase patrol and lookout coverage"}
	case RiskLevelModerate:
		return []string{"issue fire danger advisory", "monitor conditions every 6 hours"}
	default:
		return []string{"continue routine monitoring"}
	}
}
