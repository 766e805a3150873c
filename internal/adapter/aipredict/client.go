package aipredict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/wildfire-risk-service/internal/domain"
	"github.com/couchcryptid/wildfire-risk-service/internal/observability"
)

// ErrInvalidResponse is returned when the prediction service answers with a
// payload that does not satisfy the prediction schema.
var ErrInvalidResponse = errors.New("invalid prediction response")

// Client implements domain.RiskPredictor against a remote AI prediction
// service.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a prediction service client. baseURL is the service root,
// e.g. "https://predictor.internal".
func NewClient(baseURL, token string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Predict sends the input to the service and validates the structured reply.
func (c *Client) Predict(ctx context.Context, in domain.PredictionInput) (domain.Prediction, error) {
	if err := in.Validate(); err != nil {
		return domain.Prediction{}, err
	}

	start := time.Now()
	p, err := c.doRequest(ctx, in)
	c.metrics.PredictorDuration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		c.metrics.PredictorRequests.WithLabelValues(domain.SourceAI, "success").Inc()
	case errors.Is(err, ErrInvalidResponse):
		c.metrics.PredictorRequests.WithLabelValues(domain.SourceAI, "invalid").Inc()
	default:
		c.metrics.PredictorRequests.WithLabelValues(domain.SourceAI, "error").Inc()
	}
	if err != nil {
		c.logger.Debug("prediction request failed", "location", in.Location, "error", err)
	}
	return p, err
}

func (c *Client) doRequest(ctx context.Context, in domain.PredictionInput) (domain.Prediction, error) {
	body, err := json.Marshal(newRequest(in))
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/predictions", bytes.NewReader(body))
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("prediction request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.Prediction{}, fmt.Errorf("prediction API error: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var pr response
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return domain.Prediction{}, fmt.Errorf("%w: decode: %v", ErrInvalidResponse, err)
	}
	return pr.toPrediction()
}

// Prediction service wire types.

type request struct {
	Location               string  `json:"location"`
	Latitude               float64 `json:"latitude"`
	Longitude              float64 `json:"longitude"`
	Temperature            float64 `json:"temperature"`
	Humidity               float64 `json:"humidity"`
	WindSpeed              float64 `json:"wind_speed"`
	Precipitation          float64 `json:"precipitation"`
	DaysSincePrecipitation int     `json:"days_since_precipitation"`
	VegetationType         string  `json:"vegetation_type"`
	Season                 string  `json:"season"`
}

func newRequest(in domain.PredictionInput) request {
	return request{
		Location:               in.Location,
		Latitude:               in.Latitude,
		Longitude:              in.Longitude,
		Temperature:            in.Reading.Temperature,
		Humidity:               in.Reading.Humidity,
		WindSpeed:              in.Reading.WindSpeed,
		Precipitation:          in.PrecipitationMM,
		DaysSincePrecipitation: in.Reading.DaysSincePrecipitation,
		VegetationType:         in.VegetationType,
		Season:                 in.Season,
	}
}

type response struct {
	RiskLevel              string   `json:"risk_level"`
	RiskScore              *float64 `json:"risk_score"`
	FireWeatherIndex       *float64 `json:"fire_weather_index"`
	ConfidenceLevel        float64  `json:"confidence_level"`
	KeyFactors             []string `json:"key_factors"`
	VegetationAssessment   string   `json:"vegetation_assessment"`
	WeatherImpact          string   `json:"weather_impact"`
	FireBehaviorPrediction string   `json:"fire_behavior_prediction"`
	Recommendations        []string `json:"recommendations"`
	DetailedAnalysis       string   `json:"detailed_analysis"`
}

// toPrediction converts the reply, rejecting missing or out-of-range fields.
// The level is taken as reported; it is not rederived from the score.
func (r response) toPrediction() (domain.Prediction, error) {
	if r.RiskScore == nil {
		return domain.Prediction{}, fmt.Errorf("%w: risk_score is missing", ErrInvalidResponse)
	}
	level, err := domain.ParseRiskLevel(r.RiskLevel)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if math.IsNaN(*r.RiskScore) || math.IsInf(*r.RiskScore, 0) {
		return domain.Prediction{}, fmt.Errorf("%w: risk_score is not a number", ErrInvalidResponse)
	}

	p := domain.Prediction{
		Score:                int(math.Round(*r.RiskScore)),
		Level:                level,
		FireWeatherIndex:     r.FireWeatherIndex,
		ConfidenceLevel:      r.ConfidenceLevel,
		KeyFactors:           r.KeyFactors,
		Recommendations:      r.Recommendations,
		VegetationAssessment: r.VegetationAssessment,
		WeatherImpact:        r.WeatherImpact,
		FireBehavior:         r.FireBehaviorPrediction,
		Analysis:             r.DetailedAnalysis,
		Source:               domain.SourceAI,
		GeneratedAt:          domain.Now(),
	}
	if err := domain.ValidatePrediction(p); err != nil {
		return domain.Prediction{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return p, nil
}
