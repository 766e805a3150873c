package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/wildfire-risk-service/internal/aggregate"
	"github.com/couchcryptid/wildfire-risk-service/internal/domain"
)

const maxBodyBytes = 4 << 20

type scoreResponse struct {
	Score        int                    `json:"score"`
	Level        domain.RiskLevel       `json:"level"`
	Label        string                 `json:"label"`
	Color        string                 `json:"color"`
	MarkerRadius int                    `json:"marker_radius_m"`
	Breakdown    domain.FactorBreakdown `json:"breakdown"`
	KeyFactors   []string               `json:"key_factors"`
}

type predictResponse struct {
	Prediction domain.Prediction `json:"prediction"`
	Record     domain.RiskRecord `json:"record"`
}

type queryRequest[T any] struct {
	Records []T             `json:"records"`
	Query   aggregate.Query `json:"query"`
}

type queryResponse[T any] struct {
	Records []T `json:"records"`
	Count   int `json:"count"`
}

type dashboardRequest struct {
	Risks  []domain.RiskRecord  `json:"risks"`
	Alerts []domain.AlertRecord `json:"alerts"`
}

type dashboardResponse struct {
	domain.DashboardSummary
	TopRisks  []domain.RiskRecord  `json:"top_risks"`
	TopAlerts []domain.AlertRecord `json:"top_alerts"`
}

type fireSummaryRequest struct {
	Fires []domain.HistoricalFireRecord `json:"fires"`
}

type fieldsResponse struct {
	Sort   []string `json:"sort"`
	Filter []string `json:"filter"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var reading domain.EnvironmentalReading
	if !s.decode(w, r, &reading) {
		return
	}
	if err := reading.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	a := domain.Score(reading)
	b := domain.Breakdown(reading)
	s.metrics.RiskLevels.WithLabelValues(a.Level.String()).Inc()
	sharedobs.WriteJSON(w, http.StatusOK, scoreResponse{
		Score:        a.Score,
		Level:        a.Level,
		Label:        a.Level.Label(),
		Color:        a.Level.Color(),
		MarkerRadius: domain.MarkerRadius(a.Score),
		Breakdown:    b,
		KeyFactors:   b.KeyFactors(),
	})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var in domain.PredictionInput
	if !s.decode(w, r, &in) {
		return
	}

	p, err := s.predictor.Predict(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.metrics.RiskLevels.WithLabelValues(p.Level.String()).Inc()
	sharedobs.WriteJSON(w, http.StatusOK, predictResponse{
		Prediction: p,
		Record:     domain.NewRiskRecord(in, p),
	})
}

func (s *Server) handleRiskQuery(w http.ResponseWriter, r *http.Request) {
	serveQuery(s, w, r, aggregate.Risks)
}

func (s *Server) handleAlertQuery(w http.ResponseWriter, r *http.Request) {
	serveQuery(s, w, r, aggregate.Alerts)
}

func (s *Server) handleFireQuery(w http.ResponseWriter, r *http.Request) {
	serveQuery(s, w, r, aggregate.Fires)
}

func serveQuery[T any](s *Server, w http.ResponseWriter, r *http.Request, schema *aggregate.Schema[T]) {
	var req queryRequest[T]
	if !s.decode(w, r, &req) {
		return
	}
	out, err := schema.FilterAndSort(req.Records, req.Query)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, queryResponse[T]{Records: out, Count: len(out)})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	var req dashboardRequest
	if !s.decode(w, r, &req) {
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, dashboardResponse{
		DashboardSummary: domain.SummarizeDashboard(req.Risks, req.Alerts),
		TopRisks:         aggregate.TopRisks(req.Risks),
		TopAlerts:        aggregate.TopAlerts(req.Alerts),
	})
}

func (s *Server) handleFireSummary(w http.ResponseWriter, r *http.Request) {
	var req fireSummaryRequest
	if !s.decode(w, r, &req) {
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, domain.SummarizeFires(req.Fires))
}

func (s *Server) handleFields(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, map[string]fieldsResponse{
		aggregate.Risks.Kind():  {Sort: aggregate.Risks.SortFields(), Filter: aggregate.Risks.FilterFields()},
		aggregate.Alerts.Kind(): {Sort: aggregate.Alerts.SortFields(), Filter: aggregate.Alerts.FilterFields()},
		aggregate.Fires.Kind():  {Sort: aggregate.Fires.SortFields(), Filter: aggregate.Fires.FilterFields()},
	})
}

// decode reads a JSON body into v, writing a 400 or 413 response and
// returning false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeProblem(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeProblem(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// writeError maps domain errors onto HTTP status codes. Input problems are
// the caller's fault; anything else came from the predictor.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrConfiguration):
		writeProblem(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		s.logger.Warn("request timed out", "error", err)
		writeProblem(w, http.StatusGatewayTimeout, "prediction timed out")
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send.
	default:
		s.logger.Error("prediction failed", "error", err)
		writeProblem(w, http.StatusBadGateway, "prediction failed")
	}
}

func writeProblem(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}
