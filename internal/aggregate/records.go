package aggregate

import (
	"errors"
	"strings"
	"time"

	"github.com/couchcryptid/wildfire-risk-service/internal/domain"
)

var errInvalidStatus = errors.New("status must be active or inactive")

// Risks filters and sorts risk assessment records.
var Risks = newSchema[domain.RiskRecord]("risk").
	sortBy("risk_score", byValue(func(r domain.RiskRecord) int { return r.RiskScore })).
	sortBy("risk_level", byValue(func(r domain.RiskRecord) int { return r.RiskLevel.Rank() })).
	sortBy("location_name", byText(func(r domain.RiskRecord) string { return r.LocationName })).
	sortBy("temperature", byValue(func(r domain.RiskRecord) float64 { return r.Temperature })).
	sortBy("humidity", byValue(func(r domain.RiskRecord) float64 { return r.Humidity })).
	sortBy("wind_speed", byValue(func(r domain.RiskRecord) float64 { return r.WindSpeed })).
	sortBy("fire_weather_index", byValue(func(r domain.RiskRecord) float64 { return r.FireWeatherIndex })).
	sortBy("confidence_level", byValue(func(r domain.RiskRecord) float64 { return r.ConfidenceLevel })).
	sortBy("predicted_for_date", byTime(func(r domain.RiskRecord) time.Time { return r.PredictedForDate })).
	sortBy("created_date", byTime(func(r domain.RiskRecord) time.Time { return r.CreatedDate })).
	enum("risk_level", func(v string) (func(domain.RiskRecord) bool, error) {
		level, err := domain.ParseRiskLevel(v)
		if err != nil {
			return nil, err
		}
		return func(r domain.RiskRecord) bool { return r.RiskLevel == level }, nil
	}).
	text("location_name", func(r domain.RiskRecord) string { return r.LocationName })

// Alerts filters and sorts wildfire alerts. The "search" filter matches the
// title or the location name.
var Alerts = newSchema[domain.AlertRecord]("alert").
	sortBy("severity", byValue(func(a domain.AlertRecord) int { return a.Severity.Rank() })).
	sortBy("issued_date", byTime(func(a domain.AlertRecord) time.Time { return a.IssuedDate })).
	sortBy("expires_date", byTime(func(a domain.AlertRecord) time.Time { return a.ExpiresDate })).
	sortBy("title", byText(func(a domain.AlertRecord) string { return a.Title })).
	sortBy("location_name", byText(func(a domain.AlertRecord) string { return a.LocationName })).
	enum("severity", func(v string) (func(domain.AlertRecord) bool, error) {
		sev, err := domain.ParseSeverity(v)
		if err != nil {
			return nil, err
		}
		return func(a domain.AlertRecord) bool { return a.Severity == sev }, nil
	}).
	enum("status", func(v string) (func(domain.AlertRecord) bool, error) {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "active":
			return func(a domain.AlertRecord) bool { return a.IsActive }, nil
		case "inactive":
			return func(a domain.AlertRecord) bool { return !a.IsActive }, nil
		default:
			return nil, errInvalidStatus
		}
	}).
	text("title", func(a domain.AlertRecord) string { return a.Title }).
	text("location_name", func(a domain.AlertRecord) string { return a.LocationName }).
	text("search",
		func(a domain.AlertRecord) string { return a.Title },
		func(a domain.AlertRecord) string { return a.LocationName },
	)

// Fires filters and sorts historical fire records. Province and cause filters
// compare normalized values, so "BC" matches a record stored as
// "British Columbia".
var Fires = newSchema[domain.HistoricalFireRecord]("fire").
	sortBy("fire_name", byText(func(f domain.HistoricalFireRecord) string { return f.FireName })).
	sortBy("province", byText(func(f domain.HistoricalFireRecord) string { return f.Province })).
	sortBy("start_date", byTime(func(f domain.HistoricalFireRecord) time.Time { return f.StartDate })).
	sortBy("area_burned_hectares", byValue(func(f domain.HistoricalFireRecord) float64 { return f.AreaBurnedHectares })).
	sortBy("cause", byText(func(f domain.HistoricalFireRecord) string { return f.Cause })).
	enum("province", func(v string) (func(domain.HistoricalFireRecord) bool, error) {
		code, err := domain.ParseProvince(v)
		if err != nil {
			return nil, err
		}
		return func(f domain.HistoricalFireRecord) bool {
			got, err := domain.ParseProvince(f.Province)
			return err == nil && got == code
		}, nil
	}).
	enum("cause", func(v string) (func(domain.HistoricalFireRecord) bool, error) {
		cause, err := domain.ParseFireCause(v)
		if err != nil {
			return nil, err
		}
		return func(f domain.HistoricalFireRecord) bool {
			got, err := domain.ParseFireCause(f.Cause)
			return err == nil && got == cause
		}, nil
	}).
	text("fire_name", func(f domain.HistoricalFireRecord) string { return f.FireName })

// provinceKey orders provinces by their normalized code so "AB" and "Alberta"
// sort together. Unrecognized values keep their raw text.
func provinceKey(f domain.HistoricalFireRecord) string {
	if code, err := domain.ParseProvince(f.Province); err == nil {
		return code
	}
	return f.Province
}

func causeKey(f domain.HistoricalFireRecord) string {
	if cause, err := domain.ParseFireCause(f.Cause); err == nil {
		return cause
	}
	return f.Cause
}

var (
	topAlertsQuery = Query{Sort: Sort{Field: "severity", Direction: Descending}, Limit: 5}
	topRisksQuery  = Query{Sort: Sort{Field: "risk_score", Direction: Descending}, Limit: 8}
)

// TopAlerts returns the five most severe alerts, most severe first.
func TopAlerts(alerts []domain.AlertRecord) []domain.AlertRecord {
	out, _ := Alerts.FilterAndSort(alerts, topAlertsQuery) // fixed query, no error path
	return out
}

// TopRisks returns the eight highest-scoring locations, highest first.
func TopRisks(risks []domain.RiskRecord) []domain.RiskRecord {
	out, _ := Risks.FilterAndSort(risks, topRisksQuery) // fixed query, no error path
	return out
}
