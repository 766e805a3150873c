package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ParseRawEvent deserializes a station message and checks that every reading
// field is present. The Kafka timestamp stands in for a missing observed_at.
func ParseRawEvent(raw RawEvent) (ReadingMessage, error) {
	var msg ReadingMessage
	if err := json.Unmarshal(raw.Value, &msg); err != nil {
		return ReadingMessage{}, fmt.Errorf("parse raw event: %w", err)
	}

	switch {
	case msg.Temperature == nil:
		return ReadingMessage{}, &ValidationError{Field: "temperature", Reason: "is required"}
	case msg.WindSpeed == nil:
		return ReadingMessage{}, &ValidationError{Field: "wind_speed", Reason: "is required"}
	case msg.Humidity == nil:
		return ReadingMessage{}, &ValidationError{Field: "humidity", Reason: "is required"}
	case msg.DaysSincePrecipitation == nil:
		return ReadingMessage{}, &ValidationError{Field: "days_since_precipitation", Reason: "is required"}
	}

	msg.LocationName = strings.TrimSpace(msg.LocationName)
	if msg.ObservedAt.IsZero() {
		msg.ObservedAt = raw.Timestamp
	}
	msg.ObservedAt = msg.ObservedAt.UTC()
	return msg, nil
}

// Reading extracts the scorer input from a parsed message. Call only after
// ParseRawEvent succeeded.
func (m ReadingMessage) Reading() EnvironmentalReading {
	return EnvironmentalReading{
		Temperature:            *m.Temperature,
		WindSpeed:              *m.WindSpeed,
		Humidity:               *m.Humidity,
		DaysSincePrecipitation: *m.DaysSincePrecipitation,
	}
}

// AssessReading validates a parsed message, scores it, and builds the risk
// record published downstream.
func AssessReading(msg ReadingMessage) (RiskRecord, error) {
	reading := msg.Reading()
	if err := reading.Validate(); err != nil {
		return RiskRecord{}, err
	}
	if msg.LocationName == "" {
		return RiskRecord{}, &ValidationError{Field: "location_name", Reason: "is required"}
	}

	assessment := Score(reading)
	now := clock.Now().UTC()
	rec := RiskRecord{
		ID:               generateID(msg.StationID, msg.LocationName, msg.Latitude, msg.Longitude, msg.ObservedAt),
		LocationName:     msg.LocationName,
		Latitude:         msg.Latitude,
		Longitude:        msg.Longitude,
		RiskLevel:        assessment.Level,
		RiskScore:        assessment.Score,
		Temperature:      reading.Temperature,
		Humidity:         reading.Humidity,
		WindSpeed:        reading.WindSpeed,
		Precipitation:    msg.PrecipitationMM,
		ConfidenceLevel:  100,
		PredictedForDate: deriveDay(msg.ObservedAt),
		CreatedDate:      now,
	}
	if msg.FireWeatherIndex != nil {
		rec.FireWeatherIndex = *msg.FireWeatherIndex
	}
	return rec, nil
}

// SerializeRiskRecord encodes a record for the sink topic, keyed by its ID.
func SerializeRiskRecord(rec RiskRecord) (OutputEvent, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize risk record: %w", err)
	}
	return OutputEvent{
		Key:   []byte(rec.ID),
		Value: data,
		Headers: map[string]string{
			"risk_level":   rec.RiskLevel.String(),
			"processed_at": rec.CreatedDate.Format(time.RFC3339),
		},
	}, nil
}

// generateID produces a deterministic ID so replaying the same reading yields
// the same record key.
func generateID(stationID, location string, lat, lon float64, observedAt time.Time) string {
	input := fmt.Sprintf("%s|%s|%.4f|%.4f|%s", stationID, strings.ToLower(location), lat, lon, observedAt.UTC().Format(time.RFC3339))
	hash := sha256.Sum256([]byte(input))
	return "risk-" + hex.EncodeToString(hash[:8])
}

// deriveDay truncates a timestamp to its UTC day. Zero stays zero.
func deriveDay(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC().Truncate(24 * time.Hour)
}
