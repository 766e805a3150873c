package domain

import (
	"math"
	"strconv"
)

// EnvironmentalReading is a single set of fire-weather observations.
type EnvironmentalReading struct {
	Temperature            float64 `json:"temperature" yaml:"temperature"`                           // °C
	WindSpeed              float64 `json:"wind_speed" yaml:"wind_speed"`                             // km/h
	Humidity               float64 `json:"humidity" yaml:"humidity"`                                 // relative humidity, %
	DaysSincePrecipitation int     `json:"days_since_precipitation" yaml:"days_since_precipitation"` // whole days
}

// Validate rejects readings the scorer cannot interpret: non-finite values,
// negative wind speed or precipitation days, and humidity outside [0,100].
func (r EnvironmentalReading) Validate() error {
	if !finite(r.Temperature) {
		return &ValidationError{Field: "temperature", Reason: "must be a finite number"}
	}
	if !finite(r.WindSpeed) {
		return &ValidationError{Field: "wind_speed", Reason: "must be a finite number"}
	}
	if r.WindSpeed < 0 {
		return &ValidationError{Field: "wind_speed", Reason: "must not be negative, got " + formatFloat(r.WindSpeed)}
	}
	if !finite(r.Humidity) {
		return &ValidationError{Field: "humidity", Reason: "must be a finite number"}
	}
	if r.Humidity < 0 || r.Humidity > 100 {
		return &ValidationError{Field: "humidity", Reason: "must be between 0 and 100, got " + formatFloat(r.Humidity)}
	}
	if r.DaysSincePrecipitation < 0 {
		return &ValidationError{Field: "days_since_precipitation", Reason: "must not be negative, got " + strconv.Itoa(r.DaysSincePrecipitation)}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
