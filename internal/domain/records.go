package domain

import (
	"strings"
	"time"
)

// RiskRecord is a stored risk assessment for one location.
type RiskRecord struct {
	ID                string    `json:"id" yaml:"id"`
	LocationName      string    `json:"location_name" yaml:"location_name"`
	Latitude          float64   `json:"latitude" yaml:"latitude"`
	Longitude         float64   `json:"longitude" yaml:"longitude"`
	RiskLevel         RiskLevel `json:"risk_level" yaml:"risk_level"`
	RiskScore         int       `json:"risk_score" yaml:"risk_score"`
	Temperature       float64   `json:"temperature" yaml:"temperature"`
	Humidity          float64   `json:"humidity" yaml:"humidity"`
	WindSpeed         float64   `json:"wind_speed" yaml:"wind_speed"`
	Precipitation     float64   `json:"precipitation" yaml:"precipitation"`
	VegetationDryness string    `json:"vegetation_dryness,omitempty" yaml:"vegetation_dryness,omitempty"`
	FireWeatherIndex  float64   `json:"fire_weather_index,omitempty" yaml:"fire_weather_index,omitempty"`
	ConfidenceLevel   float64   `json:"confidence_level,omitempty" yaml:"confidence_level,omitempty"`
	PredictedForDate  time.Time `json:"predicted_for_date" yaml:"predicted_for_date"`
	CreatedDate       time.Time `json:"created_date" yaml:"created_date"`
}

// AlertRecord is an official warning issued for a region.
type AlertRecord struct {
	ID           string    `json:"id" yaml:"id"`
	Title        string    `json:"title" yaml:"title"`
	Message      string    `json:"message" yaml:"message"`
	Severity     Severity  `json:"severity" yaml:"severity"`
	AlertType    string    `json:"alert_type,omitempty" yaml:"alert_type,omitempty"`
	LocationName string    `json:"location_name" yaml:"location_name"`
	IssuedDate   time.Time `json:"issued_date" yaml:"issued_date"`
	ExpiresDate  time.Time `json:"expires_date,omitzero" yaml:"expires_date,omitempty"`
	IsActive     bool      `json:"is_active" yaml:"is_active"`
}

// HistoricalFireRecord is a past wildfire event.
type HistoricalFireRecord struct {
	ID                 string    `json:"id" yaml:"id"`
	FireName           string    `json:"fire_name" yaml:"fire_name"`
	Province           string    `json:"province" yaml:"province"`
	StartDate          time.Time `json:"start_date" yaml:"start_date"`
	EndDate            time.Time `json:"end_date,omitzero" yaml:"end_date,omitempty"`
	AreaBurnedHectares float64   `json:"area_burned_hectares" yaml:"area_burned_hectares"`
	Cause              string    `json:"cause" yaml:"cause"`
}

// NewRiskRecord builds the record stored for a prediction. The prediction is
// dated to the UTC day it was generated.
func NewRiskRecord(in PredictionInput, p Prediction) RiskRecord {
	rec := RiskRecord{
		LocationName:      in.Location,
		Latitude:          in.Latitude,
		Longitude:         in.Longitude,
		RiskLevel:         p.Level,
		RiskScore:         p.Score,
		Temperature:       in.Reading.Temperature,
		Humidity:          in.Reading.Humidity,
		WindSpeed:         in.Reading.WindSpeed,
		Precipitation:     in.PrecipitationMM,
		VegetationDryness: vegetationDryness(in.VegetationType),
		ConfidenceLevel:   p.ConfidenceLevel,
		PredictedForDate:  p.GeneratedAt.UTC().Truncate(24 * time.Hour),
		CreatedDate:       p.GeneratedAt.UTC(),
	}
	if p.FireWeatherIndex != nil {
		rec.FireWeatherIndex = *p.FireWeatherIndex
	}
	return rec
}

func vegetationDryness(vegetationType string) string {
	if strings.EqualFold(vegetationType, "dry_forest") {
		return "very_dry"
	}
	return "moderate"
}
