package domain

import (
	"context"
	"time"
)

// ReadingMessage is the JSON payload published by weather stations to the
// source topic.
type ReadingMessage struct {
	StationID    string    `json:"station_id"`
	LocationName string    `json:"location_name"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	ObservedAt   time.Time `json:"observed_at"`

	Temperature            *float64 `json:"temperature"`
	WindSpeed              *float64 `json:"wind_speed"`
	Humidity               *float64 `json:"humidity"`
	DaysSincePrecipitation *int     `json:"days_since_precipitation"`
	PrecipitationMM        float64  `json:"precipitation_mm,omitempty"`
	FireWeatherIndex       *float64 `json:"fire_weather_index,omitempty"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
