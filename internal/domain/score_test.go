package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_Examples(t *testing.T) {
	tests := []struct {
		name    string
		reading EnvironmentalReading
		score   int
		level   RiskLevel
	}{
		{
			name:    "hot dry windy day",
			reading: EnvironmentalReading{Temperature: 35, WindSpeed: 30, Humidity: 20, DaysSincePrecipitation: 0},
			score:   100,
			level:   RiskLevelExtreme,
		},
		{
			name:    "cool humid calm day",
			reading: EnvironmentalReading{Temperature: 15, WindSpeed: 5, Humidity: 80, DaysSincePrecipitation: 10},
			score:   0,
			level:   RiskLevelVeryLow,
		},
		{
			name:    "scenario defaults",
			reading: EnvironmentalReading{Temperature: 25, WindSpeed: 15, Humidity: 40, DaysSincePrecipitation: 0},
			score:   10 + 8 + 15 + 20,
			level:   RiskLevelModerate,
		},
		{
			name:    "breakpoints are exclusive",
			reading: EnvironmentalReading{Temperature: 30, WindSpeed: 25, Humidity: 30, DaysSincePrecipitation: 3},
			score:   20 + 15 + 15 + 5,
			level:   RiskLevelModerate,
		},
		{
			name:    "one week without rain",
			reading: EnvironmentalReading{Temperature: 21, WindSpeed: 11, Humidity: 69, DaysSincePrecipitation: 7},
			score:   10 + 8 + 5,
			level:   RiskLevelLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.reading)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.level, got.Level)
		})
	}
}

func TestBreakdown_Increments(t *testing.T) {
	tests := []struct {
		name     string
		reading  EnvironmentalReading
		expected FactorBreakdown
	}{
		{"all zero", EnvironmentalReading{Temperature: 20, WindSpeed: 10, Humidity: 70, DaysSincePrecipitation: 7}, FactorBreakdown{}},
		{"lowest bands", EnvironmentalReading{Temperature: 20.1, WindSpeed: 10.1, Humidity: 69.9, DaysSincePrecipitation: 6}, FactorBreakdown{10, 8, 5, 5}},
		{"middle bands", EnvironmentalReading{Temperature: 25.1, WindSpeed: 15.1, Humidity: 49.9, DaysSincePrecipitation: 2}, FactorBreakdown{20, 15, 15, 10}},
		{"top bands", EnvironmentalReading{Temperature: 30.1, WindSpeed: 25.1, Humidity: 29.9, DaysSincePrecipitation: 0}, FactorBreakdown{30, 25, 25, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Breakdown(tt.reading)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.expected.Total(), Score(tt.reading).Score)
		})
	}
}

func TestScore_Bounded(t *testing.T) {
	for _, temp := range []float64{-40, 0, 20, 25, 30, 45} {
		for _, wind := range []float64{0, 10, 15, 25, 120} {
			for _, hum := range []float64{0, 29, 30, 50, 70, 100} {
				for _, days := range []int{0, 1, 3, 7, 365} {
					got := Score(EnvironmentalReading{Temperature: temp, WindSpeed: wind, Humidity: hum, DaysSincePrecipitation: days})
					assert.GreaterOrEqual(t, got.Score, 0)
					assert.LessOrEqual(t, got.Score, 100)
					assert.Equal(t, LevelFromScore(got.Score), got.Level)
				}
			}
		}
	}
}

func TestScore_Monotonic(t *testing.T) {
	base := EnvironmentalReading{Temperature: 22, WindSpeed: 12, Humidity: 45, DaysSincePrecipitation: 4}

	t.Run("non-decreasing in temperature", func(t *testing.T) {
		prev := -1
		for temp := -10.0; temp <= 45; temp += 0.5 {
			r := base
			r.Temperature = temp
			s := Score(r).Score
			assert.GreaterOrEqual(t, s, prev, "temperature %v", temp)
			prev = s
		}
	})

	t.Run("non-decreasing in wind speed", func(t *testing.T) {
		prev := -1
		for wind := 0.0; wind <= 60; wind += 0.5 {
			r := base
			r.WindSpeed = wind
			s := Score(r).Score
			assert.GreaterOrEqual(t, s, prev, "wind %v", wind)
			prev = s
		}
	})

	t.Run("non-increasing in humidity", func(t *testing.T) {
		prev := 101
		for hum := 0.0; hum <= 100; hum += 0.5 {
			r := base
			r.Humidity = hum
			s := Score(r).Score
			assert.LessOrEqual(t, s, prev, "humidity %v", hum)
			prev = s
		}
	})

	t.Run("non-increasing in days since precipitation", func(t *testing.T) {
		prev := 101
		for days := 0; days <= 30; days++ {
			r := base
			r.DaysSincePrecipitation = days
			s := Score(r).Score
			assert.LessOrEqual(t, s, prev, "days %d", days)
			prev = s
		}
	})
}

func TestLevelFromScore_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		level RiskLevel
	}{
		{100, RiskLevelExtreme},
		{81, RiskLevelExtreme},
		{80, RiskLevelHigh},
		{61, RiskLevelHigh},
		{60, RiskLevelModerate},
		{41, RiskLevelModerate},
		{40, RiskLevelLow},
		{21, RiskLevelLow},
		{20, RiskLevelVeryLow},
		{0, RiskLevelVeryLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.level, LevelFromScore(tt.score), "score %d", tt.score)
	}
}

func TestFactorBreakdown_KeyFactors(t *testing.T) {
	b := Breakdown(EnvironmentalReading{Temperature: 31, WindSpeed: 5, Humidity: 45, DaysSincePrecipitation: 2})
	assert.Equal(t, []string{
		"temperature above 30°C",
		"humidity below 50%",
		"no precipitation in the last 3 days",
	}, b.KeyFactors())

	assert.Empty(t, FactorBreakdown{}.KeyFactors())
}
