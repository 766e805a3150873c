package domain

// Assessment is a bounded risk score and the level derived from it.
type Assessment struct {
	Score int       `json:"score"`
	Level RiskLevel `json:"level"`
}

// FactorBreakdown holds the increment each factor contributed to a score.
type FactorBreakdown struct {
	Temperature   int `json:"temperature"`
	WindSpeed     int `json:"wind_speed"`
	Humidity      int `json:"humidity"`
	Precipitation int `json:"precipitation"`
}

// Total is the unclamped sum of all increments.
func (b FactorBreakdown) Total() int {
	return b.Temperature + b.WindSpeed + b.Humidity + b.Precipitation
}

// KeyFactors describes the factors that raised the score, strongest band first
// within each factor, in a fixed factor order.
func (b FactorBreakdown) KeyFactors() []string {
	var factors []string
	switch b.Temperature {
	case 30:
		factors = append(factors, "temperature above 30°C")
	case 20:
		factors = append(factors, "temperature above 25°C")
	case 10:
		factors = append(factors, "temperature above 20°C")
	}
	switch b.WindSpeed {
	case 25:
		factors = append(factors, "wind speed above 25 km/h")
	case 15:
		factors = append(factors, "wind speed above 15 km/h")
	case 8:
		factors = append(factors, "wind speed above 10 km/h")
	}
	switch b.Humidity {
	case 25:
		factors = append(factors, "humidity below 30%")
	case 15:
		factors = append(factors, "humidity below 50%")
	case 5:
		factors = append(factors, "humidity below 70%")
	}
	switch b.Precipitation {
	case 20:
		factors = append(factors, "no precipitation today")
	case 10:
		factors = append(factors, "no precipitation in the last 3 days")
	case 5:
		factors = append(factors, "no precipitation in the last 7 days")
	}
	return factors
}

// Breakdown computes the per-factor increments for a reading. Within a factor
// the first matching breakpoint wins.
func Breakdown(r EnvironmentalReading) FactorBreakdown {
	return FactorBreakdown{
		Temperature:   temperatureIncrement(r.Temperature),
		WindSpeed:     windIncrement(r.WindSpeed),
		Humidity:      humidityIncrement(r.Humidity),
		Precipitation: precipitationIncrement(r.DaysSincePrecipitation),
	}
}

// Score converts a reading into an Assessment. It assumes the reading passed
// Validate and never fails; the summed increments are clamped to [0,100].
func Score(r EnvironmentalReading) Assessment {
	score := clamp(Breakdown(r).Total(), 0, 100)
	return Assessment{Score: score, Level: LevelFromScore(score)}
}

func temperatureIncrement(celsius float64) int {
	switch {
	case celsius > 30:
		return 30
	case celsius > 25:
		return 20
	case celsius > 20:
		return 10
	default:
		return 0
	}
}

func windIncrement(kmh float64) int {
	switch {
	case kmh > 25:
		return 25
	case kmh > 15:
		return 15
	case kmh > 10:
		return 8
	default:
		return 0
	}
}

func humidityIncrement(percent float64) int {
	switch {
	case percent < 30:
		return 25
	case percent < 50:
		return 15
	case percent < 70:
		return 5
	default:
		return 0
	}
}

func precipitationIncrement(days int) int {
	switch {
	case days == 0:
		return 20
	case days < 3:
		return 10
	case days < 7:
		return 5
	default:
		return 0
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
