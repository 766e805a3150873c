package domain

import (
	"math"
	"slices"
)

// DashboardSummary is the headline figures shown above the risk overview.
type DashboardSummary struct {
	HighestRisk       *RiskRecord        `json:"highest_risk,omitempty"`
	AverageRiskScore  int                `json:"average_risk_score"`
	MonitoredZones    int                `json:"monitored_zones"`
	UrgentAlerts      int                `json:"urgent_alerts"`
	AverageConditions *AverageConditions `json:"average_conditions,omitempty"`
}

// AverageConditions is the rounded mean of the weather fields across risk records.
type AverageConditions struct {
	Temperature int `json:"temperature"`
	Humidity    int `json:"humidity"`
	WindSpeed   int `json:"wind_speed"`
}

// FireSummary aggregates a set of historical fires.
type FireSummary struct {
	TotalFires      int      `json:"total_fires"`
	TotalAreaHa     float64  `json:"total_area_ha"`
	AverageAreaHa   float64  `json:"average_area_ha"`
	Provinces       []string `json:"provinces"`
	Causes          []string `json:"causes"`
	LargestFireName string   `json:"largest_fire_name,omitempty"`
}

// SummarizeDashboard computes dashboard figures from risk records and alerts.
// Ties for the highest score keep the earliest record.
func SummarizeDashboard(risks []RiskRecord, alerts []AlertRecord) DashboardSummary {
	s := DashboardSummary{MonitoredZones: len(risks)}

	for _, a := range alerts {
		if a.Severity.Urgent() {
			s.UrgentAlerts++
		}
	}

	if len(risks) == 0 {
		return s
	}

	var scoreSum int
	var temp, humidity, wind float64
	highest := 0
	for i, r := range risks {
		scoreSum += r.RiskScore
		temp += r.Temperature
		humidity += r.Humidity
		wind += r.WindSpeed
		if r.RiskScore > risks[highest].RiskScore {
			highest = i
		}
	}

	n := float64(len(risks))
	top := risks[highest]
	s.HighestRisk = &top
	s.AverageRiskScore = roundInt(float64(scoreSum) / n)
	s.AverageConditions = &AverageConditions{
		Temperature: roundInt(temp / n),
		Humidity:    roundInt(humidity / n),
		WindSpeed:   roundInt(wind / n),
	}
	return s
}

// SummarizeFires computes totals and the distinct province codes and causes,
// sorted, for building filter options. Values are normalized so "AB" and
// "Alberta" yield one option; values that do not parse are left out.
func SummarizeFires(fires []HistoricalFireRecord) FireSummary {
	s := FireSummary{
		TotalFires: len(fires),
		Provinces:  []string{},
		Causes:     []string{},
	}
	if len(fires) == 0 {
		return s
	}

	largest := 0
	for i, f := range fires {
		s.TotalAreaHa += f.AreaBurnedHectares
		if f.AreaBurnedHectares > fires[largest].AreaBurnedHectares {
			largest = i
		}
		if code, err := ParseProvince(f.Province); err == nil && !slices.Contains(s.Provinces, code) {
			s.Provinces = append(s.Provinces, code)
		}
		if cause, err := ParseFireCause(f.Cause); err == nil && !slices.Contains(s.Causes, cause) {
			s.Causes = append(s.Causes, cause)
		}
	}
	slices.Sort(s.Provinces)
	slices.Sort(s.Causes)
	s.AverageAreaHa = s.TotalAreaHa / float64(len(fires))
	s.LargestFireName = fires[largest].FireName
	return s
}

// MarkerRadius is the map circle radius in metres for a risk score:
// 2 km at zero, growing 300 m per point up to 32 km.
func MarkerRadius(score int) int {
	if score <= 0 {
		return 2000
	}
	return 2000 + min(score, 100)*300
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
