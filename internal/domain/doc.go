// Package domain models wildfire risk: environmental readings, the
// deterministic risk scorer, alert and historical fire records, and the
// predictor interface shared with the external AI service.
//
// # Risk Score
//
// A reading scores by adding one increment per factor. Within a factor the
// breakpoints are checked from the most severe down and the first match wins:
//
//	Temperature (°C):        >30 +30 | >25 +20 | >20 +10 | else 0
//	Wind speed (km/h):       >25 +25 | >15 +15 | >10 +8  | else 0
//	Humidity (%):            <30 +25 | <50 +15 | <70 +5  | else 0
//	Days since rain:         ==0 +20 | <3  +10 | <7  +5  | else 0
//
// The sum is clamped to [0,100]. Operators can explain any score by reading
// off the four increments (see [Breakdown]). Score never decreases as
// temperature or wind speed rise and never increases as humidity rises. The
// precipitation increment peaks at a count of zero and shrinks as the count
// grows, so score is non-increasing in DaysSincePrecipitation.
//
// # Risk Level
//
// Levels follow from the score with strict thresholds:
//
//	>80 extreme | >60 high | >40 moderate | >20 low | else very_low
//
// [RiskLevel] and [Severity] are ranked enumerations. Their integer value is
// the rank used for sorting; their text form is the lowercase name used in
// JSON and YAML.
//
// # Validation
//
// [EnvironmentalReading.Validate] must be called before [Score]. Score has no
// error path: it assumes finite values, humidity in [0,100], and non-negative
// wind speed and day counts.
//
// # Predictions
//
// [RiskPredictor] is implemented by [RiskScorer] (the formula above) and by the
// AI prediction client in the aipredict adapter. The two are independent and
// are not expected to agree; [Prediction.Source] records which one answered.
package domain
