package domain

import (
	"fmt"
	"strings"
)

// RiskLevel is the five-step wildfire danger scale. The numeric value is the
// severity rank, so levels compare with < and >. The zero value is unknown.
type RiskLevel int

const (
	RiskLevelUnknown RiskLevel = iota
	RiskLevelVeryLow
	RiskLevelLow
	RiskLevelModerate
	RiskLevelHigh
	RiskLevelExtreme
)

var riskLevelNames = [...]string{
	RiskLevelUnknown:  "",
	RiskLevelVeryLow:  "very_low",
	RiskLevelLow:      "low",
	RiskLevelModerate: "moderate",
	RiskLevelHigh:     "high",
	RiskLevelExtreme:  "extreme",
}

// riskLevelColors mirrors the map and legend palette.
var riskLevelColors = [...]string{
	RiskLevelUnknown:  "#808080",
	RiskLevelVeryLow:  "#059669",
	RiskLevelLow:      "#22c55e",
	RiskLevelModerate: "#f97316",
	RiskLevelHigh:     "#ef4444",
	RiskLevelExtreme:  "#dc2626",
}

// RiskLevels lists the known levels in ascending severity.
func RiskLevels() []RiskLevel {
	return []RiskLevel{RiskLevelVeryLow, RiskLevelLow, RiskLevelModerate, RiskLevelHigh, RiskLevelExtreme}
}

// ParseRiskLevel converts a level name such as "very_low" into a RiskLevel.
// Matching ignores case and surrounding whitespace.
func ParseRiskLevel(s string) (RiskLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, l := range RiskLevels() {
		if riskLevelNames[l] == s {
			return l, nil
		}
	}
	return RiskLevelUnknown, fmt.Errorf("invalid risk level: %q", s)
}

// LevelFromScore maps a 0-100 score onto the scale:
// >80 extreme, >60 high, >40 moderate, >20 low, otherwise very_low.
func LevelFromScore(score int) RiskLevel {
	switch {
	case score > 80:
		return RiskLevelExtreme
	case score > 60:
		return RiskLevelHigh
	case score > 40:
		return RiskLevelModerate
	case score > 20:
		return RiskLevelLow
	default:
		return RiskLevelVeryLow
	}
}

func (l RiskLevel) valid() bool {
	return l >= RiskLevelVeryLow && l <= RiskLevelExtreme
}

// Rank returns the severity rank, 1 (very_low) through 5 (extreme), or 0 if unknown.
func (l RiskLevel) Rank() int {
	if !l.valid() {
		return 0
	}
	return int(l)
}

func (l RiskLevel) String() string {
	if !l.valid() {
		return "unknown"
	}
	return riskLevelNames[l]
}

// Label is the human-readable name, e.g. "very low".
func (l RiskLevel) Label() string {
	return strings.ReplaceAll(l.String(), "_", " ")
}

// Color is the display color used for map markers and badges.
func (l RiskLevel) Color() string {
	if !l.valid() {
		return riskLevelColors[RiskLevelUnknown]
	}
	return riskLevelColors[l]
}

// MarshalText encodes the level as its name. Unknown levels encode as "".
func (l RiskLevel) MarshalText() ([]byte, error) {
	if !l.valid() {
		return []byte{}, nil
	}
	return []byte(riskLevelNames[l]), nil
}

// UnmarshalText accepts a level name. An empty value decodes to unknown.
func (l *RiskLevel) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*l = RiskLevelUnknown
		return nil
	}
	parsed, err := ParseRiskLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
