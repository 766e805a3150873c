package domain

import (
	"fmt"
	"strings"
)

// Severity is the urgency of an alert. The numeric value is the rank:
// info(1) < warning(2) < critical(3) < emergency(4). The zero value is unknown.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityCritical
	SeverityEmergency
)

var severityNames = [...]string{
	SeverityUnknown:   "",
	SeverityInfo:      "info",
	SeverityWarning:   "warning",
	SeverityCritical:  "critical",
	SeverityEmergency: "emergency",
}

// Severities lists the known severities in ascending rank.
func Severities() []Severity {
	return []Severity{SeverityInfo, SeverityWarning, SeverityCritical, SeverityEmergency}
}

// ParseSeverity converts a severity name into a Severity, ignoring case.
func ParseSeverity(s string) (Severity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, sev := range Severities() {
		if severityNames[sev] == s {
			return sev, nil
		}
	}
	return SeverityUnknown, fmt.Errorf("invalid severity: %q", s)
}

func (s Severity) valid() bool {
	return s >= SeverityInfo && s <= SeverityEmergency
}

// Rank returns 1 (info) through 4 (emergency), or 0 if unknown.
func (s Severity) Rank() int {
	if !s.valid() {
		return 0
	}
	return int(s)
}

// Urgent reports whether the alert needs immediate attention (critical or emergency).
func (s Severity) Urgent() bool {
	return s >= SeverityCritical && s.valid()
}

func (s Severity) String() string {
	if !s.valid() {
		return "unknown"
	}
	return severityNames[s]
}

func (s Severity) MarshalText() ([]byte, error) {
	if !s.valid() {
		return []byte{}, nil
	}
	return []byte(severityNames[s]), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = SeverityUnknown
		return nil
	}
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
