package domain

import (
	"fmt"
	"strings"
)

// Province codes paired with their full names. Historical records use either form.
var provinces = [][2]string{
	{"AB", "Alberta"},
	{"BC", "British Columbia"},
	{"MB", "Manitoba"},
	{"NB", "New Brunswick"},
	{"NL", "Newfoundland and Labrador"},
	{"NS", "Nova Scotia"},
	{"NT", "Northwest Territories"},
	{"NU", "Nunavut"},
	{"ON", "Ontario"},
	{"PE", "Prince Edward Island"},
	{"QC", "Quebec"},
	{"SK", "Saskatchewan"},
	{"YT", "Yukon"},
}

// Fire causes as recorded by the provincial agencies.
const (
	CauseLightning = "lightning"
	CauseHuman     = "human"
	CauseUnknown   = "unknown"
)

// ParseProvince normalizes a Canadian province or territory, given by code
// ("BC") or name ("British Columbia"), to its two-letter code.
func ParseProvince(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, p := range provinces {
		if strings.EqualFold(s, p[0]) || strings.EqualFold(s, p[1]) {
			return p[0], nil
		}
	}
	return "", fmt.Errorf("invalid province: %q", s)
}

// ParseFireCause normalizes a fire cause name.
func ParseFireCause(s string) (string, error) {
	switch c := strings.ToLower(strings.TrimSpace(s)); c {
	case CauseLightning, CauseHuman, CauseUnknown:
		return c, nil
	default:
		return "", fmt.Errorf("invalid fire cause: %q", s)
	}
}
