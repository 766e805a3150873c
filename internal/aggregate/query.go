package aggregate

import (
	"strings"

	"github.com/couchcryptid/wildfire-risk-service/internal/domain"
)

// Direction is the order of a sort.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection accepts "asc" or "desc" in any case. Empty means ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return Ascending, nil
	case "desc":
		return Descending, nil
	default:
		return "", &domain.ConfigurationError{Field: "direction", Value: s, Reason: "must be asc or desc"}
	}
}

// Wildcard matches every value of an enumerated field.
const Wildcard = "all"

// Filter is one predicate: an exact enumeration match (or Wildcard) or a
// case-insensitive substring match, depending on the field.
type Filter struct {
	Field string `json:"field" yaml:"field"`
	Value string `json:"value" yaml:"value"`
}

// Sort selects a single field and direction. An empty Field keeps input order.
type Sort struct {
	Field     string    `json:"field" yaml:"field"`
	Direction Direction `json:"direction" yaml:"direction"`
}

// Query is the full set of filter, sort and truncation criteria.
type Query struct {
	Filters []Filter `json:"filters,omitempty" yaml:"filters,omitempty"`
	Sort    Sort     `json:"sort" yaml:"sort"`
	Limit   int      `json:"limit,omitempty" yaml:"limit,omitempty"` // 0 means no limit
}

// SortState tracks the active sort column of a table.
type SortState struct {
	Field     string
	Direction Direction
}

// Toggle selects field. Selecting the active field flips its direction;
// selecting a different field starts ascending.
func (s SortState) Toggle(field string) SortState {
	if s.Field == field {
		if s.Direction == Ascending {
			return SortState{Field: field, Direction: Descending}
		}
		return SortState{Field: field, Direction: Ascending}
	}
	return SortState{Field: field, Direction: Ascending}
}

// Sort converts the state into a query sort.
func (s SortState) Sort() Sort {
	return Sort{Field: s.Field, Direction: s.Direction}
}
