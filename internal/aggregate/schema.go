package aggregate

import (
	"cmp"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/wildfire-risk-service/internal/domain"
)

// Schema describes which fields of a record kind can be sorted and filtered.
// Schemas are built once at package init and are read-only afterwards, so
// FilterAndSort is safe for concurrent use.
type Schema[T any] struct {
	kind  string
	sorts map[string]func(a, b T) int
	enums map[string]func(value string) (func(T) bool, error)
	texts map[string][]func(T) string
}

func newSchema[T any](kind string) *Schema[T] {
	return &Schema[T]{
		kind:  kind,
		sorts: make(map[string]func(a, b T) int),
		enums: make(map[string]func(string) (func(T) bool, error)),
		texts: make(map[string][]func(T) string),
	}
}

func (s *Schema[T]) sortBy(field string, compare func(a, b T) int) *Schema[T] {
	s.sorts[field] = compare
	return s
}

// enum registers an exact-match filter. match parses the filter value and
// returns the predicate, or an error if the value is not a member.
func (s *Schema[T]) enum(field string, match func(value string) (func(T) bool, error)) *Schema[T] {
	s.enums[field] = match
	return s
}

// text registers a substring filter over one or more fields; a record passes
// if any of them contains the value.
func (s *Schema[T]) text(field string, values ...func(T) string) *Schema[T] {
	s.texts[field] = values
	return s
}

// Kind names the record kind, e.g. "alert".
func (s *Schema[T]) Kind() string { return s.kind }

// SortFields lists the sortable fields in lexical order.
func (s *Schema[T]) SortFields() []string {
	return slices.Sorted(maps.Keys(s.sorts))
}

// FilterFields lists the filterable fields in lexical order.
func (s *Schema[T]) FilterFields() []string {
	fields := slices.Collect(maps.Keys(s.enums))
	fields = append(fields, slices.Collect(maps.Keys(s.texts))...)
	slices.Sort(fields)
	return fields
}

// FilterAndSort returns the records passing every filter, stably ordered by
// the sort field and truncated to the limit. The input is never modified.
// Unknown fields or enumeration values yield a *domain.ConfigurationError and
// no records.
func (s *Schema[T]) FilterAndSort(records []T, q Query) ([]T, error) {
	keep, err := s.predicate(q.Filters)
	if err != nil {
		return nil, err
	}
	compare, err := s.comparator(q.Sort)
	if err != nil {
		return nil, err
	}
	if q.Limit < 0 {
		return nil, &domain.ConfigurationError{Field: "limit", Value: strconv.Itoa(q.Limit), Reason: "must not be negative"}
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	if compare != nil {
		slices.SortStableFunc(out, compare)
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = slices.Clip(out[:q.Limit])
	}
	return out, nil
}

func (s *Schema[T]) predicate(filters []Filter) (func(T) bool, error) {
	preds := make([]func(T) bool, 0, len(filters))
	for _, f := range filters {
		if match, ok := s.enums[f.Field]; ok {
			if strings.EqualFold(strings.TrimSpace(f.Value), Wildcard) {
				continue
			}
			p, err := match(f.Value)
			if err != nil {
				return nil, &domain.ConfigurationError{Field: f.Field, Value: f.Value, Reason: "unknown " + s.kind + " filter value"}
			}
			preds = append(preds, p)
			continue
		}
		if getters, ok := s.texts[f.Field]; ok {
			if f.Value == "" {
				continue
			}
			preds = append(preds, containsAny(getters, strings.ToLower(f.Value)))
			continue
		}
		return nil, &domain.ConfigurationError{Field: "filter", Value: f.Field, Reason: "unknown " + s.kind + " filter field"}
	}

	return func(r T) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}, nil
}

func (s *Schema[T]) comparator(sort Sort) (func(a, b T) int, error) {
	dir, err := ParseDirection(string(sort.Direction))
	if err != nil {
		return nil, err
	}
	if sort.Field == "" {
		return nil, nil
	}

	compare, ok := s.sorts[sort.Field]
	if !ok {
		return nil, &domain.ConfigurationError{Field: "sort", Value: sort.Field, Reason: "unknown " + s.kind + " sort field"}
	}
	if dir == Descending {
		return func(a, b T) int { return compare(b, a) }, nil
	}
	return compare, nil
}

func containsAny[T any](getters []func(T) string, needle string) func(T) bool {
	return func(r T) bool {
		for _, get := range getters {
			if strings.Contains(strings.ToLower(get(r)), needle) {
				return true
			}
		}
		return false
	}
}

func byValue[T any, V cmp.Ordered](get func(T) V) func(a, b T) int {
	return func(a, b T) int { return cmp.Compare(get(a), get(b)) }
}

func byText[T any](get func(T) string) func(a, b T) int {
	return func(a, b T) int { return strings.Compare(strings.ToLower(get(a)), strings.ToLower(get(b))) }
}

func byTime[T any](get func(T) time.Time) func(a, b T) int {
	return func(a, b T) int { return get(a).Compare(get(b)) }
}
