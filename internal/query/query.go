// Package query is the shared filter -> sort -> paginate pipeline behind
// every list screen. It operates on an in-memory snapshot and never
// mutates its input; the stage order is fixed because reordering changes
// semantics (sorting after pagination would order only one page).
package query

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Filter is a conjunction of independently optional predicates. A zero
// predicate means "match all", never "match none".
type Filter struct {
	// Text is matched case-insensitively as a substring against the
	// schema's text fields (any field hit keeps the item).
	Text string
	// From/To bound the schema's date field inclusively.
	From *time.Time
	To   *time.Time
	// StatusGroup names a set of concrete statuses in the schema's group
	// table (e.g. "progress" -> {assigned, in_progress}).
	StatusGroup string
}

type Sort struct {
	Field     string
	Direction Direction
}

type Page struct {
	Page     int
	PageSize int
}

// Error reports malformed parameters. It is returned before any scan.
type Error struct {
	Param  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid query parameter %s: %s", e.Param, e.Reason)
}

// Schema tells the pipeline how to read an entity type. Accessors left nil
// disable the corresponding predicate.
type Schema[T any] struct {
	// ID is required; it generates the deterministic tie-break (ascending)
	// and the fallback ordering when no sort field is given.
	ID func(T) string
	// TextFields are the haystacks for the free-text predicate.
	TextFields []func(T) string
	// Date feeds the date-range predicate.
	Date func(T) time.Time
	// Status and StatusGroups feed the tab predicate. Status receives the
	// effective (time-derived) status where the entity has one.
	Status       func(T) string
	StatusGroups map[string][]string
	// SortKeys maps a sortable field name to a three-way comparator.
	SortKeys map[string]func(a, b T) int
}

// Result carries one page plus the total filtered count the UI needs for
// page-number display.
type Result[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
}

// Apply runs the pipeline over items. The returned slice is freshly
// allocated; items is left untouched.
func Apply[T any](items []T, f Filter, s Sort, p Page, sch Schema[T]) (Result[T], error) {
	if err := validate(f, s, p, sch); err != nil {
		return Result[T]{}, err
	}

	filtered := filter(items, f, sch)
	sortItems(filtered, s, sch)

	total := len(filtered)
	start := p.Page * p.PageSize
	if start >= total {
		return Result[T]{Items: []T{}, TotalCount: total}, nil
	}
	end := start + p.PageSize
	if end > total {
		end = total
	}
	return Result[T]{Items: filtered[start:end], TotalCount: total}, nil
}

func validate[T any](f Filter, s Sort, p Page, sch Schema[T]) error {
	if sch.ID == nil {
		return &Error{Param: "schema", Reason: "missing id accessor"}
	}
	if p.Page < 0 {
		return &Error{Param: "page", Reason: "must be >= 0"}
	}
	if p.PageSize <= 0 {
		return &Error{Param: "page_size", Reason: "must be > 0"}
	}
	if s.Field != "" {
		if _, ok := sch.SortKeys[s.Field]; !ok {
			return &Error{Param: "sort", Reason: "unknown field " + s.Field}
		}
	}
	switch s.Direction {
	case "", Asc, Desc:
	default:
		return &Error{Param: "direction", Reason: "must be asc or desc"}
	}
	if f.StatusGroup != "" {
		if _, ok := sch.StatusGroups[f.StatusGroup]; !ok {
			return &Error{Param: "status_group", Reason: "unknown group " + f.StatusGroup}
		}
	}
	if (f.From != nil || f.To != nil) && sch.Date == nil {
		return &Error{Param: "date_range", Reason: "entity has no date field"}
	}
	return nil
}

func filter[T any](items []T, f Filter, sch Schema[T]) []T {
	needle := strings.ToLower(strings.TrimSpace(f.Text))
	var groupSet map[string]bool
	if f.StatusGroup != "" {
		groupSet = make(map[string]bool)
		for _, s := range sch.StatusGroups[f.StatusGroup] {
			groupSet[s] = true
		}
	}

	out := make([]T, 0, len(items))
	for _, it := range items {
		if needle != "" && !matchText(it, needle, sch.TextFields) {
			continue
		}
		if sch.Date != nil {
			d := sch.Date(it)
			if f.From != nil && d.Before(*f.From) {
				continue
			}
			if f.To != nil && d.After(*f.To) {
				continue
			}
		}
		if groupSet != nil && !groupSet[sch.Status(it)] {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchText[T any](it T, needle string, fields []func(T) string) bool {
	for _, get := range fields {
		if strings.Contains(strings.ToLower(get(it)), needle) {
			return true
		}
	}
	return false
}

func sortItems[T any](items []T, s Sort, sch Schema[T]) {
	var key func(a, b T) int
	if s.Field != "" {
		key = sch.SortKeys[s.Field]
	}
	desc := s.Direction == Desc

	sort.SliceStable(items, func(i, j int) bool {
		if key != nil {
			c := key(items[i], items[j])
			if desc {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		// ties always break by id ascending, independent of direction
		return sch.ID(items[i]) < sch.ID(items[j])
	})
}

// CompareTime is a ready-made three-way comparator for time sort keys.
func CompareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

// CompareInt64 is a ready-made three-way comparator for amount sort keys.
func CompareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CompareString compares two string sort keys lexicographically.
func CompareString(a, b string) int { return strings.Compare(a, b) }
