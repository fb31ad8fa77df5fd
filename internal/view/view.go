// Package view filters, sorts and exports the tabular presentations of
// accounts and forwarding rules. Every function returns a new slice and
// leaves its input untouched.
package view

import (
	"slices"
	"strings"
	"time"

	apperrors "github.com/welldanyogia/forwarding-admin-backend/internal/errors"
)

// Direction is a sort direction
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection maps "desc" (any case) to Desc and everything else to Asc
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// Any disables an exact-match filter
const Any = "all"

// Query is a filter plus an optional sort
type Query struct {
	Search    string
	Status    string
	Role      string
	SortKey   string
	Direction Direction
}

// Column describes one field of a row type. Value reports false when the
// field has no value for the row.
type Column[T any] struct {
	Key        string
	Header     string
	Searchable bool
	Value      func(T) (string, bool)
}

// Table is the ordered set of columns of a presentation
type Table[T any] struct {
	Columns []Column[T]
}

func (t Table[T]) column(key string) (Column[T], bool) {
	for _, c := range t.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column[T]{}, false
}

// Keys lists the column keys in order
func (t Table[T]) Keys() []string {
	keys := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		keys[i] = c.Key
	}
	return keys
}

// Filter keeps rows whose searchable fields contain q.Search
// (case-insensitive, any field) and whose status and role columns equal
// q.Status and q.Role. Empty values and "all" disable a criterion.
func (t Table[T]) Filter(rows []T, q Query) []T {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	status, hasStatus := t.column("status")
	role, hasRole := t.column("role")

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if search != "" && !t.matchesSearch(row, search) {
			continue
		}
		if hasStatus && !matchesExact(status, row, q.Status) {
			continue
		}
		if hasRole && !matchesExact(role, row, q.Role) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func (t Table[T]) matchesSearch(row T, search string) bool {
	for _, c := range t.Columns {
		if !c.Searchable {
			continue
		}
		if v, ok := c.Value(row); ok && strings.Contains(strings.ToLower(v), search) {
			return true
		}
	}
	return false
}

func matchesExact[T any](c Column[T], row T, want string) bool {
	want = strings.TrimSpace(want)
	if want == "" || strings.EqualFold(want, Any) {
		return true
	}
	v, ok := c.Value(row)
	return ok && strings.EqualFold(v, want)
}

// Sort orders rows by the column key. The sort is stable and rows without a
// value come before any defined value in ascending order. An empty key keeps
// the input order.
func (t Table[T]) Sort(rows []T, key string, dir Direction) ([]T, error) {
	out := slices.Clone(rows)
	if key == "" {
		return out, nil
	}
	c, ok := t.column(key)
	if !ok {
		return nil, apperrors.Validation("unknown sort key %q, expected one of %s", key, strings.Join(t.Keys(), ", "))
	}

	slices.SortStableFunc(out, func(a, b T) int {
		r := compare(c, a, b)
		if dir == Desc {
			return -r
		}
		return r
	})
	return out, nil
}

func compare[T any](c Column[T], a, b T) int {
	av, aok := c.Value(a)
	bv, bok := c.Value(b)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	}
	if r := strings.Compare(strings.ToLower(av), strings.ToLower(bv)); r != 0 {
		return r
	}
	return strings.Compare(av, bv)
}

// Apply filters then sorts
func (t Table[T]) Apply(rows []T, q Query) ([]T, error) {
	return t.Sort(t.Filter(rows, q), q.SortKey, q.Direction)
}

// CSV renders a header line of column headers then one line per row, each
// the column values joined by commas in column order. Values are written
// verbatim and missing values are empty.
func (t Table[T]) CSV(rows []T) string {
	lines := make([]string, 0, len(rows)+1)

	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Header
	}
	lines = append(lines, strings.Join(headers, ","))

	fields := make([]string, len(t.Columns))
	for _, row := range rows {
		for i, c := range t.Columns {
			v, _ := c.Value(row)
			fields[i] = v
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return strings.Join(lines, "\n")
}

// timeValue renders times so that string order equals chronological order
func timeValue(t time.Time) (string, bool) {
	if t.IsZero() {
		return "", false
	}
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z"), true
}

func optionalTime(t *time.Time) (string, bool) {
	if t == nil {
		return "", false
	}
	return timeValue(*t)
}

func text(s string) (string, bool) {
	return s, s != ""
}
