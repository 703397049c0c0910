package grid

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"time"
)

// SortDirection is the tri-state direction of a column sort.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAscending
	SortDescending
)

// String returns "asc", "desc" or "none".
func (d SortDirection) String() string {
	switch d {
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	default:
		return "none"
	}
}

// SortState is the single active sort. The zero value means no sort.
type SortState struct {
	Field     string
	Direction SortDirection
}

// Active reports whether a sort is applied.
func (s SortState) Active() bool {
	return s.Field != "" && s.Direction != SortNone
}

// SortEngine owns the sort state. Only one field is ever sorted at a time.
type SortEngine struct {
	state SortState
}

// State returns the current sort state.
func (e *SortEngine) State() SortState { return e.state }

// Toggle advances the sort state for a header click on column:
// another field starts ascending, ascending becomes descending, and
// descending clears the sort. Non-sortable columns are ignored and
// Toggle reports false.
func (e *SortEngine) Toggle(column Column) (SortState, bool) {
	if !column.Sortable {
		return e.state, false
	}

	if e.state.Field == column.Field {
		switch e.state.Direction {
		case SortAscending:
			e.state.Direction = SortDescending
		case SortDescending:
			e.state = SortState{}
		default:
			e.state.Direction = SortAscending
		}
	} else {
		e.state = SortState{Field: column.Field, Direction: SortAscending}
	}
	return e.state, true
}

// Reset clears the sort without reordering anything.
func (e *SortEngine) Reset() { e.state = SortState{} }

// Apply sorts rows in place by the current state. With no active sort the
// rows are left exactly as they are; the previous order is not restored.
// It reports whether the rows were reordered.
func (e *SortEngine) Apply(rows []Row) bool {
	if !e.state.Active() {
		return false
	}
	slices.SortStableFunc(rows, Comparator(e.state))
	return true
}

// Icon returns the header indicator for column.
func (e *SortEngine) Icon(column Column) string {
	if !column.Sortable || e.state.Field != column.Field {
		return ""
	}
	switch e.state.Direction {
	case SortAscending:
		return "▲"
	case SortDescending:
		return "▼"
	}
	return ""
}

// AriaSort returns the aria-sort attribute value for column, or "" when the
// attribute should be omitted.
func (e *SortEngine) AriaSort(column Column) string {
	if !column.Sortable || e.state.Field != column.Field {
		return ""
	}
	switch e.state.Direction {
	case SortAscending:
		return "ascending"
	case SortDescending:
		return "descending"
	}
	return ""
}

// Comparator returns the row ordering for state. For an inactive state every
// pair compares equal.
func Comparator(state SortState) func(a, b Row) int {
	if !state.Active() {
		return func(a, b Row) int { return 0 }
	}
	field := state.Field
	if state.Direction == SortDescending {
		return func(a, b Row) int { return -CompareValues(a[field], b[field]) }
	}
	return func(a, b Row) int { return CompareValues(a[field], b[field]) }
}

// CompareValues orders two cell values by their natural ordering and returns
// -1, 0 or 1. Numbers of any kind compare numerically, strings lexically,
// times chronologically and bools false before true. Values of different
// kinds, nils and unordered types compare equal.
func CompareValues(a, b any) int {
	if a == nil || b == nil {
		return 0
	}

	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return cmp.Compare(av, bv)
		}
		return 0
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
		return 0
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
		return 0
	}

	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			// NaN compares equal to everything, matching relational operators.
			if x < y {
				return -1
			}
			if x > y {
				return 1
			}
			return 0
		}
		return 0
	}

	if as, ok := a.(fmt.Stringer); ok {
		if bs, ok := b.(fmt.Stringer); ok {
			return cmp.Compare(as.String(), bs.String())
		}
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// orderSnapshot remembers the insertion order of a row set so a cleared sort
// can put rows back. It is taken when rows are assigned and never mutated.
type orderSnapshot struct {
	rows []Row
}

func takeOrderSnapshot(rows []Row) *orderSnapshot {
	return &orderSnapshot{rows: slices.Clone(rows)}
}

// restore copies the snapshot order back into rows. It refuses when the row
// set was replaced behind the grid's back.
func (s *orderSnapshot) restore(rows []Row) bool {
	if s == nil || len(s.rows) != len(rows) {
		return false
	}
	copy(rows, s.rows)
	return true
}
