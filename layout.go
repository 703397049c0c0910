package grid

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrDuplicateField is returned when two columns share a field.
var ErrDuplicateField = errors.New("duplicate column field")

// ColumnGroups partitions the configured columns by freeze side.
// Relative order within each group is the configured order.
type ColumnGroups struct {
	LeftFrozen  []Column
	Center      []Column
	RightFrozen []Column
}

// All returns the columns in display order: left, center, right.
func (g ColumnGroups) All() []Column {
	out := make([]Column, 0, len(g.LeftFrozen)+len(g.Center)+len(g.RightFrozen))
	out = append(out, g.LeftFrozen...)
	out = append(out, g.Center...)
	return append(out, g.RightFrozen...)
}

// WidthMap maps a column field to its current pixel width.
type WidthMap map[string]int

// Clone returns an independent copy of m.
func (m WidthMap) Clone() WidthMap {
	out := make(WidthMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// GroupColumns partitions columns into frozen and center groups.
func GroupColumns(columns []Column) ColumnGroups {
	var g ColumnGroups
	for _, col := range columns {
		switch col.Freeze {
		case FreezeLeft:
			g.LeftFrozen = append(g.LeftFrozen, col)
		case FreezeRight:
			g.RightFrozen = append(g.RightFrozen, col)
		default:
			g.Center = append(g.Center, col)
		}
	}
	return g
}

// ValidateColumns fails on duplicate or empty fields.
func ValidateColumns(columns []Column) error {
	seen := make(map[string]int, len(columns))
	for i, col := range columns {
		if col.Field == "" {
			return fmt.Errorf("column %d: empty field", i)
		}
		if j, ok := seen[col.Field]; ok {
			return fmt.Errorf("%w: %q at columns %d and %d", ErrDuplicateField, col.Field, j, i)
		}
		seen[col.Field] = i
	}
	return nil
}

// ParseWidth parses a configured width such as "120px".
// The first "px" is stripped, then the leading integer is read the way a
// browser's parseInt does: "12.5px" is 12, "80%" is 80, "wide" is not a number.
func ParseWidth(s string) (int, bool) {
	s = strings.Replace(s, "px", "", 1)
	s = strings.TrimLeft(s, " \t\n\r")

	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for ; digits < len(s) && s[digits] >= '0' && s[digits] <= '9'; digits++ {
		n = n*10 + int(s[digits]-'0')
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// ColumnLayout owns the column groups and the live width map.
// Frozen totals are derived on every call so they always match the map.
type ColumnLayout struct {
	columns  []Column
	groups   ColumnGroups
	widths   WidthMap
	minWidth int
	logger   *slog.Logger
}

// NewColumnLayout groups columns and resolves each width from, in order:
// the configured width string, the persisted map, and DefaultColumnWidth.
// persisted may be nil.
func NewColumnLayout(columns []Column, persisted WidthMap) *ColumnLayout {
	return newColumnLayout(columns, persisted, MinColumnWidth, gridLogger)
}

func newColumnLayout(columns []Column, persisted WidthMap, minWidth int, logger *slog.Logger) *ColumnLayout {
	l := &ColumnLayout{
		columns:  append([]Column(nil), columns...),
		groups:   GroupColumns(columns),
		widths:   make(WidthMap, len(columns)),
		minWidth: minWidth,
		logger:   logger,
	}
	for _, col := range l.columns {
		l.widths[col.Field] = l.resolveWidth(col, persisted)
	}
	return l
}

func (l *ColumnLayout) resolveWidth(col Column, persisted WidthMap) int {
	if col.Width != "" {
		if w, ok := ParseWidth(col.Width); ok {
			return l.clamp(w)
		}
		l.logger.Warn("ignoring malformed column width", "field", col.Field, "width", col.Width)
	}
	if w := persisted[col.Field]; w > 0 {
		return l.clamp(w)
	}
	return DefaultColumnWidth
}

// configuredWidth ignores persisted and dragged widths.
func (l *ColumnLayout) configuredWidth(col Column) int {
	if w, ok := ParseWidth(col.Width); ok && col.Width != "" {
		return l.clamp(w)
	}
	return DefaultColumnWidth
}

func (l *ColumnLayout) clamp(w int) int {
	if w < l.minWidth {
		return l.minWidth
	}
	return w
}

// Columns returns the configured columns in their original order.
func (l *ColumnLayout) Columns() []Column { return l.columns }

// Groups returns the freeze partition.
func (l *ColumnLayout) Groups() ColumnGroups { return l.groups }

// Column looks up a column by field.
func (l *ColumnLayout) Column(field string) (Column, bool) {
	for _, col := range l.columns {
		if col.Field == field {
			return col, true
		}
	}
	return Column{}, false
}

// Width returns the current width of field, or 0 for unknown fields.
func (l *ColumnLayout) Width(field string) int { return l.widths[field] }

// SetWidth assigns a width. It returns false when nothing changed.
func (l *ColumnLayout) SetWidth(field string, px int) bool {
	if cur, ok := l.widths[field]; ok && cur == px {
		return false
	}
	l.widths[field] = px
	return true
}

// Widths returns a copy of the live width map.
func (l *ColumnLayout) Widths() WidthMap { return l.widths.Clone() }

// LeftFrozenWidth sums the widths of the left-frozen group.
func (l *ColumnLayout) LeftFrozenWidth() int { return l.sum(l.groups.LeftFrozen) }

// RightFrozenWidth sums the widths of the right-frozen group.
func (l *ColumnLayout) RightFrozenWidth() int { return l.sum(l.groups.RightFrozen) }

// CenterWidth sums the widths of the scrolling group.
func (l *ColumnLayout) CenterWidth() int { return l.sum(l.groups.Center) }

// TotalWidth is the full horizontal extent of all columns.
func (l *ColumnLayout) TotalWidth() int {
	return l.LeftFrozenWidth() + l.CenterWidth() + l.RightFrozenWidth()
}

func (l *ColumnLayout) sum(cols []Column) int {
	total := 0
	for _, col := range cols {
		total += l.widths[col.Field]
	}
	return total
}

// ResetWidths discards drag and persisted overrides. Grouping is untouched.
func (l *ColumnLayout) ResetWidths() {
	for _, col := range l.columns {
		l.widths[col.Field] = l.configuredWidth(col)
	}
}
