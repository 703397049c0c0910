package grid

import "fmt"

// Default metrics, in pixels.
const (
	DefaultRowHeight    = 40
	DefaultHeaderHeight = 50
	DefaultBufferSize   = 10
	DefaultColumnWidth  = 150
	MinColumnWidth      = 50
)

// DefaultStorageKey namespaces persisted column widths.
const DefaultStorageKey = "ngx-simple-datatable-column-widths"

// Freeze pins a column to one side of the viewport.
type Freeze int

const (
	FreezeNone  Freeze = iota // Scrolls horizontally with the body
	FreezeLeft                // Pinned to the left edge
	FreezeRight               // Pinned to the right edge
)

// String returns the configuration spelling of the freeze side.
func (f Freeze) String() string {
	switch f {
	case FreezeLeft:
		return "left"
	case FreezeRight:
		return "right"
	default:
		return "none"
	}
}

// ParseFreeze converts "left", "right", "" or "none" to a Freeze.
func ParseFreeze(s string) (Freeze, error) {
	switch s {
	case "", "none":
		return FreezeNone, nil
	case "left":
		return FreezeLeft, nil
	case "right":
		return FreezeRight, nil
	}
	return FreezeNone, fmt.Errorf("unknown freeze side %q", s)
}

// Row is one record of the row set, keyed by column field.
type Row = map[string]any

// Formatter turns a cell value into display text.
// The grid only invokes it; it never inspects the implementation.
type Formatter interface {
	Format(value any, row Row) string
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc func(value any, row Row) string

// Format calls f(value, row).
func (f FormatterFunc) Format(value any, row Row) string { return f(value, row) }

// Column describes one configured column. Everything except the width is
// immutable for the lifetime of a grid.
type Column struct {
	Field     string    // Unique key into row records
	Header    string    // Display label
	Width     string    // Optional initial width, e.g. "120px"
	Freeze    Freeze    // Pinning side
	Sortable  bool      // Header click toggles sorting
	Formatter Formatter // Optional display formatter
}

// Window is the visible slice of the row set for one scroll position.
// It is recomputed as a whole; never patch individual fields.
type Window struct {
	StartIndex      int     // First rendered row (inclusive)
	EndIndex        int     // Last rendered row (inclusive); -1 when empty
	Rows            []Row   // rows[StartIndex : EndIndex+1]
	OffsetY         float64 // Vertical translation of the first rendered row
	TotalHeight     float64 // Full scrollable height of all rows
	ContainerHeight float64 // Viewport height below the header
}

// Len returns the number of rendered rows.
func (w Window) Len() int {
	return w.EndIndex - w.StartIndex + 1
}

// Empty reports whether the window renders no rows.
func (w Window) Empty() bool {
	return w.EndIndex < w.StartIndex
}
