package grid

import "math"

// DragSession tracks an in-progress column resize.
// While Active it is the only writer of one column's width.
type DragSession struct {
	Active        bool    // Currently resizing
	Field         string  // Column being resized
	PointerStartX float64 // Pointer X when the drag started
	WidthAtStart  int     // Column width when the drag started
}

// Reset clears the session.
func (d *DragSession) Reset() {
	d.Active = false
	d.Field = ""
	d.PointerStartX = 0
	d.WidthAtStart = 0
}

// CursorHint tells the host how to style the page during a resize drag.
// The grid only signals it; presentation stays with the host.
type CursorHint struct {
	Cursor        string // "col-resize" while dragging, "" to restore
	DisableSelect bool   // Suppress text selection while dragging
}

// ResizeController converts pointer motion over a resize handle into width
// updates with a minimum clamp and no upper bound.
type ResizeController struct {
	layout   *ColumnLayout
	minWidth int
	session  DragSession

	// OnCursor, when set, receives the cursor hint on drag start and end.
	OnCursor func(CursorHint)
}

// NewResizeController returns a controller writing into layout's width map.
func NewResizeController(layout *ColumnLayout) *ResizeController {
	return &ResizeController{layout: layout, minWidth: MinColumnWidth}
}

// SetMinWidth overrides the minimum clamp.
func (r *ResizeController) SetMinWidth(px int) {
	if px > 0 {
		r.minWidth = px
	}
}

// Session returns a copy of the current drag session.
func (r *ResizeController) Session() DragSession { return r.session }

// Active reports whether a drag is in progress.
func (r *ResizeController) Active() bool { return r.session.Active }

// StartDrag begins resizing column from pointerX. A drag already in
// progress is replaced.
func (r *ResizeController) StartDrag(column Column, pointerX float64) {
	r.session = DragSession{
		Active:        true,
		Field:         column.Field,
		PointerStartX: pointerX,
		WidthAtStart:  r.layout.Width(column.Field),
	}
	if r.OnCursor != nil {
		r.OnCursor(CursorHint{Cursor: "col-resize", DisableSelect: true})
	}
}

// PointerMove applies the pointer delta to the dragged column.
// It returns the new width and whether the map changed. Without an active
// session it does nothing.
func (r *ResizeController) PointerMove(pointerX float64) (int, bool) {
	if !r.session.Active || r.session.Field == "" {
		return 0, false
	}

	delta := int(math.Round(pointerX - r.session.PointerStartX))
	newWidth := max(r.minWidth, r.session.WidthAtStart+delta)

	// Only write when the width actually changed
	if !r.layout.SetWidth(r.session.Field, newWidth) {
		return newWidth, false
	}
	return newWidth, true
}

// EndDrag finishes the session. It returns true when a drag was active, in
// which case the caller should persist the width map. Calling it with no
// active session is a no-op.
func (r *ResizeController) EndDrag() bool {
	if !r.session.Active {
		return false
	}
	r.session.Reset()
	if r.OnCursor != nil {
		r.OnCursor(CursorHint{})
	}
	return true
}
