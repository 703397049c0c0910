package grid

import "math"

// Params are the inputs of one window computation.
//
// Usage:
//
//	w := grid.ComputeWindow(grid.Params{
//	    RowCount:              len(rows),
//	    RowHeight:             40,
//	    HeaderHeight:          50,
//	    ContainerClientHeight: 600,
//	    ScrollTop:             scrollTop,
//	    BufferSize:            10,
//	}, rows)
//	for i, row := range w.Rows {
//	    y := w.OffsetY + float64(i)*40
//	    // Draw row at y
//	}
type Params struct {
	RowCount              int     // Total number of rows
	RowHeight             float64 // Fixed height of every row
	HeaderHeight          float64 // Height of the header above the body
	ContainerClientHeight float64 // Client height of the scroll container
	ScrollTop             float64 // Vertical scroll offset of the container
	BufferSize            int     // Extra rows rendered above and below
}

// ContainerHeight is the client height left for rows, never negative.
func (p Params) ContainerHeight() float64 {
	return math.Max(0, p.ContainerClientHeight-p.HeaderHeight)
}

// TotalHeight is the full scrollable height of all rows.
func (p Params) TotalHeight() float64 {
	return float64(p.RowCount) * p.RowHeight
}

// ComputeWindow calculates the rows to render for a scroll position.
// Fixed row heights make it O(1): no rendered row is ever measured.
//
// The window covers the rows under the viewport plus BufferSize rows on each
// side so fast scrolling does not show blank space before the next
// recompute lands. Indices are always clamped: for zero rows the window is
// empty (start 0, end -1), otherwise 0 <= start <= end < RowCount.
//
// It is a pure function of p and rows.
func ComputeWindow(p Params, rows []Row) Window {
	w := Window{
		StartIndex:      0,
		EndIndex:        -1,
		ContainerHeight: p.ContainerHeight(),
	}
	if p.RowHeight <= 0 {
		return w
	}
	w.TotalHeight = p.TotalHeight()
	if p.RowCount <= 0 {
		return w
	}

	buffer := max(0, p.BufferSize)

	// Rows that fit in the viewport, +1 for the partially visible row
	visibleRowCount := int(math.Ceil(w.ContainerHeight/p.RowHeight)) + 1

	first := int(math.Floor(p.ScrollTop / p.RowHeight))
	start := max(0, first-buffer)
	// A stale scroll offset past the content keeps the last row in view
	start = min(start, p.RowCount-1)

	end := min(p.RowCount-1, start+visibleRowCount+buffer*2)

	w.StartIndex = start
	w.EndIndex = end
	w.OffsetY = float64(start) * p.RowHeight
	if rows != nil {
		hi := min(end+1, len(rows))
		if start < hi {
			w.Rows = rows[start:hi]
		}
	}
	return w
}

// MaxScrollTop returns the largest meaningful scroll offset.
func MaxScrollTop(p Params) float64 {
	return math.Max(0, p.TotalHeight()-p.ContainerHeight())
}

// ShouldRender reports whether row index idx falls inside w.
func (w Window) ShouldRender(idx int) bool {
	return idx >= w.StartIndex && idx <= w.EndIndex
}

// RowY returns the vertical position of row idx inside the scrolled content.
func (p Params) RowY(idx int) float64 {
	return float64(idx) * p.RowHeight
}

// ScrollTopForRow returns the scroll offset that brings row idx into view.
// If the row is already visible, current is returned unchanged.
func ScrollTopForRow(p Params, idx int, current float64) float64 {
	if idx < 0 || idx >= p.RowCount || p.RowHeight <= 0 {
		return current
	}

	top := p.RowY(idx)
	bottom := top + p.RowHeight
	visible := p.ContainerHeight()

	// Row is above the viewport: scroll up to it
	if top < current {
		return top
	}

	// Row is below the viewport: scroll down just enough to show it
	if bottom > current+visible {
		return math.Min(bottom-visible, MaxScrollTop(p))
	}

	return current
}
