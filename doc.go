/*
Package grid implements a headless, virtualized, sortable, resizable data grid
with frozen columns. It computes what a host should draw; it never draws.

# Overview

A Grid owns the row set, the column layout and the scroll state. Hosts feed
it raw events (scrolls, container resizes, pointer motion) and receive a
Snapshot through their Renderer after every recompute. Only the rows inside
the current Window are ever handed to the renderer, so ten thousand rows cost
the same as forty.

# Quick Start

	cfg := grid.DefaultConfig()
	cfg.Columns = columns
	cfg.Rows = rows
	cfg.ContainerClientHeight = 600
	cfg.Renderer = grid.RendererFunc(func(s grid.Snapshot) {
	    draw(s.Window.Rows, s.Window.OffsetY)
	})

	g, err := grid.Init(cfg)
	if err != nil {
	    return err
	}
	defer g.Teardown()

	g.OnBodyScroll(4000, 0) // rows 90-125 with the default metrics

# Virtualization

All rows share one height, so the window is computed in constant time:

	start   = max(0, floor(scrollTop/rowHeight) - buffer)
	visible = ceil(containerHeight/rowHeight) + 1
	end     = min(rowCount-1, start + visible + 2*buffer)
	offsetY = start * rowHeight

containerHeight is the client height minus the header. A grid without rows,
or with a non-positive row height, renders the empty window (0, -1).

# Columns

Columns are grouped by Freeze into left-frozen, center and right-frozen
groups, keeping their configured order. Widths come from saved widths, then
the configured "NNNpx" width, then DefaultColumnWidth. Resize drags clamp at
the minimum width and have no upper bound; the widths are saved when the
pointer is released.

# Sorting

Sort toggles one column through ascending, descending and none. Sorting is
stable and reorders the row slice in place. Clearing a sort leaves the last
order in place unless WithRestoreOriginalOrder is set.

# Scheduling

With a Scheduler, body scrolls are coalesced into one recompute per frame
and container resizes wait until they settle. Loop is a single-threaded
Scheduler for hosts that already run a frame loop. Without a Scheduler every
event recomputes synchronously.

# Keyboard

	Up/Down          Scroll 30px (Shift: 100px)
	Left/Right       Scroll 30px horizontally (Shift: 100px)
	PageUp/PageDown  Scroll 80% of the viewport
	Ctrl+Up/Down     Jump to the top or bottom
	Home/End         Jump to the horizontal edges (Ctrl: the corners)

Key returns the command; the host applies it and reports the new position
back through its scroll event.

# Backends

backend/tui hosts a grid in a terminal with Bubble Tea; backend/opengl draws
it in a GLFW window. Width stores live under storage/.

# Teardown

Every listener registered at Init is released at Teardown in reverse order.
Teardown is idempotent and returns every release failure.
*/
package grid
