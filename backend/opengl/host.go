package opengl

import (
	"fmt"

	"github.com/go-theft-auto/grid"
)

// DefaultWheelStep is how many pixels one wheel notch scrolls.
const DefaultWheelStep = 40

// WindowHost plays the part of the scrollable header and body elements for
// a window that has none. It owns the scroll positions, turns window input
// into grid events, and fires a scroll event whenever a position it owns
// changes, including changes the grid itself requests.
type WindowHost struct {
	handlers map[grid.EventKind]grid.EventHandler

	body       grid.ScrollPos
	headerLeft float64
	cursorX    float64
	cursorY    float64

	headerHeight float64
	extent       func() grid.ScrollExtent

	// WheelStep is the pixel distance of one wheel notch.
	WheelStep float64
}

// NewWindowHost returns a host whose header band is headerHeight pixels
// tall. extent bounds scrolling; it is usually (*grid.Grid).ScrollExtent,
// bound once the grid exists.
func NewWindowHost(headerHeight float64) *WindowHost {
	return &WindowHost{
		handlers:     make(map[grid.EventKind]grid.EventHandler),
		headerHeight: headerHeight,
		extent:       func() grid.ScrollExtent { return grid.ScrollExtent{} },
		WheelStep:    DefaultWheelStep,
	}
}

// SetExtent sets the scroll bounds source.
func (h *WindowHost) SetExtent(fn func() grid.ScrollExtent) {
	if fn != nil {
		h.extent = fn
	}
}

// Listen registers fn for kind. One listener per kind.
func (h *WindowHost) Listen(kind grid.EventKind, fn grid.EventHandler) (grid.ReleaseFunc, error) {
	if _, dup := h.handlers[kind]; dup {
		return nil, fmt.Errorf("%s already has a listener", kind)
	}
	h.handlers[kind] = fn
	return func() error {
		delete(h.handlers, kind)
		return nil
	}, nil
}

// Listeners returns the number of registered listeners.
func (h *WindowHost) Listeners() int { return len(h.handlers) }

func (h *WindowHost) emit(ev grid.Event) {
	if fn, ok := h.handlers[ev.Kind]; ok {
		fn(ev)
	}
}

// SetHeaderScrollLeft moves the header. A change fires a header scroll
// event, as a scrolled element would.
func (h *WindowHost) SetHeaderScrollLeft(px float64) {
	if px == h.headerLeft {
		return
	}
	h.headerLeft = px
	h.emit(grid.Event{Kind: grid.EventHeaderScroll, ScrollLeft: px})
}

// SetBodyScrollLeft moves the body horizontally. A change fires a body
// scroll event.
func (h *WindowHost) SetBodyScrollLeft(px float64) {
	if px == h.body.Left {
		return
	}
	h.body.Left = px
	h.emitBody()
}

func (h *WindowHost) emitBody() {
	h.emit(grid.Event{Kind: grid.EventBodyScroll, ScrollTop: h.body.Top, ScrollLeft: h.body.Left})
}

// BodyScroll returns the body scroll position.
func (h *WindowHost) BodyScroll() grid.ScrollPos { return h.body }

// HeaderScrollLeft returns the header's horizontal position.
func (h *WindowHost) HeaderScrollLeft() float64 { return h.headerLeft }

// ScrollBy applies cmd to the body and fires a body scroll event when the
// position changes.
func (h *WindowHost) ScrollBy(cmd grid.ScrollCommand) {
	pos := cmd.Apply(h.body, h.extent())
	if pos == h.body {
		return
	}
	h.body = pos
	h.emitBody()
}

// Wheel handles a wheel or trackpad scroll at the cursor. Over the header
// band only the horizontal component counts and the header scrolls by
// itself; the grid then moves the body to match.
func (h *WindowHost) Wheel(xoff, yoff float64) {
	dx, dy := -xoff*h.WheelStep, -yoff*h.WheelStep
	if h.cursorY < h.headerHeight {
		if dx == 0 {
			return
		}
		left := min(max(0, h.headerLeft+dx), max(0, h.extent().MaxLeft))
		h.SetHeaderScrollLeft(left)
		return
	}
	h.ScrollBy(grid.ScrollCommand{DX: dx, DY: dy})
}

// CursorMoved records the cursor and fires a pointer move.
func (h *WindowHost) CursorMoved(x, y float64) {
	h.cursorX, h.cursorY = x, y
	h.emit(grid.Event{Kind: grid.EventPointerMove, ClientX: x})
}

// Cursor returns the last cursor position.
func (h *WindowHost) Cursor() (x, y float64) { return h.cursorX, h.cursorY }

// ButtonReleased fires a pointer up.
func (h *WindowHost) ButtonReleased() {
	h.emit(grid.Event{Kind: grid.EventPointerUp})
}

// Resized fires a container resize.
func (h *WindowHost) Resized(width, height float64) {
	h.emit(grid.Event{Kind: grid.EventContainerResize, ClientWidth: width, ClientHeight: height})
}

// Clamp pulls the body back inside the current extent, firing a scroll
// event when it moves. Hosts call it after the content shrinks.
func (h *WindowHost) Clamp() {
	h.ScrollBy(grid.ScrollCommand{})
}
