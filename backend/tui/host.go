package tui

import (
	"fmt"

	"github.com/go-theft-auto/grid"
)

// Host is the grid's view of the terminal. Bubble Tea delivers every message
// to one Update loop, so Host just routes events to the registered handler
// for each kind.
type Host struct {
	handlers   map[grid.EventKind]grid.EventHandler
	headerLeft float64
	bodyLeft   float64
}

// NewHost returns a host with no listeners.
func NewHost() *Host {
	return &Host{handlers: make(map[grid.EventKind]grid.EventHandler)}
}

// Listen registers h for kind. One listener per kind.
func (h *Host) Listen(kind grid.EventKind, fn grid.EventHandler) (grid.ReleaseFunc, error) {
	if _, dup := h.handlers[kind]; dup {
		return nil, fmt.Errorf("%s already has a listener", kind)
	}
	h.handlers[kind] = fn
	return func() error {
		delete(h.handlers, kind)
		return nil
	}, nil
}

// Emit delivers ev. It reports false when nobody listens.
func (h *Host) Emit(ev grid.Event) bool {
	fn, ok := h.handlers[ev.Kind]
	if !ok {
		return false
	}
	fn(ev)
	return true
}

// Listeners returns the number of registered listeners.
func (h *Host) Listeners() int { return len(h.handlers) }

// SetHeaderScrollLeft records the header position. The terminal header is
// drawn from the snapshot, so there is no element to move.
func (h *Host) SetHeaderScrollLeft(px float64) { h.headerLeft = px }

// SetBodyScrollLeft records the body position requested by header input.
func (h *Host) SetBodyScrollLeft(px float64) { h.bodyLeft = px }
