package grid

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a Grid.
type Option func(*Grid)

// WithLogger sets the grid's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Grid) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithRegisterer records metrics into reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(g *Grid) { g.registerer = reg }
}

// WithTracerProvider traces sorting and width persistence.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(g *Grid) {
		if tp != nil {
			g.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithClock sets the time source used for scroll synchronization.
func WithClock(now func() time.Time) Option {
	return func(g *Grid) {
		if now != nil {
			g.now = now
		}
	}
}

// WithResizeDebounce sets how long container resizes settle before the
// window is recomputed. Default 50ms.
func WithResizeDebounce(d time.Duration) Option {
	return func(g *Grid) {
		if d >= 0 {
			g.resizeDebounce = d
		}
	}
}

// WithSyncWindow sets the header/body scroll echo window. Default 10ms.
func WithSyncWindow(d time.Duration) Option {
	return func(g *Grid) { g.syncWindow = d }
}

// WithMinColumnWidth overrides the resize clamp. Default 50px.
func WithMinColumnWidth(px int) Option {
	return func(g *Grid) {
		if px > 0 {
			g.minWidth = px
		}
	}
}

// WithRestoreOriginalOrder makes clearing a sort put rows back in the order
// they were assigned, instead of leaving the last sorted order in place.
func WithRestoreOriginalOrder(restore bool) Option {
	return func(g *Grid) { g.restoreOrder = restore }
}

// WithCursorObserver receives cursor hints while a column is resized.
func WithCursorObserver(fn func(CursorHint)) Option {
	return func(g *Grid) { g.onCursor = fn }
}

// WithPersistTimeout bounds each width store operation. Default 2s.
func WithPersistTimeout(d time.Duration) Option {
	return func(g *Grid) {
		if d > 0 {
			g.persistTimeout = d
		}
	}
}
