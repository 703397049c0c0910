package grid

import (
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// DefaultSyncWindow is how long a synchronized write suppresses its echo.
const DefaultSyncWindow = 10 * time.Millisecond

// HeaderOffset is the horizontal position the header must follow.
type HeaderOffset struct {
	ScrollLeft float64
}

// Transform renders the offset as a CSS-style translation, for hosts that
// move the header instead of scrolling it.
func (o HeaderOffset) Transform() string {
	if o.ScrollLeft == 0 {
		return "translateX(0)"
	}
	return "translateX(-" + strconv.FormatFloat(o.ScrollLeft, 'f', -1, 64) + "px)"
}

// ScrollSynchronizer locks the header's horizontal scroll to the body's and
// the other way round.
//
// Writing one side makes the host fire a scroll event on that side. Such an
// echo arrives within the sync window and carries the value just written; it
// is dropped so the two handlers never ping-pong.
type ScrollSynchronizer struct {
	body   *rate.Limiter
	header *rate.Limiter
	left   float64 // last synchronized position
}

// NewScrollSynchronizer creates a synchronizer whose echo window is window.
// A non-positive window uses DefaultSyncWindow.
func NewScrollSynchronizer(window time.Duration) *ScrollSynchronizer {
	if window <= 0 {
		window = DefaultSyncWindow
	}
	return &ScrollSynchronizer{
		body:   rate.NewLimiter(rate.Every(window), 1),
		header: rate.NewLimiter(rate.Every(window), 1),
	}
}

// ScrollLeft returns the last synchronized horizontal position.
func (s *ScrollSynchronizer) ScrollLeft() float64 { return s.left }

// OnBodyScroll handles a horizontal body scroll at time now. It returns the
// offset the header must take, or false when the event is an echo.
func (s *ScrollSynchronizer) OnBodyScroll(now time.Time, scrollLeft float64) (HeaderOffset, bool) {
	if s.echo(s.body, now, scrollLeft) {
		return HeaderOffset{}, false
	}
	s.left = scrollLeft
	s.header.AllowN(now, 1) // the header write below will echo back
	return HeaderOffset{ScrollLeft: scrollLeft}, true
}

// OnHeaderScroll handles direct scroll input on the header. It returns the
// scrollLeft to assign to the body, or false when the event is an echo.
func (s *ScrollSynchronizer) OnHeaderScroll(now time.Time, scrollLeft float64) (float64, bool) {
	if s.echo(s.header, now, scrollLeft) {
		return 0, false
	}
	s.left = scrollLeft
	s.body.AllowN(now, 1)
	return scrollLeft, true
}

// echo consumes the side's token; an event without a token that repeats the
// last written value is the echo of our own write.
func (s *ScrollSynchronizer) echo(l *rate.Limiter, now time.Time, scrollLeft float64) bool {
	return !l.AllowN(now, 1) && scrollLeft == s.left
}
