package grid

import (
	"slices"
	"time"
)

// CancelFunc cancels a scheduled callback. Calling it after the callback ran,
// or twice, is harmless.
type CancelFunc func()

// Scheduler defers work on the host's single UI thread.
// Callbacks must run on the same goroutine that calls the grid.
type Scheduler interface {
	// RequestFrame runs fn before the next frame is drawn.
	RequestFrame(fn func()) CancelFunc
	// AfterFunc runs fn once d has elapsed.
	AfterFunc(d time.Duration, fn func()) CancelFunc
}

// Loop is a single-threaded Scheduler driven by the host's frame loop.
// Hosts call Tick once per frame; nothing runs in the background.
//
// Usage:
//
//	loop := grid.NewLoop(time.Now())
//	for running {
//	    pollEvents()          // feeds scroll/resize/pointer events to the grid
//	    loop.Tick(time.Now()) // fires due debounce timers and frame callbacks
//	    draw(g.Snapshot())
//	}
type Loop struct {
	now    time.Time
	seq    uint64
	frames []*loopTask
	timers []*loopTask
}

type loopTask struct {
	id       uint64
	due      time.Time
	fn       func()
	canceled bool
}

// NewLoop creates a loop whose clock starts at now.
func NewLoop(now time.Time) *Loop {
	return &Loop{now: now}
}

// Now returns the loop's clock as of the last Tick.
func (l *Loop) Now() time.Time { return l.now }

// Pending returns the number of queued frame callbacks and timers.
func (l *Loop) Pending() int { return len(l.frames) + len(l.timers) }

// RequestFrame queues fn for the next Tick.
func (l *Loop) RequestFrame(fn func()) CancelFunc {
	l.seq++
	t := &loopTask{id: l.seq, fn: fn}
	l.frames = append(l.frames, t)
	return func() {
		t.canceled = true
		l.frames = remove(l.frames, t.id)
	}
}

// AfterFunc queues fn for the first Tick at or after now+d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) CancelFunc {
	l.seq++
	t := &loopTask{id: l.seq, due: l.now.Add(d), fn: fn}
	l.timers = append(l.timers, t)
	return func() {
		t.canceled = true
		l.timers = remove(l.timers, t.id)
	}
}

// Tick advances the clock to now, fires due timers in due order, then runs
// the frame callbacks queued before this Tick. Callbacks queued while
// ticking wait for the next Tick.
func (l *Loop) Tick(now time.Time) {
	if now.After(l.now) {
		l.now = now
	}

	var due []*loopTask
	l.timers = slices.DeleteFunc(l.timers, func(t *loopTask) bool {
		if t.due.After(l.now) {
			return false
		}
		due = append(due, t)
		return true
	})
	slices.SortStableFunc(due, func(a, b *loopTask) int { return a.due.Compare(b.due) })
	for _, t := range due {
		if !t.canceled {
			t.fn()
		}
	}

	frames := l.frames
	l.frames = nil
	for _, t := range frames {
		if !t.canceled {
			t.fn()
		}
	}
}

func remove(tasks []*loopTask, id uint64) []*loopTask {
	return slices.DeleteFunc(tasks, func(t *loopTask) bool { return t.id == id })
}

// pending holds at most one outstanding scheduled request. Scheduling again
// cancels and replaces the previous request; it never queues.
type pending struct {
	cancel CancelFunc
}

// replace cancels the outstanding request, if any, and stores the new one.
func (p *pending) replace(cancel CancelFunc) {
	p.stop()
	p.cancel = cancel
}

// done forgets the request after it ran.
func (p *pending) done() { p.cancel = nil }

// stop cancels the outstanding request.
func (p *pending) stop() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// active reports whether a request is outstanding.
func (p *pending) active() bool { return p.cancel != nil }
