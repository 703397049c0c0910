package grid

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoop_FramesRunOnNextTick(t *testing.T) {
	t0 := time.Unix(0, 0)
	loop := NewLoop(t0)

	var ran []string
	loop.RequestFrame(func() { ran = append(ran, "a") })
	loop.RequestFrame(func() { ran = append(ran, "b") })
	if len(ran) != 0 {
		t.Fatal("Frame callbacks ran before Tick")
	}

	loop.Tick(t0.Add(16 * time.Millisecond))
	if diff := cmp.Diff([]string{"a", "b"}, ran); diff != "" {
		t.Errorf("frame order mismatch (-want +got):\n%s", diff)
	}
	if loop.Pending() != 0 {
		t.Errorf("Expected nothing pending, got %d", loop.Pending())
	}
}

func TestLoop_FrameQueuedDuringTickWaits(t *testing.T) {
	loop := NewLoop(time.Unix(0, 0))
	count := 0
	loop.RequestFrame(func() {
		count++
		loop.RequestFrame(func() { count++ })
	})

	loop.Tick(time.Unix(0, 0))
	if count != 1 {
		t.Fatalf("Expected 1 run after first tick, got %d", count)
	}
	loop.Tick(time.Unix(0, 0))
	if count != 2 {
		t.Fatalf("Expected 2 runs after second tick, got %d", count)
	}
}

func TestLoop_Cancel(t *testing.T) {
	t0 := time.Unix(0, 0)
	loop := NewLoop(t0)
	ran := false
	cancel := loop.RequestFrame(func() { ran = true })
	cancel()
	cancel()

	stop := loop.AfterFunc(time.Millisecond, func() { ran = true })
	stop()

	loop.Tick(t0.Add(time.Second))
	if ran {
		t.Error("Canceled callbacks ran")
	}
}

func TestLoop_CancelDuringTick(t *testing.T) {
	t0 := time.Unix(0, 0)
	loop := NewLoop(t0)
	ran := false
	var cancel CancelFunc
	loop.RequestFrame(func() { cancel() })
	cancel = loop.RequestFrame(func() { ran = true })

	loop.Tick(t0)
	if ran {
		t.Error("Callback canceled by an earlier callback still ran")
	}
}

func TestLoop_TimersFireInDueOrder(t *testing.T) {
	t0 := time.Unix(0, 0)
	loop := NewLoop(t0)

	var ran []int
	loop.AfterFunc(30*time.Millisecond, func() { ran = append(ran, 30) })
	loop.AfterFunc(10*time.Millisecond, func() { ran = append(ran, 10) })
	loop.AfterFunc(100*time.Millisecond, func() { ran = append(ran, 100) })

	loop.Tick(t0.Add(5 * time.Millisecond))
	if len(ran) != 0 {
		t.Fatalf("Timers fired early: %v", ran)
	}
	loop.Tick(t0.Add(50 * time.Millisecond))
	if diff := cmp.Diff([]int{10, 30}, ran); diff != "" {
		t.Errorf("timer order mismatch (-want +got):\n%s", diff)
	}
	if loop.Pending() != 1 {
		t.Errorf("Expected 1 pending timer, got %d", loop.Pending())
	}
}

func TestLoop_ClockNeverGoesBack(t *testing.T) {
	t0 := time.Unix(100, 0)
	loop := NewLoop(t0)
	loop.Tick(t0.Add(-time.Second))
	if !loop.Now().Equal(t0) {
		t.Errorf("Expected clock to stay at %v, got %v", t0, loop.Now())
	}
}

func TestPending_ReplaceCancelsPrevious(t *testing.T) {
	loop := NewLoop(time.Unix(0, 0))
	var p pending
	runs := 0
	for range 5 {
		p.replace(loop.RequestFrame(func() { runs++; p.done() }))
	}
	if !p.active() || loop.Pending() != 1 {
		t.Fatalf("Expected one outstanding request, got active=%v pending=%d", p.active(), loop.Pending())
	}
	loop.Tick(time.Unix(0, 0))
	if runs != 1 {
		t.Errorf("Expected a single run, got %d", runs)
	}
	if p.active() {
		t.Error("Expected request forgotten after running")
	}
}
