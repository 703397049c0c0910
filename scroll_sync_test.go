package grid

import (
	"testing"
	"time"
)

func TestScrollSynchronizer_BodyDrivesHeader(t *testing.T) {
	s := NewScrollSynchronizer(10 * time.Millisecond)
	t0 := time.Unix(1000, 0)

	off, ok := s.OnBodyScroll(t0, 120)
	if !ok || off.ScrollLeft != 120 {
		t.Fatalf("Expected header offset 120, got %+v %v", off, ok)
	}
	if s.ScrollLeft() != 120 {
		t.Errorf("Expected synchronized position 120, got %v", s.ScrollLeft())
	}

	// The header fires a scroll event for our own write.
	if _, ok := s.OnHeaderScroll(t0.Add(2*time.Millisecond), 120); ok {
		t.Error("Expected the header echo to be suppressed")
	}
}

func TestScrollSynchronizer_HeaderDrivesBody(t *testing.T) {
	s := NewScrollSynchronizer(10 * time.Millisecond)
	t0 := time.Unix(1000, 0)

	left, ok := s.OnHeaderScroll(t0, 300)
	if !ok || left != 300 {
		t.Fatalf("Expected body scrollLeft 300, got %v %v", left, ok)
	}
	if _, ok := s.OnBodyScroll(t0.Add(time.Millisecond), 300); ok {
		t.Error("Expected the body echo to be suppressed")
	}
}

func TestScrollSynchronizer_RapidInputIsNotAnEcho(t *testing.T) {
	s := NewScrollSynchronizer(10 * time.Millisecond)
	t0 := time.Unix(1000, 0)

	s.OnBodyScroll(t0, 100)
	for i := 1; i <= 5; i++ {
		now := t0.Add(time.Duration(i) * time.Millisecond)
		off, ok := s.OnBodyScroll(now, float64(100+i*10))
		if !ok {
			t.Fatalf("event %d dropped", i)
		}
		if off.ScrollLeft != float64(100+i*10) {
			t.Fatalf("event %d: header at %v", i, off.ScrollLeft)
		}
	}
}

func TestScrollSynchronizer_WindowExpires(t *testing.T) {
	s := NewScrollSynchronizer(10 * time.Millisecond)
	t0 := time.Unix(1000, 0)

	s.OnBodyScroll(t0, 50)
	// Same value, but well after the echo window: genuine input.
	if _, ok := s.OnHeaderScroll(t0.Add(50*time.Millisecond), 50); !ok {
		t.Error("Expected input after the window to be handled")
	}
}

func TestHeaderOffset_Transform(t *testing.T) {
	if got := (HeaderOffset{}).Transform(); got != "translateX(0)" {
		t.Errorf("Got %q", got)
	}
	if got := (HeaderOffset{ScrollLeft: 42.5}).Transform(); got != "translateX(-42.5px)" {
		t.Errorf("Got %q", got)
	}
}
