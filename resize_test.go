package grid

import "testing"

func TestResizeController_BasicDrag(t *testing.T) {
	l := NewColumnLayout(testColumns(), nil)
	r := NewResizeController(l)
	col, _ := l.Column("email")

	r.StartDrag(col, 500)
	if !r.Active() {
		t.Fatal("Expected drag to be active")
	}
	s := r.Session()
	if s.Field != "email" || s.PointerStartX != 500 || s.WidthAtStart != 150 {
		t.Errorf("Unexpected session %+v", s)
	}

	w, changed := r.PointerMove(560)
	if !changed || w != 210 {
		t.Errorf("Expected width 210 and a change, got %d %v", w, changed)
	}
	if l.Width("email") != 210 {
		t.Errorf("Expected layout width 210, got %d", l.Width("email"))
	}

	// Same pointer position: no write
	if _, changed := r.PointerMove(560); changed {
		t.Error("Expected no change for an unchanged width")
	}

	if !r.EndDrag() {
		t.Error("Expected EndDrag to report an active drag")
	}
	if r.Active() || r.Session().Field != "" {
		t.Error("Expected session cleared after EndDrag")
	}
	if r.EndDrag() {
		t.Error("Expected second EndDrag to be a no-op")
	}
}

func TestResizeController_ClampsToMinimum(t *testing.T) {
	l := NewColumnLayout(testColumns(), nil)
	r := NewResizeController(l)
	col, _ := l.Column("email")

	r.StartDrag(col, 400)
	w, _ := r.PointerMove(200) // -200px from 150
	if w != MinColumnWidth {
		t.Errorf("Expected width clamped to %d, got %d", MinColumnWidth, w)
	}
	if l.Width("email") != MinColumnWidth {
		t.Errorf("Expected layout width %d, got %d", MinColumnWidth, l.Width("email"))
	}

	// No upper bound
	w, _ = r.PointerMove(5400)
	if w != 5150 {
		t.Errorf("Expected width 5150, got %d", w)
	}
}

func TestResizeController_RoundsFractionalDelta(t *testing.T) {
	l := NewColumnLayout(testColumns(), nil)
	r := NewResizeController(l)
	col, _ := l.Column("email")

	r.StartDrag(col, 100.2)
	if w, _ := r.PointerMove(110.9); w != 161 {
		t.Errorf("Expected width 161, got %d", w)
	}
}

func TestResizeController_MoveWithoutDrag(t *testing.T) {
	l := NewColumnLayout(testColumns(), nil)
	r := NewResizeController(l)

	if _, changed := r.PointerMove(1000); changed {
		t.Error("Expected no change without an active drag")
	}
	if diff := l.Width("email"); diff != 150 {
		t.Errorf("Width changed without a drag: %d", diff)
	}
}

func TestResizeController_CursorHints(t *testing.T) {
	l := NewColumnLayout(testColumns(), nil)
	r := NewResizeController(l)
	var hints []CursorHint
	r.OnCursor = func(h CursorHint) { hints = append(hints, h) }

	col, _ := l.Column("name")
	r.StartDrag(col, 0)
	r.EndDrag()

	if len(hints) != 2 {
		t.Fatalf("Expected 2 hints, got %d", len(hints))
	}
	if hints[0].Cursor != "col-resize" || !hints[0].DisableSelect {
		t.Errorf("Unexpected start hint %+v", hints[0])
	}
	if hints[1] != (CursorHint{}) {
		t.Errorf("Unexpected end hint %+v", hints[1])
	}
}

func TestResizeController_FrozenTotalsTrackDrag(t *testing.T) {
	l := NewColumnLayout(testColumns(), nil)
	r := NewResizeController(l)
	col, _ := l.Column("id")

	r.StartDrag(col, 0)
	r.PointerMove(40)
	if got := l.LeftFrozenWidth(); got != 120+200 {
		t.Errorf("Expected left frozen width 320, got %d", got)
	}
}
