package opengl

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-theft-auto/grid"
)

// testSnapshot: id frozen left (80), a and b in the center (100 each), act
// frozen right (60), three rows, scrolled 30px right.
func testSnapshot() grid.Snapshot {
	groups := grid.ColumnGroups{
		LeftFrozen:  []grid.Column{{Field: "id", Header: "ID"}},
		Center:      []grid.Column{{Field: "a", Header: "A", Sortable: true}, {Field: "b", Header: "B"}},
		RightFrozen: []grid.Column{{Field: "act", Header: "Act"}},
	}
	rows := []grid.Row{{"a": "r0"}, {"a": "r1"}, {"a": "r2"}}
	return grid.Snapshot{
		Window: grid.Window{
			StartIndex: 0, EndIndex: 2, Rows: rows,
			TotalHeight: 120, ContainerHeight: 120,
		},
		Groups:           groups,
		Widths:           grid.WidthMap{"id": 80, "a": 100, "b": 100, "act": 60},
		LeftFrozenWidth:  80,
		RightFrozenWidth: 60,
		TotalWidth:       340,
		Header:           grid.HeaderOffset{ScrollLeft: 30},
		ScrollLeft:       30,
	}
}

var (
	testMetrics  = Metrics{RowHeight: 40, HeaderHeight: 50}
	testViewport = Viewport{W: 300, H: 170}
)

func buildTestScene(s grid.Snapshot) Scene {
	return BuildScene(SceneInput{
		Snapshot: s,
		Metrics:  testMetrics,
		Viewport: testViewport,
		Theme:    DefaultTheme(),
		CellText: func(r grid.Row, c grid.Column) string {
			if v, ok := r[c.Field].(string); ok {
				return v
			}
			return ""
		},
	})
}

func quadsOf(sc Scene, c Color) []Rect {
	var out []Rect
	for _, q := range sc.Quads {
		if q.Color == c {
			out = append(out, q.Rect)
		}
	}
	return out
}

func TestHitHeader(t *testing.T) {
	s := testSnapshot()
	tests := []struct {
		name string
		x, y float32
		want HeaderHit
		ok   bool
	}{
		{"left frozen", 10, 20, HeaderHit{Field: "id"}, true},
		{"left frozen handle", 78, 20, HeaderHit{Field: "id", Handle: true}, true},
		// a starts at 50 after scrolling but is clipped to the center region
		{"center clipped", 85, 20, HeaderHit{Field: "a"}, true},
		{"center handle", 145, 10, HeaderHit{Field: "a", Handle: true}, true},
		{"center under right frozen", 245, 10, HeaderHit{Field: "act"}, true},
		{"last center visible pixel", 239, 10, HeaderHit{Field: "b"}, true},
		{"body", 100, 60, HeaderHit{}, false},
		{"above", 100, -1, HeaderHit{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HitHeader(s, testMetrics, testViewport, tt.x, tt.y)
			if ok != tt.ok {
				t.Fatalf("HitHeader(%v, %v) ok = %v, want %v", tt.x, tt.y, ok, tt.ok)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("HitHeader(%v, %v) mismatch (-want +got):\n%s", tt.x, tt.y, diff)
			}
		})
	}
}

func TestBuildScene_Stripes(t *testing.T) {
	sc := buildTestScene(testSnapshot())
	got := quadsOf(sc, DefaultTheme().Stripe)
	want := []Rect{{X: 0, Y: 90, W: 300, H: 40}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Stripes mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildScene_FrozenRegions(t *testing.T) {
	sc := buildTestScene(testSnapshot())
	got := quadsOf(sc, DefaultTheme().Frozen)
	want := []Rect{
		{X: 0, Y: 50, W: 80, H: 120},
		{X: 240, Y: 50, W: 60, H: 120},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Frozen regions mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildScene_CenterLabelsClipped(t *testing.T) {
	sc := buildTestScene(testSnapshot())
	var got []Label
	for _, l := range sc.Labels {
		if l.Text == "r0" {
			got = append(got, l)
		}
	}
	want := []Label{{
		X:     58, // 80 - 30 scroll + 8 padding
		Y:     62, // 50 + (40 - 16) / 2
		Text:  "r0",
		Color: DefaultTheme().Text,
		Clip:  Rect{X: 80, Y: 50, W: 62, H: 40},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Label mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildScene_HeaderLabels(t *testing.T) {
	sc := buildTestScene(testSnapshot())
	var texts []string
	for _, l := range sc.Labels {
		if l.Y < testMetrics.HeaderHeight {
			texts = append(texts, l.Text)
		}
	}
	if diff := cmp.Diff([]string{"ID", "A", "B", "Act"}, texts); diff != "" {
		t.Errorf("Header labels mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildScene_ScrolledRowClippedToBody(t *testing.T) {
	s := testSnapshot()
	s.ScrollTop = 20
	sc := buildTestScene(s)
	for _, l := range sc.Labels {
		if l.Text != "r0" {
			continue
		}
		if l.Clip.Y != 50 || l.Clip.H != 20 {
			t.Errorf("Expected r0 clipped to y 50 height 20, got %+v", l.Clip)
		}
		return
	}
	t.Fatal("Expected a label for r0")
}

func TestBuildScene_ResizeIndicator(t *testing.T) {
	s := testSnapshot()
	s.Resizing = grid.DragSession{Active: true, Field: "a"}
	sc := buildTestScene(s)
	got := quadsOf(sc, DefaultTheme().Accent)
	want := []Rect{{X: 148, Y: 0, W: 2, H: 170}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Indicator mismatch (-want +got):\n%s", diff)
	}

	s.Resizing = grid.DragSession{}
	if got := quadsOf(buildTestScene(s), DefaultTheme().Accent); len(got) != 0 {
		t.Errorf("Expected no indicator without a drag, got %v", got)
	}
}

func TestBuildScene_EmptyWindow(t *testing.T) {
	s := testSnapshot()
	s.Window = grid.Window{StartIndex: 0, EndIndex: -1}
	sc := buildTestScene(s)
	for _, l := range sc.Labels {
		if l.Y >= testMetrics.HeaderHeight {
			t.Errorf("Expected only header labels, got %+v", l)
		}
	}
	if got := quadsOf(sc, DefaultTheme().Stripe); len(got) != 0 {
		t.Errorf("Expected no stripes, got %v", got)
	}
}

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	if got := a.Intersect(Rect{X: 5, Y: 5, W: 10, H: 10}); got != (Rect{X: 5, Y: 5, W: 5, H: 5}) {
		t.Errorf("Intersect = %+v", got)
	}
	if got := a.Intersect(Rect{X: 10, Y: 0, W: 5, H: 5}); !got.Empty() {
		t.Errorf("Expected touching rects to have no overlap, got %+v", got)
	}
}
