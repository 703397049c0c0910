package grid_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/go-theft-auto/grid"
	"github.com/go-theft-auto/grid/internal/sample"
	"github.com/go-theft-auto/grid/storage/inmem"
)

// recorder is a renderer that keeps the last snapshot.
type recorder struct {
	renders int
	last    grid.Snapshot
}

func (r *recorder) Render(s grid.Snapshot) {
	r.renders++
	r.last = s
}

// fakeHost records listener registration, release and scroll writes.
type fakeHost struct {
	handlers   map[grid.EventKind]grid.EventHandler
	released   []grid.EventKind
	failOn     map[grid.EventKind]bool
	releaseErr map[grid.EventKind]error
	headerLeft []float64
	bodyLeft   []float64
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		handlers:   map[grid.EventKind]grid.EventHandler{},
		failOn:     map[grid.EventKind]bool{},
		releaseErr: map[grid.EventKind]error{},
	}
}

func (h *fakeHost) Listen(kind grid.EventKind, fn grid.EventHandler) (grid.ReleaseFunc, error) {
	if h.failOn[kind] {
		return nil, errors.New("no such element")
	}
	h.handlers[kind] = fn
	return func() error {
		delete(h.handlers, kind)
		h.released = append(h.released, kind)
		return h.releaseErr[kind]
	}, nil
}

func (h *fakeHost) fire(ev grid.Event) {
	if fn, ok := h.handlers[ev.Kind]; ok {
		fn(ev)
	}
}

func (h *fakeHost) SetHeaderScrollLeft(px float64) { h.headerLeft = append(h.headerLeft, px) }
func (h *fakeHost) SetBodyScrollLeft(px float64)   { h.bodyLeft = append(h.bodyLeft, px) }

func newConfig(r grid.Renderer) grid.Config {
	cfg := grid.DefaultConfig()
	cfg.Columns = sample.Columns()
	cfg.Rows = sample.Rows(sample.DefaultRowCount, 1)
	cfg.ContainerClientWidth = 1200
	cfg.ContainerClientHeight = 600
	cfg.Renderer = r
	return cfg
}

func mustInit(t *testing.T, cfg grid.Config, opts ...grid.Option) *grid.Grid {
	t.Helper()
	g, err := grid.Init(cfg, opts...)
	if err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}
	t.Cleanup(func() { _ = g.Teardown() })
	return g
}

func TestInit_ConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*grid.Config)
		want   error
	}{
		{"no renderer", func(c *grid.Config) { c.Renderer = nil }, grid.ErrNoRenderer},
		{"events without host", func(c *grid.Config) { c.HostSupportsEvents = true }, grid.ErrNoHost},
		{"negative row height", func(c *grid.Config) { c.RowHeight = -1 }, grid.ErrInvalidRowHeight},
		{"negative buffer", func(c *grid.Config) { c.BufferSize = -1 }, grid.ErrInvalidMetrics},
		{"duplicate field", func(c *grid.Config) {
			c.Columns = append(c.Columns, grid.Column{Field: "id"})
		}, grid.ErrDuplicateField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newConfig(&recorder{})
			tt.mutate(&cfg)
			if _, err := grid.Init(cfg); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestInit_RendersFirstWindow(t *testing.T) {
	r := &recorder{}
	g := mustInit(t, newConfig(r))

	if r.renders != 1 {
		t.Fatalf("Expected 1 render after Init, got %d", r.renders)
	}
	w := r.last.Window
	if w.StartIndex != 0 || w.EndIndex != 35 {
		t.Errorf("Expected window (0, 35), got (%d, %d)", w.StartIndex, w.EndIndex)
	}
	if r.last.LeftFrozenWidth != 280 || r.last.RightFrozenWidth != 120 {
		t.Errorf("Unexpected frozen widths %d/%d", r.last.LeftFrozenWidth, r.last.RightFrozenWidth)
	}
	if g.ID() == "" {
		t.Error("Expected a grid ID")
	}
	if got := len(g.VisibleColumns()); got != 12 {
		t.Errorf("Expected 12 visible columns, got %d", got)
	}
}

func TestGrid_ZeroRows(t *testing.T) {
	r := &recorder{}
	cfg := newConfig(r)
	cfg.Rows = nil
	mustInit(t, cfg)

	if !r.last.Window.Empty() || r.last.Window.EndIndex != -1 {
		t.Errorf("Expected empty window, got %+v", r.last.Window)
	}
}

func TestGrid_ScrollScenario(t *testing.T) {
	r := &recorder{}
	g := mustInit(t, newConfig(r))

	g.OnBodyScroll(4000, 0)

	w := g.Window()
	if w.StartIndex != 90 || w.EndIndex != 125 || w.OffsetY != 3600 {
		t.Errorf("Expected (90, 125, 3600), got (%d, %d, %v)", w.StartIndex, w.EndIndex, w.OffsetY)
	}
	if len(w.Rows) != 36 || w.Rows[0]["id"] != 91 {
		t.Errorf("Window rows do not match the row set")
	}
	if g.RowKey(0) != 90 {
		t.Errorf("Expected row key 90, got %d", g.RowKey(0))
	}
}

func TestGrid_ScrollCoalescedPerFrame(t *testing.T) {
	t0 := time.Unix(1000, 0)
	loop := grid.NewLoop(t0)
	r := &recorder{}
	cfg := newConfig(r)
	cfg.Scheduler = loop
	g := mustInit(t, cfg, grid.WithClock(loop.Now))

	for _, top := range []float64{400, 800, 1200, 1600, 4000} {
		g.OnBodyScroll(top, 0)
	}
	if r.renders != 1 {
		t.Fatalf("Expected no render before the frame, got %d renders", r.renders)
	}
	if loop.Pending() != 1 {
		t.Fatalf("Expected one pending frame, got %d", loop.Pending())
	}

	loop.Tick(t0.Add(16 * time.Millisecond))
	if r.renders != 2 {
		t.Fatalf("Expected exactly one recompute for the burst, got %d renders", r.renders-1)
	}
	if r.last.Window.StartIndex != 90 {
		t.Errorf("Expected the last scroll position to win, start %d", r.last.Window.StartIndex)
	}
}

func TestGrid_ResizeDebounced(t *testing.T) {
	t0 := time.Unix(1000, 0)
	loop := grid.NewLoop(t0)
	r := &recorder{}
	cfg := newConfig(r)
	cfg.Scheduler = loop
	g := mustInit(t, cfg)

	g.OnContainerResize(1200, 400)
	loop.Tick(t0.Add(30 * time.Millisecond))
	g.OnContainerResize(1200, 900)
	loop.Tick(t0.Add(60 * time.Millisecond))
	if r.renders != 1 {
		t.Fatalf("Expected no recompute while resizing, got %d renders", r.renders)
	}

	loop.Tick(t0.Add(90 * time.Millisecond))
	if r.renders != 2 {
		t.Fatalf("Expected one recompute after resizing settled, got %d renders", r.renders)
	}
	if r.last.Window.ContainerHeight != 850 {
		t.Errorf("Expected the final size to be used, container height %v", r.last.Window.ContainerHeight)
	}
}

func TestGrid_HostEventsAndScrollSync(t *testing.T) {
	now := time.Unix(1000, 0)
	host := newFakeHost()
	r := &recorder{}
	cfg := newConfig(r)
	cfg.HostSupportsEvents = true
	cfg.Host = host
	mustInit(t, cfg, grid.WithClock(func() time.Time { return now }))

	if len(host.handlers) != 5 {
		t.Fatalf("Expected 5 listeners, got %d", len(host.handlers))
	}

	host.fire(grid.Event{Kind: grid.EventBodyScroll, ScrollTop: 4000, ScrollLeft: 120})
	if len(host.headerLeft) != 1 || host.headerLeft[0] != 120 {
		t.Fatalf("Expected header scrolled to 120, got %v", host.headerLeft)
	}
	if r.last.Window.StartIndex != 90 {
		t.Errorf("Expected vertical scroll to recompute, start %d", r.last.Window.StartIndex)
	}

	// Echo of the header write
	host.fire(grid.Event{Kind: grid.EventHeaderScroll, ScrollLeft: 120})
	if len(host.bodyLeft) != 0 {
		t.Errorf("Expected header echo to be ignored, body written %v", host.bodyLeft)
	}

	// Direct header input
	now = now.Add(time.Second)
	host.fire(grid.Event{Kind: grid.EventHeaderScroll, ScrollLeft: 300})
	if len(host.bodyLeft) != 1 || host.bodyLeft[0] != 300 {
		t.Errorf("Expected body scrolled to 300, got %v", host.bodyLeft)
	}
}

func TestGrid_TeardownReleasesInReverse(t *testing.T) {
	host := newFakeHost()
	loop := grid.NewLoop(time.Unix(0, 0))
	r := &recorder{}
	cfg := newConfig(r)
	cfg.HostSupportsEvents = true
	cfg.Host = host
	cfg.Scheduler = loop
	g, err := grid.Init(cfg)
	if err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}

	g.OnBodyScroll(4000, 0)
	g.OnContainerResize(800, 800)
	if loop.Pending() != 2 {
		t.Fatalf("Expected pending frame and timer, got %d", loop.Pending())
	}

	if err := g.Teardown(); err != nil {
		t.Fatalf("Teardown() returned error: %v", err)
	}
	want := []grid.EventKind{grid.EventPointerUp, grid.EventPointerMove, grid.EventContainerResize, grid.EventBodyScroll, grid.EventHeaderScroll}
	if len(host.released) != len(want) {
		t.Fatalf("Expected %d releases, got %v", len(want), host.released)
	}
	for i := range want {
		if host.released[i] != want[i] {
			t.Errorf("release %d: got %v, want %v", i, host.released[i], want[i])
		}
	}
	if loop.Pending() != 0 {
		t.Errorf("Expected pending work canceled, got %d", loop.Pending())
	}

	renders := r.renders
	loop.Tick(time.Unix(10, 0))
	g.OnBodyScroll(0, 0)
	g.Sort("salary")
	if r.renders != renders {
		t.Error("Grid rendered after teardown")
	}

	if err := g.Teardown(); err != nil || len(host.released) != len(want) {
		t.Errorf("Second Teardown should be a no-op, err %v, releases %d", err, len(host.released))
	}
}

func TestGrid_TeardownCollectsReleaseErrors(t *testing.T) {
	host := newFakeHost()
	host.releaseErr[grid.EventBodyScroll] = errors.New("detached")
	host.releaseErr[grid.EventPointerUp] = errors.New("gone")
	cfg := newConfig(&recorder{})
	cfg.HostSupportsEvents = true
	cfg.Host = host
	g, err := grid.Init(cfg)
	if err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}

	err = g.Teardown()
	if err == nil {
		t.Fatal("Expected release errors")
	}
	for _, s := range []string{"detached", "gone"} {
		if !strings.Contains(err.Error(), s) {
			t.Errorf("Expected %q in %v", s, err)
		}
	}
	if len(host.released) != 5 {
		t.Errorf("Expected every listener released despite errors, got %d", len(host.released))
	}
}

func TestInit_ListenFailureUnwinds(t *testing.T) {
	host := newFakeHost()
	host.failOn[grid.EventPointerMove] = true
	cfg := newConfig(&recorder{})
	cfg.HostSupportsEvents = true
	cfg.Host = host

	if _, err := grid.Init(cfg); err == nil {
		t.Fatal("Expected Init to fail")
	}
	want := []grid.EventKind{grid.EventContainerResize, grid.EventBodyScroll, grid.EventHeaderScroll}
	if len(host.released) != len(want) {
		t.Fatalf("Expected %v released, got %v", want, host.released)
	}
	for i := range want {
		if host.released[i] != want[i] {
			t.Errorf("release %d: got %v, want %v", i, host.released[i], want[i])
		}
	}
}

func TestGrid_SortSalary(t *testing.T) {
	reg := prometheus.NewRegistry()
	spans := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(spans)))
	r := &recorder{}
	g := mustInit(t, newConfig(r), grid.WithRegisterer(reg), grid.WithTracerProvider(tp))

	g.OnBodyScroll(4000, 0)
	state, ok := g.Sort("salary")
	if !ok || state != (grid.SortState{Field: "salary", Direction: grid.SortAscending}) {
		t.Fatalf("Unexpected sort state %+v %v", state, ok)
	}
	rows := g.Rows()
	for i := 1; i < len(rows); i++ {
		if rows[i-1]["salary"].(int) > rows[i]["salary"].(int) {
			t.Fatalf("Rows not ordered by salary at %d", i)
		}
	}
	// Scroll position is kept; the window shows the same indices.
	if r.last.Window.StartIndex != 90 || r.last.Sort != state {
		t.Errorf("Unexpected snapshot after sort: start %d sort %+v", r.last.Window.StartIndex, r.last.Sort)
	}
	salary, _ := g.Layout().Column("salary")
	if g.SortIcon(salary) != "▲" || g.AriaSort(salary) != "ascending" {
		t.Errorf("Unexpected indicator %q/%q", g.SortIcon(salary), g.AriaSort(salary))
	}

	if _, ok := g.Sort("actions"); ok {
		t.Error("Expected non-sortable column to be ignored")
	}
	if _, ok := g.Sort("nope"); ok {
		t.Error("Expected unknown column to be ignored")
	}
	g.Sort("salary")

	expected := `
# HELP grid_sorts_total Sort toggles by resulting direction
# TYPE grid_sorts_total counter
grid_sorts_total{direction="asc"} 1
grid_sorts_total{direction="desc"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "grid_sorts_total"); err != nil {
		t.Error(err)
	}

	got := spans.GetSpans()
	if len(got) != 2 || got[0].Name != "grid.sort" {
		t.Errorf("Expected 2 grid.sort spans, got %d", len(got))
	}
}

func TestGrid_RestoreOriginalOrder(t *testing.T) {
	cfg := newConfig(&recorder{})
	cfg.Rows = sample.Rows(50, 3)
	g := mustInit(t, cfg, grid.WithRestoreOriginalOrder(true))

	for range 3 {
		g.Sort("name")
	}
	for i, row := range g.Rows() {
		if row["id"] != i+1 {
			t.Fatalf("Expected original order restored, row %d has id %v", i, row["id"])
		}
	}
}

func TestGrid_ClearedSortKeepsOrder(t *testing.T) {
	cfg := newConfig(&recorder{})
	cfg.Rows = sample.Rows(50, 3)
	g := mustInit(t, cfg)

	g.Sort("id")
	g.Sort("id")
	g.Sort("id")
	if g.SortState().Active() {
		t.Fatal("Expected sort cleared")
	}
	if g.Rows()[0]["id"] != 50 {
		t.Errorf("Expected descending order left in place, first id %v", g.Rows()[0]["id"])
	}
}

func TestGrid_SetRowsReappliesSort(t *testing.T) {
	r := &recorder{}
	g := mustInit(t, newConfig(r))
	g.Sort("id")
	g.Sort("id") // descending

	g.SetRows(sample.Rows(20, 9))
	if g.Rows()[0]["id"] != 20 {
		t.Errorf("Expected new rows sorted descending, first id %v", g.Rows()[0]["id"])
	}
	if r.last.Window.EndIndex != 19 {
		t.Errorf("Expected window recomputed for 20 rows, end %d", r.last.Window.EndIndex)
	}
}

func TestGrid_ResizeDragPersists(t *testing.T) {
	store := inmem.New()
	reg := prometheus.NewRegistry()
	var hints []grid.CursorHint
	r := &recorder{}
	cfg := newConfig(r)
	cfg.Store = store
	g := mustInit(t, cfg, grid.WithRegisterer(reg), grid.WithCursorObserver(func(h grid.CursorHint) {
		hints = append(hints, h)
	}))

	if !g.StartResize("email", 600) {
		t.Fatal("Expected resize to start")
	}
	renders := r.renders
	g.PointerMove(400) // 250 - 200
	if r.renders != renders+1 || r.last.Widths["email"] != 50 {
		t.Errorf("Expected synchronous render at width 50, got %d", r.last.Widths["email"])
	}
	g.PointerMove(200) // clamped, unchanged
	if r.renders != renders+1 {
		t.Error("Expected no render for an unchanged width")
	}
	if store.Len() != 0 {
		t.Error("Widths persisted before the drag ended")
	}

	g.PointerUp()
	if store.Len() != 1 {
		t.Fatal("Expected widths persisted on drag end")
	}
	if r.last.Resizing.Active {
		t.Error("Expected drag cleared in the snapshot")
	}
	if len(hints) != 2 || hints[0].Cursor != "col-resize" || hints[1].Cursor != "" {
		t.Errorf("Unexpected cursor hints %+v", hints)
	}
	if err := testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP grid_resize_commits_total Completed column resize drags
# TYPE grid_resize_commits_total counter
grid_resize_commits_total 1
`), "grid_resize_commits_total"); err != nil {
		t.Error(err)
	}

	// Configured widths win over persisted ones; unconfigured columns take
	// the persisted width.
	cols := sample.Columns()
	for i := range cols {
		if cols[i].Field == "email" {
			cols[i].Width = ""
		}
	}
	cfg2 := newConfig(&recorder{})
	cfg2.Columns = cols
	cfg2.Store = store
	g2 := mustInit(t, cfg2, grid.WithRegisterer(reg))
	if got := g2.Layout().Width("email"); got != 50 {
		t.Errorf("Expected persisted width 50, got %d", got)
	}

	g2.ClearSavedWidths()
	if store.Len() != 0 {
		t.Error("Expected saved widths cleared")
	}
	if got := g2.Layout().Width("email"); got != grid.DefaultColumnWidth {
		t.Errorf("Expected default width after clearing, got %d", got)
	}
}

func TestGrid_PointerUpWithoutDrag(t *testing.T) {
	store := inmem.New()
	cfg := newConfig(&recorder{})
	cfg.Store = store
	g := mustInit(t, cfg)

	g.PointerMove(500)
	g.PointerUp()
	if store.Len() != 0 {
		t.Error("Expected nothing persisted without a drag")
	}
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("denied") }
func (brokenStore) Set(context.Context, string, []byte) error   { return errors.New("denied") }
func (brokenStore) Delete(context.Context, string) error        { return errors.New("denied") }

func TestGrid_StorageFailuresDegrade(t *testing.T) {
	cfg := newConfig(&recorder{})
	cfg.Store = brokenStore{}
	g := mustInit(t, cfg)

	g.StartResize("email", 0)
	g.PointerMove(30)
	g.PointerUp()
	if got := g.Layout().Width("email"); got != 280 {
		t.Errorf("Expected in-memory width 280, got %d", got)
	}
}

func TestGrid_KeyboardScroll(t *testing.T) {
	g := mustInit(t, newConfig(&recorder{}))

	cmd, ok := g.Key(grid.KeyEvent{Key: grid.KeyPageDown})
	if !ok || cmd.DY != 440 {
		t.Fatalf("Expected page of 440px, got %+v", cmd)
	}
	pos := cmd.Apply(g.ScrollPos(), g.ScrollExtent())
	g.OnBodyScroll(pos.Top, pos.Left)
	if g.Window().StartIndex != 1 {
		t.Errorf("Expected start 1 after a page down, got %d", g.Window().StartIndex)
	}

	end, _ := g.Key(grid.KeyEvent{Key: grid.KeyDown, Mods: grid.ModCtrl})
	pos = end.Apply(g.ScrollPos(), g.ScrollExtent())
	if pos.Top != 400000-550 {
		t.Errorf("Expected bottom scroll, got %v", pos.Top)
	}
}

func TestGrid_MetricsSharedAcrossGrids(t *testing.T) {
	reg := prometheus.NewRegistry()
	mustInit(t, newConfig(&recorder{}), grid.WithRegisterer(reg))
	mustInit(t, newConfig(&recorder{}), grid.WithRegisterer(reg))
}
