package grid

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/go-theft-auto/grid"

// Initialization errors. Everything after Init degrades instead of failing.
var (
	ErrNoRenderer       = errors.New("grid requires a renderer")
	ErrNoHost           = errors.New("grid host supports events but no host was given")
	ErrInvalidRowHeight = errors.New("row height must be positive")
	ErrInvalidMetrics   = errors.New("header height and buffer size must not be negative")
)

// Renderer draws a snapshot. It is the projection slot of the grid: without
// one nothing can be shown, so Init fails.
type Renderer interface {
	Render(s Snapshot)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(Snapshot)

// Render calls f(s).
func (f RendererFunc) Render(s Snapshot) { f(s) }

// EventKind identifies a host event source.
type EventKind int

const (
	EventBodyScroll      EventKind = iota // Body scrolled; ScrollTop and ScrollLeft set
	EventHeaderScroll                     // Header scrolled directly; ScrollLeft set
	EventContainerResize                  // Container resized; ClientWidth and ClientHeight set
	EventPointerMove                      // Pointer moved anywhere; ClientX set
	EventPointerUp                        // Pointer released anywhere
)

var eventNames = [...]string{"body-scroll", "header-scroll", "container-resize", "pointer-move", "pointer-up"}

// String returns the event name.
func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is a raw host event payload.
type Event struct {
	Kind         EventKind
	ScrollTop    float64
	ScrollLeft   float64
	ClientWidth  float64
	ClientHeight float64
	ClientX      float64
}

// EventHandler receives host events.
type EventHandler func(Event)

// Host is an environment with direct access to scrollable elements and
// event sources. Every Listen is paired with its ReleaseFunc at Teardown.
type Host interface {
	Listen(kind EventKind, h EventHandler) (ReleaseFunc, error)
	SetHeaderScrollLeft(px float64)
	SetBodyScrollLeft(px float64)
}

// Config is the input of Init.
type Config struct {
	Columns []Column
	Rows    []Row

	RowHeight    float64 // 0 means DefaultRowHeight
	HeaderHeight float64
	BufferSize   int

	ContainerClientWidth  float64 // Initial viewport size
	ContainerClientHeight float64

	StorageKey string // Defaults to DefaultStorageKey
	Store      KV     // Nil disables width persistence

	Renderer Renderer

	// HostSupportsEvents enables listener registration on Host. Without it
	// the grid is driven only by direct method calls.
	HostSupportsEvents bool
	Host               Host

	// Scheduler coalesces scroll recomputes and debounces resizes. Nil
	// recomputes synchronously.
	Scheduler Scheduler
}

// DefaultConfig returns a config with the default row metrics.
func DefaultConfig() Config {
	return Config{
		RowHeight:    DefaultRowHeight,
		HeaderHeight: DefaultHeaderHeight,
		BufferSize:   DefaultBufferSize,
		StorageKey:   DefaultStorageKey,
	}
}

// Snapshot is everything a renderer needs after one recompute.
type Snapshot struct {
	Window           Window
	Sort             SortState
	Groups           ColumnGroups
	Widths           WidthMap
	LeftFrozenWidth  int
	RightFrozenWidth int
	TotalWidth       int
	Header           HeaderOffset
	ScrollTop        float64
	ScrollLeft       float64
	Resizing         DragSession
}

// Grid is one live grid instance. It is not safe for concurrent use: every
// method, and every Scheduler callback, must run on the host's UI goroutine.
type Grid struct {
	id     string
	cfg    Config
	layout *ColumnLayout
	sorter SortEngine
	resize *ResizeController
	sync   *ScrollSynchronizer
	widths *WidthPersistence

	rows         []Row
	order        *orderSnapshot
	restoreOrder bool

	scrollTop    float64
	scrollLeft   float64
	clientWidth  float64
	clientHeight float64
	window       Window

	frame      pending // scroll recompute, one per frame
	resizeWait pending // container resize debounce

	releases releaseList
	torn     bool

	logger         *slog.Logger
	registerer     prometheus.Registerer
	metrics        *Metrics
	tracer         trace.Tracer
	now            func() time.Time
	resizeDebounce time.Duration
	syncWindow     time.Duration
	minWidth       int
	onCursor       func(CursorHint)
	persistTimeout time.Duration
}

// Init validates cfg, builds the layout (applying persisted widths),
// registers host listeners and renders the first window.
func Init(cfg Config, opts ...Option) (*Grid, error) {
	if cfg.RowHeight == 0 {
		cfg.RowHeight = DefaultRowHeight
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	g := &Grid{
		id:             uuid.NewString(),
		cfg:            cfg,
		rows:           cfg.Rows,
		clientWidth:    cfg.ContainerClientWidth,
		clientHeight:   cfg.ContainerClientHeight,
		logger:         gridLogger,
		tracer:         otel.Tracer(tracerName),
		now:            time.Now,
		resizeDebounce: 50 * time.Millisecond,
		syncWindow:     DefaultSyncWindow,
		minWidth:       MinColumnWidth,
		persistTimeout: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("grid", g.id)

	if g.registerer != nil {
		g.metrics = NewMetrics()
		if err := g.metrics.Register(g.registerer); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}

	g.widths = NewWidthPersistence(cfg.Store, cfg.StorageKey)
	g.widths.logger = g.logger
	g.widths.tracer = g.tracer
	g.widths.metrics = g.metrics

	ctx, cancel := g.persistCtx()
	persisted, _ := g.widths.Load(ctx)
	cancel()
	g.layout = newColumnLayout(cfg.Columns, persisted, g.minWidth, g.logger)

	g.resize = NewResizeController(g.layout)
	g.resize.SetMinWidth(g.minWidth)
	g.resize.OnCursor = g.onCursor
	g.sync = NewScrollSynchronizer(g.syncWindow)

	if g.restoreOrder {
		g.order = takeOrderSnapshot(g.rows)
	}

	if cfg.HostSupportsEvents {
		if err := g.listen(); err != nil {
			if rerr := g.releases.unwind(); rerr != nil {
				g.logger.Warn("release after failed init", "error", rerr)
			}
			return nil, err
		}
	}

	g.logger.Debug("grid initialized",
		"columns", len(cfg.Columns),
		"rows", len(g.rows),
		"listeners", g.releases.Len(),
		"persistedWidths", len(persisted))

	g.Recompute()
	return g, nil
}

func validateConfig(cfg Config) error {
	if cfg.Renderer == nil {
		return ErrNoRenderer
	}
	if cfg.RowHeight < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRowHeight, cfg.RowHeight)
	}
	if cfg.HeaderHeight < 0 || cfg.BufferSize < 0 {
		return fmt.Errorf("%w: header %v, buffer %d", ErrInvalidMetrics, cfg.HeaderHeight, cfg.BufferSize)
	}
	if cfg.HostSupportsEvents && cfg.Host == nil {
		return ErrNoHost
	}
	return ValidateColumns(cfg.Columns)
}

// listen registers one handler per event source. On error the caller
// unwinds whatever was already acquired.
func (g *Grid) listen() error {
	for _, kind := range []EventKind{
		EventHeaderScroll,
		EventBodyScroll,
		EventContainerResize,
		EventPointerMove,
		EventPointerUp,
	} {
		release, err := g.cfg.Host.Listen(kind, g.dispatch)
		if err != nil {
			return fmt.Errorf("listen %s: %w", kind, err)
		}
		g.releases.add(kind.String(), release)
	}
	return nil
}

func (g *Grid) dispatch(ev Event) {
	switch ev.Kind {
	case EventBodyScroll:
		g.OnBodyScroll(ev.ScrollTop, ev.ScrollLeft)
	case EventHeaderScroll:
		if left, ok := g.OnHeaderScroll(ev.ScrollLeft); ok {
			g.cfg.Host.SetBodyScrollLeft(left)
		}
	case EventContainerResize:
		g.OnContainerResize(ev.ClientWidth, ev.ClientHeight)
	case EventPointerMove:
		g.PointerMove(ev.ClientX)
	case EventPointerUp:
		g.PointerUp()
	}
}

// ID returns the instance identifier used in logs.
func (g *Grid) ID() string { return g.id }

// Teardown cancels pending work and releases every listener, last acquired
// first. It is idempotent; release failures are collected and returned.
func (g *Grid) Teardown() error {
	if g.torn {
		return nil
	}
	g.torn = true
	g.frame.stop()
	g.resizeWait.stop()
	if g.resize.Active() {
		g.resize.EndDrag()
	}
	err := g.releases.unwind()
	g.logger.Debug("grid torn down", "error", err)
	return err
}

// Params returns the virtualization inputs for the current state.
func (g *Grid) Params() Params {
	return Params{
		RowCount:              len(g.rows),
		RowHeight:             g.cfg.RowHeight,
		HeaderHeight:          g.cfg.HeaderHeight,
		ContainerClientHeight: g.clientHeight,
		ScrollTop:             g.scrollTop,
		BufferSize:            g.cfg.BufferSize,
	}
}

// Recompute recalculates the window now and renders.
func (g *Grid) Recompute() {
	if g.torn {
		return
	}
	g.window = ComputeWindow(g.Params(), g.rows)
	g.metrics.windowComputed(g.window)
	g.render()
}

func (g *Grid) render() {
	g.cfg.Renderer.Render(g.Snapshot())
}

// Window returns the last computed window.
func (g *Grid) Window() Window { return g.window }

// Rows returns the row set in its current order.
func (g *Grid) Rows() []Row { return g.rows }

// Layout returns the column layout.
func (g *Grid) Layout() *ColumnLayout { return g.layout }

// SortState returns the current sort.
func (g *Grid) SortState() SortState { return g.sorter.State() }

// Snapshot returns the current observable state.
func (g *Grid) Snapshot() Snapshot {
	return Snapshot{
		Window:           g.window,
		Sort:             g.sorter.State(),
		Groups:           g.layout.Groups(),
		Widths:           g.layout.Widths(),
		LeftFrozenWidth:  g.layout.LeftFrozenWidth(),
		RightFrozenWidth: g.layout.RightFrozenWidth(),
		TotalWidth:       g.layout.TotalWidth(),
		Header:           HeaderOffset{ScrollLeft: g.sync.ScrollLeft()},
		ScrollTop:        g.scrollTop,
		ScrollLeft:       g.scrollLeft,
		Resizing:         g.resize.Session(),
	}
}

// OnBodyScroll records a body scroll. The header follows immediately; the
// window is recomputed on the next frame, so a burst of scroll events costs
// one recompute.
func (g *Grid) OnBodyScroll(scrollTop, scrollLeft float64) {
	if g.torn {
		return
	}
	g.scrollTop = scrollTop
	g.scrollLeft = scrollLeft

	if off, ok := g.sync.OnBodyScroll(g.now(), scrollLeft); ok && g.cfg.Host != nil {
		g.cfg.Host.SetHeaderScrollLeft(off.ScrollLeft)
	}

	if g.cfg.Scheduler == nil {
		g.Recompute()
		return
	}
	g.frame.replace(g.cfg.Scheduler.RequestFrame(func() {
		g.frame.done()
		g.Recompute()
	}))
}

// OnHeaderScroll records direct header scroll input and returns the
// scrollLeft the body must take. It returns false for echoes of a
// synchronized write.
func (g *Grid) OnHeaderScroll(scrollLeft float64) (float64, bool) {
	if g.torn {
		return 0, false
	}
	left, ok := g.sync.OnHeaderScroll(g.now(), scrollLeft)
	if ok {
		g.scrollLeft = left
	}
	return left, ok
}

// OnContainerResize records a new viewport size. The recompute waits until
// resizing settles; every resize restarts the wait.
func (g *Grid) OnContainerResize(clientWidth, clientHeight float64) {
	if g.torn {
		return
	}
	g.clientWidth = clientWidth
	g.clientHeight = clientHeight

	if g.cfg.Scheduler == nil {
		g.Recompute()
		return
	}
	g.resizeWait.replace(g.cfg.Scheduler.AfterFunc(g.resizeDebounce, func() {
		g.resizeWait.done()
		g.Recompute()
	}))
}

// Sort toggles sorting on field, reorders the rows in place and recomputes.
// The scroll position is kept, so the same indices may now show other rows.
// Unknown and non-sortable fields are ignored.
func (g *Grid) Sort(field string) (SortState, bool) {
	if g.torn {
		return g.sorter.State(), false
	}
	col, ok := g.layout.Column(field)
	if !ok {
		return g.sorter.State(), false
	}
	state, ok := g.sorter.Toggle(col)
	if !ok {
		return state, false
	}

	_, span := g.tracer.Start(context.Background(), "grid.sort", trace.WithAttributes(
		attribute.String("grid.sort.field", field),
		attribute.String("grid.sort.direction", state.Direction.String()),
		attribute.Int("grid.rows", len(g.rows)),
	))
	if state.Active() {
		g.sorter.Apply(g.rows)
	} else if g.restoreOrder {
		if !g.order.restore(g.rows) {
			g.logger.Warn("row set changed size since it was assigned; order not restored")
		}
	}
	span.End()

	g.metrics.sorted(state.Direction)
	g.logger.Debug("sorted", "field", field, "direction", state.Direction)
	g.Recompute()
	return state, true
}

// StartResize begins a resize drag on field at pointer position clientX.
func (g *Grid) StartResize(field string, clientX float64) bool {
	if g.torn {
		return false
	}
	col, ok := g.layout.Column(field)
	if !ok {
		return false
	}
	g.resize.StartDrag(col, clientX)
	return true
}

// PointerMove resizes the dragged column. Every intermediate width is
// rendered synchronously so the drag tracks the pointer.
func (g *Grid) PointerMove(clientX float64) {
	if g.torn {
		return
	}
	if _, changed := g.resize.PointerMove(clientX); changed {
		g.render()
	}
}

// PointerUp ends a resize drag and persists the widths. Without a drag it
// does nothing.
func (g *Grid) PointerUp() {
	if g.torn || !g.resize.EndDrag() {
		return
	}
	g.metrics.resizeCommitted()
	g.saveWidths()
	g.render()
}

// Key maps a key press to a scroll command for the host to apply.
func (g *Grid) Key(ev KeyEvent) (ScrollCommand, bool) {
	return KeyScroll(ev, g.Params().ContainerHeight()*0.8)
}

// ScrollExtent returns the scroll bounds for the current content.
func (g *Grid) ScrollExtent() ScrollExtent {
	return ScrollExtent{
		MaxLeft: max(0, float64(g.layout.TotalWidth())-g.clientWidth),
		MaxTop:  MaxScrollTop(g.Params()),
	}
}

// ScrollPos returns the last reported body scroll position.
func (g *Grid) ScrollPos() ScrollPos {
	return ScrollPos{Left: g.scrollLeft, Top: g.scrollTop}
}

// SetRows replaces the row set. An active sort is applied to the new rows.
func (g *Grid) SetRows(rows []Row) {
	if g.torn {
		return
	}
	g.rows = rows
	if g.restoreOrder {
		g.order = takeOrderSnapshot(rows)
	}
	g.sorter.Apply(g.rows)
	g.Recompute()
}

// ResetWidths returns every column to its configured or default width.
func (g *Grid) ResetWidths() {
	if g.torn {
		return
	}
	g.layout.ResetWidths()
	g.render()
}

// ClearSavedWidths deletes the persisted widths and resets the layout.
func (g *Grid) ClearSavedWidths() {
	if g.torn {
		return
	}
	ctx, cancel := g.persistCtx()
	defer cancel()
	g.widths.Clear(ctx)
	g.ResetWidths()
}

func (g *Grid) saveWidths() {
	ctx, cancel := g.persistCtx()
	defer cancel()
	g.widths.Save(ctx, g.layout.Widths())
}

func (g *Grid) persistCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), g.persistTimeout)
}

// CellValue returns the display text of column's cell in row.
func (g *Grid) CellValue(row Row, column Column) string {
	return CellValue(row, column)
}

// RowKey returns the stable index of the i-th rendered row.
func (g *Grid) RowKey(i int) int { return g.window.StartIndex + i }

// SortIcon returns the sort indicator for column's header.
func (g *Grid) SortIcon(column Column) string { return g.sorter.Icon(column) }

// AriaSort returns the aria-sort value for column's header.
func (g *Grid) AriaSort(column Column) string { return g.sorter.AriaSort(column) }

// VisibleColumns returns the columns in display order.
func (g *Grid) VisibleColumns() []Column {
	return g.layout.Groups().All()
}
