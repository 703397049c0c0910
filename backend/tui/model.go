// Package tui hosts a grid in a terminal with Bubble Tea.
//
// One terminal line is one row and one cell stands for CharWidth pixels, so
// the grid's pixel metrics carry over unchanged.
//
// Keys:
//
//	arrows, pgup/pgdn    scroll (shift for bigger steps)
//	ctrl+up/down         jump to top/bottom
//	home/end             jump to the horizontal edges (ctrl: corners)
//	tab/shift+tab        move the column focus
//	enter, s             toggle sorting on the focused column
//	+ / -                widen or narrow the focused column
//	r                    reset widths; R also forgets the saved ones
//	q, ctrl+c            quit
package tui

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-theft-auto/grid"
)

const frameInterval = time.Second / 60

// resizeStep is how far + and - move the focused column's edge, in cells.
const resizeStep = 2

type frameMsg time.Time

// Model is the Bubble Tea model driving one grid.
type Model struct {
	grid   *grid.Grid
	host   *Host
	loop   *grid.Loop
	snap   grid.Snapshot
	styles Styles

	width, height int // terminal size in cells
	focus         int // display index of the focused column
	resizing      bool
}

// New initializes a grid on a terminal host. cfg's Host, Scheduler and
// Renderer are replaced.
func New(cfg grid.Config, opts ...grid.Option) (*Model, error) {
	m := &Model{
		host:   NewHost(),
		loop:   grid.NewLoop(time.Now()),
		styles: DefaultStyles(),
	}
	cfg.Host = m.host
	cfg.HostSupportsEvents = true
	cfg.Scheduler = m.loop
	cfg.Renderer = grid.RendererFunc(func(s grid.Snapshot) { m.snap = s })

	opts = append(opts,
		grid.WithClock(m.loop.Now),
		grid.WithCursorObserver(func(h grid.CursorHint) { m.resizing = h.Cursor != "" }),
	)
	g, err := grid.Init(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("init grid: %w", err)
	}
	m.grid = g
	return m, nil
}

// Grid returns the hosted grid.
func (m *Model) Grid() *grid.Grid { return m.grid }

// Close tears the grid down. It is safe to call more than once.
func (m *Model) Close() error { return m.grid.Teardown() }

// Run starts an alt-screen program for m and tears the grid down on exit.
func Run(m *Model, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	_, err := p.Run()
	return errors.Join(err, m.Close())
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Init starts the frame loop.
func (m *Model) Init() tea.Cmd { return tick() }

// Update handles one message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.loop.Tick(time.Time(msg))
		return m, tick()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.host.Emit(grid.Event{
			Kind:         grid.EventContainerResize,
			ClientWidth:  float64(msg.Width * CharWidth),
			ClientHeight: m.clientHeight(),
		})
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) rowHeight() float64 { return m.grid.Params().RowHeight }

// bodyLines is the number of row lines: everything but header and status.
func (m *Model) bodyLines() int { return max(0, m.height-2) }

func (m *Model) clientHeight() float64 {
	return m.grid.Params().HeaderHeight + float64(m.bodyLines())*m.rowHeight()
}

func (m *Model) focused() (grid.Column, bool) {
	cols := m.grid.VisibleColumns()
	if len(cols) == 0 {
		return grid.Column{}, false
	}
	m.focus = min(max(0, m.focus), len(cols)-1)
	return cols[m.focus], true
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "tab":
		m.focus++
		m.focused()
		return nil
	case "shift+tab":
		m.focus--
		m.focused()
		return nil
	case "enter", "s":
		if col, ok := m.focused(); ok {
			m.grid.Sort(col.Field)
		}
		return nil
	case "+", "=":
		m.resizeFocused(resizeStep)
		return nil
	case "-":
		m.resizeFocused(-resizeStep)
		return nil
	case "r":
		m.grid.ResetWidths()
		return nil
	case "R":
		m.grid.ClearSavedWidths()
		return nil
	}

	ev, ok := keyEvent(msg)
	if !ok {
		return nil
	}
	if cmd, ok := m.grid.Key(ev); ok {
		m.scroll(cmd)
	}
	return nil
}

// resizeFocused runs a full drag on the focused column's edge, so the width
// is clamped and persisted the same way a pointer drag would be.
func (m *Model) resizeFocused(cells int) {
	col, ok := m.focused()
	if !ok || !m.grid.StartResize(col.Field, 0) {
		return
	}
	m.host.Emit(grid.Event{Kind: grid.EventPointerMove, ClientX: float64(cells * CharWidth)})
	m.host.Emit(grid.Event{Kind: grid.EventPointerUp})
}

// scroll applies cmd and reports the new position as a body scroll. Vertical
// positions snap to whole lines in the direction of travel.
func (m *Model) scroll(cmd grid.ScrollCommand) {
	extent := m.grid.ScrollExtent()
	pos := cmd.Apply(m.grid.ScrollPos(), extent)

	rh := m.rowHeight()
	switch {
	case cmd.Y == grid.EdgeEnd || cmd.DY > 0:
		pos.Top = math.Min(math.Ceil(pos.Top/rh), math.Ceil(extent.MaxTop/rh)) * rh
	default:
		pos.Top = math.Floor(pos.Top/rh) * rh
	}
	pos.Left = math.Round(pos.Left/CharWidth) * CharWidth

	m.host.Emit(grid.Event{Kind: grid.EventBodyScroll, ScrollTop: pos.Top, ScrollLeft: pos.Left})
}

func keyEvent(msg tea.KeyMsg) (grid.KeyEvent, bool) {
	switch msg.Type {
	case tea.KeyLeft:
		return grid.KeyEvent{Key: grid.KeyLeft}, true
	case tea.KeyRight:
		return grid.KeyEvent{Key: grid.KeyRight}, true
	case tea.KeyUp:
		return grid.KeyEvent{Key: grid.KeyUp}, true
	case tea.KeyDown:
		return grid.KeyEvent{Key: grid.KeyDown}, true
	case tea.KeyShiftLeft:
		return grid.KeyEvent{Key: grid.KeyLeft, Mods: grid.ModShift}, true
	case tea.KeyShiftRight:
		return grid.KeyEvent{Key: grid.KeyRight, Mods: grid.ModShift}, true
	case tea.KeyShiftUp:
		return grid.KeyEvent{Key: grid.KeyUp, Mods: grid.ModShift}, true
	case tea.KeyShiftDown:
		return grid.KeyEvent{Key: grid.KeyDown, Mods: grid.ModShift}, true
	case tea.KeyCtrlUp:
		return grid.KeyEvent{Key: grid.KeyUp, Mods: grid.ModCtrl}, true
	case tea.KeyCtrlDown:
		return grid.KeyEvent{Key: grid.KeyDown, Mods: grid.ModCtrl}, true
	case tea.KeyPgUp:
		return grid.KeyEvent{Key: grid.KeyPageUp}, true
	case tea.KeyPgDown:
		return grid.KeyEvent{Key: grid.KeyPageDown}, true
	case tea.KeyHome:
		return grid.KeyEvent{Key: grid.KeyHome}, true
	case tea.KeyEnd:
		return grid.KeyEvent{Key: grid.KeyEnd}, true
	case tea.KeyCtrlHome:
		return grid.KeyEvent{Key: grid.KeyHome, Mods: grid.ModCtrl}, true
	case tea.KeyCtrlEnd:
		return grid.KeyEvent{Key: grid.KeyEnd, Mods: grid.ModCtrl}, true
	}
	return grid.KeyEvent{}, false
}

// View draws the last snapshot.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	s := m.snap
	var b strings.Builder

	cols := m.grid.VisibleColumns()
	focusField := ""
	if m.focus < len(cols) {
		focusField = cols[m.focus].Field
	}
	header := layoutBand(s.Groups, s.Widths, func(col grid.Column) string {
		text := col.Header
		if icon := m.grid.SortIcon(col); icon != "" {
			text += " " + icon
		}
		if col.Field == focusField {
			text = "›" + text
		}
		return text
	}, s.Header.ScrollLeft, m.width)
	b.WriteString(m.styles.FrozenHeader.Render(header.left))
	b.WriteString(m.styles.Header.Render(header.center))
	b.WriteString(m.styles.FrozenHeader.Render(header.right))
	b.WriteByte('\n')

	first := int(s.ScrollTop / m.rowHeight())
	for line := range m.bodyLines() {
		idx := first + line
		if s.Window.ShouldRender(idx) && idx-s.Window.StartIndex < len(s.Window.Rows) {
			row := s.Window.Rows[idx-s.Window.StartIndex]
			body := layoutBand(s.Groups, s.Widths, func(col grid.Column) string {
				return grid.CellValue(row, col)
			}, s.ScrollLeft, m.width)
			style := m.styles.Cell
			if idx%2 == 1 {
				style = m.styles.Stripe
			}
			b.WriteString(m.styles.Frozen.Render(body.left))
			b.WriteString(style.Render(body.center))
			b.WriteString(m.styles.Frozen.Render(body.right))
		}
		b.WriteByte('\n')
	}

	b.WriteString(m.statusLine(s, cols))
	return b.String()
}

func (m *Model) statusLine(s grid.Snapshot, cols []grid.Column) string {
	rows := len(m.grid.Rows())
	parts := []string{fmt.Sprintf("rows %d-%d of %d", s.Window.StartIndex+1, s.Window.EndIndex+1, rows)}
	if s.Window.Empty() {
		parts[0] = "no rows"
	}
	if s.Sort.Active() {
		parts = append(parts, fmt.Sprintf("sort %s %s", s.Sort.Field, s.Sort.Direction))
	}
	if m.focus < len(cols) {
		col := cols[m.focus]
		parts = append(parts, fmt.Sprintf("%s %dpx", col.Header, s.Widths[col.Field]))
	}
	line := m.styles.Status.Render(strings.Join(parts, " │ "))
	if m.resizing {
		line += " " + m.styles.Resizing.Render("resizing")
	}
	return line
}
