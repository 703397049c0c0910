package opengl

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hashicorp/go-multierror"

	"github.com/go-theft-auto/grid"
)

// AppConfig describes the window and the grid shown in it.
type AppConfig struct {
	Title         string
	Width, Height int
	Hidden        bool // Create the window invisible, for captures

	Grid    grid.Config // Renderer, Host and Scheduler are supplied by the app
	Options []grid.Option
	Theme   Theme
}

// App is a grid in a GLFW window. GLFW must be initialized, and every
// method called, on the main thread.
type App struct {
	Window   *glfw.Window
	Renderer *Renderer
	Host     *WindowHost
	Loop     *grid.Loop
	Grid     *grid.Grid

	theme  Theme
	unbind func()
}

// Open creates the window, the GL renderer and the grid.
func Open(cfg AppConfig) (*App, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Theme == (Theme{}) {
		cfg.Theme = DefaultTheme()
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if cfg.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.True)
	}

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	renderer, err := NewRenderer(cfg.Width, cfg.Height)
	if err != nil {
		window.Destroy()
		return nil, fmt.Errorf("grid renderer: %w", err)
	}

	a := &App{
		Window:   window,
		Renderer: renderer,
		Loop:     grid.NewLoop(time.Now()),
		theme:    cfg.Theme,
	}

	gc := cfg.Grid
	if gc.HeaderHeight == 0 && gc.RowHeight == 0 {
		d := grid.DefaultConfig()
		gc.RowHeight, gc.HeaderHeight, gc.BufferSize = d.RowHeight, d.HeaderHeight, d.BufferSize
	}
	a.Host = NewWindowHost(gc.HeaderHeight)
	gc.Renderer = renderer
	gc.Host = a.Host
	gc.HostSupportsEvents = true
	gc.Scheduler = a.Loop
	gc.ContainerClientWidth = float64(cfg.Width)
	gc.ContainerClientHeight = float64(cfg.Height)

	opts := append([]grid.Option{grid.WithClock(a.Loop.Now)}, cfg.Options...)
	g, err := grid.Init(gc, opts...)
	if err != nil {
		renderer.Delete()
		window.Destroy()
		return nil, err
	}
	a.Grid = g
	a.Host.SetExtent(g.ScrollExtent)
	a.unbind = Bind(window, a.Host, Input{Press: a.press, Key: a.key})
	return a, nil
}

func (a *App) press(x, y float64) {
	snap, ok := a.Renderer.Snapshot()
	if !ok {
		return
	}
	w, h := a.Window.GetSize()
	hit, ok := HitHeader(snap, MetricsOf(a.Grid), Viewport{W: float32(w), H: float32(h)}, float32(x), float32(y))
	if !ok {
		return
	}
	if hit.Handle {
		a.Grid.StartResize(hit.Field, x)
		return
	}
	a.Grid.Sort(hit.Field)
}

func (a *App) key(ev grid.KeyEvent, key glfw.Key) bool {
	switch key {
	case glfw.KeyR:
		if ev.Mods.Has(grid.ModShift) {
			a.Grid.ClearSavedWidths()
		} else {
			a.Grid.ResetWidths()
		}
		a.Host.Clamp()
		return true
	}
	cmd, ok := a.Grid.Key(ev)
	if !ok {
		return false
	}
	a.Host.ScrollBy(cmd)
	return true
}

// HeaderText is the header label with the sort indicator appended.
func (a *App) HeaderText(col grid.Column) string {
	if icon := a.Grid.SortIcon(col); icon != "" {
		return col.Header + " " + icon
	}
	return col.Header
}

// Scene lays out the last snapshot for a width x height window.
func (a *App) Scene(width, height int) Scene {
	snap, ok := a.Renderer.Snapshot()
	if !ok {
		return Scene{}
	}
	return BuildScene(SceneInput{
		Snapshot:   snap,
		Metrics:    MetricsOf(a.Grid),
		Viewport:   Viewport{W: float32(width), H: float32(height)},
		Theme:      a.theme,
		HeaderText: a.HeaderText,
		CellText:   a.Grid.CellValue,
	})
}

// Frame runs the grid's scheduled work up to now and draws.
func (a *App) Frame(now time.Time) {
	a.Loop.Tick(now)

	w, h := a.Window.GetSize()
	fbW, fbH := a.Window.GetFramebufferSize()
	a.Renderer.Resize(w, h)

	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	r, g, b, al := unpack(a.theme.Background)
	gl.ClearColor(r, g, b, al)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	a.Renderer.Draw(BuildMesh(a.Scene(w, h), a.theme.FontScale))
}

func unpack(c Color) (r, g, b, a float32) {
	return float32(c&0xff) / 255, float32(c>>8&0xff) / 255, float32(c>>16&0xff) / 255, float32(c>>24) / 255
}

// Run polls events and draws until the window is closed.
func (a *App) Run() {
	for !a.Window.ShouldClose() {
		glfw.PollEvents()
		a.Frame(time.Now())
		a.Window.SwapBuffers()
	}
}

// Close tears the grid down and releases the window.
func (a *App) Close() error {
	var result *multierror.Error
	if err := a.Grid.Teardown(); err != nil {
		result = multierror.Append(result, err)
	}
	if a.unbind != nil {
		a.unbind()
		a.unbind = nil
	}
	a.Renderer.Delete()
	a.Window.Destroy()
	return result.ErrorOrNil()
}
