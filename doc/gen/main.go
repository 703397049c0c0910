// Command gen drives a grid through a few states in a hidden window and
// saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/grid"
	"github.com/go-theft-auto/grid/backend/opengl"
	"github.com/go-theft-auto/grid/internal/sample"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot is one grid state to capture.
type screenshot struct {
	name  string               // filename without extension
	setup func(a *opengl.App) // puts the grid into the state
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg\n", s.name)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

// capture opens a fresh grid per screenshot so no state leaks between them.
func capture(s screenshot, outDir string) error {
	cfg := grid.DefaultConfig()
	cfg.Columns = sample.Columns()
	cfg.Rows = sample.Rows(sample.DefaultRowCount, 1)

	app, err := opengl.Open(opengl.AppConfig{
		Title:  "screenshot-gen",
		Width:  1000,
		Height: 500,
		Hidden: true,
		Grid:   cfg,
	})
	if err != nil {
		return err
	}

	now := time.Now()
	s.setup(app)
	// Two frames: the first runs scheduled recomputes, the second draws them.
	for range 2 {
		now = now.Add(100 * time.Millisecond)
		app.Frame(now)
	}
	img := app.Capture()
	if err := app.Close(); err != nil {
		return err
	}
	return opengl.WriteJPEG(filepath.Join(outDir, s.name+".jpg"), img)
}

func buildScreenshots() []screenshot {
	return []screenshot{
		{name: "top", setup: func(*opengl.App) {}},
		{name: "scrolled", setup: func(a *opengl.App) {
			a.Host.ScrollBy(grid.ScrollCommand{DY: 4000})
		}},
		{name: "scrolled-horizontal", setup: func(a *opengl.App) {
			a.Host.ScrollBy(grid.ScrollCommand{DX: 400})
		}},
		{name: "sorted-salary-desc", setup: func(a *opengl.App) {
			a.Grid.Sort("salary")
			a.Grid.Sort("salary")
		}},
		{name: "resized", setup: func(a *opengl.App) {
			// Drag the name column's right edge 120px to the right
			snap := a.Grid.Snapshot()
			edge := float64(snap.Widths["id"] + snap.Widths["name"] - 2)
			a.Grid.StartResize("name", edge)
			a.Host.CursorMoved(edge+120, 20)
			a.Host.ButtonReleased()
		}},
	}
}
