// Example shows ten thousand generated employee rows in an OpenGL window.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// Click a header to sort, drag a header's right edge to resize, scroll with
// the wheel or the arrow keys. R resets widths, Shift+R also forgets the
// saved ones, Escape quits.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/grid"
	"github.com/go-theft-auto/grid/backend/opengl"
	"github.com/go-theft-auto/grid/internal/sample"
	"github.com/go-theft-auto/grid/storage/inmem"
)

const (
	windowWidth  = 1200
	windowHeight = 700
	windowTitle  = "grid example"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	cfg := grid.DefaultConfig()
	cfg.Columns = sample.Columns()
	cfg.Rows = sample.Rows(sample.DefaultRowCount, 1)
	cfg.Store = inmem.New()

	app, err := opengl.Open(opengl.AppConfig{
		Title:  windowTitle,
		Width:  windowWidth,
		Height: windowHeight,
		Grid:   cfg,
	})
	if err != nil {
		return err
	}
	app.Run()
	return app.Close()
}
