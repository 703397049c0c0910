package main

import (
	"errors"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/cobra"

	"github.com/go-theft-auto/grid/backend/opengl"
)

func newGLCommand(src *sourceFlags) *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "gl",
		Short: "Show the grid in an OpenGL window",
		Long: `Show the grid in an OpenGL window.

Click a header to sort, drag its right edge to resize. The wheel and the
arrow keys scroll. R resets widths, Shift+R also forgets the saved ones,
Escape quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(src)
			if err != nil {
				return err
			}
			return errors.Join(runWindow(s, width, height), s.Close())
		},
	}
	cmd.Flags().IntVar(&width, "width", 1200, "window width in pixels")
	cmd.Flags().IntVar(&height, "height", 700, "window height in pixels")
	return cmd
}

func runWindow(s *session, width, height int) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	app, err := opengl.Open(opengl.AppConfig{
		Title:  "gridview",
		Width:  width,
		Height: height,
		Grid:   s.cfg,
	})
	if err != nil {
		return err
	}
	app.Run()
	return app.Close()
}
