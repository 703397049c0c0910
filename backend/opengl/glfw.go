package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/grid"
)

// Input receives the window input the host does not turn into grid events
// itself.
type Input struct {
	// Press is called for a left button press at window coordinates.
	Press func(x, y float64)
	// Key is called for key presses and repeats. Returning false lets the
	// key fall through to the default handling (Escape closes the window).
	Key func(ev grid.KeyEvent, key glfw.Key) bool
}

// Bind connects window's callbacks to h and in. The returned func removes
// them.
func Bind(window *glfw.Window, h *WindowHost, in Input) func() {
	window.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		h.Wheel(xoff, yoff)
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		h.CursorMoved(x, y)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		switch action {
		case glfw.Press:
			if in.Press != nil {
				x, y := w.GetCursorPos()
				in.Press(x, y)
			}
		case glfw.Release:
			h.ButtonReleased()
		}
	})
	window.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		h.Resized(float64(width), float64(height))
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		ev := grid.KeyEvent{Key: gridKey(key), Mods: gridMods(mods)}
		if in.Key != nil && in.Key(ev, key) {
			return
		}
		if key == glfw.KeyEscape {
			w.SetShouldClose(true)
		}
	})

	return func() {
		window.SetScrollCallback(nil)
		window.SetCursorPosCallback(nil)
		window.SetMouseButtonCallback(nil)
		window.SetSizeCallback(nil)
		window.SetKeyCallback(nil)
	}
}

// gridKey maps GLFW keys to grid keys.
func gridKey(key glfw.Key) grid.Key {
	switch key {
	case glfw.KeyLeft:
		return grid.KeyLeft
	case glfw.KeyRight:
		return grid.KeyRight
	case glfw.KeyUp:
		return grid.KeyUp
	case glfw.KeyDown:
		return grid.KeyDown
	case glfw.KeyPageUp:
		return grid.KeyPageUp
	case glfw.KeyPageDown:
		return grid.KeyPageDown
	case glfw.KeyHome:
		return grid.KeyHome
	case glfw.KeyEnd:
		return grid.KeyEnd
	default:
		return grid.KeyNone
	}
}

func gridMods(mods glfw.ModifierKey) grid.Modifiers {
	var m grid.Modifiers
	if mods&glfw.ModControl != 0 {
		m |= grid.ModCtrl
	}
	if mods&glfw.ModShift != 0 {
		m |= grid.ModShift
	}
	if mods&glfw.ModAlt != 0 {
		m |= grid.ModAlt
	}
	if mods&glfw.ModSuper != 0 {
		m |= grid.ModSuper
	}
	return m
}
