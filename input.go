package grid

// Key identifies a keyboard key the grid reacts to.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
)

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModShift
	ModAlt
	ModSuper
)

// Has reports whether every modifier in m2 is held.
func (m Modifiers) Has(m2 Modifiers) bool { return m&m2 == m2 }

// KeyEvent is one key press with its modifiers.
type KeyEvent struct {
	Key  Key
	Mods Modifiers
}

// Keyboard scroll step sizes, in pixels.
const (
	KeyScrollStep      = 30
	KeyScrollStepShift = 100
)

// Edge is an absolute scroll target on one axis.
type Edge int

const (
	EdgeNone  Edge = iota // Use the relative delta
	EdgeStart             // Scroll to 0
	EdgeEnd               // Scroll to the maximum
)

// ScrollCommand is a scroll request derived from input. The grid never
// owns the scrollable element; hosts apply the command and report the
// resulting position back through the scroll handlers.
type ScrollCommand struct {
	DX, DY float64 // Relative deltas
	X, Y   Edge    // Absolute targets; override the delta on that axis
	Smooth bool    // Host should animate instead of jumping
}

// ScrollPos is a scroll position of the body.
type ScrollPos struct {
	Left, Top float64
}

// ScrollExtent bounds a scroll position.
type ScrollExtent struct {
	MaxLeft, MaxTop float64
}

// Apply resolves the command against pos and clamps to extent.
func (c ScrollCommand) Apply(pos ScrollPos, extent ScrollExtent) ScrollPos {
	return ScrollPos{
		Left: applyAxis(pos.Left, c.DX, c.X, extent.MaxLeft),
		Top:  applyAxis(pos.Top, c.DY, c.Y, extent.MaxTop),
	}
}

func applyAxis(cur, delta float64, edge Edge, maxV float64) float64 {
	switch edge {
	case EdgeStart:
		return 0
	case EdgeEnd:
		return max(0, maxV)
	}
	return clampf(cur+delta, 0, max(0, maxV))
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// KeyScroll maps a key press to a scroll command. Arrows scroll by
// KeyScrollStep (KeyScrollStepShift with Shift); Ctrl+Up/Down jump to the
// top/bottom; Home/End jump to the horizontal edges, and with Ctrl to the
// matching corner. PageUp/PageDown scroll one viewport, given by page.
// The second result is false for keys the grid does not handle; hosts must
// then let the key through.
func KeyScroll(ev KeyEvent, page float64) (ScrollCommand, bool) {
	step := float64(KeyScrollStep)
	if ev.Mods.Has(ModShift) {
		step = KeyScrollStepShift
	}
	ctrl := ev.Mods.Has(ModCtrl)

	switch ev.Key {
	case KeyLeft:
		return ScrollCommand{DX: -step}, true
	case KeyRight:
		return ScrollCommand{DX: step}, true
	case KeyUp:
		if ctrl {
			return ScrollCommand{Y: EdgeStart, Smooth: true}, true
		}
		return ScrollCommand{DY: -step}, true
	case KeyDown:
		if ctrl {
			return ScrollCommand{Y: EdgeEnd, Smooth: true}, true
		}
		return ScrollCommand{DY: step}, true
	case KeyPageUp:
		return ScrollCommand{DY: -page}, true
	case KeyPageDown:
		return ScrollCommand{DY: page}, true
	case KeyHome:
		if ctrl {
			return ScrollCommand{X: EdgeStart, Y: EdgeStart, Smooth: true}, true
		}
		return ScrollCommand{X: EdgeStart, Smooth: true}, true
	case KeyEnd:
		if ctrl {
			return ScrollCommand{X: EdgeEnd, Y: EdgeEnd, Smooth: true}, true
		}
		return ScrollCommand{X: EdgeEnd, Smooth: true}, true
	}
	return ScrollCommand{}, false
}
