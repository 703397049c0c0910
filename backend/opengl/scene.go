package opengl

import (
	"github.com/go-theft-auto/grid"
)

// Color is a packed RGBA color laid out the way the vertex shader reads it:
// red in the low byte, alpha in the high byte.
type Color uint32

// RGBA packs a color.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r))
}

// Theme holds the colors and spacing of the grid.
type Theme struct {
	Background Color
	Header     Color
	HeaderText Color
	Text       Color
	Stripe     Color
	Frozen     Color
	Rule       Color
	Accent     Color

	CellPadding float32
	RuleWidth   float32
	FontScale   float32 // Glyphs are GlyphSize*FontScale pixels square
}

// DefaultTheme is a light theme close to the classic grid look.
func DefaultTheme() Theme {
	return Theme{
		Background:  RGBA(255, 255, 255, 255),
		Header:      RGBA(245, 245, 245, 255),
		HeaderText:  RGBA(51, 51, 51, 255),
		Text:        RGBA(33, 33, 33, 255),
		Stripe:      RGBA(250, 250, 250, 255),
		Frozen:      RGBA(248, 249, 250, 255),
		Rule:        RGBA(224, 224, 224, 255),
		Accent:      RGBA(33, 150, 243, 255),
		CellPadding: 8,
		RuleWidth:   1,
		FontScale:   2,
	}
}

// Rect is an axis-aligned rectangle in window pixels, origin top-left.
type Rect struct {
	X, Y, W, H float32
}

// Intersect returns the overlap of r and o, or a zero rect.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Quad is a solid rectangle.
type Quad struct {
	Rect  Rect
	Color Color
}

// Label is a line of bitmap text clipped to Clip.
type Label struct {
	X, Y  float32
	Text  string
	Color Color
	Clip  Rect
}

// Scene is everything drawn for one snapshot: solid quads first, then
// labels on top.
type Scene struct {
	Quads  []Quad
	Labels []Label
}

// Metrics are the row metrics the scene is laid out with.
type Metrics struct {
	RowHeight    float32
	HeaderHeight float32
}

// MetricsOf reads the metrics of g.
func MetricsOf(g *grid.Grid) Metrics {
	p := g.Params()
	return Metrics{RowHeight: float32(p.RowHeight), HeaderHeight: float32(p.HeaderHeight)}
}

// Viewport is the window size in pixels.
type Viewport struct {
	W, H float32
}

// ResizeHandleWidth is the grab area at the right edge of a header cell.
const ResizeHandleWidth = 6

// columnBox is one column's rectangle and the region it is clipped to.
type columnBox struct {
	col  grid.Column
	x, w float32
	clip Rect
}

// columnBoxes lays out every column for the band [y, y+h). Frozen groups
// stay put; the center group shifts by scrollLeft and is clipped between
// them.
func columnBoxes(s grid.Snapshot, vp Viewport, scrollLeft, y, h float32) []columnBox {
	leftW := float32(s.LeftFrozenWidth)
	rightW := float32(s.RightFrozenWidth)
	rightX := vp.W - rightW

	out := make([]columnBox, 0, len(s.Groups.LeftFrozen)+len(s.Groups.Center)+len(s.Groups.RightFrozen))
	place := func(cols []grid.Column, x float32, clip Rect) {
		for _, col := range cols {
			w := float32(s.Widths[col.Field])
			out = append(out, columnBox{col: col, x: x, w: w, clip: clip})
			x += w
		}
	}
	place(s.Groups.LeftFrozen, 0, Rect{X: 0, Y: y, W: leftW, H: h})
	place(s.Groups.Center, leftW-scrollLeft, Rect{X: leftW, Y: y, W: max(0, rightX-leftW), H: h})
	place(s.Groups.RightFrozen, rightX, Rect{X: rightX, Y: y, W: rightW, H: h})
	return out
}

// SceneInput is what BuildScene needs besides the snapshot.
type SceneInput struct {
	Snapshot grid.Snapshot
	Metrics  Metrics
	Viewport Viewport
	Theme    Theme
	// HeaderText and CellText produce display text; CellText is usually
	// grid.CellValue.
	HeaderText func(grid.Column) string
	CellText   func(grid.Row, grid.Column) string
}

// BuildScene lays out the header band, frozen regions, the visible row
// stripes, column rules and text for one snapshot.
func BuildScene(in SceneInput) Scene {
	s, m, vp, th := in.Snapshot, in.Metrics, in.Viewport, in.Theme
	var sc Scene

	header := Rect{W: vp.W, H: m.HeaderHeight}
	body := Rect{Y: m.HeaderHeight, W: vp.W, H: max(0, vp.H-m.HeaderHeight)}

	sc.Quads = append(sc.Quads, Quad{Rect: body, Color: th.Background})

	// Row stripes
	top := float32(s.ScrollTop)
	for i := range s.Window.Rows {
		idx := s.Window.StartIndex + i
		if idx%2 == 0 {
			continue
		}
		y := m.HeaderHeight + float32(s.Window.OffsetY) + float32(i)*m.RowHeight - top
		if r := (Rect{Y: y, W: vp.W, H: m.RowHeight}).Intersect(body); !r.Empty() {
			sc.Quads = append(sc.Quads, Quad{Rect: r, Color: th.Stripe})
		}
	}

	// Frozen regions sit above the stripes
	if s.LeftFrozenWidth > 0 {
		sc.Quads = append(sc.Quads, Quad{Rect: Rect{Y: body.Y, W: float32(s.LeftFrozenWidth), H: body.H}, Color: th.Frozen})
	}
	if s.RightFrozenWidth > 0 {
		rw := float32(s.RightFrozenWidth)
		sc.Quads = append(sc.Quads, Quad{Rect: Rect{X: vp.W - rw, Y: body.Y, W: rw, H: body.H}, Color: th.Frozen})
	}

	sc.Quads = append(sc.Quads, Quad{Rect: header, Color: th.Header})

	headerBoxes := columnBoxes(s, vp, float32(s.Header.ScrollLeft), 0, m.HeaderHeight)
	bodyBoxes := columnBoxes(s, vp, float32(s.ScrollLeft), body.Y, body.H)

	// Column rules at each right edge, across header and body
	for i, hb := range headerBoxes {
		bb := bodyBoxes[i]
		hr := Rect{X: hb.x + hb.w - th.RuleWidth, W: th.RuleWidth, H: m.HeaderHeight}.Intersect(hb.clip)
		br := Rect{X: bb.x + bb.w - th.RuleWidth, Y: body.Y, W: th.RuleWidth, H: body.H}.Intersect(bb.clip)
		if !hr.Empty() {
			sc.Quads = append(sc.Quads, Quad{Rect: hr, Color: th.Rule})
		}
		if !br.Empty() {
			sc.Quads = append(sc.Quads, Quad{Rect: br, Color: th.Rule})
		}
	}

	// Active resize edge
	if s.Resizing.Active {
		for _, hb := range headerBoxes {
			if hb.col.Field != s.Resizing.Field {
				continue
			}
			edge := Rect{X: hb.x + hb.w - 2, W: 2, H: vp.H}
			clip := hb.clip
			clip.H = vp.H
			if r := edge.Intersect(clip); !r.Empty() {
				sc.Quads = append(sc.Quads, Quad{Rect: r, Color: th.Accent})
			}
		}
	}

	glyphH := GlyphSize * th.FontScale
	for _, hb := range headerBoxes {
		text := hb.col.Header
		if in.HeaderText != nil {
			text = in.HeaderText(hb.col)
		}
		cell := Rect{X: hb.x, W: hb.w - th.CellPadding, H: m.HeaderHeight}
		sc.Labels = appendLabel(sc.Labels, Label{
			X:     hb.x + th.CellPadding,
			Y:     (m.HeaderHeight - glyphH) / 2,
			Text:  text,
			Color: th.HeaderText,
			Clip:  cell.Intersect(hb.clip),
		})
	}

	for i, row := range s.Window.Rows {
		y := m.HeaderHeight + float32(s.Window.OffsetY) + float32(i)*m.RowHeight - top
		if y+m.RowHeight <= body.Y || y >= vp.H {
			continue
		}
		for _, bb := range bodyBoxes {
			text := ""
			if in.CellText != nil {
				text = in.CellText(row, bb.col)
			}
			cell := Rect{X: bb.x, Y: y, W: bb.w - th.CellPadding, H: m.RowHeight}
			sc.Labels = appendLabel(sc.Labels, Label{
				X:     bb.x + th.CellPadding,
				Y:     y + (m.RowHeight-glyphH)/2,
				Text:  text,
				Color: th.Text,
				Clip:  cell.Intersect(bb.clip).Intersect(body),
			})
		}
	}
	return sc
}

func appendLabel(labels []Label, l Label) []Label {
	if l.Text == "" || l.Clip.Empty() {
		return labels
	}
	return append(labels, l)
}

// HeaderHit is the result of hit-testing the header band.
type HeaderHit struct {
	Field  string
	Handle bool // On the resize grab area
}

// HitHeader finds the header cell under (x, y). The second result is false
// outside the header band or between columns.
func HitHeader(s grid.Snapshot, m Metrics, vp Viewport, x, y float32) (HeaderHit, bool) {
	if y < 0 || y >= m.HeaderHeight {
		return HeaderHit{}, false
	}
	for _, hb := range columnBoxes(s, vp, float32(s.Header.ScrollLeft), 0, m.HeaderHeight) {
		cell := Rect{X: hb.x, W: hb.w, H: m.HeaderHeight}.Intersect(hb.clip)
		if !cell.Contains(x, y) {
			continue
		}
		return HeaderHit{Field: hb.col.Field, Handle: x >= hb.x+hb.w-ResizeHandleWidth}, true
	}
	return HeaderHit{}, false
}
