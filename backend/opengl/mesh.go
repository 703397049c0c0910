package opengl

// Vertex is one corner of a drawn quad.
type Vertex struct {
	X, Y  float32
	U, V  float32
	Color Color
}

// Mesh is a scene flattened into triangle lists. Solid quads occupy the
// first SolidIndices indices and are drawn untextured; the rest are glyphs
// sampled from the font atlas.
type Mesh struct {
	Vertices     []Vertex
	Indices      []uint32
	SolidIndices int
}

// BuildMesh flattens sc. Glyphs are clipped to their label's clip rect on
// the CPU, with texture coordinates cut to match, so the whole scene draws
// in two calls without scissor changes.
func BuildMesh(sc Scene, fontScale float32) Mesh {
	if fontScale <= 0 {
		fontScale = 1
	}
	var m Mesh
	for _, q := range sc.Quads {
		m.quad(q.Rect, 0, 0, 0, 0, q.Color)
	}
	m.SolidIndices = len(m.Indices)

	size := GlyphSize * fontScale
	for _, l := range sc.Labels {
		x := l.X
		for _, r := range l.Text {
			if x >= l.Clip.X+l.Clip.W {
				break
			}
			c := glyphFor(r)
			if c != ' ' {
				m.glyph(Rect{X: x, Y: l.Y, W: size, H: size}, l.Clip, c, l.Color)
			}
			x += size
		}
	}
	return m
}

func (m *Mesh) glyph(box, clip Rect, c byte, color Color) {
	vis := box.Intersect(clip)
	if vis.Empty() {
		return
	}
	u0, v0, u1, v1 := glyphUV(c)
	du, dv := u1-u0, v1-v0
	fx0 := (vis.X - box.X) / box.W
	fx1 := (vis.X + vis.W - box.X) / box.W
	fy0 := (vis.Y - box.Y) / box.H
	fy1 := (vis.Y + vis.H - box.Y) / box.H
	m.quad(vis, u0+du*fx0, v0+dv*fy0, u0+du*fx1, v0+dv*fy1, color)
}

func (m *Mesh) quad(r Rect, u0, v0, u1, v1 float32, color Color) {
	if r.Empty() {
		return
	}
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		Vertex{X: r.X, Y: r.Y, U: u0, V: v0, Color: color},
		Vertex{X: r.X + r.W, Y: r.Y, U: u1, V: v0, Color: color},
		Vertex{X: r.X + r.W, Y: r.Y + r.H, U: u1, V: v1, Color: color},
		Vertex{X: r.X, Y: r.Y + r.H, U: u0, V: v1, Color: color},
	)
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}
