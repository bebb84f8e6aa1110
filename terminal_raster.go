package galaxy

import (
	"math/bits"

	"github.com/gdamore/tcell/v2"
	"github.com/gekko3d/galaxy/pointrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// termCell accumulates the particles that project into one character cell.
// Colors add up like additive blending and saturate at white.
type termCell struct {
	R, G, B float32
	Hits    int
}

var termGlyphs = []rune(".:*o#@")

// glyph grows denser with the number of hits, one step per doubling.
func (c termCell) glyph() rune {
	if c.Hits <= 0 {
		return ' '
	}
	i := bits.Len(uint(c.Hits)) - 1
	if i >= len(termGlyphs) {
		i = len(termGlyphs) - 1
	}
	return termGlyphs[i]
}

func (c termCell) color() tcell.Color {
	return tcell.NewRGBColor(channel8(c.R), channel8(c.G), channel8(c.B))
}

func channel8(v float32) int32 {
	if v >= 1 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return int32(v * 255)
}

type termRaster struct {
	cols, rows int
	cells      []termCell
}

func (r *termRaster) reset(cols, rows int) {
	r.cols, r.rows = cols, rows
	n := cols * rows
	if n < 0 {
		n = 0
	}
	if cap(r.cells) < n {
		r.cells = make([]termCell, n)
	}
	r.cells = r.cells[:n]
	clear(r.cells)
}

func (r *termRaster) at(col, row int) termCell {
	return r.cells[row*r.cols+col]
}

// rasterize projects every particle of buf through viewProj and bins it into
// the cell grid. Particles outside the view volume are dropped.
func (r *termRaster) rasterize(buf *core.ParticleBuffer, viewProj mgl32.Mat4) {
	if r.cols <= 0 || r.rows <= 0 {
		return
	}
	for i := 0; i < buf.Len(); i++ {
		p := buf.Positions[i*core.PositionStride : i*core.PositionStride+3]
		clip := viewProj.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1})
		if clip.W() <= 0 {
			continue
		}
		ndc := clip.Vec3().Mul(1 / clip.W())
		if ndc.X() < -1 || ndc.X() >= 1 || ndc.Y() <= -1 || ndc.Y() > 1 || ndc.Z() < -1 || ndc.Z() > 1 {
			continue
		}

		col := int((ndc.X()*0.5 + 0.5) * float32(r.cols))
		row := int((0.5 - ndc.Y()*0.5) * float32(r.rows))
		if col >= r.cols || row >= r.rows {
			continue
		}

		c := buf.Colors[i*core.ColorStride : i*core.ColorStride+3]
		cell := &r.cells[row*r.cols+col]
		cell.R += c[0]
		cell.G += c[1]
		cell.B += c[2]
		cell.Hits++
	}
}
