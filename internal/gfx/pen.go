package gfx

import (
	"image/color"
	"math"

	"github.com/vovakirdan/neon-runner/internal/core"
)

type penState struct {
	m     Affine
	alpha float64
}

// Pen draws onto a Surface through a save/restore transform stack.
type Pen struct {
	dst   Surface
	cur   penState
	stack []penState
}

// NewPen returns a pen with the identity transform and full opacity.
func NewPen(dst Surface) *Pen {
	return &Pen{
		dst:   dst,
		cur:   penState{m: Identity(), alpha: 1},
		stack: make([]penState, 0, 8),
	}
}

// Surface returns the drawing target.
func (p *Pen) Surface() Surface { return p.dst }

// Transform returns the current transform.
func (p *Pen) Transform() Affine { return p.cur.m }

// Save pushes the current transform and alpha.
func (p *Pen) Save() {
	p.stack = append(p.stack, p.cur)
}

// Restore pops the last saved state. Unbalanced calls are ignored.
func (p *Pen) Restore() {
	if len(p.stack) == 0 {
		return
	}
	p.cur = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
}

// Translate moves the origin.
func (p *Pen) Translate(x, y float64) {
	p.cur.m = p.cur.m.Translate(x, y)
}

// Rotate rotates the coordinate system.
func (p *Pen) Rotate(theta float64) {
	p.cur.m = p.cur.m.Rotate(theta)
}

// Scale scales the coordinate system.
func (p *Pen) Scale(sx, sy float64) {
	p.cur.m = p.cur.m.Scale(sx, sy)
}

// SetAlpha sets the global opacity, clamped to [0, 1].
func (p *Pen) SetAlpha(a float64) {
	p.cur.alpha = core.ClampF(a, 0, 1)
}

// Fade multiplies the global opacity by a.
func (p *Pen) Fade(a float64) {
	p.SetAlpha(p.cur.alpha * a)
}

// Alpha returns the global opacity.
func (p *Pen) Alpha() float64 { return p.cur.alpha }

// Line strokes a segment in local coordinates.
func (p *Pen) Line(a, b Vec2, width float64, c color.RGBA) {
	ta, tb := p.cur.m.Apply(a), p.cur.m.Apply(b)
	if !ta.Finite() || !tb.Finite() || p.cur.alpha <= 0 {
		return
	}
	p.dst.StrokeLine(ta, tb, width*p.cur.m.LineScale(), c, p.cur.alpha)
}

// Polyline strokes consecutive segments, closing the loop when closed is set.
func (p *Pen) Polyline(pts []Vec2, closed bool, width float64, c color.RGBA) {
	for i := 1; i < len(pts); i++ {
		p.Line(pts[i-1], pts[i], width, c)
	}
	if closed && len(pts) > 2 {
		p.Line(pts[len(pts)-1], pts[0], width, c)
	}
}

// Polygon fills a polygon in local coordinates. Shapes with a non-finite
// vertex are skipped entirely.
func (p *Pen) Polygon(pts []Vec2, c color.RGBA) {
	if len(pts) < 3 || p.cur.alpha <= 0 {
		return
	}
	out := make([]Vec2, len(pts))
	for i, pt := range pts {
		out[i] = p.cur.m.Apply(pt)
		if !out[i].Finite() {
			return
		}
	}
	p.dst.FillPolygon(out, c, p.cur.alpha)
}

// Circle fills a circle approximated by a regular polygon.
func (p *Pen) Circle(center Vec2, r float64, c color.RGBA) {
	p.Polygon(RegularPolygon(center, r, 16, 0), c)
}

// RegularPolygon returns n vertices on a circle, the first at angle phase.
func RegularPolygon(center Vec2, r float64, n int, phase float64) []Vec2 {
	if n < 3 {
		return nil
	}
	pts := make([]Vec2, n)
	for i := range pts {
		a := phase + float64(i)/float64(n)*2*math.Pi
		pts[i] = Vec2{center.X + r*math.Cos(a), center.Y + r*math.Sin(a)}
	}
	return pts
}
