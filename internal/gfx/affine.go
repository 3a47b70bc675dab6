// Package gfx is a small 2D vector pipeline: an affine transform stack over a
// Surface that can be backed by a terminal cell grid or a pixel image.
package gfx

import "math"

// Vec2 is a point or offset in surface pixels.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Finite reports whether both coordinates are finite numbers.
func (v Vec2) Finite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Affine is a 2D transform in canvas order:
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Mul returns m * n, so n is applied first.
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Translate appends a translation.
func (m Affine) Translate(x, y float64) Affine {
	return m.Mul(Affine{A: 1, D: 1, E: x, F: y})
}

// Rotate appends a rotation by theta radians, clockwise on a y-down surface.
func (m Affine) Rotate(theta float64) Affine {
	s, c := math.Sincos(theta)
	return m.Mul(Affine{A: c, B: s, C: -s, D: c})
}

// Scale appends a scale.
func (m Affine) Scale(sx, sy float64) Affine {
	return m.Mul(Affine{A: sx, D: sy})
}

// Apply maps p through the transform.
func (m Affine) Apply(p Vec2) Vec2 {
	return Vec2{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// LineScale returns the factor applied to stroke widths.
func (m Affine) LineScale() float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}
