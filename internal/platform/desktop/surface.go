// Package desktop hosts the runner in an ebiten window with vector graphics,
// a bitmap-font HUD and synthesized sound.
package desktop

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/gfx"
)

// gradientRings is how many bands approximate the radial background.
const gradientRings = 32

// Surface draws onto an ebiten image in screen pixels.
type Surface struct {
	img *ebiten.Image
}

// NewSurface wraps img. The surface reads its size from img on every call, so
// it follows window resizes.
func NewSurface(img *ebiten.Image) *Surface {
	return &Surface{img: img}
}

// Reset points the surface at a new frame image.
func (s *Surface) Reset(img *ebiten.Image) {
	s.img = img
}

// Size implements gfx.Surface.
func (s *Surface) Size() (w, h float64) {
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Gradient fills the image with outer and then stacks shrinking discs that
// blend toward inner at the centre.
func (s *Surface) Gradient(inner, outer color.RGBA) {
	s.img.Fill(outer)
	w, h := s.Size()
	cx, cy := float32(w/2), float32(h/2)
	maxR := math.Hypot(w, h) / 2
	for i := gradientRings; i > 0; i-- {
		t := float64(i) / gradientRings
		vector.FillCircle(s.img, cx, cy, float32(maxR*t), mix(inner, outer, t), true)
	}
}

// StrokeLine implements gfx.Surface.
func (s *Surface) StrokeLine(a, b gfx.Vec2, width float64, c color.RGBA, alpha float64) {
	if alpha <= 0 || width <= 0 || !a.Finite() || !b.Finite() {
		return
	}
	vector.StrokeLine(s.img,
		float32(a.X), float32(a.Y), float32(b.X), float32(b.Y),
		float32(width), withAlpha(c, alpha), true)
}

// FillPolygon implements gfx.Surface.
func (s *Surface) FillPolygon(pts []gfx.Vec2, c color.RGBA, alpha float64) {
	if alpha <= 0 || len(pts) < 3 {
		return
	}
	for _, p := range pts {
		if !p.Finite() {
			return
		}
	}

	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(float32(alpha))
	vector.FillPath(s.img, &path, &vector.FillOptions{}, op)
}

// withAlpha scales c's opacity by alpha.
func withAlpha(c color.RGBA, alpha float64) color.NRGBA {
	a := core.ClampF(alpha, 0, 1) * float64(c.A)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a)}
}

// mix blends a toward b by t.
func mix(a, b color.RGBA, t float64) color.RGBA {
	l := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: l(a.A, b.A)}
}
