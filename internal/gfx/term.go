package gfx

import (
	"image/color"
	"math"

	"github.com/vovakirdan/neon-runner/internal/core"
)

// Default virtual cell size. Terminal cells are roughly twice as tall as wide.
const (
	DefaultCellW = 12
	DefaultCellH = 24
)

// TermSurface rasterizes vector shapes onto a character grid. Each cell covers
// CellW x CellH virtual pixels, so the scene keeps its proportions.
type TermSurface struct {
	Screen *core.Screen
	CellW  float64
	CellH  float64
}

// NewTermSurface wraps a screen with the default cell size.
func NewTermSurface(s *core.Screen) *TermSurface {
	return &TermSurface{Screen: s, CellW: DefaultCellW, CellH: DefaultCellH}
}

// Size implements Surface.
func (t *TermSurface) Size() (w, h float64) {
	return float64(t.Screen.Width()) * t.CellW, float64(t.Screen.Height()) * t.CellH
}

// Gradient blanks the grid and scatters a fixed star field tinted by outer.
func (t *TermSurface) Gradient(inner, outer color.RGBA) {
	t.Screen.Clear()
	star := core.NearestColor(outer)
	cx, cy := float64(t.Screen.Width())/2, float64(t.Screen.Height())/2
	for y := 0; y < t.Screen.Height(); y++ {
		for x := 0; x < t.Screen.Width(); x++ {
			if cellHash(x, y) > 0.015 {
				continue
			}
			c := star
			if math.Abs(float64(x)-cx) < cx/3 && math.Abs(float64(y)-cy) < cy/3 {
				c = core.NearestColor(inner)
			}
			t.Screen.SetCell(x, y, '·', c)
		}
	}
}

// StrokeLine implements Surface by walking the cells the segment crosses.
func (t *TermSurface) StrokeLine(a, b Vec2, width float64, c color.RGBA, alpha float64) {
	if alpha <= 0 || !a.Finite() || !b.Finite() {
		return
	}
	ch := lineGlyph(b.X-a.X, b.Y-a.Y)
	if alpha < 0.35 {
		ch = '·'
	}
	fg := core.NearestColor(c)

	ax, ay := a.X/t.CellW, a.Y/t.CellH
	bx, by := b.X/t.CellW, b.Y/t.CellH
	if !t.clipSegment(&ax, &ay, &bx, &by) {
		return
	}
	steps := int(math.Ceil(math.Max(math.Abs(bx-ax), math.Abs(by-ay))))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		x := int(math.Floor(core.Lerp(ax, bx, f)))
		y := int(math.Floor(core.Lerp(ay, by, f)))
		t.Screen.SetCell(x, y, ch, fg)
	}
}

// FillPolygon implements Surface. Cells whose centre lies inside the polygon
// are shaded by alpha; a polygon smaller than a cell marks its centroid.
func (t *TermSurface) FillPolygon(pts []Vec2, c color.RGBA, alpha float64) {
	if len(pts) < 3 || alpha <= 0 {
		return
	}
	ch := shade(alpha)
	if ch == 0 {
		return
	}
	fg := core.NearestColor(c)

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	var sx, sy float64
	for _, p := range pts {
		if !p.Finite() {
			return
		}
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		sx += p.X
		sy += p.Y
	}

	x0 := core.Clamp(int(math.Floor(minX/t.CellW)), 0, t.Screen.Width())
	x1 := core.Clamp(int(math.Ceil(maxX/t.CellW)), 0, t.Screen.Width())
	y0 := core.Clamp(int(math.Floor(minY/t.CellH)), 0, t.Screen.Height())
	y1 := core.Clamp(int(math.Ceil(maxY/t.CellH)), 0, t.Screen.Height())

	hit := false
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p := Vec2{(float64(x) + 0.5) * t.CellW, (float64(y) + 0.5) * t.CellH}
			if pointInPolygon(p, pts) {
				t.Screen.SetCell(x, y, ch, fg)
				hit = true
			}
		}
	}
	if !hit {
		n := float64(len(pts))
		cx := int(math.Floor(sx / n / t.CellW))
		cy := int(math.Floor(sy / n / t.CellH))
		t.Screen.SetCell(cx, cy, ch, fg)
	}
}

// clipSegment trims a cell-space segment to a margin around the grid so very
// long projected lines do not walk millions of cells.
func (t *TermSurface) clipSegment(ax, ay, bx, by *float64) bool {
	w, h := float64(t.Screen.Width()), float64(t.Screen.Height())
	if w == 0 || h == 0 {
		return false
	}
	xmin, ymin, xmax, ymax := -1.0, -1.0, w+1, h+1
	dx, dy := *bx-*ax, *by-*ay
	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{
		{-dx, *ax - xmin},
		{dx, xmax - *ax},
		{-dy, *ay - ymin},
		{dy, ymax - *ay},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return false
			}
			t1 = math.Min(t1, r)
		}
	}
	*ax, *ay, *bx, *by = *ax+t0*dx, *ay+t0*dy, *ax+t1*dx, *ay+t1*dy
	return true
}

func lineGlyph(dx, dy float64) rune {
	adx, ady := math.Abs(dx), math.Abs(dy)
	switch {
	case ady <= adx*0.4:
		return '─'
	case adx <= ady*0.4:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// shade maps opacity onto a block ramp. Zero means invisible.
func shade(a float64) rune {
	switch {
	case a < 0.06:
		return 0
	case a < 0.2:
		return '·'
	case a < 0.45:
		return '░'
	case a < 0.7:
		return '▒'
	case a < 0.9:
		return '▓'
	default:
		return '█'
	}
}

// pointInPolygon uses the even-odd rule.
func pointInPolygon(p Vec2, pts []Vec2) bool {
	in := false
	j := len(pts) - 1
	for i := range pts {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				in = !in
			}
		}
		j = i
	}
	return in
}

// cellHash is a fixed pseudo-random value in [0, 1) per cell.
func cellHash(x, y int) float64 {
	v := math.Sin(float64(x)*12.9898+float64(y)*78.233) * 43758.5453
	return v - math.Floor(v)
}
