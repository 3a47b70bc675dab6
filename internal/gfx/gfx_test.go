package gfx

import (
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/neon-runner/internal/core"
)

var white = color.RGBA{255, 255, 255, 255}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestAffineCompose(t *testing.T) {
	tests := []struct {
		name string
		m    Affine
		in   Vec2
		want Vec2
	}{
		{"identity", Identity(), Vec2{3, 4}, Vec2{3, 4}},
		{"translate", Identity().Translate(10, -5), Vec2{1, 1}, Vec2{11, -4}},
		{"scale then translate", Identity().Translate(10, 0).Scale(2, 3), Vec2{1, 1}, Vec2{12, 3}},
		{"quarter turn", Identity().Rotate(math.Pi / 2), Vec2{1, 0}, Vec2{0, 1}},
		{"mirror", Identity().Scale(1, -1).Translate(0, -20), Vec2{0, 5}, Vec2{0, 15}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.m.Apply(tc.in)
			if !near(got.X, tc.want.X) || !near(got.Y, tc.want.Y) {
				t.Errorf("Apply(%v) = %v, expected %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestAffineLineScale(t *testing.T) {
	if s := Identity().Scale(2, 2).Rotate(1).LineScale(); !near(s, 2) {
		t.Errorf("LineScale = %v, expected 2", s)
	}
	if s := Identity().Scale(1, -1).LineScale(); !near(s, 1) {
		t.Errorf("mirrored LineScale = %v, expected 1", s)
	}
}

type recorder struct {
	lines []Vec2
	polys int
	alpha []float64
}

func (r *recorder) Size() (float64, float64) { return 100, 100 }
func (r *recorder) Gradient(_, _ color.RGBA) {}
func (r *recorder) StrokeLine(a, b Vec2, _ float64, _ color.RGBA, alpha float64) {
	r.lines = append(r.lines, a, b)
	r.alpha = append(r.alpha, alpha)
}
func (r *recorder) FillPolygon(_ []Vec2, _ color.RGBA, alpha float64) {
	r.polys++
	r.alpha = append(r.alpha, alpha)
}

func TestPenSaveRestore(t *testing.T) {
	rec := &recorder{}
	p := NewPen(rec)

	p.Save()
	p.Translate(50, 50)
	p.SetAlpha(0.2)
	p.Line(Vec2{0, 0}, Vec2{1, 0}, 1, white)
	p.Restore()
	p.Line(Vec2{0, 0}, Vec2{1, 0}, 1, white)

	if rec.lines[0] != (Vec2{50, 50}) {
		t.Errorf("translated line starts at %v, expected (50,50)", rec.lines[0])
	}
	if rec.lines[2] != (Vec2{0, 0}) {
		t.Errorf("restored line starts at %v, expected origin", rec.lines[2])
	}
	if rec.alpha[0] != 0.2 || rec.alpha[1] != 1 {
		t.Errorf("alpha not restored: %v", rec.alpha)
	}

	// Unbalanced restore is harmless
	p.Restore()
	p.Restore()
}

func TestPenDropsNonFinite(t *testing.T) {
	rec := &recorder{}
	p := NewPen(rec)

	p.Line(Vec2{math.Inf(1), 0}, Vec2{0, 0}, 1, white)
	p.Polygon([]Vec2{{0, 0}, {math.NaN(), 1}, {1, 1}}, white)
	p.SetAlpha(0)
	p.Circle(Vec2{10, 10}, 5, white)

	if len(rec.lines) != 0 || rec.polys != 0 {
		t.Errorf("non-finite or invisible shapes reached the surface: %d lines, %d polys", len(rec.lines)/2, rec.polys)
	}
}

func TestTermSurfaceLineGlyphs(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec2
		want rune
	}{
		{"horizontal", Vec2{0, 36}, Vec2{120, 36}, '─'},
		{"vertical", Vec2{6, 0}, Vec2{6, 200}, '│'},
		{"falling", Vec2{0, 0}, Vec2{100, 100}, '╲'},
		{"rising", Vec2{0, 100}, Vec2{100, 0}, '╱'},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := core.NewScreen(20, 10)
			NewTermSurface(s).StrokeLine(tc.a, tc.b, 1, white, 1)
			if !strings.ContainsRune(s.String(), tc.want) {
				t.Errorf("expected %q in\n%s", tc.want, s.String())
			}
		})
	}
}

func TestTermSurfaceFaintLine(t *testing.T) {
	s := core.NewScreen(20, 5)
	NewTermSurface(s).StrokeLine(Vec2{0, 12}, Vec2{200, 12}, 1, white, 0.2)
	if strings.ContainsRune(s.String(), '─') || !strings.ContainsRune(s.String(), '·') {
		t.Errorf("faint line should be dotted, got %q", s.Row(0))
	}
}

func TestTermSurfaceFill(t *testing.T) {
	s := core.NewScreen(10, 5)
	ts := NewTermSurface(s)
	rose := color.RGBA{244, 63, 94, 255}

	ts.FillPolygon([]Vec2{{0, 0}, {60, 0}, {60, 48}, {0, 48}}, rose, 1)
	for y := 0; y < 2; y++ {
		for x := 0; x < 5; x++ {
			if c := s.GetCell(x, y); c.Rune != '█' || c.Color != core.ColorBrightRed {
				t.Fatalf("cell (%d,%d) = %+v, expected solid rose", x, y, c)
			}
		}
	}
	if s.Get(5, 0) != ' ' || s.Get(0, 2) != ' ' {
		t.Error("fill leaked outside the polygon")
	}

	s.Clear()
	ts.FillPolygon([]Vec2{{61, 61}, {63, 61}, {62, 63}}, rose, 0.5)
	if s.Get(5, 2) != '▒' {
		t.Errorf("tiny polygon should mark its centroid cell, got %q", s.Get(5, 2))
	}

	s.Clear()
	ts.FillPolygon([]Vec2{{0, 0}, {60, 0}, {60, 48}}, rose, 0.01)
	if strings.TrimSpace(s.String()) != "" {
		t.Error("nearly transparent fill should draw nothing")
	}
}

func TestTermSurfaceClipsHugeLines(t *testing.T) {
	s := core.NewScreen(8, 4)
	ts := NewTermSurface(s)
	ts.StrokeLine(Vec2{-1e12, 30}, Vec2{1e12, 30}, 1, white, 1)
	if s.Row(1) != strings.Repeat("─", 8) {
		t.Errorf("clipped line row = %q", s.Row(1))
	}
}

func TestTermSurfaceGradientDeterministic(t *testing.T) {
	a, b := core.NewScreen(40, 20), core.NewScreen(40, 20)
	NewTermSurface(a).Gradient(color.RGBA{30, 27, 75, 255}, color.RGBA{2, 6, 23, 255})
	NewTermSurface(b).Gradient(color.RGBA{30, 27, 75, 255}, color.RGBA{2, 6, 23, 255})
	if a.String() != b.String() {
		t.Error("background should be identical across frames")
	}
}
