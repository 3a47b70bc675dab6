package gfx

import "image/color"

// Surface is a drawing target in device pixels. Implementations clip to their
// own bounds and ignore degenerate shapes.
type Surface interface {
	// Size reports the surface extent in pixels.
	Size() (w, h float64)
	// Gradient fills the whole surface with a radial gradient.
	Gradient(inner, outer color.RGBA)
	// StrokeLine draws a segment of the given width.
	StrokeLine(a, b Vec2, width float64, c color.RGBA, alpha float64)
	// FillPolygon fills a closed polygon.
	FillPolygon(pts []Vec2, c color.RGBA, alpha float64)
}
