package core

import "image/color"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// palette holds the approximate RGB value of each terminal color, used to
// snap true colors from the renderer onto the cell palette.
var palette = [...]struct {
	c       Color
	r, g, b int
}{
	{ColorRed, 205, 49, 49},
	{ColorGreen, 13, 188, 121},
	{ColorYellow, 229, 229, 16},
	{ColorBlue, 36, 114, 200},
	{ColorMagenta, 188, 63, 188},
	{ColorCyan, 17, 168, 205},
	{ColorWhite, 229, 229, 229},
	{ColorBrightRed, 241, 76, 76},
	{ColorBrightGreen, 35, 209, 139},
	{ColorBrightYellow, 245, 245, 67},
	{ColorBrightBlue, 59, 142, 234},
	{ColorBrightMagenta, 214, 112, 214},
	{ColorBrightCyan, 41, 184, 219},
	{ColorBrightWhite, 255, 255, 255},
	{ColorOrange, 255, 135, 0},
	{ColorGray, 138, 138, 138},
}

// NearestColor returns the palette entry closest to c in RGB space.
// Near-black colors map to gray so dark shapes stay visible on a terminal.
func NearestColor(c color.RGBA) Color {
	if c.R < 70 && c.G < 70 && c.B < 70 {
		return ColorGray
	}
	best := ColorDefault
	bestDist := -1
	for _, p := range palette {
		dr := int(c.R) - p.r
		dg := int(c.G) - p.g
		db := int(c.B) - p.b
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best = p.c
			bestDist = d
		}
	}
	return best
}
