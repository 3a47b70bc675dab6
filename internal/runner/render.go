package runner

import (
	"image/color"
	"math"
	"sort"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/gfx"
)

// Scene palette.
var (
	colorSpaceInner = color.RGBA{15, 23, 42, 255}
	colorSpaceOuter = color.RGBA{2, 6, 23, 255}
	colorVortex     = color.RGBA{124, 58, 237, 255}
	colorFloor      = color.RGBA{88, 28, 135, 255}
	colorGrid       = color.RGBA{168, 85, 247, 255}
	colorBody       = color.RGBA{15, 23, 42, 255}
	colorTrim       = color.RGBA{14, 165, 233, 255}
	colorGlow       = color.RGBA{56, 189, 248, 255}
	colorHazard     = color.RGBA{244, 63, 94, 255}
	colorHazardEdge = color.RGBA{251, 113, 133, 255}
	colorCoin       = color.RGBA{245, 158, 11, 255}
	colorWhite      = color.RGBA{255, 255, 255, 255}
)

// Frame is everything the renderer reads to paint one frame.
type Frame struct {
	World         *World
	Timestamp     float64 // Milliseconds, drives animation
	PlayerVisible bool    // False once the run has ended
}

// Renderer paints a World onto a Surface. It keeps no state between frames.
type Renderer struct {
	cfg  config.RunnerConfig
	proj Projector
}

// NewRenderer creates a renderer for the given tuning.
func NewRenderer(cfg config.RunnerConfig) *Renderer {
	return &Renderer{cfg: cfg, proj: NewProjector(cfg.Projection)}
}

// Draw repaints the whole surface. The world is only read.
func (r *Renderer) Draw(dst gfx.Surface, f Frame) {
	w, h := dst.Size()
	if f.World == nil || w <= 0 || h <= 0 {
		return
	}
	world := f.World

	dst.Gradient(colorSpaceInner, colorSpaceOuter)

	pen := gfx.NewPen(dst)
	pen.Translate(w/2, h/2)
	if world.Shake > r.cfg.Motion.ShakeEpsilon {
		pen.Translate((jitter(f.Timestamp, 1)-0.5)*world.Shake, (jitter(f.Timestamp, 2)-0.5)*world.Shake)
	}
	pen.Rotate(world.Rotation)

	r.drawVortex(pen, w, h, world.BackgroundRotation)
	r.drawFloor(pen, world.GridOffset)

	// Mirrored reflection
	pen.Save()
	pen.Scale(1, -1)
	pen.Translate(0, -r.cfg.Render.ReflectionGap)
	pen.Fade(r.cfg.Render.ReflectionAlpha)
	r.drawFigure(pen, world, f.Timestamp)
	for _, o := range world.Objects {
		if o.Active && o.Depth > r.cfg.Render.ReflectionMinDepth {
			r.drawObject(pen, o)
		}
	}
	pen.Restore()

	sorted := make([]TrackObject, 0, len(world.Objects))
	for _, o := range world.Objects {
		if o.Active {
			sorted = append(sorted, o)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Depth < sorted[j].Depth
	})

	plane := r.cfg.Collision.PlayerDepth
	for _, o := range sorted {
		if o.Depth >= plane {
			r.drawObject(pen, o)
		}
	}
	if f.PlayerVisible {
		r.drawFigure(pen, world, f.Timestamp)
	}
	for _, o := range sorted {
		if o.Depth < plane {
			r.drawObject(pen, o)
		}
	}

	r.drawSpeedLines(pen, w, f.Timestamp, world.Speed)
}

func (r *Renderer) drawVortex(pen *gfx.Pen, w, h, spin float64) {
	arms := r.cfg.Render.VortexArms
	if arms <= 0 {
		return
	}
	// One arm: a curved band from the centre to the right edge
	band := make([]gfx.Vec2, 0, 20)
	band = append(band, quadCurve(gfx.Vec2{}, gfx.Vec2{X: w / 4, Y: h / 4}, gfx.Vec2{X: w}, 8)...)
	band = append(band, quadCurve(gfx.Vec2{X: w, Y: 100}, gfx.Vec2{X: w / 4, Y: h/4 + 100}, gfx.Vec2{Y: 10}, 8)...)

	pen.Save()
	pen.Rotate(spin)
	pen.Fade(0.1)
	for i := 0; i < arms; i++ {
		pen.Rotate(2 * math.Pi / float64(arms))
		pen.Polygon(band, colorVortex)
	}
	pen.Restore()
}

func (r *Renderer) drawFloor(pen *gfx.Pen, offset float64) {
	t := r.cfg.Track
	p := r.proj

	// Glow trapezoid under the grid
	edge := t.GridExtent * 4 / 3
	corners := []Projection{
		p.Project(-edge, 0, t.GridDepth),
		p.Project(edge, 0, t.GridDepth),
		p.Project(edge, 0, 1),
		p.Project(-edge, 0, 1),
	}
	quad := make([]gfx.Vec2, 0, 4)
	for _, c := range corners {
		if c.Visible() {
			quad = append(quad, gfx.Vec2{X: c.X, Y: c.Y})
		}
	}
	pen.Save()
	pen.Fade(r.cfg.Render.FloorAlpha)
	pen.Polygon(quad, colorFloor)
	pen.Restore()

	// Longitudinal lines
	for x := -t.GridExtent; x <= t.GridExtent; x += t.LaneWidth {
		a, b := p.Project(x, 0, 1), p.Project(x, 0, t.GridDepth)
		if a.Visible() && b.Visible() {
			pen.Line(gfx.Vec2{X: a.X, Y: a.Y}, gfx.Vec2{X: b.X, Y: b.Y}, 2, colorGrid)
		}
	}

	// Lateral lines scroll with the offset and fade toward the horizon
	for z := 0.0; z < t.GridDepth; z += t.GridSpacing {
		depth := core.WrapF(z-offset+t.GridDepth, t.GridDepth)
		a, b := p.Project(-t.GridExtent, 0, depth), p.Project(t.GridExtent, 0, depth)
		if !a.Visible() || !b.Visible() {
			continue
		}
		pen.Save()
		pen.Fade(math.Min(1, (t.GridDepth-depth)/(t.GridDepth/2)))
		pen.Line(gfx.Vec2{X: a.X, Y: a.Y}, gfx.Vec2{X: b.X, Y: b.Y}, 2, colorGrid)
		pen.Restore()
	}
}

func (r *Renderer) drawFigure(pen *gfx.Pen, world *World, ts float64) {
	c := r.proj.Project(world.PlayerOffset, 0, r.cfg.Collision.PlayerDepth)
	if !c.Visible() {
		return
	}
	pose := FigurePose(ts, world.Speed, world.PlayerLane, CenterLane(r.cfg.Track))

	pen.Save()
	pen.Translate(c.X, c.Y-pose.Bob*c.Scale)
	pen.Scale(c.Scale, c.Scale)
	pen.Rotate(pose.Tilt)

	drawLimbs(pen, pose.Back)

	// Torso, core and head
	pen.Polygon([]gfx.Vec2{{X: -15, Y: -50}, {X: 15, Y: -50}, {X: 10, Y: 10}, {X: -10, Y: 10}}, colorBody)
	pen.Polygon([]gfx.Vec2{{X: -5, Y: -40}, {X: 5, Y: -40}, {X: 0, Y: -10}}, colorGlow)
	pen.Circle(gfx.Vec2{Y: -65}, 12, colorBody)
	pen.Polygon([]gfx.Vec2{{X: -8, Y: -68}, {X: 8, Y: -68}, {X: 8, Y: -62}, {X: -8, Y: -62}}, colorGlow)

	drawLimbs(pen, pose.Front)
	pen.Restore()
}

func drawLimbs(pen *gfx.Pen, limbs []Limb) {
	for _, l := range limbs {
		pen.Line(l.From, l.To, l.Width, colorBody)
		pen.Line(l.From, l.To, l.Width*0.3, colorTrim)
	}
}

var (
	hazardOuter = []gfx.Vec2{{X: 0, Y: -100}, {X: 60, Y: 0}, {X: -60, Y: 0}}
	hazardInner = []gfx.Vec2{{X: 0, Y: -60}, {X: 20, Y: -10}, {X: -20, Y: -10}}
	coinShape   = gfx.RegularPolygon(gfx.Vec2{}, 40, 8, 0)
)

func (r *Renderer) drawObject(pen *gfx.Pen, o TrackObject) {
	c := r.proj.Project(LaneOffset(r.cfg.Track, o.Lane), 0, o.Depth)
	if !c.Visible() {
		return
	}
	pen.Save()
	pen.Translate(c.X, c.Y)
	pen.Scale(c.Scale, c.Scale)

	switch o.Kind {
	case Obstacle:
		pen.Save()
		pen.Fade(0.2)
		pen.Polygon(hazardOuter, colorHazard)
		pen.Restore()
		pen.Polyline(hazardOuter, true, 5, colorHazardEdge)
		pen.Polygon(hazardInner, colorHazard)
	case Collectible:
		pen.Rotate(o.Spin)
		pen.Polygon(coinShape, colorCoin)
		pen.Polyline(coinShape, true, 3, colorWhite)
	}
	pen.Restore()
}

func (r *Renderer) drawSpeedLines(pen *gfx.Pen, w, ts, speed float64) {
	count := r.cfg.Render.SpeedLines
	for i := 0; i < count; i++ {
		angle := float64(i)/float64(count)*2*math.Pi + ts*0.001
		dist := core.WrapF(ts*speed*0.5+float64(i)*100, 1000) / 1000
		if dist < 0.1 {
			continue
		}
		r1 := dist * dist * w * 0.8
		r2 := (dist + 0.1) * (dist + 0.1) * w * 0.8
		sin, cos := math.Sincos(angle)

		pen.Save()
		pen.Fade(0.5 * dist)
		pen.Line(gfx.Vec2{X: cos * r1, Y: sin * r1}, gfx.Vec2{X: cos * r2, Y: sin * r2}, 2, colorWhite)
		pen.Restore()
	}
}

// quadCurve samples a quadratic Bezier from a to b with control point c.
func quadCurve(a, c, b gfx.Vec2, n int) []gfx.Vec2 {
	pts := make([]gfx.Vec2, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		pts = append(pts, gfx.Vec2{
			X: u*u*a.X + 2*u*t*c.X + t*t*b.X,
			Y: u*u*a.Y + 2*u*t*c.Y + t*t*b.Y,
		})
	}
	return pts
}

// jitter is a fixed pseudo-random value in [0, 1) for a timestamp, so a
// shaking frame redraws identically.
func jitter(ts float64, channel float64) float64 {
	v := math.Sin(ts*12.9898+channel*78.233) * 43758.5453
	if !core.Finite(v) {
		return 0.5
	}
	return v - math.Floor(v)
}
