package runner

import (
	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
)

// Projection is a camera-relative screen point plus its perspective scale.
// A zero Scale means the point must not be drawn.
type Projection struct {
	X, Y  float64
	Scale float64
}

// Visible reports whether the projected point can be drawn.
func (p Projection) Visible() bool {
	return p.Scale > 0
}

// Projector maps track coordinates onto the screen plane.
type Projector struct {
	FOV          float64
	CameraHeight float64
}

// NewProjector creates a projector from the camera settings.
func NewProjector(cfg config.RunnerProjection) Projector {
	return Projector{FOV: cfg.FOV, CameraHeight: cfg.CameraHeight}
}

// Project maps (lateral, height, depth) to the screen. Points with depth
// below 1 are behind the camera and yield the zero projection, as does any
// input that would produce a non-finite coordinate.
func (p Projector) Project(lateral, height, depth float64) Projection {
	if depth < 1 || !core.Finite(depth) {
		return Projection{}
	}
	scale := p.FOV / (p.FOV + depth)
	if !core.Finite(scale) || scale <= 0 {
		return Projection{}
	}
	x := lateral * scale
	y := (height - p.CameraHeight) * scale
	if !core.Finite(x) || !core.Finite(y) {
		return Projection{}
	}
	return Projection{X: x, Y: y, Scale: scale}
}
