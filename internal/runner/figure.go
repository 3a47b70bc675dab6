package runner

import (
	"math"

	"github.com/vovakirdan/neon-runner/internal/gfx"
)

// Limb is one stroked segment of the runner figure, in figure-local units.
type Limb struct {
	From, To gfx.Vec2
	Width    float64
}

// Pose is the animated part of the runner figure.
type Pose struct {
	Bob   float64 // Vertical lift before perspective scaling
	Tilt  float64 // Bank into the current lane
	Back  []Limb  // Drawn behind the torso
	Front []Limb  // Drawn in front of the torso
}

const (
	legSwing = 30
	armSwing = 30
)

// FigurePose computes the runner pose from the clock, the speed and the lane
// alone, so any frame can be redrawn without history.
func FigurePose(ts, speed float64, lane int, centerLane int) Pose {
	cycle := ts * 0.015 * (speed / 30)
	back := math.Sin(cycle + math.Pi)
	front := math.Sin(cycle)

	p := Pose{
		Bob:  math.Abs(math.Sin(cycle)) * 20,
		Tilt: float64(lane-centerLane) * -0.2,
	}
	p.Back = append(leg(10, back), arm(-15, -20, back)...)
	p.Front = append(arm(15, 20, front), leg(-10, front)...)
	return p
}

func leg(hipX, angle float64) []Limb {
	kneeX := math.Sin(angle) * legSwing
	kneeY := 60 + math.Cos(angle)*10
	footX := kneeX + math.Sin(angle-0.5)*legSwing
	footY := kneeY + 60
	return []Limb{
		{From: gfx.Vec2{X: hipX, Y: 50}, To: gfx.Vec2{X: hipX + kneeX, Y: kneeY}, Width: 14},
		{From: gfx.Vec2{X: hipX + kneeX, Y: kneeY}, To: gfx.Vec2{X: hipX + footX, Y: footY}, Width: 12},
	}
}

func arm(shoulderX, elbowBase, angle float64) []Limb {
	elbowX := elbowBase + math.Sin(angle)*armSwing
	elbowY := -30 + math.Abs(math.Cos(angle))*10
	handX := elbowX + math.Sin(angle+0.5)*armSwing
	handY := elbowY + 30
	return []Limb{
		{From: gfx.Vec2{X: shoulderX, Y: -40}, To: gfx.Vec2{X: elbowX, Y: elbowY}, Width: 12},
		{From: gfx.Vec2{X: elbowX, Y: elbowY}, To: gfx.Vec2{X: handX, Y: handY}, Width: 10},
	}
}
