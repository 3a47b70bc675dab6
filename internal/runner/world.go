// Package runner implements the neon lane runner: a three-lane track projected
// in perspective, with obstacles to dodge and collectibles to pick up.
package runner

import (
	"github.com/vovakirdan/neon-runner/internal/config"
)

// Kind distinguishes the two things that travel down the track.
type Kind int

const (
	Obstacle Kind = iota
	Collectible
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	if k == Collectible {
		return "collectible"
	}
	return "obstacle"
}

// TrackObject is a single obstacle or collectible on the track.
type TrackObject struct {
	Lane    int     // Fixed at spawn
	Depth   float64 // Starts at 0 and grows by the world speed each frame
	Kind    Kind
	Active  bool    // False once hit or collected
	Checked bool    // Set once the object has been evaluated at the player plane
	Spin    float64 // Decorative rotation of collectibles
}

// World is the mutable simulation record for one run.
// Only the simulator mutates it; input goes through the controller's intent
// fields (PlayerLane and TargetRotation).
type World struct {
	PlayerLane         int
	PlayerOffset       float64 // Lateral position, smoothed toward the lane centre
	Speed              float64
	Distance           float64
	Rotation           float64
	TargetRotation     float64
	BackgroundRotation float64
	Shake              float64
	GridOffset         float64
	LastSpawn          float64 // Timestamp of the last spawn in ms
	Objects            []TrackObject
}

// NewWorld returns the state of a fresh run: centre lane, base speed, empty track.
func NewWorld(cfg config.RunnerConfig) *World {
	lane := CenterLane(cfg.Track)
	return &World{
		PlayerLane:   lane,
		PlayerOffset: LaneOffset(cfg.Track, lane),
		Speed:        cfg.Motion.BaseSpeed,
		Objects:      make([]TrackObject, 0, 16),
	}
}

// Clone returns a deep copy of the world.
func (w *World) Clone() *World {
	c := *w
	c.Objects = append([]TrackObject(nil), w.Objects...)
	return &c
}

// RunStats holds the counters surfaced to the HUD.
type RunStats struct {
	Score        int
	Lives        int
	Level        int
	SpeedPercent int
}

// NewRunStats returns the counters of a fresh run.
func NewRunStats(cfg config.RunnerConfig) RunStats {
	return RunStats{
		Lives:        cfg.Rules.Lives,
		Level:        1,
		SpeedPercent: 100,
	}
}

// CenterLane returns the lane the player starts in.
func CenterLane(t config.RunnerTrack) int {
	return (t.Lanes - 1) / 2
}

// LaneOffset returns the lateral world position of a lane centre.
func LaneOffset(t config.RunnerTrack, lane int) float64 {
	center := float64(t.Lanes-1) / 2
	return (float64(lane) - center) * t.LaneWidth
}

// LaneTilt returns the world rotation targeted while standing in lane.
func LaneTilt(cfg config.RunnerConfig, lane int) float64 {
	center := float64(cfg.Track.Lanes-1) / 2
	return (float64(lane) - center) * cfg.Motion.LaneTilt
}
