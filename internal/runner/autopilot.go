package runner

import (
	"math"

	"github.com/vovakirdan/neon-runner/internal/config"
)

// Autopilot steers away from obstacles that are about to reach the player
// plane and drifts toward collectibles when that is safe. It only reads the
// world, so it can drive any host.
type Autopilot struct {
	cfg       config.RunnerConfig
	lookahead float64 // Frames of warning needed to finish a lane change
}

// NewAutopilot creates an autopilot for the given tuning.
func NewAutopilot(cfg config.RunnerConfig) *Autopilot {
	// Frames for the lateral offset to close within one hit radius of a lane
	frames := 1.0
	if s := cfg.Motion.LaneSmoothing; s > 0 && s < 1 && cfg.Track.LaneWidth > 0 {
		ratio := cfg.Collision.HitRadius / cfg.Track.LaneWidth
		if ratio > 0 && ratio < 1 {
			frames = math.Ceil(math.Log(ratio) / math.Log(1-s))
		}
	}
	return &Autopilot{cfg: cfg, lookahead: frames + 4}
}

// Decide returns the lane change to make this frame, if any.
func (a *Autopilot) Decide(w *World) (Direction, bool) {
	best, ok := a.better(w, w.PlayerLane)
	if !ok {
		return Left, false
	}
	return a.toward(w.PlayerLane, best), true
}

func (a *Autopilot) toward(from, to int) Direction {
	if to < from {
		return Left
	}
	return Right
}

// better returns an adjacent lane with a strictly higher score.
func (a *Autopilot) better(w *World, lane int) (int, bool) {
	best, bestScore := lane, a.score(w, lane)
	for _, n := range []int{lane - 1, lane + 1} {
		if n < 0 || n >= a.cfg.Track.Lanes {
			continue
		}
		if s := a.score(w, n); s > bestScore {
			best, bestScore = n, s
		}
	}
	return best, best != lane
}

// score rates a lane by what will reach the player plane soon: an incoming
// obstacle is -1, a collectible +1 each.
func (a *Autopilot) score(w *World, lane int) int {
	col := a.cfg.Collision
	horizon := col.PlayerDepth - col.WindowHalf - a.lookahead*w.Speed
	score := 0
	for _, o := range w.Objects {
		if o.Lane != lane || !o.Active || o.Checked {
			continue
		}
		if o.Depth < horizon || o.Depth > col.PlayerDepth+col.WindowHalf {
			continue
		}
		if o.Kind == Obstacle {
			return -1
		}
		score++
	}
	return score
}

// HeadlessResult summarizes one autopilot run.
type HeadlessResult struct {
	Seed        int64
	Ticks       int // Frames simulated
	Score       int
	Level       int
	Distance    float64
	Lives       int
	Hits        int
	Pickups     int
	Spawns      int
	LaneChanges int
	Terminated  bool
}

// RunHeadless drives a controller with the autopilot for up to ticks frames
// spaced frameMs apart, without rendering.
func RunHeadless(cfg config.RunnerConfig, seed int64, ticks int, frameMs float64) HeadlessResult {
	res := HeadlessResult{Seed: seed}
	ctrl := NewController(cfg, Options{Seed: seed})
	pilot := NewAutopilot(cfg)
	ctrl.Start()

	for i := 0; i < ticks && ctrl.State() == Running; i++ {
		ts := float64(i+1) * frameMs
		if dir, ok := pilot.Decide(ctrl.World()); ok && ctrl.ChangeLane(dir) {
			res.LaneChanges++
		}
		ev := ctrl.Advance(ts)
		res.Ticks++
		res.Hits += ev.Hits
		res.Pickups += ev.Pickups
		if ev.Spawned {
			res.Spawns++
		}
	}

	stats := ctrl.Stats()
	res.Score = stats.Score
	res.Level = stats.Level
	res.Lives = stats.Lives
	res.Distance = ctrl.World().Distance
	res.Terminated = ctrl.State() == Terminated
	return res
}
