package runner

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
)

// Events reports what happened during one simulation step.
type Events struct {
	Spawned    bool
	Pickups    int
	Hits       int
	LevelUp    bool
	Terminated bool // Lives reached zero during this step
}

// Simulator advances a World by one frame.
type Simulator struct {
	cfg  config.RunnerConfig
	diff *config.DifficultyManager
	rng  *rand.Rand
}

// NewSimulator creates a simulator. The seed drives lane and kind selection.
func NewSimulator(cfg config.RunnerConfig, seed int64) *Simulator {
	return &Simulator{
		cfg:  cfg,
		diff: config.NewDifficultyManager(cfg),
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Difficulty returns the pacing rules in use.
func (s *Simulator) Difficulty() *config.DifficultyManager {
	return s.diff
}

// Step advances w and stats by one frame at timestamp ts (milliseconds).
// The phases run in a fixed order: travel, banking, level ramp, lateral
// smoothing, shake decay, spawning, then object advance and collision.
func (s *Simulator) Step(w *World, stats *RunStats, ts float64) Events {
	var ev Events
	m := s.cfg.Motion

	// Travel
	w.Distance += w.Speed
	w.GridOffset = core.WrapF(w.GridOffset+w.Speed, s.cfg.Track.GridPeriod)
	w.BackgroundRotation += m.BackgroundSpin

	// Banking with idle sway
	sway := 0.0
	if core.Finite(ts) {
		sway = math.Sin(ts*m.SwayFrequency) * m.SwayAmplitude
	}
	w.Rotation += (w.TargetRotation + sway - w.Rotation) * m.RotationSmoothing

	// Level ramp
	if s.diff.ShouldLevelUp(w.Distance, stats.Level) {
		stats.Level++
		w.Speed += s.diff.SpeedIncrement()
		ev.LevelUp = true
	}
	stats.SpeedPercent = s.diff.SpeedPercent(w.Speed)

	// Lateral smoothing
	target := LaneOffset(s.cfg.Track, w.PlayerLane)
	w.PlayerOffset += (target - w.PlayerOffset) * m.LaneSmoothing

	w.Shake *= m.ShakeDecay

	if s.cfg.Spawn.Enabled {
		ev.Spawned = s.spawn(w, ts)
	}

	s.advance(w, stats, &ev)
	return ev
}

// spawn places a new object at depth 0 once the interval has elapsed and the
// spawn point is clear in every lane.
func (s *Simulator) spawn(w *World, ts float64) bool {
	if !(ts-w.LastSpawn > s.diff.SpawnInterval(w.Speed)) {
		return false
	}
	for _, o := range w.Objects {
		if math.Abs(o.Depth) < s.cfg.Spawn.MinSpacing {
			return false
		}
	}

	obj := TrackObject{
		Lane:   s.rng.Intn(s.cfg.Track.Lanes),
		Kind:   Collectible,
		Active: true,
	}
	if s.rng.Float64() < s.cfg.Spawn.ObstacleChance {
		obj.Kind = Obstacle
	}
	obj.Spin = s.rng.Float64() * 2 * math.Pi

	w.Objects = append(w.Objects, obj)
	w.LastSpawn = ts
	return true
}

// advance moves every object, resolves the player plane and prunes objects
// that passed the removal depth.
//
// Each object is evaluated once, on the first frame its depth passes the near
// edge of the player window. At most one life is lost per frame: a second
// obstacle arriving in the same frame is evaluated on the next one. Once lives
// hit zero nothing else is evaluated.
func (s *Simulator) advance(w *World, stats *RunStats, ev *Events) {
	col := s.cfg.Collision
	near := col.PlayerDepth - col.WindowHalf
	lostLife := false

	for i := range w.Objects {
		o := &w.Objects[i]
		o.Depth += w.Speed
		if o.Kind == Collectible {
			o.Spin += s.cfg.Spawn.CollectibleSpin
		}

		if stats.Lives <= 0 || !o.Active || o.Checked || o.Depth <= near {
			continue
		}
		if o.Kind == Obstacle && lostLife {
			continue
		}
		o.Checked = true

		if math.Abs(LaneOffset(s.cfg.Track, o.Lane)-w.PlayerOffset) >= col.HitRadius {
			continue
		}
		o.Active = false

		switch o.Kind {
		case Obstacle:
			lostLife = true
			w.Shake = s.cfg.Motion.HitShake
			stats.Lives--
			ev.Hits++
			if stats.Lives <= 0 {
				stats.Lives = 0
				ev.Terminated = true
			}
		case Collectible:
			stats.Score += s.cfg.Rules.Reward
			ev.Pickups++
		}
	}

	kept := w.Objects[:0]
	for _, o := range w.Objects {
		if o.Depth <= col.RemoveDepth {
			kept = append(kept, o)
		}
	}
	w.Objects = kept
}
