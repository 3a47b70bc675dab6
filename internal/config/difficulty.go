package config

import (
	"math"
)

// DifficultyManager derives pacing from distance and speed.
type DifficultyManager struct {
	cfg       DifficultyConfig
	spawn     RunnerSpawn
	baseSpeed float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg RunnerConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:       cfg.Difficulty,
		spawn:     cfg.Spawn,
		baseSpeed: cfg.Motion.BaseSpeed,
	}
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.LevelDistance > 0
}

// ShouldLevelUp reports whether distance has crossed the end of level.
// Levels stop advancing at the configured maximum.
func (d *DifficultyManager) ShouldLevelUp(distance float64, level int) bool {
	if !d.IsEnabled() || level >= d.cfg.MaxLevel {
		return false
	}
	return distance > float64(level)*d.cfg.LevelDistance
}

// SpeedIncrement returns the speed added on each level-up.
func (d *DifficultyManager) SpeedIncrement() float64 {
	return d.cfg.SpeedIncrement
}

// SpawnInterval returns the minimum milliseconds between spawns at speed.
// A stopped track never spawns.
func (d *DifficultyManager) SpawnInterval(speed float64) float64 {
	if speed <= 0 {
		return math.Inf(1)
	}
	return math.Max(d.spawn.MinInterval, d.spawn.IntervalFactor/speed)
}

// SpeedPercent reports speed relative to the base speed, floored.
func (d *DifficultyManager) SpeedPercent(speed float64) int {
	if d.baseSpeed <= 0 {
		return 100
	}
	return int(math.Floor(speed / d.baseSpeed * 100))
}
