package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the default runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Projection: RunnerProjection{
			FOV:          600,
			CameraHeight: 200,
		},
		Track: RunnerTrack{
			Lanes:       3,
			LaneWidth:   300,
			GridPeriod:  200,
			GridDepth:   3000,
			GridExtent:  3000,
			GridSpacing: 300,
		},
		Motion: RunnerMotion{
			BaseSpeed:         40,
			LaneSmoothing:     0.15,
			RotationSmoothing: 0.05,
			LaneTilt:          -0.1,
			SwayAmplitude:     0.05,
			SwayFrequency:     0.001,
			BackgroundSpin:    0.0005,
			ShakeDecay:        0.9,
			ShakeEpsilon:      0.5,
			HitShake:          30,
		},
		Spawn: RunnerSpawn{
			Enabled:         true,
			IntervalFactor:  25000,
			MinInterval:     400,
			MinSpacing:      300,
			ObstacleChance:  0.65,
			CollectibleSpin: 0.05,
		},
		Collision: RunnerCollision{
			PlayerDepth: 1200,
			WindowHalf:  50,
			HitRadius:   100,
			RemoveDepth: 1800,
		},
		Rules: RunnerRules{
			Lives:  3,
			Reward: 50,
		},
		Difficulty: DifficultyConfig{
			Enabled:        true,
			LevelDistance:  15000,
			MaxLevel:       5,
			SpeedIncrement: 2,
		},
		Render: RunnerRender{
			CellWidth:          12,
			CellHeight:         24,
			FloorAlpha:         0.5,
			ReflectionAlpha:    0.2,
			ReflectionGap:      20,
			ReflectionMinDepth: 200,
			SpeedLines:         20,
			VortexArms:         8,
		},
	}
}
