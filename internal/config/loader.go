package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid runner config")

// Fixed shape of every run.
const (
	TrackLanes = 3
	MaxLives   = 3
)

// LoadRunner loads runner configuration.
// Search order: customPath -> ~/.neonrun/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
// Files are decoded on top of the defaults, so a partial file only overrides
// the keys it names.
func LoadRunner(customPath string) (RunnerConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg := DefaultRunnerConfig()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath("runner.yaml"), filepath.Join("configs", "runner.yaml")} {
		if path == "" {
			continue
		}
		if cfg, ok := readRunner(path); ok {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(defaultRunnerYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// readRunner decodes an optional config file. Unreadable or invalid files are
// skipped so the next search location can be tried.
func readRunner(path string) (RunnerConfig, bool) {
	cfg := DefaultRunnerConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if cfg.Validate() != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".neonrun", "configs", filename)
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
	}

	// Presets only change pacing; every run starts with the same lives
	switch preset {
	case DifficultyEasy:
		cfg.Motion.BaseSpeed = 32
		cfg.Difficulty.LevelDistance = 18000
		cfg.Spawn.ObstacleChance = 0.55
	case DifficultyHard:
		cfg.Motion.BaseSpeed = 48
		cfg.Difficulty.SpeedIncrement = 3
		cfg.Difficulty.LevelDistance = 12000
		cfg.Spawn.ObstacleChance = 0.75
	}
}

// Validate reports the first setting that would break the simulation.
func (c RunnerConfig) Validate() error {
	switch {
	case c.Projection.FOV <= 0:
		return fmt.Errorf("%w: projection.fov must be positive", ErrInvalid)
	case c.Track.Lanes != TrackLanes:
		return fmt.Errorf("%w: track.lanes must be %d", ErrInvalid, TrackLanes)
	case c.Track.LaneWidth <= 0:
		return fmt.Errorf("%w: track.lane_width must be positive", ErrInvalid)
	case c.Track.GridPeriod <= 0 || c.Track.GridSpacing <= 0:
		return fmt.Errorf("%w: track grid period and spacing must be positive", ErrInvalid)
	case c.Motion.BaseSpeed < 0:
		return fmt.Errorf("%w: motion.base_speed must not be negative", ErrInvalid)
	case c.Motion.LaneSmoothing <= 0 || c.Motion.LaneSmoothing >= 1:
		return fmt.Errorf("%w: motion.lane_smoothing must be in (0, 1)", ErrInvalid)
	case c.Motion.RotationSmoothing <= 0 || c.Motion.RotationSmoothing >= 1:
		return fmt.Errorf("%w: motion.rotation_smoothing must be in (0, 1)", ErrInvalid)
	case c.Motion.ShakeDecay < 0 || c.Motion.ShakeDecay >= 1:
		return fmt.Errorf("%w: motion.shake_decay must be in [0, 1)", ErrInvalid)
	case c.Spawn.ObstacleChance < 0 || c.Spawn.ObstacleChance > 1:
		return fmt.Errorf("%w: spawn.obstacle_chance must be in [0, 1]", ErrInvalid)
	case c.Spawn.MinInterval < 0:
		return fmt.Errorf("%w: spawn.min_interval must not be negative", ErrInvalid)
	case c.Collision.WindowHalf < 0 || c.Collision.HitRadius < 0:
		return fmt.Errorf("%w: collision window and radius must not be negative", ErrInvalid)
	case c.Collision.RemoveDepth <= c.Collision.PlayerDepth+c.Collision.WindowHalf:
		return fmt.Errorf("%w: collision.remove_depth must lie beyond the player window", ErrInvalid)
	case c.Rules.Lives < 1 || c.Rules.Lives > MaxLives:
		return fmt.Errorf("%w: rules.lives must be in [1, %d]", ErrInvalid, MaxLives)
	case c.Rules.Reward < 0:
		return fmt.Errorf("%w: rules.reward must not be negative", ErrInvalid)
	case c.Difficulty.SpeedIncrement < 0:
		return fmt.Errorf("%w: difficulty.speed_increment must not be negative", ErrInvalid)
	case c.Difficulty.Enabled && c.Difficulty.LevelDistance <= 0:
		return fmt.Errorf("%w: difficulty.level_distance must be positive", ErrInvalid)
	case c.Render.CellWidth <= 0 || c.Render.CellHeight <= 0:
		return fmt.Errorf("%w: render cell size must be positive", ErrInvalid)
	case c.Difficulty.MaxLevel < 1:
		return fmt.Errorf("%w: difficulty.max_level must be at least 1", ErrInvalid)
	}
	return nil
}
