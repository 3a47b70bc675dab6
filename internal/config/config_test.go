package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := LoadRunner("")
	if err != nil {
		t.Fatalf("LoadRunner(\"\") error: %v", err)
	}
	want := DefaultRunnerConfig()
	if cfg != want {
		t.Errorf("embedded defaults diverge from DefaultRunnerConfig:\n got %+v\nwant %+v", cfg, want)
	}
}

func TestLoadRunnerCustomPartial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runner.yaml")
	data := []byte("motion:\n  base_speed: 55\nrules:\n  lives: 2\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner error: %v", err)
	}
	if cfg.Motion.BaseSpeed != 55 {
		t.Errorf("BaseSpeed = %v, expected 55", cfg.Motion.BaseSpeed)
	}
	if cfg.Rules.Lives != 2 {
		t.Errorf("Lives = %d, expected 2", cfg.Rules.Lives)
	}
	if cfg.Projection.FOV != 600 {
		t.Errorf("unset keys should keep defaults, FOV = %v", cfg.Projection.FOV)
	}
}

func TestLoadRunnerErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadRunner(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("motion: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRunner(bad); err == nil {
		t.Error("malformed yaml should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("rules:\n  lives: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRunner(invalid); !errors.Is(err, ErrInvalid) {
		t.Errorf("zero lives should wrap ErrInvalid, got %v", err)
	}
}

func TestLoadRunnerRejectsUnsafeTuning(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative speed increment", "difficulty:\n  speed_increment: -30\n"},
		{"five lanes", "track:\n  lanes: 5\n"},
		{"rotation snaps", "motion:\n  rotation_smoothing: 1\n"},
		{"extra lives", "rules:\n  lives: 5\n"},
	}

	dir := t.TempDir()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tc.name, " ", "_")+".yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadRunner(path); !errors.Is(err, ErrInvalid) {
				t.Errorf("LoadRunner() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RunnerConfig)
	}{
		{"zero fov", func(c *RunnerConfig) { c.Projection.FOV = 0 }},
		{"no lanes", func(c *RunnerConfig) { c.Track.Lanes = 0 }},
		{"four lanes", func(c *RunnerConfig) { c.Track.Lanes = 4 }},
		{"negative speed", func(c *RunnerConfig) { c.Motion.BaseSpeed = -1 }},
		{"smoothing above one", func(c *RunnerConfig) { c.Motion.LaneSmoothing = 1.5 }},
		{"lane snaps", func(c *RunnerConfig) { c.Motion.LaneSmoothing = 1 }},
		{"rotation snaps", func(c *RunnerConfig) { c.Motion.RotationSmoothing = 1 }},
		{"rotation frozen", func(c *RunnerConfig) { c.Motion.RotationSmoothing = 0 }},
		{"too many lives", func(c *RunnerConfig) { c.Rules.Lives = 4 }},
		{"negative speed increment", func(c *RunnerConfig) { c.Difficulty.SpeedIncrement = -30 }},
		{"chance above one", func(c *RunnerConfig) { c.Spawn.ObstacleChance = 2 }},
		{"remove inside window", func(c *RunnerConfig) { c.Collision.RemoveDepth = 1200 }},
		{"zero level distance", func(c *RunnerConfig) { c.Difficulty.LevelDistance = 0 }},
	}

	if err := DefaultRunnerConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate, got %v", err)
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestApplyRunnerPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		enabled   bool
		baseSpeed float64
	}{
		{DifficultyEasy, true, 32},
		{DifficultyNormal, true, 40},
		{DifficultyHard, true, 48},
		{DifficultyFixed, false, 40},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			ApplyRunnerPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Motion.BaseSpeed != tc.baseSpeed {
				t.Errorf("BaseSpeed = %v, expected %v", cfg.Motion.BaseSpeed, tc.baseSpeed)
			}
			if cfg.Rules.Lives != MaxLives {
				t.Errorf("Lives = %d, presets must keep %d", cfg.Rules.Lives, MaxLives)
			}
			if cfg.Difficulty.SpeedIncrement < 0 {
				t.Errorf("SpeedIncrement = %v, speed must never drop", cfg.Difficulty.SpeedIncrement)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("hard should parse")
	}
	if ParsePreset("nightmare") != "" {
		t.Error("unknown preset should parse to empty")
	}
}

func TestDifficultyManager(t *testing.T) {
	d := NewDifficultyManager(DefaultRunnerConfig())

	if d.ShouldLevelUp(15000, 1) {
		t.Error("level 1 should end strictly after 15000")
	}
	if !d.ShouldLevelUp(15001, 1) {
		t.Error("15001 should end level 1")
	}
	if d.ShouldLevelUp(1e9, 5) {
		t.Error("no level-up at max level")
	}
	if got := d.SpawnInterval(40); got != 625 {
		t.Errorf("SpawnInterval(40) = %v, expected 625", got)
	}
	if got := d.SpawnInterval(100); got != 400 {
		t.Errorf("SpawnInterval(100) = %v, expected floor 400", got)
	}
	if got := d.SpawnInterval(0); !math.IsInf(got, 1) {
		t.Errorf("SpawnInterval(0) = %v, expected +Inf", got)
	}
	if got := d.SpeedPercent(42); got != 105 {
		t.Errorf("SpeedPercent(42) = %d, expected 105", got)
	}

	d.SetEnabled(false)
	if d.ShouldLevelUp(1e9, 1) {
		t.Error("disabled manager should never level up")
	}
}
