// Package config provides YAML-based configuration loading and difficulty
// management for the runner.
package config

// RunnerConfig contains all tuning for the lane runner engine.
type RunnerConfig struct {
	Projection RunnerProjection `yaml:"projection"`
	Track      RunnerTrack      `yaml:"track"`
	Motion     RunnerMotion     `yaml:"motion"`
	Spawn      RunnerSpawn      `yaml:"spawn"`
	Collision  RunnerCollision  `yaml:"collision"`
	Rules      RunnerRules      `yaml:"rules"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Render     RunnerRender     `yaml:"render"`
}

// RunnerProjection defines the perspective camera.
type RunnerProjection struct {
	FOV          float64 `yaml:"fov"`
	CameraHeight float64 `yaml:"camera_height"`
}

// RunnerTrack defines lane geometry and the scrolling floor grid.
type RunnerTrack struct {
	Lanes       int     `yaml:"lanes"`
	LaneWidth   float64 `yaml:"lane_width"`
	GridPeriod  float64 `yaml:"grid_period"`  // Scroll offset wraps at this distance
	GridDepth   float64 `yaml:"grid_depth"`   // Far edge of the drawn floor
	GridExtent  float64 `yaml:"grid_extent"`  // Half width of the drawn floor
	GridSpacing float64 `yaml:"grid_spacing"` // Distance between lateral floor lines
}

// RunnerMotion defines speed, smoothing and camera effects.
type RunnerMotion struct {
	BaseSpeed         float64 `yaml:"base_speed"`         // Depth units per frame at level 1
	LaneSmoothing     float64 `yaml:"lane_smoothing"`     // Fraction of the lateral gap closed per frame
	RotationSmoothing float64 `yaml:"rotation_smoothing"` // Fraction of the tilt gap closed per frame
	LaneTilt          float64 `yaml:"lane_tilt"`          // Target world tilt per lane away from center
	SwayAmplitude     float64 `yaml:"sway_amplitude"`
	SwayFrequency     float64 `yaml:"sway_frequency"` // Radians per millisecond
	BackgroundSpin    float64 `yaml:"background_spin"`
	ShakeDecay        float64 `yaml:"shake_decay"`
	ShakeEpsilon      float64 `yaml:"shake_epsilon"` // Shake below this is not drawn
	HitShake          float64 `yaml:"hit_shake"`
}

// RunnerSpawn defines how obstacles and collectibles appear.
type RunnerSpawn struct {
	Enabled         bool    `yaml:"enabled"`
	IntervalFactor  float64 `yaml:"interval_factor"` // Interval (ms) = factor / speed
	MinInterval     float64 `yaml:"min_interval"`    // Lower bound for the interval in ms
	MinSpacing      float64 `yaml:"min_spacing"`     // No spawn while any object is this close to depth 0
	ObstacleChance  float64 `yaml:"obstacle_chance"`
	CollectibleSpin float64 `yaml:"collectible_spin"`
}

// RunnerCollision defines the player plane and hit tests.
type RunnerCollision struct {
	PlayerDepth float64 `yaml:"player_depth"`
	WindowHalf  float64 `yaml:"window_half"` // Half depth of the player-plane window
	HitRadius   float64 `yaml:"hit_radius"`
	RemoveDepth float64 `yaml:"remove_depth"`
}

// RunnerRules defines run-level rules.
type RunnerRules struct {
	Lives  int `yaml:"lives"`
	Reward int `yaml:"reward"`
}

// DifficultyConfig defines the distance-based level ramp.
type DifficultyConfig struct {
	Enabled        bool    `yaml:"enabled"`
	LevelDistance  float64 `yaml:"level_distance"` // Level n ends at n * level_distance
	MaxLevel       int     `yaml:"max_level"`
	SpeedIncrement float64 `yaml:"speed_increment"`
}

// RunnerRender defines how the scene maps onto a surface.
type RunnerRender struct {
	CellWidth          float64 `yaml:"cell_width"`  // Virtual pixels per terminal column
	CellHeight         float64 `yaml:"cell_height"` // Virtual pixels per terminal row
	FloorAlpha         float64 `yaml:"floor_alpha"`
	ReflectionAlpha    float64 `yaml:"reflection_alpha"`
	ReflectionGap      float64 `yaml:"reflection_gap"`
	ReflectionMinDepth float64 `yaml:"reflection_min_depth"`
	SpeedLines         int     `yaml:"speed_lines"`
	VortexArms         int     `yaml:"vortex_arms"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}
