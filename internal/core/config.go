package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Frames per second requested from the host
	Seed     int64  // RNG seed for deterministic gameplay
	Player   string // Name recorded on the leaderboard
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		Player:   "runner",
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int     // Current score
	Lives    int     // Remaining lives
	Level    int     // Current difficulty level
	Distance float64 // Distance covered in the current run
	Started  bool    // Whether a run has been started at least once
	GameOver bool    // Whether the current run has ended
	Exited   bool    // Whether the player asked to leave the game
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
