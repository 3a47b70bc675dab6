// Package registry maps game IDs to factories. neonrun ships a single game,
// the runner, which registers itself under "runner" when its package is
// imported; hosts, the leaderboard and the SSH server look it up by that ID
// so none of them import the engine directly.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/neon-runner/internal/core"
)

// Game is what a host drives once per frame. Implementations hold no
// terminal or window state: the host maps input to actions, supplies the
// clock and presents the rendered screen.
type Game interface {
	// ID is the registry key and the leaderboard's game_id.
	ID() string

	// Title is shown in window titles and on the scoreboard.
	Title() string

	// Reset prepares a new session for the given screen, seed and player.
	Reset(cfg core.RuntimeConfig)

	// Step applies the frame's actions and advances the game to now,
	// milliseconds since the host started. now never decreases.
	Step(in core.InputFrame, now float64) core.StepResult

	// Render paints the current frame without changing the game.
	Render(dst *core.Screen)

	// State reports the HUD values and lifecycle flags.
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a fresh game.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a factory under id. Registering an id twice panics, since it
// means two packages claim the same leaderboard.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{
		info:    GameInfo{ID: id, Title: f().Title()},
		factory: f,
	}
}

// List returns the registered games ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	slices.SortFunc(out, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Create builds a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
