package runner

import (
	"strings"
	"testing"

	"github.com/vovakirdan/neon-runner/internal/audio"
	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/registry"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatalf("registry.Create(%q) error: %v", GameID, err)
	}
	game, ok := g.(*Game)
	if !ok {
		t.Fatalf("registry returned %T", g)
	}
	rt := core.DefaultConfig()
	rt.Seed = 42
	game.Reset(rt)
	return game
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestGameTitleOverlay(t *testing.T) {
	g := newTestGame(t)
	if g.State().Started {
		t.Error("game should wait on the title overlay")
	}

	s := core.NewScreen(80, 24)
	g.Render(s)
	out := s.String()
	for _, want := range []string{"NEON RUNNER", "000000", "LEVEL 1", "SPEED 100%"} {
		if !strings.Contains(out, want) {
			t.Errorf("title frame missing %q", want)
		}
	}
	if n := strings.Count(out, string(HeartChar)); n != 3 {
		t.Errorf("expected 3 hearts, got %d", n)
	}

	// " LEVEL 1 " is centred on the top row
	top := []rune(s.Row(0))
	if got := string(top[36:43]); got != "LEVEL 1" {
		t.Errorf("top row = %q, expected LEVEL 1 centred at column 36", string(top))
	}
}

func TestGameStartAndSteer(t *testing.T) {
	g := newTestGame(t)
	rec := &audio.Recorder{}
	g.SetNotifier(rec)

	res := g.Step(frame(core.ActionStart), 16)
	if !res.State.Started || res.State.GameOver {
		t.Fatalf("state after start = %+v", res.State)
	}
	if rec.Count(audio.CuePositive) != 1 {
		t.Error("start should play the positive cue")
	}

	g.Step(frame(core.ActionLeft, core.ActionLeft), 32)
	if lane := g.Controller().World().PlayerLane; lane != 0 {
		t.Errorf("lane = %d, expected 0", lane)
	}
	if rec.Count(audio.CueClick) != 1 {
		t.Errorf("clicks = %d, expected 1", rec.Count(audio.CueClick))
	}

	s := core.NewScreen(80, 24)
	g.Render(s)
	if strings.Contains(s.String(), "NEON RUNNER") {
		t.Error("title overlay should be gone while running")
	}
	if g.State().Distance <= 0 {
		t.Error("running game should cover distance")
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(core.ActionStart), 16)

	ctrl := g.Controller()
	ctrl.stats.Lives = 1
	w := ctrl.World()
	w.Objects = append(w.Objects, TrackObject{Lane: w.PlayerLane, Depth: 1140, Kind: Obstacle, Active: true})

	res := g.Step(frame(), 32)
	if !res.State.GameOver || res.State.Lives != 0 {
		t.Fatalf("state = %+v, expected game over", res.State)
	}

	s := core.NewScreen(80, 24)
	g.Render(s)
	if out := s.String(); !strings.Contains(out, "SYSTEM FAILURE") || !strings.Contains(out, "SCORE: 0") {
		t.Errorf("terminal overlay missing:\n%s", out)
	}

	// Lane input is ignored, restart begins a fresh run
	g.Step(frame(core.ActionLeft), 48)
	res = g.Step(frame(core.ActionRestart), 64)
	if res.State.GameOver || res.State.Lives != 3 {
		t.Errorf("state after restart = %+v", res.State)
	}
}

func TestGameBackExits(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(core.ActionStart), 16)
	res := g.Step(frame(core.ActionBack), 32)
	if !res.State.Exited {
		t.Error("Back should exit the game")
	}
}

func TestSetDifficultyPreset(t *testing.T) {
	defer SetDifficultyPreset("")

	SetDifficultyPreset("fixed")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable the ramp")
	}

	for _, preset := range []string{"easy", "normal", "hard"} {
		SetDifficultyPreset(preset)
		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig(%s) error: %v", preset, err)
		}
		if cfg.Rules.Lives != 3 || cfg.Track.Lanes != 3 {
			t.Errorf("%s: lives %d lanes %d, expected 3 and 3", preset, cfg.Rules.Lives, cfg.Track.Lanes)
		}
	}

	SetDifficultyPreset("bogus")
	cfg, _ = LoadConfig()
	if !cfg.Difficulty.Enabled {
		t.Error("unknown preset should keep the configured ramp")
	}
}
