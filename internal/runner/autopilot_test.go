package runner

import (
	"testing"

	"github.com/vovakirdan/neon-runner/internal/config"
)

func TestAutopilotDecide(t *testing.T) {
	cfg := quietConfig()
	pilot := NewAutopilot(cfg)

	tests := []struct {
		name    string
		lane    int
		objects []TrackObject
		want    Direction
		move    bool
	}{
		{"clear track", 1, nil, Left, false},
		{"dodge obstacle", 1, []TrackObject{{Lane: 1, Depth: 1000, Kind: Obstacle, Active: true}}, Left, true},
		{"dodge at edge", 0, []TrackObject{{Lane: 0, Depth: 1000, Kind: Obstacle, Active: true}}, Right, true},
		{"chase collectible", 1, []TrackObject{{Lane: 2, Depth: 1000, Kind: Collectible, Active: true}}, Right, true},
		{"ignore far obstacle", 1, []TrackObject{{Lane: 1, Depth: 100, Kind: Obstacle, Active: true}}, Left, false},
		{"ignore checked obstacle", 1, []TrackObject{{Lane: 1, Depth: 1200, Kind: Obstacle, Active: true, Checked: true}}, Left, false},
		{"avoid obstacle when collecting", 1, []TrackObject{
			{Lane: 0, Depth: 1000, Kind: Obstacle, Active: true},
			{Lane: 2, Depth: 900, Kind: Collectible, Active: true},
		}, Right, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld(cfg)
			w.PlayerLane = tc.lane
			w.Objects = tc.objects
			dir, ok := pilot.Decide(w)
			if ok != tc.move || (ok && dir != tc.want) {
				t.Errorf("Decide = (%v, %v), expected (%v, %v)", dir, ok, tc.want, tc.move)
			}
		})
	}
}

func TestRunHeadless(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	a := RunHeadless(cfg, 7, 3000, 16)
	b := RunHeadless(cfg, 7, 3000, 16)
	if a != b {
		t.Errorf("same seed should replay identically:\n%+v\n%+v", a, b)
	}
	if a.Ticks > 3000 || a.Ticks == 0 {
		t.Errorf("Ticks = %d, expected 1..3000", a.Ticks)
	}
	if !a.Terminated && a.Ticks != 3000 {
		t.Errorf("surviving run should use every tick, used %d", a.Ticks)
	}
	if a.Distance <= 0 || a.Spawns == 0 {
		t.Errorf("run made no progress: %+v", a)
	}
	if a.Terminated && a.Lives != 0 {
		t.Errorf("terminated run with %d lives", a.Lives)
	}
}
