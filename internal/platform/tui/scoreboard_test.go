package tui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/neon-runner/internal/storage"
)

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(nil, "runner", "Neon Runner", 100, 30, false)
	view := m.View()
	if !strings.Contains(view, "No runs recorded yet") {
		t.Error("empty leaderboard should say so")
	}
	if !strings.Contains(view, "NEON RUNNER") {
		t.Error("title should name the game")
	}
}

func TestScoreboardShowsRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() error: %v", err)
	}
	defer store.Close()

	store.SaveRun(storage.Run{GameID: "runner", Player: "ada", Score: 150, Level: 2, Distance: 17000})
	store.SaveRun(storage.Run{GameID: "runner", Player: "bob", Score: 300, Level: 3, Distance: 31000})

	m := NewScoreboardModel(store, "runner", "Neon Runner", 100, 30, false)
	view := m.View()
	for _, want := range []string{"ada", "bob", "300", "2 runs", "best 300"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Index(view, "bob") > strings.Index(view, "ada") {
		t.Error("higher score should be listed first")
	}
}

func TestScoreboardKeys(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		playable bool
		play     bool
		back     bool
		quit     bool
	}{
		{"enter plays from hub", "enter", true, true, false, false},
		{"enter ignored when not playable", "enter", false, false, false, false},
		{"esc goes back", "esc", false, false, true, false},
		{"q quits", "q", true, false, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewScoreboardModel(nil, "runner", "Neon Runner", 80, 24, tc.playable)
			next, _ := m.Update(keyMsg(tc.key))
			m = next.(ScoreboardModel)
			if m.PlayRequested() != tc.play || m.IsGoingBack() != tc.back || m.IsQuitting() != tc.quit {
				t.Errorf("play/back/quit = %v/%v/%v", m.PlayRequested(), m.IsGoingBack(), m.IsQuitting())
			}
		})
	}
}

func TestSessionHubToGameAndBack(t *testing.T) {
	cfg := sessionConfig()
	s := NewSessionModel("runner", nil, cfg, SessionOptions{})

	next, cmd := s.Update(keyMsg("enter"))
	s = next.(SessionModel)
	if s.gameModel == nil || cmd == nil {
		t.Fatal("enter on the hub should launch a run")
	}

	next, _ = s.Update(keyMsg("esc"))
	s = next.(SessionModel)
	next, _ = s.Update(TickMsg(s.gameModel.start))
	s = next.(SessionModel)
	if s.gameModel != nil {
		t.Fatal("backing out of the run should return to the hub")
	}
	if s.quitting {
		t.Error("returning to the hub should keep the session open")
	}

	next, cmd = s.Update(keyMsg("esc"))
	s = next.(SessionModel)
	if !s.quitting || !isQuit(cmd) {
		t.Error("back on the hub should end the session")
	}
}
