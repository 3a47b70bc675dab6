package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-runner/internal/core"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"left", core.ActionLeft, false},
		{"a", core.ActionLeft, false},
		{"h", core.ActionLeft, false},
		{"right", core.ActionRight, false},
		{"d", core.ActionRight, false},
		{"l", core.ActionRight, false},
		{"enter", core.ActionStart, false},
		{" ", core.ActionStart, false},
		{"r", core.ActionRestart, false},
		{"esc", core.ActionBack, false},
		{"b", core.ActionBack, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}

	km := NewKeyMapper()
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			action, quit := km.MapKey(keyMsg(tc.key))
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey(%q) = (%s, %v), expected (%s, %v)", tc.key, action, quit, tc.action, tc.quit)
			}
		})
	}
}

func TestMapKeyToFrameKeepsOrder(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()
	km.MapKeyToFrame(keyMsg("left"), &frame)
	km.MapKeyToFrame(keyMsg("x"), &frame)
	km.MapKeyToFrame(keyMsg("right"), &frame)

	if len(frame.Actions) != 2 || frame.Actions[0] != core.ActionLeft || frame.Actions[1] != core.ActionRight {
		t.Errorf("frame actions = %v, expected [Left Right]", frame.Actions)
	}
}

func TestMapMouse(t *testing.T) {
	press := func(x int) tea.MouseMsg {
		return tea.MouseMsg{X: x, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	}

	tests := []struct {
		name    string
		msg     tea.MouseMsg
		running bool
		want    core.Action
	}{
		{"left half", press(10), true, core.ActionLeft},
		{"right half", press(40), true, core.ActionRight},
		{"centre goes right", press(40), true, core.ActionRight},
		{"press before run starts", press(10), false, core.ActionStart},
		{"release ignored", tea.MouseMsg{X: 10, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}, true, core.ActionNone},
		{"wheel ignored", tea.MouseMsg{X: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}, true, core.ActionNone},
	}

	km := NewKeyMapper()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.MapMouse(tc.msg, 80, tc.running); got != tc.want {
				t.Errorf("MapMouse() = %s, expected %s", got, tc.want)
			}
		})
	}
}
