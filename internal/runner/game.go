package runner

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/gfx"
	"github.com/vovakirdan/neon-runner/internal/registry"
)

// GameID is the registry and leaderboard key of the runner.
const GameID = "runner"

// HUD glyphs
const (
	HeartChar = '♥'
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// config file's setting.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// LoadConfig resolves the runner config the way Reset does.
func LoadConfig() (config.RunnerConfig, error) {
	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		return config.DefaultRunnerConfig(), err
	}
	if difficultyPreset != "" {
		config.ApplyRunnerPreset(&cfg, difficultyPreset)
	}
	return cfg, nil
}

// Game adapts a Controller to the registry's frame-driven Game interface
// and draws the HUD on top of the scene.
type Game struct {
	ctrl     *Controller
	runtime  core.RuntimeConfig
	cfg      config.RunnerConfig
	now      float64
	notifier Notifier
	logger   *log.Logger
}

// New creates a new runner game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Neon Runner"
}

// SetNotifier routes sound cues to n.
func (g *Game) SetNotifier(n Notifier) {
	g.notifier = n
	if g.ctrl != nil {
		g.ctrl.SetNotifier(n)
	}
}

// SetLogger sets the logger handed to the controller on Reset.
func (g *Game) SetLogger(l *log.Logger) {
	g.logger = l
}

// Reset loads the config and shows the title overlay for a new session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := LoadConfig()
	if err != nil && g.logger != nil {
		g.logger.Warn("using default runner config", "err", err)
	}
	g.cfg = cfg

	g.ctrl = NewController(cfg, Options{
		Seed:     runtime.Seed,
		Notifier: g.notifier,
		Logger:   g.logger,
	})
	g.now = 0
}

// Controller returns the engine behind the game.
func (g *Game) Controller() *Controller {
	return g.ctrl
}

// Step applies the frame's actions in order and advances the run.
func (g *Game) Step(in core.InputFrame, now float64) core.StepResult {
	g.now = now
	for _, a := range in.Actions {
		switch a {
		case core.ActionStart:
			if g.ctrl.State() != Running {
				g.ctrl.Start()
			}
		case core.ActionRestart:
			if g.ctrl.State() == Terminated {
				g.ctrl.Start()
			}
		case core.ActionLeft:
			g.ctrl.ChangeLane(Left)
		case core.ActionRight:
			g.ctrl.ChangeLane(Right)
		case core.ActionBack, core.ActionQuit:
			g.ctrl.Exit()
		}
	}
	g.ctrl.Advance(now)
	return core.StepResult{State: g.State()}
}

// Render draws the scene, HUD and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	surface := &gfx.TermSurface{
		Screen: dst,
		CellW:  g.cfg.Render.CellWidth,
		CellH:  g.cfg.Render.CellHeight,
	}
	g.ctrl.Draw(surface, g.now)

	g.drawHUD(dst)

	switch g.ctrl.State() {
	case NotStarted:
		g.drawOverlay(dst, core.ColorBrightCyan, []string{
			"NEON RUNNER",
			"",
			"ENTER  initialize run",
			"← →  switch lanes",
			"ESC  back",
		})
	case Terminated:
		g.drawOverlay(dst, core.ColorBrightRed, []string{
			"SYSTEM FAILURE",
			"",
			fmt.Sprintf("SCORE: %d", g.ctrl.Stats().Score),
			"",
			"R  reboot system",
			"ESC  back",
		})
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	stats := g.ctrl.Stats()
	w, h := dst.Width(), dst.Height()

	dst.DrawTextColor(1, 0, fmt.Sprintf("%06d", stats.Score), core.ColorBrightCyan)

	level := fmt.Sprintf(" LEVEL %d ", stats.Level)
	dst.DrawTextCentered(0, level, core.ColorBrightWhite)

	hearts := g.cfg.Rules.Lives
	for i := 0; i < hearts; i++ {
		c := core.ColorGray
		if i < stats.Lives {
			c = core.ColorBrightRed
		}
		dst.SetCell(w-1-2*(hearts-i), 0, HeartChar, c)
	}

	speed := fmt.Sprintf("SPEED %d%%", stats.SpeedPercent)
	dst.DrawTextColor(w-len(speed)-1, h-1, speed, core.ColorBrightMagenta)
}

func (g *Game) drawOverlay(dst *core.Screen, c core.Color, lines []string) {
	width := 0
	for _, l := range lines {
		width = core.Max(width, len([]rune(l)))
	}
	width += 6
	height := len(lines) + 2
	r := core.NewRect((dst.Width()-width)/2, (dst.Height()-height)/2, width, height)

	dst.DrawRect(r, ' ')
	dst.DrawBox(r, c)
	for i, l := range lines {
		lc := core.ColorWhite
		if i == 0 {
			lc = c
		}
		if strings.TrimSpace(l) == "" {
			continue
		}
		dst.DrawTextCentered(r.Y+1+i, l, lc)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.ctrl == nil {
		return core.GameState{}
	}
	stats := g.ctrl.Stats()
	return core.GameState{
		Score:    stats.Score,
		Lives:    stats.Lives,
		Level:    stats.Level,
		Distance: g.ctrl.World().Distance,
		Started:  g.ctrl.State() != NotStarted,
		GameOver: g.ctrl.State() == Terminated,
		Exited:   g.ctrl.Stopped(),
	}
}

// Register with the global registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
