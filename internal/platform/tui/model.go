package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-runner/internal/audio"
	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/registry"
	"github.com/vovakirdan/neon-runner/internal/runner"
	"github.com/vovakirdan/neon-runner/internal/storage"
)

// flashDuration is how long a status message stays on the bottom row.
const flashDuration = 2 * time.Second

// ModelOptions configures a Model.
type ModelOptions struct {
	Store      *storage.Store // nil disables the leaderboard
	Logger     *log.Logger    // nil discards
	Sound      audio.Sink     // nil is silent
	QuitOnExit bool           // Quit the program when the player backs out
	Clipboard  func(string) error
}

// Model is the Bubble Tea model hosting a single game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	start      time.Time
	now        float64
	copyText   func(string) error
	quitOnExit bool
	quitting   bool
	exited     bool
	runSaved   bool // Whether the current game over has been recorded
	flash      string
	flashUntil float64
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts ModelOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	copyText := opts.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	if g, ok := game.(interface{ SetLogger(*log.Logger) }); ok {
		g.SetLogger(logger)
	}
	if g, ok := game.(interface{ SetNotifier(runner.Notifier) }); ok && opts.Sound != nil {
		g.SetNotifier(opts.Sound)
	}
	game.Reset(cfg)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		logger:     logger,
		config:     cfg,
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		start:      time.Now(),
		copyText:   copyText,
		quitOnExit: opts.QuitOnExit,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.exited {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		running := m.gameState.Started && !m.gameState.GameOver
		m.inputFrame.Set(m.keys.MapMouse(msg, m.screen.Width(), running))
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "ctrl+y":
		m.copyScreen()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		// Let the game wind down its run before the program exits.
		m.game.Step(m.inputFrame, m.now)
		m.inputFrame.Clear()
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize follows the terminal size. The run carries on: the scene is
// drawn for whatever size the screen has.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	if now := float64(t.Sub(m.start)) / float64(time.Millisecond); now > m.now {
		m.now = now
	}

	result := m.game.Step(m.inputFrame, m.now)
	m.inputFrame.Clear()
	m.gameState = result.State

	if !m.gameState.GameOver {
		m.runSaved = false
	} else if !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	if m.gameState.Exited {
		m.exited = true
		if m.quitOnExit {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRun records the finished run on the leaderboard.
func (m *Model) saveRun() {
	if m.store == nil {
		return
	}
	run := storage.Run{
		GameID:   m.game.ID(),
		Player:   m.config.Player,
		Score:    m.gameState.Score,
		Level:    m.gameState.Level,
		Distance: m.gameState.Distance,
	}
	if _, err := m.store.RecordRun(run, storage.DefaultKeep); err != nil {
		m.logger.Error("could not save run", "err", err)
		return
	}
	m.logger.Info("run saved", "player", run.Player, "score", run.Score, "level", run.Level)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.setFlash("screenshot failed")
		return
	}
	dir := filepath.Join(home, ".neonrun", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.setFlash("screenshot failed")
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not write screenshot", "path", path, "err", err)
		m.setFlash("screenshot failed")
		return
	}
	m.setFlash("saved " + filename)
}

// copyScreen puts the plain-text frame on the system clipboard.
func (m *Model) copyScreen() {
	m.game.Render(m.screen)
	if err := m.copyText(m.screen.String()); err != nil {
		m.logger.Warn("could not copy screen", "err", err)
		m.setFlash("clipboard unavailable")
		return
	}
	m.setFlash("copied to clipboard")
}

func (m *Model) setFlash(s string) {
	m.flash = s
	m.flashUntil = m.now + float64(flashDuration/time.Millisecond)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.exited {
		return ""
	}

	m.game.Render(m.screen)
	if m.flash != "" && m.now < m.flashUntil {
		m.screen.DrawTextColor(1, m.screen.Height()-1, m.flash, core.ColorGray)
	}
	return RenderScreen(m.screen)
}

// State returns the last game state seen by the model.
func (m Model) State() core.GameState {
	return m.gameState
}

// Exited reports whether the player backed out of the game.
func (m Model) Exited() bool {
	return m.exited
}

// IsQuitting reports whether the player asked to close the program.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program with the given model and blocks until
// the player quits or backs out.
func Run(game registry.Game, cfg core.RuntimeConfig, opts ModelOptions) error {
	opts.QuitOnExit = true
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
