package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/neon-runner/internal/audio"
	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/registry"
	"github.com/vovakirdan/neon-runner/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.neonrun/host_key.
	HostKeyPath string

	// DBPath is the path to the leaderboard database.
	DBPath string

	// GameID selects the registered game each session plays.
	GameID string

	// TickRate is the frame rate of every session.
	TickRate int

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Logger receives server and session events. nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.neonrun/scores.db",
		GameID:      "runner",
		TickRate:    60,
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server hosting one runner per session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "neonrun-ssh",
		})
	}
	if !registry.Exists(cfg.GameID) {
		return nil, fmt.Errorf("unknown game %q", cfg.GameID)
	}

	// Sessions still play without a leaderboard
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".neonrun", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		wish.Fatalln(sshSession, "neonrun needs an interactive terminal (ssh -t)")
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
		Player:   sshSession.User(),
	}

	bell := audio.NewBell(sshSession)
	go func() {
		<-sshSession.Context().Done()
		bell.Close()
	}()

	logger := s.logger.With("user", sshSession.User())
	model := NewSessionModel(s.config.GameID, s.store, cfg, SessionOptions{
		Logger: logger,
		Sound:  audio.Multi{bell, audio.Log{Logger: logger}},
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until an interrupt.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "game", s.config.GameID)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionOptions configures the games a session launches.
type SessionOptions struct {
	Logger *log.Logger
	Sound  audio.Sink
}

// SessionModel manages a remote session: leaderboard hub -> run -> hub.
type SessionModel struct {
	gameID    string
	store     *storage.Store
	config    core.RuntimeConfig
	opts      SessionOptions
	hub       ScoreboardModel
	gameModel *Model
	quitting  bool
}

// NewSessionModel creates a session that opens on the leaderboard hub.
func NewSessionModel(gameID string, store *storage.Store, cfg core.RuntimeConfig, opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return SessionModel{
		gameID: gameID,
		store:  store,
		config: cfg,
		opts:   opts,
		hub:    newHub(store, gameID, cfg),
	}
}

func newHub(store *storage.Store, gameID string, cfg core.RuntimeConfig) ScoreboardModel {
	title := gameID
	for _, info := range registry.List() {
		if info.ID == gameID {
			title = info.Title
		}
	}
	return NewScoreboardModel(store, gameID, title, cfg.ScreenW, cfg.ScreenH, true)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.hub.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if m.gameModel != nil {
		return m.updateGame(msg)
	}
	return m.updateHub(msg)
}

// updateHub handles updates on the leaderboard.
func (m SessionModel) updateHub(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.hub.Update(msg)
	if hub, ok := next.(ScoreboardModel); ok {
		m.hub = hub
	}

	// Back and quit both end the session from the hub
	if m.hub.IsQuitting() || m.hub.IsGoingBack() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.hub.PlayRequested() {
		game, err := registry.Create(m.gameID)
		if err != nil {
			m.opts.Logger.Error("cannot create game", "game", m.gameID, "err", err)
			m.hub = newHub(m.store, m.gameID, m.config)
			return m, nil
		}

		m.config.Seed = time.Now().UnixNano()
		gameModel := NewModel(game, m.config, ModelOptions{
			Store:  m.store,
			Logger: m.opts.Logger,
			Sound:  m.opts.Sound,
			// Remote sessions have no local clipboard
			Clipboard: func(string) error { return errors.New("clipboard not available over ssh") },
		})
		m.gameModel = &gameModel
		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateGame handles updates while a run is on screen.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.Exited() {
		m.gameModel = nil
		m.hub = newHub(m.store, m.gameID, m.config)
		return m, m.hub.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	if m.gameModel != nil {
		return m.gameModel.View()
	}

	return m.hub.View()
}
