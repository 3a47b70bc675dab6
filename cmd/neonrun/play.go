package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/neon-runner/internal/audio"
	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/platform/desktop"
	"github.com/vovakirdan/neon-runner/internal/platform/tui"
	"github.com/vovakirdan/neon-runner/internal/runner"
	"github.com/vovakirdan/neon-runner/internal/storage"
)

var (
	flagUI         string
	flagConfig     string
	flagDifficulty string
	flagName       string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start Neon Runner in the terminal or in a desktop window.

Controls:
  Enter/Space      - Initialize run
  Left/A/H         - Switch one lane left
  Right/D/L        - Switch one lane right
  Click/tap        - Switch toward the pressed half of the screen
  R                - Reboot (after system failure)
  Esc/B            - Exit
  Q/Ctrl+C         - Quit
  Ctrl+S / Ctrl+Y  - Screenshot / copy frame (terminal only)

Difficulty options:
  easy   - Slower start, longer levels and fewer hazards
  normal - The tuned defaults
  hard   - Faster start, steeper ramp and more hazards
  fixed  - No level ramp, speed never changes

Examples:
  neonrun play
  neonrun play --ui desktop
  neonrun play --difficulty hard --name ada
  neonrun play --config ./my-runner.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagUI, "ui", "tui", "Interface: tui or desktop")
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name on the leaderboard (default: $USER)")
}

func playerName() string {
	if flagName != "" {
		return flagName
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return core.DefaultConfig().Player
}

func runPlay(cmd *cobra.Command, args []string) error {
	if flagUI != "tui" && flagUI != "desktop" {
		return fmt.Errorf("unknown --ui %q (want tui or desktop)", flagUI)
	}
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return fmt.Errorf("unknown --difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	runner.SetConfigPath(flagConfig)
	runner.SetDifficultyPreset(flagDifficulty)
	if _, err := runner.LoadConfig(); err != nil {
		return err
	}

	// The terminal UI owns stdout, so logs only go to --log-file there
	var fallback io.Writer = io.Discard
	if flagUI == "desktop" {
		fallback = os.Stderr
	}
	logger, closeLog, err := newLogger("neonrun", fallback)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Player:   playerName(),
	}

	// The game still works without a leaderboard
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	game := runner.New()
	logger.Info("starting", "ui", flagUI, "player", cfg.Player, "difficulty", flagDifficulty)

	if flagUI == "desktop" {
		return desktop.Run(game, cfg, desktop.Options{Store: store, Logger: logger})
	}

	bell := audio.NewBell(os.Stdout)
	defer bell.Close()
	return tui.Run(game, cfg, tui.ModelOptions{
		Store:  store,
		Logger: logger,
		Sound:  audio.Multi{bell, audio.Log{Logger: logger}},
	})
}
