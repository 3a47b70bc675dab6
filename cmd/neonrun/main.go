// neonrun is a three-lane neon endless runner for the terminal, the desktop
// and SSH.
//
// Usage:
//
//	neonrun play             - Play in the terminal (or --ui desktop)
//	neonrun list             - List available games
//	neonrun scores           - Show the leaderboard
//	neonrun serve            - Start SSH server for remote play
//	neonrun sim              - Run the autopilot headless and report
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.neonrun/scores.db)
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/neon-runner/internal/runner"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "neonrun",
	Short: "Neon Runner - dodge hazards and grab data cores across three lanes",
	Long: `Neon Runner is an endless runner on a glowing three-lane track.
Switch lanes to dodge red hazards, collect amber cores for points and
survive as the track speeds up with every level.

Available commands:
  play     - Play in the terminal or a desktop window
  list     - Show all available games
  scores   - View the leaderboard
  serve    - Start SSH server for remote play
  sim      - Run the autopilot headless and print a report

Examples:
  neonrun play
  neonrun play --ui desktop --difficulty hard
  neonrun serve --ssh :2222
  neonrun sim --runs 10 --ticks 20000`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.neonrun/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// newLogger builds the process logger from the global flags. fallback is used
// when no log file is given; the terminal UI passes io.Discard since stdout is
// the game. The returned closer releases the log file.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out := fallback
	closer := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}
