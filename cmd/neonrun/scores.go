package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/neon-runner/internal/platform/tui"
	"github.com/vovakirdan/neon-runner/internal/registry"
	"github.com/vovakirdan/neon-runner/internal/runner"
	"github.com/vovakirdan/neon-runner/internal/storage"
)

var (
	flagInteractive bool
	flagLimit       int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show the leaderboard",
	Long: `Display the best runs. The game defaults to the runner.

Examples:
  neonrun scores
  neonrun scores -n 25
  neonrun scores -i        # browse the leaderboard in a table
  neonrun scores --clear   # wipe the leaderboard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the leaderboard interactively")
	scoresCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := runner.GameID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'neonrun list' to see available games", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared the %s leaderboard.\n", game.Title())
		return nil
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, gameID, game.Title(), width, height)
	}

	runs, err := store.TopRuns(gameID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n\n", game.Title())
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'neonrun play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-8s  %-5s  %-10s  %s\n", "Rank", "Player", "Score", "Level", "Distance", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %-5s  %-10s  %s\n", "----", "------", "-----", "-----", "--------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-16s  %-8d  %-5d  %-10.0f  %s\n",
			i+1, r.Player, r.Score, r.Level, r.Distance, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.Stats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Max level: %d\n",
			stats.RunsCount, stats.HighScore, stats.AvgScore, stats.BestLevel)
	}
	return nil
}
