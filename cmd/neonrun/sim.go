package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/neon-runner/internal/runner"
)

var (
	flagSimRuns     int
	flagSimTicks    int
	flagSimSeedBase int64
	flagSimSeedStep int64
	flagSimFrameMs  float64
	flagSimFormat   string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the autopilot headless and print a report",
	Long: `Plays several seeded runs with the built-in autopilot, without a
screen, and reports how far each got. Useful for tuning a config file.

Examples:
  neonrun sim
  neonrun sim --runs 20 --ticks 36000 --difficulty hard
  neonrun sim --config ./my-runner.yaml --format yaml`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 5, "Number of runs")
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 18000, "Maximum frames per run")
	simCmd.Flags().Int64Var(&flagSimSeedBase, "seed-base", 42, "Seed of the first run")
	simCmd.Flags().Int64Var(&flagSimSeedStep, "seed-step", 1, "Seed increment between runs")
	simCmd.Flags().Float64Var(&flagSimFrameMs, "frame-ms", 1000.0/60, "Simulated milliseconds per frame")
	simCmd.Flags().StringVar(&flagSimFormat, "format", "text", "Output format: text or yaml")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// simSummary aggregates a batch of headless runs.
type simSummary struct {
	Runs         int     `yaml:"runs"`
	Terminated   int     `yaml:"terminated"`
	MeanScore    float64 `yaml:"mean_score"`
	MedianScore  float64 `yaml:"median_score"`
	BestScore    int     `yaml:"best_score"`
	BestSeed     int64   `yaml:"best_seed"`
	MaxLevel     int     `yaml:"max_level"`
	MeanDistance float64 `yaml:"mean_distance"`
	MeanTicks    float64 `yaml:"mean_ticks"`
	HitRate      float64 `yaml:"hit_rate"`    // Hits per spawned object
	PickupRate   float64 `yaml:"pickup_rate"` // Pickups per spawned object
}

type simRun struct {
	Seed        int64   `yaml:"seed"`
	Ticks       int     `yaml:"ticks"`
	Score       int     `yaml:"score"`
	Level       int     `yaml:"level"`
	Distance    float64 `yaml:"distance"`
	Lives       int     `yaml:"lives"`
	Hits        int     `yaml:"hits"`
	Pickups     int     `yaml:"pickups"`
	Spawns      int     `yaml:"spawns"`
	LaneChanges int     `yaml:"lane_changes"`
	Terminated  bool    `yaml:"terminated"`
}

type simReport struct {
	Runs    []simRun   `yaml:"runs"`
	Summary simSummary `yaml:"summary"`
}

func runSim(cmd *cobra.Command, _ []string) error {
	if flagSimRuns <= 0 {
		return fmt.Errorf("--runs must be > 0")
	}
	if flagSimTicks <= 0 {
		return fmt.Errorf("--ticks must be > 0")
	}
	if flagSimFrameMs <= 0 {
		return fmt.Errorf("--frame-ms must be > 0")
	}
	if flagSimFormat != "text" && flagSimFormat != "yaml" {
		return fmt.Errorf("unknown --format %q (want text or yaml)", flagSimFormat)
	}

	runner.SetConfigPath(flagConfig)
	runner.SetDifficultyPreset(flagDifficulty)
	cfg, err := runner.LoadConfig()
	if err != nil {
		return err
	}

	results := make([]runner.HeadlessResult, 0, flagSimRuns)
	for i := 0; i < flagSimRuns; i++ {
		seed := flagSimSeedBase + int64(i)*flagSimSeedStep
		results = append(results, runner.RunHeadless(cfg, seed, flagSimTicks, flagSimFrameMs))
	}

	report := buildReport(results)
	if flagSimFormat == "yaml" {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(report)
	}
	writeReport(os.Stdout, report)
	return nil
}

func buildReport(results []runner.HeadlessResult) simReport {
	runs := make([]simRun, len(results))
	for i, r := range results {
		runs[i] = simRun(r)
	}
	return simReport{Runs: runs, Summary: summarize(results)}
}

func summarize(results []runner.HeadlessResult) simSummary {
	s := simSummary{Runs: len(results)}
	if len(results) == 0 {
		return s
	}

	scores := make([]int, len(results))
	var hits, pickups, spawns int
	var scoreSum, distSum, tickSum float64
	for i, r := range results {
		scores[i] = r.Score
		scoreSum += float64(r.Score)
		distSum += r.Distance
		tickSum += float64(r.Ticks)
		hits += r.Hits
		pickups += r.Pickups
		spawns += r.Spawns
		if r.Terminated {
			s.Terminated++
		}
		if i == 0 || r.Score > s.BestScore {
			s.BestScore = r.Score
			s.BestSeed = r.Seed
		}
		s.MaxLevel = max(s.MaxLevel, r.Level)
	}

	n := float64(len(results))
	s.MeanScore = scoreSum / n
	s.MeanDistance = distSum / n
	s.MeanTicks = tickSum / n
	s.MedianScore = median(scores)
	if spawns > 0 {
		s.HitRate = float64(hits) / float64(spawns)
		s.PickupRate = float64(pickups) / float64(spawns)
	}
	return s
}

func median(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

func writeReport(w io.Writer, r simReport) {
	fmt.Fprintln(w, "=== Headless Run Report ===")
	fmt.Fprintf(w, "runs=%d ticks=%d seed_base=%d seed_step=%d frame_ms=%.2f\n\n",
		len(r.Runs), flagSimTicks, flagSimSeedBase, flagSimSeedStep, flagSimFrameMs)

	fmt.Fprintf(w, "  %-8s  %-7s  %-7s  %-5s  %-9s  %-5s  %-4s  %-7s  %s\n",
		"Seed", "Ticks", "Score", "Level", "Distance", "Lives", "Hits", "Pickups", "Result")
	for _, run := range r.Runs {
		result := "alive"
		if run.Terminated {
			result = "terminated"
		}
		fmt.Fprintf(w, "  %-8d  %-7d  %-7d  %-5d  %-9.0f  %-5d  %-4d  %-7d  %s\n",
			run.Seed, run.Ticks, run.Score, run.Level, run.Distance, run.Lives, run.Hits, run.Pickups, result)
	}

	s := r.Summary
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "terminated   %d/%d\n", s.Terminated, s.Runs)
	fmt.Fprintf(w, "score        mean=%.1f median=%.1f best=%d (seed %d)\n", s.MeanScore, s.MedianScore, s.BestScore, s.BestSeed)
	fmt.Fprintf(w, "max level    %d\n", s.MaxLevel)
	fmt.Fprintf(w, "distance     mean=%.0f\n", s.MeanDistance)
	fmt.Fprintf(w, "ticks        mean=%.0f\n", s.MeanTicks)
	fmt.Fprintf(w, "hit rate     %.3f\n", s.HitRate)
	fmt.Fprintf(w, "pickup rate  %.3f\n", s.PickupRate)
}
