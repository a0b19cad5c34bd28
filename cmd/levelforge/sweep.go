package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/levelforge/internal/levelid"
	"github.com/vovakirdan/levelforge/internal/pipeline"
	"github.com/vovakirdan/levelforge/internal/storage"
	"github.com/vovakirdan/levelforge/internal/validator"
)

var (
	flagSweepDifficulty int
	flagSweepEra        int
	flagSweepFirstSeed  string
	flagSweepCount      int
	flagSweepWorkers    int
	flagSweepNoSave     bool
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Validate many consecutive seeds",
	Long: `Generate and validate --count consecutive seeds at one difficulty and
era, in parallel, and report the pass rate and failures per check. The run
is recorded in the sweep database unless --no-save is given.

Examples:
  levelforge sweep --difficulty 1 --era 3 --count 500
  levelforge sweep -d 3 -e 9 --first-seed 00000000000F0000 --workers 8
  levelforge sweep --count 50 --no-save`,
	Args: cobra.NoArgs,
	Run:  runSweep,
}

func init() {
	sweepCmd.Flags().IntVarP(&flagSweepDifficulty, "difficulty", "d", 0, "Difficulty tier (0-3)")
	sweepCmd.Flags().IntVarP(&flagSweepEra, "era", "e", 0, "Era (0-9)")
	sweepCmd.Flags().StringVar(&flagSweepFirstSeed, "first-seed", "1", "First seed in hex")
	sweepCmd.Flags().IntVarP(&flagSweepCount, "count", "n", 100, "Number of seeds")
	sweepCmd.Flags().IntVarP(&flagSweepWorkers, "workers", "w", 0, "Parallel workers (default: LEVELFORGE_WORKERS)")
	sweepCmd.Flags().BoolVar(&flagSweepNoSave, "no-save", false, "Do not record the run")
}

func runSweep(_ *cobra.Command, _ []string) {
	first, err := strconv.ParseUint(flagSweepFirstSeed, 16, 64)
	if err != nil {
		fail("invalid seed %q: %v", flagSweepFirstSeed, err)
	}
	workers := flagSweepWorkers
	if workers <= 0 {
		workers = appEnv.Workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rep, err := pipeline.New(appConfig, logger).Sweep(ctx, pipeline.SweepRequest{
		Version:    levelid.CurrentVersion,
		Difficulty: flagSweepDifficulty,
		Era:        flagSweepEra,
		FirstSeed:  first,
		Count:      flagSweepCount,
		Workers:    workers,
	})
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Sweep %s\n", rep.RunID)
	fmt.Printf("  Tier:     difficulty %d (%s), era %d (%s)\n",
		flagSweepDifficulty, levelid.DifficultyName(flagSweepDifficulty),
		flagSweepEra, levelid.EraName(flagSweepEra))
	fmt.Printf("  Levels:   %d from seed %016X\n", len(rep.Levels), first)
	fmt.Printf("  Passed:   %d (%.1f%%)\n", rep.Passed, rep.PassRate()*100)
	fmt.Printf("  Elapsed:  %v\n", rep.Elapsed.Round(1e6))

	if len(rep.FailuresByCheck) > 0 {
		fmt.Println()
		fmt.Printf("  %-22s %s\n", "Check", "Failures")
		fmt.Printf("  %-22s %s\n", "-----", "--------")
		for _, name := range validator.CheckNames {
			if n := rep.FailuresByCheck[name]; n > 0 {
				fmt.Printf("  %-22s %d\n", name, n)
			}
		}
		printWorst(rep)
	}

	if flagSweepNoSave {
		return
	}
	store, err := storage.Open(appEnv.DBPath)
	if err != nil {
		fail("opening sweep database: %v", err)
	}
	defer store.Close()
	if err := store.SaveReport(rep); err != nil {
		store.Close()
		fail("saving sweep: %v", err)
	}
	logger.Info("sweep recorded", "run", rep.RunID, "db", appEnv.DBPath)
}

// printWorst lists up to five failing levels with the most failed checks.
func printWorst(rep pipeline.Report) {
	var failed []pipeline.LevelReport
	for _, lr := range rep.Levels {
		if !lr.Result.Passed {
			failed = append(failed, lr)
		}
	}
	sort.SliceStable(failed, func(i, j int) bool {
		return len(failed[i].Result.Failures) > len(failed[j].Result.Failures)
	})

	fmt.Println()
	fmt.Println("  Failing levels:")
	for i, lr := range failed {
		if i == 5 {
			fmt.Printf("  ... +%d more\n", len(failed)-5)
			break
		}
		fmt.Printf("  %s %v\n", lr.ID, lr.Result.FailedChecks())
	}
}
