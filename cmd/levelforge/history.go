package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/levelforge/internal/storage"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recorded sweeps",
	Long: `Without arguments, list recent sweeps and the pass rate per difficulty
and era. With a run ID, show that run and its failing levels.

Examples:
  levelforge history
  levelforge history --limit 50
  levelforge history 0b7f7c1e-4a55-4b8e-9d59-1f0c2b0b4a11`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of runs to list")
}

func runHistory(_ *cobra.Command, args []string) {
	store, err := storage.Open(appEnv.DBPath)
	if err != nil {
		fail("opening sweep database: %v", err)
	}
	defer store.Close()

	if len(args) == 1 {
		showRun(store, args[0])
		return
	}

	runs, err := store.RecentRuns(flagHistoryLimit)
	if err != nil {
		store.Close()
		fail("%v", err)
	}
	if len(runs) == 0 {
		fmt.Println("No sweeps recorded yet.")
		fmt.Println()
		fmt.Println("Run 'levelforge sweep' to record the first one!")
		return
	}

	fmt.Println("Recent sweeps")
	fmt.Println()
	fmt.Printf("  %-36s  %-4s  %-3s  %-6s  %-7s  %s\n", "Run", "Diff", "Era", "Levels", "Passed", "Date")
	fmt.Printf("  %-36s  %-4s  %-3s  %-6s  %-7s  %s\n", "---", "----", "---", "------", "------", "----")
	for _, r := range runs {
		fmt.Printf("  %-36s  %-4d  %-3d  %-6d  %5.1f%%  %s\n",
			r.RunID, r.Difficulty, r.Era, r.Count, r.PassRate()*100, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.AllTierStats()
	if err != nil {
		store.Close()
		fail("%v", err)
	}
	fmt.Println()
	fmt.Println("Pass rate by tier")
	fmt.Println()
	for _, t := range stats {
		fmt.Printf("  difficulty %d era %d: %5.1f%% of %d levels in %d runs\n",
			t.Difficulty, t.Era, t.PassRate()*100, t.Levels, t.Runs)
	}
}

func showRun(store *storage.Store, runID string) {
	run, err := store.RunByID(runID)
	if err != nil {
		store.Close()
		fail("%v", err)
	}
	if run == nil {
		store.Close()
		fail("unknown run %q", runID)
	}

	fmt.Printf("Sweep %s\n", run.RunID)
	fmt.Printf("  Tier:     difficulty %d, era %d\n", run.Difficulty, run.Era)
	fmt.Printf("  Levels:   %d from seed %016X, %d workers\n", run.Count, run.FirstSeed, run.Workers)
	fmt.Printf("  Passed:   %d (%.1f%%)\n", run.Passed, run.PassRate()*100)
	fmt.Printf("  Elapsed:  %v\n", run.Elapsed)
	fmt.Printf("  Recorded: %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))

	failed, err := store.FailedResults(runID)
	if err != nil {
		store.Close()
		fail("%v", err)
	}
	if len(failed) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("  Failing levels:")
	for _, r := range failed {
		fmt.Printf("  %s  score %.2f/%.2f  %v\n", r.LevelID, r.ComputedDifficulty, r.TargetDifficulty, r.FailedChecks)
	}
}
