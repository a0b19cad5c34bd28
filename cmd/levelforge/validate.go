package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/levelforge/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate <id|file.yaml>",
	Short: "Run the validation checks on a level",
	Long: `Run the ten validation checks on a generated level and print the
verdict with its diagnostics. Exits with status 1 if any check fails.

Examples:
  levelforge validate LVLID_1_0_0_0000000000000001
  levelforge validate level.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runValidate,
}

func runValidate(_ *cobra.Command, args []string) {
	lv, err := loadLevel(args[0])
	if err != nil {
		fail("%v", err)
	}

	r := validator.New(appConfig, logger).Validate(lv)

	fmt.Printf("Validation - %s\n", lv.ID)
	fmt.Println()
	for _, c := range r.Checks() {
		mark := "ok"
		if !c.Passed {
			mark = "FAIL"
		}
		fmt.Printf("  %-22s %s\n", c.Name, mark)
	}

	b := r.Breakdown
	fmt.Println()
	fmt.Printf("  Difficulty:  %.2f (target %.2f)\n", r.ComputedDifficulty, r.TargetDifficulty)
	fmt.Printf("    enemies %.2f  gaps %.2f  hazards %.2f  scarcity %.2f  materials %.2f\n",
		b.EnemyLoad, b.GapDifficulty, b.HazardDensity, b.RewardScarcity, b.MaterialDifficulty)
	fmt.Printf("  Checkpoints: %d\n", r.CheckpointCount)
	fmt.Printf("  Longest gap: %d\n", r.LongestGap)
	fmt.Printf("  Cascade:     %d\n", r.MaxCascadeDepth)
	if !r.MetadataConsistent {
		fmt.Println("  Metadata:    counts do not match the entity lists")
	}

	if len(r.Failures) > 0 {
		fmt.Println()
		for _, f := range r.Failures {
			fmt.Printf("  %v\n", f)
		}
	}

	if !r.Passed {
		os.Exit(1)
	}
}
