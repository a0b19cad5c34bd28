package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/levelforge/internal/level"
	"github.com/vovakirdan/levelforge/internal/levelid"
	"github.com/vovakirdan/levelforge/internal/levelio"
	"github.com/vovakirdan/levelforge/internal/pipeline"
	"github.com/vovakirdan/levelforge/internal/render"
	"github.com/vovakirdan/levelforge/internal/validator"
)

var (
	flagGenDifficulty int
	flagGenEra        int
	flagGenSeed       string
	flagGenValid      bool
	flagGenAttempts   int
	flagGenOut        string
	flagGenPreview    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [id]",
	Short: "Generate a level",
	Long: `Generate a level from an identifier, or mint a fresh identifier for the
given difficulty and era.

With --valid, failing levels are regenerated with the next seed until one
passes every check or --attempts runs out.

Examples:
  levelforge generate LVLID_1_3_5_0000000000000001
  levelforge generate --difficulty 1 --era 6
  levelforge generate --difficulty 2 --era 0 --seed 00000000DEADBEEF
  levelforge generate --valid --attempts 20 --out level.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&flagGenDifficulty, "difficulty", "d", 0, "Difficulty tier (0-3)")
	generateCmd.Flags().IntVarP(&flagGenEra, "era", "e", 0, "Era (0-9)")
	generateCmd.Flags().StringVar(&flagGenSeed, "seed", "", "Seed in hex (random if empty)")
	generateCmd.Flags().BoolVar(&flagGenValid, "valid", false, "Retry with new seeds until the level passes validation")
	generateCmd.Flags().IntVar(&flagGenAttempts, "attempts", 10, "Maximum attempts with --valid")
	generateCmd.Flags().StringVarP(&flagGenOut, "out", "o", "", "Write the level to a YAML file")
	generateCmd.Flags().BoolVar(&flagGenPreview, "preview", false, "Print an ASCII preview")
}

func runGenerate(_ *cobra.Command, args []string) {
	id, err := generateID(args)
	if err != nil {
		fail("%v", err)
	}

	p := pipeline.New(appConfig, logger)
	var out pipeline.Outcome
	if flagGenValid {
		out, err = p.GenerateValid(id, flagGenAttempts)
		if err != nil {
			logger.Warn("keeping last attempt", "err", err)
		}
	} else {
		out = p.Run(id)
	}

	printSummary(out.Level, out.Result)
	if out.Attempts > 1 {
		fmt.Printf("  Attempts:     %d\n", out.Attempts)
	}

	if flagGenPreview {
		fmt.Println()
		fmt.Println(render.Plain(out.Level, render.Options{}))
	}

	if flagGenOut != "" {
		if err := levelio.WriteFile(flagGenOut, out.Level); err != nil {
			fail("%v", err)
		}
		fmt.Printf("\nWrote %s\n", flagGenOut)
	}
}

// generateID picks the identifier: the argument if given, otherwise the
// flags with an explicit or freshly minted seed.
func generateID(args []string) (levelid.ID, error) {
	if len(args) == 1 {
		id, ok := levelid.Parse(args[0])
		if !ok {
			return levelid.ID{}, fmt.Errorf("invalid level identifier %q", args[0])
		}
		return id, nil
	}
	if flagGenSeed != "" {
		seed, err := strconv.ParseUint(flagGenSeed, 16, 64)
		if err != nil {
			return levelid.ID{}, fmt.Errorf("invalid seed %q: %w", flagGenSeed, err)
		}
		return levelid.New(levelid.CurrentVersion, flagGenDifficulty, flagGenEra, seed)
	}
	return levelid.NewMinter(uint64(time.Now().UnixNano())).Next(flagGenDifficulty, flagGenEra)
}

func printSummary(lv *level.Level, r validator.Result) {
	l := &lv.Layout
	m := lv.Metadata

	fmt.Printf("Level %s\n", lv.ID)
	fmt.Printf("  Era:          %d (%s)\n", lv.ID.Era(), lv.ID.EraName())
	fmt.Printf("  Difficulty:   %d (%s)\n", lv.ID.Difficulty(), lv.ID.DifficultyName())
	fmt.Printf("  Size:         %dx%d, %d zones\n", l.Width, l.Height, len(l.Zones))
	fmt.Printf("  Hash:         %016X\n", lv.Hash)
	fmt.Printf("  Enemies:      %d\n", m.TotalEnemies)
	fmt.Printf("  Weapons:      %d\n", m.TotalWeaponDrops)
	fmt.Printf("  Rewards:      %d\n", m.TotalRewards)
	fmt.Printf("  Checkpoints:  %d\n", m.TotalCheckpoints)
	fmt.Printf("  Destructible: %d tiles in %d groups\n", m.Destructibles, m.StructuralGroups)
	fmt.Printf("  Score:        %.2f (target %.2f)\n", r.ComputedDifficulty, r.TargetDifficulty)

	verdict := "PASS"
	if !r.Passed {
		verdict = fmt.Sprintf("FAIL %v", r.FailedChecks())
	}
	fmt.Printf("  Verdict:      %s\n", verdict)
}
