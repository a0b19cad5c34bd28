package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/levelforge/internal/generator"
	"github.com/vovakirdan/levelforge/internal/levelid"
)

var erasCmd = &cobra.Command{
	Use:   "eras",
	Short: "Show the difficulty profile for every era",
	Long: `List the ten eras with their interpolated difficulty parameters and the
level width at each difficulty tier.`,
	Args: cobra.NoArgs,
	Run:  runEras,
}

func runEras(_ *cobra.Command, _ []string) {
	fmt.Printf("  %-3s  %-12s  %-5s  %-5s  %-5s  %-5s  %-6s  %s\n",
		"Era", "Name", "Count", "HP", "Speed", "Shoot", "Boss", "Width (d0-d3)")
	fmt.Printf("  %-3s  %-12s  %-5s  %-5s  %-5s  %-5s  %-6s  %s\n",
		"---", "----", "-----", "--", "-----", "-----", "----", "-------------")

	for era := 0; era <= levelid.MaxEra; era++ {
		p := appConfig.Difficulty.Params(float64(era))
		widths := ""
		for d := 0; d <= levelid.MaxDifficulty; d++ {
			w, h := generator.Dimensions(appConfig.Layout, d, era)
			widths += fmt.Sprintf(" %dx%d", w, h)
		}
		fmt.Printf("  %-3d  %-12s  %5.2f  %5.2f  %5.2f  %5.2f  %6.0f %s\n",
			era, levelid.EraName(era), p.EnemyCountMultiplier, p.EnemyHPMultiplier,
			p.EnemySpeedMultiplier, p.ShootPercentage, p.BossHP, widths)
	}
}
