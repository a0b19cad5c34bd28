// levelforge generates and validates procedural platformer levels.
//
// Usage:
//
//	levelforge generate [id]       - Generate a level and print its summary
//	levelforge validate <id|file>  - Run the validation checks on a level
//	levelforge preview <id|file>   - Draw an ASCII preview of a level
//	levelforge sweep               - Validate many consecutive seeds in parallel
//	levelforge history [run-id]    - Show recorded sweeps
//	levelforge eras                - Show the difficulty profile per era
//
// Global flags:
//
//	--config <path>     - Tuning config (default: search ~/.levelforge, ./configs, embedded)
//	--db <path>         - Sweep database (default: ~/.levelforge/sweeps.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/levelforge/internal/config"
	"github.com/vovakirdan/levelforge/internal/generator"
	"github.com/vovakirdan/levelforge/internal/level"
	"github.com/vovakirdan/levelforge/internal/levelid"
	"github.com/vovakirdan/levelforge/internal/levelio"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string

	// Set up by the root pre-run hook.
	appEnv    config.Env
	appConfig config.Config
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "levelforge",
	Short: "Procedural platformer level generator and validator",
	Long: `levelforge turns a compact level identifier into a complete platformer
level and checks that the level can be finished.

Available commands:
  generate  - Generate a level from an identifier or a fresh seed
  validate  - Run the ten validation checks on a level
  preview   - Draw an ASCII preview of a level
  sweep     - Validate many consecutive seeds and record the results
  history   - Show recorded sweeps
  eras      - Show the difficulty profile for every era

Examples:
  levelforge generate --difficulty 2 --era 4
  levelforge validate LVLID_1_2_4_000000000000D903
  levelforge preview LVLID_1_2_4_000000000000D903 --legend
  levelforge sweep --difficulty 1 --era 3 --count 500
  levelforge history`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to tuning config (overrides LEVELFORGE_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to sweep database (overrides LEVELFORGE_DB)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LEVELFORGE_LOG_LEVEL)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(erasCmd)
}

// setup reads the environment, applies flag overrides, and loads the
// tuning config and logger shared by every command.
func setup(_ *cobra.Command, _ []string) error {
	e, err := config.LoadEnv()
	if err != nil {
		return err
	}
	if flagConfig != "" {
		e.ConfigPath = flagConfig
	}
	if flagDBPath != "" {
		e.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		e.LogLevel = flagLogLevel
	}
	appEnv = e

	lvl, err := log.ParseLevel(strings.ToLower(e.LogLevel))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", e.LogLevel, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "levelforge",
		Level:           lvl,
	})

	cfg, err := config.Load(e.ConfigPath)
	if err != nil {
		return err
	}
	appConfig = cfg
	logger.Debug("config loaded", "path", e.ConfigPath, "db", e.DBPath)
	return nil
}

// loadLevel resolves an argument to a level: a path ending in .yaml or
// .yml is imported, anything else is parsed as an identifier and generated.
func loadLevel(arg string) (*level.Level, error) {
	lower := strings.ToLower(arg)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return levelio.ReadFile(arg)
	}
	id, ok := levelid.Parse(arg)
	if !ok {
		return nil, fmt.Errorf("not a level identifier or YAML file: %q", arg)
	}
	return generator.New(appConfig, logger).Generate(id), nil
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
