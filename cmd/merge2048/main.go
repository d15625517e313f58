// merge2048 is a sliding-tile merge game for the terminal.
//
// Usage:
//
//	merge2048 list              - List game modes
//	merge2048 play <mode>       - Play campaign or endless
//	merge2048 menu              - Pick a mode interactively
//	merge2048 serve             - Start SSH server for remote play
//	merge2048 scores <mode>     - Show high scores for a mode
//	merge2048 autoplay          - Let a greedy bot play headless
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.merge2048/scores.db)
//	--log-level <level>   - debug, info, warn or error (default: warn)
//	--config <path>       - Custom board config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//
// A .env file in the working directory may set MERGE2048_DB,
// MERGE2048_LOG_LEVEL and MERGE2048_SSH_ADDR. Flags given on the command
// line win.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge2048/internal/config"
	"github.com/vovakirdan/merge2048/internal/games/t2048"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagConfig     string
	flagDifficulty string
)

// envFlags maps flags to the environment variables that override their
// defaults.
var envFlags = map[string]string{
	"db":        "MERGE2048_DB",
	"log-level": "MERGE2048_LOG_LEVEL",
	"ssh":       "MERGE2048_SSH_ADDR",
}

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "merge2048",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "merge2048",
	Short: "2048 - slide and merge tiles in your terminal",
	Long: `merge2048 is a terminal take on the sliding-tile merge game.

Available commands:
  list      - Show the game modes
  play      - Play a mode directly
  menu      - Interactive mode picker
  serve     - Start SSH server for remote play
  scores    - View high scores
  autoplay  - Watch a greedy bot play

Examples:
  merge2048 list
  merge2048 play endless --difficulty hard
  merge2048 play campaign --level 3
  merge2048 menu
  merge2048 serve --ssh :2222
  merge2048 scores endless
  merge2048 autoplay --seed 42`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.merge2048/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom board config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(autoplayCmd)
}

// setup runs before every command: .env overrides, logging and the
// board config shared by all modes.
func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot load .env: %w", err)
	}
	if err := applyEnv(cmd); err != nil {
		return err
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)
	log.SetDefault(logger)

	if flagFPS <= 0 {
		return fmt.Errorf("invalid --fps %d: must be positive", flagFPS)
	}
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	if flagConfig != "" {
		cfg, err := config.LoadT2048(flagConfig)
		if err != nil {
			return fmt.Errorf("invalid --config: %w", err)
		}
		if _, err := cfg.MergeConfig(); err != nil {
			return fmt.Errorf("invalid --config %s: %w", flagConfig, err)
		}
	}

	t2048.SetConfigPath(flagConfig)
	t2048.SetDifficultyPreset(flagDifficulty)
	return nil
}

// applyEnv sets flags left at their defaults from the environment.
func applyEnv(cmd *cobra.Command) error {
	for name, key := range envFlags {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			continue
		}
		if err := f.Value.Set(v); err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
	}
	return nil
}
