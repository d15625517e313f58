package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge2048/internal/autoplay"
	"github.com/vovakirdan/merge2048/internal/config"
	"github.com/vovakirdan/merge2048/internal/games/t2048"
	"github.com/vovakirdan/merge2048/internal/merge"
	"github.com/vovakirdan/merge2048/internal/storage"
)

var (
	flagDelay    int
	flagMaxMoves int
	flagQuiet    bool
	flagNoSave   bool
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Let a greedy bot play endless mode",
	Long: `Play endless mode without a terminal UI. Each turn the bot picks the
direction with the most merges, then the largest merged value.

The finished run is saved to the scores database with source "autoplay".

Examples:
  merge2048 autoplay
  merge2048 autoplay --seed 42 --delay 0 --quiet
  merge2048 autoplay --difficulty hard --max-moves 500`,
	RunE: runAutoplay,
}

func init() {
	autoplayCmd.Flags().IntVar(&flagDelay, "delay", 100, "Delay between moves in milliseconds")
	autoplayCmd.Flags().IntVar(&flagMaxMoves, "max-moves", 0, "Stop after this many moves (0 = play to the end)")
	autoplayCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Only print the final board")
	autoplayCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run")
}

func runAutoplay(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadT2048(flagConfig)
	if err != nil {
		return err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		config.ApplyT2048Preset(&cfg, preset)
	}

	engineCfg, err := cfg.MergeConfig()
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m, err := merge.NewGame(engineCfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}

	difficulty := config.NewDifficultyManager(cfg.Difficulty)
	runCfg := autoplay.Config{
		Delay:    time.Duration(flagDelay) * time.Millisecond,
		MaxMoves: flagMaxMoves,
		Verbose:  !flagQuiet,
		Logger:   logger,
	}
	if difficulty.IsEnabled() {
		runCfg.AfterMove = func(m *merge.Machine) error {
			p := difficulty.HighValueProbability(engineCfg.HighValueProbability, m.Score(), m.Moves())
			return m.SetHighValueProbability(p)
		}
	}

	logger.Debug("autoplay starting", "seed", seed, "width", engineCfg.Width, "height", engineCfg.Height)
	res, err := autoplay.Run(os.Stdout, m, runCfg)
	if err != nil {
		return err
	}

	if flagNoSave || res.Moves == 0 {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("run not saved", "error", err)
		return nil
	}
	defer closeStore(store)

	run := &storage.Run{
		Mode:    string(t2048.ModeEndless),
		Score:   res.Score,
		MaxTile: res.MaxTile,
		Moves:   res.Moves,
		Won:     res.Won,
		Source:  storage.SourceAutoplay,
	}
	if _, err := store.SaveRun(run); err != nil {
		logger.Warn("run not saved", "error", err)
		return nil
	}
	fmt.Printf("Saved run %s\n", run.RunID)
	return nil
}
