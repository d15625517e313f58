package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/merge2048/internal/core"
	"github.com/vovakirdan/merge2048/internal/games/t2048"
	"github.com/vovakirdan/merge2048/internal/platform/tui"
	"github.com/vovakirdan/merge2048/internal/registry"
	"github.com/vovakirdan/merge2048/internal/storage"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a game mode",
	Long: `Start playing the given mode: campaign or endless.

Controls:
  Arrows/WASD/HJKL - Slide tiles
  P/Space          - Pause
  Esc/B            - Back (while paused or after game over)
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options (endless mode):
  easy   - Few 4s, slow progression
  normal - Spawn odds from the config, progression on
  hard   - Many 4s, fast progression
  fixed  - Spawn odds from the config, no progression

Examples:
  merge2048 play endless
  merge2048 play endless --difficulty hard
  merge2048 play campaign --level 5
  merge2048 play endless --config ./my-board.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign level to start at (1-based)")
}

func runPlay(_ *cobra.Command, args []string) error {
	mode := args[0]

	if !registry.Exists(mode) {
		return fmt.Errorf("unknown mode %q; run 'merge2048 list' to see available modes", mode)
	}
	if flagLevel < 0 || flagLevel > t2048.LevelCount() {
		return fmt.Errorf("invalid --level %d: campaign has levels 1-%d", flagLevel, t2048.LevelCount())
	}
	if flagLevel > 0 && mode != string(t2048.ModeCampaign) {
		return fmt.Errorf("--level only applies to the campaign")
	}

	game, err := registry.Create(mode)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}
	if g, ok := game.(*t2048.Game); ok && flagLevel > 0 {
		g.StartAt(flagLevel)
	}

	store := openStore()
	defer closeStore(store)

	if _, err := tui.Run(game, store, runtimeConfig()); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// runtimeConfig builds the host config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the scores database. The game still runs without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("could not close scores database", "error", err)
	}
}
