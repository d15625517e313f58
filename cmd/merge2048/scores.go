package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge2048/internal/registry"
	"github.com/vovakirdan/merge2048/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show high scores for a mode",
	Long: `Display the best runs for the given mode.

Examples:
  merge2048 scores endless
  merge2048 scores campaign --limit 20
  merge2048 scores endless --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all runs of the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	mode := args[0]

	if !registry.Exists(mode) {
		return fmt.Errorf("unknown mode %q; run 'merge2048 list' to see available modes", mode)
	}
	game, err := registry.Create(mode)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer closeStore(store)

	if flagScoresClear {
		if err := store.ClearScores(mode); err != nil {
			return err
		}
		fmt.Printf("Cleared runs for %s.\n", game.Title())
		return nil
	}

	runs, err := store.TopRuns(mode, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'merge2048 play %s' to set the first high score!\n", mode)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-3s  %-12s  %s\n", "Rank", "Score", "Tile", "Moves", "Won", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-3s  %-12s  %s\n", "----", "-----", "----", "-----", "---", "------", "----")
	for i, r := range runs {
		won := "-"
		if r.Won {
			won = "yes"
		}
		player := r.Player
		if player == "" {
			player = r.Source
		}
		fmt.Printf("  %-4d  %-8d  %-6d  %-6d  %-3s  %-12s  %s\n",
			i+1, r.Score, r.MaxTile, r.Moves, won, player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(mode)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d  Games: %d  Wins: %d  Best tile: %d  Avg score: %.1f\n",
		stats.HighScore, stats.GamesCount, stats.Wins, stats.BestTile, stats.AvgScore)
	return nil
}
