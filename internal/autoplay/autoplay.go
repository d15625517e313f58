// Package autoplay drives a merge engine without a terminal, one greedy
// move at a time.
package autoplay

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/merge2048/internal/merge"
)

// Config controls a headless run.
type Config struct {
	Delay    time.Duration // pause between moves
	MaxMoves int           // 0 means play until the game ends
	Verbose  bool          // print the board before every move
	Logger   *log.Logger   // optional

	// AfterMove runs after every committed move that did not end the game.
	AfterMove func(m *merge.Machine) error
}

// DefaultConfig returns a fast, quiet run.
func DefaultConfig() Config {
	return Config{}
}

// Result summarizes a finished run.
type Result struct {
	Score   int
	Moves   int
	MaxTile int
	Won     bool
	State   merge.State
}

// candidate is the outcome of one direction on a copy of the board.
type candidate struct {
	dir    merge.Direction
	merges int
	gained int // sum of merged values
}

// BestMove picks the direction with the most merges, then the largest
// merged value. Ties keep the order of merge.Directions. It returns false
// when no direction changes the board.
func BestMove(board *merge.Board) (merge.Direction, bool) {
	var best *candidate
	for _, dir := range merge.Directions {
		trial := board.Clone()
		mv := merge.ComputeMove(trial.Grid(), trial.Tiles(), dir)
		if !mv.Changed {
			continue
		}
		c := candidate{dir: dir, merges: len(mv.Merges)}
		for _, e := range mv.Merges {
			c.gained += e.Value
		}
		if best == nil || c.merges > best.merges || (c.merges == best.merges && c.gained > best.gained) {
			best = &c
		}
	}
	if best == nil {
		return 0, false
	}
	return best.dir, true
}

// Run plays m until it ends, no move changes the board, or MaxMoves is
// reached. The final board and totals are always written to w.
func Run(w io.Writer, m *merge.Machine, cfg Config) (Result, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if cfg.Verbose {
		fmt.Fprintln(w, "=== 2048 AutoPlay ===")
		fmt.Fprintf(w, "Board: %dx%d\n\n", m.Grid().Width(), m.Grid().Height())
	}

	for !m.State().Terminal() {
		if cfg.MaxMoves > 0 && m.Moves() >= cfg.MaxMoves {
			logger.Debug("move limit reached", "moves", m.Moves())
			break
		}

		if cfg.Verbose {
			fmt.Fprint(w, FormatBoard(m.Board()))
			fmt.Fprintf(w, "Score: %d, Moves: %d\n", m.Score(), m.Moves())
		}

		dir, ok := BestMove(m.Board())
		if !ok {
			logger.Debug("no move changes the board")
			break
		}
		if cfg.Verbose {
			fmt.Fprintf(w, "Move: %s\n\n", dir)
		}

		if _, _, err := m.Play(dir); err != nil {
			return summarize(m), fmt.Errorf("autoplay: move %d: %w", m.Moves()+1, err)
		}
		if cfg.AfterMove != nil && !m.State().Terminal() {
			if err := cfg.AfterMove(m); err != nil {
				return summarize(m), fmt.Errorf("autoplay: after move %d: %w", m.Moves(), err)
			}
		}

		if cfg.Delay > 0 {
			time.Sleep(cfg.Delay)
		}
	}

	res := summarize(m)
	fmt.Fprint(w, FormatBoard(m.Board()))
	if res.Won {
		fmt.Fprintln(w, "=== You Win ===")
	} else {
		fmt.Fprintln(w, "=== Game Over ===")
	}
	fmt.Fprintf(w, "Final Score: %d\n", res.Score)
	fmt.Fprintf(w, "Total Moves: %d\n", res.Moves)
	fmt.Fprintf(w, "Max Tile: %d\n", res.MaxTile)

	logger.Info("autoplay finished", "score", res.Score, "moves", res.Moves, "max_tile", res.MaxTile, "state", res.State)
	return res, nil
}

func summarize(m *merge.Machine) Result {
	return Result{
		Score:   m.Score(),
		Moves:   m.Moves(),
		MaxTile: m.Board().MaxValue(),
		Won:     m.State() == merge.StateWin,
		State:   m.State(),
	}
}

// FormatBoard prints the board top row first, one cell per column.
func FormatBoard(b *merge.Board) string {
	rows := b.Values()
	width := len(strconv.Itoa(max(b.MaxValue(), 2)))

	var sb strings.Builder
	for y := len(rows) - 1; y >= 0; y-- {
		for x, v := range rows[y] {
			if x > 0 {
				sb.WriteByte(' ')
			}
			cell := "."
			if v > 0 {
				cell = strconv.Itoa(v)
			}
			sb.WriteString(strings.Repeat(" ", width-len(cell)))
			sb.WriteString(cell)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
