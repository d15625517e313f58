package t2048

import "github.com/vovakirdan/merge2048/internal/merge"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateAnimating    GameStateType = "animating"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism tests.
type Snapshot struct {
	Tick    uint64
	Mode    string
	Level   int // 1-indexed for display; 0 in endless mode
	Target  int // 0 when there is no win value
	Score   int
	Moves   int
	Board   [][]int // Top row first; 0 is empty
	MaxTile int
	State   GameStateType
	Engine  string // merge.State name
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	case g.animating:
		state = StateAnimating
	}

	sum := g.Summary()
	snap := Snapshot{
		Tick:    g.tick,
		Mode:    string(g.mode),
		Score:   sum.Score,
		Moves:   sum.Moves,
		MaxTile: sum.MaxTile,
		State:   state,
	}
	if g.mode == ModeCampaign {
		snap.Level = g.levelIndex + 1
	}
	if g.machine != nil {
		snap.Target = g.machine.Config().WinValue
		snap.Board = topDownValues(g.machine.Board())
		snap.Engine = g.machine.State().String()
	}
	return snap
}

// topDownValues returns the board values with the top row first.
func topDownValues(b *merge.Board) [][]int {
	rows := b.Values()
	out := make([][]int, len(rows))
	for i := range rows {
		out[i] = rows[len(rows)-1-i]
	}
	return out
}
