package merge

import "testing"

// fixedSource always picks the same offset and roll.
type fixedSource struct {
	pick int
	roll float64
}

func (s fixedSource) Intn(n int) int {
	return s.pick % n
}

func (s fixedSource) Float64() float64 {
	return s.roll
}

// layout builds a board from rows listed top row first, so the first
// row has the highest Y. Zero means empty.
func layout(t *testing.T, rows ...[]int) *Board {
	t.Helper()

	g, err := NewGrid(len(rows[0]), len(rows))
	if err != nil {
		t.Fatalf("NewGrid() failed: %v", err)
	}
	b := NewBoard(g)
	for i, row := range rows {
		y := len(rows) - 1 - i
		for x, v := range row {
			if v == 0 {
				continue
			}
			if _, err := b.Place(P(x, y), v); err != nil {
				t.Fatalf("Place(%d, %d) failed: %v", x, y, err)
			}
		}
	}
	return b
}

// topDown returns the board values with the top row first.
func topDown(b *Board) [][]int {
	rows := b.Values()
	out := make([][]int, len(rows))
	for i := range rows {
		out[i] = rows[len(rows)-1-i]
	}
	return out
}

func equalRows(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

// newTestMachine starts a game with no initial tiles and places the given
// ones by hand.
func newTestMachine(t *testing.T, w, h int, src Source, tiles map[Pos]int, opts ...Option) *Machine {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.InitialSpawnCount = 0

	m, err := NewGame(cfg, src, opts...)
	if err != nil {
		t.Fatalf("NewGame() failed: %v", err)
	}
	for p, v := range tiles {
		if _, err := m.Board().Place(p, v); err != nil {
			t.Fatalf("Place(%s) failed: %v", p, err)
		}
	}
	return m
}
