package merge

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewGameInitialSpawn(t *testing.T) {
	m, err := NewGame(DefaultConfig(), rand.New(rand.NewSource(12345)))
	if err != nil {
		t.Fatalf("NewGame() failed: %v", err)
	}

	if m.State() != StateWaitingInput {
		t.Errorf("State() = %s, want waiting_input", m.State())
	}
	if m.Board().Len() != 2 {
		t.Errorf("initial tiles = %d, want 2", m.Board().Len())
	}
	if len(m.LastSpawn()) != 2 {
		t.Errorf("LastSpawn() = %d events, want 2", len(m.LastSpawn()))
	}
	if m.Score() != 0 {
		t.Errorf("Score() = %d, want 0", m.Score())
	}
}

func TestNewGameInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -2 }},
		{"no turn spawn", func(c *Config) { c.TurnSpawnCount = 0 }},
		{"probability above one", func(c *Config) { c.HighValueProbability = 1.5 }},
		{"empty block table", func(c *Config) { c.BlockTypes = nil }},
		{"win value without block type", func(c *Config) { c.WinValue = 1 << 20 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			_, err := NewGame(cfg, rand.New(rand.NewSource(1)))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("NewGame() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestDeterministicSpawn(t *testing.T) {
	a, _ := NewGame(DefaultConfig(), rand.New(rand.NewSource(777)))
	b, _ := NewGame(DefaultConfig(), rand.New(rand.NewSource(777)))

	for _, dir := range []Direction{Left, Up, Right, Down, Left, Left, Up} {
		a.Play(dir)
		b.Play(dir)
	}

	if !equalRows(a.Board().Values(), b.Board().Values()) {
		t.Errorf("same seed should produce same board:\n%v\nvs\n%v", a.Board().Values(), b.Board().Values())
	}
}

func TestScenarioAdjacentPairMerges(t *testing.T) {
	m := newTestMachine(t, 4, 4, rand.New(rand.NewSource(1)), map[Pos]int{
		P(0, 0): 2,
		P(1, 0): 2,
	})

	mv, err := m.SubmitDirection(Left)
	if err != nil {
		t.Fatalf("SubmitDirection() failed: %v", err)
	}
	if !mv.Changed {
		t.Fatal("move should report changed")
	}
	if m.State() != StateMoving {
		t.Fatalf("State() = %s, want moving before commit", m.State())
	}

	turn, err := m.Commit()
	if err != nil {
		t.Fatalf("Commit() failed: %v", err)
	}

	if tile := m.Board().TileAt(P(0, 0)); tile == nil || tile.Value != 4 {
		t.Errorf("tile at (0,0) = %+v, want value 4", tile)
	}
	if turn.ScoreDelta != 1 || m.Score() != 1 {
		t.Errorf("score delta = %d, score = %d, want 1 and 1", turn.ScoreDelta, m.Score())
	}
	if len(turn.Merges) != 1 || turn.Merges[0].Value != 4 {
		t.Errorf("merges = %+v, want one merge into 4", turn.Merges)
	}
	// One merged tile plus one spawned.
	if m.Board().Len() != 2 {
		t.Errorf("tiles = %d, want 2", m.Board().Len())
	}
	if m.State() != StateWaitingInput {
		t.Errorf("State() = %s, want waiting_input", m.State())
	}
}

func TestScenarioSlideWithoutMerge(t *testing.T) {
	m := newTestMachine(t, 4, 4, rand.New(rand.NewSource(1)), map[Pos]int{
		P(0, 0): 2,
		P(3, 0): 4,
	})
	slider := m.Board().TileAt(P(3, 0))

	mv, err := m.SubmitDirection(Left)
	if err != nil {
		t.Fatalf("SubmitDirection() failed: %v", err)
	}
	if !mv.Changed {
		t.Error("move should report changed")
	}
	if len(mv.Merges) != 0 {
		t.Errorf("merges = %d, want 0", len(mv.Merges))
	}
	if slider.Cell != P(1, 0) {
		t.Errorf("sliding tile ended at %s, want (1,0)", slider.Cell)
	}
}

func TestScenarioSeparatedPairMerges(t *testing.T) {
	m := newTestMachine(t, 4, 4, rand.New(rand.NewSource(1)), map[Pos]int{
		P(0, 0): 2,
		P(3, 0): 2,
	})

	mv, _ := m.SubmitDirection(Left)
	if len(mv.Merges) != 1 || mv.Merges[0].Cell != P(0, 0) {
		t.Errorf("merges = %+v, want one merge at (0,0)", mv.Merges)
	}
}

func TestScenarioFullBoardNoChange(t *testing.T) {
	// Every row strictly decreases away from the left edge; no equal neighbours.
	tiles := map[Pos]int{}
	rows := [][]int{
		{16, 8, 4, 2},
		{2, 4, 8, 16},
		{16, 8, 4, 2},
		{2, 4, 8, 16},
	}
	for i, row := range rows {
		for x, v := range row {
			tiles[P(x, 3-i)] = v
		}
	}
	m := newTestMachine(t, 4, 4, rand.New(rand.NewSource(1)), tiles)

	for _, dir := range Directions {
		mv, err := m.SubmitDirection(dir)
		if err != nil {
			t.Fatalf("SubmitDirection(%s) failed: %v", dir, err)
		}
		if mv.Changed {
			t.Errorf("%s should not change a locked board", dir)
		}
		if m.State() != StateWaitingInput {
			t.Errorf("State() after %s = %s, want waiting_input", dir, m.State())
		}
		if m.Board().Len() != 16 {
			t.Errorf("tiles after %s = %d, want 16 (no spawn)", dir, m.Board().Len())
		}
	}
	if m.Moves() != 0 {
		t.Errorf("Moves() = %d, want 0", m.Moves())
	}
}

func TestLoseDetection(t *testing.T) {
	tests := []struct {
		name  string
		roll  float64 // spawner roll; below 0.3 spawns a 4
		state State
	}{
		{"no adjacent pair loses", 0.99, StateLose},
		{"adjacent pair keeps playing", 0.0, StateWaitingInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var over *GameOver
			m := newTestMachine(t, 2, 2, fixedSource{roll: tt.roll}, map[Pos]int{
				P(0, 1): 4, P(1, 1): 16,
				P(0, 0): 8,
			}, WithGameOver(func(g GameOver) { over = &g }))

			// The 8 slides right, the spawner fills (0,0).
			if _, _, err := m.Play(Right); err != nil {
				t.Fatalf("Play() failed: %v", err)
			}

			if m.State() != tt.state {
				t.Errorf("State() = %s, want %s", m.State(), tt.state)
			}
			if tt.state == StateLose {
				if over == nil {
					t.Fatal("game over hook not called")
				}
				if over.Won || over.Moves != 1 || over.MaxTile != 16 {
					t.Errorf("game over = %+v", *over)
				}
			} else if over != nil {
				t.Error("game over hook called while still playing")
			}
		})
	}
}

func TestLoseIgnoresInput(t *testing.T) {
	m := newTestMachine(t, 2, 2, fixedSource{roll: 0.99}, map[Pos]int{
		P(0, 1): 4, P(1, 1): 16,
		P(0, 0): 8,
	})
	m.Play(Right)
	if m.State() != StateLose {
		t.Fatalf("State() = %s, want lose", m.State())
	}

	mv, err := m.SubmitDirection(Left)
	if err != nil || mv.Changed {
		t.Errorf("SubmitDirection in lose = %+v, %v; want no-op", mv, err)
	}
	if m.State() != StateLose {
		t.Errorf("State() = %s, want lose", m.State())
	}
}

func TestWinAfterMerge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialSpawnCount = 0
	cfg.WinValue = 8

	var over GameOver
	m, err := NewGame(cfg, rand.New(rand.NewSource(1)), WithGameOver(func(g GameOver) { over = g }))
	if err != nil {
		t.Fatalf("NewGame() failed: %v", err)
	}
	m.Board().Place(P(0, 0), 4)
	m.Board().Place(P(1, 0), 4)

	_, turn, err := m.Play(Left)
	if err != nil {
		t.Fatalf("Play() failed: %v", err)
	}

	if turn.State != StateWin || m.State() != StateWin {
		t.Errorf("State() = %s, want win", m.State())
	}
	if !over.Won || over.MaxTile != 8 {
		t.Errorf("game over = %+v, want won with 8", over)
	}
	if len(turn.Spawned) != 0 {
		t.Errorf("spawned %d tiles after win, want 0", len(turn.Spawned))
	}
}

func TestCommitOutsideMoving(t *testing.T) {
	m := newTestMachine(t, 4, 4, rand.New(rand.NewSource(1)), map[Pos]int{P(0, 0): 2})

	_, err := m.Commit()
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Commit() in waiting_input error = %v, want ErrInvalidTransition", err)
	}
}

func TestInputIgnoredWhileMoving(t *testing.T) {
	m := newTestMachine(t, 4, 4, rand.New(rand.NewSource(1)), map[Pos]int{P(3, 0): 2})

	if _, err := m.SubmitDirection(Left); err != nil {
		t.Fatalf("SubmitDirection() failed: %v", err)
	}
	pending := m.Pending()

	mv, err := m.SubmitDirection(Right)
	if err != nil || mv.Changed {
		t.Errorf("second SubmitDirection = %+v, %v; want ignored", mv, err)
	}
	if m.State() != StateMoving {
		t.Errorf("State() = %s, want moving", m.State())
	}
	if m.Pending().Direction != pending.Direction {
		t.Error("pending move was replaced")
	}
}

func TestChangeStateRejectsUnknownState(t *testing.T) {
	m := newTestMachine(t, 4, 4, rand.New(rand.NewSource(1)), nil)

	err := m.changeState(State(42))
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("changeState(42) error = %v, want ErrInvalidState", err)
	}
	if m.State() != StateWaitingInput {
		t.Errorf("State() = %s, want unchanged waiting_input", m.State())
	}
}

func TestMergePastTableMaximum(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialSpawnCount = 0
	cfg.BlockTypes = DefaultBlockTypes()[:3] // 2, 4, 8

	m, err := NewGame(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewGame() failed: %v", err)
	}
	m.Board().Place(P(0, 0), 8)
	m.Board().Place(P(1, 0), 8)

	_, _, err = m.Play(Left)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Play() error = %v, want ErrInvalidConfig", err)
	}
}

func TestTurnSpawnCount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialSpawnCount = 3
	cfg.TurnSpawnCount = 2

	m, err := NewGame(cfg, rand.New(rand.NewSource(8)))
	if err != nil {
		t.Fatalf("NewGame() failed: %v", err)
	}
	if m.Board().Len() != 3 {
		t.Fatalf("initial tiles = %d, want 3", m.Board().Len())
	}

	for _, dir := range Directions {
		before := m.Board().Len()
		mv, turn, err := m.Play(dir)
		if err != nil {
			t.Fatalf("Play(%s) failed: %v", dir, err)
		}
		if !mv.Changed {
			continue
		}
		if len(turn.Spawned) != 2 {
			t.Errorf("%s spawned %d tiles, want 2", dir, len(turn.Spawned))
		}
		if m.Board().Len() != before-len(turn.Merges)+2 {
			t.Errorf("%s: tiles = %d, want %d", dir, m.Board().Len(), before-len(turn.Merges)+2)
		}
		return
	}
	t.Fatal("no direction changed the board")
}

func TestStateString(t *testing.T) {
	if StateWaitingInput.String() != "waiting_input" {
		t.Errorf("String() = %s", StateWaitingInput.String())
	}
	if !StateLose.Terminal() || !StateWin.Terminal() || StateMoving.Terminal() {
		t.Error("Terminal() wrong for enumerated states")
	}
}

func TestSetHighValueProbability(t *testing.T) {
	m := newTestMachine(t, 2, 1, fixedSource{roll: 0.5}, map[Pos]int{P(1, 0): 2})

	if err := m.SetHighValueProbability(1.2); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("SetHighValueProbability(1.2) error = %v, want ErrInvalidConfig", err)
	}
	if err := m.SetHighValueProbability(0.9); err != nil {
		t.Fatalf("SetHighValueProbability(0.9) failed: %v", err)
	}

	_, turn, err := m.Play(Left)
	if err != nil {
		t.Fatalf("Play() failed: %v", err)
	}
	if len(turn.Spawned) != 1 || turn.Spawned[0].Value != 4 {
		t.Errorf("spawned = %+v, want a single 4", turn.Spawned)
	}
}
