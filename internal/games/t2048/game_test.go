package t2048

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/vovakirdan/merge2048/internal/core"
	"github.com/vovakirdan/merge2048/internal/merge"
	"github.com/vovakirdan/merge2048/internal/registry"
)

// emptyStart is a config with no initial tiles so tests can lay out the
// board by hand.
const emptyStart = `
spawn:
  initial_count: 0
  turn_count: 1
  high_value_probability: 0.3
`

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

// newTestGame writes yaml to a temp config file and resets a game in mode
// with it.
func newTestGame(t *testing.T, mode Mode, yaml string) *Game {
	t.Helper()
	return newTestGameAt(t, mode, yaml, 0)
}

// useConfig points the package at a temporary config file for one test.
func useConfig(t *testing.T, yaml string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "t2048.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })
}

func newTestGameAt(t *testing.T, mode Mode, yaml string, level int) *Game {
	t.Helper()
	useConfig(t, yaml)

	g := &Game{mode: mode}
	g.StartAt(level)
	g.Reset(testRuntime(42))
	if g.Err() != nil {
		t.Fatalf("Reset() failed: %v", g.Err())
	}
	return g
}

func place(t *testing.T, g *Game, tiles map[merge.Pos]int) {
	t.Helper()
	for p, v := range tiles {
		if _, err := g.Machine().Board().Place(p, v); err != nil {
			t.Fatalf("Place(%s) failed: %v", p, err)
		}
	}
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// settle steps until no animation is running.
func settle(t *testing.T, g *Game) {
	t.Helper()
	for range 100 {
		if !g.Animating() {
			return
		}
		g.Step(frame())
	}
	t.Fatal("animation did not finish")
}

func press(t *testing.T, g *Game, a core.Action) {
	t.Helper()
	g.Step(frame(a))
	settle(t, g)
}

func TestRegisteredModes(t *testing.T) {
	for _, id := range []string{"campaign", "endless"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, want %q", g.ID(), id)
		}
	}
}

func TestResetSpawnsInitialTiles(t *testing.T) {
	g := newTestGame(t, ModeCampaign, "")

	if got := g.Machine().Board().Len(); got != 2 {
		t.Errorf("initial tiles = %d, want 2", got)
	}
	if !g.Animating() {
		t.Error("initial spawn should pop in")
	}
	settle(t, g)

	snap := g.Snapshot()
	if snap.Mode != "campaign" || snap.Level != 1 || snap.Target != 64 {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.State != StatePlaying || snap.Engine != "waiting_input" {
		t.Errorf("state = %s / %s, want playing / waiting_input", snap.State, snap.Engine)
	}
}

func TestDeterministicSpawn(t *testing.T) {
	g1 := New()
	g1.Reset(testRuntime(12345))
	g2 := New()
	g2.Reset(testRuntime(12345))
	settle(t, g1)
	settle(t, g2)

	for _, a := range []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown} {
		press(t, g1, a)
		press(t, g2, a)
	}

	b1, b2 := g1.Snapshot().Board, g2.Snapshot().Board
	for y := range b1 {
		for x := range b1[y] {
			if b1[y][x] != b2[y][x] {
				t.Fatalf("same seed should produce same board:\n%v\nvs\n%v", b1, b2)
			}
		}
	}
}

func TestMoveAnimatesThenCommits(t *testing.T) {
	g := newTestGame(t, ModeEndless, emptyStart)
	place(t, g, map[merge.Pos]int{merge.P(0, 0): 2, merge.P(1, 0): 2})

	g.Step(frame(core.ActionLeft))
	if !g.Animating() {
		t.Fatal("changed move should start a slide")
	}
	if g.Machine().State() != merge.StateMoving {
		t.Errorf("engine state = %s, want moving during slide", g.Machine().State())
	}
	if g.State().Score != 0 {
		t.Error("score should not change before commit")
	}

	// Input during the slide is refused.
	g.Step(frame(core.ActionRight))
	if g.Machine().Pending().Direction != merge.Left {
		t.Error("pending move replaced during animation")
	}

	settle(t, g)

	if g.State().Score != 1 {
		t.Errorf("score = %d, want 1", g.State().Score)
	}
	if g.Snapshot().Board[3][0] != 4 {
		t.Errorf("bottom-left = %d, want 4", g.Snapshot().Board[3][0])
	}
	if g.Machine().Board().Len() != 2 {
		t.Errorf("tiles = %d, want merged tile plus one spawn", g.Machine().Board().Len())
	}
	if g.Machine().State() != merge.StateWaitingInput {
		t.Errorf("engine state = %s, want waiting_input", g.Machine().State())
	}
}

func TestNoChangeNoSpawn(t *testing.T) {
	g := newTestGame(t, ModeEndless, emptyStart)
	place(t, g, map[merge.Pos]int{merge.P(0, 0): 2})

	g.Step(frame(core.ActionLeft))

	if g.Animating() {
		t.Error("unchanged move should not animate")
	}
	if g.Machine().Board().Len() != 1 || g.Summary().Moves != 0 {
		t.Errorf("tiles = %d, moves = %d; want 1, 0", g.Machine().Board().Len(), g.Summary().Moves)
	}
}

func TestGameOverOnLockedBoard(t *testing.T) {
	g := newTestGame(t, ModeEndless, `
board: {width: 2, height: 2}
spawn: {initial_count: 0, turn_count: 1, high_value_probability: 0}
`)
	place(t, g, map[merge.Pos]int{
		merge.P(0, 1): 4, merge.P(1, 1): 16,
		merge.P(0, 0): 8,
	})

	press(t, g, core.ActionRight)

	st := g.State()
	if !st.GameOver || st.Won {
		t.Fatalf("state = %+v, want game over without win", st)
	}
	sum := g.Summary()
	if sum.MaxTile != 16 || sum.Moves != 1 || sum.Won {
		t.Errorf("summary = %+v", sum)
	}
	if g.Snapshot().State != StateGameOver {
		t.Errorf("snapshot state = %s", g.Snapshot().State)
	}

	// Moves are ignored once the game is over.
	g.Step(frame(core.ActionLeft))
	if g.Animating() {
		t.Error("input accepted after game over")
	}
}

func TestEndlessWinValue(t *testing.T) {
	g := newTestGame(t, ModeEndless, emptyStart+"win_value: 8\n")
	place(t, g, map[merge.Pos]int{merge.P(0, 0): 4, merge.P(1, 0): 4})

	press(t, g, core.ActionLeft)

	st := g.State()
	if !st.GameOver || !st.Won {
		t.Errorf("state = %+v, want won", st)
	}
	if g.Snapshot().State != StateWin {
		t.Errorf("snapshot state = %s, want win", g.Snapshot().State)
	}
}

func TestEndlessModeNoWin(t *testing.T) {
	g := newTestGame(t, ModeEndless, emptyStart)
	place(t, g, map[merge.Pos]int{merge.P(0, 0): 4096, merge.P(1, 0): 4096})

	press(t, g, core.ActionLeft)

	if g.levelCleared || g.won || g.State().GameOver {
		t.Errorf("endless without win value should keep playing: %+v", g.State())
	}
	if g.Snapshot().MaxTile != 8192 {
		t.Errorf("max tile = %d, want 8192", g.Snapshot().MaxTile)
	}
}

func TestCampaignProgression(t *testing.T) {
	g := newTestGame(t, ModeCampaign, emptyStart)
	place(t, g, map[merge.Pos]int{merge.P(0, 0): 32, merge.P(1, 0): 32})

	press(t, g, core.ActionLeft)

	if !g.levelCleared {
		t.Fatal("reaching the level target should clear the level")
	}
	if !g.State().Paused || g.State().GameOver {
		t.Errorf("state during level clear = %+v", g.State())
	}

	for range levelClearDelay {
		g.Step(frame())
	}

	if g.levelIndex != 1 {
		t.Fatalf("level = %d, want 2", g.levelIndex+1)
	}
	snap := g.Snapshot()
	if snap.Target != 128 || snap.Score != 1 || snap.Moves != 1 {
		t.Errorf("after advance: target %d score %d moves %d; want 128, 1, 1", snap.Target, snap.Score, snap.Moves)
	}
	if g.Machine().Board().Len() != 0 {
		t.Error("next level should start on a fresh board")
	}
}

func TestCampaignFinalLevelWins(t *testing.T) {
	g := newTestGameAt(t, ModeCampaign, emptyStart, LevelCount())

	if g.Machine().Grid().Width() != 6 {
		t.Fatalf("final level width = %d, want 6", g.Machine().Grid().Width())
	}
	place(t, g, map[merge.Pos]int{merge.P(0, 0): 4096, merge.P(1, 0): 4096})

	press(t, g, core.ActionLeft)
	for range levelClearDelay {
		g.Step(frame())
	}

	st := g.State()
	if !st.GameOver || !st.Won {
		t.Errorf("state = %+v, want campaign won", st)
	}
}

func TestStartAtIsConsumed(t *testing.T) {
	g := newTestGameAt(t, ModeCampaign, emptyStart, 5)

	if g.levelIndex != 4 {
		t.Errorf("level index = %d, want 4", g.levelIndex)
	}
	if w := g.Machine().Grid().Width(); w != 3 {
		t.Errorf("grid width = %d, want 3", w)
	}

	g.Reset(testRuntime(1))
	if g.levelIndex != 0 {
		t.Errorf("level index after second Reset = %d, want 0", g.levelIndex)
	}
}

func TestStartAtIsPerGame(t *testing.T) {
	useConfig(t, emptyStart)

	a, b := New(), New()
	a.StartAt(7)
	a.Reset(testRuntime(1))
	b.Reset(testRuntime(1))

	if a.levelIndex != 6 {
		t.Errorf("first game level index = %d, want 6", a.levelIndex)
	}
	if b.levelIndex != 0 {
		t.Errorf("second game level index = %d, want 0", b.levelIndex)
	}
}

func TestConcurrentCampaignResets(t *testing.T) {
	useConfig(t, emptyStart)

	games := make([]*Game, 8)
	var wg sync.WaitGroup
	for i := range games {
		games[i] = New()
		wg.Add(1)
		go func(g *Game, level int) {
			defer wg.Done()
			g.StartAt(level)
			g.Reset(testRuntime(int64(level)))
			g.Reset(testRuntime(int64(level)))
		}(games[i], i%LevelCount()+1)
	}
	wg.Wait()

	for i, g := range games {
		if g.Err() != nil {
			t.Errorf("game %d: Reset() failed: %v", i, g.Err())
		}
		if g.levelIndex != 0 {
			t.Errorf("game %d: level index = %d, want 0 after second Reset", i, g.levelIndex)
		}
	}
}

func TestResizeKeepsBoard(t *testing.T) {
	g := newTestGame(t, ModeEndless, emptyStart)
	place(t, g, map[merge.Pos]int{merge.P(1, 1): 8})

	g.Resize(20, 10)
	if !g.State().Paused {
		t.Error("shrinking the window should pause")
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("growing the window should resume")
	}
	if tile := g.Machine().Board().TileAt(merge.P(1, 1)); tile == nil || tile.Value != 8 {
		t.Errorf("Resize lost the board: %v", g.Machine().Board().Values())
	}
}

func TestCommitErrorEndsGame(t *testing.T) {
	g := newTestGame(t, ModeEndless, emptyStart+`
block_types:
  - {value: 2, color: white}
  - {value: 4, color: yellow}
  - {value: 8, color: red}
`)
	place(t, g, map[merge.Pos]int{merge.P(0, 0): 8, merge.P(1, 0): 8})

	press(t, g, core.ActionLeft)

	if !errors.Is(g.Err(), merge.ErrInvalidConfig) {
		t.Errorf("Err() = %v, want ErrInvalidConfig", g.Err())
	}
	if !g.State().GameOver {
		t.Error("config error should end the game")
	}
}

func TestInvalidConfigFailsReset(t *testing.T) {
	useConfig(t, "spawn: {turn_count: 0}\n")

	g := NewEndless()
	g.Reset(testRuntime(1))

	if !errors.Is(g.Err(), merge.ErrInvalidConfig) {
		t.Errorf("Err() = %v, want ErrInvalidConfig", g.Err())
	}
	if !g.State().GameOver {
		t.Error("game with bad config should be over")
	}

	// Rendering and stepping must not panic without an engine.
	g.Step(frame(core.ActionLeft))
	g.Render(core.NewScreen(80, 24))
}

func TestUnreadableConfigFailsReset(t *testing.T) {
	tests := []struct {
		name  string
		write bool
		body  string
	}{
		{"malformed yaml", true, "board: [this is: not valid\n"},
		{"missing file", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "t2048.yaml")
			if tt.write {
				if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
					t.Fatalf("WriteFile failed: %v", err)
				}
			}
			SetConfigPath(path)
			t.Cleanup(func() { SetConfigPath("") })

			g := NewEndless()
			g.Reset(testRuntime(1))

			if g.Err() == nil {
				t.Fatal("Err() = nil, want the config error")
			}
			if !g.State().GameOver {
				t.Error("game with unreadable config should be over")
			}
			if g.Machine() != nil {
				t.Error("no engine should be built from defaults")
			}
		})
	}
}

func TestPauseBlocksInput(t *testing.T) {
	g := newTestGame(t, ModeEndless, emptyStart)
	place(t, g, map[merge.Pos]int{merge.P(3, 0): 2})

	g.Step(frame(core.ActionPause))
	g.Step(frame(core.ActionLeft))
	if g.Animating() || !g.State().Paused {
		t.Error("moves should be ignored while paused")
	}

	g.Step(frame(core.ActionPause))
	g.Step(frame(core.ActionLeft))
	if !g.Animating() {
		t.Error("move should start after unpausing")
	}
}

func TestDifficultyRaisesSpawnProbability(t *testing.T) {
	g := newTestGame(t, ModeEndless, emptyStart+`
difficulty:
  enabled: true
  initial_level: 0
  progression: {type: moves, max_at: 1}
  scaling: {high_value_increase: 0.5}
`)
	place(t, g, map[merge.Pos]int{merge.P(3, 0): 2})

	press(t, g, core.ActionLeft)

	if got := g.Machine().HighValueProbability(); math.Abs(got-0.8) > 1e-9 {
		t.Errorf("HighValueProbability() = %v, want 0.8", got)
	}
}

func TestBestScore(t *testing.T) {
	g := newTestGame(t, ModeEndless, emptyStart)
	g.SetBestScore(10)

	if g.BestScore() != 10 {
		t.Errorf("BestScore() = %d, want 10", g.BestScore())
	}

	g.bankedScore = 25
	if g.BestScore() != 25 {
		t.Errorf("BestScore() = %d, want current score 25", g.BestScore())
	}
}

func TestRenderFlipsY(t *testing.T) {
	g := newTestGame(t, ModeEndless, emptyStart)
	place(t, g, map[merge.Pos]int{merge.P(0, 3): 2, merge.P(3, 0): 4})

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	// Cells are 8 wide for the default table; the board starts at x=23, y=4.
	top := screen.GetCell(27, 5)
	if top.Rune != '2' || top.Color != core.ColorWhite {
		t.Errorf("top-left cell = %+v, want white 2\n%s", top, screen.String())
	}
	bottom := screen.GetCell(51, 11)
	if bottom.Rune != '4' || bottom.Color != core.ColorBrightWhite {
		t.Errorf("bottom-right cell = %+v, want bright white 4\n%s", bottom, screen.String())
	}
	if screen.Get(23, 4) != '┌' || screen.Get(55, 12) != '┘' {
		t.Errorf("lattice corners misplaced\n%s", screen.String())
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, Seed: 1})

	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("state = %s, want paused_small_window", g.Snapshot().State)
	}
	if !g.State().Paused {
		t.Error("too small window should pause")
	}
}

func TestLevels(t *testing.T) {
	if LevelCount() != 8 {
		t.Errorf("LevelCount() = %d, want 8", LevelCount())
	}
	if names := LevelNames(); names[0] != "Warm-up" {
		t.Errorf("first level = %q", names[0])
	}
	if GetLevel(-1) != nil || GetLevel(LevelCount()) != nil {
		t.Error("GetLevel out of range should be nil")
	}

	base := merge.DefaultConfig()
	for i, target := range LevelTargets() {
		cfg := Levels[i].Config(base)
		if cfg.WinValue != target {
			t.Errorf("level %d win value = %d, want %d", i+1, cfg.WinValue, target)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("level %d config invalid: %v", i+1, err)
		}
	}
}
