package t2048

import (
	"math/rand"

	"github.com/vovakirdan/merge2048/internal/config"
	"github.com/vovakirdan/merge2048/internal/core"
	"github.com/vovakirdan/merge2048/internal/merge"
	"github.com/vovakirdan/merge2048/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// levelClearDelay is how long the "target reached" overlay stays up.
const levelClearDelay = 120

// Game runs the merge engine for one player.
type Game struct {
	mode Mode
	rng  *rand.Rand
	tick uint64

	base       merge.Config // endless config, also the base for campaign levels
	machine    *merge.Machine
	difficulty *config.DifficultyManager
	baseProb   float64

	levelIndex  int
	startAt     int // 1-based level for the next Reset; 0 starts from the first
	bankedScore int // score from cleared campaign levels
	bankedMoves int
	bestScore   int
	over        merge.GameOver

	screenW int
	screenH int

	gameOver        bool
	levelCleared    bool
	won             bool
	paused          bool
	tooSmall        bool
	levelClearTicks int
	err             error

	animating      bool
	animationPhase AnimationPhase
	animationTicks int
	animations     []TileAnimation
	pendingSpawn   []merge.SpawnEvent
}

// Package-level variables for config
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset for endless mode.
// Unknown names fall back to the config file.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// StartAt makes the next Reset begin at campaign level (1-based).
// Later resets start from the first level again.
func (g *Game) StartAt(level int) {
	g.startAt = level
}

// New creates a new campaign mode game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new endless mode game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register(string(ModeCampaign), func() registry.Game {
		return New()
	})
	registry.Register(string(ModeEndless), func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "2048 (Endless)"
	}
	return "2048 (Campaign)"
}

// Reset loads the config and starts a new game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tick = 0
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.bankedScore = 0
	g.bankedMoves = 0
	g.err = nil
	g.paused = false
	g.machine = nil

	cfg, err := config.LoadT2048(configPath)
	if err != nil {
		g.fail(err)
		return
	}
	if difficultyPreset != "" {
		config.ApplyT2048Preset(&cfg, difficultyPreset)
	}
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	base, err := cfg.MergeConfig()
	if err != nil {
		g.fail(err)
		return
	}
	g.base = base

	start := g.startAt
	g.startAt = 0
	g.levelIndex = 0
	if g.mode == ModeCampaign && start > 0 && start <= LevelCount() {
		g.levelIndex = start - 1
	}

	g.startLevel()
}

// levelConfig returns the engine config for the current level.
func (g *Game) levelConfig() merge.Config {
	if g.mode == ModeEndless {
		return g.base
	}
	lvl := GetLevel(g.levelIndex)
	if lvl == nil {
		lvl = GetLevel(LevelCount() - 1)
	}
	return lvl.Config(g.base)
}

// startLevel creates a fresh machine for the current level.
func (g *Game) startLevel() {
	g.gameOver = false
	g.levelCleared = false
	g.won = false
	g.levelClearTicks = 0
	g.over = merge.GameOver{}
	g.stopAnimation()

	cfg := g.levelConfig()
	g.baseProb = cfg.HighValueProbability

	m, err := merge.NewGame(cfg, g.rng, merge.WithGameOver(g.onLevelOver))
	if err != nil {
		g.fail(err)
		return
	}
	g.machine = m
	if spawned := m.LastSpawn(); len(spawned) > 0 {
		g.startPopAnimation(spawned)
	}
	g.checkScreenSize()
}

// onLevelOver runs when the engine reaches Win or Lose.
func (g *Game) onLevelOver(over merge.GameOver) {
	g.over = over
	switch {
	case !over.Won:
		g.gameOver = true
	case g.mode == ModeCampaign:
		g.levelCleared = true
		g.levelClearTicks = 0
	default:
		g.won = true
	}
}

// fail ends the game on an engine or config error.
func (g *Game) fail(err error) {
	g.err = err
	g.gameOver = true
	g.stopAnimation()
}

// Err returns the error that ended the game, if any.
func (g *Game) Err() error {
	return g.err
}

// SetBestScore sets the best score shown in the HUD.
func (g *Game) SetBestScore(score int) {
	g.bestScore = score
}

// BestScore returns the larger of the stored best and the current score.
func (g *Game) BestScore() int {
	return max(g.bestScore, g.score())
}

// Summary describes the game for the score table.
func (g *Game) Summary() merge.GameOver {
	s := merge.GameOver{
		Score: g.score(),
		Moves: g.bankedMoves,
		Won:   g.won,
	}
	if g.machine != nil {
		s.Moves += g.machine.Moves()
		s.MaxTile = g.machine.Board().MaxValue()
	}
	return s
}

// Machine exposes the engine driving the current level.
func (g *Game) Machine() *merge.Machine {
	return g.machine
}

// Animating reports whether a slide or pop is in progress.
func (g *Game) Animating() bool {
	return g.animating
}

func (g *Game) score() int {
	if g.machine == nil {
		return g.bankedScore
	}
	return g.bankedScore + g.machine.Score()
}

// Resize updates the screen size without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough for the board.
func (g *Game) checkScreenSize() {
	w, h := g.layoutSize()
	g.tooSmall = g.screenW < w || g.screenH < h
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall || g.machine == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.finished() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.animating {
		g.updateAnimation()
		return core.StepResult{State: g.State()}
	}

	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= levelClearDelay {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	// Restart is handled by the platform.
	if g.finished() {
		return core.StepResult{State: g.State()}
	}

	if dir, ok := directionFor(in); ok {
		g.processMove(dir)
	}
	return core.StepResult{State: g.State()}
}

// directionFor maps the first directional action in the frame.
func directionFor(in core.InputFrame) (merge.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return merge.Up, true
	case in.Has(core.ActionDown):
		return merge.Down, true
	case in.Has(core.ActionLeft):
		return merge.Left, true
	case in.Has(core.ActionRight):
		return merge.Right, true
	}
	return 0, false
}

// processMove submits dir. A changed move is committed when its slide
// animation ends.
func (g *Game) processMove(dir merge.Direction) {
	mv, err := g.machine.SubmitDirection(dir)
	if err != nil {
		g.fail(err)
		return
	}
	if g.machine.State() != merge.StateMoving {
		return
	}
	g.startSlideAnimation(mv.Moves)
}

// commitMove finishes the pending move and queues the spawn animation.
func (g *Game) commitMove() {
	turn, err := g.machine.Commit()
	if err != nil {
		g.fail(err)
		return
	}
	g.pendingSpawn = turn.Spawned

	if g.mode == ModeEndless && !turn.State.Terminal() {
		p := g.difficulty.HighValueProbability(g.baseProb, g.machine.Score(), g.machine.Moves())
		if err := g.machine.SetHighValueProbability(p); err != nil {
			g.fail(err)
		}
	}
}

// advanceLevel moves to the next campaign level on a fresh board.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.levelIndex >= LevelCount()-1 {
		g.won = true
		return
	}

	g.bankedScore += g.machine.Score()
	g.bankedMoves += g.machine.Moves()
	g.levelIndex++
	g.startLevel()
}

func (g *Game) finished() bool {
	return g.gameOver || g.won
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score(),
		GameOver: g.finished(),
		Won:      g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}
