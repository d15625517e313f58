package merge

import "fmt"

// State is the turn state of a game.
type State int

const (
	StateGenerateLevel State = iota
	StateGenerateBlocks
	StateWaitingInput
	StateMoving
	StateWin
	StateLose
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateGenerateLevel:
		return "generate_level"
	case StateGenerateBlocks:
		return "generate_blocks"
	case StateWaitingInput:
		return "waiting_input"
	case StateMoving:
		return "moving"
	case StateWin:
		return "win"
	case StateLose:
		return "lose"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether the game has ended.
func (s State) Terminal() bool {
	return s == StateWin || s == StateLose
}

// SpawnEvent reports a tile created by the spawner.
type SpawnEvent struct {
	TileID uint64
	Cell   Pos
	Value  int
}

// TurnResult is reported by Commit.
type TurnResult struct {
	Merges     []MergeEvent
	ScoreDelta int
	Score      int
	Spawned    []SpawnEvent
	State      State
}

// GameOver is passed to game-over hooks when the machine enters Win or Lose.
type GameOver struct {
	Score   int
	MaxTile int
	Moves   int
	Won     bool
}

// Option configures a Machine.
type Option func(*Machine)

// WithGameOver registers fn to be called once when the game ends.
func WithGameOver(fn func(GameOver)) Option {
	return func(m *Machine) {
		m.onGameOver = append(m.onGameOver, fn)
	}
}

// Machine sequences turns: level generation, spawning, input, moving and
// merge resolution. It is not safe for concurrent use.
type Machine struct {
	cfg     Config
	blocks  *BlockTable
	spawner *Spawner

	grid  *Grid
	board *Board
	state State

	round     int
	score     int
	moves     int
	pending   MoveResult
	lastSpawn []SpawnEvent

	onGameOver []func(GameOver)
}

// NewGame validates cfg and starts a level. The returned machine is in
// WaitingInput, or in Lose if the first spawn already left no moves.
func NewGame(cfg Config, src Source, opts ...Option) (*Machine, error) {
	blocks, err := cfg.blockTable()
	if err != nil {
		return nil, err
	}

	m := &Machine{
		cfg:     cfg,
		blocks:  blocks,
		spawner: NewSpawner(src, cfg.HighValueProbability),
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.changeState(StateGenerateLevel); err != nil {
		return nil, err
	}
	return m, nil
}

// OnGameOver registers fn to be called once when the game ends.
func (m *Machine) OnGameOver(fn func(GameOver)) {
	m.onGameOver = append(m.onGameOver, fn)
}

// SetHighValueProbability changes the spawn-4 probability for the rest of
// the level. Values outside [0, 1] are rejected.
func (m *Machine) SetHighValueProbability(p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%w: high value probability %v", ErrInvalidConfig, p)
	}
	m.spawner.SetHighValueProbability(p)
	return nil
}

// HighValueProbability returns the spawn-4 probability in effect.
func (m *Machine) HighValueProbability() float64 {
	return m.spawner.HighValueProbability()
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Score returns the number of merges since the level started.
func (m *Machine) Score() int {
	return m.score
}

// Moves returns the number of committed moves.
func (m *Machine) Moves() int {
	return m.moves
}

// Config returns the level config.
func (m *Machine) Config() Config {
	return m.cfg
}

// Grid returns the level grid.
func (m *Machine) Grid() *Grid {
	return m.grid
}

// Board returns the tile set.
func (m *Machine) Board() *Board {
	return m.board
}

// Blocks returns the block table.
func (m *Machine) Blocks() *BlockTable {
	return m.blocks
}

// Pending returns the move computed by the last SubmitDirection that is
// still waiting for Commit.
func (m *Machine) Pending() MoveResult {
	return m.pending
}

// LastSpawn returns the tiles created by the most recent spawn.
func (m *Machine) LastSpawn() []SpawnEvent {
	return m.lastSpawn
}

// SubmitDirection processes a directional command. It is a no-op unless the
// machine is waiting for input. A move that changes nothing returns the
// machine to WaitingInput; otherwise it stays in Moving until Commit.
func (m *Machine) SubmitDirection(dir Direction) (MoveResult, error) {
	if m.state != StateWaitingInput || !dir.Valid() {
		return MoveResult{}, nil
	}
	if err := m.changeState(StateMoving); err != nil {
		return MoveResult{}, err
	}

	res := ComputeMove(m.grid, m.board.tiles, dir)
	if !res.Changed {
		return res, m.changeState(StateWaitingInput)
	}

	m.pending = res
	return res, nil
}

// Commit resolves the pending merges, spawns new tiles and advances to the
// next turn. It must only be called in Moving.
func (m *Machine) Commit() (TurnResult, error) {
	if m.state != StateMoving {
		return TurnResult{}, fmt.Errorf("%w: commit in state %s", ErrInvalidTransition, m.state)
	}

	for _, t := range m.board.tiles {
		if t.MergeTarget == nil {
			continue
		}
		if v := t.MergeTarget.Value * 2; !m.blocks.Has(v) {
			return TurnResult{}, fmt.Errorf("%w: merge produces %d, table maximum is %d",
				ErrInvalidConfig, v, m.blocks.MaxValue())
		}
	}

	res := TurnResult{Merges: m.board.resolveMerges()}
	won := false
	for _, ev := range res.Merges {
		m.score++
		if m.cfg.WinValue > 0 && ev.Value >= m.cfg.WinValue {
			won = true
		}
	}

	m.moves++
	m.pending = MoveResult{}
	m.lastSpawn = nil

	next := StateGenerateBlocks
	if won {
		next = StateWin
	}
	if err := m.changeState(next); err != nil {
		return res, err
	}

	res.ScoreDelta = len(res.Merges)
	res.Score = m.score
	res.Spawned = m.lastSpawn
	res.State = m.state
	return res, nil
}

// Play submits dir and commits it straight away. It is meant for callers
// that do not animate.
func (m *Machine) Play(dir Direction) (MoveResult, TurnResult, error) {
	mv, err := m.SubmitDirection(dir)
	if err != nil || m.state != StateMoving {
		return mv, TurnResult{State: m.state, Score: m.score}, err
	}
	turn, err := m.Commit()
	return mv, turn, err
}

// changeState enters s and runs its entry action.
func (m *Machine) changeState(s State) error {
	switch s {
	case StateGenerateLevel:
		m.state = s
		return m.generateLevel()
	case StateGenerateBlocks:
		m.state = s
		return m.generateBlocks()
	case StateWaitingInput, StateMoving:
		m.state = s
		return nil
	case StateWin, StateLose:
		m.state = s
		m.finish()
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidState, int(s))
	}
}

func (m *Machine) generateLevel() error {
	grid, err := NewGrid(m.cfg.Width, m.cfg.Height)
	if err != nil {
		return err
	}
	m.grid = grid
	m.board = NewBoard(grid)
	m.round = 0
	m.score = 0
	m.moves = 0
	m.pending = MoveResult{}
	return m.changeState(StateGenerateBlocks)
}

func (m *Machine) generateBlocks() error {
	count := m.cfg.TurnSpawnCount
	if m.round == 0 {
		count = m.cfg.InitialSpawnCount
	}
	m.round++

	m.lastSpawn = nil
	for _, p := range m.spawner.Spawn(count, m.board.FreeCells()) {
		if _, err := m.blocks.Lookup(p.Value); err != nil {
			return err
		}
		t, err := m.board.Place(p.Cell, p.Value)
		if err != nil {
			return err
		}
		m.lastSpawn = append(m.lastSpawn, SpawnEvent{TileID: t.ID, Cell: t.Cell, Value: t.Value})
	}

	// A full board with no equal neighbours has no move left.
	if len(m.board.FreeCells()) == 0 && !HasAdjacentPair(m.board.tiles) {
		return m.changeState(StateLose)
	}
	return m.changeState(StateWaitingInput)
}

func (m *Machine) finish() {
	over := GameOver{
		Score:   m.score,
		MaxTile: m.board.MaxValue(),
		Moves:   m.moves,
		Won:     m.state == StateWin,
	}
	for _, fn := range m.onGameOver {
		fn(over)
	}
}
