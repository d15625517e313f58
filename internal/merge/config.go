package merge

import "fmt"

// Config describes a level.
type Config struct {
	Width                int
	Height               int
	InitialSpawnCount    int // tiles spawned when the level starts
	TurnSpawnCount       int // tiles spawned after every committed move
	HighValueProbability float64
	BlockTypes           []BlockType

	// WinValue ends the game with a win once a merge produces it.
	// Zero disables the win condition.
	WinValue int
}

// DefaultConfig returns the classic 4x4 setup.
func DefaultConfig() Config {
	return Config{
		Width:                4,
		Height:               4,
		InitialSpawnCount:    2,
		TurnSpawnCount:       1,
		HighValueProbability: DefaultHighValueProbability,
		BlockTypes:           DefaultBlockTypes(),
	}
}

// Validate checks the config and returns an error wrapping
// ErrInvalidConfig when it cannot be used.
func (c Config) Validate() error {
	_, err := c.blockTable()
	return err
}

// blockTable validates the config and builds its block table.
func (c Config) blockTable() (*BlockTable, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("%w: board size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.InitialSpawnCount < 0 {
		return nil, fmt.Errorf("%w: initial spawn count %d", ErrInvalidConfig, c.InitialSpawnCount)
	}
	if c.TurnSpawnCount < 1 {
		return nil, fmt.Errorf("%w: turn spawn count %d", ErrInvalidConfig, c.TurnSpawnCount)
	}
	if c.HighValueProbability < 0 || c.HighValueProbability > 1 {
		return nil, fmt.Errorf("%w: high value probability %v", ErrInvalidConfig, c.HighValueProbability)
	}

	table, err := NewBlockTable(c.BlockTypes)
	if err != nil {
		return nil, err
	}
	if c.WinValue != 0 && !table.Has(c.WinValue) {
		return nil, fmt.Errorf("%w: win value %d has no block type", ErrInvalidConfig, c.WinValue)
	}
	return table, nil
}
