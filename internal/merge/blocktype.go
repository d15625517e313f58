package merge

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/merge2048/internal/core"
)

// BlockType maps a tile value to its display attribute.
type BlockType struct {
	Value int
	Color core.Color
}

// BlockTable is a read-only value -> BlockType lookup.
type BlockTable struct {
	byValue map[int]BlockType
	values  []int // ascending
}

// NewBlockTable validates and indexes the given block types.
// The table must contain 2 and 4 and every doubling up to its maximum.
func NewBlockTable(types []BlockType) (*BlockTable, error) {
	t := &BlockTable{byValue: make(map[int]BlockType, len(types))}

	for _, bt := range types {
		if !isPowerOfTwo(bt.Value) {
			return nil, fmt.Errorf("%w: block value %d is not a power of two", ErrInvalidConfig, bt.Value)
		}
		if _, dup := t.byValue[bt.Value]; dup {
			return nil, fmt.Errorf("%w: duplicate block value %d", ErrInvalidConfig, bt.Value)
		}
		t.byValue[bt.Value] = bt
		t.values = append(t.values, bt.Value)
	}
	slices.Sort(t.values)

	if len(t.values) < 2 || t.values[0] != 2 || t.values[1] != 4 {
		return nil, fmt.Errorf("%w: block table must define values 2 and 4", ErrInvalidConfig)
	}
	for i := 1; i < len(t.values); i++ {
		if t.values[i] != t.values[i-1]*2 {
			return nil, fmt.Errorf("%w: block table has no entry for %d", ErrInvalidConfig, t.values[i-1]*2)
		}
	}
	return t, nil
}

// Lookup returns the BlockType for value.
func (t *BlockTable) Lookup(value int) (BlockType, error) {
	bt, ok := t.byValue[value]
	if !ok {
		return BlockType{}, fmt.Errorf("%w: %d", ErrUnknownBlockValue, value)
	}
	return bt, nil
}

// Has reports whether the table defines value.
func (t *BlockTable) Has(value int) bool {
	_, ok := t.byValue[value]
	return ok
}

// MaxValue returns the highest value the table defines.
func (t *BlockTable) MaxValue() int {
	return t.values[len(t.values)-1]
}

// Types returns the block types in ascending value order.
func (t *BlockTable) Types() []BlockType {
	out := make([]BlockType, len(t.values))
	for i, v := range t.values {
		out[i] = t.byValue[v]
	}
	return out
}

// DefaultBlockTypes returns a table covering 2 through 131072, the largest
// value reachable on a 4x4 board.
func DefaultBlockTypes() []BlockType {
	colors := []core.Color{
		core.ColorWhite,
		core.ColorBrightWhite,
		core.ColorYellow,
		core.ColorOrange,
		core.ColorBrightRed,
		core.ColorRed,
		core.ColorBrightYellow,
		core.ColorBrightGreen,
		core.ColorGreen,
		core.ColorBrightCyan,
		core.ColorCyan,
		core.ColorBrightBlue,
		core.ColorBlue,
		core.ColorBrightMagenta,
		core.ColorMagenta,
		core.ColorGray,
		core.ColorDefault,
	}

	types := make([]BlockType, len(colors))
	value := 2
	for i, c := range colors {
		types[i] = BlockType{Value: value, Color: c}
		value *= 2
	}
	return types
}
