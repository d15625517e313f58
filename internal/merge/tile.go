package merge

import (
	"cmp"
	"fmt"
	"slices"
)

// Tile is a value-bearing piece occupying exactly one cell.
type Tile struct {
	ID    uint64
	Value int
	Cell  Pos

	// MergeTarget is set by ComputeMove when this tile will merge into
	// another one this turn. It is cleared when the turn is committed.
	MergeTarget *Tile

	// absorbing marks a tile that another tile merges into this turn.
	absorbing bool
}

// committed reports whether the tile already takes part in a merge this turn.
func (t *Tile) committed() bool {
	return t.MergeTarget != nil || t.absorbing
}

// resetTurn clears per-move bookkeeping.
func (t *Tile) resetTurn() {
	t.MergeTarget = nil
	t.absorbing = false
}

// Board is the tile set laid over a grid. It is owned by the Machine;
// ComputeMove borrows its tiles for one computation.
type Board struct {
	grid   *Grid
	tiles  []*Tile
	nextID uint64
}

// NewBoard creates an empty tile set over the grid.
func NewBoard(grid *Grid) *Board {
	return &Board{grid: grid}
}

// Grid returns the underlying grid.
func (b *Board) Grid() *Grid {
	return b.grid
}

// Place creates a tile of the given value at p.
func (b *Board) Place(p Pos, value int) (*Tile, error) {
	if !b.grid.InBounds(p) {
		return nil, fmt.Errorf("merge: place %s: off grid", p)
	}
	if !isPowerOfTwo(value) {
		return nil, fmt.Errorf("merge: place %s: value %d is not a power of two", p, value)
	}
	if other := b.TileAt(p); other != nil {
		return nil, fmt.Errorf("merge: place %s: occupied by tile %d", p, other.ID)
	}

	b.nextID++
	t := &Tile{ID: b.nextID, Value: value, Cell: p}
	b.tiles = append(b.tiles, t)
	return t, nil
}

// Remove deletes the tile from the set. Unknown tiles are ignored.
func (b *Board) Remove(t *Tile) {
	b.tiles = slices.DeleteFunc(b.tiles, func(o *Tile) bool {
		return o == t
	})
}

// TileAt returns the tile occupying p, or nil.
func (b *Board) TileAt(p Pos) *Tile {
	for _, t := range b.tiles {
		if t.Cell == p {
			return t
		}
	}
	return nil
}

// Tiles returns the current tiles. The slice is a copy; the tiles are not.
func (b *Board) Tiles() []*Tile {
	return slices.Clone(b.tiles)
}

// Len returns the number of tiles.
func (b *Board) Len() int {
	return len(b.tiles)
}

// Clone returns a deep copy of the settled tile set. Per-move merge
// bookkeeping is not copied.
func (b *Board) Clone() *Board {
	c := &Board{
		grid:   b.grid,
		tiles:  make([]*Tile, len(b.tiles)),
		nextID: b.nextID,
	}
	for i, t := range b.tiles {
		c.tiles[i] = &Tile{ID: t.ID, Value: t.Value, Cell: t.Cell}
	}
	return c
}

// resolveMerges replaces every source/target pair designated by
// ComputeMove with one tile of double value at the target's cell, then
// clears the per-move bookkeeping.
func (b *Board) resolveMerges() []MergeEvent {
	var sources []*Tile
	for _, t := range b.tiles {
		if t.MergeTarget != nil {
			sources = append(sources, t)
		}
	}

	events := make([]MergeEvent, 0, len(sources))
	for _, src := range sources {
		target := src.MergeTarget
		b.Remove(src)
		b.Remove(target)

		b.nextID++
		merged := &Tile{ID: b.nextID, Value: target.Value * 2, Cell: target.Cell}
		b.tiles = append(b.tiles, merged)

		events = append(events, MergeEvent{
			SourceID: src.ID,
			TargetID: target.ID,
			ResultID: merged.ID,
			Cell:     merged.Cell,
			Value:    merged.Value,
		})
	}

	for _, t := range b.tiles {
		t.resetTurn()
	}
	return events
}

// FreeCells returns the unoccupied cells in grid order.
func (b *Board) FreeCells() []Pos {
	return FreeCells(b.grid, b.tiles)
}

// MaxValue returns the highest tile value, or 0 for an empty board.
func (b *Board) MaxValue() int {
	maxVal := 0
	for _, t := range b.tiles {
		maxVal = max(maxVal, t.Value)
	}
	return maxVal
}

// Values returns the settled arrangement as rows indexed [y][x].
// Empty cells hold 0.
func (b *Board) Values() [][]int {
	rows := make([][]int, b.grid.Height())
	for y := range rows {
		rows[y] = make([]int, b.grid.Width())
	}
	for _, t := range b.tiles {
		rows[t.Cell.Y][t.Cell.X] = t.Value
	}
	return rows
}

// FreeCells returns the grid cells not referenced by any tile.
func FreeCells(grid *Grid, tiles []*Tile) []Pos {
	occupied := make(map[Pos]struct{}, len(tiles))
	for _, t := range tiles {
		occupied[t.Cell] = struct{}{}
	}

	free := make([]Pos, 0, grid.Size()-len(occupied))
	for _, c := range grid.cells {
		if _, ok := occupied[c]; !ok {
			free = append(free, c)
		}
	}
	return free
}

// OrderedForDirection returns the tiles sorted by (x, y), reversed for
// Right and Up, so tiles nearest the destination edge come first.
func OrderedForDirection(tiles []*Tile, dir Direction) []*Tile {
	ordered := slices.Clone(tiles)
	slices.SortStableFunc(ordered, func(a, b *Tile) int {
		if c := cmp.Compare(a.Cell.X, b.Cell.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Cell.Y, b.Cell.Y)
	})
	if dir == Right || dir == Up {
		slices.Reverse(ordered)
	}
	return ordered
}

// HasAdjacentPair returns true if any tile has an orthogonal neighbour of
// the same value.
func HasAdjacentPair(tiles []*Tile) bool {
	byCell := occupancy(tiles)
	for _, t := range tiles {
		for _, d := range Directions {
			if n, ok := byCell[t.Cell.Step(d)]; ok && n.Value == t.Value {
				return true
			}
		}
	}
	return false
}

// occupancy maps each occupied cell to its tile.
func occupancy(tiles []*Tile) map[Pos]*Tile {
	m := make(map[Pos]*Tile, len(tiles))
	for _, t := range tiles {
		m[t.Cell] = t
	}
	return m
}

func isPowerOfTwo(v int) bool {
	return v >= 2 && v&(v-1) == 0
}
