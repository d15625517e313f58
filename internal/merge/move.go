package merge

// TileMove describes one tile's motion during a move.
// For a merging tile, To is the cell of the tile it merges into.
type TileMove struct {
	TileID uint64
	Value  int
	From   Pos
	To     Pos
	Merged bool
}

// MergeEvent describes two tiles becoming one.
type MergeEvent struct {
	SourceID uint64 // tile that slid into the target
	TargetID uint64 // tile that stayed put
	ResultID uint64 // tile created by Commit; zero before that
	Cell     Pos
	Value    int // value of the resulting tile
}

// MoveResult is the logical outcome of ComputeMove. Moves holds one entry
// per tile, stationary tiles included.
type MoveResult struct {
	Direction Direction
	Changed   bool
	Moves     []TileMove
	Merges    []MergeEvent
}

// ComputeMove slides every tile as far as it can in dir and designates
// merges. It rewrites the tiles' Cell and MergeTarget fields in place;
// resolving the merges is left to the caller.
//
// Tiles nearer the destination edge move first. A tile merges only into
// an equal-valued neighbour that is not already part of a merge this turn,
// and a merging tile vacates its cell for the tiles behind it.
func ComputeMove(grid *Grid, tiles []*Tile, dir Direction) MoveResult {
	res := MoveResult{Direction: dir}
	if !dir.Valid() {
		return res
	}

	for _, t := range tiles {
		t.resetTurn()
	}
	byCell := occupancy(tiles)

	for _, t := range OrderedForDirection(tiles, dir) {
		from := t.Cell
		for {
			next := t.Cell.Step(dir)
			if _, ok := grid.CellAt(next); !ok {
				break
			}

			other, occupied := byCell[next]
			if !occupied {
				delete(byCell, t.Cell)
				t.Cell = next
				byCell[next] = t
				continue
			}

			if other.Value == t.Value && !other.committed() {
				t.MergeTarget = other
				other.absorbing = true
				delete(byCell, t.Cell)
			}
			break
		}

		if t.MergeTarget != nil {
			res.Changed = true
			res.Moves = append(res.Moves, TileMove{
				TileID: t.ID,
				Value:  t.Value,
				From:   from,
				To:     t.MergeTarget.Cell,
				Merged: true,
			})
			res.Merges = append(res.Merges, MergeEvent{
				SourceID: t.ID,
				TargetID: t.MergeTarget.ID,
				Cell:     t.MergeTarget.Cell,
				Value:    t.Value * 2,
			})
			continue
		}

		if t.Cell != from {
			res.Changed = true
		}
		res.Moves = append(res.Moves, TileMove{
			TileID: t.ID,
			Value:  t.Value,
			From:   from,
			To:     t.Cell,
		})
	}

	return res
}
