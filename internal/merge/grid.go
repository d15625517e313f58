package merge

import "fmt"

// Grid is the fixed set of addressable cells for a width x height board.
// It owns no tiles; occupancy lives in the tile set.
type Grid struct {
	w     int
	h     int
	cells []Pos
}

// NewGrid builds a grid by enumerating every (x, y) in [0,w)x[0,h).
func NewGrid(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: grid size %dx%d", ErrInvalidConfig, w, h)
	}

	g := &Grid{
		w:     w,
		h:     h,
		cells: make([]Pos, 0, w*h),
	}
	for x := range w {
		for y := range h {
			g.cells = append(g.cells, Pos{X: x, Y: y})
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.w
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.h
}

// Size returns the total number of cells.
func (g *Grid) Size() int {
	return len(g.cells)
}

// InBounds returns true if p addresses a cell of this grid.
func (g *Grid) InBounds(p Pos) bool {
	return p.X >= 0 && p.X < g.w && p.Y >= 0 && p.Y < g.h
}

// CellAt returns the cell at p, or false if p is off-grid.
func (g *Grid) CellAt(p Pos) (Pos, bool) {
	if !g.InBounds(p) {
		return Pos{}, false
	}
	return g.cells[p.X*g.h+p.Y], true
}

// Cells returns a copy of every cell in x-major order.
func (g *Grid) Cells() []Pos {
	out := make([]Pos, len(g.cells))
	copy(out, g.cells)
	return out
}
