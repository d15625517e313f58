// Package merge implements the sliding-tile merge engine: the grid, the tile
// set, the spawner, the move engine and the turn state machine.
//
// The package has no dependencies beyond internal/core. It never renders,
// persists or sleeps; callers drive it one turn at a time and animate the
// results however they like.
package merge

import (
	"fmt"
	"strings"
)

// Pos is a cell address on the integer lattice.
// X grows to the right, Y grows toward the top edge.
type Pos struct {
	X int
	Y int
}

// P is a convenience constructor for Pos.
func P(x, y int) Pos {
	return Pos{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Step returns the neighbouring position in the given direction.
func (p Pos) Step(d Direction) Pos {
	dx, dy := d.Delta()
	return Pos{X: p.X + dx, Y: p.Y + dy}
}

// Direction is a decoded directional command.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists all directions in a fixed order.
var Directions = []Direction{Up, Down, Left, Right}

// Delta returns the unit offset for the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, 1
	case Down:
		return 0, -1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection parses a direction name (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return 0, fmt.Errorf("merge: unknown direction %q", s)
}
