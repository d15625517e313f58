package merge

// Source is the randomness the spawner draws from. *math/rand.Rand
// satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// DefaultHighValueProbability is the chance a spawned tile is a 4.
const DefaultHighValueProbability = 0.3

// Placement is an instruction to create a tile.
type Placement struct {
	Cell  Pos
	Value int
}

// Spawner picks empty cells and values for new tiles.
type Spawner struct {
	src       Source
	highValue float64
}

// NewSpawner creates a spawner that yields a 4 with probability
// highValueProbability and a 2 otherwise.
func NewSpawner(src Source, highValueProbability float64) *Spawner {
	return &Spawner{src: src, highValue: highValueProbability}
}

// Spawn selects min(count, len(emptyCells)) distinct cells uniformly at
// random and draws a value for each. emptyCells is not modified.
func (s *Spawner) Spawn(count int, emptyCells []Pos) []Placement {
	n := min(count, len(emptyCells))
	if n <= 0 {
		return nil
	}

	pool := make([]Pos, len(emptyCells))
	copy(pool, emptyCells)

	out := make([]Placement, 0, n)
	for i := range n {
		// Partial Fisher-Yates: pick from the untouched tail.
		j := i + s.src.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]

		value := 2
		if s.src.Float64() < s.highValue {
			value = 4
		}
		out = append(out, Placement{Cell: pool[i], Value: value})
	}
	return out
}

// SetHighValueProbability changes the chance of a 4 for later spawns.
func (s *Spawner) SetHighValueProbability(p float64) {
	s.highValue = p
}

// HighValueProbability returns the current chance of a 4.
func (s *Spawner) HighValueProbability() float64 {
	return s.highValue
}
