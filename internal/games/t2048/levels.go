// Package t2048 hosts the merge engine as an arcade game with campaign and
// endless modes, animated moves and a terminal renderer.
package t2048

import "github.com/vovakirdan/merge2048/internal/merge"

// Level defines a campaign level. Clearing it means producing Target.
type Level struct {
	ID     int
	Name   string
	Width  int
	Height int
	Target int     // Win value for the level
	Spawn4 float64 // Probability of spawning 4 instead of 2 (0.0-1.0)
}

// Levels are played in order. Each starts on a fresh board; the score
// carries over.
var Levels = []Level{
	{ID: 1, Name: "Warm-up", Width: 4, Height: 4, Target: 64, Spawn4: 0.10},
	{ID: 2, Name: "Getting Started", Width: 4, Height: 4, Target: 128, Spawn4: 0.10},
	{ID: 3, Name: "Building Momentum", Width: 4, Height: 4, Target: 256, Spawn4: 0.20},
	{ID: 4, Name: "The Climb", Width: 4, Height: 4, Target: 512, Spawn4: 0.30},
	{ID: 5, Name: "Tight Quarters", Width: 3, Height: 3, Target: 128, Spawn4: 0.30},
	{ID: 6, Name: "Classic 2048", Width: 4, Height: 4, Target: 2048, Spawn4: 0.30},
	{ID: 7, Name: "Wide Open", Width: 5, Height: 5, Target: 4096, Spawn4: 0.40},
	{ID: 8, Name: "Grandmaster", Width: 6, Height: 6, Target: 8192, Spawn4: 0.40},
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(Levels)
}

// GetLevel returns the level at the given index (0-based).
// Returns nil if index is out of range.
func GetLevel(index int) *Level {
	if index < 0 || index >= len(Levels) {
		return nil
	}
	return &Levels[index]
}

// LevelNames returns the names of all levels.
func LevelNames() []string {
	names := make([]string, len(Levels))
	for i, lvl := range Levels {
		names[i] = lvl.Name
	}
	return names
}

// LevelTargets returns the targets of all levels.
func LevelTargets() []int {
	targets := make([]int, len(Levels))
	for i, lvl := range Levels {
		targets[i] = lvl.Target
	}
	return targets
}

// Config applies the level to base, keeping its spawn counts and block
// table.
func (l Level) Config(base merge.Config) merge.Config {
	cfg := base
	cfg.Width = l.Width
	cfg.Height = l.Height
	cfg.WinValue = l.Target
	cfg.HighValueProbability = l.Spawn4
	return cfg
}
