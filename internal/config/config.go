// Package config loads the YAML board configuration and applies
// difficulty presets.
package config

import (
	"fmt"

	"github.com/vovakirdan/merge2048/internal/core"
	"github.com/vovakirdan/merge2048/internal/merge"
)

// T2048Config is the on-disk configuration for endless play.
type T2048Config struct {
	Board      BoardConfig       `yaml:"board"`
	Spawn      SpawnConfig       `yaml:"spawn"`
	WinValue   int               `yaml:"win_value"` // 0 disables the win condition
	BlockTypes []BlockTypeConfig `yaml:"block_types"`
	Difficulty DifficultyConfig  `yaml:"difficulty"`
}

// BoardConfig sets the grid size.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SpawnConfig controls how many tiles appear and how often they are 4s.
type SpawnConfig struct {
	InitialCount         int     `yaml:"initial_count"`
	TurnCount            int     `yaml:"turn_count"`
	HighValueProbability float64 `yaml:"high_value_probability"`
}

// BlockTypeConfig binds a tile value to a color name.
type BlockTypeConfig struct {
	Value int    `yaml:"value"`
	Color string `yaml:"color"`
}

// DifficultyConfig raises the spawn-4 probability as the game goes on.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what drives the difficulty level.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "moves", or "none"
	MaxAt int    `yaml:"max_at"` // Score/moves at which max difficulty is reached
}

// ScalingConfig defines how much the difficulty level changes spawning.
type ScalingConfig struct {
	HighValueIncrease float64 `yaml:"high_value_increase"` // Added to the spawn-4 probability at max difficulty
}

// MergeConfig converts the file config into an engine config. Color names
// are resolved here; the engine validates the rest.
func (c T2048Config) MergeConfig() (merge.Config, error) {
	blocks := make([]merge.BlockType, 0, len(c.BlockTypes))
	for _, bt := range c.BlockTypes {
		color, err := core.ParseColor(bt.Color)
		if err != nil {
			return merge.Config{}, fmt.Errorf("%w: block %d: %v", merge.ErrInvalidConfig, bt.Value, err)
		}
		blocks = append(blocks, merge.BlockType{Value: bt.Value, Color: color})
	}

	cfg := merge.Config{
		Width:                c.Board.Width,
		Height:               c.Board.Height,
		InitialSpawnCount:    c.Spawn.InitialCount,
		TurnSpawnCount:       c.Spawn.TurnCount,
		HighValueProbability: c.Spawn.HighValueProbability,
		BlockTypes:           blocks,
		WinValue:             c.WinValue,
	}
	if err := cfg.Validate(); err != nil {
		return merge.Config{}, err
	}
	return cfg, nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.2
	case DifficultyHard:
		return 0.5
	default:
		return 0.0
	}
}

// HighValueProbabilityForPreset returns the base spawn-4 probability for
// preset. Normal and fixed keep the value from the file.
func HighValueProbabilityForPreset(preset DifficultyPreset, fromFile float64) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.1
	case DifficultyHard:
		return 0.4
	default:
		return fromFile
	}
}
