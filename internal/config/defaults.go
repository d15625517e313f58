package config

import (
	_ "embed"

	"github.com/vovakirdan/merge2048/internal/merge"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config mirrors defaults/t2048.yaml. It is used when the
// embedded file cannot be parsed.
func DefaultT2048Config() T2048Config {
	blocks := make([]BlockTypeConfig, 0, 17)
	for _, bt := range merge.DefaultBlockTypes() {
		blocks = append(blocks, BlockTypeConfig{Value: bt.Value, Color: bt.Color.String()})
	}

	return T2048Config{
		Board: BoardConfig{Width: 4, Height: 4},
		Spawn: SpawnConfig{
			InitialCount:         2,
			TurnCount:            1,
			HighValueProbability: merge.DefaultHighValueProbability,
		},
		BlockTypes: blocks,
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 500,
			},
			Scaling: ScalingConfig{
				HighValueIncrease: 0.2,
			},
		},
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultT2048YAML
}
