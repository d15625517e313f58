package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const t2048File = "t2048.yaml"

// LoadT2048 loads the board configuration.
// Search order: customPath -> ~/.merge2048/configs/t2048.yaml -> ./configs/t2048.yaml -> embedded default
//
// A custom path that cannot be read or parsed is an error. The other
// locations are skipped silently when missing or malformed.
func LoadT2048(customPath string) (T2048Config, error) {
	if customPath != "" {
		cfg, err := readYAML(customPath)
		if err != nil {
			return T2048Config{}, err
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(t2048File), filepath.Join("configs", t2048File)} {
		if path == "" {
			continue
		}
		if cfg, err := readYAML(path); err == nil {
			return cfg, nil
		}
	}

	cfg := DefaultT2048Config()
	if err := yaml.Unmarshal(defaultT2048YAML, &cfg); err != nil {
		return DefaultT2048Config(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// readYAML decodes path on top of the built-in defaults, so a file only
// needs the keys it changes.
func readYAML(path string) (T2048Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return T2048Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := DefaultT2048Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return T2048Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".merge2048", "configs", filename)
}

// ApplyT2048Preset modifies the config based on a difficulty preset.
func ApplyT2048Preset(cfg *T2048Config, preset DifficultyPreset) {
	cfg.Spawn.HighValueProbability = HighValueProbabilityForPreset(preset, cfg.Spawn.HighValueProbability)

	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}
