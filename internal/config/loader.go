package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "platformer.yaml"

// Load loads the platformer configuration.
// Search order: customPath -> ~/.platformer/configs/platformer.yaml ->
// ./configs/platformer.yaml -> embedded default.
//
// Files are decoded over the defaults, so a partial file only overrides
// the fields it names.
func Load(customPath string) (PlatformerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return PlatformerConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return PlatformerConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultPlatformerYAML)
	if err != nil {
		return DefaultPlatformerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the hardcoded defaults and validates the result.
func Parse(data []byte) (PlatformerConfig, error) {
	cfg := DefaultPlatformerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PlatformerConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return PlatformerConfig{}, err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c PlatformerConfig) Validate() error {
	switch {
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("config: gravity must be positive, got %v", c.Physics.Gravity)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("config: player size must be positive, got %vx%v", c.Player.Width, c.Player.Height)
	case c.Player.Health <= 0:
		return fmt.Errorf("config: player health must be positive, got %d", c.Player.Health)
	case c.Hazards.TravelLimit < 0 || c.Pickups.TravelLimit < 0:
		return fmt.Errorf("config: travel limits must not be negative")
	case c.Loop.FixedStepMS <= 0:
		return fmt.Errorf("config: fixed_step_ms must be positive, got %d", c.Loop.FixedStepMS)
	case c.Loop.StallLimitMS < c.Loop.FixedStepMS:
		return fmt.Errorf("config: stall_limit_ms (%d) must be at least fixed_step_ms (%d)",
			c.Loop.StallLimitMS, c.Loop.FixedStepMS)
	case c.Loop.KeyHoldMS <= 0 || c.Loop.KeyRepeatMS <= 0:
		return fmt.Errorf("config: key_hold_ms and key_repeat_ms must be positive")
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".platformer", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust survivability based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Player.Health = 5
	case DifficultyHard:
		cfg.Player.Health = 1
	}
}
