package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the hardcoded default configuration.
// It mirrors defaults/platformer.yaml and is the fallback when the
// embedded file cannot be parsed.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: Physics{
			Gravity: 0.981,
		},
		Player: Player{
			Width:     1,
			Height:    2,
			RunSpeed:  2,
			JumpSpeed: 2,
			Health:    3,
		},
		Hazards: Hazards{
			OscillatorSpeed: 2,
			TravelLimit:     2,
			DripSpeed:       2,
		},
		Pickups: Pickups{
			Size:        0.5,
			WobbleSpeed: 1,
			TravelLimit: 0.25,
		},
		Loop: Loop{
			FixedStepMS:  10,
			StallLimitMS: 500,
			KeyHoldMS:    550,
			KeyRepeatMS:  120,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 5,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultPlatformerYAML
}
