// Package config provides YAML-based game configuration loading and
// difficulty management for the platformer.
package config

import "time"

// PlatformerConfig contains all tunable configuration for the simulation.
type PlatformerConfig struct {
	Physics    Physics          `yaml:"physics"`
	Player     Player           `yaml:"player"`
	Hazards    Hazards          `yaml:"hazards"`
	Pickups    Pickups          `yaml:"pickups"`
	Loop       Loop             `yaml:"loop"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// Physics defines world-wide physics constants, in cells and seconds.
type Physics struct {
	Gravity float64 `yaml:"gravity"`
}

// Player defines the player's body and movement.
type Player struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	RunSpeed  float64 `yaml:"run_speed"`
	JumpSpeed float64 `yaml:"jump_speed"`
	Health    int     `yaml:"health"`
}

// Hazards defines lava behavior.
type Hazards struct {
	OscillatorSpeed float64 `yaml:"oscillator_speed"`
	TravelLimit     float64 `yaml:"travel_limit"`
	DripSpeed       float64 `yaml:"drip_speed"`
}

// Pickups defines coin behavior.
type Pickups struct {
	Size        float64 `yaml:"size"`
	WobbleSpeed float64 `yaml:"wobble_speed"`
	TravelLimit float64 `yaml:"travel_limit"`
}

// Loop defines Loop Driver timing.
type Loop struct {
	FixedStepMS  int `yaml:"fixed_step_ms"`
	StallLimitMS int `yaml:"stall_limit_ms"`
	KeyHoldMS    int `yaml:"key_hold_ms"`   // How long a first keypress holds its control; terminals never report key release
	KeyRepeatMS  int `yaml:"key_repeat_ms"` // How long each auto-repeat extends a held control
}

// FixedStep returns the physics step as a duration.
func (l Loop) FixedStep() time.Duration {
	return time.Duration(l.FixedStepMS) * time.Millisecond
}

// StallLimit returns the elapsed-time ceiling as a duration.
func (l Loop) StallLimit() time.Duration {
	return time.Duration(l.StallLimitMS) * time.Millisecond
}

// KeyHold returns the terminal key-hold window as a duration.
func (l Loop) KeyHold() time.Duration {
	return time.Duration(l.KeyHoldMS) * time.Millisecond
}

// KeyRepeat returns the hold extension granted by a key repeat.
func (l Loop) KeyRepeat() time.Duration {
	return time.Duration(l.KeyRepeatMS) * time.Millisecond
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases across a level pack.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level" or "none"
	MaxAt int    `yaml:"max_at"` // Level index at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to hazard speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	}
	return ""
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
