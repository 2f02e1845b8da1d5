package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != DefaultPlatformerConfig() {
		t.Errorf("embedded defaults drifted from DefaultPlatformerConfig:\n got %+v\nwant %+v",
			cfg, DefaultPlatformerConfig())
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Loop.StallLimitMS != 500 {
		t.Errorf("expected stall limit 500ms, got %d", cfg.Loop.StallLimitMS)
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("physics:\n  gravity: 9.8\nplayer:\n  health: 7\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) failed: %v", path, err)
	}
	if cfg.Physics.Gravity != 9.8 {
		t.Errorf("gravity = %v, expected 9.8", cfg.Physics.Gravity)
	}
	if cfg.Player.Health != 7 {
		t.Errorf("health = %d, expected 7", cfg.Player.Health)
	}
	// Untouched fields keep defaults
	if cfg.Player.RunSpeed != 2 {
		t.Errorf("run speed = %v, expected default 2", cfg.Player.RunSpeed)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("loop:\n  fixed_step_ms: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for zero fixed step")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PlatformerConfig)
	}{
		{"zero gravity", func(c *PlatformerConfig) { c.Physics.Gravity = 0 }},
		{"zero health", func(c *PlatformerConfig) { c.Player.Health = 0 }},
		{"negative size", func(c *PlatformerConfig) { c.Player.Width = -1 }},
		{"negative travel", func(c *PlatformerConfig) { c.Hazards.TravelLimit = -1 }},
		{"stall below step", func(c *PlatformerConfig) { c.Loop.StallLimitMS = 5 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultPlatformerConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultPlatformerConfig()
	ApplyPreset(&cfg, DifficultyHard)
	if cfg.Player.Health != 1 || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset gave health %d, initial %v", cfg.Player.Health, cfg.Difficulty.InitialLevel)
	}

	cfg = DefaultPlatformerConfig()
	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	cfg = DefaultPlatformerConfig()
	ApplyPreset(&cfg, "")
	if cfg != DefaultPlatformerConfig() {
		t.Error("empty preset should not change config")
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("easy") != DifficultyEasy || ParsePreset("bogus") != "" {
		t.Error("ParsePreset mismatch")
	}
}

func TestDifficultyProgression(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "level", MaxAt: 4},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
	})

	tests := []struct {
		index int
		level float64
		speed float64
	}{
		{0, 0.0, 2.0},
		{2, 0.5, 3.0},
		{4, 1.0, 4.0},
		{10, 1.0, 4.0}, // clamped
	}

	for _, tc := range tests {
		if got := dm.Level(tc.index); got != tc.level {
			t.Errorf("Level(%d) = %v, expected %v", tc.index, got, tc.level)
		}
		if got := dm.Speed(2.0, tc.index); got != tc.speed {
			t.Errorf("Speed(2, %d) = %v, expected %v", tc.index, got, tc.speed)
		}
	}
}

func TestDifficultyDisabled(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.3,
		Progression:  ProgressionConfig{Type: "level", MaxAt: 4},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
	})

	if dm.IsEnabled() {
		t.Error("manager should be disabled")
	}
	if got := dm.Level(3); got != 0.3 {
		t.Errorf("disabled Level() = %v, expected initial 0.3", got)
	}
}
