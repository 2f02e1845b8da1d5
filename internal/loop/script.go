package loop

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// ScriptEvent presses or releases one control at a point in time.
// Pressed is decoded untyped and must turn out to be a YAML boolean.
type ScriptEvent struct {
	At      time.Duration `yaml:"at"`
	Control string        `yaml:"control"`
	Pressed any           `yaml:"pressed"`
}

// Script is a timed sequence of control events for headless runs.
//
// Example:
//
//	name: run right and jump
//	events:
//	  - at: 0s
//	    control: right
//	    pressed: true
//	  - at: 1200ms
//	    control: up
//	    pressed: true
type Script struct {
	Name   string        `yaml:"name"`
	Events []ScriptEvent `yaml:"events"`
}

// ParseScript decodes and validates a script. Events are ordered by time;
// events at the same time keep their file order.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("loop: parse script: %w", err)
	}

	for i, ev := range s.Events {
		if ev.At < 0 {
			return nil, fmt.Errorf("loop: script event %d: negative time %v", i, ev.At)
		}
		if _, ok := core.ParseControl(ev.Control); !ok {
			return nil, fmt.Errorf("loop: script event %d: %w: %q", i, core.ErrUnknownControl, ev.Control)
		}
		if _, err := core.ParseHeld(ev.Pressed); err != nil {
			return nil, fmt.Errorf("loop: script event %d: %w", i, err)
		}
	}

	sort.SliceStable(s.Events, func(i, j int) bool {
		return s.Events[i].At < s.Events[j].At
	})
	return &s, nil
}

// LoadScript reads a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loop: read script: %w", err)
	}
	return ParseScript(data)
}

// Duration returns the time of the last event.
func (s *Script) Duration() time.Duration {
	if len(s.Events) == 0 {
		return 0
	}
	return s.Events[len(s.Events)-1].At
}
