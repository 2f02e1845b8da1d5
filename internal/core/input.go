package core

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when a control value is not a genuine boolean.
var ErrInvalidInput = errors.New("input: pressed flag must be a boolean")

// ErrUnknownControl is returned for control names outside the fixed set.
var ErrUnknownControl = errors.New("input: unknown control")

// Control is a named directional control, abstracted from physical keys.
type Control int

const (
	ControlUp Control = iota
	ControlLeft
	ControlRight

	controlCount
)

// Controls lists every recognized control in a stable order.
var Controls = []Control{ControlUp, ControlLeft, ControlRight}

// String returns the canonical control name.
func (c Control) String() string {
	switch c {
	case ControlUp:
		return "up"
	case ControlLeft:
		return "left"
	case ControlRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseControl maps a control name to a Control.
// Browser-style key names (ArrowUp, ArrowLeft, ArrowRight) are accepted too.
func ParseControl(name string) (Control, bool) {
	switch name {
	case "up", "ArrowUp":
		return ControlUp, true
	case "left", "ArrowLeft":
		return ControlLeft, true
	case "right", "ArrowRight":
		return ControlRight, true
	}
	return 0, false
}

// ParseHeld validates an untyped held flag, e.g. a value decoded from YAML.
// Only genuine booleans are accepted.
func ParseHeld(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: got %T (%v)", ErrInvalidInput, v, v)
	}
	return b, nil
}

// ControlState is the mapping of controls to their held state.
// The simulation reads it as a momentary snapshot, so callers hand
// a Clone to anything that outlives the current sample.
type ControlState struct {
	held [controlCount]bool
}

// Set marks a control as held or released.
func (s *ControlState) Set(c Control, held bool) {
	if c < 0 || c >= controlCount {
		return
	}
	s.held[c] = held
}

// Held reports whether the control is held.
func (s ControlState) Held(c Control) bool {
	if c < 0 || c >= controlCount {
		return false
	}
	return s.held[c]
}

// ReleaseAll releases every control.
func (s *ControlState) ReleaseAll() {
	s.held = [controlCount]bool{}
}

// AnyHeldExcept reports whether any control other than skip is held.
func (s ControlState) AnyHeldExcept(skip Control) bool {
	for _, c := range Controls {
		if c != skip && s.held[c] {
			return true
		}
	}
	return false
}

// Clone returns an independent copy.
func (s ControlState) Clone() ControlState {
	return s
}

// String renders the held controls, e.g. "up+right".
func (s ControlState) String() string {
	out := ""
	for _, c := range Controls {
		if !s.held[c] {
			continue
		}
		if out != "" {
			out += "+"
		}
		out += c.String()
	}
	if out == "" {
		return "none"
	}
	return out
}
