package core

import (
	"errors"
	"testing"
)

func TestParseControl(t *testing.T) {
	tests := []struct {
		name string
		want Control
		ok   bool
	}{
		{"up", ControlUp, true},
		{"ArrowUp", ControlUp, true},
		{"left", ControlLeft, true},
		{"ArrowRight", ControlRight, true},
		{"down", 0, false},
		{"", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseControl(tc.name)
			if ok != tc.ok || (ok && got != tc.want) {
				t.Errorf("ParseControl(%q) = %v, %v; expected %v, %v", tc.name, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestParseHeld(t *testing.T) {
	if v, err := ParseHeld(true); err != nil || !v {
		t.Errorf("ParseHeld(true) = %v, %v", v, err)
	}
	if v, err := ParseHeld(false); err != nil || v {
		t.Errorf("ParseHeld(false) = %v, %v", v, err)
	}

	for _, bad := range []any{1, "true", nil, 0.0} {
		if _, err := ParseHeld(bad); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParseHeld(%v) error = %v, expected ErrInvalidInput", bad, err)
		}
	}
}

func TestControlState(t *testing.T) {
	var s ControlState
	if s.String() != "none" {
		t.Errorf("empty state String() = %q", s.String())
	}

	s.Set(ControlUp, true)
	if s.AnyHeldExcept(ControlUp) {
		t.Error("only up is held")
	}

	s.Set(ControlRight, true)
	if !s.AnyHeldExcept(ControlUp) {
		t.Error("right is held")
	}
	if s.String() != "up+right" {
		t.Errorf("String() = %q", s.String())
	}

	snap := s.Clone()
	s.ReleaseAll()
	if s.Held(ControlRight) || !snap.Held(ControlRight) {
		t.Error("Clone should be independent of later releases")
	}

	// Out of range controls are ignored
	s.Set(Control(42), true)
	if s.Held(Control(42)) {
		t.Error("unknown control should never report held")
	}
}
