// Package world implements the platformer simulation: level geometry,
// actors, and the fixed physics step that moves them.
//
// It contains no timing or rendering code. The loop package drives it
// with fixed-size time slices and hands snapshots to a renderer.
package world

import "github.com/vovakirdan/tui-platformer/internal/core"

// Kind discriminates the Entity variants.
type Kind uint8

const (
	KindBlock Kind = iota
	KindPlayer
	KindHazard
	KindPickup
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindBlock:
		return "block"
	case KindPlayer:
		return "player"
	case KindHazard:
		return "hazard"
	case KindPickup:
		return "pickup"
	default:
		return "unknown"
	}
}

// HazardKind selects lava behavior.
type HazardKind uint8

const (
	HazardStationary HazardKind = iota
	HazardVertical              // oscillates up and down around its anchor
	HazardHorizontal            // oscillates left and right around its anchor
	HazardDrip                  // falls under gravity, respawns at its anchor
)

// Facing is the player's last horizontal run direction.
type Facing int8

const (
	FacingNone  Facing = 0
	FacingLeft  Facing = -1
	FacingRight Facing = 1
)

// PlayerState is the payload carried only by KindPlayer entities.
type PlayerState struct {
	Jumping      bool
	Falling      bool
	JumpVelocity core.Vec2 // Upward speed of the current jump; reset to Velocity on landing
	FallVelocity core.Vec2 // Downward speed of the current fall; zero when grounded
	Health       int
	Facing       Facing
}

// Dead reports whether the player has run out of health.
func (p PlayerState) Dead() bool {
	return p.Health == 0
}

// Entity is the single tagged-union type for everything in a level.
// Shared geometry lives in the envelope; behavior switches on Kind.
// All vectors are values, so copies of an Entity never alias.
type Entity struct {
	Kind  Kind
	Glyph rune
	Color core.Color

	Position core.Vec2
	Velocity core.Vec2
	Size     core.Vec2

	// Oscillators and drips return to or swing around these.
	BasePosition core.Vec2
	BaseVelocity core.Vec2
	Direction    float64 // -1 or +1

	Hazard HazardKind
	Player PlayerState
}

// Rect returns the entity's bounding box.
func (e *Entity) Rect() core.Rect {
	return core.RectAt(e.Position, e.Size)
}

// Oscillates reports whether the entity swings around its anchor.
func (e *Entity) Oscillates() bool {
	switch e.Kind {
	case KindPickup:
		return true
	case KindHazard:
		return e.Hazard == HazardVertical || e.Hazard == HazardHorizontal
	}
	return false
}
