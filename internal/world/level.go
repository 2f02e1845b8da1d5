package world

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levels"
)

// restProbe is how far below the player's feet support is looked for.
const restProbe = 1e-6

// Physics holds the constants one level is simulated with.
type Physics struct {
	Gravity float64

	PlayerSize core.Vec2
	RunSpeed   float64
	JumpSpeed  float64
	Health     int

	OscillatorSpeed float64
	HazardTravel    float64
	DripSpeed       float64

	PickupSize   float64
	WobbleSpeed  float64
	PickupTravel float64
}

// PhysicsFrom converts a config into simulation constants.
func PhysicsFrom(cfg config.PlatformerConfig) Physics {
	return Physics{
		Gravity:         cfg.Physics.Gravity,
		PlayerSize:      core.V(cfg.Player.Width, cfg.Player.Height),
		RunSpeed:        cfg.Player.RunSpeed,
		JumpSpeed:       cfg.Player.JumpSpeed,
		Health:          cfg.Player.Health,
		OscillatorSpeed: cfg.Hazards.OscillatorSpeed,
		HazardTravel:    cfg.Hazards.TravelLimit,
		DripSpeed:       cfg.Hazards.DripSpeed,
		PickupSize:      cfg.Pickups.Size,
		WobbleSpeed:     cfg.Pickups.WobbleSpeed,
		PickupTravel:    cfg.Pickups.TravelLimit,
	}
}

// Level is one playable grid: static geometry plus moving actors.
type Level struct {
	ID         string
	Name       string
	Rows       int
	Columns    int
	Map        []Entity // Static blocks, never mutated after build
	Actors     []Entity // Player, hazards and pickups
	SourcePlan string   // Plan text the level was built from
}

// BuildLevel parses a plan and spawns its entities.
//
// Initial oscillator directions are drawn from a source seeded with seed,
// so building the same plan with the same seed always yields the same level.
// Exactly one '@' is expected; other counts are not checked here
// (see levels.Validate).
func BuildLevel(src levels.Source, phys Physics, seed int64) (*Level, error) {
	plan, err := levels.Parse(src.Plan)
	if err != nil {
		return nil, fmt.Errorf("world: level %s: %w", src.ID, err)
	}

	rng := rand.New(rand.NewSource(seed))
	randomDirection := func() float64 {
		if rng.Intn(2) == 0 {
			return -1
		}
		return 1
	}

	lvl := &Level{
		ID:         src.ID,
		Name:       src.Name,
		Rows:       plan.Rows,
		Columns:    plan.Columns,
		SourcePlan: src.Plan,
	}

	for _, c := range plan.Cells() {
		cell := core.V(float64(c.X), float64(c.Y))

		switch c.Glyph {
		case levels.GlyphBlock:
			lvl.Map = append(lvl.Map, Entity{
				Kind:         KindBlock,
				Glyph:        c.Glyph,
				Color:        core.ColorWhite,
				Position:     cell,
				BasePosition: cell,
				Size:         core.V(1, 1),
			})

		case levels.GlyphPlayer:
			// Feet rest on the bottom of the spawn cell
			pos := core.V(cell.X, cell.Y+1-phys.PlayerSize.Y)
			vel := core.V(phys.RunSpeed, phys.JumpSpeed)
			lvl.Actors = append(lvl.Actors, Entity{
				Kind:         KindPlayer,
				Glyph:        c.Glyph,
				Color:        core.ColorBlue,
				Position:     pos,
				BasePosition: pos,
				Velocity:     vel,
				BaseVelocity: vel,
				Size:         phys.PlayerSize,
				Direction:    1,
				Player: PlayerState{
					JumpVelocity: vel,
					Health:       phys.Health,
				},
			})

		case levels.GlyphCoin:
			inset := (1 - phys.PickupSize) / 2
			pos := core.V(cell.X+inset, cell.Y+inset)
			vel := core.V(0, phys.WobbleSpeed)
			lvl.Actors = append(lvl.Actors, Entity{
				Kind:         KindPickup,
				Glyph:        c.Glyph,
				Color:        core.ColorYellow,
				Position:     pos,
				BasePosition: pos,
				Velocity:     vel,
				BaseVelocity: vel,
				Size:         core.V(phys.PickupSize, phys.PickupSize),
				Direction:    randomDirection(),
			})

		case levels.GlyphLava, levels.GlyphLavaBounce, levels.GlyphLavaSlide, levels.GlyphLavaDrip:
			e := Entity{
				Kind:         KindHazard,
				Glyph:        c.Glyph,
				Color:        core.ColorOrange,
				Position:     cell,
				BasePosition: cell,
				Size:         core.V(1, 1),
				Direction:    1,
			}
			switch c.Glyph {
			case levels.GlyphLava:
				e.Hazard = HazardStationary
			case levels.GlyphLavaBounce:
				e.Hazard = HazardVertical
				e.Velocity = core.V(0, phys.OscillatorSpeed)
				e.Direction = randomDirection()
			case levels.GlyphLavaSlide:
				e.Hazard = HazardHorizontal
				e.Velocity = core.V(phys.OscillatorSpeed, 0)
				e.Direction = randomDirection()
			case levels.GlyphLavaDrip:
				e.Hazard = HazardDrip
				e.Color = core.ColorRed
				e.Velocity = core.V(0, phys.DripSpeed)
			}
			e.BaseVelocity = e.Velocity
			lvl.Actors = append(lvl.Actors, e)
		}
	}

	// A player spawned in mid-air starts falling straight away.
	if p := lvl.Player(); p != nil && !lvl.resting(p) {
		p.Player.Falling = true
	}

	return lvl, nil
}

// Clone returns a deep copy sharing no mutable state with l.
func (l *Level) Clone() *Level {
	clone := *l
	clone.Map = append([]Entity(nil), l.Map...)
	clone.Actors = append([]Entity(nil), l.Actors...)
	return &clone
}

// Player returns the level's player, or nil if the plan had none.
// The pointer is invalidated when pickups are removed.
func (l *Level) Player() *Entity {
	for i := range l.Actors {
		if l.Actors[i].Kind == KindPlayer {
			return &l.Actors[i]
		}
	}
	return nil
}

// Pickups returns copies of the remaining pickups.
func (l *Level) Pickups() []Entity {
	return l.actorsOf(KindPickup)
}

// Hazards returns copies of all hazards.
func (l *Level) Hazards() []Entity {
	return l.actorsOf(KindHazard)
}

// PickupsLeft counts remaining pickups.
func (l *Level) PickupsLeft() int {
	n := 0
	for i := range l.Actors {
		if l.Actors[i].Kind == KindPickup {
			n++
		}
	}
	return n
}

func (l *Level) actorsOf(k Kind) []Entity {
	var out []Entity
	for _, a := range l.Actors {
		if a.Kind == k {
			out = append(out, a)
		}
	}
	return out
}

// outside reports whether r leaves the level bounds.
func (l *Level) outside(r core.Rect) bool {
	return !r.Inside(float64(l.Columns), float64(l.Rows))
}

// blocked reports whether r overlaps any static block.
func (l *Level) blocked(r core.Rect) bool {
	for i := range l.Map {
		if r.Intersects(l.Map[i].Rect()) {
			return true
		}
	}
	return false
}

// resting reports whether e stands on a block or on the level floor.
func (l *Level) resting(e *Entity) bool {
	r := e.Rect()
	if r.Bottom() >= float64(l.Rows) {
		return true
	}
	return l.blocked(r.Translate(0, restProbe))
}
