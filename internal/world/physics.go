package world

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Outcome is the per-step result of the simulation.
type Outcome int

const (
	Continuing Outcome = iota
	Lost
	Won
)

// String returns a human-readable outcome.
func (o Outcome) String() string {
	switch o {
	case Continuing:
		return "continuing"
	case Lost:
		return "lost"
	case Won:
		return "won"
	default:
		return "unknown"
	}
}

// Step advances lvl by dt seconds with the given controls held.
// dt must not be negative; a zero step moves nothing but still applies
// damage and reports the outcome.
//
// Order: player run, ledge detection, jump or fall, hazard motion with
// wall correction, pickups, damage, outcome.
func Step(lvl *Level, phys Physics, in core.ControlState, dt float64) Outcome {
	if p := lvl.Player(); p != nil {
		lvl.runPlayer(p, in, dt)
		lvl.detectLedge(p, in)
		lvl.jumpOrFall(p, in, phys.Gravity, dt)
	}

	lvl.moveHazards(phys, dt)
	lvl.updatePickups(phys, dt)

	// Pickup removal reshuffles Actors, so look the player up again.
	p := lvl.Player()
	if p != nil {
		lvl.applyDamage(p)
		if p.Player.Dead() {
			return Lost
		}
	}

	if lvl.PickupsLeft() == 0 {
		return Won
	}
	return Continuing
}

// PreviewAdvance returns a copy of lvl advanced by dt.
// lvl itself is left untouched; the result is for display only.
func PreviewAdvance(lvl *Level, phys Physics, in core.ControlState, dt float64) *Level {
	preview := lvl.Clone()
	Step(preview, phys, in, dt)
	return preview
}

// runPlayer moves the player horizontally. A move that hits geometry or
// leaves the level is undone by the opposite displacement rather than
// clamped, which keeps sub-cell alignment.
func (l *Level) runPlayer(p *Entity, in core.ControlState, dt float64) {
	if in.Held(core.ControlLeft) {
		l.tryRun(p, FacingLeft, dt)
	}
	if in.Held(core.ControlRight) {
		l.tryRun(p, FacingRight, dt)
	}
}

func (l *Level) tryRun(p *Entity, dir Facing, dt float64) {
	p.Player.Facing = dir
	dx := p.Velocity.X * float64(dir) * dt
	p.Position.X += dx
	if r := p.Rect(); l.outside(r) || l.blocked(r) {
		p.Position.X -= dx
	}
}

// detectLedge starts a fall when the player walked off an edge.
func (l *Level) detectLedge(p *Entity, in core.ControlState) {
	ps := &p.Player
	if ps.Jumping || ps.Falling || !in.AnyHeldExcept(core.ControlUp) {
		return
	}
	if !l.resting(p) {
		ps.Falling = true
		ps.FallVelocity = core.Vec2{}
	}
}

func (l *Level) jumpOrFall(p *Entity, in core.ControlState, gravity, dt float64) {
	ps := &p.Player

	switch {
	case (in.Held(core.ControlUp) || ps.Jumping) && !ps.Falling:
		ps.Jumping = true
		p.Position.Y -= ps.JumpVelocity.Y * dt
		ps.JumpVelocity.Y -= gravity * dt

		r := p.Rect()
		out, hit := l.outside(r), l.blocked(r)
		if !out && !hit && ps.JumpVelocity.Y > 0 {
			return
		}

		ps.Jumping = false
		ps.Falling = true
		ps.JumpVelocity.Y = 0
		ps.FallVelocity = core.Vec2{}
		switch {
		case out:
			p.Position.Y = 0
		case hit:
			// Head hit a block: drop flush below it
			p.Position.Y = math.Ceil(p.Position.Y)
		}

	case ps.Falling:
		p.Position.Y += ps.FallVelocity.Y * dt
		ps.FallVelocity.Y += gravity * dt

		r := p.Rect()
		if !l.outside(r) && !l.blocked(r) {
			return
		}

		// Feet on the grid line just crossed
		p.Position.Y = math.Floor(r.Bottom()) - p.Size.Y
		ps.Falling = false
		ps.FallVelocity = core.Vec2{}
		ps.JumpVelocity = p.Velocity
	}
}

// moveHazards advances oscillators and drips.
func (l *Level) moveHazards(phys Physics, dt float64) {
	for i := range l.Actors {
		e := &l.Actors[i]
		if e.Kind != KindHazard {
			continue
		}

		switch e.Hazard {
		case HazardHorizontal:
			l.oscillate(e, axisX, phys.HazardTravel, dt)
		case HazardVertical:
			l.oscillate(e, axisY, phys.HazardTravel, dt)
		case HazardDrip:
			l.drip(e, phys.Gravity, dt)
		}
	}
}

// drip falls like the player does and respawns at its anchor instead of
// bouncing when it lands or leaves the level.
func (l *Level) drip(e *Entity, gravity, dt float64) {
	e.Position.Y += e.Velocity.Y * dt
	e.Velocity.Y += gravity * dt

	if r := e.Rect(); l.outside(r) || l.blocked(r) {
		e.Position = e.BasePosition
		e.Velocity = e.BaseVelocity
	}
}

// updatePickups wobbles every pickup and removes those touched by the
// player or by any hazard.
func (l *Level) updatePickups(phys Physics, dt float64) {
	var player core.Rect
	hasPlayer := false
	var hazards []core.Rect

	for i := range l.Actors {
		e := &l.Actors[i]
		switch e.Kind {
		case KindPickup:
			l.oscillate(e, axisY, phys.PickupTravel, dt)
		case KindPlayer:
			player, hasPlayer = e.Rect(), true
		case KindHazard:
			hazards = append(hazards, e.Rect())
		}
	}

	kept := make([]Entity, 0, len(l.Actors))
	for _, e := range l.Actors {
		if e.Kind == KindPickup && touched(e.Rect(), player, hasPlayer, hazards) {
			continue
		}
		kept = append(kept, e)
	}
	l.Actors = kept
}

func touched(r, player core.Rect, hasPlayer bool, hazards []core.Rect) bool {
	if hasPlayer && r.Intersects(player) {
		return true
	}
	for _, h := range hazards {
		if r.Intersects(h) {
			return true
		}
	}
	return false
}

// applyDamage costs one health per overlapping hazard, every step.
// There is no invulnerability window.
func (l *Level) applyDamage(p *Entity) {
	r := p.Rect()
	for i := range l.Actors {
		e := &l.Actors[i]
		if e.Kind != KindHazard || !r.Intersects(e.Rect()) {
			continue
		}
		if p.Player.Health > 0 {
			p.Player.Health--
		}
	}
}
