package world

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

type axis int

const (
	axisX axis = iota
	axisY
)

func (a axis) get(v core.Vec2) float64 {
	if a == axisX {
		return v.X
	}
	return v.Y
}

func (a axis) set(v *core.Vec2, val float64) {
	if a == axisX {
		v.X = val
	} else {
		v.Y = val
	}
}

// oscillate moves e along one axis and keeps it within limit of its anchor,
// flipping direction at either end. If the move ends inside geometry or
// outside the level, e snaps back to the grid line it came from and turns
// around.
func (l *Level) oscillate(e *Entity, ax axis, limit, dt float64) {
	dir := e.Direction
	base := ax.get(e.BasePosition)
	lo, hi := base-limit, base+limit

	pos := ax.get(e.Position) + ax.get(e.Velocity)*dir*dt
	switch {
	case pos > hi:
		pos = hi
		e.Direction = -1
	case pos < lo:
		pos = lo
		e.Direction = 1
	}
	ax.set(&e.Position, pos)

	if r := e.Rect(); !l.outside(r) && !l.blocked(r) {
		return
	}

	if dir > 0 {
		pos = math.Floor(pos)
	} else {
		pos = math.Ceil(pos)
	}
	ax.set(&e.Position, core.ClampF(pos, lo, hi))
	e.Direction = -dir
}
