package world

import "github.com/vovakirdan/tui-platformer/internal/core"

// Drawable is the read-only geometry of one entity handed to renderers.
type Drawable struct {
	Position core.Vec2
	Size     core.Vec2
	Color    core.Color
	Glyph    rune
	Kind     Kind
}

// Snapshot is what a renderer receives for one draw. It shares no memory
// with the level it was taken from.
type Snapshot struct {
	Rows    int
	Columns int
	Player  *Drawable // nil when the level has no player
	Map     []Drawable
	Actors  []Drawable

	// HUD data
	LevelID     string
	LevelName   string
	Health      int
	PickupsLeft int
}

// Snapshot captures the current level for display.
func (l *Level) Snapshot() Snapshot {
	snap := Snapshot{
		Rows:        l.Rows,
		Columns:     l.Columns,
		Map:         make([]Drawable, len(l.Map)),
		Actors:      make([]Drawable, 0, len(l.Actors)),
		LevelID:     l.ID,
		LevelName:   l.Name,
		PickupsLeft: l.PickupsLeft(),
	}

	for i := range l.Map {
		snap.Map[i] = drawableOf(&l.Map[i])
	}
	for i := range l.Actors {
		a := &l.Actors[i]
		d := drawableOf(a)
		snap.Actors = append(snap.Actors, d)
		if a.Kind == KindPlayer {
			snap.Player = &d
			snap.Health = a.Player.Health
		}
	}

	return snap
}

func drawableOf(e *Entity) Drawable {
	return Drawable{
		Position: e.Position,
		Size:     e.Size,
		Color:    e.Color,
		Glyph:    e.Glyph,
		Kind:     e.Kind,
	}
}
