// Package render draws world snapshots into a core.Screen.
// It is the display side of the loop: the driver hands it a snapshot,
// the platform layer turns the screen into terminal output.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/world"
)

// Options control how level cells map onto screen cells.
type Options struct {
	CellWidth int  // screen columns per level cell; 2 keeps cells roughly square
	ASCII     bool // draw plan glyphs instead of block characters
	HUD       bool // status line above the level
	Border    bool // box around the level view
}

// DefaultOptions returns the terminal play settings.
func DefaultOptions() Options {
	return Options{CellWidth: 2, HUD: true, Border: true}
}

// PlainOptions returns settings whose output reads like a level plan.
func PlainOptions() Options {
	return Options{CellWidth: 1, ASCII: true}
}

// Size returns the screen size that shows all of snap without scrolling.
func Size(snap world.Snapshot, opt Options) (w, h int) {
	w = snap.Columns * cellWidth(opt)
	h = snap.Rows
	if opt.Border {
		w += 2
		h += 2
	}
	if opt.HUD {
		h++
	}
	return w, h
}

// Frame renders snap at its natural size and returns the plain text.
func Frame(snap world.Snapshot, opt Options) string {
	w, h := Size(snap, opt)
	screen := core.NewScreen(w, h)
	var cam Camera
	Draw(screen, snap, &cam, opt)
	return screen.String()
}

// Camera is the scroll position of the level view, in level cells.
type Camera struct {
	Left, Top float64
}

// Follow scrolls so the player stays at least a third of the view away
// from each edge, without scrolling past the level.
func (c *Camera) Follow(snap world.Snapshot, viewW, viewH float64) {
	if snap.Player != nil {
		p := snap.Player
		cx := p.Position.X + p.Size.X/2
		cy := p.Position.Y + p.Size.Y/2
		c.Left = follow(c.Left, cx, viewW)
		c.Top = follow(c.Top, cy, viewH)
	}
	c.Left = core.ClampF(c.Left, 0, math.Max(0, float64(snap.Columns)-viewW))
	c.Top = core.ClampF(c.Top, 0, math.Max(0, float64(snap.Rows)-viewH))
}

func follow(start, center, view float64) float64 {
	margin := view / 3
	switch {
	case center < start+margin:
		return center - margin
	case center > start+view-margin:
		return center + margin - view
	}
	return start
}

// Draw clears dst and renders snap into it, scrolling cam as needed.
func Draw(dst *core.Screen, snap world.Snapshot, cam *Camera, opt Options) {
	dst.Clear()
	cw := cellWidth(opt)

	x, y, w, h := 0, 0, dst.Width(), dst.Height()
	if opt.HUD {
		drawHUD(dst, snap)
		y++
		h--
	}
	if opt.Border {
		dst.DrawBox(x, y, w, h)
		x, y, w, h = x+1, y+1, w-2, h-2
	}
	if w <= 0 || h <= 0 {
		return
	}

	// Center levels smaller than the view
	if lw := snap.Columns * cw; lw < w {
		x += (w - lw) / 2
		w = lw
	}
	if snap.Rows < h {
		y += (h - snap.Rows) / 2
		h = snap.Rows
	}

	cam.Follow(snap, float64(w)/float64(cw), float64(h))

	v := view{dst: dst, x: x, y: y, w: w, h: h, cw: cw, cam: *cam, ascii: opt.ASCII}
	v.fill(background(opt))

	for _, d := range snap.Map {
		v.draw(d)
	}
	for _, d := range snap.Actors {
		if d.Kind != world.KindPlayer {
			v.draw(d)
		}
	}
	// Player on top
	if snap.Player != nil {
		v.draw(*snap.Player)
	}
}

// view maps level coordinates into a clipped screen region.
type view struct {
	dst        *core.Screen
	x, y, w, h int
	cw         int
	cam        Camera
	ascii      bool
}

func (v view) fill(c core.Cell) {
	v.dst.FillRect(v.x, v.y, v.w, v.h, c)
}

func (v view) draw(d world.Drawable) {
	x0 := int(math.Round((d.Position.X - v.cam.Left) * float64(v.cw)))
	x1 := int(math.Round((d.Position.X + d.Size.X - v.cam.Left) * float64(v.cw)))
	y0 := int(math.Round(d.Position.Y - v.cam.Top))
	y1 := int(math.Round(d.Position.Y + d.Size.Y - v.cam.Top))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	x0, x1 = core.Clamp(x0, 0, v.w), core.Clamp(x1, 0, v.w)
	y0, y1 = core.Clamp(y0, 0, v.h), core.Clamp(y1, 0, v.h)

	v.dst.FillRect(v.x+x0, v.y+y0, x1-x0, y1-y0, core.Cell{Rune: v.glyph(d), Color: d.Color})
}

func (v view) glyph(d world.Drawable) rune {
	if v.ascii {
		return d.Glyph
	}
	switch d.Kind {
	case world.KindBlock, world.KindPlayer:
		return '█'
	case world.KindPickup:
		return '●'
	case world.KindHazard:
		return '▒'
	}
	return '?'
}

func background(opt Options) core.Cell {
	if opt.ASCII {
		return core.Cell{Rune: '.', Color: core.ColorGray}
	}
	return core.Cell{Rune: ' '}
}

func drawHUD(dst *core.Screen, snap world.Snapshot) {
	name := snap.LevelID
	if snap.LevelName != "" {
		name += " " + snap.LevelName
	}
	hearts := strings.Repeat("♥", core.Max(snap.Health, 0))
	dst.DrawText(0, 0, fmt.Sprintf("Level %s  Health %s  Coins %d", name, hearts, snap.PickupsLeft))
	for x := 0; x < dst.Width(); x++ {
		c := dst.GetCell(x, 0)
		if c.Rune == '♥' {
			dst.SetCell(x, 0, core.Cell{Rune: c.Rune, Color: core.ColorRed})
		}
	}
}

func cellWidth(opt Options) int {
	if opt.CellWidth < 1 {
		return 1
	}
	return opt.CellWidth
}
