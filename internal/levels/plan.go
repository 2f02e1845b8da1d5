// Package levels turns textual level plans into grid cells and loads
// plans from YAML level packs. It knows nothing about physics; the world
// package consumes the parsed cells.
package levels

import (
	"errors"
	"strings"
	"unicode"
)

// Plan legend.
const (
	GlyphEmpty      = '.'
	GlyphBlock      = '#'
	GlyphPlayer     = '@'
	GlyphCoin       = 'o'
	GlyphLava       = '+'
	GlyphLavaDrip   = 'v'
	GlyphLavaBounce = '|'
	GlyphLavaSlide  = '='
)

// ErrEmptyPlan is returned for plans without any rows.
var ErrEmptyPlan = errors.New("levels: empty plan")

// Cell is a non-empty grid position in a plan.
type Cell struct {
	X, Y  int
	Glyph rune
}

// Plan is a parsed level plan.
type Plan struct {
	Rows    int
	Columns int
	Grid    [][]rune // [row][col], interior spaces removed
	Source  string   // Original text, kept for deterministic rebuilds
}

// Parse turns plan text into a grid. Leading and trailing whitespace is
// trimmed and spaces inside rows are dropped, so indented multi-line
// literals parse as written. Column count is taken from the first row.
//
// Parse does not check the spawn count or glyphs; see Validate.
func Parse(text string) (*Plan, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyPlan
	}

	lines := strings.Split(trimmed, "\n")
	grid := make([][]rune, 0, len(lines))
	for _, line := range lines {
		row := make([]rune, 0, len(line))
		for _, r := range line {
			if unicode.IsSpace(r) {
				continue
			}
			row = append(row, r)
		}
		grid = append(grid, row)
	}

	return &Plan{
		Rows:    len(grid),
		Columns: len(grid[0]),
		Grid:    grid,
		Source:  text,
	}, nil
}

// Cells returns every non-empty cell in row-major order.
func (p *Plan) Cells() []Cell {
	var cells []Cell
	for y, row := range p.Grid {
		for x, g := range row {
			if g == GlyphEmpty {
				continue
			}
			cells = append(cells, Cell{X: x, Y: y, Glyph: g})
		}
	}
	return cells
}

// Count returns how many cells hold the given glyph.
func (p *Plan) Count(glyph rune) int {
	n := 0
	for _, row := range p.Grid {
		for _, g := range row {
			if g == glyph {
				n++
			}
		}
	}
	return n
}

// KnownGlyph reports whether the glyph belongs to the legend.
func KnownGlyph(g rune) bool {
	switch g {
	case GlyphEmpty, GlyphBlock, GlyphPlayer, GlyphCoin,
		GlyphLava, GlyphLavaDrip, GlyphLavaBounce, GlyphLavaSlide:
		return true
	}
	return false
}
