package levels

import (
	"errors"
	"fmt"
)

// ValidationError contains details about a plan problem.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Player body in cells. A standing player covers the '@' cell and the
// cells above it.
const (
	BodyColumns = 1
	BodyRows    = 2
)

// Validate reports every problem found in a plan.
// The simulation itself does not guard against these: a plan with zero or
// several '@' cells has undefined behavior, so loaders are expected to call
// Validate before handing plans to the world.
func Validate(p *Plan) error {
	var errs []error

	switch n := p.Count(GlyphPlayer); {
	case n == 0:
		errs = append(errs, ValidationError{Code: "NO_SPAWN", Message: "plan has no '@' player spawn"})
	case n > 1:
		errs = append(errs, ValidationError{
			Code:    "MULTIPLE_SPAWNS",
			Message: fmt.Sprintf("plan has %d '@' player spawns, expected exactly one", n),
		})
	}

	errs = append(errs, spawnErrors(p)...)

	if p.Count(GlyphCoin) == 0 {
		errs = append(errs, ValidationError{Code: "NO_COINS", Message: "plan has no 'o' coins; it would be won immediately"})
	}

	for y, row := range p.Grid {
		if len(row) != p.Columns {
			errs = append(errs, ValidationError{
				Code:    "RAGGED_ROW",
				Message: fmt.Sprintf("row %d has %d columns, expected %d", y, len(row), p.Columns),
			})
		}
		for x, g := range row {
			if !KnownGlyph(g) {
				errs = append(errs, ValidationError{
					Code:    "UNKNOWN_GLYPH",
					Message: fmt.Sprintf("unknown glyph %q at (%d, %d)", g, x, y),
				})
			}
		}
	}

	return errors.Join(errs...)
}

// spawnErrors reports '@' cells whose player body would start outside the
// level or inside a block. Such a player can never move.
func spawnErrors(p *Plan) []error {
	var errs []error
	for _, c := range p.Cells() {
		if c.Glyph != GlyphPlayer {
			continue
		}
		if err := checkSpawn(p, c); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func checkSpawn(p *Plan, c Cell) error {
	for y := c.Y - BodyRows + 1; y <= c.Y; y++ {
		for x := c.X; x < c.X+BodyColumns; x++ {
			if y < 0 || x >= len(p.Grid[y]) {
				return ValidationError{
					Code:    "SPAWN_BLOCKED",
					Message: fmt.Sprintf("player at (%d, %d) does not fit inside the level", c.X, c.Y),
				}
			}
			if p.Grid[y][x] == GlyphBlock {
				return ValidationError{
					Code:    "SPAWN_BLOCKED",
					Message: fmt.Sprintf("player at (%d, %d) overlaps a block at (%d, %d)", c.X, c.Y, x, y),
				}
			}
		}
	}
	return nil
}
