package world

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levels"
)

// World owns every level of a pack and the physics they run with.
//
// The current level index is only changed through SetIndex, which the
// loop driver calls when a level is won; World never changes it itself.
type World struct {
	cfg        config.PlatformerConfig
	difficulty *config.DifficultyManager
	seed       int64
	levels     []*Level
	index      int
}

// New builds every level from its source.
func New(sources []levels.Source, cfg config.PlatformerConfig, seed int64) (*World, error) {
	w := &World{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		seed:       seed,
	}
	if err := w.Replace(sources); err != nil {
		return nil, err
	}
	return w, nil
}

// Replace swaps in a new set of level sources, rebuilding all of them.
// The current index is kept when it is still in range.
func (w *World) Replace(sources []levels.Source) error {
	if len(sources) == 0 {
		return errors.New("world: no levels")
	}

	built := make([]*Level, len(sources))
	for i, src := range sources {
		lvl, err := BuildLevel(src, w.PhysicsFor(i), w.levelSeed(i))
		if err != nil {
			return err
		}
		built[i] = lvl
	}

	w.levels = built
	if w.index >= len(built) {
		w.index = 0
	}
	return nil
}

// PhysicsFor returns the constants for the level at index i, with hazard
// speeds scaled by difficulty progression.
func (w *World) PhysicsFor(i int) Physics {
	phys := PhysicsFrom(w.cfg)
	phys.OscillatorSpeed = w.difficulty.Speed(phys.OscillatorSpeed, i)
	phys.DripSpeed = w.difficulty.Speed(phys.DripSpeed, i)
	return phys
}

func (w *World) levelSeed(i int) int64 {
	return w.seed + int64(i)
}

// Advance runs one physics step on the current level.
func (w *World) Advance(in core.ControlState, dt float64) Outcome {
	return Step(w.Level(), w.PhysicsFor(w.index), in, dt)
}

// Preview returns the current level advanced by dt without committing it.
func (w *World) Preview(in core.ControlState, dt float64) *Level {
	return PreviewAdvance(w.Level(), w.PhysicsFor(w.index), in, dt)
}

// Rebuild replaces the current level with a fresh build of its plan,
// discarding oscillator phase, damage and collected pickups.
func (w *World) Rebuild() error {
	cur := w.Level()
	src := levels.Source{ID: cur.ID, Name: cur.Name, Plan: cur.SourcePlan}
	lvl, err := BuildLevel(src, w.PhysicsFor(w.index), w.levelSeed(w.index))
	if err != nil {
		return fmt.Errorf("world: rebuild: %w", err)
	}
	w.levels[w.index] = lvl
	return nil
}

// Level returns the current level.
func (w *World) Level() *Level {
	return w.levels[w.index]
}

// LevelAt returns the level at index i.
func (w *World) LevelAt(i int) *Level {
	return w.levels[i]
}

// Index returns the current level index.
func (w *World) Index() int {
	return w.index
}

// SetIndex selects the current level. Out-of-range indices are a caller
// error and are not checked.
func (w *World) SetIndex(i int) {
	w.index = i
}

// Count returns the number of levels.
func (w *World) Count() int {
	return len(w.levels)
}

// Gravity returns the world's gravity in cells per second squared.
func (w *World) Gravity() float64 {
	return w.cfg.Physics.Gravity
}
