// Package loop drives a world.World in real time.
//
// The Driver turns scheduler timestamps into fixed-size physics steps,
// tracks the idle/playing/won/lost state machine and hands the renderer a
// snapshot of the committed level advanced by the leftover sub-step time.
// It never blocks; all timing comes from an injected Scheduler.
package loop

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/world"
)

// Default timing.
const (
	DefaultFixedStep  = 10 * time.Millisecond
	DefaultStallLimit = 500 * time.Millisecond
)

// State is the driver's play state.
type State int

const (
	Idle State = iota
	Playing
	Won
	Lost
)

// String returns a human-readable state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// FrameFunc is called by a Scheduler with the current time.
type FrameFunc func(now time.Duration)

// Scheduler delivers frame callbacks. Callbacks must be serialized: at most
// one runs at a time and never concurrently with other driver calls.
type Scheduler interface {
	// Now returns a monotonic timestamp.
	Now() time.Duration
	// RequestFrame schedules fn to run once at some later time.
	RequestFrame(fn FrameFunc)
}

// Renderer receives one snapshot per sample. It must not retain it.
type Renderer interface {
	Render(snap world.Snapshot)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(snap world.Snapshot)

// Render calls f(snap).
func (f RenderFunc) Render(snap world.Snapshot) { f(snap) }

// Option configures a Driver.
type Option func(*Driver)

// WithFixedStep sets the simulation step.
func WithFixedStep(step time.Duration) Option {
	return func(d *Driver) {
		if step > 0 {
			d.step = step
		}
	}
}

// WithStallLimit sets the largest elapsed time a single sample may
// simulate. Anything longer is treated as a stall and simulates nothing.
func WithStallLimit(limit time.Duration) Option {
	return func(d *Driver) {
		if limit > 0 {
			d.stallLimit = limit
		}
	}
}

// WithLogger sets the logger for state transitions.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// Driver runs the fixed-step loop for one World.
type Driver struct {
	world    *world.World
	sched    Scheduler
	renderer Renderer
	logger   *log.Logger

	step       time.Duration
	stallLimit time.Duration

	state    State
	controls core.ControlState
	last     time.Duration // timestamp of the last processed sample
	acc      time.Duration // unsimulated time, always < step after a sample
	steps    uint64
}

// New creates an idle driver. renderer may be nil.
func New(w *world.World, sched Scheduler, renderer Renderer, opts ...Option) *Driver {
	d := &Driver{
		world:      w,
		sched:      sched,
		renderer:   renderer,
		logger:     log.New(io.Discard),
		step:       DefaultFixedStep,
		stallLimit: DefaultStallLimit,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start enters the playing state from any other state and requests the
// first sample. Starting an already playing driver does nothing.
func (d *Driver) Start() {
	if d.state == Playing {
		return
	}

	d.setState(Playing)
	d.last = d.sched.Now()
	d.acc = 0
	d.sched.RequestFrame(d.Sample)
}

// Sample is the scheduler callback. It simulates the time elapsed since the
// previous sample in fixed steps, renders a preview of the remainder and
// requests the next sample while the level is still being played.
func (d *Driver) Sample(now time.Duration) {
	if d.state != Playing {
		d.controls.ReleaseAll()
		return
	}

	elapsed := now - d.last
	d.last = now
	if elapsed > d.stallLimit || elapsed < 0 {
		d.logger.Debug("stall absorbed", "elapsed", elapsed)
		elapsed = 0
	}
	d.acc += elapsed

	// Input is read once per sample.
	in := d.controls.Clone()
	for d.acc >= d.step {
		out := d.world.Advance(in, d.step.Seconds())
		d.acc -= d.step
		d.steps++

		if out != world.Continuing {
			d.finish(out)
			return
		}
	}

	d.render(d.world.Preview(in, d.acc.Seconds()))
	d.sched.RequestFrame(d.Sample)
}

// finish ends the attempt. The final committed frame is rendered, then the
// level is rebuilt from its plan so the next Start begins fresh.
func (d *Driver) finish(out world.Outcome) {
	next := Lost
	if out == world.Won {
		next = Won
	}

	lvl := d.world.Level()
	d.render(lvl)
	d.setState(next)
	d.logger.Info("level finished", "level", lvl.ID, "outcome", out, "steps", d.steps)

	if err := d.world.Rebuild(); err != nil {
		d.logger.Error("rebuild failed", "level", lvl.ID, "err", err)
	}
	d.acc = 0
	d.controls.ReleaseAll()
}

func (d *Driver) render(lvl *world.Level) {
	if d.renderer == nil {
		return
	}
	d.renderer.Render(lvl.Snapshot())
}

func (d *Driver) setState(s State) {
	if s == d.state {
		return
	}
	d.logger.Debug("state change", "from", d.state, "to", s, "level", d.world.Index())
	d.state = s
}

// UpdateControl records a press or release of a named control.
// Unknown names return core.ErrUnknownControl and change nothing.
// Updates outside the playing state are ignored.
func (d *Driver) UpdateControl(name string, pressed bool) error {
	c, ok := core.ParseControl(name)
	if !ok {
		return fmt.Errorf("%w: %q", core.ErrUnknownControl, name)
	}
	if d.state != Playing {
		return nil
	}
	d.controls.Set(c, pressed)
	return nil
}

// SetControlValue is UpdateControl for untyped input such as decoded
// scripts. A value that is not a bool fails with core.ErrInvalidInput.
func (d *Driver) SetControlValue(name string, v any) error {
	pressed, err := core.ParseHeld(v)
	if err != nil {
		return err
	}
	return d.UpdateControl(name, pressed)
}

// AdvanceLevel moves to the next level. The caller must check that one
// exists; see World.Count.
func (d *Driver) AdvanceLevel() {
	next := d.world.Index() + 1
	d.world.SetIndex(next)
	d.logger.Info("advance level", "index", next)
}

// SelectLevel jumps to level i, e.g. to replay a pack from the start.
// Like AdvanceLevel it does not check the index. It is ignored while
// playing.
func (d *Driver) SelectLevel(i int) {
	if d.state == Playing {
		return
	}
	d.world.SetIndex(i)
	d.logger.Info("select level", "index", i)
}

// Render draws the current committed level without simulating.
func (d *Driver) Render() {
	d.render(d.world.Level())
}

// State returns the current play state.
func (d *Driver) State() State { return d.state }

// Controls returns a copy of the held controls.
func (d *Driver) Controls() core.ControlState { return d.controls.Clone() }

// World returns the driven world.
func (d *Driver) World() *world.World { return d.world }

// Steps returns the number of fixed steps committed so far.
func (d *Driver) Steps() uint64 { return d.steps }

// FixedStep returns the simulation step.
func (d *Driver) FixedStep() time.Duration { return d.step }
