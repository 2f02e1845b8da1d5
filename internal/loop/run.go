package loop

import (
	"context"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// RunResult summarizes a headless run.
type RunResult struct {
	State   State         // Won once every level from the start index was cleared
	Level   int           // index of the level being played when the run ended
	Cleared int           // levels won during the run
	Elapsed time.Duration // simulated wall time
	Steps   uint64        // committed physics steps
}

// Run plays d headlessly on sched. Script events are applied when their
// time is reached, the clock advances by frame per sample, a won level
// moves on to the next one and a lost level ends the run. The run also
// stops after limit of simulated time with State Playing.
//
// Controls the script still holds when a new level starts are pressed
// again, like a key held down through the level change.
func Run(ctx context.Context, d *Driver, sched *ManualScheduler, script *Script, frame, limit time.Duration) (RunResult, error) {
	if frame <= 0 {
		return RunResult{}, fmt.Errorf("loop: frame interval must be positive, got %v", frame)
	}

	var events []ScriptEvent
	if script != nil {
		events = script.Events
	}

	origin := sched.Now()
	res := RunResult{}
	next := 0
	var scripted core.ControlState

	d.Start()
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		res.Elapsed = sched.Now() - origin
		for next < len(events) && events[next].At <= res.Elapsed {
			ev := events[next]
			if err := d.SetControlValue(ev.Control, ev.Pressed); err != nil {
				return res, fmt.Errorf("loop: event %d at %v: %w", next, ev.At, err)
			}
			c, _ := core.ParseControl(ev.Control)
			pressed, _ := core.ParseHeld(ev.Pressed)
			scripted.Set(c, pressed)
			next++
		}
		if res.Elapsed >= limit {
			break
		}

		sched.Advance(frame)

		switch d.State() {
		case Won:
			res.Cleared++
			w := d.World()
			if w.Index()+1 >= w.Count() {
				res.Elapsed = sched.Now() - origin
				return finishRun(res, d), nil
			}
			d.AdvanceLevel()
			d.Start()
			for _, c := range core.Controls {
				if scripted.Held(c) {
					_ = d.UpdateControl(c.String(), true)
				}
			}
		case Lost:
			res.Elapsed = sched.Now() - origin
			return finishRun(res, d), nil
		}
	}

	return finishRun(res, d), nil
}

func finishRun(res RunResult, d *Driver) RunResult {
	res.State = d.State()
	res.Level = d.World().Index()
	res.Steps = d.Steps()
	return res
}
