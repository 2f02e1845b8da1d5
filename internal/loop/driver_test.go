package loop

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/world"
)

const (
	walkPlan = "o....\n.@...\n#####"
	lavaPlan = "...o\n@+..\n####"
	coinPlan = "...\n@o.\n###"
)

type recorder struct {
	snaps []world.Snapshot
}

func (r *recorder) Render(s world.Snapshot) { r.snaps = append(r.snaps, s) }

func (r *recorder) last() world.Snapshot { return r.snaps[len(r.snaps)-1] }

func newWorld(t *testing.T, plans ...string) *world.World {
	t.Helper()
	sources := make([]levels.Source, len(plans))
	for i, p := range plans {
		sources[i] = levels.Source{ID: string(rune('a' + i)), Plan: p}
	}
	w, err := world.New(sources, config.DefaultPlatformerConfig(), 1)
	if err != nil {
		t.Fatalf("world.New failed: %v", err)
	}
	return w
}

func newDriver(t *testing.T, plans ...string) (*Driver, *ManualScheduler, *recorder) {
	t.Helper()
	sched := NewManualScheduler()
	rec := &recorder{}
	return New(newWorld(t, plans...), sched, rec), sched, rec
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Idle, "idle"},
		{Playing, "playing"},
		{Won, "won"},
		{Lost, "lost"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestStartRequestsSingleFrame(t *testing.T) {
	d, sched, _ := newDriver(t, walkPlan)

	if d.State() != Idle {
		t.Fatalf("initial state %v, expected idle", d.State())
	}

	d.Start()
	d.Start()
	if d.State() != Playing {
		t.Errorf("state %v after Start, expected playing", d.State())
	}
	if sched.Pending() != 1 {
		t.Errorf("%d frames pending, expected 1", sched.Pending())
	}
}

func TestIdleSampleReleasesControls(t *testing.T) {
	d, sched, rec := newDriver(t, walkPlan)

	if err := d.UpdateControl("right", true); err != nil {
		t.Fatal(err)
	}
	if d.Controls().Held(core.ControlRight) {
		t.Error("control update while idle should be ignored")
	}

	d.Sample(time.Second)
	if d.Steps() != 0 || sched.Pending() != 0 || len(rec.snaps) != 0 {
		t.Error("idle sample should not simulate, render or reschedule")
	}
}

func TestAccumulatorAndPreview(t *testing.T) {
	d, sched, rec := newDriver(t, walkPlan)
	startX := d.World().Level().Player().Position.X

	d.Start()
	if err := d.UpdateControl("right", true); err != nil {
		t.Fatal(err)
	}

	sched.Advance(25 * time.Millisecond)

	if d.Steps() != 2 {
		t.Fatalf("steps = %d, expected 2 full steps in 25ms", d.Steps())
	}
	committed := d.World().Level().Player().Position.X
	if math.Abs(committed-(startX+0.04)) > 1e-9 {
		t.Errorf("committed x = %v, expected %v", committed, startX+0.04)
	}
	shown := rec.last().Player.Position.X
	if math.Abs(shown-(startX+0.05)) > 1e-9 {
		t.Errorf("rendered x = %v, expected preview of remainder at %v", shown, startX+0.05)
	}

	// The 5ms remainder carries over
	sched.Advance(5 * time.Millisecond)
	if d.Steps() != 3 {
		t.Errorf("steps = %d, expected remainder to complete a third step", d.Steps())
	}
	if sched.Pending() != 1 {
		t.Errorf("%d frames pending while playing, expected 1", sched.Pending())
	}
}

func TestStallClamp(t *testing.T) {
	d, sched, _ := newDriver(t, walkPlan)
	before := d.World().Level().Clone()

	d.Start()
	if err := d.UpdateControl("right", true); err != nil {
		t.Fatal(err)
	}

	sched.Advance(600 * time.Millisecond)
	if d.Steps() != 0 {
		t.Errorf("stalled sample ran %d steps", d.Steps())
	}
	if !reflect.DeepEqual(d.World().Level(), before) {
		t.Error("stalled sample moved the level")
	}
	if d.State() != Playing || sched.Pending() != 1 {
		t.Error("stall should be absorbed without leaving the playing state")
	}

	// Exactly at the ceiling is not a stall
	sched.Advance(500 * time.Millisecond)
	if d.Steps() != 50 {
		t.Errorf("steps = %d, expected 50", d.Steps())
	}
}

func TestNegativeElapsedIgnored(t *testing.T) {
	d, sched, _ := newDriver(t, walkPlan)
	sched.Advance(100 * time.Millisecond)
	d.Start()

	d.Sample(50 * time.Millisecond)
	if d.Steps() != 0 || d.State() != Playing {
		t.Errorf("backwards timestamp simulated %d steps, state %v", d.Steps(), d.State())
	}
}

func TestLostStopsLoop(t *testing.T) {
	d, sched, rec := newDriver(t, lavaPlan)

	d.Start()
	if err := d.UpdateControl("right", true); err != nil {
		t.Fatal(err)
	}
	sched.Advance(100 * time.Millisecond)

	if d.State() != Lost {
		t.Fatalf("state %v, expected lost", d.State())
	}
	if d.Steps() != 3 {
		t.Errorf("steps = %d, expected the loop to stop at the third hit", d.Steps())
	}
	if sched.Pending() != 0 {
		t.Error("no frame should be requested after losing")
	}
	if d.Controls().String() != "none" {
		t.Error("controls should be released after losing")
	}
	if h := rec.last().Health; h != 0 {
		t.Errorf("final frame health %d, expected 0", h)
	}

	p := d.World().Level().Player()
	if p.Player.Health != 3 || p.Position.X != 0 {
		t.Error("level should be rebuilt after losing")
	}

	// Stale input is ignored until the next Start
	if err := d.UpdateControl("right", true); err != nil {
		t.Fatal(err)
	}
	if d.Controls().Held(core.ControlRight) {
		t.Error("control update after losing should be ignored")
	}

	d.Start()
	if d.State() != Playing || sched.Pending() != 1 {
		t.Error("Start should retry the lost level")
	}
}

func TestWonAdvancesLevel(t *testing.T) {
	d, sched, _ := newDriver(t, coinPlan, walkPlan)

	d.Start()
	if err := d.UpdateControl("right", true); err != nil {
		t.Fatal(err)
	}
	sched.Advance(200 * time.Millisecond)

	if d.State() != Won {
		t.Fatalf("state %v, expected won", d.State())
	}
	if d.Steps() != 13 {
		t.Errorf("steps = %d, expected 13", d.Steps())
	}
	if d.World().Level().PickupsLeft() != 1 {
		t.Error("won level should be rebuilt with its coin")
	}

	d.AdvanceLevel()
	d.Start()
	if d.World().Index() != 1 || d.State() != Playing {
		t.Errorf("expected playing level 1, got %d %v", d.World().Index(), d.State())
	}
	if d.Controls().Held(core.ControlRight) {
		t.Error("held controls must not carry into the next level")
	}
}

func TestUpdateControlValidation(t *testing.T) {
	d, _, _ := newDriver(t, walkPlan)
	d.Start()

	if err := d.UpdateControl("jump", true); !errors.Is(err, core.ErrUnknownControl) {
		t.Errorf("unknown control: got %v", err)
	}

	for _, v := range []any{1, "true", nil} {
		if err := d.SetControlValue("up", v); !errors.Is(err, core.ErrInvalidInput) {
			t.Errorf("value %#v: got %v, expected ErrInvalidInput", v, err)
		}
	}
	if d.Controls().Held(core.ControlUp) {
		t.Error("rejected input changed state")
	}

	if err := d.SetControlValue("ArrowUp", true); err != nil {
		t.Fatal(err)
	}
	if !d.Controls().Held(core.ControlUp) {
		t.Error("ArrowUp should press up")
	}
	if err := d.UpdateControl("up", false); err != nil {
		t.Fatal(err)
	}
	if d.Controls().Held(core.ControlUp) {
		t.Error("release should clear up")
	}
}

func TestOptions(t *testing.T) {
	w := newWorld(t, walkPlan)
	d := New(w, NewManualScheduler(), nil,
		WithFixedStep(20*time.Millisecond),
		WithStallLimit(time.Second),
		WithLogger(nil),
	)
	if d.FixedStep() != 20*time.Millisecond || d.stallLimit != time.Second {
		t.Errorf("options not applied: step %v stall %v", d.FixedStep(), d.stallLimit)
	}
	if d.logger == nil {
		t.Error("nil logger option should keep the default")
	}

	// Nil renderer is allowed
	d.Start()
	d.Render()
}

func TestSelectLevel(t *testing.T) {
	d, _, _ := newDriver(t, walkPlan, coinPlan)

	d.SelectLevel(1)
	if d.World().Index() != 1 {
		t.Fatalf("index = %d, expected 1", d.World().Index())
	}

	d.Start()
	d.SelectLevel(0)
	if d.World().Index() != 1 {
		t.Error("SelectLevel must not switch levels mid-play")
	}
}
