package loop

import (
	"context"
	"errors"
	"testing"
	"time"
)

const frame = 16 * time.Millisecond

func holdRight() *Script {
	return &Script{Events: []ScriptEvent{{At: 0, Control: "right", Pressed: true}}}
}

func TestRunClearsPack(t *testing.T) {
	d, sched, _ := newDriver(t, coinPlan, "....\n@.o.\n####")

	res, err := Run(context.Background(), d, sched, holdRight(), frame, 10*time.Second)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.State != Won || res.Cleared != 2 || res.Level != 1 {
		t.Errorf("unexpected result %+v", res)
	}
	if res.Elapsed >= 10*time.Second || res.Steps == 0 {
		t.Errorf("unexpected timing %+v", res)
	}
}

func TestRunStopsOnLoss(t *testing.T) {
	d, sched, _ := newDriver(t, lavaPlan, coinPlan)

	res, err := Run(context.Background(), d, sched, holdRight(), frame, 10*time.Second)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.State != Lost || res.Cleared != 0 || res.Level != 0 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestRunTimeLimit(t *testing.T) {
	d, sched, _ := newDriver(t, walkPlan)

	res, err := Run(context.Background(), d, sched, nil, frame, time.Second)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.State != Playing || res.Elapsed < time.Second {
		t.Errorf("expected to still be playing after the limit, got %+v", res)
	}
	if res.Steps < 99 {
		t.Errorf("steps = %d, expected about 100", res.Steps)
	}
}

func TestRunErrors(t *testing.T) {
	d, sched, _ := newDriver(t, walkPlan)
	if _, err := Run(context.Background(), d, sched, nil, 0, time.Second); err == nil {
		t.Error("expected error for zero frame interval")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, d, sched, nil, frame, time.Second); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, expected context.Canceled", err)
	}

	bad := &Script{Events: []ScriptEvent{{At: 0, Control: "up", Pressed: 1}}}
	d2, sched2, _ := newDriver(t, walkPlan)
	if _, err := Run(context.Background(), d2, sched2, bad, frame, time.Second); err == nil {
		t.Error("expected error for non-boolean script value")
	}
}
