package tui

import (
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// holdTracker emulates key release for terminals, which only report
// presses. A first press holds its control for hold; each repeat while
// held extends it to at least repeat from now.
type holdTracker struct {
	hold   time.Duration
	repeat time.Duration
	until  map[core.Control]time.Duration
}

func newHoldTracker(hold, repeat time.Duration) *holdTracker {
	return &holdTracker{
		hold:   hold,
		repeat: repeat,
		until:  make(map[core.Control]time.Duration),
	}
}

// press records a keypress at now.
func (h *holdTracker) press(c core.Control, now time.Duration) {
	end, held := h.until[c]
	if !held {
		h.until[c] = now + h.hold
		return
	}
	if next := now + h.repeat; next > end {
		h.until[c] = next
	}
}

// expire releases and returns every control whose hold ended by now.
func (h *holdTracker) expire(now time.Duration) []core.Control {
	var out []core.Control
	for _, c := range core.Controls {
		end, held := h.until[c]
		if held && now >= end {
			delete(h.until, c)
			out = append(out, c)
		}
	}
	return out
}

// held reports whether c is currently held.
func (h *holdTracker) held(c core.Control) bool {
	_, ok := h.until[c]
	return ok
}

// reset forgets every hold.
func (h *holdTracker) reset() {
	clear(h.until)
}
