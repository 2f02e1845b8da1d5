package loop

import "time"

// ManualScheduler is a Scheduler driven by an explicit clock. Time only
// moves when Advance is called, which makes runs reproducible.
type ManualScheduler struct {
	now     time.Duration
	pending []FrameFunc
}

// NewManualScheduler returns a scheduler whose clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Now returns the synthetic time.
func (m *ManualScheduler) Now() time.Duration {
	return m.now
}

// RequestFrame queues fn for the next Advance.
func (m *ManualScheduler) RequestFrame(fn FrameFunc) {
	m.pending = append(m.pending, fn)
}

// Advance moves the clock forward by d and runs every callback that was
// pending before the call. Callbacks requested while running wait for the
// next Advance.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.now += d
	due := m.pending
	m.pending = nil
	for _, fn := range due {
		fn(m.now)
	}
}

// Pending returns the number of queued callbacks.
func (m *ManualScheduler) Pending() int {
	return len(m.pending)
}
