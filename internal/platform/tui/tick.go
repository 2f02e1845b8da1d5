// Package tui hosts the platformer in a terminal with Bubble Tea.
// It supplies the loop driver's scheduler, turns key presses into held
// controls and draws snapshots with lipgloss colors.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/loop"
)

// FrameMsg is sent when a requested frame is due.
type FrameMsg time.Time

// frameScheduler implements loop.Scheduler with tea.Tick. Bubble Tea
// delivers messages one at a time, which serializes frame callbacks.
type frameScheduler struct {
	interval time.Duration
	start    time.Time
	clock    func() time.Time
	pending  loop.FrameFunc
	inFlight bool
}

func newFrameScheduler(fps int) *frameScheduler {
	if fps <= 0 {
		fps = 60
	}
	return &frameScheduler{
		interval: time.Second / time.Duration(fps),
		start:    time.Now(),
		clock:    time.Now,
	}
}

// Now returns the time since the scheduler was created.
func (s *frameScheduler) Now() time.Duration {
	return s.clock().Sub(s.start)
}

// RequestFrame stores fn until the next FrameMsg.
func (s *frameScheduler) RequestFrame(fn loop.FrameFunc) {
	s.pending = fn
}

// cmd returns a tick command if a frame is pending and none is in flight.
func (s *frameScheduler) cmd() tea.Cmd {
	if s.pending == nil || s.inFlight {
		return nil
	}
	s.inFlight = true
	return tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// fire runs the pending frame and reports whether there was one.
func (s *frameScheduler) fire(t time.Time) bool {
	s.inFlight = false
	fn := s.pending
	s.pending = nil
	if fn == nil {
		return false
	}
	fn(t.Sub(s.start))
	return true
}
