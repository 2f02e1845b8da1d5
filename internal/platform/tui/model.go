package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/loop"
	"github.com/vovakirdan/tui-platformer/internal/render"
	"github.com/vovakirdan/tui-platformer/internal/world"
)

// footerHeight is the number of lines below the level view.
const footerHeight = 2

// Options configures a play session.
type Options struct {
	Config   config.PlatformerConfig
	Runtime  core.RuntimeConfig
	Logger   *log.Logger
	PackPath string // pack file to reload on change; empty for the builtin pack
	Watch    bool
}

type reloadMsg struct{ path string }

type watchErrMsg struct{ err error }

// Model is the Bubble Tea model for a play session.
type Model struct {
	driver  *loop.Driver
	sched   *frameScheduler
	holds   *holdTracker
	screen  *core.Screen
	camera  *render.Camera
	keys    KeyMap
	help    help.Model
	logger  *log.Logger
	watcher *levels.Watcher

	packPath string
	deaths   int
	cleared  bool // every level of the pack has been won
	quitting bool
}

// NewModel creates a play model for w. The driver draws straight into the
// model's screen buffer whenever it samples.
func NewModel(w *world.World, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	height := opts.Runtime.ScreenH - footerHeight
	screen := core.NewScreen(opts.Runtime.ScreenW, core.Max(height, 1))
	camera := &render.Camera{}
	renderer := loop.RenderFunc(func(snap world.Snapshot) {
		render.Draw(screen, snap, camera, render.DefaultOptions())
	})

	sched := newFrameScheduler(opts.Runtime.TickRate)
	driver := loop.New(w, sched, renderer,
		loop.WithFixedStep(opts.Config.Loop.FixedStep()),
		loop.WithStallLimit(opts.Config.Loop.StallLimit()),
		loop.WithLogger(logger),
	)

	h := help.New()
	h.ShowAll = false
	h.Width = opts.Runtime.ScreenW

	return Model{
		driver:   driver,
		sched:    sched,
		holds:    newHoldTracker(opts.Config.Loop.KeyHold(), opts.Config.Loop.KeyRepeat()),
		screen:   screen,
		camera:   camera,
		keys:     DefaultKeyMap(),
		help:     h,
		logger:   logger,
		packPath: opts.PackPath,
	}
}

// Init starts the first level.
func (m Model) Init() tea.Cmd {
	m.driver.Start()
	m.driver.Render()
	return tea.Batch(m.sched.cmd(), m.waitForChange())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, core.Max(msg.Height-footerHeight, 1))
		m.help.Width = msg.Width
		m.driver.Render()
		return m, nil

	case FrameMsg:
		return m.handleFrame(time.Time(msg))

	case reloadMsg:
		m.reload(msg.path)
		return m, m.waitForChange()

	case watchErrMsg:
		m.logger.Warn("watch error", "err", msg.err)
		return m, m.waitForChange()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Retry):
		return m.retry()
	}

	c, ok := m.keys.Control(msg)
	if !ok || m.driver.State() != loop.Playing {
		return m, nil
	}
	m.holds.press(c, m.sched.Now())
	if err := m.driver.UpdateControl(c.String(), true); err != nil {
		m.logger.Warn("control rejected", "control", c, "err", err)
	}
	return m, nil
}

// retry restarts a lost level, or the whole pack once it is cleared.
func (m Model) retry() (tea.Model, tea.Cmd) {
	switch {
	case m.cleared:
		m.cleared = false
		m.driver.SelectLevel(0)
	case m.driver.State() != loop.Lost:
		return m, nil
	}

	m.holds.reset()
	*m.camera = render.Camera{}
	m.driver.Start()
	m.driver.Render()
	return m, m.sched.cmd()
}

// handleFrame releases expired key holds, runs the pending driver sample
// and reacts to the level ending.
func (m Model) handleFrame(t time.Time) (tea.Model, tea.Cmd) {
	now := t.Sub(m.sched.start)
	for _, c := range m.holds.expire(now) {
		if err := m.driver.UpdateControl(c.String(), false); err != nil {
			m.logger.Warn("control rejected", "control", c, "err", err)
		}
	}

	if !m.sched.fire(t) {
		return m, nil
	}

	switch m.driver.State() {
	case loop.Won:
		m.holds.reset()
		w := m.driver.World()
		if w.Index()+1 >= w.Count() {
			m.cleared = true
			m.logger.Info("pack cleared", "deaths", m.deaths)
			break
		}
		m.driver.AdvanceLevel()
		*m.camera = render.Camera{}
		m.driver.Start()
		m.driver.Render()
	case loop.Lost:
		m.holds.reset()
		m.deaths++
	}

	return m, m.sched.cmd()
}

// reload swaps in the pack file's levels after an edit. Invalid packs are
// logged and ignored so a half-saved file does not end the session.
func (m Model) reload(path string) {
	pack, err := levels.LoadPackFile(path)
	if err != nil {
		m.logger.Warn("reload failed", "path", path, "err", err)
		return
	}
	if problems := pack.Validate(); len(problems) > 0 {
		for id, perr := range problems {
			m.logger.Warn("reload skipped: invalid level", "level", id, "err", perr)
		}
		return
	}
	if err := m.driver.World().Replace(pack.Levels); err != nil {
		m.logger.Warn("reload failed", "path", path, "err", err)
		return
	}
	m.logger.Info("pack reloaded", "path", path, "levels", len(pack.Levels))
	m.driver.Render()
}

func (m Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	w := m.watcher
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return reloadMsg{path: path}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(RenderScreen(m.screen))
	sb.WriteString("\n")
	sb.WriteString(m.status())
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m Model) status() string {
	w := m.driver.World()
	switch {
	case m.cleared:
		return wonStyle.Render("All levels cleared!") + infoStyle.Render(fmt.Sprintf("  deaths %d, r to play again", m.deaths))
	case m.driver.State() == loop.Lost:
		return lostStyle.Render("Burned!") + infoStyle.Render("  r to retry")
	}
	return infoStyle.Render(fmt.Sprintf("level %d/%d  deaths %d  holding %s",
		w.Index()+1, w.Count(), m.deaths, m.driver.Controls()))
}

// Run starts the Bubble Tea program for w.
func Run(w *world.World, opts Options) error {
	model := NewModel(w, opts)

	if opts.Watch && opts.PackPath != "" {
		watcher, err := levels.WatchFile(opts.PackPath)
		if err != nil {
			return fmt.Errorf("watch %s: %w", opts.PackPath, err)
		}
		defer watcher.Close()
		model.watcher = watcher
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
