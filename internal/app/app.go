// Package app hosts the quiz flow in a Bubble Tea program.
package app

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/aleksandri0/mathpower/internal/calcset"
	"github.com/aleksandri0/mathpower/internal/flow"
	"github.com/aleksandri0/mathpower/internal/presenter"
	"github.com/aleksandri0/mathpower/internal/router"
	"github.com/aleksandri0/mathpower/internal/screen"
	diffscreen "github.com/aleksandri0/mathpower/internal/screens/difficulty"
	"github.com/aleksandri0/mathpower/internal/screens/welcome"
	"github.com/aleksandri0/mathpower/internal/ui/layout"
)

// Options configures a TUI run.
type Options struct {
	Set         calcset.Set
	ResetPolicy flow.ResetPolicy
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model. It owns the flow and the screen
// stack the flow's presenter writes to.
type AppModel struct {
	nav   *router.Router
	flow  *presenter.Flow
	tui   *presenter.TUI
	start tea.Cmd

	width  int
	height int
	err    error
}

func newAppModel(opts Options) AppModel {
	splash := welcome.New()
	nav := router.New(splash)
	tui := presenter.NewTUI(nav, opts.Set)

	m := AppModel{
		nav:  nav,
		tui:  tui,
		flow: presenter.NewFlow(tui, opts.Set, opts.ResetPolicy),
	}
	if opts.SkipWelcome {
		m.flow.SelectDifficulty()
		m.start = tui.Drain()
	} else {
		m.start = splash.Init()
	}
	return m
}

// Err returns the error that stopped the program, if any.
func (m AppModel) Err() error {
	return m.err
}

func (m AppModel) Init() tea.Cmd {
	return m.start
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case screen.FatalMsg:
		m.err = msg.Err
		return m, tea.Quit

	case welcome.DoneMsg:
		m.flow.SelectDifficulty()
		return m, m.tui.Drain()

	case diffscreen.ChosenMsg:
		if err := m.flow.Start(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		return m, m.tui.Drain()
	}

	cmd := m.nav.Update(msg)
	return m, tea.Batch(cmd, m.tui.Drain())
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws header, active screen and footer for the current size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.nav.Active()
	var title, status string
	if active != nil {
		title = active.Title()
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}
	header := layout.RenderHeader(title, status, m.width)

	hints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if h := hp.KeyHints(); len(h) > 0 {
			hints = h
		}
	}
	footer := layout.RenderFooter(hints, m.width)

	content := m.nav.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits. A flow
// contract violation ends the program and is returned.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run program: %w", err)
	}
	if m, ok := final.(AppModel); ok && m.err != nil {
		return m.err
	}
	return nil
}
