// Package welcome is the splash screen shown before the first difficulty
// chooser.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/aleksandri0/mathpower/internal/screen"
	"github.com/aleksandri0/mathpower/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 500 * time.Millisecond
	hintAt       = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

var operatorFrames = []string{"+", "−", "×", "÷"}

type tickMsg time.Time

// DoneMsg is sent once the learner dismisses the splash.
type DoneMsg struct{}

// WelcomeScreen shows a short animation and waits for a key press.
type WelcomeScreen struct {
	elapsed   time.Duration
	tickCount int
	done      bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New() *WelcomeScreen {
	return &WelcomeScreen{}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.done {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		if w.done {
			return w, nil
		}
		w.done = true
		return w, func() tea.Msg { return DoneMsg{} }
	}

	return w, nil
}

func (w *WelcomeScreen) View(width, height int) string {
	op := operatorFrames[w.tickCount%len(operatorFrames)]
	sections := []string{
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(op),
	}

	if w.elapsed >= bannerAt {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Sharpen your mental arithmetic"),
		)
	}

	if w.elapsed >= hintAt {
		sections = append(sections, "", theme.Hint.Render("press any key to continue"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
