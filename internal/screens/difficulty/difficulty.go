// Package difficulty is the chooser screen that opens every run.
package difficulty

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	level "github.com/aleksandri0/mathpower/internal/difficulty"
	"github.com/aleksandri0/mathpower/internal/screen"
	"github.com/aleksandri0/mathpower/internal/ui/components"
	"github.com/aleksandri0/mathpower/internal/ui/layout"
	"github.com/aleksandri0/mathpower/internal/ui/theme"
)

// ChosenMsg is sent after the chooser reported Level to its callback.
type ChosenMsg struct {
	Level level.Level
}

// DifficultyScreen lists the available levels.
type DifficultyScreen struct {
	levels   []level.Level
	counts   map[level.Level]int
	onChosen func(level.Level)
	menu     components.Menu
	chosen   bool
}

var _ screen.Screen = (*DifficultyScreen)(nil)
var _ screen.KeyHintProvider = (*DifficultyScreen)(nil)

// New creates the chooser. counts, when non-nil, is shown next to each
// level as the number of calculations it holds.
func New(levels []level.Level, counts map[level.Level]int, onChosen func(level.Level)) *DifficultyScreen {
	s := &DifficultyScreen{
		levels:   levels,
		counts:   counts,
		onChosen: onChosen,
	}

	items := make([]components.MenuItem, 0, len(levels))
	for i, l := range levels {
		label := fmt.Sprintf("%d. %s", i+1, l.DisplayName())
		if counts != nil {
			label += theme.Hint.Render(fmt.Sprintf("  (%d)", counts[l]))
		}
		items = append(items, components.MenuItem{
			Label:  label,
			Action: s.choose(l),
		})
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *DifficultyScreen) choose(l level.Level) func() tea.Cmd {
	return func() tea.Cmd {
		if s.chosen {
			return nil
		}
		s.chosen = true
		s.onChosen(l)
		return func() tea.Msg { return ChosenMsg{Level: l} }
	}
}

func (s *DifficultyScreen) Init() tea.Cmd {
	return nil
}

func (s *DifficultyScreen) Title() string {
	return "Choose a difficulty"
}

func (s *DifficultyScreen) KeyHints() []layout.KeyHint {
	if len(s.levels) == 0 {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: fmt.Sprintf("1-%d", len(s.levels)), Description: "Pick"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *DifficultyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.chosen {
		return s, nil
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *DifficultyScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("How hard should it be?"))
	b.WriteString("\n\n")

	if len(s.levels) == 0 {
		b.WriteString(theme.Subtitle.Width(width).Render("No difficulties are available. Generate or import a bank first."))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))
	}

	return lipgloss.PlaceVertical(height, lipgloss.Center, b.String())
}
