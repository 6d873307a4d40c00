// Package result lists what the learner answered in the finished run.
package result

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/aleksandri0/mathpower/internal/difficulty"
	"github.com/aleksandri0/mathpower/internal/screen"
	"github.com/aleksandri0/mathpower/internal/ui/components"
	"github.com/aleksandri0/mathpower/internal/ui/layout"
	"github.com/aleksandri0/mathpower/internal/ui/theme"
)

// Entry is one answered calculation.
type Entry struct {
	Expression string
	Answer     string
	Solution   string
}

// ResultScreen shows the entries of a run, or a notice when the run had
// nothing to answer.
type ResultScreen struct {
	level     difficulty.Level
	entries   []Entry
	absent    bool
	onRestart func()
	button    components.Button
	restarted bool
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)
var _ screen.StatusProvider = (*ResultScreen)(nil)

// New creates a result screen. A nil entries slice means the result is
// absent.
func New(level difficulty.Level, entries []Entry, onRestart func()) *ResultScreen {
	s := &ResultScreen{
		level:     level,
		entries:   entries,
		absent:    entries == nil,
		onRestart: onRestart,
	}
	s.button = components.NewButton("Play again", true, s.restart)
	return s
}

func (s *ResultScreen) restart() tea.Cmd {
	if s.restarted {
		return nil
	}
	s.restarted = true
	s.onRestart()
	return nil
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Result"
}

func (s *ResultScreen) Status() string {
	return s.level.DisplayName()
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter/R", Description: "Play again"},
		{Key: "Q", Description: "Quit"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || s.restarted {
		return s, nil
	}

	switch kmsg.String() {
	case "r":
		return s, s.restart()
	case "q":
		return s, tea.Quit
	}

	var cmd tea.Cmd
	s.button, cmd = s.button.Update(msg)
	return s, cmd
}

func (s *ResultScreen) View(width, height int) string {
	var b strings.Builder

	if s.absent {
		b.WriteString(theme.Title.Width(width).Render("Nothing to answer"))
		b.WriteString("\n\n")
		b.WriteString(theme.Subtitle.Width(width).Render(
			fmt.Sprintf("There are no calculations for %s yet.", s.level.DisplayName())))
	} else {
		b.WriteString(theme.Title.Width(width).Render("Run complete!"))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderTable(s.entries)))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.button.View()))

	return lipgloss.PlaceVertical(height, lipgloss.Center, b.String())
}

func renderTable(entries []Entry) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.Hint).
		Headers("Calculation", "Your answer", "Solution").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.Hint.Padding(0, 1)
			}
			return theme.Body.Padding(0, 1)
		})
	for _, e := range entries {
		t.Row(e.Expression, e.Answer, e.Solution)
	}
	return t.String()
}
