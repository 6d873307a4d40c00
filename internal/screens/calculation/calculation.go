// Package calculation shows one expression and collects the answer.
package calculation

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/aleksandri0/mathpower/internal/difficulty"
	"github.com/aleksandri0/mathpower/internal/problemgen"
	"github.com/aleksandri0/mathpower/internal/screen"
	"github.com/aleksandri0/mathpower/internal/ui/components"
	"github.com/aleksandri0/mathpower/internal/ui/layout"
	"github.com/aleksandri0/mathpower/internal/ui/theme"
)

const answerLimit = 24

// CalculationScreen asks a single calculation. Position is 0-based within
// a run of Total calculations.
type CalculationScreen struct {
	calc       problemgen.Calculation
	level      difficulty.Level
	position   int
	total      int
	onAnswered func(problemgen.Answer) error

	input     components.TextInput
	submitted bool
	notice    string
}

var _ screen.Screen = (*CalculationScreen)(nil)
var _ screen.KeyHintProvider = (*CalculationScreen)(nil)
var _ screen.StatusProvider = (*CalculationScreen)(nil)

func New(c problemgen.Calculation, level difficulty.Level, position, total int, onAnswered func(problemgen.Answer) error) *CalculationScreen {
	return &CalculationScreen{
		calc:       c,
		level:      level,
		position:   position,
		total:      total,
		onAnswered: onAnswered,
		input:      components.NewTextInput("Type your answer...", true, answerLimit),
	}
}

func (s *CalculationScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *CalculationScreen) Title() string {
	return "Calculation"
}

func (s *CalculationScreen) Status() string {
	return fmt.Sprintf("%s  %d/%d", s.level.DisplayName(), s.position+1, s.total)
}

func (s *CalculationScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *CalculationScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.submitted {
		return s, nil
	}

	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" {
		return s, s.submit()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != "" {
		s.notice = ""
	}
	return s, cmd
}

func (s *CalculationScreen) submit() tea.Cmd {
	answer := problemgen.Answer(s.input.Value()).Normalize()
	if answer == "" {
		s.notice = "Enter an answer first"
		return nil
	}

	s.submitted = true
	if err := s.onAnswered(answer); err != nil {
		return screen.Fatal(err)
	}
	return nil
}

func (s *CalculationScreen) View(width, height int) string {
	var b strings.Builder

	bar := components.NewStepBar(s.position, s.total, min(width-8, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	card := theme.Card.Render(theme.Expression.Render(s.calc.Expression + " = ?"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "Answer: "+s.input.View()))

	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Problem.Width(width).Align(lipgloss.Center).Render(s.notice))
	}

	return lipgloss.PlaceVertical(height, lipgloss.Center, b.String())
}
