package calculation

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/aleksandri0/mathpower/internal/difficulty"
	"github.com/aleksandri0/mathpower/internal/problemgen"
	"github.com/aleksandri0/mathpower/internal/screen"
)

var calc = problemgen.Calculation{ID: "e-1", Expression: "6 * 7", Solution: "42"}

func typeText(s *CalculationScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func enter(s *CalculationScreen) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

func TestSubmitReportsNormalizedAnswer(t *testing.T) {
	var got []problemgen.Answer
	s := New(calc, difficulty.Easy, 0, 3, func(a problemgen.Answer) error {
		got = append(got, a)
		return nil
	})

	typeText(s, "42")
	if cmd := enter(s); cmd != nil {
		t.Errorf("successful submit should not emit a command, got %T", cmd())
	}
	if len(got) != 1 || got[0] != "42" {
		t.Errorf("answers = %v, want [42]", got)
	}
}

func TestEmptyAnswerIsNotSubmitted(t *testing.T) {
	calls := 0
	s := New(calc, difficulty.Easy, 0, 3, func(problemgen.Answer) error {
		calls++
		return nil
	})

	enter(s)
	if calls != 0 {
		t.Fatal("empty answer must not be reported")
	}
	if !strings.Contains(s.View(80, 20), "Enter an answer first") {
		t.Error("expected a notice for the empty answer")
	}

	typeText(s, "4")
	if strings.Contains(s.View(80, 20), "Enter an answer first") {
		t.Error("notice should clear once typing resumes")
	}
}

func TestSubmitsOnlyOnce(t *testing.T) {
	calls := 0
	s := New(calc, difficulty.Easy, 0, 3, func(problemgen.Answer) error {
		calls++
		return nil
	})

	typeText(s, "42")
	enter(s)
	enter(s)
	typeText(s, "1")

	if calls != 1 {
		t.Errorf("onAnswered called %d times, want 1", calls)
	}
}

func TestRejectedAnswerIsFatal(t *testing.T) {
	boom := errors.New("not part of the run")
	s := New(calc, difficulty.Easy, 0, 3, func(problemgen.Answer) error { return boom })

	typeText(s, "1")
	cmd := enter(s)
	if cmd == nil {
		t.Fatal("expected FatalMsg command")
	}
	msg, ok := cmd().(screen.FatalMsg)
	if !ok || !errors.Is(msg.Err, boom) {
		t.Errorf("msg = %#v, want FatalMsg wrapping boom", cmd())
	}
}

func TestViewAndStatus(t *testing.T) {
	s := New(calc, difficulty.Medium, 1, 4, func(problemgen.Answer) error { return nil })

	if got := s.Status(); got != "Medium  2/4" {
		t.Errorf("Status = %q", got)
	}
	view := s.View(80, 20)
	for _, want := range []string{"6 * 7 = ?", "1/4", "Answer:"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "42") {
		t.Error("solution must not be shown while answering")
	}
}
