package presenter

import (
	tea "charm.land/bubbletea/v2"

	"github.com/aleksandri0/mathpower/internal/calcset"
	"github.com/aleksandri0/mathpower/internal/difficulty"
	"github.com/aleksandri0/mathpower/internal/problemgen"
	"github.com/aleksandri0/mathpower/internal/router"
	"github.com/aleksandri0/mathpower/internal/screen"
	calcscreen "github.com/aleksandri0/mathpower/internal/screens/calculation"
	diffscreen "github.com/aleksandri0/mathpower/internal/screens/difficulty"
	"github.com/aleksandri0/mathpower/internal/screens/result"
)

// TUI routes flow steps to screens on nav. Navigation happens
// synchronously; the Init commands of new screens are queued until Drain.
type TUI struct {
	nav     *router.Router
	set     calcset.Set
	level   difficulty.Level
	pending []tea.Cmd
}

var _ Router = (*TUI)(nil)

func NewTUI(nav *router.Router, set calcset.Set) *TUI {
	return &TUI{nav: nav, set: set}
}

func (t *TUI) RouteToDifficulties(available []difficulty.Level, onChosen func(difficulty.Level)) {
	counts := make(map[difficulty.Level]int, len(available))
	for _, l := range available {
		counts[l] = len(t.set[l])
	}
	t.replace(diffscreen.New(available, counts, func(l difficulty.Level) {
		t.level = l
		onChosen(l)
	}))
}

func (t *TUI) RouteToCalculation(c problemgen.Calculation, level difficulty.Level, onAnswered func(problemgen.Answer) error) {
	t.level = level
	index, total := Position(t.set, level, c)
	t.replace(calcscreen.New(c, level, index, total, onAnswered))
}

func (t *TUI) RouteToResult(res map[problemgen.Calculation]problemgen.Answer, onRestart func()) {
	var entries []result.Entry
	if res != nil {
		answered := Ordered(t.set[t.level], res)
		entries = make([]result.Entry, 0, len(answered))
		for _, a := range answered {
			entries = append(entries, result.Entry{
				Expression: a.Calculation.Expression,
				Answer:     string(a.Answer),
				Solution:   a.Calculation.Solution,
			})
		}
	}
	t.replace(result.New(t.level, entries, onRestart))
}

func (t *TUI) replace(s screen.Screen) {
	if cmd := t.nav.Replace(s); cmd != nil {
		t.pending = append(t.pending, cmd)
	}
}

// Drain returns the queued Init commands in the order the screens were
// shown, or nil when nothing is queued.
func (t *TUI) Drain() tea.Cmd {
	if len(t.pending) == 0 {
		return nil
	}
	cmds := t.pending
	t.pending = nil
	return tea.Sequence(cmds...)
}
