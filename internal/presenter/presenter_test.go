package presenter

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleksandri0/mathpower/internal/calcset"
	"github.com/aleksandri0/mathpower/internal/difficulty"
	"github.com/aleksandri0/mathpower/internal/flow"
	"github.com/aleksandri0/mathpower/internal/problemgen"
	"github.com/aleksandri0/mathpower/internal/router"
	"github.com/aleksandri0/mathpower/internal/screen"
	calcscreen "github.com/aleksandri0/mathpower/internal/screens/calculation"
	diffscreen "github.com/aleksandri0/mathpower/internal/screens/difficulty"
	"github.com/aleksandri0/mathpower/internal/screens/result"
)

var (
	add = problemgen.Calculation{ID: "e-1", Expression: "2 + 2", Solution: "4"}
	sub = problemgen.Calculation{ID: "e-2", Expression: "9 - 3", Solution: "6"}
	mul = problemgen.Calculation{ID: "h-1", Expression: "12 * 12", Solution: "144"}
)

func testSet() calcset.Set {
	return calcset.Set{
		difficulty.Hard: {mul},
		difficulty.Easy: {add, sub},
	}
}

type blankScreen struct{}

func (blankScreen) Init() tea.Cmd                            { return nil }
func (s blankScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (blankScreen) View(int, int) string                     { return "" }
func (blankScreen) Title() string                            { return "" }

func typeAnswer(nav *router.Router, text string) {
	for _, r := range text {
		nav.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	nav.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
}

func TestOrdered(t *testing.T) {
	list := []problemgen.Calculation{add, sub, mul}
	got := Ordered(list, map[problemgen.Calculation]problemgen.Answer{mul: "144", add: "4"})
	assert.Equal(t, []Answered{
		{Calculation: add, Answer: "4"},
		{Calculation: mul, Answer: "144"},
	}, got)

	assert.Nil(t, Ordered(list, nil))
	empty := Ordered(list, map[problemgen.Calculation]problemgen.Answer{})
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestPosition(t *testing.T) {
	set := testSet()
	i, n := Position(set, difficulty.Easy, sub)
	assert.Equal(t, 1, i)
	assert.Equal(t, 2, n)

	i, n = Position(set, difficulty.Medium, sub)
	assert.Equal(t, 0, i)
	assert.Equal(t, 0, n)
}

func TestNewFlowOrdersDifficulties(t *testing.T) {
	f := NewFlow(NewTUI(router.New(blankScreen{}), testSet()), testSet(), flow.ResetOnChoose)
	assert.Equal(t, []difficulty.Level{difficulty.Easy, difficulty.Hard}, f.Difficulties())
}

func TestTUIRunsAFullQuiz(t *testing.T) {
	set := testSet()
	nav := router.New(blankScreen{})
	tui := NewTUI(nav, set)
	f := NewFlow(tui, set, flow.ResetOnChoose)

	f.SelectDifficulty()
	require.IsType(t, &diffscreen.DifficultyScreen{}, nav.Active())
	assert.Contains(t, nav.View(80, 20), "(2)")

	cmd := nav.Update(tea.KeyPressMsg{Code: '1', Text: "1"})
	require.NotNil(t, cmd)
	assert.Equal(t, diffscreen.ChosenMsg{Level: difficulty.Easy}, cmd())
	require.NoError(t, f.Start())

	calc, ok := nav.Active().(*calcscreen.CalculationScreen)
	require.True(t, ok, "expected calculation screen, got %T", nav.Active())
	assert.Equal(t, "Easy  1/2", calc.Status())
	tui.Drain()

	typeAnswer(nav, "4")
	calc, ok = nav.Active().(*calcscreen.CalculationScreen)
	require.True(t, ok, "expected second calculation, got %T", nav.Active())
	assert.Equal(t, "Easy  2/2", calc.Status())

	typeAnswer(nav, "5")
	require.IsType(t, &result.ResultScreen{}, nav.Active())
	view := nav.View(100, 30)
	assert.Less(t, strings.Index(view, "2 + 2"), strings.Index(view, "9 - 3"))
	assert.Contains(t, view, "Run complete!")
	assert.Equal(t, flow.StateCompleted, f.State())
	assert.Equal(t, 1, nav.Depth())

	nav.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.IsType(t, &diffscreen.DifficultyScreen{}, nav.Active())
	assert.Equal(t, flow.StateDifficultyPending, f.State())
}

func TestTUIAbsentResult(t *testing.T) {
	set := testSet()
	set[difficulty.Medium] = nil
	nav := router.New(blankScreen{})
	f := NewFlow(NewTUI(nav, set), set, flow.ResetOnChoose)

	f.SelectDifficulty()
	nav.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	require.NoError(t, f.Start())

	require.IsType(t, &result.ResultScreen{}, nav.Active())
	assert.Contains(t, nav.View(100, 30), "no calculations for Medium")
}

func TestDrain(t *testing.T) {
	tui := NewTUI(router.New(blankScreen{}), nil)
	assert.Nil(t, tui.Drain())

	tui.pending = append(tui.pending, func() tea.Msg { return nil })
	assert.NotNil(t, tui.Drain())
	assert.Nil(t, tui.Drain(), "drain empties the queue")
}
