package flow

import (
	"cmp"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyRouter records every routing call and keeps the latest continuations
// so tests can play the learner.
type spyRouter struct {
	difficultyPrompts [][]string
	calculations      []string
	difficulties      []string
	results           []map[string]string
	resultCalls       int

	onChosen   func(string)
	onAnswered func(string) error
	onRestart  func()
}

func (r *spyRouter) RouteToDifficulties(available []string, onChosen func(string)) {
	r.difficultyPrompts = append(r.difficultyPrompts, available)
	r.onChosen = onChosen
}

func (r *spyRouter) RouteToCalculation(c string, difficulty string, onAnswered func(string) error) {
	r.calculations = append(r.calculations, c)
	r.difficulties = append(r.difficulties, difficulty)
	r.onAnswered = onAnswered
}

func (r *spyRouter) RouteToResult(result map[string]string, onRestart func()) {
	r.resultCalls++
	r.results = append(r.results, result)
	r.onRestart = onRestart
}

func (r *spyRouter) answer(t *testing.T, a string) {
	t.Helper()
	require.NotNil(t, r.onAnswered, "no calculation has been routed")
	require.NoError(t, r.onAnswered(a))
}

func newFlow(t *testing.T, calcs map[string][]string, opts ...Option[string]) (*Flow[string, string, string], *spyRouter) {
	t.Helper()
	router := &spyRouter{}
	return New[string, string, string](router, calcs, opts...), router
}

// selectLevel runs one chooser round trip.
func selectLevel(t *testing.T, f *Flow[string, string, string], r *spyRouter, level string) {
	t.Helper()
	f.SelectDifficulty()
	require.NotNil(t, r.onChosen)
	r.onChosen(level)
}

func TestStart_WithoutDifficulty_IsContractViolation(t *testing.T) {
	f, router := newFlow(t, map[string][]string{"easy": {"1+1"}})

	err := f.Start()

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContractViolation))
	var cv *ContractViolation
	require.ErrorAs(t, err, &cv)
	assert.Equal(t, "start", cv.Op)
	assert.Empty(t, router.calculations)
	assert.Zero(t, router.resultCalls)
	assert.Equal(t, StateIdle, f.State())
}

func TestStart_EmptyList_RoutesToAbsentResult(t *testing.T) {
	f, router := newFlow(t, map[string][]string{"easy": {}})
	selectLevel(t, f, router, "easy")

	require.NoError(t, f.Start())

	assert.Empty(t, router.calculations)
	require.Equal(t, 1, router.resultCalls)
	assert.Nil(t, router.results[0])
	assert.Equal(t, StateCompleted, f.State())
}

func TestStart_MissingList_RoutesToAbsentResult(t *testing.T) {
	f, router := newFlow(t, map[string][]string{"easy": {"1+1"}})
	selectLevel(t, f, router, "hard")

	require.NoError(t, f.Start())

	assert.Empty(t, router.calculations)
	require.Equal(t, 1, router.resultCalls)
	assert.Nil(t, router.results[0])
}

func TestStart_OneCalculation_RoutesToIt(t *testing.T) {
	f, router := newFlow(t, map[string][]string{"easy": {"1+1"}})
	selectLevel(t, f, router, "easy")

	require.NoError(t, f.Start())

	assert.Equal(t, []string{"1+1"}, router.calculations)
	assert.Equal(t, []string{"easy"}, router.difficulties)
	assert.Zero(t, router.resultCalls)
	assert.Equal(t, StateRunning, f.State())
	assert.Equal(t, 0, f.Index())
}

func TestStart_Twice_RepresentsFirstCalculation(t *testing.T) {
	f, router := newFlow(t, map[string][]string{"easy": {"1+1", "2+2"}})
	selectLevel(t, f, router, "easy")

	require.NoError(t, f.Start())
	require.NoError(t, f.Start())

	assert.Equal(t, []string{"1+1", "1+1"}, router.calculations)
	assert.Empty(t, f.Answers())
}

func TestAnswer_TwoCalculations_RoutesInOrder(t *testing.T) {
	f, router := newFlow(t, map[string][]string{"easy": {"1+1", "2+2"}})
	selectLevel(t, f, router, "easy")
	require.NoError(t, f.Start())

	router.answer(t, "A1")

	assert.Equal(t, []string{"1+1", "2+2"}, router.calculations)
	assert.Zero(t, router.resultCalls)
	assert.Equal(t, 1, f.Index())
}

func TestAnswer_AllCalculations_RoutesToResult(t *testing.T) {
	f, router := newFlow(t, map[string][]string{"easy": {"1+1", "2+2"}})
	selectLevel(t, f, router, "easy")
	require.NoError(t, f.Start())

	router.answer(t, "A1")
	router.answer(t, "A2")

	require.Equal(t, 1, router.resultCalls)
	assert.Equal(t, map[string]string{"1+1": "A1", "2+2": "A2"}, router.results[0])
	assert.Equal(t, []string{"1+1", "2+2"}, router.calculations)
	assert.Equal(t, StateCompleted, f.State())
}

func TestAnswer_ManyCalculations_NeverSkipsOrReorders(t *testing.T) {
	items := []string{"1+1", "2+2", "3+3", "4+4", "5+5", "6+6"}
	f, router := newFlow(t, map[string][]string{"medium": items})
	selectLevel(t, f, router, "medium")
	require.NoError(t, f.Start())

	for i := range items {
		assert.Equal(t, items[:i+1], router.calculations)
		router.answer(t, items[i]+"=")
	}

	assert.Equal(t, items, router.calculations)
	require.Equal(t, 1, router.resultCalls)
	assert.Len(t, router.results[0], len(items))
	for _, item := range items {
		assert.Equal(t, item+"=", router.results[0][item])
	}
}

func TestAnswer_ResultIsSnapshot(t *testing.T) {
	f, router := newFlow(t, map[string][]string{"easy": {"1+1"}})
	selectLevel(t, f, router, "easy")
	require.NoError(t, f.Start())
	router.answer(t, "2")

	router.results[0]["1+1"] = "tampered"

	assert.Equal(t, map[string]string{"1+1": "2"}, f.Answers())
}

func TestAnswer_UnknownCalculation_IsContractViolation(t *testing.T) {
	f, router := newFlow(t, map[string][]string{
		"easy": {"1+1", "2+2"},
		"hard": {"9*9"},
	})
	selectLevel(t, f, router, "hard")
	require.NoError(t, f.Start())
	hardAnswer := router.onAnswered

	selectLevel(t, f, router, "easy")
	require.NoError(t, f.Start())

	err := hardAnswer("81")

	require.ErrorIs(t, err, ErrContractViolation)
	var cv *ContractViolation
	require.ErrorAs(t, err, &cv)
	assert.Equal(t, "answer", cv.Op)
	assert.Equal(t, "9*9", cv.Value)
	assert.Empty(t, f.Answers())
	assert.Equal(t, 0, f.Index())
	assert.Equal(t, []string{"9*9", "1+1"}, router.calculations)
}

func TestAnswer_AfterDifficultyCleared_IsContractViolation(t *testing.T) {
	f, router := newFlow(t, map[string][]string{"easy": {"1+1"}}, WithResetPolicy[string](ResetOnRestart))
	selectLevel(t, f, router, "easy")
	require.NoError(t, f.Start())
	stale := router.onAnswered
	router.answer(t, "2")

	router.onRestart()
	err := stale("2")

	require.ErrorIs(t, err, ErrContractViolation)
	assert.Empty(t, f.Answers())
}

func TestSelectDifficulty_SetsCurrentDifficulty(t *testing.T) {
	f, router := newFlow(t, map[string][]string{
		"easy": {"1+1"},
		"hard": {"12*12"},
	})

	f.SelectDifficulty()
	assert.Equal(t, StateDifficultyPending, f.State())
	_, ok := f.Difficulty()
	assert.False(t, ok)

	router.onChosen("hard")
	d, ok := f.Difficulty()
	require.True(t, ok)
	assert.Equal(t, "hard", d)
	assert.Equal(t, StateIdle, f.State())

	require.NoError(t, f.Start())
	assert.Equal(t, []string{"12*12"}, router.calculations)
	assert.Equal(t, []string{"hard"}, router.difficulties)
}

func TestSelectDifficulty_LatestChoiceWins(t *testing.T) {
	f, router := newFlow(t, map[string][]string{
		"easy": {"1+1"},
		"hard": {"12*12"},
	})
	f.SelectDifficulty()
	first := router.onChosen
	f.SelectDifficulty()

	first("hard")
	router.onChosen("easy")

	d, _ := f.Difficulty()
	assert.Equal(t, "easy", d)
}

func TestSelectDifficulty_OffersAllDifficulties(t *testing.T) {
	f, router := newFlow(t, map[string][]string{
		"medium": {"5*5"},
		"easy":   {"1+1"},
		"hard":   {},
	}, WithDifficultyOrder(cmp.Compare[string]))

	f.SelectDifficulty()

	require.Len(t, router.difficultyPrompts, 1)
	assert.Equal(t, []string{"easy", "hard", "medium"}, router.difficultyPrompts[0])
}

func TestSelectDifficulty_DoesNotTouchAnswers(t *testing.T) {
	f, router := newFlow(t, map[string][]string{"easy": {"1+1", "2+2"}})
	selectLevel(t, f, router, "easy")
	require.NoError(t, f.Start())
	router.answer(t, "2")

	f.SelectDifficulty()

	assert.Equal(t, map[string]string{"1+1": "2"}, f.Answers())
	d, ok := f.Difficulty()
	require.True(t, ok)
	assert.Equal(t, "easy", d)
}

func TestRestart_ReentersDifficultySelection(t *testing.T) {
	f, router := newFlow(t, map[string][]string{"easy": {"1+1"}})
	selectLevel(t, f, router, "easy")
	require.NoError(t, f.Start())
	router.answer(t, "2")

	router.onRestart()

	assert.Len(t, router.difficultyPrompts, 2)
	assert.Equal(t, StateDifficultyPending, f.State())
}

func TestRestart_ResetOnChoose_KeepsStateUntilChosen(t *testing.T) {
	f, router := newFlow(t, map[string][]string{
		"easy": {"1+1", "2+2"},
		"hard": {"9*9"},
	})
	selectLevel(t, f, router, "easy")
	require.NoError(t, f.Start())
	router.answer(t, "2")
	router.answer(t, "4")

	router.onRestart()

	d, ok := f.Difficulty()
	require.True(t, ok)
	assert.Equal(t, "easy", d)
	assert.Len(t, f.Answers(), 2)

	router.onChosen("hard")

	d, ok = f.Difficulty()
	require.True(t, ok)
	assert.Equal(t, "hard", d)
	assert.Empty(t, f.Answers())
}

func TestAnswer_AfterRunCompleted_IsContractViolation(t *testing.T) {
	f, router := newFlow(t, map[string][]string{"easy": {"1+1", "2+2"}})
	selectLevel(t, f, router, "easy")
	require.NoError(t, f.Start())
	first := router.onAnswered
	router.answer(t, "2")
	router.answer(t, "4")

	router.onRestart()
	require.Equal(t, StateDifficultyPending, f.State())
	err := first("99")

	require.ErrorIs(t, err, ErrContractViolation)
	assert.Equal(t, map[string]string{"1+1": "2", "2+2": "4"}, f.Answers())
	assert.Equal(t, []string{"1+1", "2+2"}, router.calculations)
	assert.Equal(t, StateDifficultyPending, f.State())
}

func TestAnswer_AfterResultBeforeRestart_IsContractViolation(t *testing.T) {
	f, router := newFlow(t, map[string][]string{"easy": {"1+1"}})
	selectLevel(t, f, router, "easy")
	require.NoError(t, f.Start())
	last := router.onAnswered
	router.answer(t, "2")

	err := last("3")

	require.ErrorIs(t, err, ErrContractViolation)
	assert.Equal(t, map[string]string{"1+1": "2"}, f.Answers())
	assert.Len(t, router.results, 1)
}

func TestRestart_ResetOnRestart_ClearsImmediately(t *testing.T) {
	f, router := newFlow(t, map[string][]string{"easy": {"1+1"}}, WithResetPolicy[string](ResetOnRestart))
	selectLevel(t, f, router, "easy")
	require.NoError(t, f.Start())
	router.answer(t, "2")

	router.onRestart()

	_, ok := f.Difficulty()
	assert.False(t, ok)
	assert.Empty(t, f.Answers())
	assert.ErrorIs(t, f.Start(), ErrContractViolation)
}

func TestRestart_NewCycleSeesNoPriorAnswers(t *testing.T) {
	for _, policy := range []ResetPolicy{ResetOnChoose, ResetOnRestart} {
		t.Run(policy.String(), func(t *testing.T) {
			f, router := newFlow(t, map[string][]string{
				"easy": {"1+1", "2+2"},
				"hard": {"9*9"},
			}, WithResetPolicy[string](policy))

			selectLevel(t, f, router, "easy")
			require.NoError(t, f.Start())
			router.answer(t, "2")
			router.answer(t, "4")

			router.onRestart()
			router.onChosen("hard")
			require.NoError(t, f.Start())
			router.answer(t, "81")

			require.Equal(t, 2, router.resultCalls)
			assert.Equal(t, map[string]string{"9*9": "81"}, router.results[1])
			assert.Equal(t, map[string]string{"1+1": "2", "2+2": "4"}, router.results[0])
		})
	}
}

func TestRestart_FromAbsentResult(t *testing.T) {
	f, router := newFlow(t, map[string][]string{"easy": nil, "hard": {"9*9"}})
	selectLevel(t, f, router, "easy")
	require.NoError(t, f.Start())
	require.Nil(t, router.results[0])

	router.onRestart()
	router.onChosen("hard")
	require.NoError(t, f.Start())

	assert.Equal(t, []string{"9*9"}, router.calculations)
}

func TestNew_CopiesCalculations(t *testing.T) {
	calcs := map[string][]string{"easy": {"1+1", "2+2"}}
	f, router := newFlow(t, calcs)
	calcs["easy"][0] = "changed"
	calcs["hard"] = []string{"9*9"}

	selectLevel(t, f, router, "easy")
	require.NoError(t, f.Start())

	assert.Equal(t, []string{"1+1"}, router.calculations)
	assert.Len(t, f.Difficulties(), 1)
}

func TestContractViolation_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ContractViolation
		want string
	}{
		{"without value", &ContractViolation{Op: "start", Reason: "difficulty is not set"}, "flow start: difficulty is not set"},
		{"with value", &ContractViolation{Op: "answer", Reason: "unknown", Value: "1+1"}, "flow answer: unknown (1+1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "difficulty-pending", StateDifficultyPending.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "completed", StateCompleted.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestParseResetPolicy(t *testing.T) {
	for _, p := range []ResetPolicy{ResetOnChoose, ResetOnRestart} {
		got, err := ParseResetPolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	got, err := ParseResetPolicy("")
	require.NoError(t, err)
	assert.Equal(t, ResetOnChoose, got)

	_, err = ParseResetPolicy("never")
	assert.Error(t, err)
}
