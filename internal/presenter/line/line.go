// Package line presents the quiz as plain text over a reader and a writer,
// for terminals without a TUI and for scripted runs.
package line

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/aleksandri0/mathpower/internal/calcset"
	"github.com/aleksandri0/mathpower/internal/difficulty"
	"github.com/aleksandri0/mathpower/internal/presenter"
	"github.com/aleksandri0/mathpower/internal/problemgen"
)

// ErrNoDifficulties is returned by Run when the set offers nothing to pick.
var ErrNoDifficulties = errors.New("no difficulties available")

// Driver is the part of the flow Run drives.
type Driver interface {
	SelectDifficulty()
	Start() error
}

type stepKind int

const (
	stepNone stepKind = iota
	stepChoose
	stepAnswer
	stepResult
)

// Line is a flow router that prints each step and reads the learner's
// replies one line at a time.
type Line struct {
	in    io.Reader
	out   io.Writer
	set   calcset.Set
	level difficulty.Level

	preset    difficulty.Level
	hasPreset bool

	kind       stepKind
	available  []difficulty.Level
	onChosen   func(difficulty.Level)
	onAnswered func(problemgen.Answer) error
	onRestart  func()
}

var _ presenter.Router = (*Line)(nil)

// Option configures a Line.
type Option func(*Line)

// WithLevel answers the first chooser with l instead of asking.
func WithLevel(l difficulty.Level) Option {
	return func(p *Line) {
		p.preset = l
		p.hasPreset = true
	}
}

func New(in io.Reader, out io.Writer, set calcset.Set, opts ...Option) *Line {
	p := &Line{in: in, out: out, set: set}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Line) RouteToDifficulties(available []difficulty.Level, onChosen func(difficulty.Level)) {
	p.kind = stepChoose
	p.available = available
	p.onChosen = onChosen

	if len(available) == 0 || p.hasPreset {
		return
	}
	fmt.Fprintln(p.out, "Choose a difficulty:")
	for i, l := range available {
		fmt.Fprintf(p.out, "  %d. %s (%d)\n", i+1, l.DisplayName(), len(p.set[l]))
	}
}

func (p *Line) RouteToCalculation(c problemgen.Calculation, level difficulty.Level, onAnswered func(problemgen.Answer) error) {
	p.kind = stepAnswer
	p.level = level
	p.onAnswered = onAnswered

	index, total := presenter.Position(p.set, level, c)
	fmt.Fprintf(p.out, "[%d/%d] %s = ?\n", index+1, total, c.Expression)
}

func (p *Line) RouteToResult(result map[problemgen.Calculation]problemgen.Answer, onRestart func()) {
	p.kind = stepResult
	p.onRestart = onRestart

	answered := presenter.Ordered(p.set[p.level], result)
	if answered == nil {
		fmt.Fprintf(p.out, "There are no calculations for %s yet.\n", p.level.DisplayName())
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Calculation", "Your answer", "Solution")
	for _, a := range answered {
		t.Row(a.Calculation.Expression, string(a.Answer), a.Calculation.Solution)
	}
	fmt.Fprintf(p.out, "Result (%s):\n%s\n", p.level.DisplayName(), t.String())
}

// Run starts the flow and serves it until the input ends, the learner
// quits or ctx is cancelled. The end of input is not an error.
func (p *Line) Run(ctx context.Context, f Driver) error {
	done := make(chan struct{})
	defer close(done)
	lines := readLines(p.in, done)

	f.SelectDifficulty()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch p.kind {
		case stepChoose:
			if len(p.available) == 0 {
				return ErrNoDifficulties
			}
			if p.hasPreset {
				p.hasPreset = false
				if !slices.Contains(p.available, p.preset) {
					return fmt.Errorf("difficulty %s is not available", p.preset)
				}
				fmt.Fprintf(p.out, "Difficulty: %s\n", p.preset.DisplayName())
				if err := p.choose(f, p.preset); err != nil {
					return err
				}
				continue
			}
			fmt.Fprint(p.out, "> ")
		case stepAnswer:
			fmt.Fprint(p.out, "= ")
		case stepResult:
			fmt.Fprint(p.out, "Play again? [Y/n] ")
		default:
			return nil
		}

		text, ok, err := next(ctx, lines)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(p.out)
			return nil
		}

		quit, err := p.handle(f, strings.TrimSpace(text))
		if err != nil || quit {
			return err
		}
	}
}

func (p *Line) handle(f Driver, text string) (bool, error) {
	switch p.kind {
	case stepChoose:
		l, ok := p.parseChoice(text)
		if !ok {
			fmt.Fprintf(p.out, "Pick 1-%d or a difficulty name.\n", len(p.available))
			return false, nil
		}
		return false, p.choose(f, l)

	case stepAnswer:
		answer := problemgen.Answer(text).Normalize()
		if answer == "" {
			return false, nil
		}
		return false, p.onAnswered(answer)

	case stepResult:
		switch strings.ToLower(text) {
		case "", "y", "yes", "r":
			p.onRestart()
			return false, nil
		case "n", "no", "q":
			return true, nil
		}
		fmt.Fprintln(p.out, "Answer y or n.")
	}
	return false, nil
}

func (p *Line) choose(f Driver, l difficulty.Level) error {
	p.level = l
	p.onChosen(l)
	return f.Start()
}

// parseChoice accepts a 1-based position in the offered list or a level
// name.
func (p *Line) parseChoice(text string) (difficulty.Level, bool) {
	if n, err := strconv.Atoi(text); err == nil {
		if n < 1 || n > len(p.available) {
			return 0, false
		}
		return p.available[n-1], true
	}
	l, err := difficulty.Parse(text)
	if err != nil || !slices.Contains(p.available, l) {
		return 0, false
	}
	return l, true
}

type lineResult struct {
	text string
	err  error
}

// readLines scans r on its own goroutine so a blocked read never holds up
// cancellation. The goroutine stops sending once done is closed.
func readLines(r io.Reader, done <-chan struct{}) <-chan lineResult {
	ch := make(chan lineResult)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case ch <- lineResult{text: sc.Text()}:
			case <-done:
				return
			}
		}
		if err := sc.Err(); err != nil {
			select {
			case ch <- lineResult{err: err}:
			case <-done:
			}
		}
	}()
	return ch
}

func next(ctx context.Context, lines <-chan lineResult) (string, bool, error) {
	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case res, ok := <-lines:
		if !ok {
			return "", false, nil
		}
		if res.err != nil {
			return "", false, fmt.Errorf("read input: %w", res.err)
		}
		return res.text, true, nil
	}
}
