package interp

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zurustar/kame/pkg/turtle"
)

// harness collects everything an interpreter reports to its host.
type harness struct {
	in      *Interpreter
	model   *turtle.Model
	lines   []string
	inline  strings.Builder
	errs    []string
	prompts []string
	answers []string
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{model: turtle.NewModel()}
	base := []Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithScheduler(ImmediateScheduler{}),
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithOutput(func(text string, mode OutputMode) {
			if mode == OutputInline {
				h.inline.WriteString(text)
				return
			}
			h.lines = append(h.lines, h.inline.String()+text)
			h.inline.Reset()
		}),
		WithErrorHandler(func(message string) {
			h.errs = append(h.errs, message)
		}),
		WithPrompter(PromptFunc(func(ctx context.Context, prompt string) (string, error) {
			h.prompts = append(h.prompts, prompt)
			if len(h.answers) == 0 {
				return "", nil
			}
			a := h.answers[0]
			h.answers = h.answers[1:]
			return a, nil
		})),
	}
	h.in = New(h.model, append(base, opts...)...)
	return h
}

// run executes code and requires it to succeed.
func (h *harness) run(t *testing.T, code string) {
	t.Helper()
	require.NoError(t, h.in.Execute(context.Background(), code))
}

// fail executes code and returns the RuntimeError it must produce.
func (h *harness) fail(t *testing.T, code string) *RuntimeError {
	t.Helper()
	err := h.in.Execute(context.Background(), code)
	require.Error(t, err)
	var re *RuntimeError
	require.ErrorAs(t, err, &re)
	return re
}

func (h *harness) eval(t *testing.T, expr string) Value {
	t.Helper()
	v, err := h.in.Eval(context.Background(), expr)
	require.NoError(t, err)
	return v
}
