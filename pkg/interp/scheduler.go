package interp

import (
	"context"
	"time"
)

// Scheduler lets a running program wait without blocking the host.
// It is used by WAIT and by the per-statement speed delay.
type Scheduler interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// TimerScheduler sleeps on a real timer and wakes early when ctx is done.
type TimerScheduler struct{}

// Sleep implements Scheduler.
func (TimerScheduler) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ImmediateScheduler never waits. It suits batch runs and tests.
type ImmediateScheduler struct{}

// Sleep implements Scheduler.
func (ImmediateScheduler) Sleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// Prompter asks the user for a line of input (READWORD, READLIST).
// An empty answer with a nil error means the user gave nothing.
type Prompter interface {
	Prompt(ctx context.Context, prompt string) (string, error)
}

// PromptFunc adapts a function to the Prompter interface.
type PromptFunc func(ctx context.Context, prompt string) (string, error)

// Prompt implements Prompter.
func (f PromptFunc) Prompt(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

type noPrompter struct{}

func (noPrompter) Prompt(context.Context, string) (string, error) {
	return "", nil
}
