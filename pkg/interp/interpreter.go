package interp

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zurustar/kame/pkg/logger"
	"github.com/zurustar/kame/pkg/logo/lexer"
	"github.com/zurustar/kame/pkg/logo/token"
	"github.com/zurustar/kame/pkg/turtle"
)

// OutputMode tells the host how to show a piece of output.
type OutputMode string

const (
	OutputLine   OutputMode = "normal" // PRINT, SHOW: text followed by a line break
	OutputInline OutputMode = "inline" // TYPE: no line break
)

// OutputFunc receives program output.
type OutputFunc func(text string, mode OutputMode)

// ErrorFunc receives the message of a terminal error.
type ErrorFunc func(message string)

// Interpreter runs Logo programs against a turtle model.
type Interpreter struct {
	state    *State
	turtles  *turtle.Model
	builtins map[string]*builtin

	onOutput  OutputFunc
	onError   ErrorFunc
	prompter  Prompter
	scheduler Scheduler
	rng       *rand.Rand
	log       *slog.Logger

	running atomic.Bool
	stop    atomic.Bool
	speed   atomic.Int64 // delay after each statement, in milliseconds

	mu        sync.Mutex
	cancelRun context.CancelFunc
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput sets the output callback.
func WithOutput(fn OutputFunc) Option {
	return func(in *Interpreter) {
		if fn != nil {
			in.onOutput = fn
		}
	}
}

// WithErrorHandler sets the callback that receives terminal errors.
func WithErrorHandler(fn ErrorFunc) Option {
	return func(in *Interpreter) {
		if fn != nil {
			in.onError = fn
		}
	}
}

// WithPrompter sets where READWORD and READLIST read from.
func WithPrompter(p Prompter) Option {
	return func(in *Interpreter) {
		in.prompter = p
	}
}

// WithScheduler sets how WAIT and the speed delay sleep.
func WithScheduler(s Scheduler) Option {
	return func(in *Interpreter) {
		in.scheduler = s
	}
}

// WithRand sets the random source used by RANDOM.
func WithRand(r *rand.Rand) Option {
	return func(in *Interpreter) {
		in.rng = r
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(in *Interpreter) {
		in.log = log
	}
}

// WithSpeed sets the initial per-statement delay in milliseconds.
func WithSpeed(ms int) Option {
	return func(in *Interpreter) {
		in.speed.Store(int64(ms))
	}
}

// New creates an interpreter that draws on model. A nil model gets a fresh one.
func New(model *turtle.Model, opts ...Option) *Interpreter {
	if model == nil {
		model = turtle.NewModel()
	}
	in := &Interpreter{
		state:     NewState(),
		turtles:   model,
		builtins:  make(map[string]*builtin),
		onOutput:  func(string, OutputMode) {},
		onError:   func(string) {},
		prompter:  noPrompter{},
		scheduler: TimerScheduler{},
		rng:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x6b616d65)),
		log:       logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(in)
	}

	in.registerMathBuiltins()
	in.registerWordBuiltins()
	in.registerListBuiltins()
	in.registerTurtleBuiltins()
	in.registerControlBuiltins()
	in.registerIOBuiltins()

	return in
}

// Turtles returns the turtle model the interpreter draws on.
func (in *Interpreter) Turtles() *turtle.Model {
	return in.turtles
}

// State returns the current program state.
func (in *Interpreter) State() *State {
	return in.state
}

// IsRunning reports whether a program is being executed.
func (in *Interpreter) IsRunning() bool {
	return in.running.Load()
}

// SetSpeed changes the per-statement delay. It may be called while running.
func (in *Interpreter) SetSpeed(ms int) {
	if ms < 0 {
		ms = 0
	}
	in.speed.Store(int64(ms))
}

// Speed returns the per-statement delay in milliseconds.
func (in *Interpreter) Speed() int {
	return int(in.speed.Load())
}

// Stop asks the running program to stop at the next statement boundary.
// It is not an error; Execute returns nil.
func (in *Interpreter) Stop() {
	in.mu.Lock()
	defer in.mu.Unlock()
	if !in.running.Load() {
		return
	}
	in.stop.Store(true)
	if in.cancelRun != nil {
		in.cancelRun()
	}
}

// Reset discards all procedures and variables and resets the turtles.
func (in *Interpreter) Reset() error {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.running.Load() {
		return ErrAlreadyRunning
	}
	in.state = NewState()
	in.turtles.Reset()
	in.log.Debug("Interpreter reset")
	return nil
}

// Execute tokenizes and runs code. Procedure definitions and variables
// persist across calls until Reset.
//
// A terminal error is passed to the error handler and also returned.
// When the program is stopped with Stop, Execute returns nil. When ctx
// ends first, its error is returned without calling the error handler.
func (in *Interpreter) Execute(ctx context.Context, code string) error {
	tokens := lexer.Tokenize(code)
	return in.run(ctx, func(ctx context.Context) error {
		_, _, err := in.executeTokens(ctx, tokens, 0)
		return err
	})
}

// Eval evaluates a single expression and returns its value.
func (in *Interpreter) Eval(ctx context.Context, expr string) (Value, error) {
	tokens := lexer.Tokenize(expr)
	var result Value
	err := in.run(ctx, func(ctx context.Context) error {
		v, i, err := in.evaluate(ctx, tokens, 0)
		if err != nil {
			return err
		}
		if i < len(tokens) {
			return newParseError("I don't know what to do with %s", token.Join(tokens[i:]))
		}
		result = v
		return nil
	})
	return result, err
}

func (in *Interpreter) run(parent context.Context, body func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	in.mu.Lock()
	if in.running.Load() {
		in.mu.Unlock()
		return ErrAlreadyRunning
	}
	in.running.Store(true)
	in.stop.Store(false)
	in.cancelRun = cancel
	in.mu.Unlock()

	defer func() {
		in.mu.Lock()
		in.cancelRun = nil
		in.running.Store(false)
		in.mu.Unlock()
	}()

	start := time.Now()
	err := body(ctx)

	switch {
	case in.stop.Load():
		in.log.Info("Program stopped", "elapsed", time.Since(start))
		return nil
	case parent.Err() != nil:
		in.log.Warn("Program interrupted", "reason", parent.Err())
		return parent.Err()
	case err != nil:
		var re *RuntimeError
		if errors.As(err, &re) {
			in.log.Debug("Program failed", "type", re.Type, "line", re.Line, "error", re.Message)
		} else {
			in.log.Error("Program failed", "error", err)
		}
		in.onError(err.Error())
		return err
	}
	in.log.Debug("Program finished", "elapsed", time.Since(start))
	return nil
}

// stopRequested is checked at statement boundaries and between loop iterations.
func (in *Interpreter) stopRequested(ctx context.Context) bool {
	return in.stop.Load() || ctx.Err() != nil
}

// pause sleeps for the configured speed delay.
func (in *Interpreter) pause(ctx context.Context) {
	ms := in.speed.Load()
	if ms <= 0 {
		return
	}
	_ = in.scheduler.Sleep(ctx, time.Duration(ms)*time.Millisecond)
}

func (in *Interpreter) output(text string, mode OutputMode) {
	in.onOutput(text, mode)
}
