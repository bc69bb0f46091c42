package interp

import (
	"context"
	"math"
	"time"

	"github.com/zurustar/kame/pkg/logo/lexer"
	"github.com/zurustar/kame/pkg/logo/token"
)

// registerControlBuiltins registers control structures and variable primitives.
func (in *Interpreter) registerControlBuiltins() {
	in.registerSpecial(execRepeat, "REPEAT")
	in.registerSpecial(execIf, "IF")
	in.registerSpecial(execIfElse, "IFELSE")
	in.registerSpecial(execFor, "FOR")
	in.registerSpecial(execWhile, "WHILE")
	in.registerSpecial(execAsk, "ASK")
	in.registerSpecial(execFilled, "FILLED")
	in.registerSpecial(func(ctx context.Context, in *Interpreter, tokens []token.Token, i int) (int, Signal, error) {
		return i, Signal{Kind: SignalStop}, nil
	}, "STOP")
	in.registerSpecial(func(ctx context.Context, in *Interpreter, tokens []token.Token, i int) (int, Signal, error) {
		v, next, err := in.evaluate(ctx, tokens, i)
		if err != nil {
			return next, noSignal, err
		}
		return next, Signal{Kind: SignalOutput, Value: v}, nil
	}, "OUTPUT", "OP")
	in.registerSpecial(execWait, "WAIT")

	in.RegisterFunction(0, func(in *Interpreter, args []Value) (Value, error) {
		if in.state.repcount == 0 {
			return 1.0, nil
		}
		return float64(in.state.repcount), nil
	}, "REPCOUNT")

	in.RegisterCommand(2, func(in *Interpreter, args []Value) error {
		name, err := variableName("MAKE", args[0])
		if err != nil {
			return err
		}
		in.state.SetVariable(name, args[1])
		return nil
	}, "MAKE")

	in.RegisterCommand(1, func(in *Interpreter, args []Value) error {
		names := []Value{args[0]}
		if list, ok := args[0].([]Value); ok {
			names = list
		}
		for _, v := range names {
			name, err := variableName("LOCAL", v)
			if err != nil {
				return err
			}
			in.state.SetLocal(name, nil)
		}
		return nil
	}, "LOCAL")

	in.RegisterFunction(1, func(in *Interpreter, args []Value) (Value, error) {
		name, err := variableName("THING", args[0])
		if err != nil {
			return nil, err
		}
		return in.state.Variable(name)
	}, "THING")
}

// variableName validates the name input of MAKE, LOCAL and THING.
func variableName(cmd string, v Value) (string, error) {
	name, ok := v.(string)
	if !ok || name == "" {
		return "", newTypeError("%s needs a quoted name, like %s \"size", cmd, cmd)
	}
	return normalizeName(name), nil
}

func execRepeat(ctx context.Context, in *Interpreter, tokens []token.Token, i int) (int, Signal, error) {
	v, i, err := in.evaluate(ctx, tokens, i)
	if err != nil {
		return i, noSignal, err
	}
	count, err := numberArg("REPEAT", v)
	if err != nil {
		return i, noSignal, err
	}
	body, next, err := readBlock(tokens, i, "REPEAT needs commands in brackets, like: REPEAT 4 [FD 100 RT 90]")
	if err != nil {
		return next, noSignal, err
	}

	saved := in.state.repcount
	defer func() { in.state.repcount = saved }()

	n := clampInt(math.Floor(count))
	for k := 1; k <= n; k++ {
		if in.stopRequested(ctx) {
			break
		}
		in.state.repcount = k
		sig, err := in.executeBlock(ctx, body)
		if err != nil || sig.Active() {
			return next, sig, err
		}
	}
	return next, noSignal, nil
}

func execIf(ctx context.Context, in *Interpreter, tokens []token.Token, i int) (int, Signal, error) {
	cond, i, err := in.evaluateCondition(ctx, tokens, i)
	if err != nil {
		return i, noSignal, err
	}
	body, next, err := readBlock(tokens, i, "IF needs commands in brackets, like: IF :x > 5 [PRINT \"big]")
	if err != nil {
		return next, noSignal, err
	}
	if !cond {
		return next, noSignal, nil
	}
	sig, err := in.executeBlock(ctx, body)
	return next, sig, err
}

func execIfElse(ctx context.Context, in *Interpreter, tokens []token.Token, i int) (int, Signal, error) {
	const usage = "IFELSE needs two bracket groups, like: IFELSE :x > 5 [PRINT \"big] [PRINT \"small]"
	cond, i, err := in.evaluateCondition(ctx, tokens, i)
	if err != nil {
		return i, noSignal, err
	}
	yes, i, err := readBlock(tokens, i, usage)
	if err != nil {
		return i, noSignal, err
	}
	no, next, err := readBlock(tokens, i, usage)
	if err != nil {
		return next, noSignal, err
	}
	body := no
	if cond {
		body = yes
	}
	sig, err := in.executeBlock(ctx, body)
	return next, sig, err
}

// execFor runs FOR [var start end step] [body]. The step defaults to 1 and
// the loop variable is local to the loop.
func execFor(ctx context.Context, in *Interpreter, tokens []token.Token, i int) (int, Signal, error) {
	const usage = "FOR control list needs at least 3 things: [variable start end]"
	if i >= len(tokens) || tokens[i].Kind != token.LBRACKET {
		return i, noSignal, newParseError("FOR needs a control list in brackets, like: FOR [i 1 10] [PRINT :i]")
	}
	nodes, i, err := lexer.ParseList(tokens, i)
	if err != nil {
		return i, noSignal, newParseError("You opened [ but forgot to close it with ]")
	}
	if len(nodes) < 3 || nodes[0].IsList || nodes[0].Token.Kind != token.WORD {
		return i, noSignal, newParseError(usage)
	}
	name := normalizeName(nodes[0].Token.Text)

	control := lexer.Flatten(nodes[1:])
	bounds := make([]float64, 0, 3)
	for j := 0; j < len(control) && len(bounds) < 3; {
		var v Value
		v, j, err = in.evaluate(ctx, control, j)
		if err != nil {
			return i, noSignal, err
		}
		f, err := numberArg("FOR", v)
		if err != nil {
			return i, noSignal, err
		}
		bounds = append(bounds, f)
	}
	if len(bounds) < 2 {
		return i, noSignal, newParseError(usage)
	}
	start, end, step := bounds[0], bounds[1], 1.0
	if len(bounds) == 3 {
		step = bounds[2]
	}
	if step == 0 {
		return i, noSignal, newInvalidArgumentError("FOR loop step can't be zero - the loop would never end!")
	}

	body, next, err := readBlock(tokens, i, "FOR needs commands in brackets, like: FOR [i 1 10] [PRINT :i]")
	if err != nil {
		return next, noSignal, err
	}

	leave := in.state.pushFrame()
	defer leave()

	for k := 0; ; k++ {
		v := start + float64(k)*step
		if (step > 0 && v > end) || (step < 0 && v < end) || in.stopRequested(ctx) {
			break
		}
		in.state.SetLocal(name, v)
		sig, err := in.executeBlock(ctx, body)
		if err != nil || sig.Active() {
			return next, sig, err
		}
	}
	return next, noSignal, nil
}

func execWhile(ctx context.Context, in *Interpreter, tokens []token.Token, i int) (int, Signal, error) {
	cond, i, err := readBlock(tokens, i, "WHILE needs a condition in brackets, like: WHILE [:x < 10] [MAKE \"x :x + 1]")
	if err != nil {
		return i, noSignal, err
	}
	body, next, err := readBlock(tokens, i, "WHILE needs commands in brackets, like: WHILE [:x < 10] [MAKE \"x :x + 1]")
	if err != nil {
		return next, noSignal, err
	}
	for !in.stopRequested(ctx) {
		ok, _, err := in.evaluateCondition(ctx, cond, 0)
		if err != nil {
			return next, noSignal, err
		}
		if !ok {
			break
		}
		sig, err := in.executeBlock(ctx, body)
		if err != nil || sig.Active() {
			return next, sig, err
		}
	}
	return next, noSignal, nil
}

// execAsk runs a block with another turtle and then restores the previous one.
func execAsk(ctx context.Context, in *Interpreter, tokens []token.Token, i int) (int, Signal, error) {
	v, i, err := in.evaluate(ctx, tokens, i)
	if err != nil {
		return i, noSignal, err
	}
	id, err := turtleIDArg("ASK", v)
	if err != nil {
		return i, noSignal, err
	}
	body, next, err := readBlock(tokens, i, "ASK needs commands in brackets: ASK 1 [FD 100]")
	if err != nil {
		return next, noSignal, err
	}

	prev := in.turtles.CurrentID()
	in.turtles.Tell(id)
	defer in.turtles.Tell(prev)

	sig, err := in.executeBlock(ctx, body)
	return next, sig, err
}

// execFilled records the block's drawing and fills it with the pen color
// current at the start of the block.
func execFilled(ctx context.Context, in *Interpreter, tokens []token.Token, i int) (int, Signal, error) {
	body, next, err := readBlock(tokens, i, "FILLED needs commands in brackets: FILLED [REPEAT 4 [FD 100 RT 90]]")
	if err != nil {
		return next, noSignal, err
	}
	in.turtles.BeginFill()
	defer in.turtles.EndFill()

	sig, err := in.executeBlock(ctx, body)
	return next, sig, err
}

// execWait pauses for the given number of milliseconds.
func execWait(ctx context.Context, in *Interpreter, tokens []token.Token, i int) (int, Signal, error) {
	v, i, err := in.evaluate(ctx, tokens, i)
	if err != nil {
		return i, noSignal, err
	}
	ms, err := numberArg("WAIT", v)
	if err != nil {
		return i, noSignal, err
	}
	if ms > 0 {
		// A cancelled wait ends early; the stop is noticed at the next statement.
		_ = in.scheduler.Sleep(ctx, time.Duration(ms*float64(time.Millisecond)))
	}
	return i, noSignal, nil
}
