package interp

import (
	"context"
	"image/color"
	"math"
	"sort"

	"github.com/zurustar/kame/pkg/logo/token"
	"github.com/zurustar/kame/pkg/turtle"
)

// FunctionFunc is a builtin that takes evaluated arguments and outputs a value.
type FunctionFunc func(in *Interpreter, args []Value) (Value, error)

// CommandFunc is a builtin that takes evaluated arguments and outputs nothing.
type CommandFunc func(in *Interpreter, args []Value) error

// specialFunc reads its own arguments from the token stream, starting at i.
// It is used for control structures that take bracketed blocks.
type specialFunc func(ctx context.Context, in *Interpreter, tokens []token.Token, i int) (int, Signal, error)

// readerFunc is a value-producing builtin that reads its own arguments.
type readerFunc func(ctx context.Context, in *Interpreter, tokens []token.Token, i int) (Value, int, error)

// builtin describes one primitive. The same table serves the
// expression evaluator and the statement executor.
type builtin struct {
	name     string
	arity    int
	function FunctionFunc
	command  CommandFunc
	special  specialFunc
	reader   readerFunc
	variadic bool // accepts any number of inputs inside parentheses
}

func (b *builtin) outputsValue() bool {
	return b.function != nil || b.reader != nil
}

func (in *Interpreter) register(b *builtin, names ...string) {
	for _, name := range names {
		in.builtins[name] = b
	}
	if b.name == "" && len(names) > 0 {
		b.name = names[0]
	}
}

// RegisterFunction adds a value-producing builtin with a fixed arity.
func (in *Interpreter) RegisterFunction(arity int, fn FunctionFunc, names ...string) {
	in.register(&builtin{arity: arity, function: fn}, names...)
}

// RegisterCommand adds a statement builtin with a fixed arity.
func (in *Interpreter) RegisterCommand(arity int, fn CommandFunc, names ...string) {
	in.register(&builtin{arity: arity, command: fn}, names...)
}

func (in *Interpreter) registerSpecial(fn specialFunc, names ...string) {
	in.register(&builtin{special: fn}, names...)
}

func (in *Interpreter) registerReader(fn readerFunc, names ...string) {
	in.register(&builtin{reader: fn}, names...)
}

// BuiltinNames returns every builtin name in sorted order.
func (in *Interpreter) BuiltinNames() []string {
	names := make([]string, 0, len(in.builtins))
	for name := range in.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// knownNames lists everything the user could have meant by an unknown word.
func (in *Interpreter) knownNames() []string {
	names := append(in.BuiltinNames(), "TO", "END")
	return append(names, in.state.ProcedureNames()...)
}

// numberArg converts an argument to a number or raises a type error.
func numberArg(name string, v Value) (float64, error) {
	f, ok := toNumber(v)
	if !ok {
		return 0, newTypeError("%s needs a number, but got %s (%s).", name, FormatShow(v), typeName(v))
	}
	return f, nil
}

// intArg converts an argument to an integer by truncation.
func intArg(name string, v Value) (int, error) {
	f, err := numberArg(name, v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, newInvalidArgumentError("%s needs a whole number, but got %s.", name, FormatNumber(f))
	}
	return clampInt(math.Trunc(f)), nil
}

// finiteArg converts an argument to a number that is neither NaN nor infinite.
func finiteArg(name string, v Value) (float64, error) {
	f, err := numberArg(name, v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, newInvalidArgumentError("%s needs a real number, but got %s.", name, FormatNumber(f))
	}
	return f, nil
}

// clampInt converts a whole float to int, saturating at the int range.
func clampInt(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(f)
}

// pointArg converts a [x y] list to coordinates.
func pointArg(name string, v Value) (float64, float64, error) {
	list, ok := v.([]Value)
	if !ok || len(list) < 2 {
		return 0, 0, newTypeError("%s needs a point like [x y]", name)
	}
	x, okX := toNumber(list[0])
	y, okY := toNumber(list[1])
	if !okX || !okY {
		return 0, 0, newTypeError("%s needs a point like [x y]", name)
	}
	return x, y, nil
}

// colorArg resolves a color name, palette number, #rrggbb word or [r g b] list.
func colorArg(name string, v Value) (color.RGBA, error) {
	switch val := v.(type) {
	case string:
		if c, ok := turtle.NamedColor(val); ok {
			return c, nil
		}
		if c, ok := turtle.ParseHexColor(val); ok {
			return c, nil
		}
		if f, ok := toNumber(val); ok {
			if c, ok := turtle.PaletteColor(clampInt(f)); ok && f == math.Trunc(f) {
				return c, nil
			}
		}
	case float64:
		if c, ok := turtle.PaletteColor(clampInt(val)); ok && val == math.Trunc(val) {
			return c, nil
		}
	case []Value:
		if len(val) >= 3 {
			r, okR := toNumber(val[0])
			g, okG := toNumber(val[1])
			b, okB := toNumber(val[2])
			if okR && okG && okB {
				return turtle.RGB(r, g, b), nil
			}
		}
	}
	return color.RGBA{}, newInvalidArgumentError(
		"%s doesn't know the color %s. Try a name like \"red, a number from 0 to 15, or a list like [255 0 0].",
		name, FormatShow(v))
}

// colorValue converts a color to the [r g b] list PENCOLOR outputs.
func colorValue(c color.RGBA) Value {
	return []Value{float64(c.R), float64(c.G), float64(c.B)}
}
