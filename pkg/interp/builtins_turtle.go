package interp

import (
	"math"

	"github.com/zurustar/kame/pkg/turtle"
)

// registerTurtleBuiltins registers motion, pen, screen and turtle query primitives.
func (in *Interpreter) registerTurtleBuiltins() {
	move := func(name string, fn func(m *turtle.Model, v float64)) CommandFunc {
		return func(in *Interpreter, args []Value) error {
			v, err := finiteArg(name, args[0])
			if err != nil {
				return err
			}
			fn(in.turtles, v)
			return nil
		}
	}
	action := func(fn func(m *turtle.Model)) CommandFunc {
		return func(in *Interpreter, args []Value) error {
			fn(in.turtles)
			return nil
		}
	}

	// Motion
	in.RegisterCommand(1, move("FORWARD", (*turtle.Model).Forward), "FORWARD", "FD")
	in.RegisterCommand(1, move("BACK", (*turtle.Model).Back), "BACK", "BK")
	in.RegisterCommand(1, move("LEFT", (*turtle.Model).Left), "LEFT", "LT")
	in.RegisterCommand(1, move("RIGHT", (*turtle.Model).Right), "RIGHT", "RT")
	in.RegisterCommand(0, action((*turtle.Model).Home), "HOME")
	in.RegisterCommand(1, move("SETX", (*turtle.Model).SetX), "SETX")
	in.RegisterCommand(1, move("SETY", (*turtle.Model).SetY), "SETY")
	in.RegisterCommand(1, move("SETHEADING", (*turtle.Model).SetHeading), "SETHEADING", "SETH")
	in.RegisterCommand(1, func(in *Interpreter, args []Value) error {
		x, y, err := pointArg("SETPOS", args[0])
		if err != nil {
			return err
		}
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			return newInvalidArgumentError("SETPOS needs real numbers, but got [%s %s].", FormatNumber(x), FormatNumber(y))
		}
		in.turtles.SetPosition(x, y)
		return nil
	}, "SETPOS")
	in.RegisterCommand(1, move("CIRCLE", (*turtle.Model).Circle), "CIRCLE")
	in.RegisterCommand(2, func(in *Interpreter, args []Value) error {
		angle, err := finiteArg("ARC", args[0])
		if err != nil {
			return err
		}
		radius, err := finiteArg("ARC", args[1])
		if err != nil {
			return err
		}
		in.turtles.Arc(angle, radius)
		return nil
	}, "ARC")

	// Pen
	in.RegisterCommand(0, action((*turtle.Model).PenUp), "PENUP", "PU")
	in.RegisterCommand(0, action((*turtle.Model).PenDown), "PENDOWN", "PD")
	in.RegisterCommand(0, action((*turtle.Model).PenErase), "PENERASE", "PE")
	in.RegisterCommand(0, action((*turtle.Model).PenPaint), "PENPAINT", "PPT")
	in.RegisterCommand(1, func(in *Interpreter, args []Value) error {
		c, err := colorArg("SETPENCOLOR", args[0])
		if err != nil {
			return err
		}
		in.turtles.SetPenColor(c)
		return nil
	}, "SETPENCOLOR", "SETPC")
	in.RegisterCommand(1, move("SETPENSIZE", (*turtle.Model).SetPenSize), "SETPENSIZE")

	// Screen
	in.RegisterCommand(1, func(in *Interpreter, args []Value) error {
		c, err := colorArg("SETBACKGROUND", args[0])
		if err != nil {
			return err
		}
		in.turtles.SetBackground(c)
		return nil
	}, "SETBACKGROUND", "SETBG")
	in.RegisterCommand(0, action((*turtle.Model).ClearScreen), "CLEARSCREEN", "CS")
	in.RegisterCommand(0, action((*turtle.Model).Clean), "CLEAN")
	in.RegisterCommand(0, action((*turtle.Model).HideTurtle), "HIDETURTLE", "HT")
	in.RegisterCommand(0, action((*turtle.Model).ShowTurtle), "SHOWTURTLE", "ST")
	in.RegisterCommand(0, action(func(m *turtle.Model) { m.SetEdgeMode(turtle.EdgeWrap) }), "WRAP")
	in.RegisterCommand(0, action(func(m *turtle.Model) { m.SetEdgeMode(turtle.EdgeWindow) }), "WINDOW")
	in.RegisterCommand(0, action(func(m *turtle.Model) { m.SetEdgeMode(turtle.EdgeFence) }), "FENCE")

	// Multiple turtles
	in.RegisterCommand(1, func(in *Interpreter, args []Value) error {
		id, err := turtleIDArg("TELL", args[0])
		if err != nil {
			return err
		}
		in.turtles.Tell(id)
		return nil
	}, "TELL")

	// Queries
	query := func(fn func(t turtle.Turtle) Value) FunctionFunc {
		return func(in *Interpreter, args []Value) (Value, error) {
			return fn(in.turtles.Current()), nil
		}
	}
	in.RegisterFunction(0, query(func(t turtle.Turtle) Value { return t.X }), "XCOR")
	in.RegisterFunction(0, query(func(t turtle.Turtle) Value { return t.Y }), "YCOR")
	in.RegisterFunction(0, query(func(t turtle.Turtle) Value { return t.Heading }), "HEADING")
	in.RegisterFunction(0, query(func(t turtle.Turtle) Value { return []Value{t.X, t.Y} }), "POS")
	in.RegisterFunction(0, query(func(t turtle.Turtle) Value { return t.PenSize }), "PENSIZE")
	in.RegisterFunction(0, query(func(t turtle.Turtle) Value { return colorValue(t.PenColor) }), "PENCOLOR", "PC")
	in.RegisterFunction(0, func(in *Interpreter, args []Value) (Value, error) {
		return float64(in.turtles.CurrentID()), nil
	}, "WHO")
	in.RegisterFunction(0, func(in *Interpreter, args []Value) (Value, error) {
		ids := in.turtles.TurtleIDs()
		out := make([]Value, len(ids))
		for i, id := range ids {
			out[i] = float64(id)
		}
		return out, nil
	}, "TURTLES")
	in.RegisterFunction(1, func(in *Interpreter, args []Value) (Value, error) {
		x, y, err := pointArg("TOWARDS", args[0])
		if err != nil {
			return nil, err
		}
		return in.turtles.Towards(x, y), nil
	}, "TOWARDS")
	in.RegisterFunction(1, func(in *Interpreter, args []Value) (Value, error) {
		x, y, err := pointArg("DISTANCE", args[0])
		if err != nil {
			return nil, err
		}
		return in.turtles.Distance(x, y), nil
	}, "DISTANCE")
}

// turtleIDArg accepts a whole number, or a list whose first item is one.
func turtleIDArg(name string, v Value) (turtle.ID, error) {
	if list, ok := v.([]Value); ok {
		if len(list) == 0 {
			return 0, newInvalidArgumentError("%s needs a turtle number, but the list is empty.", name)
		}
		v = list[0]
	}
	f, err := numberArg(name, v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, newInvalidArgumentError("%s needs a whole turtle number, but got %s.", name, FormatNumber(f))
	}
	return turtle.ID(f), nil
}
