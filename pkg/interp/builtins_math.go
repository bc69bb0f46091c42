package interp

import "math"

// registerMathBuiltins registers arithmetic and numeric functions.
// Trigonometry works in degrees.
func (in *Interpreter) registerMathBuiltins() {
	unary := func(name string, fn func(float64) (float64, error)) FunctionFunc {
		return func(in *Interpreter, args []Value) (Value, error) {
			x, err := numberArg(name, args[0])
			if err != nil {
				return nil, err
			}
			return fn(x)
		}
	}
	binary := func(name string, fn func(a, b float64) (float64, error)) FunctionFunc {
		return func(in *Interpreter, args []Value) (Value, error) {
			a, err := numberArg(name, args[0])
			if err != nil {
				return nil, err
			}
			b, err := numberArg(name, args[1])
			if err != nil {
				return nil, err
			}
			return fn(a, b)
		}
	}
	pure := func(fn func(float64) float64) func(float64) (float64, error) {
		return func(x float64) (float64, error) { return fn(x), nil }
	}
	const rad = math.Pi / 180

	in.RegisterFunction(1, unary("SQRT", func(x float64) (float64, error) {
		if x < 0 {
			return 0, newInvalidArgumentError("SQRT can't take the square root of a negative number (%s).", FormatNumber(x))
		}
		return math.Sqrt(x), nil
	}), "SQRT")
	in.RegisterFunction(1, unary("SIN", pure(func(x float64) float64 { return math.Sin(x * rad) })), "SIN")
	in.RegisterFunction(1, unary("COS", pure(func(x float64) float64 { return math.Cos(x * rad) })), "COS")
	in.RegisterFunction(1, unary("TAN", pure(func(x float64) float64 { return math.Tan(x * rad) })), "TAN")
	in.RegisterFunction(1, unary("ARCTAN", pure(func(x float64) float64 { return math.Atan(x) / rad })), "ARCTAN")
	in.RegisterFunction(1, unary("ABS", pure(math.Abs)), "ABS")
	in.RegisterFunction(1, unary("INT", pure(math.Trunc)), "INT")
	// Halves round up, so ROUND -2.5 is -2.
	in.RegisterFunction(1, unary("ROUND", pure(func(x float64) float64 { return math.Floor(x + 0.5) })), "ROUND")
	in.RegisterFunction(1, unary("EXP", pure(math.Exp)), "EXP")
	in.RegisterFunction(1, unary("LN", pure(math.Log)), "LN", "LOG")
	in.RegisterFunction(1, unary("LOG10", pure(math.Log10)), "LOG10")
	in.RegisterFunction(1, unary("SIGN", pure(func(x float64) float64 {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		}
		return x
	})), "SIGN")

	in.RegisterFunction(1, func(in *Interpreter, args []Value) (Value, error) {
		n, err := numberArg("RANDOM", args[0])
		if err != nil {
			return nil, err
		}
		if n <= 0 || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0.0, nil
		}
		return math.Floor(in.rng.Float64() * n), nil
	}, "RANDOM")

	in.RegisterFunction(2, binary("POWER", func(a, b float64) (float64, error) {
		return math.Pow(a, b), nil
	}), "POWER")
	// REMAINDER takes the sign of the dividend, MODULO the sign of the divisor.
	in.RegisterFunction(2, binary("REMAINDER", func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, errDivisionByZero()
		}
		return math.Mod(a, b), nil
	}), "REMAINDER")
	in.RegisterFunction(2, binary("MODULO", func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, errDivisionByZero()
		}
		m := math.Mod(a, b)
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return m, nil
	}), "MODULO")
	in.RegisterFunction(2, binary("MIN", func(a, b float64) (float64, error) {
		return math.Min(a, b), nil
	}), "MIN")
	in.RegisterFunction(2, binary("MAX", func(a, b float64) (float64, error) {
		return math.Max(a, b), nil
	}), "MAX")

	in.RegisterFunction(0, func(in *Interpreter, args []Value) (Value, error) {
		return true, nil
	}, "TRUE")
	in.RegisterFunction(0, func(in *Interpreter, args []Value) (Value, error) {
		return false, nil
	}, "FALSE")

	in.RegisterFunction(2, func(in *Interpreter, args []Value) (Value, error) {
		return isTruthy(args[0]) && isTruthy(args[1]), nil
	}, "AND")
	in.RegisterFunction(2, func(in *Interpreter, args []Value) (Value, error) {
		return isTruthy(args[0]) || isTruthy(args[1]), nil
	}, "OR")
	in.RegisterFunction(1, func(in *Interpreter, args []Value) (Value, error) {
		return !isTruthy(args[0]), nil
	}, "NOT")
}
