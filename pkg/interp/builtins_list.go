package interp

import (
	"slices"
	"strings"
)

// sequence is the list or word a list operation works on.
type sequence struct {
	list   []Value
	runes  []rune
	isWord bool
}

func (s sequence) len() int {
	if s.isWord {
		return len(s.runes)
	}
	return len(s.list)
}

// at returns the zero-based element k.
func (s sequence) at(k int) Value {
	if s.isWord {
		return string(s.runes[k])
	}
	return s.list[k]
}

// slice returns elements [lo, hi) with the same kind as s.
func (s sequence) slice(lo, hi int) Value {
	if s.isWord {
		return string(s.runes[lo:hi])
	}
	out := make([]Value, hi-lo)
	copy(out, s.list[lo:hi])
	return out
}

func sequenceArg(name string, v Value) (sequence, error) {
	switch val := v.(type) {
	case []Value:
		return sequence{list: val}, nil
	case string:
		return sequence{runes: []rune(val), isWord: true}, nil
	}
	return sequence{}, newTypeError("%s needs a list like [1 2 3] or a word", name)
}

func errEmpty(name string, s sequence) error {
	if s.isWord {
		return NewRuntimeError(ErrorIndexOutOfRange,
			"The word is empty! "+name+" needs at least one character.")
	}
	return NewRuntimeError(ErrorIndexOutOfRange,
		"The list is empty! "+name+" needs at least one item.")
}

// registerListBuiltins registers list and word selectors, constructors and predicates.
func (in *Interpreter) registerListBuiltins() {
	in.RegisterFunction(1, func(in *Interpreter, args []Value) (Value, error) {
		s, err := sequenceArg("FIRST", args[0])
		if err != nil {
			return nil, err
		}
		if s.len() == 0 {
			return nil, errEmpty("FIRST", s)
		}
		return s.at(0), nil
	}, "FIRST")

	in.RegisterFunction(1, func(in *Interpreter, args []Value) (Value, error) {
		s, err := sequenceArg("LAST", args[0])
		if err != nil {
			return nil, err
		}
		if s.len() == 0 {
			return nil, errEmpty("LAST", s)
		}
		return s.at(s.len() - 1), nil
	}, "LAST")

	in.RegisterFunction(1, func(in *Interpreter, args []Value) (Value, error) {
		s, err := sequenceArg("BUTFIRST", args[0])
		if err != nil {
			return nil, err
		}
		if s.len() == 0 {
			return s.slice(0, 0), nil
		}
		return s.slice(1, s.len()), nil
	}, "BUTFIRST", "BF")

	in.RegisterFunction(1, func(in *Interpreter, args []Value) (Value, error) {
		s, err := sequenceArg("BUTLAST", args[0])
		if err != nil {
			return nil, err
		}
		if s.len() == 0 {
			return s.slice(0, 0), nil
		}
		return s.slice(0, s.len()-1), nil
	}, "BUTLAST", "BL")

	in.RegisterFunction(1, func(in *Interpreter, args []Value) (Value, error) {
		s, err := sequenceArg("COUNT", args[0])
		if err != nil {
			return nil, err
		}
		return float64(s.len()), nil
	}, "COUNT")

	in.RegisterFunction(2, func(in *Interpreter, args []Value) (Value, error) {
		n, err := intArg("ITEM", args[0])
		if err != nil {
			return nil, err
		}
		s, err := sequenceArg("ITEM", args[1])
		if err != nil {
			return nil, err
		}
		if s.len() == 0 {
			if s.isWord {
				return nil, NewRuntimeError(ErrorIndexOutOfRange, "The word is empty! There are no characters to get.")
			}
			return nil, NewRuntimeError(ErrorIndexOutOfRange, "The list is empty! There are no items to get.")
		}
		if n < 1 || n > s.len() {
			return nil, errIndexOutOfRange(n, s.len(), s.isWord)
		}
		return s.at(n - 1), nil
	}, "ITEM")

	in.register(&builtin{
		arity:    2,
		variadic: true,
		function: func(in *Interpreter, args []Value) (Value, error) {
			out := make([]Value, len(args))
			copy(out, args)
			return out, nil
		},
	}, "LIST")

	in.register(&builtin{
		arity:    2,
		variadic: true,
		function: func(in *Interpreter, args []Value) (Value, error) {
			out := []Value{}
			for _, a := range args {
				if list, ok := a.([]Value); ok {
					out = append(out, list...)
				} else {
					out = append(out, a)
				}
			}
			return out, nil
		},
	}, "SENTENCE", "SE")

	in.RegisterFunction(2, func(in *Interpreter, args []Value) (Value, error) {
		list, ok := args[1].([]Value)
		if !ok {
			return nil, newTypeError("FPUT needs a list: FPUT \"hello [1 2 3] puts \"hello at the front")
		}
		out := make([]Value, 0, len(list)+1)
		out = append(out, args[0])
		return append(out, list...), nil
	}, "FPUT")

	in.RegisterFunction(2, func(in *Interpreter, args []Value) (Value, error) {
		list, ok := args[1].([]Value)
		if !ok {
			return nil, newTypeError("LPUT needs a list: LPUT \"hello [1 2 3] puts \"hello at the end")
		}
		out := make([]Value, 0, len(list)+1)
		out = append(out, list...)
		return append(out, args[0]), nil
	}, "LPUT")

	in.RegisterFunction(1, func(in *Interpreter, args []Value) (Value, error) {
		s, err := sequenceArg("REVERSE", args[0])
		if err != nil {
			return nil, err
		}
		if s.isWord {
			r := slices.Clone(s.runes)
			slices.Reverse(r)
			return string(r), nil
		}
		out := slices.Clone(s.list)
		slices.Reverse(out)
		if out == nil {
			out = []Value{}
		}
		return out, nil
	}, "REVERSE")

	in.RegisterFunction(1, func(in *Interpreter, args []Value) (Value, error) {
		switch v := args[0].(type) {
		case []Value:
			return len(v) == 0, nil
		case string:
			return v == "", nil
		}
		return false, nil
	}, "EMPTY?")

	in.RegisterFunction(1, func(in *Interpreter, args []Value) (Value, error) {
		_, ok := args[0].([]Value)
		return ok, nil
	}, "LIST?")

	in.RegisterFunction(1, func(in *Interpreter, args []Value) (Value, error) {
		_, ok := args[0].(float64)
		return ok, nil
	}, "NUMBER?")

	in.RegisterFunction(1, func(in *Interpreter, args []Value) (Value, error) {
		_, ok := args[0].(string)
		return ok, nil
	}, "WORD?")

	in.RegisterFunction(2, func(in *Interpreter, args []Value) (Value, error) {
		switch v := args[1].(type) {
		case []Value:
			for _, item := range v {
				if valuesEqual(item, args[0]) {
					return true, nil
				}
			}
			return false, nil
		case string:
			return strings.Contains(v, FormatValue(args[0])), nil
		}
		return false, nil
	}, "MEMBER?")
}
