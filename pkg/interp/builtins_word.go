package interp

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// registerWordBuiltins registers functions that build and inspect words.
func (in *Interpreter) registerWordBuiltins() {
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)

	in.register(&builtin{
		arity:    2,
		variadic: true,
		function: func(in *Interpreter, args []Value) (Value, error) {
			var b strings.Builder
			for _, a := range args {
				b.WriteString(FormatValue(a))
			}
			return b.String(), nil
		},
	}, "WORD")

	in.RegisterFunction(1, func(in *Interpreter, args []Value) (Value, error) {
		code, err := intArg("CHAR", args[0])
		if err != nil {
			return nil, err
		}
		if code < 0 || code > utf8.MaxRune {
			return nil, newInvalidArgumentError("CHAR needs a character code, but got %d.", code)
		}
		return string(rune(code)), nil
	}, "CHAR")

	in.RegisterFunction(1, func(in *Interpreter, args []Value) (Value, error) {
		s := FormatValue(args[0])
		if s == "" {
			return nil, newInvalidArgumentError("ASCII needs a word with at least one character!")
		}
		r, _ := utf8.DecodeRuneInString(s)
		return float64(r), nil
	}, "ASCII")

	in.RegisterFunction(1, func(in *Interpreter, args []Value) (Value, error) {
		return upper.String(FormatValue(args[0])), nil
	}, "UPPERCASE")

	in.RegisterFunction(1, func(in *Interpreter, args []Value) (Value, error) {
		return lower.String(FormatValue(args[0])), nil
	}, "LOWERCASE")
}
