package interp

import (
	"context"
	"strconv"
	"strings"

	"github.com/zurustar/kame/pkg/logo/token"
)

const (
	defaultWordPrompt = "Enter a word:"
	defaultListPrompt = "Enter values (space-separated):"
)

// registerIOBuiltins registers output commands and user input functions.
func (in *Interpreter) registerIOBuiltins() {
	in.RegisterCommand(1, func(in *Interpreter, args []Value) error {
		in.output(FormatValue(args[0]), OutputLine)
		return nil
	}, "PRINT", "PR")
	in.RegisterCommand(1, func(in *Interpreter, args []Value) error {
		in.output(FormatShow(args[0]), OutputLine)
		return nil
	}, "SHOW")
	in.RegisterCommand(1, func(in *Interpreter, args []Value) error {
		in.output(FormatValue(args[0]), OutputInline)
		return nil
	}, "TYPE")
	in.RegisterCommand(0, func(in *Interpreter, args []Value) error {
		in.output(strings.Join(in.BuiltinNames(), " "), OutputLine)
		return nil
	}, "HELP")

	in.registerReader(func(ctx context.Context, in *Interpreter, tokens []token.Token, i int) (Value, int, error) {
		prompt, i := readPrompt(tokens, i, defaultWordPrompt)
		answer, err := in.prompter.Prompt(ctx, prompt)
		if err != nil {
			return nil, i, err
		}
		return answer, i, nil
	}, "READWORD", "RW")

	in.registerReader(func(ctx context.Context, in *Interpreter, tokens []token.Token, i int) (Value, int, error) {
		prompt, i := readPrompt(tokens, i, defaultListPrompt)
		answer, err := in.prompter.Prompt(ctx, prompt)
		if err != nil {
			return nil, i, err
		}
		return parseInputList(answer), i, nil
	}, "READLIST", "RL")
}

// readPrompt takes an optional quoted prompt word that directly follows the reader.
func readPrompt(tokens []token.Token, i int, fallback string) (string, int) {
	if i < len(tokens) && tokens[i].Kind == token.QUOTED {
		return tokens[i].Text, i + 1
	}
	return fallback, i
}

// parseInputList splits a typed line into a list; numeric items become numbers.
func parseInputList(line string) []Value {
	fields := strings.Fields(line)
	list := make([]Value, len(fields))
	for k, f := range fields {
		if n, err := strconv.ParseFloat(f, 64); err == nil {
			list[k] = n
		} else {
			list[k] = f
		}
	}
	return list
}
