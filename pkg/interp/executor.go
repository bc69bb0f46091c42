package interp

import (
	"context"

	"github.com/zurustar/kame/pkg/logo/lexer"
	"github.com/zurustar/kame/pkg/logo/token"
)

// executeTokens runs statements from tokens[i] until the tokens are used
// up, a signal is raised, an error occurs or a stop is requested.
func (in *Interpreter) executeTokens(ctx context.Context, tokens []token.Token, i int) (int, Signal, error) {
	for i < len(tokens) {
		if in.stopRequested(ctx) {
			return i, noSignal, nil
		}
		tok := tokens[i]
		if tok.Kind != token.WORD {
			in.log.Debug("Skipping stray token", "token", tok.String(), "line", tok.Line)
			i++
			continue
		}

		var sig Signal
		var err error
		switch tok.Text {
		case "TO":
			i, err = in.defineProcedure(tokens, i+1)
		case "END":
			err = newParseError("I found END without a matching TO.")
		default:
			i, sig, err = in.executeStatement(ctx, tokens, i)
		}
		if err != nil {
			return i, noSignal, withLine(err, tok.Line)
		}
		if sig.Active() {
			return i, sig, nil
		}
		in.pause(ctx)
	}
	return i, noSignal, nil
}

// executeBlock runs a bracketed block's tokens.
func (in *Interpreter) executeBlock(ctx context.Context, block []token.Token) (Signal, error) {
	_, sig, err := in.executeTokens(ctx, block, 0)
	return sig, err
}

// executeStatement runs the single statement that starts with the word at tokens[i].
func (in *Interpreter) executeStatement(ctx context.Context, tokens []token.Token, i int) (int, Signal, error) {
	name := tokens[i].Text
	i++

	if b, ok := in.builtins[name]; ok {
		switch {
		case b.special != nil:
			return b.special(ctx, in, tokens, i)
		case b.command != nil:
			args, next, err := in.evaluateArgs(ctx, tokens, i, b.arity)
			if err != nil {
				return next, noSignal, err
			}
			return next, noSignal, b.command(in, args)
		}
		// A value with nowhere to go.
		v, next, err := in.evaluateWord(ctx, tokens, i-1)
		if err != nil {
			return next, noSignal, err
		}
		return next, noSignal, newParseError("I don't know what to do with %s. Try PRINT %s.", FormatShow(v), name)
	}

	if proc, ok := in.state.Procedure(name); ok {
		_, next, err := in.callProcedure(ctx, proc, tokens, i)
		return next, noSignal, err
	}

	return i, noSignal, errUnknownCommand(name, suggest(name, in.knownNames()))
}

// readBlock expects a bracketed block at tokens[i] and returns its inner
// tokens and the index after the closing bracket.
func readBlock(tokens []token.Token, i int, usage string) ([]token.Token, int, error) {
	if i >= len(tokens) || tokens[i].Kind != token.LBRACKET {
		return nil, i, newParseError("%s", usage)
	}
	end, err := lexer.MatchBracket(tokens, i)
	if err != nil {
		return nil, i, newParseError("You opened [ but forgot to close it with ]")
	}
	return tokens[i+1 : end], end + 1, nil
}

// defineProcedure reads "name :param ... body END" starting at tokens[i]
// and stores the procedure. Nested TO ... END pairs belong to the body.
func (in *Interpreter) defineProcedure(tokens []token.Token, i int) (int, error) {
	if i >= len(tokens) || tokens[i].Kind != token.WORD {
		return i, newParseError("TO needs a name for your procedure: TO SQUARE ... END")
	}
	name := normalizeName(tokens[i].Text)
	if _, ok := in.builtins[name]; ok {
		return i, newInvalidArgumentError("%s is already a built-in command. Please choose a different name.", name)
	}
	i++

	var params []string
	for i < len(tokens) && tokens[i].Kind == token.VARREF {
		params = append(params, normalizeName(tokens[i].Text))
		i++
	}

	start := i
	depth := 0
	for ; i < len(tokens); i++ {
		if tokens[i].Kind != token.WORD {
			continue
		}
		switch tokens[i].Text {
		case "TO":
			depth++
		case "END":
			if depth == 0 {
				body := make([]token.Token, i-start)
				copy(body, tokens[start:i])
				in.state.DefineProcedure(&Procedure{Name: name, Params: params, Body: body})
				in.log.Debug("Procedure defined", "name", name, "params", params, "tokens", len(body))
				return i + 1, nil
			}
			depth--
		}
	}
	return i, newParseError("Your procedure %s is missing END. Every TO needs an END!", name)
}

// callProcedure evaluates the arguments at tokens[i], runs the body in a
// new frame and returns the OUTPUT value (nil if none).
func (in *Interpreter) callProcedure(ctx context.Context, proc *Procedure, tokens []token.Token, i int) (Value, int, error) {
	args, next, err := in.evaluateArgs(ctx, tokens, i, len(proc.Params))
	if err != nil {
		return nil, next, err
	}
	if in.state.depth >= MaxCallDepth {
		return nil, next, errStackOverflow(proc.Name)
	}

	in.state.depth++
	leave := in.state.pushFrame()
	defer func() {
		leave()
		in.state.depth--
	}()

	for k, param := range proc.Params {
		in.state.SetLocal(param, args[k])
	}

	sig, err := in.executeBlock(ctx, proc.Body)
	if err != nil {
		return nil, next, err
	}
	if sig.Kind == SignalOutput {
		return sig.Value, next, nil
	}
	return nil, next, nil
}
