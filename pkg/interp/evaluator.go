package interp

import (
	"context"

	"github.com/zurustar/kame/pkg/logo/lexer"
	"github.com/zurustar/kame/pkg/logo/token"
)

// evaluate parses and evaluates one expression starting at tokens[i].
// It returns the value and the index of the first unconsumed token.
//
//	expression := term (("+" | "-") term)*
//	term       := unary (("*" | "/") unary)*
//	unary      := "-" unary | primary
func (in *Interpreter) evaluate(ctx context.Context, tokens []token.Token, i int) (Value, int, error) {
	left, i, err := in.evaluateTerm(ctx, tokens, i)
	if err != nil {
		return nil, i, err
	}
	for i < len(tokens) && tokens[i].Kind == token.OPERATOR && (tokens[i].Text == "+" || tokens[i].Text == "-") {
		op := tokens[i].Text
		var right Value
		right, i, err = in.evaluateTerm(ctx, tokens, i+1)
		if err != nil {
			return nil, i, err
		}
		left, err = arithmetic(op, left, right)
		if err != nil {
			return nil, i, err
		}
	}
	return left, i, nil
}

func (in *Interpreter) evaluateTerm(ctx context.Context, tokens []token.Token, i int) (Value, int, error) {
	left, i, err := in.evaluateUnary(ctx, tokens, i)
	if err != nil {
		return nil, i, err
	}
	for i < len(tokens) && tokens[i].Kind == token.OPERATOR && (tokens[i].Text == "*" || tokens[i].Text == "/") {
		op := tokens[i].Text
		var right Value
		right, i, err = in.evaluateUnary(ctx, tokens, i+1)
		if err != nil {
			return nil, i, err
		}
		left, err = arithmetic(op, left, right)
		if err != nil {
			return nil, i, err
		}
	}
	return left, i, nil
}

func (in *Interpreter) evaluateUnary(ctx context.Context, tokens []token.Token, i int) (Value, int, error) {
	if i >= len(tokens) {
		return nil, i, errRanOut()
	}
	if tokens[i].Is(token.OPERATOR, "-") {
		v, next, err := in.evaluateUnary(ctx, tokens, i+1)
		if err != nil {
			return nil, next, err
		}
		f, err := numberArg("-", v)
		if err != nil {
			return nil, next, err
		}
		return -f, next, nil
	}
	return in.evaluatePrimary(ctx, tokens, i)
}

func (in *Interpreter) evaluatePrimary(ctx context.Context, tokens []token.Token, i int) (Value, int, error) {
	if i >= len(tokens) {
		return nil, i, errRanOut()
	}
	tok := tokens[i]
	switch tok.Kind {
	case token.NUMBER:
		return tok.Number, i + 1, nil

	case token.QUOTED:
		return tok.Text, i + 1, nil

	case token.VARREF:
		v, err := in.state.Variable(tok.Text)
		if err != nil {
			return nil, i, withLine(err, tok.Line)
		}
		return v, i + 1, nil

	case token.LBRACKET:
		nodes, next, err := lexer.ParseList(tokens, i)
		if err != nil {
			return nil, i, withLine(newParseError("You opened [ but forgot to close it with ]"), tok.Line)
		}
		list, err := in.listValue(nodes)
		if err != nil {
			return nil, i, withLine(err, tok.Line)
		}
		return list, next, nil

	case token.LPAREN:
		return in.evaluateParens(ctx, tokens, i)

	case token.WORD:
		v, next, err := in.evaluateWord(ctx, tokens, i)
		if err != nil {
			return nil, next, withLine(err, tok.Line)
		}
		return v, next, nil
	}
	return nil, i, withLine(newParseError("I didn't expect %q here.", tok.String()), tok.Line)
}

// evaluateParens handles grouping and the variadic (LIST ...) forms.
func (in *Interpreter) evaluateParens(ctx context.Context, tokens []token.Token, i int) (Value, int, error) {
	open := tokens[i]
	i++
	if i < len(tokens) && tokens[i].Kind == token.WORD {
		if b, ok := in.builtins[tokens[i].Text]; ok && b.variadic {
			var args []Value
			j := i + 1
			for j < len(tokens) && tokens[j].Kind != token.RPAREN {
				var v Value
				var err error
				v, j, err = in.evaluate(ctx, tokens, j)
				if err != nil {
					return nil, j, err
				}
				args = append(args, v)
			}
			if j >= len(tokens) {
				return nil, j, withLine(newParseError("You opened ( but forgot to close it with )"), open.Line)
			}
			v, err := b.function(in, args)
			return v, j + 1, withLine(err, open.Line)
		}
	}
	v, i, err := in.evaluate(ctx, tokens, i)
	if err != nil {
		return nil, i, err
	}
	if i >= len(tokens) || tokens[i].Kind != token.RPAREN {
		return nil, i, withLine(newParseError("You opened ( but forgot to close it with )"), open.Line)
	}
	return v, i + 1, nil
}

// evaluateWord applies a builtin or procedure that must output a value.
func (in *Interpreter) evaluateWord(ctx context.Context, tokens []token.Token, i int) (Value, int, error) {
	name := tokens[i].Text
	i++

	if b, ok := in.builtins[name]; ok {
		switch {
		case b.reader != nil:
			return b.reader(ctx, in, tokens, i)
		case b.function != nil:
			args, next, err := in.evaluateArgs(ctx, tokens, i, b.arity)
			if err != nil {
				return nil, next, err
			}
			v, err := b.function(in, args)
			return v, next, err
		}
		return nil, i, newTypeError("%s doesn't output a value, so it can't be used inside an expression.", name)
	}

	if proc, ok := in.state.Procedure(name); ok {
		v, next, err := in.callProcedure(ctx, proc, tokens, i)
		if err != nil {
			return nil, next, err
		}
		if v == nil {
			return nil, next, newTypeError("%s didn't OUTPUT a value.", proc.Name)
		}
		return v, next, nil
	}

	return nil, i, errUnknownFunction(name, suggest(name, in.knownNames()))
}

// evaluateArgs evaluates n consecutive expressions.
func (in *Interpreter) evaluateArgs(ctx context.Context, tokens []token.Token, i, n int) ([]Value, int, error) {
	if n == 0 {
		return nil, i, nil
	}
	args := make([]Value, n)
	for k := 0; k < n; k++ {
		v, next, err := in.evaluate(ctx, tokens, i)
		if err != nil {
			return nil, next, err
		}
		args[k] = v
		i = next
	}
	return args, i, nil
}

// evaluateCondition evaluates an expression optionally followed by a
// comparison operator and a second expression.
func (in *Interpreter) evaluateCondition(ctx context.Context, tokens []token.Token, i int) (bool, int, error) {
	left, i, err := in.evaluate(ctx, tokens, i)
	if err != nil {
		return false, i, err
	}
	if i >= len(tokens) || tokens[i].Kind != token.COMPARISON {
		return isTruthy(left), i, nil
	}
	op := tokens[i].Text
	right, i, err := in.evaluate(ctx, tokens, i+1)
	if err != nil {
		return false, i, err
	}
	switch op {
	case "=":
		return valuesEqual(left, right), i, nil
	case "<>":
		return !valuesEqual(left, right), i, nil
	default:
		return compareValues(op, left, right), i, nil
	}
}

// listValue turns a bracketed literal into a list. Words stay words and
// variable references are replaced by their current value.
func (in *Interpreter) listValue(nodes []token.Node) ([]Value, error) {
	list := make([]Value, 0, len(nodes))
	for _, n := range nodes {
		if n.IsList {
			sub, err := in.listValue(n.List)
			if err != nil {
				return nil, err
			}
			list = append(list, sub)
			continue
		}
		switch n.Token.Kind {
		case token.NUMBER:
			list = append(list, n.Token.Number)
		case token.VARREF:
			v, err := in.state.Variable(n.Token.Text)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		default:
			list = append(list, n.Token.Text)
		}
	}
	return list, nil
}

// arithmetic applies a binary operator to two numeric values.
func arithmetic(op string, left, right Value) (Value, error) {
	a, err := numberArg(op, left)
	if err != nil {
		return nil, err
	}
	b, err := numberArg(op, right)
	if err != nil {
		return nil, err
	}
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return nil, errDivisionByZero()
		}
		return a / b, nil
	}
	return nil, newParseError("unknown operator %s", op)
}
