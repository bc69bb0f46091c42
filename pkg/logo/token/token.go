// Package token defines the lexical tokens of the Logo language.
package token

import (
	"strconv"
	"strings"
)

// Kind represents the kind of a token.
type Kind int

// Token kinds
const (
	NUMBER     Kind = iota // 42, 3.5, -10
	WORD                   // FORWARD, SQUARE, EMPTY? (always uppercase)
	QUOTED                 // "hello
	VARREF                 // :size
	LBRACKET               // [
	RBRACKET               // ]
	LPAREN                 // (
	RPAREN                 // )
	OPERATOR               // + - * /
	COMPARISON             // = < > <= >= <>
)

// kindNames maps Kind to its string representation.
var kindNames = map[Kind]string{
	NUMBER:     "NUMBER",
	WORD:       "WORD",
	QUOTED:     "QUOTED",
	VARREF:     "VARREF",
	LBRACKET:   "LBRACKET",
	RBRACKET:   "RBRACKET",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	OPERATOR:   "OPERATOR",
	COMPARISON: "COMPARISON",
}

// String returns a string representation of the token kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// ProducesValue reports whether a token of this kind can end a value.
// A minus sign after such a token is subtraction, not a negative number.
func (k Kind) ProducesValue() bool {
	switch k {
	case NUMBER, WORD, RPAREN, RBRACKET:
		return true
	default:
		return false
	}
}

// Token represents a lexical token.
// Number is set only for NUMBER tokens; Text holds the literal for every other kind.
type Token struct {
	Kind   Kind
	Text   string
	Number float64
	Line   int
}

// Is reports whether the token has the given kind and text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// String returns the token as it would appear in source code.
func (t Token) String() string {
	switch t.Kind {
	case NUMBER:
		return strconv.FormatFloat(t.Number, 'f', -1, 64)
	case QUOTED:
		return "\"" + strings.ReplaceAll(t.Text, " ", "\\ ")
	case VARREF:
		return ":" + t.Text
	default:
		return t.Text
	}
}

// Node is one element of a bracketed list literal: a single token or a nested list.
type Node struct {
	Token  Token
	List   []Node
	IsList bool
}

// Join formats tokens back into source text separated by spaces.
func Join(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
