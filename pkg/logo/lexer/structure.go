package lexer

import (
	"errors"

	"github.com/zurustar/kame/pkg/logo/token"
)

// ErrUnclosedList is returned when a [ has no matching ].
var ErrUnclosedList = errors.New("unclosed list")

// MatchBracket returns the index of the ] matching the [ at tokens[open].
func MatchBracket(tokens []token.Token, open int) (int, error) {
	depth := 0
	for i := open; i < len(tokens); i++ {
		switch tokens[i].Kind {
		case token.LBRACKET:
			depth++
		case token.RBRACKET:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return -1, ErrUnclosedList
}

// ParseList re-assembles the list literal whose [ is at tokens[open] into nested nodes.
// It returns the nodes and the index just past the closing ].
func ParseList(tokens []token.Token, open int) ([]token.Node, int, error) {
	nodes := []token.Node{}
	i := open + 1
	for i < len(tokens) {
		switch tokens[i].Kind {
		case token.RBRACKET:
			return nodes, i + 1, nil
		case token.LBRACKET:
			nested, next, err := ParseList(tokens, i)
			if err != nil {
				return nil, next, err
			}
			nodes = append(nodes, token.Node{List: nested, IsList: true})
			i = next
		default:
			nodes = append(nodes, token.Node{Token: tokens[i]})
			i++
		}
	}
	return nil, i, ErrUnclosedList
}

// Flatten converts nodes back into a token stream with explicit brackets.
func Flatten(nodes []token.Node) []token.Token {
	var tokens []token.Token
	for _, n := range nodes {
		if n.IsList {
			tokens = append(tokens, token.Token{Kind: token.LBRACKET, Text: "["})
			tokens = append(tokens, Flatten(n.List)...)
			tokens = append(tokens, token.Token{Kind: token.RBRACKET, Text: "]"})
			continue
		}
		tokens = append(tokens, n.Token)
	}
	return tokens
}
