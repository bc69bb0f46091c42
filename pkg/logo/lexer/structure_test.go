package lexer

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/zurustar/kame/pkg/logo/token"
)

func renderNodes(nodes []token.Node) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if n.IsList {
			parts = append(parts, renderNodes(n.List))
			continue
		}
		parts = append(parts, n.Token.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// buildSource turns a sequence of operations into a well-formed list literal.
// 0 opens a nested list, 1 closes the innermost one, anything else adds a number.
func buildSource(ops []int, values []int) string {
	var sb strings.Builder
	sb.WriteString("[")
	depth := 1
	needSpace := false
	for i, op := range ops {
		switch op {
		case 0:
			if needSpace {
				sb.WriteString(" ")
			}
			sb.WriteString("[")
			depth++
			needSpace = false
		case 1:
			if depth > 1 {
				sb.WriteString("]")
				depth--
				needSpace = true
			}
		default:
			if needSpace {
				sb.WriteString(" ")
			}
			sb.WriteString(strconv.Itoa(values[i%len(values)]))
			needSpace = true
		}
	}
	for ; depth > 0; depth-- {
		sb.WriteString("]")
	}
	return sb.String()
}

func TestParseList_Nested(t *testing.T) {
	tokens := Tokenize("[1 [2 3] [] [[4]] -5]")
	nodes, next, err := ParseList(tokens, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != len(tokens) {
		t.Errorf("next = %d, want %d", next, len(tokens))
	}
	if got := renderNodes(nodes); got != "[1 [2 3] [] [[4]] -5]" {
		t.Errorf("renderNodes() = %q", got)
	}
}

func TestParseList_Unclosed(t *testing.T) {
	tokens := Tokenize("[1 [2 3]")
	if _, _, err := ParseList(tokens, 0); !errors.Is(err, ErrUnclosedList) {
		t.Errorf("expected ErrUnclosedList, got %v", err)
	}
	if _, err := MatchBracket(tokens, 0); !errors.Is(err, ErrUnclosedList) {
		t.Errorf("expected ErrUnclosedList, got %v", err)
	}
}

func TestMatchBracket(t *testing.T) {
	tokens := Tokenize("repeat 4 [fd 10 [rt 90]] print 1")
	end, err := MatchBracket(tokens, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[end].Kind != token.RBRACKET || tokens[end+1].Text != "PRINT" {
		t.Errorf("MatchBracket() = %d (%s)", end, tokens[end])
	}
}

func TestFlatten_RoundTrip(t *testing.T) {
	source := "[fd 10 [rt 90 [pu]] \"x :y]"
	tokens := Tokenize(source)
	nodes, _, err := ParseList(tokens, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	flat := Flatten(nodes)
	if token.Join(flat) != token.Join(tokens[1:len(tokens)-1]) {
		t.Errorf("Flatten() = %q, want %q", token.Join(flat), token.Join(tokens[1:len(tokens)-1]))
	}
}

// Property: tokenizing a well-formed list literal and re-assembling it preserves
// element order and nesting shape for any nesting depth.
func TestProperty_ListStructurePreserved(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("ParseList(Tokenize(src)) renders back to src", prop.ForAll(
		func(ops []int, values []int) bool {
			if len(values) == 0 {
				values = []int{0}
			}
			source := buildSource(ops, values)
			tokens := Tokenize(source)
			nodes, next, err := ParseList(tokens, 0)
			if err != nil || next != len(tokens) {
				return false
			}
			return renderNodes(nodes) == source
		},
		gen.SliceOf(gen.IntRange(0, 3)),
		gen.SliceOf(gen.IntRange(-500, 500)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
