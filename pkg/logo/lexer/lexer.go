// Package lexer provides lexical analysis for Logo source code.
//
// The lexer never fails: characters it does not recognize are dropped.
package lexer

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/zurustar/kame/pkg/logo/token"
)

// Lexer tokenizes Logo source code.
type Lexer struct {
	input        []rune
	position     int  // current position in input
	readPosition int  // current reading position (after current char)
	ch           rune // current char
	line         int  // current line number
	depth        int  // open bracket count
	tokens       []token.Token
}

// New creates a new Lexer.
func New(input string) *Lexer {
	l := &Lexer{
		input: []rune(input),
		line:  1,
	}
	l.readChar()
	return l
}

// Tokenize turns source text into a flat token stream.
func Tokenize(source string) []token.Token {
	return New(source).All()
}

// All reads every remaining token.
func (l *Lexer) All() []token.Token {
	for l.ch != 0 {
		l.next()
	}
	return l.tokens
}

// next consumes input up to and including the next token, if any.
func (l *Lexer) next() {
	switch {
	case unicode.IsSpace(l.ch):
		l.readChar()
	case l.ch == ';':
		l.skipComment()
	case l.ch == '[':
		l.depth++
		l.emitChar(token.LBRACKET)
	case l.ch == ']':
		l.depth--
		l.emitChar(token.RBRACKET)
	case l.ch == '(':
		l.emitChar(token.LPAREN)
	case l.ch == ')':
		l.emitChar(token.RPAREN)
	case l.ch == '+' || l.ch == '*' || l.ch == '/':
		l.emitChar(token.OPERATOR)
	case l.ch == '-':
		l.readMinus()
	case l.ch == '=' || l.ch == '<' || l.ch == '>':
		l.readComparison()
	case l.ch == ':':
		l.readVariable()
	case l.ch == '"':
		l.readQuoted()
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		l.readNumber(false)
	case isWordStart(l.ch):
		l.readWord()
	default:
		l.readChar()
	}
}

// readChar reads the next character.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) emit(tok token.Token) {
	tok.Line = l.line
	l.tokens = append(l.tokens, tok)
}

// emitChar emits a single-character token and advances past it.
func (l *Lexer) emitChar(kind token.Kind) {
	l.emit(token.Token{Kind: kind, Text: string(l.ch)})
	l.readChar()
}

func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// readMinus decides between subtraction and a negative number literal.
// Inside a list literal "-" before a digit is always a sign so that [-150 -10] is a point.
func (l *Lexer) readMinus() {
	if !isDigit(l.peekChar()) {
		l.emitChar(token.OPERATOR)
		return
	}
	if l.depth == 0 && len(l.tokens) > 0 && l.tokens[len(l.tokens)-1].Kind.ProducesValue() {
		l.emitChar(token.OPERATOR)
		return
	}
	l.readChar()
	l.readNumber(true)
}

// readComparison reads =, <, >, <=, >= or <>.
func (l *Lexer) readComparison() {
	op := string(l.ch)
	next := l.peekChar()
	if (l.ch == '<' && (next == '=' || next == '>')) || (l.ch == '>' && next == '=') {
		l.readChar()
		op += string(l.ch)
	}
	l.readChar()
	l.emit(token.Token{Kind: token.COMPARISON, Text: op})
}

// readVariable reads :name. A bare colon produces nothing.
func (l *Lexer) readVariable() {
	l.readChar()
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' || l.ch == '.' {
		l.readChar()
	}
	if l.position > position {
		l.emit(token.Token{Kind: token.VARREF, Text: string(l.input[position:l.position])})
	}
}

// readQuoted reads "word. A backslash before a space embeds the space.
func (l *Lexer) readQuoted() {
	l.readChar()
	var sb strings.Builder
	for l.ch != 0 {
		if l.ch == '\\' && l.peekChar() == ' ' {
			sb.WriteRune(' ')
			l.readChar()
			l.readChar()
			continue
		}
		if unicode.IsSpace(l.ch) || strings.ContainsRune("[]();", l.ch) {
			break
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	l.emit(token.Token{Kind: token.QUOTED, Text: sb.String()})
}

// readNumber reads a decimal number such as 12, 3.5 or .5.
func (l *Lexer) readNumber(negative bool) {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	} else if l.ch == '.' && l.position > position {
		// "5." is still the number five
		l.readChar()
	}

	literal := strings.TrimSuffix(string(l.input[position:l.position]), ".")
	n, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return
	}
	if negative {
		n = -n
		literal = "-" + literal
	}
	l.emit(token.Token{Kind: token.NUMBER, Number: n, Text: literal})
}

// readWord reads a bareword and normalizes it to uppercase.
func (l *Lexer) readWord() {
	position := l.position
	for isWordStart(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	word := strings.ToUpper(string(l.input[position:l.position]))
	l.emit(token.Token{Kind: token.WORD, Text: word})
}

// isLetter checks if a character is a letter.
func isLetter(ch rune) bool {
	return ch != 0 && unicode.IsLetter(ch)
}

// isDigit checks if a character is a digit.
func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isWordStart(ch rune) bool {
	return isLetter(ch) || ch == '_' || ch == '?'
}
