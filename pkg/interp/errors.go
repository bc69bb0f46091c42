// Package interp provides error handling for the Logo interpreter.
package interp

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of runtime error.
type ErrorType string

const (
	ErrorParse           ErrorType = "PARSE_ERROR"
	ErrorUnboundVariable ErrorType = "UNBOUND_VARIABLE"
	ErrorUnknownCommand  ErrorType = "UNKNOWN_COMMAND"
	ErrorWrongType       ErrorType = "TYPE_ERROR"
	ErrorIndexOutOfRange ErrorType = "INDEX_OUT_OF_RANGE"
	ErrorDivisionByZero  ErrorType = "DIVISION_BY_ZERO"
	ErrorInvalidArgument ErrorType = "INVALID_ARGUMENT"
	ErrorStackOverflow   ErrorType = "STACK_OVERFLOW"
)

// ErrAlreadyRunning is returned when Execute is called while another run is in progress.
var ErrAlreadyRunning = errors.New("interpreter is already running")

// RuntimeError is a terminal error raised while running a program.
// Message is written for beginners and is what hosts show to the user.
type RuntimeError struct {
	Type       ErrorType
	Message    string
	Suggestion string // closest known name for unknown commands, if any
	Line       int    // source line if available, 0 otherwise
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	return e.Message
}

// NewRuntimeError creates a new RuntimeError.
func NewRuntimeError(errType ErrorType, message string) *RuntimeError {
	return &RuntimeError{Type: errType, Message: message}
}

// IsType reports whether err is a RuntimeError of the given type.
func IsType(err error, errType ErrorType) bool {
	var re *RuntimeError
	return errors.As(err, &re) && re.Type == errType
}

func newParseError(format string, args ...any) *RuntimeError {
	return NewRuntimeError(ErrorParse, fmt.Sprintf(format, args...))
}

func newTypeError(format string, args ...any) *RuntimeError {
	return NewRuntimeError(ErrorWrongType, fmt.Sprintf(format, args...))
}

func newInvalidArgumentError(format string, args ...any) *RuntimeError {
	return NewRuntimeError(ErrorInvalidArgument, fmt.Sprintf(format, args...))
}

func errRanOut() *RuntimeError {
	return newParseError("I ran out of things to read! Did you forget to finish your code?")
}

func errDivisionByZero() *RuntimeError {
	return NewRuntimeError(ErrorDivisionByZero, "Oops! You can't divide by zero.")
}

func errUnboundVariable(name string) *RuntimeError {
	return NewRuntimeError(ErrorUnboundVariable,
		fmt.Sprintf("I don't know the variable :%s yet. Did you create it with MAKE first?", name))
}

func errIndexOutOfRange(index, length int, word bool) *RuntimeError {
	what, unit := "Item", "list"
	if word {
		what, unit = "Character", "word"
	}
	plural := "s"
	if length == 1 {
		plural = ""
	}
	return NewRuntimeError(ErrorIndexOutOfRange,
		fmt.Sprintf("%s %d doesn't exist! The %s only has %d %s%s.",
			what, index, unit, length, strings.ToLower(what), plural))
}

func errStackOverflow(name string) *RuntimeError {
	return NewRuntimeError(ErrorStackOverflow,
		fmt.Sprintf("%s called itself too many times (more than %d). Did you forget a STOP?", name, MaxCallDepth))
}

// errUnknownCommand builds the error for an unknown statement word.
func errUnknownCommand(name, suggestion string) *RuntimeError {
	e := NewRuntimeError(ErrorUnknownCommand, "")
	e.Suggestion = suggestion
	if suggestion != "" {
		e.Message = fmt.Sprintf("I don't know %q. Did you mean %s?", name, suggestion)
	} else {
		e.Message = fmt.Sprintf("I don't know the command %q. Check your spelling or use HELP to see all commands.", name)
	}
	return e
}

// errUnknownFunction builds the error for an unknown word in value position.
func errUnknownFunction(name, suggestion string) *RuntimeError {
	e := NewRuntimeError(ErrorUnknownCommand, "")
	e.Suggestion = suggestion
	if suggestion != "" {
		e.Message = fmt.Sprintf("I don't know %q. Did you mean %s?", name, suggestion)
	} else {
		e.Message = fmt.Sprintf("I don't know the function %q. Check your spelling!", name)
	}
	return e
}

// withLine attaches a source line to a RuntimeError that has none.
func withLine(err error, line int) error {
	var re *RuntimeError
	if errors.As(err, &re) && re.Line == 0 {
		re.Line = line
	}
	return err
}
