package eval

import (
	"errors"
	"fmt"
	"lox/lexer"
)

//go:generate stringer -type=ErrorKind

type ErrorKind uint8

const (
	_ = ErrorKind(iota)
	InvalidOperand
	UndefinedVariable
	NotCallable
	Arity
)

// Sentinels for errors.Is; a *RuntimeError matches the one for its Kind.
var (
	ErrInvalidOperand    = errors.New("invalid operand")
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrNotCallable       = errors.New("not callable")
	ErrArity             = errors.New("arity mismatch")
)

var sentinels = map[ErrorKind]error{
	InvalidOperand:    ErrInvalidOperand,
	UndefinedVariable: ErrUndefinedVariable,
	NotCallable:       ErrNotCallable,
	Arity:             ErrArity,
}

// RuntimeError is raised while evaluating. Name is set for
// UndefinedVariable, Expected and Got for Arity. Line is the line
// of the token which triggered the error, or 0 if it is not yet known.
type RuntimeError struct {
	Kind     ErrorKind
	Name     string
	Expected int
	Got      int
	Line     int
	Message  string
}

func (e *RuntimeError) Error() string { return e.String() }
func (e *RuntimeError) String() string {
	if e.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

func (e *RuntimeError) Is(target error) bool {
	return sentinels[e.Kind] == target
}

func invalidOperand(msg string) *RuntimeError {
	return &RuntimeError{Kind: InvalidOperand, Message: msg}
}

func undefinedVariable(name string) *RuntimeError {
	return &RuntimeError{
		Kind:    UndefinedVariable,
		Name:    name,
		Message: fmt.Sprintf("Undefined variable '%s'.", name),
	}
}

func notCallable() *RuntimeError {
	return &RuntimeError{Kind: NotCallable, Message: "Can only call functions."}
}

func arityMismatch(expected, got int) *RuntimeError {
	return &RuntimeError{
		Kind:     Arity,
		Expected: expected,
		Got:      got,
		Message:  fmt.Sprintf("Expected %d arguments but got %d.", expected, got),
	}
}

// fail attributes err to tok and reports it, once. Errors which
// already carry a line were reported deeper down and pass through.
func (in *Interpreter) fail(err error, tok lexer.Token) error {
	var re *RuntimeError
	if !errors.As(err, &re) || re.Line != 0 {
		return err
	}
	re.Line = tok.Line
	T().Debugf("runtime error at %s:%d:%d: %s", in.filename, tok.Line, tok.Column, re.Message)
	fmt.Fprintln(in.errOut, re.String())
	return re
}
