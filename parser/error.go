package parser

import (
	"fmt"
	"lox/lexer"
	"strings"
)

//go:generate stringer -type=ErrorKind

type ErrorKind uint8

const (
	_ = ErrorKind(iota)
	UnterminatedParen
	UnterminatedArgs
	ExpectedExpression
	MissingSemicolon
	MissingLoopSemicolon
	MissingVariableName
	MissingIdentifier
	InvalidAssignmentTarget
	UnterminatedBlock
	MissingParenAfterIf
	UnclosedIfCondition
	MissingParenAfterWhile
	UnclosedWhileCondition
	MissingParenAfterFor
	UnclosedForClauses
	MissingFunctionParen
	UnclosedParameters
	MissingFunctionBrace
	TooManyArguments
	ArityMismatchInDeclaration
)

var messages = map[ErrorKind]string{
	UnterminatedParen:          "Expect ')' after expression.",
	UnterminatedArgs:           "Expect ')' after arguments.",
	ExpectedExpression:         "Expect expression.",
	MissingSemicolon:           "Expect ';' after statement.",
	MissingLoopSemicolon:       "Expect ';' after loop condition.",
	MissingVariableName:        "Expect variable name.",
	MissingIdentifier:          "Expect identifier.",
	InvalidAssignmentTarget:    "Invalid assignment target.",
	UnterminatedBlock:          "Expect '}' after block.",
	MissingParenAfterIf:        "Expect '(' after 'if'.",
	UnclosedIfCondition:        "Expect ')' after if condition.",
	MissingParenAfterWhile:     "Expect '(' after 'while'.",
	UnclosedWhileCondition:     "Expect ')' after while condition.",
	MissingParenAfterFor:       "Expect '(' after 'for'.",
	UnclosedForClauses:         "Expect ')' after for clauses.",
	MissingFunctionParen:       "Expect '(' after function name.",
	UnclosedParameters:         "Expect ')' after parameters.",
	MissingFunctionBrace:       "Expect '{' before function body.",
	TooManyArguments:           "Can't have more than 255 arguments.",
	ArityMismatchInDeclaration: "Can't have more than 255 parameters.",
}

// Message returns the human readable description of the error kind.
func (k ErrorKind) Message() string {
	if msg, ok := messages[k]; ok {
		return msg
	}
	return k.String()
}

// Fatal reports whether the parser has to abandon the current
// declaration after an error of this kind.
func (k ErrorKind) Fatal() bool {
	switch k {
	case InvalidAssignmentTarget, TooManyArguments, ArityMismatchInDeclaration:
		return false
	}
	return true
}

// ParseError is a syntax error found at Token. Fatal errors are used
// internally (as panics) to signal that we cannot continue parsing some
// statement -- as opposed to minor errors like assigning to a call.
type ParseError struct {
	Filename string
	Token    lexer.Token
	Kind     ErrorKind
}

func (e *ParseError) Line() int { return e.Token.Line }

// Where describes the offending token the way the driver reports it.
func (e *ParseError) Where() string {
	if e.Token.Type == lexer.EOF {
		return " at end"
	}
	return fmt.Sprintf(" at '%s'", e.Token.Lexeme)
}

func (e *ParseError) Error() string { return e.String() }
func (e *ParseError) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Token.Line, e.Token.Column, e.Kind.Message())
}

// ErrorList collects every error met during a parse, in source order.
type ErrorList []*ParseError

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	msgs := make([]string, len(l))
	for i, err := range l {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// Last returns the final error encountered, or nil.
func (l ErrorList) Last() *ParseError {
	if len(l) == 0 {
		return nil
	}
	return l[len(l)-1]
}

// Err returns nil for an empty list, and the list otherwise.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// fail records a fatal error and unwinds to the enclosing declaration.
func (p *Parser) fail(kind ErrorKind, tok lexer.Token) {
	panic(p.report(kind, tok))
}

// report records an error without unwinding.
func (p *Parser) report(kind ErrorKind, tok lexer.Token) *ParseError {
	err := &ParseError{
		Filename: p.filename,
		Token:    tok,
		Kind:     kind,
	}
	T().Debugf("parse error: %s", err)
	p.Errors = append(p.Errors, err)
	return err
}

// expect consumes a token of the given type, or fails with kind.
func (p *Parser) expect(typ lexer.TokenType, kind ErrorKind) lexer.Token {
	if !p.check(typ) {
		p.fail(kind, p.peek())
	}
	return p.consume()
}

// synchronize synchronizes the parser by discarding tokens until
// we are just past a ';' or just before a token which starts a
// statement. This means that cascading errors are discarded, and
// we still report as many errors as possible.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		switch p.peek().Type {
		case lexer.SEMICOLON:
			p.consume()
			T().Debugf("synchronized after ';' on line %d", p.previous().Line)
			return
		case lexer.CLASS, lexer.FUN, lexer.VAR, lexer.FOR,
			lexer.IF, lexer.WHILE, lexer.PRINT, lexer.RETURN:
			T().Debugf("synchronized at %s on line %d", p.peek().Type, p.peek().Line)
			return
		}
		p.consume()
	}
}
