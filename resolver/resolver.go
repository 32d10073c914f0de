// Package resolver implements the static checks which run between
// parsing and evaluation: a `return` must be inside a function body,
// and a function cannot declare the same parameter twice. Programs
// which fail these checks are never run.
package resolver

import (
	"errors"
	"fmt"
	"lox/lexer"
	"lox/parser"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global syntax tracer.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}

var TooManyErrors = errors.New("too many errors")

// maxErrors is the point after which Resolve gives up.
const maxErrors = 10

type ResolverError struct {
	Filename string
	Token    lexer.Token
	Message  string
}

func (re ResolverError) Line() int { return re.Token.Line }

func (re ResolverError) Error() string { return re.String() }
func (re ResolverError) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", re.Filename, re.Token.Line, re.Token.Column, re.Message)
}

// Where describes the offending token the same way parse errors do.
func (re ResolverError) Where() string {
	return fmt.Sprintf(" at '%s'", re.Token.Lexeme)
}

// Control flags -- whether we are in a function.
const (
	FUNC = 1 << iota
)

type Resolver struct {
	filename string
	Errors   []error
	ctrl     uint8
	depth    int // function nesting, for tracing.
}

func New(filename string) *Resolver {
	return &Resolver{
		filename: filename,
		Errors:   []error{},
	}
}

func (r *Resolver) err(tok lexer.Token, msg string) {
	err := ResolverError{
		Filename: r.filename,
		Token:    tok,
		Message:  msg,
	}
	T().Debugf("resolver error: %s", err)
	r.Errors = append(r.Errors, err)
}

// ResolveOne checks the given statement -- it is mainly for
// interactive usage, where the statements arrive one at a time.
func (r *Resolver) ResolveOne(stmt parser.Stmt) {
	r.resolve(stmt)
}

// Resolve checks every statement of the program, stopping early
// when there are too many errors to be useful.
func (r *Resolver) Resolve(stmts []parser.Stmt) {
	for _, stmt := range stmts {
		r.resolve(stmt)
		if len(r.Errors) >= maxErrors {
			r.Errors = append(r.Errors, TooManyErrors)
			break
		}
	}
	if r.ctrl != 0 || r.depth != 0 {
		panic("something gone wrong!")
	}
}

// Check is a shortcut for New(...).Resolve(...) which returns
// the errors, or nil when the program is fine.
func Check(filename string, stmts []parser.Stmt) []error {
	r := New(filename)
	r.Resolve(stmts)
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors
}

func (r *Resolver) resolve(node parser.Node) {
	switch node := node.(type) {
	// Statements
	case *parser.Var:
		r.resolveVar(node)
	case *parser.Block:
		r.resolveBlock(node.Stmts)
	case *parser.While:
		r.resolve(node.Cond)
		r.resolve(node.Body)
	case *parser.If:
		r.resolveIf(node)
	case *parser.ExprStmt:
		r.resolve(node.Expr)
	case *parser.Print:
		r.resolve(node.Expr)
	case *parser.Return:
		r.resolveReturn(node)
	case *parser.Function:
		r.resolveFunction(node)
	// Expressions
	case *parser.Binary:
		r.resolve(node.Left)
		r.resolve(node.Right)
	case *parser.Logical:
		r.resolve(node.Left)
		r.resolve(node.Right)
	case *parser.Assign:
		r.resolve(node.Value)
	case *parser.Unary:
		r.resolve(node.Right)
	case *parser.Grouping:
		r.resolve(node.Expr)
	case *parser.Call:
		r.resolveCall(node)
	case *parser.Variable, *parser.Literal:
		return
	default:
		panic(fmt.Sprintf("unhandled node: %#+v", node))
	}
}

// ==========
// Statements
// ==========

func (r *Resolver) resolveVar(node *parser.Var) {
	if node.Init != nil {
		r.resolve(node.Init)
	}
}

func (r *Resolver) resolveBlock(stmts []parser.Stmt) {
	for _, x := range stmts {
		r.resolve(x)
	}
}

func (r *Resolver) resolveIf(node *parser.If) {
	r.resolve(node.Cond)
	r.resolve(node.Then)
	if node.Else != nil {
		r.resolve(node.Else)
	}
}

func (r *Resolver) resolveReturn(node *parser.Return) {
	if r.ctrl&FUNC == 0 {
		r.err(node.Keyword, "Can't return from top-level code.")
	}
	if node.Value != nil {
		r.resolve(node.Value)
	}
}

func (r *Resolver) resolveFunction(node *parser.Function) {
	ctrl := r.ctrl
	r.ctrl |= FUNC
	r.depth++
	T().Debugf("resolving fun %s at depth %d", node.Name.Lexeme, r.depth)
	seen := make(map[string]bool, len(node.Params))
	for _, param := range node.Params {
		if seen[param.Lexeme] {
			r.err(param, "Already a parameter with this name in this function.")
		}
		seen[param.Lexeme] = true
	}
	r.resolveBlock(node.Body)
	r.depth--
	r.ctrl = ctrl
}

// ===========
// Expressions
// ===========

func (r *Resolver) resolveCall(node *parser.Call) {
	r.resolve(node.Callee)
	for _, arg := range node.Args {
		r.resolve(arg)
	}
}
