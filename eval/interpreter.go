package eval

import (
	"fmt"
	"io"
	"lox/lexer"
	"lox/parser"
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global interpreter tracer.
func T() tracing.Trace {
	return gtrace.InterpreterTracer
}

type Interpreter struct {
	// the one global scope; it outlives every other scope.
	globals *Environment
	// the current environment we're executing.
	env      *Environment
	out      io.Writer
	errOut   io.Writer
	policy   ClosurePolicy
	filename string
	// how many calls deep we are, for tracing.
	calls int
}

type Option func(*Interpreter)

// WithOutput sets where print writes to. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) { in.out = w }
}

// WithErrorOutput sets where runtime errors are reported. The
// default is os.Stderr.
func WithErrorOutput(w io.Writer) Option {
	return func(in *Interpreter) { in.errOut = w }
}

func WithClosurePolicy(p ClosurePolicy) Option {
	return func(in *Interpreter) { in.policy = p }
}

// WithFilename names the source being run, for traces.
func WithFilename(fn string) Option {
	return func(in *Interpreter) { in.filename = fn }
}

func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		globals:  NewEnvironment(nil),
		out:      os.Stdout,
		errOut:   os.Stderr,
		policy:   Shared,
		filename: "<script>",
	}
	for _, opt := range opts {
		opt(in)
	}
	in.env = in.globals
	addBuiltins(in.globals)
	return in
}

func (in *Interpreter) Globals() *Environment { return in.globals }

// Interpret executes the statements in order, stopping at the first
// runtime error, which has already been reported when it is returned.
// A top-level return ends the program early.
func (in *Interpreter) Interpret(stmts []parser.Stmt) error {
	for _, stmt := range stmts {
		rv, err := in.Execute(stmt)
		if err != nil {
			return err
		}
		if rv != nil {
			T().Debugf("top-level return with %s", Inspect(rv))
			return nil
		}
	}
	return nil
}

// Execute executes a single statement. A non-nil Value means that a
// return statement was executed, and is the value being returned.
func (in *Interpreter) Execute(node parser.Stmt) (Value, error) {
	switch node := node.(type) {
	case *parser.ExprStmt:
		_, err := in.Evaluate(node.Expr)
		return nil, err
	case *parser.Print:
		return nil, in.execPrint(node)
	case *parser.Var:
		return nil, in.execVar(node)
	case *parser.Block:
		return in.executeBlock(node.Stmts, in.env.NewEnclosed())
	case *parser.If:
		return in.execIf(node)
	case *parser.While:
		return in.execWhile(node)
	case *parser.Function:
		in.execFunction(node)
		return nil, nil
	case *parser.Return:
		return in.execReturn(node)
	}
	panic(fmt.Sprintf("unhandled node %#+v", node))
}

// Evaluate evaluates an expression.
func (in *Interpreter) Evaluate(node parser.Expr) (Value, error) {
	switch node := node.(type) {
	case *parser.Literal:
		return literal(node.Lit), nil
	case *parser.Grouping:
		return in.Evaluate(node.Expr)
	case *parser.Variable:
		return in.evalVariable(node)
	case *parser.Assign:
		return in.evalAssign(node)
	case *parser.Unary:
		return in.evalUnary(node)
	case *parser.Binary:
		return in.evalBinary(node)
	case *parser.Logical:
		return in.evalLogical(node)
	case *parser.Call:
		return in.evalCall(node)
	}
	panic(fmt.Sprintf("unhandled node %#+v", node))
}

// ==========
// Statements
// ==========

func (in *Interpreter) execPrint(node *parser.Print) error {
	v, err := in.Evaluate(node.Expr)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(in.out, Stringify(v))
	return err
}

func (in *Interpreter) execVar(node *parser.Var) error {
	var value Value
	if node.Init != nil {
		v, err := in.Evaluate(node.Init)
		if err != nil {
			return err
		}
		value = v
	}
	in.env.Define(node.Name.Lexeme, value)
	return nil
}

// executeBlock runs stmts in env, restoring the current environment
// afterwards whatever happens.
func (in *Interpreter) executeBlock(stmts []parser.Stmt, env *Environment) (Value, error) {
	prev := in.env
	in.env = env
	defer func() { in.env = prev }()
	for _, stmt := range stmts {
		rv, err := in.Execute(stmt)
		if err != nil || rv != nil {
			return rv, err
		}
	}
	return nil, nil
}

func (in *Interpreter) execIf(node *parser.If) (Value, error) {
	cond, err := in.Evaluate(node.Cond)
	if err != nil {
		return nil, err
	}
	if isTruthy(cond) {
		return in.Execute(node.Then)
	}
	if node.Else != nil {
		return in.Execute(node.Else)
	}
	return nil, nil
}

func (in *Interpreter) execWhile(node *parser.While) (Value, error) {
	for {
		cond, err := in.Evaluate(node.Cond)
		if err != nil {
			return nil, err
		}
		if !isTruthy(cond) {
			return nil, nil
		}
		rv, err := in.Execute(node.Body)
		if err != nil || rv != nil {
			return rv, err
		}
	}
}

func (in *Interpreter) execFunction(node *parser.Function) {
	name := node.Name.Lexeme
	closure := in.env.Capture(in.policy)
	fn := newFunction(in.filename, node, closure)
	in.env.Define(name, fn)
	if closure != in.env {
		// a snapshot was taken before the name existed.
		closure.Define(name, fn)
	}
}

func (in *Interpreter) execReturn(node *parser.Return) (Value, error) {
	if node.Value == nil {
		return NIL, nil
	}
	v, err := in.Evaluate(node.Value)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ===========
// Expressions
// ===========

func literal(tok lexer.Token) Value {
	switch tok.Type {
	case lexer.NUMBER:
		return Number(tok.Literal.(float64))
	case lexer.STRING:
		return String(tok.Literal.(string))
	case lexer.TRUE:
		return TRUE
	case lexer.FALSE:
		return FALSE
	case lexer.NIL:
		return NIL
	}
	panic(fmt.Sprintf("unhandled literal %s", tok))
}

func (in *Interpreter) evalVariable(node *parser.Variable) (Value, error) {
	v, err := in.env.Get(node.Name.Lexeme)
	if err != nil {
		return nil, in.fail(err, node.Name)
	}
	if v == nil {
		// declared, but never initialised.
		return NIL, nil
	}
	return v, nil
}

func (in *Interpreter) evalAssign(node *parser.Assign) (Value, error) {
	v, err := in.Evaluate(node.Value)
	if err != nil {
		return nil, err
	}
	if err := in.env.Assign(node.Name.Lexeme, v); err != nil {
		return nil, in.fail(err, node.Name)
	}
	return v, nil
}

func (in *Interpreter) evalUnary(node *parser.Unary) (Value, error) {
	right, err := in.Evaluate(node.Right)
	if err != nil {
		return nil, err
	}
	rv, err := unary(node.Op.Type, right)
	if err != nil {
		return nil, in.fail(err, node.Op)
	}
	return rv, nil
}

func (in *Interpreter) evalBinary(node *parser.Binary) (Value, error) {
	left, err := in.Evaluate(node.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.Evaluate(node.Right)
	if err != nil {
		return nil, err
	}
	rv, err := binary(node.Op.Type, left, right)
	if err != nil {
		return nil, in.fail(err, node.Op)
	}
	return rv, nil
}

func (in *Interpreter) evalLogical(node *parser.Logical) (Value, error) {
	left, err := in.Evaluate(node.Left)
	if err != nil {
		return nil, err
	}
	switch node.Op.Type {
	case lexer.OR:
		if isTruthy(left) {
			return left, nil
		}
	case lexer.AND:
		if !isTruthy(left) {
			return left, nil
		}
	}
	return in.Evaluate(node.Right)
}

func (in *Interpreter) evalCall(node *parser.Call) (Value, error) {
	callee, err := in.Evaluate(node.Callee)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(Callable)
	if !ok {
		return nil, in.fail(notCallable(), node.Paren)
	}
	args := make([]Value, len(node.Args))
	for i, arg := range node.Args {
		v, err := in.Evaluate(arg)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	if fn.Arity() != len(args) {
		return nil, in.fail(arityMismatch(fn.Arity(), len(args)), node.Paren)
	}
	rv, err := fn.Call(in, args)
	if err != nil {
		return nil, in.fail(err, node.Paren)
	}
	return rv, nil
}
