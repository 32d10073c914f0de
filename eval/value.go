package eval

import (
	"lox/parser"
)

//go:generate stringer -type=ValueType

type ValueType uint8

const (
	_ = ValueType(iota)
	VT_NIL
	VT_BOOLEAN
	VT_NUMBER
	VT_STRING
	VT_FUNCTION
	VT_BUILTIN
)

// Value is anything a Lox expression can evaluate to. A nil Value
// (as opposed to NIL) marks a variable which was declared without
// an initializer and never assigned.
type Value interface {
	Type() ValueType
}

// Callable is implemented by values which can appear as the callee
// of a call expression.
type Callable interface {
	Value
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
}

type Nil struct{}
type Boolean bool
type Number float64
type String string

// Function is a user-defined function together with the scope
// chain it closes over.
type Function struct {
	node     *parser.Function
	closure  *Environment
	filename string
}

func newFunction(filename string, node *parser.Function, closure *Environment) *Function {
	return &Function{
		node:     node,
		closure:  closure,
		filename: filename,
	}
}

func (f *Function) Name() string { return f.node.Name.Lexeme }
func (f *Function) Arity() int   { return len(f.node.Params) }

type builtinFunc func(in *Interpreter, args []Value) (Value, error)

// Builtin represents a built-in function
type Builtin struct {
	name  string
	arity int
	call  builtinFunc
}

func newBuiltin(name string, arity int, call builtinFunc) *Builtin {
	return &Builtin{
		name:  name,
		arity: arity,
		call:  call,
	}
}

func (b *Builtin) Name() string { return b.name }
func (b *Builtin) Arity() int   { return b.arity }

func (v Nil) Type() ValueType       { return VT_NIL }
func (v Boolean) Type() ValueType   { return VT_BOOLEAN }
func (v Number) Type() ValueType    { return VT_NUMBER }
func (v String) Type() ValueType    { return VT_STRING }
func (v *Function) Type() ValueType { return VT_FUNCTION }
func (v *Builtin) Type() ValueType  { return VT_BUILTIN }

// ==========
// Singletons
// ==========

var (
	NIL   = Nil{}
	TRUE  = Boolean(true)
	FALSE = Boolean(false)
)

func isTruthy(v Value) bool { return v != FALSE && v != NIL && v != nil }
