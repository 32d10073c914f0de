package eval

import (
	"lox/lexer"
)

// This file implements calling and the operators.

// ==============
// Function Calls
// ==============

// Call runs the function body in a new scope enclosed by the
// function's closure, with the parameters bound to args. The caller
// has already checked the arity.
func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	env := f.closure.NewEnclosed()
	for i, param := range f.node.Params {
		env.Define(param.Lexeme, args[i])
	}
	in.calls++
	T().Debugf("call %s (depth %d)", f, in.calls)
	rv, err := in.executeBlock(f.node.Body, env)
	in.calls--
	if err != nil {
		return nil, err
	}
	// falling off the end returns nil.
	if rv == nil {
		return NIL, nil
	}
	return rv, nil
}

func (b *Builtin) Call(in *Interpreter, args []Value) (Value, error) {
	T().Debugf("call builtin %s", b.name)
	return b.call(in, args)
}

// =========
// Operators
// =========

type binOpInfo struct {
	op    lexer.TokenType
	left  ValueType
	right ValueType
}

type binOpImpl func(left, right Value) Value

var binOpTable = map[binOpInfo]binOpImpl{}

func init() {
	initBinOpTable()
}

func initBinOpTable() {
	num := func(op lexer.TokenType, f func(a, b Number) Value) {
		binOpTable[binOpInfo{op, VT_NUMBER, VT_NUMBER}] = func(left, right Value) Value {
			return f(left.(Number), right.(Number))
		}
	}
	num(lexer.PLUS, func(a, b Number) Value { return a + b })
	num(lexer.MINUS, func(a, b Number) Value { return a - b })
	num(lexer.STAR, func(a, b Number) Value { return a * b })
	// IEEE division: 1/0 is Inf, 0/0 is NaN.
	num(lexer.SLASH, func(a, b Number) Value { return a / b })
	num(lexer.GREATER, func(a, b Number) Value { return Boolean(a > b) })
	num(lexer.GREATER_EQUAL, func(a, b Number) Value { return Boolean(a >= b) })
	num(lexer.LESS, func(a, b Number) Value { return Boolean(a < b) })
	num(lexer.LESS_EQUAL, func(a, b Number) Value { return Boolean(a <= b) })

	binOpTable[binOpInfo{lexer.PLUS, VT_STRING, VT_STRING}] = func(left, right Value) Value {
		return left.(String) + right.(String)
	}
}

// binary applies op to two already evaluated operands.
func binary(op lexer.TokenType, left, right Value) (Value, error) {
	switch op {
	case lexer.EQUAL_EQUAL:
		return Boolean(isEqual(left, right)), nil
	case lexer.BANG_EQUAL:
		return Boolean(!isEqual(left, right)), nil
	}
	if impl, ok := binOpTable[binOpInfo{op, left.Type(), right.Type()}]; ok {
		return impl(left, right), nil
	}
	if op == lexer.PLUS {
		return nil, invalidOperand("Operands must be two numbers or two strings.")
	}
	return nil, invalidOperand("Operands must be numbers.")
}

func unary(op lexer.TokenType, right Value) (Value, error) {
	switch {
	case op == lexer.BANG:
		return Boolean(!isTruthy(right)), nil
	case op == lexer.MINUS && right.Type() == VT_NUMBER:
		return -right.(Number), nil
	}
	return nil, invalidOperand("Operand must be a number.")
}

// isEqual never fails: values of different types are simply not
// equal, and functions are equal only to themselves.
func isEqual(left, right Value) bool {
	return left == right
}
