package eval

import (
	"time"
)

// =================
// Builtin functions
// =================

var builtins = []*Builtin{
	newBuiltin("clock", 0, bi_clock),
}

// addBuiltins defines every builtin in the given (global) scope.
func addBuiltins(env *Environment) {
	for _, b := range builtins {
		env.Define(b.name, b)
	}
}

// -----
// clock
// -----
// seconds since the Unix epoch, with sub-second precision.
func bi_clock(in *Interpreter, args []Value) (Value, error) {
	return Number(float64(time.Now().UnixNano()) / float64(time.Second)), nil
}
