package eval

import (
	"fmt"
	"math"
	"strconv"
)

// This file implements the two ways of turning a value into text:
// String(), which is what `print` writes, and Inspect(), which the
// REPL uses to echo results and which quotes strings.

type Stringer interface {
	String() string
}

// Inspect renders v for the REPL.
func Inspect(v Value) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case String:
		return strconv.Quote(string(v))
	case Stringer:
		return v.String()
	}
	panic(fmt.Sprintf("cannot inspect: %#+v", v))
}

// Stringify renders v the way print does. The uninitialized marker
// prints like nil.
func Stringify(v Value) string {
	if v == nil {
		return NIL.String()
	}
	return v.(Stringer).String()
}

// =========
// Stringify
// =========

func (v Nil) String() string { return "nil" }
func (v Boolean) String() string {
	if v {
		return "true"
	}
	return "false"
}
func (v Number) String() string    { return formatNumber(float64(v)) }
func (v String) String() string    { return string(v) }
func (v *Function) String() string { return fmt.Sprintf("<fn %s>", v.Name()) }
func (v *Builtin) String() string  { return "<native fn>" }

// formatNumber writes the shortest decimal which reads back as f,
// without an exponent unless f is very large or very small.
func formatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	case math.IsNaN(f):
		return "NaN"
	}
	if abs := math.Abs(f); abs >= 1e21 || (abs != 0 && abs < 1e-6) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
