package eval_test

import (
	"bytes"
	"errors"
	"lox/eval"
	"lox/lexer"
	"lox/parser"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestInterpreter(t *testing.T) {
	traceToTest(t)
	tests := []struct {
		input    string
		expected string
	}{
		{"print 1 + 1;", "2"},
		{"print 7 - 2 * 3;", "1"},
		{"print (7 - 2) * 3;", "15"},
		{"print 3 / 2;", "1.5"},
		{"print 2.50;", "2.5"},
		{"print 0.1 + 0.2;", "0.30000000000000004"},
		{"print 1000000;", "1000000"},
		{"print -3;", "-3"},
		{"print 1 / 0;", "Inf"},
		{"print -1 / 0;", "-Inf"},
		{`print "a" + "b";`, "ab"},
		{`print 1 == "1";`, "false"},
		{"print nil == nil;", "true"},
		{"print nil == false;", "false"},
		{"print 1 != 2;", "true"},
		{`print "a" == "a";`, "true"},
		{"print 1 < 2;", "true"},
		{"print 2 <= 1;", "false"},
		{"print 2 >= 2;", "true"},
		{"print 3 > 2;", "true"},
		{"print !nil;", "true"},
		{"print !0;", "false"},
		{`print !"";`, "false"},
		{"print true;", "true"},
		{"print nil;", "nil"},
		{"var a; print a;", "nil"},
		{"var a; a = 1; print a;", "1"},
		{"var a = 1; print a = 2;", "2"},
		{"var a; var b; a = b = 3; print a + b;", "6"},
		{"var a = 1; { var a = 2; } print a;", "1"},
		{"var a = 1; { var a = 2; print a; } print a;", "2\n1"},
		{"var a = 1; { a = 2; } print a;", "2"},
		{"var a = 1; var a = 2; print a;", "2"},
		{"var a = 1; { var a = a + 1; print a; } print a;", "2\n1"},
		{"if (1) print 1; else print 2;", "1"},
		{"if (nil) print 1; else print 2;", "2"},
		{"if (false) print 1;", ""},
		{"var i = 0; while (i < 3) { print i; i = i + 1; }", "0\n1\n2"},
		{"for (var i = 0; i < 3; i = i + 1) print i;", "0\n1\n2"},
		{"var i = 0; for (; i < 2;) i = i + 1; print i;", "2"},
		{"fun f() {} print f;", "<fn f>"},
		{"print clock;", "<native fn>"},
		{"fun f() {} var g = f; print f == g;", "true"},
		{"fun f() {} fun g() {} print f == g;", "false"},
		{"print clock() > 0;", "true"},
		{"fun add(a, b) { return a + b; } print add(1, 2);", "3"},
		{"fun f() {} print f();", "nil"},
		{"fun f() { return; } print f();", "nil"},
		{"fun f() { return; print 1; } f();", ""},
		{"fun f(n) { if (n < 2) return n; return f(n - 1) + f(n - 2); } print f(10);", "55"},
		{"fun f() { fun g() { return 2; } return g; } print f()();", "2"},
		{"print 1; return; print 2;", "1"},
	}
	for i, test := range tests {
		out, errOut, err := run(t, test.input)
		if err != nil {
			t.Errorf("tests[%d] (%q): unexpected error %v", i, test.input, err)
			continue
		}
		if errOut != "" {
			t.Errorf("tests[%d] (%q): unexpected error output %q", i, test.input, errOut)
		}
		if strings.TrimSuffix(out, "\n") != test.expected {
			t.Errorf("tests[%d] (%q)", i, test.input)
			t.Errorf("expected=%q, got=%q", test.expected, out)
		}
	}
}

func TestInterpreterErrors(t *testing.T) {
	traceToTest(t)
	tests := []struct {
		input    string
		sentinel error
		message  string
		line     int
		output   string
	}{
		{`print "1" + 1;`, eval.ErrInvalidOperand, "Operands must be two numbers or two strings.", 1, ""},
		{`print 1 < "a";`, eval.ErrInvalidOperand, "Operands must be numbers.", 1, ""},
		{`print -"a";`, eval.ErrInvalidOperand, "Operand must be a number.", 1, ""},
		{"print nil * 2;", eval.ErrInvalidOperand, "Operands must be numbers.", 1, ""},
		{"x = 1;", eval.ErrUndefinedVariable, "Undefined variable 'x'.", 1, ""},
		{"print 1;\nprint y;", eval.ErrUndefinedVariable, "Undefined variable 'y'.", 2, "1\n"},
		{`"abc"();`, eval.ErrNotCallable, "Can only call functions.", 1, ""},
		{"nil();", eval.ErrNotCallable, "Can only call functions.", 1, ""},
		{"fun f(a, b) {}\nf(1);", eval.ErrArity, "Expected 2 arguments but got 1.", 2, ""},
		{"fun f(a, b) {}\nf(1, 2, 3);", eval.ErrArity, "Expected 2 arguments but got 3.", 2, ""},
		{"clock(1);", eval.ErrArity, "Expected 0 arguments but got 1.", 1, ""},
		{"for (var i = 0; i < 1; i = i + 1) {}\nprint i;", eval.ErrUndefinedVariable, "Undefined variable 'i'.", 2, ""},
		{
			"fun inner() {\n  return 1 + nil;\n}\nfun outer() { return inner(); }\nprint outer();\nprint 2;",
			eval.ErrInvalidOperand, "Operands must be two numbers or two strings.", 2, "",
		},
	}
	for i, test := range tests {
		out, errOut, err := run(t, test.input)
		if !errors.Is(err, test.sentinel) {
			t.Errorf("tests[%d] (%q): expected %v, got=%v", i, test.input, test.sentinel, err)
			continue
		}
		var re *eval.RuntimeError
		if !errors.As(err, &re) {
			t.Errorf("tests[%d] (%q): expected a *RuntimeError, got=%T", i, test.input, err)
			continue
		}
		if re.Message != test.message || re.Line != test.line {
			t.Errorf("tests[%d] (%q): expected line %d %q, got=line %d %q", i, test.input, test.line, test.message, re.Line, re.Message)
		}
		// reported exactly once, at the point it was raised.
		expected := re.Error() + "\n"
		if errOut != expected {
			t.Errorf("tests[%d] (%q): expected error output=%q, got=%q", i, test.input, expected, errOut)
		}
		if out != test.output {
			t.Errorf("tests[%d] (%q): expected output=%q, got=%q", i, test.input, test.output, out)
		}
	}
}

func TestInterpreterArityHasNoSideEffects(t *testing.T) {
	var out, errOut bytes.Buffer
	in := eval.New(eval.WithOutput(&out), eval.WithErrorOutput(&errOut))
	err := in.Interpret(parse(t, `
var calls = 0;
fun f(a, b) { calls = calls + 1; print "body"; }
f(1);
`))
	var re *eval.RuntimeError
	if !errors.As(err, &re) || re.Kind != eval.Arity || re.Expected != 2 || re.Got != 1 {
		t.Fatalf("expected Arity{2, 1}, got=%#v", err)
	}
	if v, _ := in.Globals().Get("calls"); v != eval.Number(0) {
		t.Errorf("expected the body not to run, calls=%v", v)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestInterpreterShortCircuit(t *testing.T) {
	out, _, err := run(t, `
fun side_effect() { print "called"; return true; }
print "a" or side_effect();
print nil and side_effect();
print false or nil;
print nil or "b";
print 1 and 2;
`)
	if err != nil {
		t.Fatal(err)
	}
	expected := "a\nnil\nnil\nb\n2\n"
	if out != expected {
		t.Errorf("expected=%q, got=%q", expected, out)
	}
}

func TestInterpreterReturn(t *testing.T) {
	out, _, err := run(t, `
fun find() {
  var i = 0;
  while (true) {
    { if (i == 3) return i; }
    i = i + 1;
  }
}
print find();
fun loop() {
  for (var i = 0; i < 10; i = i + 1) {
    if (i == 2) return "two";
  }
  return "none";
}
print loop();
`)
	if err != nil {
		t.Fatal(err)
	}
	if out != "3\ntwo\n" {
		t.Errorf("expected=%q, got=%q", "3\ntwo\n", out)
	}
}

func TestInterpreterClosures(t *testing.T) {
	tests := []struct {
		input    string
		shared   string
		snapshot string
	}{
		{
			// counters from the same maker do not share state.
			input: `
fun makeCounter() {
  var i = 0;
  fun count() { i = i + 1; return i; }
  return count;
}
var a = makeCounter();
var b = makeCounter();
print a(); print a(); print b();`,
			shared:   "1\n2\n1\n",
			snapshot: "1\n2\n1\n",
		},
		{
			// a later change to a local is only seen by shared closures.
			input: `
var f;
{
  var x = "before";
  fun show() { print x; }
  x = "after";
  f = show;
}
f();`,
			shared:   "after\n",
			snapshot: "before\n",
		},
		{
			// globals are never copied.
			input: `
var x = "before";
fun show() { print x; }
x = "after";
show();`,
			shared:   "after\n",
			snapshot: "after\n",
		},
		{
			// local functions can recurse under both policies.
			input: `
{
  fun fib(n) { if (n < 2) return n; return fib(n - 1) + fib(n - 2); }
  print fib(10);
}`,
			shared:   "55\n",
			snapshot: "55\n",
		},
		{
			// the counter state lives on between calls.
			input: `
fun outer() {
  var n = 0;
  fun inc() { n = n + 1; }
  fun get() { return n; }
  inc(); inc();
  return get;
}
print outer()();`,
			shared:   "2\n",
			snapshot: "0\n",
		},
	}
	for i, test := range tests {
		for _, policy := range []eval.ClosurePolicy{eval.Shared, eval.Snapshot} {
			out, _, err := run(t, test.input, eval.WithClosurePolicy(policy))
			if err != nil {
				t.Errorf("tests[%d] %s: unexpected error %v", i, policy, err)
				continue
			}
			expected := test.shared
			if policy == eval.Snapshot {
				expected = test.snapshot
			}
			if out != expected {
				t.Errorf("tests[%d] %s: expected=%q, got=%q", i, policy, expected, out)
			}
		}
	}
}

func TestInterpreterKeepsGlobals(t *testing.T) {
	var out bytes.Buffer
	in := eval.New(eval.WithOutput(&out), eval.WithErrorOutput(&bytes.Buffer{}))
	if err := in.Interpret(parse(t, "var a = 1; fun f() { return a; }")); err != nil {
		t.Fatal(err)
	}
	// a runtime error does not lose what was defined before it.
	if err := in.Interpret(parse(t, "a = 2; print nope;")); err == nil {
		t.Fatal("expected an error")
	}
	if err := in.Interpret(parse(t, "print f();")); err != nil {
		t.Fatal(err)
	}
	if out.String() != "2\n" {
		t.Errorf("expected=%q, got=%q", "2\n", out.String())
	}
}

func TestInterpreterEvaluate(t *testing.T) {
	in := eval.New(eval.WithOutput(&bytes.Buffer{}), eval.WithErrorOutput(&bytes.Buffer{}))
	stmts := parse(t, "1 + 2 * 3;")
	v, err := in.Evaluate(stmts[0].(*parser.ExprStmt).Expr)
	if err != nil || v != eval.Number(7) {
		t.Errorf("expected 7, got=%v %v", v, err)
	}
	rv, err := in.Execute(parse(t, "return 4;")[0])
	if err != nil || rv != eval.Number(4) {
		t.Errorf("expected a return of 4, got=%v %v", rv, err)
	}
	rv, err = in.Execute(parse(t, "{ return; }")[0])
	if err != nil || rv != eval.NIL {
		t.Errorf("expected a return of nil, got=%v %v", rv, err)
	}
	rv, err = in.Execute(parse(t, "print 1;")[0])
	if err != nil || rv != nil {
		t.Errorf("expected no return, got=%v %v", rv, err)
	}
}

func TestInspect(t *testing.T) {
	tests := []struct {
		value    eval.Value
		str      string
		inspect  string
		typeName string
	}{
		{eval.NIL, "nil", "nil", "VT_NIL"},
		{eval.TRUE, "true", "true", "VT_BOOLEAN"},
		{eval.Number(1.25), "1.25", "1.25", "VT_NUMBER"},
		{eval.Number(1e21), "1e+21", "1e+21", "VT_NUMBER"},
		{eval.String("hi"), "hi", `"hi"`, "VT_STRING"},
	}
	for i, test := range tests {
		if s := eval.Stringify(test.value); s != test.str {
			t.Errorf("tests[%d]: expected=%q, got=%q", i, test.str, s)
		}
		if s := eval.Inspect(test.value); s != test.inspect {
			t.Errorf("tests[%d]: expected=%q, got=%q", i, test.inspect, s)
		}
		if s := test.value.Type().String(); s != test.typeName {
			t.Errorf("tests[%d]: expected=%q, got=%q", i, test.typeName, s)
		}
	}
	if eval.Stringify(nil) != "nil" {
		t.Errorf("the uninitialized marker should print as nil")
	}
}

// utils

func traceToTest(t *testing.T) {
	saved := gtrace.InterpreterTracer
	gtrace.InterpreterTracer = gotestingadapter.New(t)
	gtrace.InterpreterTracer.SetTraceLevel(tracing.LevelDebug)
	t.Cleanup(func() { gtrace.InterpreterTracer = saved })
}

func parse(t *testing.T, input string) []parser.Stmt {
	t.Helper()
	tokens, errs := lexer.Scan("<test>", input)
	if errs != nil {
		t.Fatalf("lexer errors: %v", errs)
	}
	stmts, err := parser.Parse("<test>", tokens)
	if err != nil {
		t.Fatalf("parser errors: %v", err)
	}
	return stmts
}

// run interprets input and returns what was printed and reported.
func run(t *testing.T, input string, opts ...eval.Option) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	opts = append([]eval.Option{eval.WithOutput(&out), eval.WithErrorOutput(&errOut)}, opts...)
	err := eval.New(opts...).Interpret(parse(t, input))
	return out.String(), errOut.String(), err
}
