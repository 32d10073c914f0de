package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRealMain(t *testing.T) {
	t.Setenv("LOX_CONFIG", "")
	tests := []struct {
		args   []string
		code   int
		stdout string
		stderr string
	}{
		{[]string{"-e", "print 1 + 2;"}, exitOK, "3\n", ""},
		{[]string{"-e", `var a = "a"; { var a = a + "b"; print a; } print a;`}, exitOK, "ab\na\n", ""},
		{[]string{"-e", `print -"a";`}, exitSoftware, "", "[line 1] Error: Operand must be a number.\n"},
		{[]string{"-e", "print 1;\nprint x;"}, exitSoftware, "1\n", "[line 2] Error: Undefined variable 'x'.\n"},
		{[]string{"-e", "print 1"}, exitData, "", "[line 1] Error at end: Expect ';' after statement.\n"},
		{[]string{"-e", "print 1;\nreturn 2;"}, exitData, "", "[line 2] Error at 'return': Can't return from top-level code.\n"},
		{[]string{"-e", `print "abc`}, exitData, "", "[line 1] Error: unterminated string\n"},
		// nothing runs when any statement is malformed.
		{[]string{"-e", "print 1; print ;"}, exitData, "", "[line 1] Error at ';': Expect expression.\n"},
		{[]string{"-e", "print 1;", "extra.lox"}, exitUsage, "", ""},
		{[]string{"a.lox", "b.lox"}, exitUsage, "", ""},
		{[]string{"-nope"}, exitUsage, "", ""},
		{[]string{"-config", "does/not/exist.yaml", "-e", "print 1;"}, exitUsage, "", ""},
	}
	for i, test := range tests {
		var stdout, stderr bytes.Buffer
		code := realMain(test.args, &stdout, &stderr)
		if code != test.code {
			t.Errorf("tests[%d] %q: expected exit=%d, got=%d (stderr %q)", i, test.args, test.code, code, stderr.String())
			continue
		}
		if stdout.String() != test.stdout {
			t.Errorf("tests[%d] %q: expected stdout=%q, got=%q", i, test.args, test.stdout, stdout.String())
		}
		// usage errors print help text we don't care about.
		if test.code != exitUsage && stderr.String() != test.stderr {
			t.Errorf("tests[%d] %q: expected stderr=%q, got=%q", i, test.args, test.stderr, stderr.String())
		}
	}
}

func TestRealMainFile(t *testing.T) {
	t.Setenv("LOX_CONFIG", "")
	dir := t.TempDir()
	script := filepath.Join(dir, "fib.lox")
	src := `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}
for (var i = 0; i < 8; i = i + 1) print fib(i);
`
	if err := os.WriteFile(script, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	if code := realMain([]string{script}, &stdout, &stderr); code != exitOK {
		t.Fatalf("expected exit 0, got=%d: %s", code, stderr.String())
	}
	if got := stdout.String(); got != "0\n1\n1\n2\n3\n5\n8\n13\n" {
		t.Errorf("unexpected output %q", got)
	}

	stdout.Reset()
	stderr.Reset()
	if code := realMain([]string{filepath.Join(dir, "missing.lox")}, &stdout, &stderr); code != exitNoInput {
		t.Errorf("expected exit %d for a missing script, got=%d", exitNoInput, code)
	}
}

func TestRealMainConfig(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "lox.yaml")
	if err := os.WriteFile(conf, []byte("closures: snapshot\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	src := `
{
  var a = "before";
  fun show() { print a; }
  a = "after";
  show();
}
`
	tests := []struct {
		env    string
		args   []string
		stdout string
	}{
		{"", []string{"-e", src}, "after\n"},
		{conf, []string{"-e", src}, "before\n"},
		{"", []string{"-config", conf, "-e", src}, "before\n"},
	}
	for i, test := range tests {
		t.Setenv("LOX_CONFIG", test.env)
		var stdout, stderr bytes.Buffer
		if code := realMain(test.args, &stdout, &stderr); code != exitOK {
			t.Errorf("tests[%d]: expected exit 0, got=%d: %s", i, code, stderr.String())
			continue
		}
		if stdout.String() != test.stdout {
			t.Errorf("tests[%d]: expected=%q, got=%q", i, test.stdout, stdout.String())
		}
	}
}

func TestRealMainAST(t *testing.T) {
	t.Setenv("LOX_CONFIG", "")
	var stdout, stderr bytes.Buffer
	code := realMain([]string{"-ast", "-e", "print undefined;"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("expected exit 0, got=%d: %s", code, stderr.String())
	}
	// the program is printed, not run.
	if !strings.Contains(stdout.String(), "undefined") || stderr.Len() != 0 {
		t.Errorf("unexpected output %q %q", stdout.String(), stderr.String())
	}
}

func TestSliceVersion(t *testing.T) {
	tests := []struct{ in, out string }{
		{"", "dev"},
		{"v0.1.0", "v0.1.0"},
		{"0123456789abcdef", "0123456789"},
	}
	for _, test := range tests {
		if got := sliceVersion(test.in); got != test.out {
			t.Errorf("sliceVersion(%q): expected=%q, got=%q", test.in, test.out, got)
		}
	}
}
