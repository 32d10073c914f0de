package main

// implements the lox command: run a script, run -e source, or a repl.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"lox/config"
	"lox/eval"
	"lox/lexer"
	"lox/parser"
	"lox/resolver"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// Exit codes, following sysexits.h.
const (
	exitOK       = 0
	exitUsage    = 64
	exitData     = 65 // syntax and static errors
	exitNoInput  = 66
	exitSoftware = 70 // runtime errors
)

var VERSION string
var LOGO = `
  _                 |
 | | _____  __      | lox language
 | |/ _ \ \/ /      | version: $VERSION
 |_|\___/_/\_\      |
`

func sliceVersion(v string) string {
	if v == "" {
		return "dev"
	}
	m := 10
	if len(v) < 10 {
		m = len(v)
	}
	return v[0:m]
}

// T traces to the global command tracer.
func T() tracing.Trace {
	return gtrace.CommandTracer
}

func main() {
	os.Exit(realMain(os.Args[1:], os.Stdout, os.Stderr))
}

func realMain(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("lox", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintln(stderr, "usage: lox [-config file] [-ast] [-e source | script]")
		flags.PrintDefaults()
	}
	confPath := flags.String("config", "", "YAML configuration file (default $"+config.EnvVar+")")
	showAST := flags.Bool("ast", false, "print the parsed program instead of running it")
	source := flags.String("e", "", "run the given source instead of a script")
	showVersion := flags.Bool("version", false, "print the version and exit")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if *showVersion {
		fmt.Fprintf(stdout, "lox %s\n", sliceVersion(VERSION))
		return exitOK
	}

	conf, err := config.LoadDefault(*confPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	policy, err := conf.ClosurePolicy()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	setupTracing(conf)
	T().Debugf("config %+v", conf)

	d := &driver{conf: conf, policy: policy, stdout: stdout, stderr: stderr, showAST: *showAST}
	switch {
	case flags.NArg() > 1, *source != "" && flags.NArg() > 0:
		flags.Usage()
		return exitUsage
	case *source != "":
		return d.run("<cmdline>", *source)
	case flags.NArg() == 1:
		return d.runFile(flags.Arg(0))
	}
	return d.repl()
}

func setupTracing(conf *config.Config) {
	if err := gtrace.CreateTracers(gologadapter.GetAdapter()); err != nil {
		return
	}
	level := conf.Level()
	for _, t := range []tracing.Trace{gtrace.CommandTracer, gtrace.SyntaxTracer, gtrace.InterpreterTracer} {
		t.SetTraceLevel(level)
	}
}

type driver struct {
	conf    *config.Config
	policy  eval.ClosurePolicy
	stdout  io.Writer
	stderr  io.Writer
	showAST bool
}

func (d *driver) runFile(path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(d.stderr, err)
		return exitNoInput
	}
	return d.run(path, string(src))
}

// run runs a whole program. Nothing is executed unless the program
// scans, parses and passes the static checks.
func (d *driver) run(filename, src string) int {
	tokens, errs := lexer.Scan(filename, src)
	if errs != nil {
		d.report(errs...)
		return exitData
	}
	stmts, err := parser.Parse(filename, tokens)
	if err != nil {
		var list parser.ErrorList
		if errors.As(err, &list) {
			for _, e := range list {
				d.report(e)
			}
		} else {
			d.report(err)
		}
		return exitData
	}
	if d.showAST {
		program := &parser.Program{Filename: filename, Stmts: stmts}
		fmt.Fprintln(d.stdout, program.String())
		return exitOK
	}
	if errs := resolver.Check(filename, stmts); errs != nil {
		d.report(errs...)
		return exitData
	}
	in := eval.New(
		eval.WithOutput(d.stdout),
		eval.WithErrorOutput(d.stderr),
		eval.WithClosurePolicy(d.policy),
		eval.WithFilename(filename),
	)
	// runtime errors were reported when they were raised.
	if err := in.Interpret(stmts); err != nil {
		return exitSoftware
	}
	return exitOK
}

func (d *driver) repl() int {
	if d.conf.Banner {
		fmt.Fprintln(d.stdout, strings.Replace(LOGO, "$VERSION", sliceVersion(VERSION), 1))
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:       d.conf.Prompt,
		HistoryFile:  d.conf.HistoryFile,
		AutoComplete: completer(),
		Stdout:       d.stdout,
		Stderr:       d.stderr,
	})
	if err != nil {
		fmt.Fprintln(d.stderr, err)
		return exitSoftware
	}
	defer rl.Close()

	ic := eval.NewInteractiveContext(
		eval.WithOutput(rl.Stdout()),
		eval.WithErrorOutput(rl.Stderr()),
		eval.WithClosurePolicy(d.policy),
	)
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				break
			}
			continue
		}
		if err != nil {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		v, errs := ic.Run(line)
		if errs != nil {
			d.report(errs...)
			continue
		}
		if v != nil {
			fmt.Fprintln(rl.Stdout(), eval.Inspect(v))
		}
	}
	return exitOK
}

// report writes errors the way the interpreter reports runtime
// errors. Runtime errors themselves are skipped, as they have
// already been written.
func (d *driver) report(errs ...error) {
	for _, err := range errs {
		var re *eval.RuntimeError
		if errors.As(err, &re) {
			continue
		}
		fmt.Fprintln(d.stderr, formatError(err))
	}
}

func formatError(err error) string {
	switch e := err.(type) {
	case *parser.ParseError:
		return fmt.Sprintf("[line %d] Error%s: %s", e.Line(), e.Where(), e.Kind.Message())
	case resolver.ResolverError:
		return fmt.Sprintf("[line %d] Error%s: %s", e.Line(), e.Where(), e.Message)
	case lexer.Error:
		return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
	}
	return err.Error()
}

func completer() readline.AutoCompleter {
	words := []string{"and", "else", "false", "fun", "for", "if", "nil", "or", "print", "return", "true", "var", "while", "clock()"}
	items := make([]readline.PrefixCompleterInterface, len(words))
	for i, w := range words {
		items[i] = readline.PcItem(w)
	}
	return readline.NewPrefixCompleter(items...)
}
