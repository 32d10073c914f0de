package eval

import (
	"lox/lexer"
	"lox/parser"
	"lox/resolver"
)

// InteractiveContext runs source one chunk at a time against the same
// globals, the way a REPL needs it to.
type InteractiveContext struct {
	Filename string
	in       *Interpreter
	res      *resolver.Resolver
}

func NewInteractiveContext(opts ...Option) *InteractiveContext {
	fn := "<stdin>"
	opts = append([]Option{WithFilename(fn)}, opts...)
	return &InteractiveContext{
		Filename: fn,
		in:       New(opts...),
		res:      resolver.New(fn),
	}
}

// Interpreter gives access to the underlying interpreter.
func (ic *InteractiveContext) Interpreter() *Interpreter { return ic.in }

// Run scans, parses, checks and runs input. When the last statement
// is a bare expression its value is returned so it can be echoed;
// otherwise the Value is nil. Lexer, parser and resolver errors are
// returned without running anything. A runtime error stops the run;
// it has already been reported on the error output.
func (ic *InteractiveContext) Run(input string) (Value, []error) {
	tokens, errs := lexer.Scan(ic.Filename, input)
	if errs != nil {
		return nil, errs
	}
	p := parser.New(ic.Filename, tokens)
	program := p.Parse()
	if len(p.Errors) != 0 {
		errs := make([]error, len(p.Errors))
		for i, err := range p.Errors {
			errs[i] = err
		}
		return nil, errs
	}
	for _, stmt := range program.Stmts {
		ic.res.ResolveOne(stmt)
		if len(ic.res.Errors) != 0 {
			og := ic.res.Errors
			ic.res.Errors = []error{}
			return nil, og
		}
	}
	// Still no errors? we can run it.
	var rv Value
	for i, stmt := range program.Stmts {
		rv = nil
		if expr, ok := stmt.(*parser.ExprStmt); ok && i == len(program.Stmts)-1 {
			v, err := ic.in.Evaluate(expr.Expr)
			if err != nil {
				return nil, []error{err}
			}
			rv = v
			continue
		}
		if _, err := ic.in.Execute(stmt); err != nil {
			return nil, []error{err}
		}
	}
	return rv, nil
}
