package parser

import (
	"lox/lexer"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global syntax tracer.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}

// maxArgs is the limit on arguments and parameters. Exceeding it is
// reported but does not stop the parse.
const maxArgs = 255

type Parser struct {
	filename string
	tokens   []lexer.Token
	Errors   []*ParseError
	curr     int // how many we have consumed.
}

// ====
// init
// ====

// New creates a parser over tokens. The stream may or may not end
// with an EOF token; running out of tokens is treated the same way.
func New(fn string, tokens []lexer.Token) *Parser {
	return &Parser{
		filename: fn,
		tokens:   tokens,
		Errors:   []*ParseError{},
		curr:     0,
	}
}

// Parse parses tokens and returns the statements of every declaration
// that parsed cleanly, along with an ErrorList when any did not.
func Parse(fn string, tokens []lexer.Token) ([]Stmt, error) {
	p := New(fn, tokens)
	program := p.Parse()
	return program.Stmts, ErrorList(p.Errors).Err()
}

// =====
// utils
// =====

// consume consumes one token
func (p *Parser) consume() lexer.Token {
	if !p.isAtEnd() {
		p.curr++
	}
	return p.previous()
}

// previous returns the most recently consumed token
func (p *Parser) previous() lexer.Token {
	if p.curr == 0 {
		return p.peek()
	}
	return p.tokens[p.curr-1]
}

// peek returns the token to be consumed. Past the end of the
// stream it returns a synthetic EOF on the last line.
func (p *Parser) peek() lexer.Token {
	if p.curr < len(p.tokens) {
		return p.tokens[p.curr]
	}
	eof := lexer.Token{Type: lexer.EOF, Line: 1}
	if n := len(p.tokens); n > 0 {
		eof.Line = p.tokens[n-1].Line
	}
	return eof
}

// isAtEnd returns true if the current token is an EOF token
func (p *Parser) isAtEnd() bool { return p.peek().Type == lexer.EOF }

// check returns if the peek token matches the given type
func (p *Parser) check(t lexer.TokenType) bool {
	return !p.isAtEnd() && p.peek().Type == t
}

// match consumes the token if it matches any of the given types
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.consume()
			return true
		}
	}
	return false
}

// ===========
// entry point
// ===========

// program → declaration* EOF

func (p *Parser) Parse() *Program {
	program := &Program{Filename: p.filename, Stmts: []Stmt{}}
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			program.Stmts = append(program.Stmts, stmt)
		}
	}
	return program
}

// =================
// statement parsing
// =================
//
//   declaration → funDecl | varDecl | statement
//   funDecl     → "fun" IDENT "(" parameters? ")" block
//   varDecl     → "var" IDENT ( "=" expression )? ";"
//   statement   → exprStmt | forStmt | ifStmt | printStmt
//               | returnStmt | whileStmt | block
//   forStmt     → "for" "(" ( varDecl | exprStmt | ";" )
//                 expression? ";" expression? ")" statement
//   ifStmt      → "if" "(" expression ")" statement ( "else" statement )?
//   printStmt   → "print" expression ";"
//   returnStmt  → "return" expression? ";"
//   whileStmt   → "while" "(" expression ")" statement
//   block       → "{" declaration* "}"
//   exprStmt    → expression ";"

func (p *Parser) declaration() (stmt Stmt) {
	start := p.curr
	defer func() {
		// This will be called repeatedly as we parse statements, so
		// this is a good place to synchronize(). All top-level calls
		// to parse statements go through here.
		if rv := recover(); rv != nil {
			if _, ok := rv.(*ParseError); ok {
				if p.curr == start {
					// e.g. `class` starts no statement but is a sync point.
					p.consume()
				}
				p.synchronize()
				stmt = nil
				return
			}
			panic(rv)
		}
	}()
	switch {
	case p.check(lexer.VAR):
		return p.varDecl()
	case p.check(lexer.FUN):
		return p.funDecl()
	}
	return p.statement()
}

func (p *Parser) statement() Stmt {
	switch {
	case p.check(lexer.FOR):
		return p.forStmt()
	case p.check(lexer.WHILE):
		return p.whileStmt()
	case p.check(lexer.IF):
		return p.ifStmt()
	case p.check(lexer.PRINT):
		return p.printStmt()
	case p.check(lexer.RETURN):
		return p.returnStmt()
	case p.check(lexer.LEFT_BRACE):
		return p.blockStmt()
	}
	return p.exprStmt()
}

func (p *Parser) varDecl() Stmt {
	token := p.consume()
	name := p.expect(lexer.IDENTIFIER, MissingVariableName)
	var init Expr
	if p.match(lexer.EQUAL) {
		init = p.expression()
	}
	p.expect(lexer.SEMICOLON, MissingSemicolon)
	return newVar(token, name, init)
}

func (p *Parser) funDecl() Stmt {
	token := p.consume()
	name := p.expect(lexer.IDENTIFIER, MissingIdentifier)
	p.expect(lexer.LEFT_PAREN, MissingFunctionParen)
	params := []lexer.Token{}
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			params = append(params, p.expect(lexer.IDENTIFIER, MissingIdentifier))
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	if len(params) > maxArgs {
		p.report(ArityMismatchInDeclaration, params[maxArgs])
	}
	p.expect(lexer.RIGHT_PAREN, UnclosedParameters)
	if !p.check(lexer.LEFT_BRACE) {
		p.fail(MissingFunctionBrace, p.peek())
	}
	body := p.blockStmt().(*Block)
	return newFunction(token, name, params, body.Stmts)
}

// forStmt desugars
//
//   for (init; cond; incr) body
//
// into
//
//   { init; while (cond) { body; incr; } }
//
// a missing condition is `true`.
func (p *Parser) forStmt() Stmt {
	token := p.consume() // the 'for' token
	p.expect(lexer.LEFT_PAREN, MissingParenAfterFor)
	var init Stmt
	switch {
	case p.match(lexer.SEMICOLON):
	case p.check(lexer.VAR):
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}
	var cond Expr
	if !p.check(lexer.SEMICOLON) {
		cond = p.expression()
	}
	p.expect(lexer.SEMICOLON, MissingLoopSemicolon)
	var incr Expr
	if !p.check(lexer.RIGHT_PAREN) {
		incr = p.expression()
	}
	p.expect(lexer.RIGHT_PAREN, UnclosedForClauses)
	body := p.statement()

	if incr != nil {
		body = newBlock(token, []Stmt{body, newExprStmt(incr)})
	}
	if cond == nil {
		cond = newLiteral(lexer.Token{Type: lexer.TRUE, Lexeme: "true", Line: token.Line, Column: token.Column})
	}
	var loop Stmt = newWhile(token, cond, body)
	if init != nil {
		loop = newBlock(token, []Stmt{init, loop})
	}
	return loop
}

func (p *Parser) whileStmt() Stmt {
	token := p.consume()
	p.expect(lexer.LEFT_PAREN, MissingParenAfterWhile)
	cond := p.expression()
	p.expect(lexer.RIGHT_PAREN, UnclosedWhileCondition)
	body := p.statement()
	return newWhile(token, cond, body)
}

func (p *Parser) ifStmt() Stmt {
	token := p.consume()
	p.expect(lexer.LEFT_PAREN, MissingParenAfterIf)
	cond := p.expression()
	p.expect(lexer.RIGHT_PAREN, UnclosedIfCondition)
	then := p.statement()
	var elseStmt Stmt = nil
	if p.match(lexer.ELSE) {
		elseStmt = p.statement()
	}
	return newIf(token, cond, then, elseStmt)
}

func (p *Parser) printStmt() Stmt {
	token := p.consume()
	expr := p.expression()
	p.expect(lexer.SEMICOLON, MissingSemicolon)
	return newPrint(token, expr)
}

func (p *Parser) returnStmt() Stmt {
	token := p.consume()
	var value Expr
	if !p.check(lexer.SEMICOLON) {
		value = p.expression()
	}
	p.expect(lexer.SEMICOLON, MissingSemicolon)
	return newReturn(token, value)
}

func (p *Parser) blockStmt() Stmt {
	token := p.consume()
	stmts := []Stmt{}
	for !p.isAtEnd() && !p.check(lexer.RIGHT_BRACE) {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.expect(lexer.RIGHT_BRACE, UnterminatedBlock)
	return newBlock(token, stmts)
}

func (p *Parser) exprStmt() Stmt {
	expr := p.expression()
	p.expect(lexer.SEMICOLON, MissingSemicolon)
	return newExprStmt(expr)
}

// ==================
// expression parsing
// ==================
//
//   expression → assignment
//   assignment → IDENT "=" assignment | logic_or
//   logic_or   → logic_and ( "or" logic_and )*
//   logic_and  → equality ( "and" equality )*
//   equality   → comparison ( ( "!=" | "==" ) comparison )*
//   comparison → term ( ( ">" | ">=" | "<" | "<=" ) term )*
//   term       → factor ( ( "-" | "+" ) factor )*
//   factor     → unary ( ( "/" | "*" ) unary )*
//   unary      → ( "!" | "-" ) unary | call
//   call       → primary ( "(" arguments? ")" )*
//   primary    → NUMBER | STRING | "true" | "false" | "nil"
//              | IDENT | "(" expression ")"

// expression matches a single expression.
func (p *Parser) expression() Expr { return p.assignment() }

func (p *Parser) assignment() Expr {
	expr := p.or()
	if p.match(lexer.EQUAL) {
		equals := p.previous()
		value := p.assignment()
		if v, ok := expr.(*Variable); ok {
			return newAssign(v.Name, value)
		}
		// this is not an error worth panicking over.
		// just move along -- we will put it in `.Errors'.
		p.report(InvalidAssignmentTarget, equals)
	}
	return expr
}

func (p *Parser) or() Expr {
	expr := p.and()
	for p.match(lexer.OR) {
		op := p.previous()
		expr = newLogical(expr, op, p.and())
	}
	return expr
}

func (p *Parser) and() Expr {
	expr := p.equality()
	for p.match(lexer.AND) {
		op := p.previous()
		expr = newLogical(expr, op, p.equality())
	}
	return expr
}

func (p *Parser) equality() Expr {
	return p.binary(p.comparison, lexer.BANG_EQUAL, lexer.EQUAL_EQUAL)
}

func (p *Parser) comparison() Expr {
	return p.binary(p.term, lexer.GREATER, lexer.GREATER_EQUAL, lexer.LESS, lexer.LESS_EQUAL)
}

func (p *Parser) term() Expr {
	return p.binary(p.factor, lexer.MINUS, lexer.PLUS)
}

func (p *Parser) factor() Expr {
	return p.binary(p.unary, lexer.SLASH, lexer.STAR)
}

// binary folds a left-associative run of the given operators,
// with operands parsed by next.
func (p *Parser) binary(next func() Expr, ops ...lexer.TokenType) Expr {
	expr := next()
	for p.match(ops...) {
		op := p.previous()
		expr = newBinary(expr, op, next())
	}
	return expr
}

func (p *Parser) unary() Expr {
	if p.match(lexer.BANG, lexer.MINUS) {
		op := p.previous()
		return newUnary(op, p.unary())
	}
	return p.call()
}

func (p *Parser) call() Expr {
	expr := p.primary()
	for p.match(lexer.LEFT_PAREN) {
		expr = p.finishCall(expr)
	}
	return expr
}

func (p *Parser) finishCall(callee Expr) Expr {
	args := []Expr{}
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			args = append(args, p.expression())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	paren := p.expect(lexer.RIGHT_PAREN, UnterminatedArgs)
	if len(args) > maxArgs {
		p.report(TooManyArguments, args[maxArgs].Tok())
	}
	return newCall(callee, paren, args)
}

func (p *Parser) primary() Expr {
	switch {
	case p.match(lexer.FALSE, lexer.TRUE, lexer.NIL, lexer.NUMBER, lexer.STRING):
		return newLiteral(p.previous())
	case p.match(lexer.IDENTIFIER):
		return newVariable(p.previous())
	case p.match(lexer.LEFT_PAREN):
		tok := p.previous()
		expr := p.expression()
		p.expect(lexer.RIGHT_PAREN, UnterminatedParen)
		return newGrouping(tok, expr)
	}
	p.fail(ExpectedExpression, p.peek())
	return nil
}
