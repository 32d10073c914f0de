package lexer

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

//go:generate stringer -type=TokenType

type TokenType uint8

const (
	_ = TokenType(iota)
	// single-character tokens
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	COMMA
	DOT
	MINUS
	PLUS
	SEMICOLON
	SLASH
	STAR
	// one or two-character tokens
	BANG
	BANG_EQUAL
	EQUAL
	EQUAL_EQUAL
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL
	// literals
	IDENTIFIER
	STRING
	NUMBER
	// keywords
	AND
	CLASS
	ELSE
	FALSE
	FUN
	FOR
	IF
	NIL
	OR
	PRINT
	RETURN
	SUPER
	THIS
	TRUE
	VAR
	WHILE
	// meta
	EOF
)

var keywords = map[string]TokenType{
	"and":    AND,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"fun":    FUN,
	"for":    FOR,
	"if":     IF,
	"nil":    NIL,
	"or":     OR,
	"print":  PRINT,
	"return": RETURN,
	"super":  SUPER,
	"this":   THIS,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
}

type Token struct {
	Type    TokenType
	Lexeme  string      // use utf8.RuneCountInString to get the length.
	Literal interface{} // float64 for NUMBER, string for STRING and IDENTIFIER
	Line    int
	Column  int
}

func (t Token) String() string {
	if t.Type == EOF {
		return fmt.Sprintf("%d: EOF", t.Line)
	}
	return fmt.Sprintf("%d: %s %q", t.Line, t.Type, t.Lexeme)
}

type Error struct {
	Filename string
	Line     int
	Column   int
	Message  string
}

func (e Error) Error() string { return e.String() }
func (e Error) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Message)
}

// maxErrors bounds how many errors a single scan reports.
const maxErrors = 10

// position is a point in the source. col counts runes, not bytes.
type position struct {
	offset int
	line   int
	col    int
}

// Tokens made of a single rune which never start a longer token.
var singles = map[rune]TokenType{
	'(': LEFT_PAREN,
	')': RIGHT_PAREN,
	'{': LEFT_BRACE,
	'}': RIGHT_BRACE,
	',': COMMA,
	'.': DOT,
	'-': MINUS,
	'+': PLUS,
	';': SEMICOLON,
	'*': STAR,
}

// Tokens which become a different token when followed by '='.
var withEqual = map[rune][2]TokenType{
	'!': {BANG, BANG_EQUAL},
	'=': {EQUAL, EQUAL_EQUAL},
	'<': {LESS, LESS_EQUAL},
	'>': {GREATER, GREATER_EQUAL},
}

type Lexer struct {
	Filename string
	Tokens   []Token
	Errors   []Error
	source   string
	pos      position // next rune to read
	start    position // first rune of the current lexeme
	broken   bool     // set on invalid utf8, scanning cannot go on
}

func New(filename string, source string) *Lexer {
	begin := position{offset: 0, line: 1, col: 1}
	return &Lexer{
		Filename: filename,
		Tokens:   []Token{},
		source:   source,
		pos:      begin,
		start:    begin,
	}
}

// Scan is a shortcut for New(...).ScanTokens() which returns
// the tokens together with any errors met along the way.
func Scan(filename, source string) ([]Token, []error) {
	l := New(filename, source)
	l.ScanTokens()
	if len(l.Errors) == 0 {
		return l.Tokens, nil
	}
	errs := make([]error, len(l.Errors))
	for i, err := range l.Errors {
		errs[i] = err
	}
	return l.Tokens, errs
}

// ScanTokens fills Tokens, always ending with an EOF token.
func (l *Lexer) ScanTokens() {
	for l.more() && len(l.Errors) <= maxErrors {
		l.start = l.pos
		l.next()
	}
	l.Tokens = append(l.Tokens, Token{Type: EOF, Line: l.pos.line, Column: l.pos.col})
}

func (l *Lexer) more() bool { return !l.broken && l.pos.offset < len(l.source) }

// read consumes a rune. It returns 0 at the end of input or on
// invalid utf8, which also stops the scan.
func (l *Lexer) read() rune {
	if !l.more() {
		return 0
	}
	r, w := utf8.DecodeRuneInString(l.source[l.pos.offset:])
	if r == utf8.RuneError {
		l.error("invalid utf8 input at byte %d", l.pos.offset)
		l.broken = true
		return 0
	}
	l.pos.offset += w
	if r == '\n' {
		l.pos.line++
		l.pos.col = 1
	} else {
		l.pos.col++
	}
	return r
}

// lookahead returns the rune n places ahead without consuming.
func (l *Lexer) lookahead(n int) rune {
	if l.broken {
		return 0
	}
	rest := l.source[l.pos.offset:]
	for ; rest != ""; n-- {
		r, w := utf8.DecodeRuneInString(rest)
		if n == 0 {
			return r
		}
		rest = rest[w:]
	}
	return 0
}

func (l *Lexer) skipWhile(pred func(rune) bool) {
	for l.more() && pred(l.lookahead(0)) {
		l.read()
	}
}

func (l *Lexer) next() {
	ch := l.read()
	if ch == 0 {
		return
	}
	if typ, ok := singles[ch]; ok {
		l.emit(typ, nil)
		return
	}
	if pair, ok := withEqual[ch]; ok {
		if l.lookahead(0) == '=' {
			l.read()
			l.emit(pair[1], nil)
		} else {
			l.emit(pair[0], nil)
		}
		return
	}
	switch {
	case isWhiteSpace(ch):
		l.skipWhile(isWhiteSpace)
	case ch == '/' && l.lookahead(0) == '/':
		l.skipWhile(func(r rune) bool { return r != '\n' })
	case ch == '/':
		l.emit(SLASH, nil)
	case ch == '"':
		l.lexString()
	case isDigit(ch):
		l.lexNumber()
	case isAlpha(ch):
		l.skipWhile(isIdentifier)
		word := l.lexeme()
		if typ, ok := keywords[word]; ok {
			l.emit(typ, nil)
		} else {
			l.emit(IDENTIFIER, word)
		}
	default:
		l.error("unexpected character %U %q", ch, ch)
	}
}

// lexNumber reads digits with an optional fraction. A dot which is
// not followed by a digit is left for the next token.
func (l *Lexer) lexNumber() {
	l.skipWhile(isDigit)
	if l.lookahead(0) == '.' && isDigit(l.lookahead(1)) {
		l.read()
		l.skipWhile(isDigit)
	}
	num, err := strconv.ParseFloat(l.lexeme(), 64)
	if err != nil {
		l.error("%s", err)
		return
	}
	l.emit(NUMBER, num)
}

// lexString scans a string literal. Lox strings have no escapes
// and may span several lines; the token keeps the line it started on.
func (l *Lexer) lexString() {
	l.skipWhile(func(r rune) bool { return r != '"' })
	if l.broken {
		return
	}
	if !l.more() {
		l.error("unterminated string")
		return
	}
	l.read()
	lexeme := l.lexeme()
	l.emit(STRING, lexeme[1:len(lexeme)-1])
}

func (l *Lexer) lexeme() string { return l.source[l.start.offset:l.pos.offset] }

func (l *Lexer) emit(typ TokenType, lit interface{}) {
	l.Tokens = append(l.Tokens, Token{
		Type:    typ,
		Lexeme:  l.lexeme(),
		Literal: lit,
		Line:    l.start.line,
		Column:  l.start.col,
	})
}

func (l *Lexer) error(s string, args ...interface{}) {
	l.Errors = append(l.Errors, Error{
		Filename: l.Filename,
		Line:     l.pos.line,
		Column:   l.pos.col,
		Message:  fmt.Sprintf(s, args...),
	})
}

func isWhiteSpace(ch rune) bool { return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' }
func isIdentifier(ch rune) bool { return isAlpha(ch) || isDigit(ch) }
func isAlpha(ch rune) bool      { return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') }
func isDigit(ch rune) bool      { return '0' <= ch && ch <= '9' }
