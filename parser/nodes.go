package parser

import "lox/lexer"

// Program is the root of a parsed source file.
type Program struct {
	Filename string
	Stmts    []Stmt
}

// ==========
// Statements
// ==========

type ExprStmt struct {
	Expr Expr
}

type Print struct {
	Keyword lexer.Token
	Expr    Expr
}

// Var declares Name in the current scope. A nil Init leaves the
// variable uninitialized, which is not the same thing as nil.
type Var struct {
	Keyword lexer.Token
	Name    lexer.Token
	Init    Expr
}

type Block struct {
	LBrace lexer.Token
	Stmts  []Stmt
}

type If struct {
	Keyword lexer.Token
	Cond    Expr
	Then    Stmt
	Else    Stmt
}

// While is also the target of for-loop desugaring, there is no For node.
type While struct {
	Keyword lexer.Token
	Cond    Expr
	Body    Stmt
}

type Function struct {
	Keyword lexer.Token
	Name    lexer.Token
	Params  []lexer.Token
	Body    []Stmt
}

type Return struct {
	Keyword lexer.Token
	Value   Expr
}

// ===========
// Expressions
// ===========

// Literal holds a number, string, true, false or nil token;
// the value is derived from the token.
type Literal struct {
	Lit lexer.Token
}

type Variable struct {
	Name lexer.Token
}

type Assign struct {
	Name  lexer.Token
	Value Expr
}

type Unary struct {
	Op    lexer.Token
	Right Expr
}

type Binary struct {
	Left  Expr
	Op    lexer.Token
	Right Expr
}

// Logical is a short-circuiting `and` / `or`.
type Logical struct {
	Left  Expr
	Op    lexer.Token
	Right Expr
}

type Grouping struct {
	LParen lexer.Token
	Expr   Expr
}

type Call struct {
	Callee Expr
	Paren  lexer.Token // the closing paren, used for error lines.
	Args   []Expr
}

// ============
// Constructors
// ============

func newExprStmt(expr Expr) *ExprStmt           { return &ExprStmt{expr} }
func newPrint(tok lexer.Token, expr Expr) *Print { return &Print{tok, expr} }
func newVar(tok, name lexer.Token, init Expr) *Var {
	return &Var{tok, name, init}
}
func newBlock(tok lexer.Token, stmts []Stmt) *Block { return &Block{tok, stmts} }
func newIf(tok lexer.Token, cond Expr, then, elseStmt Stmt) *If {
	return &If{tok, cond, then, elseStmt}
}
func newWhile(tok lexer.Token, cond Expr, body Stmt) *While {
	return &While{tok, cond, body}
}
func newFunction(tok, name lexer.Token, params []lexer.Token, body []Stmt) *Function {
	return &Function{tok, name, params, body}
}
func newReturn(tok lexer.Token, value Expr) *Return { return &Return{tok, value} }

func newLiteral(tok lexer.Token) *Literal               { return &Literal{tok} }
func newVariable(name lexer.Token) *Variable            { return &Variable{name} }
func newAssign(name lexer.Token, value Expr) *Assign    { return &Assign{name, value} }
func newUnary(op lexer.Token, right Expr) *Unary        { return &Unary{op, right} }
func newGrouping(tok lexer.Token, expr Expr) *Grouping  { return &Grouping{tok, expr} }
func newBinary(left Expr, op lexer.Token, right Expr) *Binary {
	return &Binary{left, op, right}
}
func newLogical(left Expr, op lexer.Token, right Expr) *Logical {
	return &Logical{left, op, right}
}
func newCall(callee Expr, paren lexer.Token, args []Expr) *Call {
	return &Call{callee, paren, args}
}

// ======
// Tokens
// ======

func (node *ExprStmt) Tok() lexer.Token { return node.Expr.Tok() }
func (node *Print) Tok() lexer.Token    { return node.Keyword }
func (node *Var) Tok() lexer.Token      { return node.Keyword }
func (node *Block) Tok() lexer.Token    { return node.LBrace }
func (node *If) Tok() lexer.Token       { return node.Keyword }
func (node *While) Tok() lexer.Token    { return node.Keyword }
func (node *Function) Tok() lexer.Token { return node.Keyword }
func (node *Return) Tok() lexer.Token   { return node.Keyword }
func (node *Literal) Tok() lexer.Token  { return node.Lit }
func (node *Variable) Tok() lexer.Token { return node.Name }
func (node *Assign) Tok() lexer.Token   { return node.Name }
func (node *Unary) Tok() lexer.Token    { return node.Op }
func (node *Binary) Tok() lexer.Token   { return node.Op }
func (node *Logical) Tok() lexer.Token  { return node.Op }
func (node *Grouping) Tok() lexer.Token { return node.LParen }
func (node *Call) Tok() lexer.Token     { return node.Paren }

// =======
// Markers
// =======

func (node *ExprStmt) node() {}
func (node *Print) node()    {}
func (node *Var) node()      {}
func (node *Block) node()    {}
func (node *If) node()       {}
func (node *While) node()    {}
func (node *Function) node() {}
func (node *Return) node()   {}
func (node *Literal) node()  {}
func (node *Variable) node() {}
func (node *Assign) node()   {}
func (node *Unary) node()    {}
func (node *Binary) node()   {}
func (node *Logical) node()  {}
func (node *Grouping) node() {}
func (node *Call) node()     {}

func (node *ExprStmt) stmt() {}
func (node *Print) stmt()    {}
func (node *Var) stmt()      {}
func (node *Block) stmt()    {}
func (node *If) stmt()       {}
func (node *While) stmt()    {}
func (node *Function) stmt() {}
func (node *Return) stmt()   {}

func (node *Literal) expr()  {}
func (node *Variable) expr() {}
func (node *Assign) expr()   {}
func (node *Unary) expr()    {}
func (node *Binary) expr()   {}
func (node *Logical) expr()  {}
func (node *Grouping) expr() {}
func (node *Call) expr()     {}
