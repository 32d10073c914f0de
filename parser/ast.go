package parser

import "lox/lexer"

type Node interface {
	String() string
	Tok() lexer.Token
	node()
}

type Expr interface {
	Node
	expr()
}

type Stmt interface {
	Node
	stmt()
}
