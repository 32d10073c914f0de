package parser

import (
	"fmt"
	"strings"

	"lox/lexer"
)

// The String methods print the tree back as Lox source, with every
// operator application wrapped in parentheses. Statements inside a
// block are not separated.

func (node *Program) String() string { return joinStmts(node.Stmts, "\n") }

func (node *ExprStmt) String() string { return node.Expr.String() + ";" }
func (node *Print) String() string    { return "print " + node.Expr.String() + ";" }
func (node *Block) String() string    { return "{" + joinStmts(node.Stmts, "") + "}" }

func (node *Var) String() string {
	if node.Init == nil {
		return "var " + node.Name.Lexeme + ";"
	}
	return fmt.Sprintf("var %s = %s;", node.Name.Lexeme, node.Init)
}

func (node *If) String() string {
	s := fmt.Sprintf("if (%s) %s", node.Cond, node.Then)
	if node.Else != nil {
		s += " else " + node.Else.String()
	}
	return s
}

func (node *While) String() string {
	return fmt.Sprintf("while (%s) %s", node.Cond, node.Body)
}

func (node *Function) String() string {
	return fmt.Sprintf("fun %s(%s) {%s}", node.Name.Lexeme, joinNames(node.Params), joinStmts(node.Body, ""))
}

func (node *Return) String() string {
	if node.Value == nil {
		return "return;"
	}
	return "return " + node.Value.String() + ";"
}

func (node *Assign) String() string {
	return fmt.Sprintf("(%s = %s)", node.Name.Lexeme, node.Value)
}

func (node *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", node.Left, node.Op.Lexeme, node.Right)
}

func (node *Logical) String() string {
	return fmt.Sprintf("(%s %s %s)", node.Left, node.Op.Lexeme, node.Right)
}

func (node *Unary) String() string    { return "(" + node.Op.Lexeme + node.Right.String() + ")" }
func (node *Grouping) String() string { return "(group " + node.Expr.String() + ")" }

func (node *Call) String() string {
	args := make([]string, len(node.Args))
	for i, arg := range node.Args {
		args[i] = arg.String()
	}
	return node.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

func (node *Variable) String() string { return node.Name.Lexeme }
func (node *Literal) String() string  { return node.Lit.Lexeme }

func joinStmts(stmts []Stmt, sep string) string {
	parts := make([]string, len(stmts))
	for i, stmt := range stmts {
		parts[i] = stmt.String()
	}
	return strings.Join(parts, sep)
}

func joinNames(toks []lexer.Token) string {
	names := make([]string, len(toks))
	for i, tok := range toks {
		names[i] = tok.Lexeme
	}
	return strings.Join(names, ", ")
}
