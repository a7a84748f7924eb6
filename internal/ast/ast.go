// Package ast defines the expression and statement tree produced by the
// parser and walked by the resolver and evaluator.
package ast

// Expr is implemented by every expression node.
type Expr interface {
	exprNode()
	// Line returns the source line this expression starts on, used for
	// runtime diagnostics.
	Line() int
}

// Stmt is implemented by every statement node.
type Stmt interface {
	stmtNode()
}

// Program is the top-level result of parsing a whole file: a flat sequence
// of statements.
type Program struct {
	Statements []Stmt
}
