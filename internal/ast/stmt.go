package ast

import "github.com/birchlang/birch/internal/lexer"

// ExpressionStmt evaluates an expression and discards the result.
type ExpressionStmt struct {
	Expression Expr
}

func (*ExpressionStmt) stmtNode() {}

// PrintStmt evaluates an expression, renders it, and writes it followed by a
// newline.
type PrintStmt struct {
	Expression Expr
}

func (*PrintStmt) stmtNode() {}

// VarStmt is `var name = initializer;`. Initializer is never nil: a missing
// initializer is filled in by the parser with a Literal{Value: nil}.
type VarStmt struct {
	Name        lexer.Token
	Initializer Expr
}

func (*VarStmt) stmtNode() {}

// BlockStmt is `{ statements... }`, a lexical scope boundary.
type BlockStmt struct {
	Statements []Stmt
}

func (*BlockStmt) stmtNode() {}

// IfStmt is `if (cond) then else? `. `else if` chains are represented by
// nesting another IfStmt as Else.
type IfStmt struct {
	Condition Expr
	Then      Stmt
	Else      Stmt // nil if absent
}

func (*IfStmt) stmtNode() {}

// WhileStmt is `while (cond) body`. `for` loops are desugared into WhileStmt
// (wrapped in a BlockStmt for the initializer) by the parser.
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

func (*WhileStmt) stmtNode() {}

// ReturnStmt is `return expr? ;`. Value is nil for a bare `return;`.
type ReturnStmt struct {
	Keyword lexer.Token
	Value   Expr // nil if absent
}

func (*ReturnStmt) stmtNode() {}

// FunctionStmt is a function (or method) declaration: `fun name(params) { body }`.
//
// Captures is filled in by the resolver: the set of free variable names the
// body references that are not parameters and not declared within the body
// itself. The evaluator uses it to snapshot cells from the live scope chain
// into the resulting Function value's captured bindings at the moment the
// declaration statement runs.
type FunctionStmt struct {
	Name     lexer.Token
	Params   []lexer.Token
	Body     []Stmt
	Captures []string
}

func (*FunctionStmt) stmtNode() {}

// ClassStmt is a class declaration, optionally extending a superclass named
// by a Variable expression (resolved like any other identifier read).
type ClassStmt struct {
	Name       lexer.Token
	Superclass *Variable // nil if no `< Superclass` clause
	Methods    []*FunctionStmt
}

func (*ClassStmt) stmtNode() {}
