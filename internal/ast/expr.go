package ast

import "github.com/birchlang/birch/internal/lexer"

// LiteralValue is the compile-time value carried by a Literal node: nil,
// bool, float64, or string.
type LiteralValue = any

// Literal is a literal nil/bool/number/string appearing directly in source.
type Literal struct {
	Value LiteralValue
	Ln    int
}

func (*Literal) exprNode()   {}
func (l *Literal) Line() int { return l.Ln }

// Grouping is a parenthesized expression, `( expr )`.
type Grouping struct {
	Expression Expr
	Ln         int
}

func (*Grouping) exprNode()   {}
func (g *Grouping) Line() int { return g.Ln }

// Unary is `! expr` or `- expr`.
type Unary struct {
	Operator lexer.Token
	Right    Expr
}

func (*Unary) exprNode()   {}
func (u *Unary) Line() int { return u.Operator.Line }

// Binary is a left-associative arithmetic or comparison expression.
type Binary struct {
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (*Binary) exprNode()   {}
func (b *Binary) Line() int { return b.Operator.Line }

// Logical is `and` / `or`, which short-circuit and so are evaluated
// differently from Binary despite the similar shape.
type Logical struct {
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (*Logical) exprNode()   {}
func (l *Logical) Line() int { return l.Operator.Line }

// Variable is a bare identifier read.
type Variable struct {
	Name lexer.Token
}

func (*Variable) exprNode()   {}
func (v *Variable) Line() int { return v.Name.Line }

// Assign is `identifier = value`.
type Assign struct {
	Name  lexer.Token
	Value Expr
}

func (*Assign) exprNode()   {}
func (a *Assign) Line() int { return a.Name.Line }

// Call is `callee ( args... )`. Paren is the closing `)`, used for its line
// in arity/type-error diagnostics.
type Call struct {
	Callee Expr
	Paren  lexer.Token
	Args   []Expr
}

func (*Call) exprNode()   {}
func (c *Call) Line() int { return c.Paren.Line }

// Get is `object . name`, a property/method read.
type Get struct {
	Object Expr
	Name   lexer.Token
}

func (*Get) exprNode()   {}
func (g *Get) Line() int { return g.Name.Line }

// Set is `object . name = value`, a property write.
type Set struct {
	Object Expr
	Name   lexer.Token
	Value  Expr
}

func (*Set) exprNode()   {}
func (s *Set) Line() int { return s.Name.Line }

// This is the `this` keyword used as an expression.
type This struct {
	Keyword lexer.Token
}

func (*This) exprNode()   {}
func (t *This) Line() int { return t.Keyword.Line }

// Super is `super . method`.
type Super struct {
	Keyword lexer.Token
	Method  lexer.Token
}

func (*Super) exprNode()   {}
func (s *Super) Line() int { return s.Keyword.Line }
