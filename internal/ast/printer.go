package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders an expression as a prefix S-expression, the form the
// `parse` CLI command prints for a single top-level expression, e.g.
// `(+ 1 2)`, `(group (+ 1 2))`, `(* (- 123) (group 45.67))`.
func Print(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeExpr(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *Literal:
		b.WriteString(formatLiteral(n.Value))
	case *Grouping:
		parenthesize(b, "group", n.Expression)
	case *Unary:
		parenthesize(b, n.Operator.Lexeme, n.Right)
	case *Binary:
		parenthesize(b, n.Operator.Lexeme, n.Left, n.Right)
	case *Logical:
		parenthesize(b, n.Operator.Lexeme, n.Left, n.Right)
	case *Variable:
		b.WriteString(n.Name.Lexeme)
	case *Assign:
		parenthesize(b, "= "+n.Name.Lexeme, n.Value)
	case *Call:
		parenthesize(b, "call", append([]Expr{n.Callee}, n.Args...)...)
	case *Get:
		parenthesize(b, ". "+n.Name.Lexeme, n.Object)
	case *Set:
		parenthesize(b, "= . "+n.Name.Lexeme, n.Object, n.Value)
	case *This:
		b.WriteString("this")
	case *Super:
		b.WriteString("(super . " + n.Method.Lexeme + ")")
	default:
		fmt.Fprintf(b, "<%T>", e)
	}
}

func parenthesize(b *strings.Builder, name string, exprs ...Expr) {
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		writeExpr(b, e)
	}
	b.WriteByte(')')
}

func formatLiteral(v LiteralValue) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
