// Package parser implements the recursive-descent parser described in the
// interpreter's design: a forest of statements built from a token cursor,
// with a right-associative assignment rewrite and no panic-mode recovery —
// the first syntax error found is reported and parsing stops.
package parser

import (
	"strconv"

	"github.com/birchlang/birch/internal/ast"
	"github.com/birchlang/birch/internal/errors"
	"github.com/birchlang/birch/internal/lexer"
)

// Parser walks a fixed token slice with a single cursor, one token of
// lookahead.
type Parser struct {
	tokens  []lexer.Token
	current int
}

// New creates a Parser over the given token slice, which must end in an
// EOF token (the shape lexer.Lexer.ScanTokens always produces).
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseProgram parses a whole file into a flat statement sequence. The
// first syntax error encountered is returned immediately with a nil
// program; whatever statements were parsed before it are discarded.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	var stmts []ast.Stmt
	for !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return &ast.Program{Statements: stmts}, nil
}

// ParseExpression parses a single expression, the mode used by the
// `parse`/`evaluate` CLI commands.
func (p *Parser) ParseExpression() (ast.Expr, error) {
	return p.expression()
}

// --- declarations ---

func (p *Parser) declaration() (ast.Stmt, error) {
	switch {
	case p.match(lexer.Class):
		return p.classDeclaration()
	case p.match(lexer.Fun):
		return p.function("function")
	case p.match(lexer.Var):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) classDeclaration() (ast.Stmt, error) {
	name, err := p.consume(lexer.Identifier, "Expect class name.")
	if err != nil {
		return nil, err
	}

	var superclass *ast.Variable
	if p.match(lexer.Less) {
		superName, err := p.consume(lexer.Identifier, "Expect superclass name.")
		if err != nil {
			return nil, err
		}
		superclass = &ast.Variable{Name: superName}
	}

	if _, err := p.consume(lexer.LeftBrace, "Expect '{' before class body."); err != nil {
		return nil, err
	}

	var methods []*ast.FunctionStmt
	for !p.check(lexer.RightBrace) && !p.atEnd() {
		m, err := p.function("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, m.(*ast.FunctionStmt))
	}

	if _, err := p.consume(lexer.RightBrace, "Expect '}' after class body."); err != nil {
		return nil, err
	}

	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}, nil
}

func (p *Parser) function(kind string) (ast.Stmt, error) {
	name, err := p.consume(lexer.Identifier, "Expect "+kind+" name.")
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.LeftParen, "Expect '(' after "+kind+" name."); err != nil {
		return nil, err
	}
	var params []lexer.Token
	if !p.check(lexer.RightParen) {
		for {
			if len(params) >= 255 {
				return nil, p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			param, err := p.consume(lexer.Identifier, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(lexer.RightParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.LeftBrace, "Expect '{' before "+kind+" body."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionStmt{Name: name, Params: params, Body: body}, nil
}

func (p *Parser) varDeclaration() (ast.Stmt, error) {
	name, err := p.consume(lexer.Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var initializer ast.Expr = &ast.Literal{Value: nil, Ln: name.Line}
	if p.match(lexer.Equal) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(lexer.Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &ast.VarStmt{Name: name, Initializer: initializer}, nil
}

// --- statements ---

func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.match(lexer.For):
		return p.forStatement()
	case p.match(lexer.If):
		return p.ifStatement()
	case p.match(lexer.Print):
		return p.printStatement()
	case p.match(lexer.Return):
		return p.returnStatement()
	case p.match(lexer.While):
		return p.whileStatement()
	case p.match(lexer.LeftBrace):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return &ast.BlockStmt{Statements: stmts}, nil
	default:
		return p.expressionStatement()
	}
}

// forStatement desugars `for (init; cond; step) body` into an (init;
// while (cond) { body; step; }) block, per spec.md's "desugared or kept
// explicit" note — this interpreter desugars, so the evaluator has one
// fewer loop construct to implement.
func (p *Parser) forStatement() (ast.Stmt, error) {
	if _, err := p.consume(lexer.LeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var initializer ast.Stmt
	var err error
	switch {
	case p.match(lexer.Semicolon):
		initializer = nil
	case p.match(lexer.Var):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition ast.Expr
	if !p.check(lexer.Semicolon) {
		condition, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.Semicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var step ast.Expr
	if !p.check(lexer.RightParen) {
		step, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.RightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if step != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{body, &ast.ExpressionStmt{Expression: step}}}
	}
	if condition == nil {
		condition = &ast.Literal{Value: true}
	}
	body = &ast.WhileStmt{Condition: condition, Body: body}

	if initializer != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{initializer, body}}
	}
	return body, nil
}

func (p *Parser) ifStatement() (ast.Stmt, error) {
	if _, err := p.consume(lexer.LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}

	var elseBranch ast.Stmt
	if p.match(lexer.Else) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStmt{Condition: cond, Then: thenBranch, Else: elseBranch}, nil
}

func (p *Parser) printStatement() (ast.Stmt, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &ast.PrintStmt{Expression: value}, nil
}

func (p *Parser) returnStatement() (ast.Stmt, error) {
	keyword := p.previous()
	var value ast.Expr
	var err error
	if !p.check(lexer.Semicolon) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.Semicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Keyword: keyword, Value: value}, nil
}

func (p *Parser) whileStatement() (ast.Stmt, error) {
	if _, err := p.consume(lexer.LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Condition: cond, Body: body}, nil
}

func (p *Parser) block() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !p.check(lexer.RightBrace) && !p.atEnd() {
		decl, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, decl)
	}
	if _, err := p.consume(lexer.RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) expressionStatement() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ast.ExpressionStmt{Expression: expr}, nil
}

// --- expressions, lowest to highest precedence ---

func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(lexer.Equal) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Value: value}, nil
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}, nil
		default:
			return nil, p.errorAt(equals, "Invalid assignment target.")
		}
	}

	return expr, nil
}

func (p *Parser) or() (ast.Expr, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.Or) {
		op := p.previous()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = &ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) and() (ast.Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.And) {
		op := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expr, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.BangEqual, lexer.EqualEqual) {
		op := p.previous()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) comparison() (ast.Expr, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.Greater, lexer.GreaterEqual, lexer.Less, lexer.LessEqual) {
		op := p.previous()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) term() (ast.Expr, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.Minus, lexer.Plus) {
		op := p.previous()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) factor() (ast.Expr, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.Slash, lexer.Star) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expr, error) {
	if p.match(lexer.Bang, lexer.Minus) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Operator: op, Right: right}, nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.match(lexer.LeftParen):
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		case p.match(lexer.Dot):
			name, err := p.consume(lexer.Identifier, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = &ast.Get{Object: expr, Name: name}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	var args []ast.Expr
	if !p.check(lexer.RightParen) {
		for {
			if len(args) >= 255 {
				return nil, p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	paren, err := p.consume(lexer.RightParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return &ast.Call{Callee: callee, Paren: paren, Args: args}, nil
}

func (p *Parser) primary() (ast.Expr, error) {
	switch {
	case p.match(lexer.False):
		return &ast.Literal{Value: false, Ln: p.previous().Line}, nil
	case p.match(lexer.True):
		return &ast.Literal{Value: true, Ln: p.previous().Line}, nil
	case p.match(lexer.Nil):
		return &ast.Literal{Value: nil, Ln: p.previous().Line}, nil
	case p.match(lexer.Number):
		tok := p.previous()
		return &ast.Literal{Value: parseNumberLiteral(tok.Literal), Ln: tok.Line}, nil
	case p.match(lexer.String):
		tok := p.previous()
		return &ast.Literal{Value: tok.Literal, Ln: tok.Line}, nil
	case p.match(lexer.Super):
		keyword := p.previous()
		if _, err := p.consume(lexer.Dot, "Expect '.' after 'super'."); err != nil {
			return nil, err
		}
		method, err := p.consume(lexer.Identifier, "Expect superclass method name.")
		if err != nil {
			return nil, err
		}
		return &ast.Super{Keyword: keyword, Method: method}, nil
	case p.match(lexer.This):
		return &ast.This{Keyword: p.previous()}, nil
	case p.match(lexer.Identifier):
		return &ast.Variable{Name: p.previous()}, nil
	case p.match(lexer.LeftParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &ast.Grouping{Expression: expr, Ln: expr.Line()}, nil
	default:
		return nil, p.errorAt(p.peek(), "Expect expression.")
	}
}

// --- token cursor helpers ---

func (p *Parser) match(kinds ...lexer.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(k lexer.Kind) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Kind == k
}

func (p *Parser) advance() lexer.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) atEnd() bool { return p.peek().Kind == lexer.EOF }

func (p *Parser) peek() lexer.Token { return p.tokens[p.current] }

func (p *Parser) previous() lexer.Token { return p.tokens[p.current-1] }

func (p *Parser) consume(k lexer.Kind, message string) (lexer.Token, error) {
	if p.check(k) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.errorAt(p.peek(), message)
}

func (p *Parser) errorAt(tok lexer.Token, message string) error {
	where := tok.Lexeme
	if tok.Kind == lexer.EOF {
		where = "end"
	}
	return errors.Syntax(tok.Line, "Error at %s: %s", where, message)
}

// parseNumberLiteral recovers the float64 value of a Number token from its
// decoded decimal text (the lexer already validated the grammar, so the
// parse cannot fail).
func parseNumberLiteral(literal string) float64 {
	v, _ := strconv.ParseFloat(literal, 64)
	return v
}
