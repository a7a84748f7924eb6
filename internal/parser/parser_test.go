package parser

import (
	"testing"

	"github.com/birchlang/birch/internal/ast"
	"github.com/birchlang/birch/internal/lexer"
)

func scan(t *testing.T, source string) []lexer.Token {
	t.Helper()
	tokens, hadError := lexer.New(source).ScanTokens()
	if hadError {
		t.Fatalf("unexpected lexical error scanning %q", source)
	}
	return tokens
}

func parseExpr(t *testing.T, source string) ast.Expr {
	t.Helper()
	expr, err := New(scan(t, source)).ParseExpression()
	if err != nil {
		t.Fatalf("ParseExpression(%q) returned error: %v", source, err)
	}
	return expr
}

func TestParseExpressionPrecedence(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"(1 + 2) * 3", "(* (group (+ 1 2)) 3)"},
		{"-1 + 2", "(+ (- 1) 2)"},
		{"1 < 2 == 3 < 4", "(== (< 1 2) (< 3 4))"},
		{"!true", "(! true)"},
		{"a and b or c", "(or (and a b) c)"},
	}
	for _, tt := range tests {
		got := ast.Print(parseExpr(t, tt.source))
		if got != tt.want {
			t.Errorf("Print(parse(%q)) = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestParseAssignmentTargets(t *testing.T) {
	expr := parseExpr(t, "a = 1")
	assign, ok := expr.(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign, got %T", expr)
	}
	if assign.Name.Lexeme != "a" {
		t.Errorf("assign target = %q, want a", assign.Name.Lexeme)
	}

	expr = parseExpr(t, "obj.field = 1")
	set, ok := expr.(*ast.Set)
	if !ok {
		t.Fatalf("expected *ast.Set, got %T", expr)
	}
	if set.Name.Lexeme != "field" {
		t.Errorf("set target = %q, want field", set.Name.Lexeme)
	}
}

func TestParseInvalidAssignmentTargetIsSyntaxError(t *testing.T) {
	_, err := New(scan(t, "1 + 2 = 3")).ParseExpression()
	if err == nil {
		t.Fatal("expected a syntax error for an invalid assignment target")
	}
}

func TestParseCallChainsAndPropertyAccess(t *testing.T) {
	got := ast.Print(parseExpr(t, "a.b(c).d"))
	want := "(. d (call (. b a) c))"
	if got != want {
		t.Errorf("Print = %q, want %q", got, want)
	}
}

func TestParseProgramStatementKinds(t *testing.T) {
	source := `
	var x = 1;
	print x;
	{ var y = 2; }
	if (x) print "yes"; else print "no";
	while (x) x = x - 1;
	for (var i = 0; i < 3; i = i + 1) print i;
	fun f(a, b) { return a + b; }
	class Foo < Bar { greet() { print "hi"; } }
	`
	program, err := New(scan(t, source)).ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}

	if len(program.Statements) != 8 {
		t.Fatalf("got %d top-level statements, want 8", len(program.Statements))
	}

	if _, ok := program.Statements[0].(*ast.VarStmt); !ok {
		t.Errorf("statement 0 = %T, want *ast.VarStmt", program.Statements[0])
	}
	if _, ok := program.Statements[1].(*ast.PrintStmt); !ok {
		t.Errorf("statement 1 = %T, want *ast.PrintStmt", program.Statements[1])
	}
	if _, ok := program.Statements[2].(*ast.BlockStmt); !ok {
		t.Errorf("statement 2 = %T, want *ast.BlockStmt", program.Statements[2])
	}
	ifStmt, ok := program.Statements[3].(*ast.IfStmt)
	if !ok {
		t.Fatalf("statement 3 = %T, want *ast.IfStmt", program.Statements[3])
	}
	if ifStmt.Else == nil {
		t.Error("expected else branch to be parsed")
	}
	if _, ok := program.Statements[4].(*ast.WhileStmt); !ok {
		t.Errorf("statement 4 = %T, want *ast.WhileStmt", program.Statements[4])
	}
	// The desugared for-loop becomes a BlockStmt wrapping the initializer and
	// a WhileStmt, never a dedicated for-loop node.
	forBlock, ok := program.Statements[5].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("statement 5 = %T, want *ast.BlockStmt (desugared for)", program.Statements[5])
	}
	if len(forBlock.Statements) != 2 {
		t.Fatalf("desugared for-loop block has %d statements, want 2", len(forBlock.Statements))
	}
	if _, ok := forBlock.Statements[1].(*ast.WhileStmt); !ok {
		t.Errorf("desugared for-loop body = %T, want *ast.WhileStmt", forBlock.Statements[1])
	}
	fn, ok := program.Statements[6].(*ast.FunctionStmt)
	if !ok {
		t.Fatalf("statement 6 = %T, want *ast.FunctionStmt", program.Statements[6])
	}
	if len(fn.Params) != 2 {
		t.Errorf("fn params = %d, want 2", len(fn.Params))
	}
	class, ok := program.Statements[7].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("statement 7 = %T, want *ast.ClassStmt", program.Statements[7])
	}
	if class.Superclass == nil || class.Superclass.Name.Lexeme != "Bar" {
		t.Error("expected superclass Bar to be parsed")
	}
	if len(class.Methods) != 1 || class.Methods[0].Name.Lexeme != "greet" {
		t.Error("expected one method named greet")
	}
}

func TestParseMissingSemicolonIsFatalSyntaxError(t *testing.T) {
	_, err := New(scan(t, "var x = 1")).ParseProgram()
	if err == nil {
		t.Fatal("expected a syntax error for a missing ';'")
	}
}

func TestParseStopsAtFirstError(t *testing.T) {
	// The missing ';' after the first declaration is fatal: there is no
	// panic-mode recovery that would go on to parse `var y = 2;`.
	_, err := New(scan(t, "var x = 1 var y = 2;")).ParseProgram()
	if err == nil {
		t.Fatal("expected a syntax error")
	}
}

func TestParseSuperMustBeFollowedByDot(t *testing.T) {
	source := `class A { f() { return super; } }`
	_, err := New(scan(t, source)).ParseProgram()
	if err == nil {
		t.Fatal("expected a syntax error for bare 'super' without '.'")
	}
}
