package resolver

import (
	"testing"

	"github.com/birchlang/birch/internal/ast"
	"github.com/birchlang/birch/internal/lexer"
	"github.com/birchlang/birch/internal/parser"
)

func mustParseProgram(t *testing.T, source string) *ast.Program {
	t.Helper()
	tokens, hadError := lexer.New(source).ScanTokens()
	if hadError {
		t.Fatalf("unexpected lexical error scanning %q", source)
	}
	program, err := parser.New(tokens).ParseProgram()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return program
}

func resolveSource(t *testing.T, source string) (*ast.Program, error) {
	t.Helper()
	program := mustParseProgram(t, source)
	return program, Resolve(program)
}

func TestResolveRedeclarationInSameScopeIsError(t *testing.T) {
	_, err := resolveSource(t, `{ var a = 1; var a = 2; }`)
	if err == nil {
		t.Fatal("expected redeclaration error")
	}
}

func TestResolveRedeclarationAtTopLevelIsAllowed(t *testing.T) {
	_, err := resolveSource(t, `var a = 1; var a = 2;`)
	if err != nil {
		t.Fatalf("top-level redeclaration should be legal, got %v", err)
	}
}

func TestResolveOwnInitializerIsError(t *testing.T) {
	_, err := resolveSource(t, `{ var x = x; }`)
	if err == nil {
		t.Fatal("expected own-initializer error")
	}
}

func TestResolveThisOutsideClassIsError(t *testing.T) {
	_, err := resolveSource(t, `print this;`)
	if err == nil {
		t.Fatal("expected error using 'this' outside a class")
	}
}

func TestResolveSuperOutsideClassIsError(t *testing.T) {
	_, err := resolveSource(t, `fun f() { return super.x; }`)
	if err == nil {
		t.Fatal("expected error using 'super' outside a class")
	}
}

func TestResolveSuperWithNoSuperclassIsError(t *testing.T) {
	_, err := resolveSource(t, `class A { f() { return super.f(); } }`)
	if err == nil {
		t.Fatal("expected error using 'super' in a class with no superclass")
	}
}

func TestResolveSuperWithSuperclassIsAllowed(t *testing.T) {
	_, err := resolveSource(t, `class A {} class B < A { f() { return super.f(); } }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResolveReturnAtTopLevelIsError(t *testing.T) {
	_, err := resolveSource(t, `return 1;`)
	if err == nil {
		t.Fatal("expected error returning from top-level code")
	}
}

func TestResolveReturnValueFromInitializerIsError(t *testing.T) {
	_, err := resolveSource(t, `class A { init() { return 1; } }`)
	if err == nil {
		t.Fatal("expected error returning a value from an initializer")
	}
}

func TestResolveBareReturnFromInitializerIsAllowed(t *testing.T) {
	_, err := resolveSource(t, `class A { init() { return; } }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResolveClassCannotInheritFromItself(t *testing.T) {
	_, err := resolveSource(t, `class A < A {}`)
	if err == nil {
		t.Fatal("expected error inheriting from itself")
	}
}

func TestResolveCapturesSimpleClosure(t *testing.T) {
	program, err := resolveSource(t, `
	var x = 1;
	fun f() { print x; }
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// x is declared at the true top level (never inside a pushed scope), so
	// it needs no capture: it's reachable via the global environment.
	fn := program.Statements[1].(*ast.FunctionStmt)
	if len(fn.Captures) != 0 {
		t.Errorf("Captures = %v, want empty (global reference)", fn.Captures)
	}
}

func TestResolveCapturesBlockScopedVariable(t *testing.T) {
	program, err := resolveSource(t, `
	{
		var x = 1;
		fun f() { print x; }
		f();
	}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	block := program.Statements[0].(*ast.BlockStmt)
	fn := block.Statements[1].(*ast.FunctionStmt)
	if len(fn.Captures) != 1 || fn.Captures[0] != "x" {
		t.Errorf("Captures = %v, want [x]", fn.Captures)
	}
}

func TestResolveCapturesBubbleThroughNestedFunctions(t *testing.T) {
	program, err := resolveSource(t, `
	fun outer() {
		var x = 1;
		fun middle() {
			fun inner() {
				print x;
			}
			return inner;
		}
		return middle;
	}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outer := program.Statements[0].(*ast.FunctionStmt)
	middle := outer.Body[1].(*ast.FunctionStmt)
	if len(middle.Captures) != 1 || middle.Captures[0] != "x" {
		t.Errorf("middle.Captures = %v, want [x] (relayed, not referenced directly)", middle.Captures)
	}
	inner := middle.Body[0].(*ast.FunctionStmt)
	if len(inner.Captures) != 1 || inner.Captures[0] != "x" {
		t.Errorf("inner.Captures = %v, want [x]", inner.Captures)
	}
	// outer itself never needs to capture x: it owns the declaration.
	if len(outer.Captures) != 0 {
		t.Errorf("outer.Captures = %v, want empty", outer.Captures)
	}
}

func TestResolveMethodDoesNotCaptureThisDirectly(t *testing.T) {
	program, err := resolveSource(t, `
	class A {
		f() { print this; }
	}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	class := program.Statements[0].(*ast.ClassStmt)
	f := class.Methods[0]
	if len(f.Captures) != 0 {
		t.Errorf("Captures = %v, want empty: the evaluator binds 'this' unconditionally", f.Captures)
	}
}

func TestResolveNestedClosureInMethodCapturesThis(t *testing.T) {
	program, err := resolveSource(t, `
	class A {
		f() {
			fun g() { print this; }
			return g;
		}
	}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	class := program.Statements[0].(*ast.ClassStmt)
	f := class.Methods[0]
	g := f.Body[0].(*ast.FunctionStmt)
	if len(g.Captures) != 1 || g.Captures[0] != "this" {
		t.Errorf("g.Captures = %v, want [this]", g.Captures)
	}
}

func TestResolveParameterRedeclarationIsError(t *testing.T) {
	_, err := resolveSource(t, `fun f(a, a) { print a; }`)
	if err == nil {
		t.Fatal("expected error for duplicate parameter names")
	}
}
