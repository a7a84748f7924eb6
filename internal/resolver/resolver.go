// Package resolver implements the static pass between parsing and
// evaluation: it enforces the language's scope rules and, for every
// function and method declaration, computes the set of free variable names
// its body needs pulled in from an enclosing non-global scope outside its own
// call frame — the evaluator has nothing left to check once this pass
// succeeds.
package resolver

import (
	"github.com/birchlang/birch/internal/ast"
	"github.com/birchlang/birch/internal/errors"
	"github.com/birchlang/birch/internal/lexer"
)

// functionKind distinguishes the four contexts return/this/super rules
// depend on.
type functionKind int

const (
	kindNone functionKind = iota
	kindFunction
	kindMethod
	kindInitializer
)

// classKind distinguishes whether the innermost enclosing class has a
// superclass, which governs whether `super` is legal.
type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// scope is one lexical block: the names declared directly in it (false =
// declared but its initializer hasn't finished resolving yet, true =
// fully defined), and the function-nesting depth active when it was
// pushed — 0 means no function call encloses it.
type scope struct {
	vars  map[string]bool
	depth int
}

// functionCtx tracks one active function/method resolution: its kind (for
// return-statement legality), whether it owns a this/super binding
// (injected directly by the evaluator rather than declared by a var
// statement), and the free names its body needs relayed in from further
// out.
type functionCtx struct {
	kind     functionKind
	hasThis  bool
	hasSuper bool
	captures map[string]bool
	order    []string
}

func (fc *functionCtx) addCapture(name string) {
	if fc.captures[name] {
		return
	}
	fc.captures[name] = true
	fc.order = append(fc.order, name)
}

// Resolver walks a parsed Program once, mutating FunctionStmt.Captures in
// place and reporting the first scope-rule violation it finds.
type Resolver struct {
	scopes    []*scope
	functions []*functionCtx
	classes   []classKind
}

// New creates a Resolver.
func New() *Resolver {
	return &Resolver{}
}

// Resolve walks every top-level statement of program. The first violation
// found is returned immediately; nothing past it is checked.
func Resolve(program *ast.Program) error {
	r := New()
	for _, stmt := range program.Statements {
		if err := r.resolveStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) currentDepth() int { return len(r.functions) }

func (r *Resolver) currentFunctionKind() functionKind {
	if len(r.functions) == 0 {
		return kindNone
	}
	return r.functions[len(r.functions)-1].kind
}

func (r *Resolver) currentClassKind() classKind {
	if len(r.classes) == 0 {
		return classNone
	}
	return r.classes[len(r.classes)-1]
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, &scope{vars: map[string]bool{}, depth: r.currentDepth()})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name lexer.Token) error {
	if len(r.scopes) == 0 {
		return nil // global scope: redeclaration is allowed
	}
	top := r.scopes[len(r.scopes)-1]
	if _, exists := top.vars[name.Lexeme]; exists {
		return r.errorAt(name, "Already a variable with this name in this scope.")
	}
	top.vars[name.Lexeme] = false
	return nil
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1].vars[name] = true
}

// bubbleCapture adds name to the capture list of every function strictly
// between the scope that owns it (ownerDepth) and the point of use (cur),
// relaying it one call-frame boundary at a time.
func (r *Resolver) bubbleCapture(name string, ownerDepth, cur int) {
	for d := ownerDepth + 1; d <= cur; d++ {
		r.functions[d-1].addCapture(name)
	}
}

// resolveNameUse finds the scope that owns name and, if it sits in a
// different function call than the point of use, relays it inward. A name
// never declared in any pushed scope is assumed global and needs no
// relaying — it is reachable through the evaluator's global environment
// regardless of call-frame boundaries; if it turns out not to exist at all,
// that surfaces as a runtime error, not here.
func (r *Resolver) resolveNameUse(name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		s := r.scopes[i]
		if _, ok := s.vars[name]; ok {
			r.bubbleCapture(name, s.depth, r.currentDepth())
			return
		}
	}
}

// resolveThisOrSuper relays a this/super reference the same way
// resolveNameUse relays an ordinary variable, except the owning "scope" is
// the nearest enclosing method rather than a pushed block.
func (r *Resolver) resolveThisOrSuper(name string) bool {
	for i := len(r.functions) - 1; i >= 0; i-- {
		fc := r.functions[i]
		if (name == "this" && fc.hasThis) || (name == "super" && fc.hasSuper) {
			r.bubbleCapture(name, i+1, r.currentDepth())
			return true
		}
	}
	return false
}

// --- statements ---

func (r *Resolver) resolveStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		return r.resolveExpr(s.Expression)
	case *ast.PrintStmt:
		return r.resolveExpr(s.Expression)
	case *ast.VarStmt:
		return r.resolveVarStmt(s)
	case *ast.BlockStmt:
		r.beginScope()
		for _, inner := range s.Statements {
			if err := r.resolveStmt(inner); err != nil {
				return err
			}
		}
		r.endScope()
		return nil
	case *ast.IfStmt:
		if err := r.resolveExpr(s.Condition); err != nil {
			return err
		}
		if err := r.resolveStmt(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			return r.resolveStmt(s.Else)
		}
		return nil
	case *ast.WhileStmt:
		if err := r.resolveExpr(s.Condition); err != nil {
			return err
		}
		return r.resolveStmt(s.Body)
	case *ast.ReturnStmt:
		return r.resolveReturnStmt(s)
	case *ast.FunctionStmt:
		if err := r.declare(s.Name); err != nil {
			return err
		}
		r.define(s.Name.Lexeme) // defined before the body resolves: recursion is legal
		return r.resolveFunctionBody(s, kindFunction, false, false)
	case *ast.ClassStmt:
		return r.resolveClassStmt(s)
	default:
		return nil
	}
}

func (r *Resolver) resolveVarStmt(s *ast.VarStmt) error {
	if err := r.declare(s.Name); err != nil {
		return err
	}
	if err := r.resolveExpr(s.Initializer); err != nil {
		return err
	}
	r.define(s.Name.Lexeme)
	return nil
}

func (r *Resolver) resolveReturnStmt(s *ast.ReturnStmt) error {
	switch r.currentFunctionKind() {
	case kindNone:
		return r.errorAt(s.Keyword, "Can't return from top-level code.")
	case kindInitializer:
		if s.Value != nil {
			return r.errorAt(s.Keyword, "Can't return a value from an initializer.")
		}
	}
	if s.Value != nil {
		return r.resolveExpr(s.Value)
	}
	return nil
}

func (r *Resolver) resolveFunctionBody(fn *ast.FunctionStmt, kind functionKind, hasThis, hasSuper bool) error {
	fc := &functionCtx{kind: kind, hasThis: hasThis, hasSuper: hasSuper, captures: map[string]bool{}}
	r.functions = append(r.functions, fc)
	r.beginScope()

	for _, param := range fn.Params {
		if err := r.declare(param); err != nil {
			return err
		}
		r.define(param.Lexeme)
	}
	for _, inner := range fn.Body {
		if err := r.resolveStmt(inner); err != nil {
			return err
		}
	}

	r.endScope()
	r.functions = r.functions[:len(r.functions)-1]
	fn.Captures = fc.order
	return nil
}

func (r *Resolver) resolveClassStmt(s *ast.ClassStmt) error {
	if err := r.declare(s.Name); err != nil {
		return err
	}
	r.define(s.Name.Lexeme)

	kind := classClass
	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			return r.errorAt(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.resolveNameUse(s.Superclass.Name.Lexeme)
		kind = classSubclass
	}

	r.classes = append(r.classes, kind)
	for _, method := range s.Methods {
		methodKind := kindMethod
		if method.Name.Lexeme == "init" {
			methodKind = kindInitializer
		}
		if err := r.resolveFunctionBody(method, methodKind, true, kind == classSubclass); err != nil {
			return err
		}
	}
	r.classes = r.classes[:len(r.classes)-1]
	return nil
}

// --- expressions ---

func (r *Resolver) resolveExpr(expr ast.Expr) error {
	switch e := expr.(type) {
	case nil:
		return nil
	case *ast.Literal:
		return nil
	case *ast.Grouping:
		return r.resolveExpr(e.Expression)
	case *ast.Unary:
		return r.resolveExpr(e.Right)
	case *ast.Binary:
		if err := r.resolveExpr(e.Left); err != nil {
			return err
		}
		return r.resolveExpr(e.Right)
	case *ast.Logical:
		if err := r.resolveExpr(e.Left); err != nil {
			return err
		}
		return r.resolveExpr(e.Right)
	case *ast.Variable:
		return r.resolveVariableExpr(e)
	case *ast.Assign:
		if err := r.resolveExpr(e.Value); err != nil {
			return err
		}
		r.resolveNameUse(e.Name.Lexeme)
		return nil
	case *ast.Call:
		if err := r.resolveExpr(e.Callee); err != nil {
			return err
		}
		for _, arg := range e.Args {
			if err := r.resolveExpr(arg); err != nil {
				return err
			}
		}
		return nil
	case *ast.Get:
		return r.resolveExpr(e.Object)
	case *ast.Set:
		if err := r.resolveExpr(e.Value); err != nil {
			return err
		}
		return r.resolveExpr(e.Object)
	case *ast.This:
		if r.currentClassKind() == classNone {
			return r.errorAt(e.Keyword, "Can't use 'this' outside of a class.")
		}
		r.resolveThisOrSuper("this")
		return nil
	case *ast.Super:
		switch r.currentClassKind() {
		case classNone:
			return r.errorAt(e.Keyword, "Can't use 'super' outside of a class.")
		case classClass:
			return r.errorAt(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveThisOrSuper("super")
		return nil
	default:
		return nil
	}
}

func (r *Resolver) resolveVariableExpr(v *ast.Variable) error {
	if len(r.scopes) > 0 {
		top := r.scopes[len(r.scopes)-1]
		if defined, ok := top.vars[v.Name.Lexeme]; ok && !defined {
			return r.errorAt(v.Name, "Can't read local variable in its own initializer.")
		}
	}
	r.resolveNameUse(v.Name.Lexeme)
	return nil
}

func (r *Resolver) errorAt(tok lexer.Token, message string) error {
	return errors.Syntax(tok.Line, "Error at %s: %s", tok.Lexeme, message)
}
