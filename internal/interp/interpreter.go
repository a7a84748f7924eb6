package interp

import (
	"fmt"
	"io"

	"github.com/birchlang/birch/internal/ast"
	"github.com/birchlang/birch/internal/errors"
	"github.com/birchlang/birch/internal/lexer"
)

// outcome is the result of executing a statement: either it ran to
// completion (the zero value) or it hit a return, carrying the value to
// unwind with up to the enclosing function call.
type outcome struct {
	returning bool
	value     any
}

var normal = outcome{}

func returning(v any) outcome { return outcome{returning: true, value: v} }

// Interpreter walks a resolved Program against a global environment,
// writing `print` output to Stdout.
type Interpreter struct {
	global *Environment
	Stdout io.Writer
}

// New creates an Interpreter with the built-in globals installed and
// Stdout defaulted to w.
func New(w io.Writer) *Interpreter {
	interp := &Interpreter{global: NewEnvironment(nil), Stdout: w}
	interp.defineNatives()
	return interp
}

// Run executes every top-level statement of program in order, stopping at
// the first runtime error.
func (in *Interpreter) Run(program *ast.Program) error {
	for _, stmt := range program.Statements {
		if _, err := in.execStmt(in.global, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Eval evaluates a single expression against the global environment, the
// mode the `evaluate` CLI command uses.
func (in *Interpreter) Eval(expr ast.Expr) (any, error) {
	return in.eval(in.global, expr)
}

// Stringify renders a value the way `print` and `evaluate` do.
func Stringify(v any) string { return stringify(v) }

// --- statement execution ---

func (in *Interpreter) execBlock(stmts []ast.Stmt, env *Environment) (outcome, error) {
	for _, stmt := range stmts {
		out, err := in.execStmt(env, stmt)
		if err != nil {
			return outcome{}, err
		}
		if out.returning {
			return out, nil
		}
	}
	return normal, nil
}

func (in *Interpreter) execStmt(env *Environment, stmt ast.Stmt) (outcome, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := in.eval(env, s.Expression)
		return normal, err

	case *ast.PrintStmt:
		v, err := in.eval(env, s.Expression)
		if err != nil {
			return outcome{}, err
		}
		fmt.Fprintln(in.Stdout, stringify(v))
		return normal, nil

	case *ast.VarStmt:
		v, err := in.eval(env, s.Initializer)
		if err != nil {
			return outcome{}, err
		}
		env.Define(s.Name.Lexeme, v)
		return normal, nil

	case *ast.BlockStmt:
		return in.execBlock(s.Statements, NewEnvironment(env))

	case *ast.IfStmt:
		cond, err := in.eval(env, s.Condition)
		if err != nil {
			return outcome{}, err
		}
		if truthy(cond) {
			return in.execStmt(env, s.Then)
		}
		if s.Else != nil {
			return in.execStmt(env, s.Else)
		}
		return normal, nil

	case *ast.WhileStmt:
		for {
			cond, err := in.eval(env, s.Condition)
			if err != nil {
				return outcome{}, err
			}
			if !truthy(cond) {
				return normal, nil
			}
			out, err := in.execStmt(env, s.Body)
			if err != nil {
				return outcome{}, err
			}
			if out.returning {
				return out, nil
			}
		}

	case *ast.ReturnStmt:
		var v any
		if s.Value != nil {
			var err error
			v, err = in.eval(env, s.Value)
			if err != nil {
				return outcome{}, err
			}
		}
		return returning(v), nil

	case *ast.FunctionStmt:
		in.declareFunction(env, s)
		return normal, nil

	case *ast.ClassStmt:
		return normal, in.execClassStmt(env, s)

	default:
		return normal, nil
	}
}

// declareFunction builds a Function value from a plain (non-method)
// declaration and binds it in env under its own name. The name is reserved
// before the captured-bindings are built so a function that recurses on
// its own name shares the very cell its call frame will later read back.
func (in *Interpreter) declareFunction(env *Environment, stmt *ast.FunctionStmt) {
	env.Define(stmt.Name.Lexeme, nil)
	ownCell, _ := env.GetCell(stmt.Name.Lexeme)

	captured := map[string]*cell{}
	for _, name := range stmt.Captures {
		if c, ok := env.GetCell(name); ok {
			captured[name] = c
		}
	}

	ownCell.value = &Function{
		Name:     stmt.Name.Lexeme,
		Params:   paramNames(stmt.Params),
		Body:     stmt.Body,
		Captured: captured,
	}
}

func (in *Interpreter) execClassStmt(env *Environment, stmt *ast.ClassStmt) error {
	var superclass *Class
	if stmt.Superclass != nil {
		v, err := in.eval(env, stmt.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return errors.RuntimeErr(stmt.Superclass.Name.Line, "Superclass must be a class.")
		}
		superclass = sc
	}

	env.Define(stmt.Name.Lexeme, nil)

	class := &Class{Name: stmt.Name.Lexeme, Superclass: superclass, Methods: map[string]*methodTemplate{}}
	for _, method := range stmt.Methods {
		class.Methods[method.Name.Lexeme] = &methodTemplate{decl: method, env: env, ownerClass: class}
	}

	classCell, _ := env.GetCell(stmt.Name.Lexeme)
	classCell.value = class
	return nil
}

func paramNames(tokens []lexer.Token) []string {
	names := make([]string, len(tokens))
	for i, t := range tokens {
		names[i] = t.Lexeme
	}
	return names
}
