// Package interp is the tree-walking evaluator: a runtime value model, a
// chained environment of shared mutable cells, and the statement/expression
// walk that drives both.
package interp

import (
	"fmt"
	"strconv"

	"github.com/birchlang/birch/internal/ast"
)

// Value is any of Nil (Go nil), bool, float64, string, *Function,
// *NativeFunction, *Class, or *Instance. There is no dedicated Value
// interface: Go's any, combined with a type switch at the few places that
// care (stringify, truthy, equal, the Call dispatch), is enough — adding one
// would just be a second name for interface{}.

// cell is the single-slot mutable storage location shared by every holder
// of a binding: the declaring scope, and every closure that captured it.
type cell struct {
	value any
}

// Function is a user-defined function or bound method: its parameter
// names, its body, and the cells it captured from outside its own call
// frame at the moment it was declared (or, for a method, at the moment it
// was bound to an instance).
type Function struct {
	Name          string
	Params        []string
	Body          []ast.Stmt
	Captured      map[string]*cell
	IsInitializer bool
}

func (f *Function) arity() int { return len(f.Params) }

// NativeFunction is a built-in callable implemented in Go rather than
// parsed source, such as clock.
type NativeFunction struct {
	Name  string
	Arity int
	Fn    func(args []any) (any, error)
}

// Class is a class value: its own method table plus an optional
// superclass. FindMethod walks the inheritance chain.
type Class struct {
	Name       string
	Methods    map[string]*methodTemplate
	Superclass *Class
}

// FindMethod looks up name in c's own method table, falling back to the
// superclass chain.
func (c *Class) FindMethod(name string) (*methodTemplate, bool) {
	if tmpl, ok := c.Methods[name]; ok {
		return tmpl, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

func (c *Class) initializerArity() int {
	if tmpl, ok := c.FindMethod("init"); ok {
		return len(tmpl.decl.Params)
	}
	return 0
}

// methodTemplate is an unbound method: the AST node, the environment the
// class declaration executed in (for any outer free variable the method
// captures besides this/super), and the class it was declared on (so
// `super` resolves against that class's own superclass, not the runtime
// class of whatever instance the method ends up bound to).
type methodTemplate struct {
	decl       *ast.FunctionStmt
	env        *Environment
	ownerClass *Class
}

// Instance is a live object: its class, its mutable field table, and every
// method (own and inherited) eagerly bound to this instance at
// construction time.
type Instance struct {
	Class  *Class
	Fields map[string]any
	bound  map[string]*Function
}

// superBinding is the value captured under the name "super" in a method
// that uses it: the superclass of the class the method is lexically
// defined on, plus the instance the method was bound to.
type superBinding struct {
	superclass *Class
	instance   *Instance
}

// stringify renders v the way `print` and the `evaluate` CLI command do.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(val)
	case string:
		return val
	case *Function:
		return "<fn " + val.Name + ">"
	case *NativeFunction:
		return "<fn " + val.Name + ">"
	case *Class:
		return val.Name
	case *Instance:
		return val.Class.Name + " instance"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// formatNumber renders the shortest round-tripping decimal, with no forced
// trailing ".0": integral values print as "3", not "3.0".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// equal implements `==`: structural for Bool/Number/String, identity for
// Function/Class/Instance, and always false across differing types.
func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case *Function:
		bv, ok := b.(*Function)
		return ok && av == bv
	case *NativeFunction:
		bv, ok := b.(*NativeFunction)
		return ok && av == bv
	case *Class:
		bv, ok := b.(*Class)
		return ok && av == bv
	case *Instance:
		bv, ok := b.(*Instance)
		return ok && av == bv
	default:
		return false
	}
}
