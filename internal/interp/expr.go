package interp

import (
	"github.com/birchlang/birch/internal/ast"
	"github.com/birchlang/birch/internal/errors"
)

func (in *Interpreter) eval(env *Environment, expr ast.Expr) (any, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.Grouping:
		return in.eval(env, e.Expression)

	case *ast.Unary:
		right, err := in.eval(env, e.Right)
		if err != nil {
			return nil, err
		}
		switch e.Operator.Lexeme {
		case "!":
			return !truthy(right), nil
		case "-":
			n, ok := right.(float64)
			if !ok {
				return nil, errors.RuntimeErr(e.Operator.Line, "Operand must be a number.")
			}
			return -n, nil
		}
		return nil, errors.RuntimeErr(e.Operator.Line, "Unknown unary operator %q.", e.Operator.Lexeme)

	case *ast.Binary:
		return in.evalBinary(env, e)

	case *ast.Logical:
		left, err := in.eval(env, e.Left)
		if err != nil {
			return nil, err
		}
		if e.Operator.Lexeme == "or" {
			if truthy(left) {
				return left, nil
			}
		} else { // "and"
			if !truthy(left) {
				return left, nil
			}
		}
		return in.eval(env, e.Right)

	case *ast.Variable:
		v, ok := env.Get(e.Name.Lexeme)
		if !ok {
			return nil, errors.RuntimeErr(e.Name.Line, "Undefined variable '%s'.", e.Name.Lexeme)
		}
		return v, nil

	case *ast.Assign:
		v, err := in.eval(env, e.Value)
		if err != nil {
			return nil, err
		}
		if !env.Assign(e.Name.Lexeme, v) {
			return nil, errors.RuntimeErr(e.Name.Line, "Undefined variable '%s'.", e.Name.Lexeme)
		}
		return v, nil

	case *ast.Call:
		return in.evalCall(env, e)

	case *ast.Get:
		obj, err := in.eval(env, e.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*Instance)
		if !ok {
			return nil, errors.RuntimeErr(e.Name.Line, "Only instances have properties.")
		}
		if v, ok := instance.Fields[e.Name.Lexeme]; ok {
			return v, nil
		}
		if fn, ok := instance.bound[e.Name.Lexeme]; ok {
			return fn, nil
		}
		return nil, errors.RuntimeErr(e.Name.Line, "Undefined property '%s'.", e.Name.Lexeme)

	case *ast.Set:
		obj, err := in.eval(env, e.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*Instance)
		if !ok {
			return nil, errors.RuntimeErr(e.Name.Line, "Only instances have fields.")
		}
		v, err := in.eval(env, e.Value)
		if err != nil {
			return nil, err
		}
		instance.Fields[e.Name.Lexeme] = v
		return v, nil

	case *ast.This:
		c, _ := env.GetCell("this")
		return c.value, nil

	case *ast.Super:
		c, _ := env.GetCell("super")
		sb := c.value.(*superBinding)
		tmpl, ok := sb.superclass.FindMethod(e.Method.Lexeme)
		if !ok {
			return nil, errors.RuntimeErr(e.Method.Line, "Undefined property '%s'.", e.Method.Lexeme)
		}
		return bindMethod(tmpl, sb.instance), nil

	default:
		return nil, errors.RuntimeErr(expr.Line(), "Unknown expression node %T.", expr)
	}
}

func (in *Interpreter) evalBinary(env *Environment, e *ast.Binary) (any, error) {
	left, err := in.eval(env, e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(env, e.Right)
	if err != nil {
		return nil, err
	}
	line := e.Operator.Line

	switch e.Operator.Lexeme {
	case "==":
		return equal(left, right), nil
	case "!=":
		return !equal(left, right), nil
	case "+":
		if ln, ok := left.(float64); ok {
			if rn, ok := right.(float64); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, errors.RuntimeErr(line, "Operands must be two numbers or two strings.")
	case "-", "*", "/", "<", "<=", ">", ">=":
		ln, lok := left.(float64)
		rn, rok := right.(float64)
		if !lok || !rok {
			return nil, errors.RuntimeErr(line, "Operands must be two numbers.")
		}
		switch e.Operator.Lexeme {
		case "-":
			return ln - rn, nil
		case "*":
			return ln * rn, nil
		case "/":
			return ln / rn, nil
		case "<":
			return ln < rn, nil
		case "<=":
			return ln <= rn, nil
		case ">":
			return ln > rn, nil
		case ">=":
			return ln >= rn, nil
		}
	}
	return nil, errors.RuntimeErr(line, "Unknown binary operator %q.", e.Operator.Lexeme)
}

func (in *Interpreter) evalCall(env *Environment, e *ast.Call) (any, error) {
	callee, err := in.eval(env, e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]any, len(e.Args))
	for i, a := range e.Args {
		v, err := in.eval(env, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	switch fn := callee.(type) {
	case *Function:
		if len(args) != fn.arity() {
			return nil, errors.RuntimeErr(e.Paren.Line, "Expected %d arguments but got %d.", fn.arity(), len(args))
		}
		return in.callFunction(fn, args)
	case *NativeFunction:
		if len(args) != fn.Arity {
			return nil, errors.RuntimeErr(e.Paren.Line, "Expected %d arguments but got %d.", fn.Arity, len(args))
		}
		return fn.Fn(args)
	case *Class:
		return in.instantiate(fn, args, e.Paren.Line)
	default:
		return nil, errors.RuntimeErr(e.Paren.Line, "Can only call functions and classes.")
	}
}

func (in *Interpreter) callFunction(fn *Function, args []any) (any, error) {
	frame := NewEnvironment(in.global)
	for name, c := range fn.Captured {
		frame.DefineCell(name, c)
	}
	for i, p := range fn.Params {
		frame.Define(p, args[i])
	}

	out, err := in.execBlock(fn.Body, frame)
	if err != nil {
		return nil, err
	}

	if fn.IsInitializer {
		if c, ok := fn.Captured["this"]; ok {
			return c.value, nil
		}
	}
	if out.returning {
		return out.value, nil
	}
	return nil, nil
}
