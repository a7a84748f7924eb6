package interp

import "github.com/birchlang/birch/internal/errors"

// instantiate allocates a new Instance of class, eagerly binds every method
// in its inheritance chain (most-derived first) to it, and runs its
// constructor if one exists — returning the instance regardless of what
// the constructor itself returns.
func (in *Interpreter) instantiate(class *Class, args []any, line int) (*Instance, error) {
	arity := class.initializerArity()
	if len(args) != arity {
		return nil, errors.RuntimeErr(line, "Expected %d arguments but got %d.", arity, len(args))
	}

	instance := &Instance{Class: class, Fields: map[string]any{}, bound: map[string]*Function{}}
	for cls := class; cls != nil; cls = cls.Superclass {
		for name, tmpl := range cls.Methods {
			if _, exists := instance.bound[name]; exists {
				continue // a more-derived override already claimed this name
			}
			instance.bound[name] = bindMethod(tmpl, instance)
		}
	}

	if initFn, ok := instance.bound["init"]; ok {
		if _, err := in.callFunction(initFn, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// bindMethod builds the Function value for tmpl bound to instance: `this`
// is always captured, `super` whenever the owning class has one, and any
// other free name the method body needs relayed in from its declaring
// environment.
func bindMethod(tmpl *methodTemplate, instance *Instance) *Function {
	captured := map[string]*cell{"this": {value: instance}}
	if tmpl.ownerClass.Superclass != nil {
		captured["super"] = &cell{value: &superBinding{superclass: tmpl.ownerClass.Superclass, instance: instance}}
	}
	for _, name := range tmpl.decl.Captures {
		if name == "this" || name == "super" {
			continue
		}
		if c, ok := tmpl.env.GetCell(name); ok {
			captured[name] = c
		}
	}

	return &Function{
		Name:          tmpl.decl.Name.Lexeme,
		Params:        paramNames(tmpl.decl.Params),
		Body:          tmpl.decl.Body,
		Captured:      captured,
		IsInitializer: tmpl.decl.Name.Lexeme == "init",
	}
}
