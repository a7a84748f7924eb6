package interp

// Environment is one frame of the evaluator's scope chain: a map of names
// to cells, plus an outer link. A block pushes an Environment chained to
// its enclosing one; a function call pushes one chained directly to the
// global environment instead, regardless of where the function was
// lexically declared — everything that call needs from outside its own
// frame must already be in Captured.
type Environment struct {
	vars  map[string]*cell
	outer *Environment
}

// NewEnvironment creates an Environment chained to outer (nil for the
// global environment).
func NewEnvironment(outer *Environment) *Environment {
	return &Environment{vars: make(map[string]*cell), outer: outer}
}

// Define binds name to a fresh cell holding value in this frame, shadowing
// any binding of the same name further out.
func (e *Environment) Define(name string, value any) {
	e.vars[name] = &cell{value: value}
}

// DefineCell binds name directly to c, so this frame shares storage with
// whoever else holds c — the mechanism captured-bindings build on.
func (e *Environment) DefineCell(name string, c *cell) {
	e.vars[name] = c
}

// Get reads name, walking outward through the chain.
func (e *Environment) Get(name string) (any, bool) {
	if c, ok := e.GetCell(name); ok {
		return c.value, true
	}
	return nil, false
}

// GetCell returns the cell bound to name, walking outward through the
// chain.
func (e *Environment) GetCell(name string) (*cell, bool) {
	for env := e; env != nil; env = env.outer {
		if c, ok := env.vars[name]; ok {
			return c, true
		}
	}
	return nil, false
}

// Assign overwrites the value in the cell bound to name, walking outward
// through the chain, and reports whether such a binding existed.
func (e *Environment) Assign(name string, value any) bool {
	c, ok := e.GetCell(name)
	if !ok {
		return false
	}
	c.value = value
	return true
}
