package interp

import "time"

// defineNatives installs the interpreter's one built-in, clock, into the
// global environment before any user code runs.
func (in *Interpreter) defineNatives() {
	in.global.Define("clock", &NativeFunction{
		Name:  "clock",
		Arity: 0,
		Fn: func(args []any) (any, error) {
			return float64(time.Now().UnixNano()) / 1e9, nil
		},
	})
}
