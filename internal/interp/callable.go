package interp

// Callable is any value that can be invoked: a user function, a bound
// method, a class (as its own constructor), or a native builtin.
//
// Arity returns the required argument count, or -1 for a variadic
// callable (the evaluator then skips the arity check entirely, per spec
// §4.7).
type Callable interface {
	Value
	Arity() int
	Call(i *Interpreter, arguments []Value) (Value, error)
}

// NativeFunction wraps a Go function as a Callable, for the four
// builtins wired in builtins.go.
type NativeFunction struct {
	Name   string
	Arity_ int
	Impl   func(i *Interpreter, arguments []Value) (Value, error)
}

func (n *NativeFunction) Type() string   { return "NATIVE_FUNCTION" }
func (n *NativeFunction) String() string { return "<native fn " + n.Name + ">" }
func (n *NativeFunction) Arity() int     { return n.Arity_ }
func (n *NativeFunction) Call(i *Interpreter, arguments []Value) (Value, error) {
	return n.Impl(i, arguments)
}
