package interp

import "github.com/cwbudde/go-lox/internal/ast"

// Function is a user-defined function or method value: the captured
// environment plus the declaration it closes over. Per spec §3
// "Environment", each Function holds a reference to the environment
// active at its definition site, which is what makes closures work.
type Function struct {
	declaration   *ast.Function
	closure       *Environment
	isInitializer bool
}

func NewFunction(declaration *ast.Function, closure *Environment, isInitializer bool) *Function {
	return &Function{declaration: declaration, closure: closure, isInitializer: isInitializer}
}

func (f *Function) Type() string   { return "FUNCTION" }
func (f *Function) String() string { return "<fn " + f.declaration.Name.Lexeme + ">" }
func (f *Function) Arity() int     { return len(f.declaration.Params) }

// Call binds parameters in a fresh frame chained to the closure and
// executes the body, per spec §4.5 "Function call" step 4. A Return
// unwind surfaces its value; falling off the end yields nil (or, for an
// initializer, always yields the bound `this`).
func (f *Function) Call(i *Interpreter, arguments []Value) (Value, error) {
	env := NewEnclosedEnvironment(f.closure)
	for idx, param := range f.declaration.Params {
		env.Define(param.Lexeme, arguments[idx])
	}

	err := i.executeBlock(f.declaration.Body.Statements, env)
	if f.isInitializer {
		if _, ok := err.(*returnSignal); err != nil && !ok {
			return nil, err
		}
		this, _ := f.closure.GetAt(0, "this")
		return this, nil
	}
	if ret, ok := err.(*returnSignal); ok {
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}
	return Nil, nil
}

// Bind produces a new Function whose closure is a fresh environment with
// `this` pre-bound, chained to the method's defining closure, per spec
// §4.5 "Method binding". Re-binding (calling Bind again on the result) is
// idempotent in the sense that it simply nests another `this` frame that
// shadows the first with the same instance.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnclosedEnvironment(f.closure)
	env.Define("this", instance)
	return NewFunction(f.declaration, env, f.isInitializer)
}
