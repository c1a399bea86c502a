package interp

import "github.com/cwbudde/go-lox/internal/token"

// runtimeError is a runtime type/undefined-variable/zero-division fault
// tied to the token that caused it, per spec §4.4 "Failure" and §7's
// runtime-error taxonomy. It is a plain Go error value, not a panic.
type runtimeError struct {
	token   token.Token
	message string
}

func (e *runtimeError) Error() string { return e.message }

func newRuntimeError(tok token.Token, message string) *runtimeError {
	return &runtimeError{token: tok, message: message}
}

// returnSignal and breakSignal are the internal control-flow unwinds for
// `return` and `break`. They implement error so they can be threaded
// through the same (Value, error) / error return paths as genuine faults,
// per §9's design note preferring typed outcomes over host exceptions;
// the interpreter's own call sites are the only place that inspect them
// (errors.As in the while loop, a type assertion in Function.Call), so
// they never reach the reporter.
type returnSignal struct {
	value Value
}

func (r *returnSignal) Error() string { return "return" }

type breakSignal struct{}

func (b *breakSignal) Error() string { return "break" }
