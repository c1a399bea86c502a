package interp

import (
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cwbudde/go-lox/internal/token"
	"github.com/cwbudde/go-lox/reporter"
)

// registerBuiltins wires the native globals into i.Globals, per spec
// §4.7. clock, string, and printmany are exactly the three the spec
// enumerates; len is the one SPEC_FULL.md-supplemented convenience (see
// "SUPPLEMENTED FEATURES" there) — the surface stays deliberately tiny.
func registerBuiltins(i *Interpreter) {
	i.Globals.Define("clock", &NativeFunction{
		Name: "clock", Arity_: 0,
		Impl: func(_ *Interpreter, _ []Value) (Value, error) {
			return NumberValue{Value: float64(time.Now().UnixNano()) / 1e9}, nil
		},
	})

	i.Globals.Define("string", &NativeFunction{
		Name: "string", Arity_: 1,
		Impl: func(_ *Interpreter, args []Value) (Value, error) {
			return StringValue{Value: reporter.Stringify(stringifyValue(args[0]), false)}, nil
		},
	})

	i.Globals.Define("printmany", &NativeFunction{
		Name: "printmany", Arity_: -1, // variadic: evaluator skips arity checking
		Impl: func(interp *Interpreter, args []Value) (Value, error) {
			parts := make([]string, len(args))
			for idx, a := range args {
				parts[idx] = reporter.Stringify(stringifyValue(a), false)
			}
			_, _ = io.WriteString(interp.out, strings.Join(parts, " ")+"\n")
			return Nil, nil
		},
	})

	i.Globals.Define("len", &NativeFunction{
		Name: "len", Arity_: 1,
		Impl: func(_ *Interpreter, args []Value) (Value, error) {
			s, ok := args[0].(StringValue)
			if !ok {
				return nil, newRuntimeError(token.Token{}, "len() expects a string argument.")
			}
			return NumberValue{Value: float64(utf8.RuneCountInString(s.Value))}, nil
		},
	})
}
