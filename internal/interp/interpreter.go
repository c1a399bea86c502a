package interp

import (
	"errors"
	"io"

	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/token"
	"github.com/cwbudde/go-lox/reporter"
)

// Interpreter walks a resolved AST and evaluates it, driving callables and
// applying the runtime typing rules of spec §4.5.
type Interpreter struct {
	Globals     *Environment
	environment *Environment
	locals      map[ast.Expr]int
	reporter    *reporter.Reporter
	out         io.Writer
}

// New creates an Interpreter that writes `print`/native output to out and
// reports runtime faults through rep. The native builtins (the three of
// §4.7 plus len) are wired into Globals immediately.
func New(out io.Writer, rep *reporter.Reporter) *Interpreter {
	globals := NewEnvironment()
	i := &Interpreter{
		Globals:     globals,
		environment: globals,
		reporter:    rep,
		out:         out,
	}
	registerBuiltins(i)
	return i
}

// Interpret runs a whole resolved program. locals is the resolver's
// distance map; it is merged into the distances of earlier calls, so
// functions defined by an earlier REPL submission keep theirs. A runtime
// fault aborts the remaining statements and is reported through the
// reporter (spec §7 "Propagation policy"); it does not panic and does not
// stop a REPL from prompting again.
func (i *Interpreter) Interpret(statements []ast.Stmt, locals map[ast.Expr]int) {
	if i.locals == nil {
		i.locals = make(map[ast.Expr]int, len(locals))
	}
	for expr, distance := range locals {
		i.locals[expr] = distance
	}
	for _, stmt := range statements {
		if err := i.execute(stmt); err != nil {
			var rerr *runtimeError
			if errors.As(err, &rerr) {
				i.reporter.RuntimeError(rerr.token.Line, rerr.message)
			}
			return
		}
	}
}

// ---- statement execution ----

func (i *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.Expression:
		_, err := i.evaluate(s.Expr)
		return err

	case *ast.Print:
		value, err := i.evaluate(s.Expr)
		if err != nil {
			return err
		}
		_, _ = io.WriteString(i.out, reporter.Stringify(stringifyValue(value), false)+"\n")
		return nil

	case *ast.Var:
		var value Value = Nil
		if s.Initializer != nil {
			v, err := i.evaluate(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		i.environment.Define(s.Name.Lexeme, value)
		return nil

	case *ast.Block:
		return i.executeBlock(s.Statements, NewEnclosedEnvironment(i.environment))

	case *ast.If:
		cond, err := i.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if IsTruthy(cond) {
			return i.execute(s.Then)
		}
		if s.Else != nil {
			return i.execute(s.Else)
		}
		return nil

	case *ast.While:
		for {
			cond, err := i.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !IsTruthy(cond) {
				return nil
			}
			if err := i.execute(s.Body); err != nil {
				var brk *breakSignal
				if errors.As(err, &brk) {
					return nil
				}
				return err
			}
		}

	case *ast.Function:
		fn := NewFunction(s, i.environment, false)
		i.environment.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.Return:
		var value Value = Nil
		if s.Value != nil {
			v, err := i.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &returnSignal{value: value}

	case *ast.Break:
		return &breakSignal{}

	case *ast.Class:
		return i.executeClass(s)

	default:
		return newRuntimeError(token.Token{}, "interp: unhandled statement type")
	}
}

// executeBlock runs statements in a new child environment, restoring the
// previous environment on every exit path — normal, return, break, or
// runtime error — per spec §4.5 "Block execution" and §5 "Resource
// acquisition". Go's defer is the scoped-release mechanism the spec asks
// implementations to use.
func (i *Interpreter) executeBlock(statements []ast.Stmt, env *Environment) error {
	previous := i.environment
	i.environment = env
	defer func() { i.environment = previous }()

	for _, stmt := range statements {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) executeClass(s *ast.Class) error {
	var superclass *Class
	if s.Superclass != nil {
		v, err := i.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return newRuntimeError(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	classEnv := i.environment
	if superclass != nil {
		classEnv = NewEnclosedEnvironment(i.environment)
		classEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = NewFunction(m, classEnv, m.Name.Lexeme == "init")
	}

	class := NewClass(s.Name.Lexeme, superclass, methods)
	i.environment.Define(s.Name.Lexeme, class)
	return nil
}

// stringifyValue adapts the interp.Value union to the shape
// reporter.Stringify expects (nil/bool/float64/string/Stringer).
func stringifyValue(v Value) any {
	switch val := v.(type) {
	case NilValue:
		return nil
	case BoolValue:
		return val.Value
	case NumberValue:
		return val.Value
	case StringValue:
		return val.Value
	default:
		return val // Callable/*Instance: fmt.Stringer via String()
	}
}
