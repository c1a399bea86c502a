package interp

import (
	"math"
	"strconv"

	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/token"
)

func (i *Interpreter) evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e.Value), nil

	case *ast.Grouping:
		return i.evaluate(e.Inner)

	case *ast.Unary:
		return i.evalUnary(e)

	case *ast.Binary:
		return i.evalBinary(e)

	case *ast.Ternary:
		cond, err := i.evaluate(e.Cond)
		if err != nil {
			return nil, err
		}
		if IsTruthy(cond) {
			return i.evaluate(e.Then)
		}
		return i.evaluate(e.Else)

	case *ast.Logical:
		return i.evalLogical(e)

	case *ast.Variable:
		return i.lookUpVariable(e.Name, e)

	case *ast.Assign:
		return i.evalAssign(e)

	case *ast.Call:
		return i.evalCall(e)

	case *ast.Get:
		return i.evalGet(e)

	case *ast.Set:
		return i.evalSet(e)

	case *ast.This:
		return i.lookUpVariable(e.Keyword, e)

	case *ast.Super:
		return i.evalSuper(e)

	default:
		return nil, newRuntimeError(token.Token{}, "interp: unhandled expression type")
	}
}

func literalValue(v any) Value {
	switch val := v.(type) {
	case nil:
		return Nil
	case bool:
		return BoolValue{Value: val}
	case float64:
		return NumberValue{Value: val}
	case string:
		return StringValue{Value: val}
	default:
		return Nil
	}
}

func (i *Interpreter) evalUnary(e *ast.Unary) (Value, error) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Kind {
	case token.MINUS:
		n, ok := right.(NumberValue)
		if !ok {
			return nil, newRuntimeError(e.Operator, "Operand must be a number.")
		}
		return NumberValue{Value: -n.Value}, nil
	case token.PLUS:
		n, ok := right.(NumberValue)
		if !ok {
			return nil, newRuntimeError(e.Operator, "Operand must be a number.")
		}
		return NumberValue{Value: n.Value}, nil
	case token.BANG:
		return BoolValue{Value: !IsTruthy(right)}, nil
	default:
		return nil, newRuntimeError(e.Operator, "Unknown unary operator.")
	}
}

func (i *Interpreter) evalBinary(e *ast.Binary) (Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case token.EQUAL_EQUAL:
		return BoolValue{Value: ValuesEqual(left, right)}, nil
	case token.BANG_EQUAL:
		return BoolValue{Value: !ValuesEqual(left, right)}, nil

	case token.PLUS:
		if ls, ok := left.(StringValue); ok {
			if rs, ok := right.(StringValue); ok {
				return StringValue{Value: ls.Value + rs.Value}, nil
			}
			return nil, newRuntimeError(e.Operator, "Operands of '+' must both be strings or both be numbers.")
		}
		ln, lok := left.(NumberValue)
		rn, rok := right.(NumberValue)
		if lok && rok {
			return NumberValue{Value: ln.Value + rn.Value}, nil
		}
		return nil, newRuntimeError(e.Operator, "Operands of '+' must both be strings or both be numbers.")

	case token.MINUS, token.STAR, token.SLASH, token.POW,
		token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL:
		ln, lok := left.(NumberValue)
		rn, rok := right.(NumberValue)
		if !lok || !rok {
			return nil, newRuntimeError(e.Operator, "Operands must be numbers.")
		}
		return i.numericBinary(e.Operator, ln.Value, rn.Value)

	default:
		return nil, newRuntimeError(e.Operator, "Unknown binary operator.")
	}
}

func (i *Interpreter) numericBinary(op token.Token, l, r float64) (Value, error) {
	switch op.Kind {
	case token.MINUS:
		return NumberValue{Value: l - r}, nil
	case token.STAR:
		return NumberValue{Value: l * r}, nil
	case token.SLASH:
		if r == 0 {
			return nil, newRuntimeError(op, "Division by zero.")
		}
		return NumberValue{Value: l / r}, nil
	case token.POW:
		return NumberValue{Value: math.Pow(l, r)}, nil
	case token.LESS:
		return BoolValue{Value: l < r}, nil
	case token.LESS_EQUAL:
		return BoolValue{Value: l <= r}, nil
	case token.GREATER:
		return BoolValue{Value: l > r}, nil
	case token.GREATER_EQUAL:
		return BoolValue{Value: l >= r}, nil
	default:
		return nil, newRuntimeError(op, "Unknown numeric operator.")
	}
}

func (i *Interpreter) evalLogical(e *ast.Logical) (Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Operator.Kind == token.OR {
		if IsTruthy(left) {
			return left, nil
		}
	} else { // AND
		if !IsTruthy(left) {
			return left, nil
		}
	}
	return i.evaluate(e.Right)
}

func (i *Interpreter) evalAssign(e *ast.Assign) (Value, error) {
	value, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if distance, ok := i.locals[e]; ok {
		if err := i.environment.AssignAt(distance, e.Name.Lexeme, value); err != nil {
			return nil, newRuntimeError(e.Name, err.Error())
		}
		return value, nil
	}
	if err := i.environment.AssignGlobal(e.Name.Lexeme, value); err != nil {
		return nil, newRuntimeError(e.Name, err.Error())
	}
	return value, nil
}

func (i *Interpreter) lookUpVariable(name token.Token, expr ast.Expr) (Value, error) {
	if distance, ok := i.locals[expr]; ok {
		v, err := i.environment.GetAt(distance, name.Lexeme)
		if err != nil {
			return nil, newRuntimeError(name, err.Error())
		}
		return v, nil
	}
	v, err := i.environment.GetGlobal(name.Lexeme)
	if err != nil {
		return nil, newRuntimeError(name, err.Error())
	}
	return v, nil
}

func (i *Interpreter) evalCall(e *ast.Call) (Value, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	arguments := make([]Value, 0, len(e.Arguments))
	for _, argExpr := range e.Arguments {
		arg, err := i.evaluate(argExpr)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, arg)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(e.Paren, "Can only call functions and classes.")
	}
	if arity := callable.Arity(); arity >= 0 && arity != len(arguments) {
		return nil, newRuntimeError(e.Paren, "Expected "+strconv.Itoa(arity)+" arguments but got "+strconv.Itoa(len(arguments))+".")
	}
	return callable.Call(i, arguments)
}

func (i *Interpreter) evalGet(e *ast.Get) (Value, error) {
	object, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*Instance)
	if !ok {
		return nil, newRuntimeError(e.Name, "Only instances have properties.")
	}
	v, err := instance.Get(e.Name.Lexeme)
	if err != nil {
		return nil, newRuntimeError(e.Name, err.Error())
	}
	return v, nil
}

func (i *Interpreter) evalSet(e *ast.Set) (Value, error) {
	object, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*Instance)
	if !ok {
		return nil, newRuntimeError(e.Name, "Only instances have fields.")
	}
	value, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(e.Name.Lexeme, value)
	return value, nil
}

// evalSuper resolves spec §4.5 "super.name": look up the method on the
// superclass's table, then bind it to the *current* `this`, which sits one
// frame closer than `super` in the synthetic enclosing scopes the resolver
// pushed (spec §4.3 "Methods").
func (i *Interpreter) evalSuper(e *ast.Super) (Value, error) {
	distance := i.locals[e]
	superVal, err := i.environment.GetAt(distance, "super")
	if err != nil {
		return nil, newRuntimeError(e.Keyword, err.Error())
	}
	superclass := superVal.(*Class)

	thisVal, err := i.environment.GetAt(distance-1, "this")
	if err != nil {
		return nil, newRuntimeError(e.Keyword, err.Error())
	}
	instance := thisVal.(*Instance)

	method, ok := superclass.findMethod(e.Method.Lexeme)
	if !ok {
		return nil, newRuntimeError(e.Method, "Undefined property '"+e.Method.Lexeme+"'.")
	}
	return method.Bind(instance), nil
}

