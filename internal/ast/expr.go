// Package ast defines the tagged expression and statement node types
// produced by the parser and consumed by the resolver and interpreter.
//
// Per the spec's design note in §9, nodes are a plain sum type dispatched
// by type switch in the resolver and interpreter; there is no visitor or
// accept/visit machinery.
package ast

import "github.com/cwbudde/go-lox/internal/token"

// Expr is implemented by every expression node. The marker method exists
// only to close the sum type to this package's node types.
type Expr interface {
	exprNode()
}

// Binary is a binary operator expression: left op right.
type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

// Unary is a prefix operator expression: op right.
type Unary struct {
	Operator token.Token
	Right    Expr
}

// Literal is a constant value baked in at parse time: nil, bool, number,
// or string.
type Literal struct {
	Value any
}

// Grouping is a parenthesized expression, kept distinct from its inner
// expression so that printers and tooling can round-trip parentheses.
type Grouping struct {
	Inner Expr
}

// Ternary is `cond ? then : else`.
type Ternary struct {
	Cond Expr
	Then Expr
	Else Expr
}

// Variable is a read of a named variable. Its identity (this *Variable
// pointer) is the key the resolver uses to record a scope distance.
type Variable struct {
	Name token.Token
}

// Assign is `name = value`. Like Variable, its identity is the resolver's
// key.
type Assign struct {
	Name  token.Token
	Value Expr
}

// Logical is `left and right` / `left or right`, evaluated with
// short-circuiting in the interpreter, not here.
type Logical struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

// Call is a function/method/class invocation: callee(args...).
type Call struct {
	Callee    Expr
	Paren     token.Token // closing ")" token, used to report arity errors
	Arguments []Expr
}

// Get is a property/method read off an instance: instance.name.
type Get struct {
	Object Expr
	Name   token.Token
}

// Set is a property write on an instance: instance.name = value.
type Set struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

// This is the `this` keyword used inside a method body.
type This struct {
	Keyword token.Token
}

// Super is `super.name` used inside a subclass method body.
type Super struct {
	Keyword token.Token
	Method  token.Token
}

func (*Binary) exprNode()   {}
func (*Unary) exprNode()    {}
func (*Literal) exprNode()  {}
func (*Grouping) exprNode() {}
func (*Ternary) exprNode()  {}
func (*Variable) exprNode() {}
func (*Assign) exprNode()   {}
func (*Logical) exprNode()  {}
func (*Call) exprNode()     {}
func (*Get) exprNode()      {}
func (*Set) exprNode()      {}
func (*This) exprNode()     {}
func (*Super) exprNode()    {}
