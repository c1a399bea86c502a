// Package resolver implements the static scope-analysis pass described in
// the spec's §4.3: it walks the parsed AST, computes the scope distance for
// every variable reference, and rejects uses of `this`, `super`, `return`,
// and `break` outside their valid contexts.
//
// It is grounded on the teacher's internal/semantic analyzer: a stack of
// scopes plus a small enum of "what am I currently inside" context,
// generalized here from DWScript's type-checking symbol table to the
// spec's simpler declared/defined boolean scopes.
package resolver

import (
	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/reporter"
)

// functionContext tracks what kind of callable body the resolver is
// currently inside, mirroring the spec's FUNCTION/METHOD/INITIALIZER
// states.
type functionContext int

const (
	noFunction functionContext = iota
	inFunction
	inMethod
	inInitializer
)

// classContext tracks the NONE → CLASS → SUBCLASS state machine from
// spec §4.5.
type classContext int

const (
	noClass classContext = iota
	inClass
	inSubclass
)

// scope maps a name to whether it has finished its initializer
// (false = declared, true = defined).
type scope map[string]bool

// Resolver performs the single static pass over a parsed program.
type Resolver struct {
	reporter *reporter.Reporter
	scopes   []scope

	currentFunction functionContext
	currentClass    classContext
	loopDepth       int

	// Distances maps a variable-reference expression's identity (the
	// *ast.Variable/*ast.Assign/*ast.This/*ast.Super pointer itself, since
	// Expr is a pointer-backed interface) to its scope distance. A name
	// that resolves at global scope is omitted, per spec §4.3 "Output".
	Distances map[ast.Expr]int
}

// New creates a Resolver that reports static errors through rep.
func New(rep *reporter.Reporter) *Resolver {
	return &Resolver{
		reporter:  rep,
		Distances: make(map[ast.Expr]int),
	}
}

// Resolve runs the pass over a whole program's statement list.
func (r *Resolver) Resolve(statements []ast.Stmt) {
	r.resolveStmts(statements)
}

// ---- scope stack ----

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name string, line int) {
	if len(r.scopes) == 0 {
		return
	}
	current := r.scopes[len(r.scopes)-1]
	if _, exists := current[name]; exists {
		r.reporter.Error(line, "Variable '"+name+"' already declared in this scope.")
	}
	current[name] = false
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

// resolveLocal walks the scope stack top-down looking for name, recording
// the distance on expr if found. A name not found in any local scope
// resolves through the global frame and is simply omitted from Distances.
func (r *Resolver) resolveLocal(expr ast.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.Distances[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

// ---- statements ----

func (r *Resolver) resolveStmts(statements []ast.Stmt) {
	for _, stmt := range statements {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()

	case *ast.Var:
		r.declare(s.Name.Lexeme, s.Name.Line)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name.Lexeme)

	case *ast.Function:
		r.declare(s.Name.Lexeme, s.Name.Line)
		r.define(s.Name.Lexeme)
		r.resolveFunction(s, inFunction)

	case *ast.Class:
		r.resolveClass(s)

	case *ast.Expression:
		r.resolveExpr(s.Expr)

	case *ast.Print:
		r.resolveExpr(s.Expr)

	case *ast.If:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.While:
		r.resolveExpr(s.Condition)
		r.loopDepth++
		r.resolveStmt(s.Body)
		r.loopDepth--

	case *ast.Return:
		if r.currentFunction == noFunction {
			r.reporter.Error(s.Keyword.Line, "Cannot return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == inInitializer {
				r.reporter.Error(s.Keyword.Line, "Cannot return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}

	case *ast.Break:
		if r.loopDepth == 0 {
			r.reporter.Error(s.Keyword.Line, "Cannot use 'break' outside a loop.")
		}

	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveFunction(fn *ast.Function, ctx functionContext) {
	enclosingFunction := r.currentFunction
	r.currentFunction = ctx
	defer func() { r.currentFunction = enclosingFunction }()

	// A function body starts outside any loop, even when it is declared
	// inside one.
	enclosingLoopDepth := r.loopDepth
	r.loopDepth = 0
	defer func() { r.loopDepth = enclosingLoopDepth }()

	r.beginScope()
	defer r.endScope()

	for _, param := range fn.Params {
		r.declare(param.Lexeme, param.Line)
		r.define(param.Lexeme)
	}
	r.resolveStmts(fn.Body.Statements)
}

func (r *Resolver) resolveClass(class *ast.Class) {
	enclosingClass := r.currentClass
	r.currentClass = inClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(class.Name.Lexeme, class.Name.Line)
	r.define(class.Name.Lexeme)

	if class.Superclass != nil {
		if class.Superclass.Name.Lexeme == class.Name.Lexeme {
			r.reporter.Error(class.Superclass.Name.Line, "A class cannot inherit from itself.")
		}
		r.currentClass = inSubclass
		r.resolveExpr(class.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
		defer r.endScope()
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true
	defer r.endScope()

	for _, method := range class.Methods {
		ctx := inMethod
		if method.Name.Lexeme == "init" {
			ctx = inInitializer
		}
		r.resolveFunction(method, ctx)
	}
}

// ---- expressions ----

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.reporter.Error(e.Name.Line,
					"Cannot read local variable '"+e.Name.Lexeme+"' in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name.Lexeme)

	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name.Lexeme)

	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Unary:
		r.resolveExpr(e.Right)

	case *ast.Literal:
		// no references to resolve

	case *ast.Grouping:
		r.resolveExpr(e.Inner)

	case *ast.Ternary:
		r.resolveExpr(e.Cond)
		r.resolveExpr(e.Then)
		r.resolveExpr(e.Else)

	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpr(arg)
		}

	case *ast.Get:
		r.resolveExpr(e.Object)

	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *ast.This:
		if r.currentClass == noClass {
			r.reporter.Error(e.Keyword.Line, "Cannot use 'this' outside a class.")
			return
		}
		r.resolveLocal(e, "this")

	case *ast.Super:
		switch r.currentClass {
		case noClass:
			r.reporter.Error(e.Keyword.Line, "Cannot use 'super' outside a class.")
		case inClass:
			r.reporter.Error(e.Keyword.Line, "Cannot use 'super' in a class with no superclass.")
		default:
			r.resolveLocal(e, "super")
		}

	default:
		panic("resolver: unhandled expression type")
	}
}
