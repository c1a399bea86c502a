package resolver

import (
	"io"
	"testing"

	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/internal/parser"
	"github.com/cwbudde/go-lox/reporter"
)

func resolve(t *testing.T, source string) (*Resolver, []ast.Stmt, *reporter.Reporter) {
	t.Helper()
	rep := reporter.New(io.Discard)
	rep.SetSource(source, "test")
	l := lexer.New(source, rep)
	p := parser.New(l.ScanTokens(), rep)
	stmts := p.Parse()
	if rep.HadError {
		t.Fatalf("unexpected parse error for %q", source)
	}
	r := New(rep)
	r.Resolve(stmts)
	return r, stmts, rep
}

// findVariable returns the first *ast.Variable reference named `name`
// found anywhere in the program, depth-first.
func findVariable(stmts []ast.Stmt, name string) *ast.Variable {
	var found *ast.Variable
	var walkStmt func(ast.Stmt)
	var walkExpr func(ast.Expr)

	walkExpr = func(e ast.Expr) {
		if found != nil || e == nil {
			return
		}
		switch v := e.(type) {
		case *ast.Variable:
			if v.Name.Lexeme == name {
				found = v
			}
		case *ast.Assign:
			walkExpr(v.Value)
		case *ast.Binary:
			walkExpr(v.Left)
			walkExpr(v.Right)
		case *ast.Unary:
			walkExpr(v.Right)
		case *ast.Grouping:
			walkExpr(v.Inner)
		case *ast.Ternary:
			walkExpr(v.Cond)
			walkExpr(v.Then)
			walkExpr(v.Else)
		case *ast.Logical:
			walkExpr(v.Left)
			walkExpr(v.Right)
		case *ast.Call:
			walkExpr(v.Callee)
			for _, a := range v.Arguments {
				walkExpr(a)
			}
		case *ast.Get:
			walkExpr(v.Object)
		case *ast.Set:
			walkExpr(v.Object)
			walkExpr(v.Value)
		}
	}

	walkStmt = func(s ast.Stmt) {
		if found != nil || s == nil {
			return
		}
		switch st := s.(type) {
		case *ast.Expression:
			walkExpr(st.Expr)
		case *ast.Print:
			walkExpr(st.Expr)
		case *ast.Var:
			walkExpr(st.Initializer)
		case *ast.Block:
			for _, inner := range st.Statements {
				walkStmt(inner)
			}
		case *ast.If:
			walkExpr(st.Condition)
			walkStmt(st.Then)
			walkStmt(st.Else)
		case *ast.While:
			walkExpr(st.Condition)
			walkStmt(st.Body)
		case *ast.Function:
			for _, inner := range st.Body.Statements {
				walkStmt(inner)
			}
		case *ast.Return:
			walkExpr(st.Value)
		case *ast.Class:
			for _, m := range st.Methods {
				for _, inner := range m.Body.Statements {
					walkStmt(inner)
				}
			}
		}
	}

	for _, s := range stmts {
		walkStmt(s)
	}
	return found
}

func TestResolveGlobalReferenceHasNoDistance(t *testing.T) {
	r, stmts, rep := resolve(t, `
var a = 1;
{
  var b = 2;
  {
    print a;
  }
}
`)
	if rep.HadError {
		t.Fatalf("unexpected resolve error")
	}
	ref := findVariable(stmts, "a")
	if ref == nil {
		t.Fatal("expected to find a reference to 'a'")
	}
	if _, ok := r.Distances[ref]; ok {
		t.Errorf("expected 'a' to resolve globally (no entry), got distance %d", r.Distances[ref])
	}
}

func TestResolveNestedBlockDistance(t *testing.T) {
	r, stmts, rep := resolve(t, `
{
  var x = 1;
  {
    print x;
  }
}
`)
	if rep.HadError {
		t.Fatalf("unexpected resolve error")
	}
	ref := findVariable(stmts, "x")
	if ref == nil {
		t.Fatal("expected to find a reference to 'x'")
	}
	if dist, ok := r.Distances[ref]; !ok || dist != 1 {
		t.Errorf("expected distance 1, got %d (ok=%v)", dist, ok)
	}
}

func TestResolveUseBeforeInitialization(t *testing.T) {
	_, _, rep := resolve(t, `{ var a = a; }`)
	if !rep.HadError {
		t.Error("expected an error for self-referential initializer")
	}
}

func TestResolveRedeclarationInSameScope(t *testing.T) {
	_, _, rep := resolve(t, `{ var a = 1; var a = 2; }`)
	if !rep.HadError {
		t.Error("expected an error for redeclaring 'a' in the same scope")
	}
}

func TestResolveReturnOutsideFunction(t *testing.T) {
	_, _, rep := resolve(t, `return 1;`)
	if !rep.HadError {
		t.Error("expected an error for top-level return")
	}
}

func TestResolveReturnValueFromInitializer(t *testing.T) {
	_, _, rep := resolve(t, `class C { init() { return 1; } }`)
	if !rep.HadError {
		t.Error("expected an error for returning a value from init()")
	}
}

func TestResolveBareReturnFromInitializerIsAllowed(t *testing.T) {
	_, _, rep := resolve(t, `class C { init() { return; } }`)
	if rep.HadError {
		t.Error("bare return from init() should be allowed")
	}
}

func TestResolveThisOutsideClass(t *testing.T) {
	_, _, rep := resolve(t, `print this;`)
	if !rep.HadError {
		t.Error("expected an error for 'this' outside a class")
	}
}

func TestResolveSuperWithoutSuperclass(t *testing.T) {
	_, _, rep := resolve(t, `class C { m() { super.m(); } }`)
	if !rep.HadError {
		t.Error("expected an error for 'super' in a class without a superclass")
	}
}

func TestResolveSuperWithSuperclassIsAllowed(t *testing.T) {
	_, _, rep := resolve(t, `
class A { m() { print 1; } }
class B < A { m() { super.m(); } }
`)
	if rep.HadError {
		t.Error("'super' in a subclass should be allowed")
	}
}

func TestResolveBreakOutsideLoop(t *testing.T) {
	_, _, rep := resolve(t, `break;`)
	if !rep.HadError {
		t.Error("expected an error for 'break' outside a loop")
	}
}

func TestResolveBreakInsideLoopIsAllowed(t *testing.T) {
	_, _, rep := resolve(t, `while (true) { break; }`)
	if rep.HadError {
		t.Error("'break' inside a loop should be allowed")
	}
}

func TestResolveClassInheritingFromItself(t *testing.T) {
	_, _, rep := resolve(t, `class C < C {}`)
	if !rep.HadError {
		t.Error("expected an error for a class inheriting from itself")
	}
}
