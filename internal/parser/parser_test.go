package parser

import (
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/internal/token"
	"github.com/cwbudde/go-lox/reporter"
)

// cmpOpts ignores token.Line and token.Lexeme so test expectations don't
// need to restate source positions; Kind and Literal still compare.
var cmpOpts = cmp.Options{
	cmpopts.IgnoreFields(token.Token{}, "Line", "Lexeme"),
}

func parse(t *testing.T, source string) ([]ast.Stmt, *reporter.Reporter) {
	t.Helper()
	rep := reporter.New(io.Discard)
	rep.SetSource(source, "test")
	l := lexer.New(source, rep)
	p := New(l.ScanTokens(), rep)
	return p.Parse(), rep
}

func tok(kind token.Kind) token.Token {
	return token.Token{Kind: kind}
}

func TestParseVarDeclaration(t *testing.T) {
	stmts, rep := parse(t, `var x = 1;`)
	if rep.HadError {
		t.Fatalf("unexpected parse error")
	}
	want := []ast.Stmt{
		&ast.Var{Name: tok(token.IDENTIFIER), Initializer: &ast.Literal{Value: 1.0}},
	}
	if diff := cmp.Diff(want, stmts, cmpOpts); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	// 1 + 2 * 3 ** 2 should parse as 1 + (2 * (3 ** 2)), with ** binding
	// tighter than * and right-associating with itself.
	stmts, rep := parse(t, `1 + 2 * 3 ** 2;`)
	if rep.HadError {
		t.Fatalf("unexpected parse error")
	}
	want := []ast.Stmt{
		&ast.Expression{Expr: &ast.Binary{
			Left:     &ast.Literal{Value: 1.0},
			Operator: tok(token.PLUS),
			Right: &ast.Binary{
				Left:     &ast.Literal{Value: 2.0},
				Operator: tok(token.STAR),
				Right: &ast.Binary{
					Left:     &ast.Literal{Value: 3.0},
					Operator: tok(token.POW),
					Right:    &ast.Literal{Value: 2.0},
				},
			},
		}},
	}
	if diff := cmp.Diff(want, stmts, cmpOpts); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTernary(t *testing.T) {
	stmts, rep := parse(t, `a ? b : c;`)
	if rep.HadError {
		t.Fatalf("unexpected parse error")
	}
	want := []ast.Stmt{
		&ast.Expression{Expr: &ast.Ternary{
			Cond: &ast.Variable{Name: tok(token.IDENTIFIER)},
			Then: &ast.Variable{Name: tok(token.IDENTIFIER)},
			Else: &ast.Variable{Name: tok(token.IDENTIFIER)},
		}},
	}
	if diff := cmp.Diff(want, stmts, cmpOpts); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts, rep := parse(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	if rep.HadError {
		t.Fatalf("unexpected parse error")
	}
	if len(stmts) != 1 {
		t.Fatalf("expected one desugared statement, got %d", len(stmts))
	}
	outer, ok := stmts[0].(*ast.Block)
	if !ok {
		t.Fatalf("expected outer Block, got %T", stmts[0])
	}
	if len(outer.Statements) != 2 {
		t.Fatalf("expected [init, while], got %d statements", len(outer.Statements))
	}
	if _, ok := outer.Statements[0].(*ast.Var); !ok {
		t.Errorf("expected first statement to be the initializer Var, got %T", outer.Statements[0])
	}
	whileStmt, ok := outer.Statements[1].(*ast.While)
	if !ok {
		t.Fatalf("expected second statement to be While, got %T", outer.Statements[1])
	}
	body, ok := whileStmt.Body.(*ast.Block)
	if !ok {
		t.Fatalf("expected while body to be Block, got %T", whileStmt.Body)
	}
	if len(body.Statements) != 2 {
		t.Fatalf("expected [body, increment], got %d statements", len(body.Statements))
	}
	if _, ok := body.Statements[1].(*ast.Expression); !ok {
		t.Errorf("expected increment as trailing Expression, got %T", body.Statements[1])
	}
}

func TestParseClassWithSuperclass(t *testing.T) {
	stmts, rep := parse(t, `class B < A { init() { this.x = 1; } }`)
	if rep.HadError {
		t.Fatalf("unexpected parse error")
	}
	class, ok := stmts[0].(*ast.Class)
	if !ok {
		t.Fatalf("expected Class, got %T", stmts[0])
	}
	if class.Superclass == nil {
		t.Fatal("expected a superclass")
	}
	if len(class.Methods) != 1 || class.Methods[0].Name.Lexeme != "init" {
		t.Fatalf("expected one 'init' method, got %+v", class.Methods)
	}
}

func TestParseSynchronizeRecoversAfterError(t *testing.T) {
	// The missing ';' after the first statement should be reported, but
	// the parser must still recover. synchronize consumes the 'var' at
	// which the error was detected and skips to the token after the next
	// ';', so 'var y' is lost and parsing resumes with 'var z'.
	stmts, rep := parse(t, `var x = 1
var y = 2;
var z = 3;`)
	if !rep.HadError {
		t.Fatal("expected a reported error for the missing semicolon")
	}
	found := false
	for _, s := range stmts {
		if v, ok := s.(*ast.Var); ok && v.Name.Lexeme == "z" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected synchronize to recover and still parse 'var z', got %+v", stmts)
	}
}

func TestParseInvalidAssignmentTargetReportsButContinues(t *testing.T) {
	stmts, rep := parse(t, `1 = 2; var z = 3;`)
	if !rep.HadError {
		t.Fatal("expected an error for an unassignable target")
	}
	found := false
	for _, s := range stmts {
		if v, ok := s.(*ast.Var); ok && v.Name.Lexeme == "z" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected parsing to continue after the invalid assignment, got %+v", stmts)
	}
}

func TestParseMissingLeftOperandReportsAndRecovers(t *testing.T) {
	stmts, rep := parse(t, `* 2; var ok = 1;`)
	if !rep.HadError {
		t.Fatal("expected a missing-left-operand diagnostic")
	}
	if len(stmts) < 2 {
		t.Fatalf("expected parsing to continue past the bad expression, got %+v", stmts)
	}
}
