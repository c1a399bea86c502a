package ast

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-lox/internal/token"
	"github.com/cwbudde/go-lox/reporter"
)

// PrintProgram renders a statement list as an indented, s-expression-like
// tree. It exists purely as a debugging aid for the `golox parse` command
// and is not used by the parser, resolver, or evaluator.
func PrintProgram(statements []Stmt) string {
	var sb strings.Builder
	for _, s := range statements {
		printStmt(&sb, s, 0)
	}
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

func printStmt(sb *strings.Builder, stmt Stmt, depth int) {
	indent(sb, depth)
	switch s := stmt.(type) {
	case *Expression:
		fmt.Fprintf(sb, "(expr %s)\n", printExpr(s.Expr))
	case *Print:
		fmt.Fprintf(sb, "(print %s)\n", printExpr(s.Expr))
	case *Var:
		if s.Initializer != nil {
			fmt.Fprintf(sb, "(var %s %s)\n", s.Name.Lexeme, printExpr(s.Initializer))
		} else {
			fmt.Fprintf(sb, "(var %s)\n", s.Name.Lexeme)
		}
	case *Block:
		sb.WriteString("(block\n")
		for _, inner := range s.Statements {
			printStmt(sb, inner, depth+1)
		}
		indent(sb, depth)
		sb.WriteString(")\n")
	case *If:
		fmt.Fprintf(sb, "(if %s\n", printExpr(s.Condition))
		printStmt(sb, s.Then, depth+1)
		if s.Else != nil {
			printStmt(sb, s.Else, depth+1)
		}
		indent(sb, depth)
		sb.WriteString(")\n")
	case *While:
		fmt.Fprintf(sb, "(while %s\n", printExpr(s.Condition))
		printStmt(sb, s.Body, depth+1)
		indent(sb, depth)
		sb.WriteString(")\n")
	case *Function:
		fmt.Fprintf(sb, "(fun %s(%s)\n", s.Name.Lexeme, joinParams(s.Params))
		for _, inner := range s.Body.Statements {
			printStmt(sb, inner, depth+1)
		}
		indent(sb, depth)
		sb.WriteString(")\n")
	case *Return:
		if s.Value != nil {
			fmt.Fprintf(sb, "(return %s)\n", printExpr(s.Value))
		} else {
			sb.WriteString("(return)\n")
		}
	case *Break:
		sb.WriteString("(break)\n")
	case *Class:
		if s.Superclass != nil {
			fmt.Fprintf(sb, "(class %s < %s\n", s.Name.Lexeme, s.Superclass.Name.Lexeme)
		} else {
			fmt.Fprintf(sb, "(class %s\n", s.Name.Lexeme)
		}
		for _, m := range s.Methods {
			printStmt(sb, m, depth+1)
		}
		indent(sb, depth)
		sb.WriteString(")\n")
	default:
		fmt.Fprintf(sb, "(unknown-stmt %T)\n", stmt)
	}
}

func joinParams(params []token.Token) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Lexeme
	}
	return strings.Join(names, " ")
}

func printExpr(expr Expr) string {
	switch e := expr.(type) {
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", e.Operator.Lexeme, printExpr(e.Left), printExpr(e.Right))
	case *Unary:
		return fmt.Sprintf("(%s %s)", e.Operator.Lexeme, printExpr(e.Right))
	case *Literal:
		return reporter.Stringify(e.Value, true)
	case *Grouping:
		return fmt.Sprintf("(group %s)", printExpr(e.Inner))
	case *Ternary:
		return fmt.Sprintf("(?: %s %s %s)", printExpr(e.Cond), printExpr(e.Then), printExpr(e.Else))
	case *Variable:
		return e.Name.Lexeme
	case *Assign:
		return fmt.Sprintf("(= %s %s)", e.Name.Lexeme, printExpr(e.Value))
	case *Logical:
		return fmt.Sprintf("(%s %s %s)", e.Operator.Lexeme, printExpr(e.Left), printExpr(e.Right))
	case *Call:
		args := make([]string, len(e.Arguments))
		for i, a := range e.Arguments {
			args[i] = printExpr(a)
		}
		return fmt.Sprintf("(call %s %s)", printExpr(e.Callee), strings.Join(args, " "))
	case *Get:
		return fmt.Sprintf("(get %s %s)", printExpr(e.Object), e.Name.Lexeme)
	case *Set:
		return fmt.Sprintf("(set %s %s %s)", printExpr(e.Object), e.Name.Lexeme, printExpr(e.Value))
	case *This:
		return "this"
	case *Super:
		return fmt.Sprintf("(super %s)", e.Method.Lexeme)
	default:
		return fmt.Sprintf("(unknown-expr %T)", expr)
	}
}
