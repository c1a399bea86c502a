package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/internal/parser"
	"github.com/cwbudde/go-lox/reporter"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a file and print its AST (debugging aid)",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	rep := reporter.New(os.Stderr)
	rep.SetSource(string(content), filename)

	l := lexer.New(string(content), rep)
	tokens := l.ScanTokens()

	p := parser.New(tokens, rep)
	statements := p.Parse()

	if rep.HadError {
		os.Exit(exitStaticError)
	}

	fmt.Print(ast.PrintProgram(statements))
	return nil
}
