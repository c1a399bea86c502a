package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/reporter"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Scan a file and print its token stream (debugging aid)",
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	rep := reporter.New(os.Stderr)
	rep.SetSource(string(content), filename)

	l := lexer.New(string(content), rep)
	for _, tok := range l.ScanTokens() {
		fmt.Printf("%4d  %s\n", tok.Line, tok.String())
	}

	if rep.HadError {
		os.Exit(exitStaticError)
	}
	return nil
}
