// Command golox is a tree-walking interpreter for a small class-based
// scripting language: scanner, recursive-descent parser, static resolver,
// and evaluator.
package main

import (
	"os"

	"github.com/cwbudde/go-lox/cmd/golox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
