package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/cwbudde/go-lox/internal/interp"
	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/internal/parser"
	"github.com/cwbudde/go-lox/internal/resolver"
	"github.com/cwbudde/go-lox/reporter"
	"github.com/spf13/cobra"
)

// Exit codes per spec §6.
const (
	exitOK           = 0
	exitStaticError  = 65
	exitRuntimeError = 70
	exitInterrupt    = 1
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a script file, or start the REPL with no arguments",
	Long: `Execute a program from a file, or enter the line-by-line REPL when no
file (or "-") is given.

Examples:
  golox run script.lox
  golox run -
  golox run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMain,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runMain(_ *cobra.Command, args []string) error {
	if len(args) == 0 || args[0] == "-" {
		runREPL(os.Stdin, os.Stdout)
		return nil
	}

	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	code := runSource(string(content), filename, os.Stdout)
	if code != exitOK {
		os.Exit(code)
	}
	return nil
}

// runSource drives the full pipeline for one program: scanner → parser →
// resolver → evaluator, each stage consulting the reporter and aborting if
// a prior stage already flagged an error, per spec §2 "Data flow".
func runSource(source, filename string, out io.Writer) int {
	rep := reporter.New(os.Stderr)
	rep.SetSource(source, filename)

	l := lexer.New(source, rep)
	tokens := l.ScanTokens()

	p := parser.New(tokens, rep)
	statements := p.Parse()

	if rep.HadError {
		return exitStaticError
	}

	res := resolver.New(rep)
	res.Resolve(statements)

	if rep.HadError {
		return exitStaticError
	}

	i := interp.New(out, rep)
	i.Interpret(statements, res.Distances)

	if rep.HadRuntimeError {
		return exitRuntimeError
	}
	return exitOK
}

// runREPL implements the line-buffering REPL contract of spec §6: a
// numbered prompt, `.exit`/`.quit`/`.clear` directives, and a line ending
// in ':' that continues a multi-line buffer until a line that doesn't.
//
// A KeyboardInterrupt aborts the loop cleanly with exit code 1 (§5
// "Cancellation", §6 "Exit codes"); every other termination path (EOF,
// .exit, .quit) falls through to main's normal exitOK return.
func runREPL(in io.Reader, out io.Writer) {
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)
	go func() {
		<-interrupts
		os.Exit(exitInterrupt)
	}()

	scanner := bufio.NewScanner(in)
	lineNo := 1
	var buffer strings.Builder
	continuation := false

	// One interpreter (and so one global environment) persists across
	// submissions, the way every closure/counter REPL example in the spec
	// expects; only the reporter's sticky flags reset per submission
	// (spec §4.6 "reset() clears both for REPL iterations").
	rep := reporter.New(out)
	i := interp.New(out, rep)

	for {
		if continuation {
			fmt.Fprintf(out, "%4d . ", lineNo)
		} else {
			fmt.Fprintf(out, "%4d # ", lineNo)
		}
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		lineNo++

		switch strings.TrimSpace(line) {
		case ".exit", ".quit":
			return
		case ".clear":
			fmt.Fprint(out, "\x1b[H\x1b[2J\x1b[3J")
			continue
		}

		buffer.WriteString(line)
		buffer.WriteString("\n")

		if strings.HasSuffix(strings.TrimRight(line, " \t"), ":") {
			continuation = true
			continue
		}

		continuation = false
		submission := buffer.String()
		buffer.Reset()

		rep.Reset()
		rep.SetSource(submission, "")
		runSubmission(submission, rep, i)
	}
}

// runSubmission runs one REPL submission through the same pipeline as a
// file, but never exits the process on error — it reports and returns to
// the prompt, per spec §7 "file mode exits ... REPL mode prints and
// returns to the prompt." i's environment carries over between calls.
func runSubmission(source string, rep *reporter.Reporter, i *interp.Interpreter) {
	l := lexer.New(source, rep)
	tokens := l.ScanTokens()

	p := parser.New(tokens, rep)
	statements := p.Parse()
	if rep.HadError {
		return
	}

	res := resolver.New(rep)
	res.Resolve(statements)
	if rep.HadError {
		return
	}

	i.Interpret(statements, res.Distances)
}
