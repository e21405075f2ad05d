// Command tardi is the CLI collaborator around internal/tardi (spec §6):
// `tardi FILE` compiles and runs a script after bootstrap, bare `tardi`
// starts a line-at-a-time REPL, following gothird's own main.go shape of
// flag parsing feeding a small set of functional options into one
// constructor.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/tardi-lang/tardi/internal/code"
	"github.com/tardi-lang/tardi/internal/compiler"
	"github.com/tardi-lang/tardi/internal/module"
	"github.com/tardi-lang/tardi/internal/scanner"
	"github.com/tardi-lang/tardi/internal/tardi"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		printStack bool
		trace      bool
		initScript string
	)
	flag.BoolVar(&printStack, "print-stack", false, "print the data stack after each top-level evaluation")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.StringVar(&initScript, "init-script", "", "override bootstrap search with a single script")
	flag.Parse()

	opts := []tardi.Option{
		tardi.WithPrintStack(printStack),
		tardi.WithDataDir(os.Getenv("TARDI_DATA_DIR")),
	}
	if trace {
		opts = append(opts, tardi.WithLogf(func(mess string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, mess+"\n", args...)
		}))
	}
	if initScript != "" {
		opts = append(opts, tardi.WithInitScript(initScript))
	}

	p, err := tardi.New(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		return exitCode(err)
	}

	ctx := context.Background()
	if args := flag.Args(); len(args) > 0 {
		if err := p.RunFile(ctx, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
			return exitCode(err)
		}
		return 0
	}

	return repl(ctx, p)
}

// repl runs bare `tardi`'s line-at-a-time loop (spec §6). A compile or
// runtime error clears the compilation frame and returns to the prompt
// (spec §7's REPL policy) without clearing the data stack or exiting.
func repl(ctx context.Context, p *tardi.Program) int {
	in := bufio.NewScanner(os.Stdin)
	for in.Scan() {
		line := in.Text()
		if line == "" {
			continue
		}
		if err := p.Eval(ctx, line); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		}
	}
	return 0
}

// exitCode maps an error to spec §6's CLI exit codes. Only module and
// scan/compile errors are distinguished from a generic runtime error --
// spec.md's own VMError/IoError taxonomy is deep enough that a full
// reverse mapping would duplicate it here for no behavioral benefit.
func exitCode(err error) int {
	var notFound module.NotFoundError
	var cycle module.CycleError
	var exportMismatch module.ExportMismatchError
	if errors.As(err, &notFound) || errors.As(err, &cycle) || errors.As(err, &exportMismatch) {
		return 3
	}

	var unexpectedWord compiler.UnexpectedWord
	var unterminatedBody compiler.UnterminatedBody
	var unterminatedList scanner.UnterminatedList
	var unknownWord code.UnknownWord
	if errors.As(err, &unexpectedWord) || errors.As(err, &unterminatedBody) || errors.As(err, &unterminatedList) ||
		errors.As(err, &unknownWord) ||
		errors.Is(err, scanner.ErrUnterminatedString) || errors.Is(err, scanner.ErrUnterminatedChar) ||
		errors.Is(err, scanner.ErrInvalidEscape) || errors.Is(err, scanner.ErrInvalidNumber) ||
		errors.Is(err, compiler.ErrUnexpectedEOF) || errors.Is(err, compiler.ErrNoVM) || errors.Is(err, compiler.ErrNoImporter) {
		return 2
	}

	return 1
}
