// Package appshell is the process wrapper shared by the foldprep tools:
// signal handling, logger and metrics lifetime, and flag-parse outcomes.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"foldprep/internal/clibase"
)

// RunFunc is the entry point of one tool.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main calls run under a context that SIGINT and SIGTERM cancel, then exits
// the process. A bare invocation prints help.
func Main(run RunFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"-h"}
	}
	code := exitCode(ctx, run(ctx, args, os.Stdout, os.Stderr))
	stop()
	os.Exit(code)
}

// exitCode turns a clean exit after a signal into ExitCancelled.
func exitCode(ctx context.Context, code int) int {
	if code == clibase.ExitOK && ctx.Err() != nil {
		return clibase.ExitCancelled
	}
	return code
}
