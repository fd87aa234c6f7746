// Package appshell wires a run function to the process: signals, argv and
// the exit status.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"tmcalc/internal/cmdutil"
)

// Main runs run with a context canceled on SIGINT or SIGTERM and exits with
// its status. No arguments prints the help.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	argv := os.Args[1:]
	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	code := run(ctx, argv, os.Stdout, os.Stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == cmdutil.ExitOK {
		code = cmdutil.ExitCanceled
	}

	stop()
	os.Exit(code)
}
