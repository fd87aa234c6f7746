// internal/tmapp/app.go
package tmapp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"tmcalc/core/melting"
	"tmcalc/core/trace"
	"tmcalc/internal/cmdutil"
	"tmcalc/internal/config"
	"tmcalc/internal/logging"
	"tmcalc/internal/metrics"
	"tmcalc/internal/tmcli"
	"tmcalc/internal/writers"
	"tmcalc/pkg/api"
)

// outputError marks a failure to write results (exit status 3).
type outputError struct{ err error }

func (e *outputError) Error() string { return e.err.Error() }
func (e *outputError) Unwrap() error { return e.err }

// errRowsFailed is returned by batch when at least one row failed.
var errRowsFailed = errors.New("some rows failed")

type app struct {
	stdout io.Writer
	stderr io.Writer
}

// RunContext runs tmcalc with argv and returns the exit status:
// 0 ok, 1 computation error, 2 usage or configuration error, 3 output
// error, 130 canceled.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	a := &app{stdout: outw, stderr: stderr}

	root := tmcli.NewRootCommand(tmcli.Handlers{
		Compute: a.compute,
		Batch:   a.batch,
		Serve:   a.serve,
		Methods: a.methods,
	})
	root.SetArgs(argv)
	root.SetOut(outw)
	root.SetErr(stderr)

	err := root.ExecuteContext(parent)
	if ferr := outw.Flush(); ferr != nil && !writers.IsBrokenPipe(ferr) && err == nil {
		err = &outputError{ferr}
	}
	return a.exitCode(parent, err)
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func (a *app) exitCode(ctx context.Context, err error) int {
	if err == nil {
		return cmdutil.ExitOK
	}
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return cmdutil.ExitCanceled
	}
	var oe *outputError
	if errors.As(err, &oe) {
		if writers.IsBrokenPipe(err) {
			return cmdutil.ExitOK
		}
		_, _ = fmt.Fprintln(a.stderr, "tmcalc:", err)
		return cmdutil.ExitOutput
	}
	if errors.Is(err, errRowsFailed) {
		return cmdutil.ExitCompute
	}
	_, _ = fmt.Fprintln(a.stderr, "tmcalc:", err)
	code := cmdutil.ExitCode(err)
	if code == cmdutil.ExitUsage {
		_, _ = fmt.Fprintln(a.stderr, "Run 'tmcalc --help' for usage.")
	}
	return code
}

func (a *app) logger(c config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrConfig, err)
	}
	if c.Quiet && level < slog.LevelError {
		level = slog.LevelError
	}
	return logging.New(a.stderr, level), nil
}

// traceLogger mirrors traces only when the user asked for more than
// warnings, which are printed as WARN lines anyway.
func traceLogger(log *slog.Logger) *slog.Logger {
	if log.Enabled(context.Background(), slog.LevelInfo) {
		return log
	}
	return nil
}

func writerOptions(c config.Config) writers.Options {
	return writers.Options{Header: c.Header, Trace: c.Trace}
}

// checkOutput rejects an unknown --output before anything is computed.
func checkOutput(c config.Config) error {
	for _, f := range writers.Formats() {
		if f == c.Output {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown output format %q; allowed: %v", config.ErrConfig, c.Output, writers.Formats())
}

func (a *app) writeMetrics(c config.Config, m *metrics.Metrics, log *slog.Logger) error {
	if c.MetricsOut == "" {
		return nil
	}
	if err := m.WriteFile(c.MetricsOut); err != nil {
		return &outputError{fmt.Errorf("metrics: %w", err)}
	}
	log.Debug("metrics written", "path", c.MetricsOut)
	return nil
}

func (a *app) compute(_ context.Context, c config.Config) error {
	log, err := a.logger(c)
	if err != nil {
		return err
	}
	if err := checkOutput(c); err != nil {
		return err
	}
	opts, err := c.Options()
	if err != nil {
		return err
	}
	m := metrics.New()
	start := time.Now()
	rep, err := melting.NewEngine(opts.DataDir).Compute(opts, trace.New(traceLogger(log)))
	m.Observe(opts.Mode, rep, err, time.Since(start))
	if werr := a.writeMetrics(c, m, log); werr != nil && err == nil {
		err = werr
	}
	if err != nil {
		return err
	}

	v := writers.ToAPIResult("", rep, c.Trace)
	if c.Output != "text" {
		cmdutil.Warnings(a.stderr, c.Quiet, "", v.Warnings)
	}
	if err := writers.Write(c.Output, a.stdout, []api.ResultV1{v}, writerOptions(c)); err != nil {
		return &outputError{err}
	}
	return nil
}
