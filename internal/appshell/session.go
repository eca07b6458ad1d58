package appshell

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap"

	"foldprep/internal/clibase"
	"foldprep/internal/logger"
	"foldprep/internal/metrics"
	"foldprep/internal/version"
	"foldprep/internal/writers"
)

// Session owns the logger and metrics of one tool invocation.
type Session struct {
	Log     *zap.Logger
	Metrics *metrics.Recorder

	metricsFile string
	closeLog    func() error
}

// Open builds the session for the shared flags. Log records go to stderr.
func Open(c clibase.Common, stderr io.Writer) (*Session, error) {
	l, closeLog, err := logger.New(logger.Options{
		Level:  c.LogLevel,
		File:   c.LogFile,
		Append: c.LogAppend,
		Quiet:  c.Quiet,
		Stderr: stderr,
	})
	if err != nil {
		return nil, err
	}
	return &Session{Log: l, Metrics: metrics.New(), metricsFile: c.MetricsFile, closeLog: closeLog}, nil
}

// Context returns ctx carrying the session logger.
func (s *Session) Context(ctx context.Context) context.Context {
	return logger.ContextWithLogger(ctx, s.Log)
}

// Close writes the metrics textfile (if requested) and flushes the log.
func (s *Session) Close() error {
	var errMetrics error
	if err := s.Metrics.WriteTextfile(s.metricsFile); err != nil {
		s.Log.Warn("metrics textfile not written", zap.String("path", s.metricsFile), zap.Error(err))
		errMetrics = err
	}
	return errors.Join(errMetrics, s.closeLog())
}

// Fail logs err, counts it and returns the exit status for it: 130 when ctx
// is done, code otherwise.
func (s *Session) Fail(ctx context.Context, err error, code int, msg string, fields ...zap.Field) int {
	if ctx.Err() != nil {
		s.Log.Warn("cancelled", zap.Error(ctx.Err()))
		return clibase.ExitCancelled
	}
	if code == clibase.ExitIO {
		s.Metrics.IOError()
	} else {
		s.Metrics.Error(err)
	}
	s.Log.Error(msg, append(fields, zap.Error(err))...)
	return code
}

// ParseOutcome turns the result of a tool's ParseArgs into an exit status.
// done is false when the tool should go on running.
func ParseOutcome(fs *flag.FlagSet, name string, showVersion bool, err error, examples func(io.Writer), stdout, stderr io.Writer) (code int, done bool) {
	switch {
	case errors.Is(err, clibase.ErrPrintedAndExitOK):
		return emit(stdout, stderr, examples, clibase.ExitOK), true
	case errors.Is(err, flag.ErrHelp):
		return emit(stdout, stderr, func(w io.Writer) { fs.SetOutput(w); fs.Usage() }, clibase.ExitOK), true
	case err != nil:
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", name)
		return clibase.ExitUsage, true
	case showVersion:
		return emit(stdout, stderr, func(w io.Writer) {
			fmt.Fprintf(w, "%s version %s (commit %s, built %s)\n", name, version.Version, version.Commit(), version.Date)
		}, clibase.ExitOK), true
	}
	return clibase.ExitOK, false
}

func emit(stdout, stderr io.Writer, write func(io.Writer), code int) int {
	var buf bytes.Buffer
	write(&buf)
	if err := writers.Emit(writers.Stdout, stdout, buf.Bytes()); err != nil {
		fmt.Fprintln(stderr, err)
		return clibase.ExitIO
	}
	return code
}

// SetupError reports a setup failure that happens before logging is
// available (for example an unwritable --log-file).
func SetupError(name string, err error, stderr io.Writer) int {
	fmt.Fprintf(stderr, "%s: %v\n", name, err)
	return clibase.ExitUsage
}
