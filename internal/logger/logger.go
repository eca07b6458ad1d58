// Package logger builds the zap logger shared by the foldprep tools.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TimeLayout matches "%(asctime)s" of the reference pipeline logs.
const TimeLayout = "2006-01-02 15:04:05.000"

// Options configures New.
type Options struct {
	Level  string    // debug, info, warn, error; empty means info
	File   string    // optional log file, receives every record
	Append bool      // append to File instead of truncating it
	Quiet  bool      // console shows warnings and errors only
	Stderr io.Writer // console sink; nil means os.Stderr
}

// New returns a console logger writing "time message fields" lines, teed
// to Options.File when set. The returned close func flushes and closes the file.
func New(opts Options) (*zap.Logger, func() error, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}
	consoleLevel := level
	if opts.Quiet && consoleLevel < zapcore.WarnLevel {
		consoleLevel = zapcore.WarnLevel
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	enc := zapcore.NewConsoleEncoder(encoderConfig())
	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.AddSync(stderr), consoleLevel)}

	closeFn := func() error { return nil }
	if opts.File != "" {
		fh, err := openLogFile(opts.File, opts.Append)
		if err != nil {
			return nil, nil, err
		}
		cores = append(cores, zapcore.NewCore(enc.Clone(), zapcore.AddSync(fh), level))
		closeFn = fh.Close
	}

	l := zap.New(zapcore.NewTee(cores...))
	return l, func() error {
		_ = l.Sync()
		return closeFn()
	}, nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout(TimeLayout),
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

func openLogFile(path string, appendMode bool) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if appendMode {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	fh, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return fh, nil
}
