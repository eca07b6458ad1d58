// Package clibase holds the flags, validation and usage text shared by the
// foldprep tools.
package clibase

import (
	"errors"
	"flag"
	"fmt"
	"strings"
)

// Exit statuses shared by every tool.
const (
	ExitOK        = 0
	ExitUsage     = 2 // bad flags, unreadable or invalid input, contract violations
	ExitIO        = 3 // output could not be written
	ExitCancelled = 130
)

// Common holds CLI fields shared by foldprep-cif and foldprep-af3.
type Common struct {
	// Input
	Inputs []string

	// Output
	Output string // path or "-"
	OutDir string

	// Logging
	LogLevel  string
	LogFile   string
	LogAppend bool
	Quiet     bool

	// Misc
	MetricsFile string
	Version     bool

	// Combined is set by tools that can write several documents to one stream.
	Combined bool
}

// Register wires shared flags onto fs.
func Register(fs *flag.FlagSet, c *Common) {
	fs.StringVar(&c.Output, "output", "-", "output file or '-' for STDOUT")
	fs.StringVar(&c.Output, "o", "-", "alias of --output")
	fs.StringVar(&c.OutDir, "out-dir", "", "write one file per input into this directory")

	fs.StringVar(&c.LogLevel, "log-level", "info", "log level: debug | info | warn | error [info]")
	fs.StringVar(&c.LogFile, "log-file", "", "also write log records to this file")
	fs.BoolVar(&c.LogAppend, "log-append", false, "append to --log-file instead of truncating [false]")
	fs.BoolVar(&c.Quiet, "quiet", false, "only log warnings and errors [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")

	fs.StringVar(&c.MetricsFile, "metrics-file", "", "write counters in Prometheus textfile format at exit")
	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
}

// AfterParse expands positionals into Inputs, then runs shared validation.
func AfterParse(c *Common, posArgs []string) error {
	if len(posArgs) > 0 {
		exp, err := ExpandPositionals(posArgs)
		if err != nil {
			return err
		}
		c.Inputs = append(c.Inputs, exp...)
	}
	return Validate(c)
}

// Validate applies shared CLI invariants used by all tools.
func Validate(c *Common) error {
	if len(c.Inputs) == 0 {
		return errors.New("at least one input is required")
	}
	if c.OutDir != "" && c.Output != "-" {
		return errors.New("--output conflicts with --out-dir")
	}
	if len(c.Inputs) > 1 && c.OutDir == "" && !c.Combined {
		return fmt.Errorf("%d inputs given; use --out-dir to write one file per input", len(c.Inputs))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid --log-level %q", c.LogLevel)
	}
	if c.LogAppend && c.LogFile == "" {
		return errors.New("--log-append requires --log-file")
	}
	return nil
}
