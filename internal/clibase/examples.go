package clibase

import (
	"errors"
	"fmt"
	"io"
)

// ErrPrintedAndExitOK tells the app that ParseArgs already printed the
// quickstart; it exits 0 without running.
var ErrPrintedAndExitOK = errors.New("examples requested")

// PrintExamples writes "<name>: quickstart", the tool's examples and a
// closing hint about --help.
func PrintExamples(out io.Writer, name string, body func(io.Writer)) {
	if out == nil {
		return
	}
	fmt.Fprintf(out, "%s: quickstart\n\n", name)
	if body != nil {
		body(out)
	}
	fmt.Fprintf(out, "\nSee %s --help for every flag.\n", name)
}
