package clibase

import (
	"flag"
	"fmt"
	"io"

	"foldprep/internal/version"
)

// UsageCommon installs a shared Usage() handler on fs.
// extra prints tool-specific sections (usage line, input flags).
func UsageCommon(fs *flag.FlagSet, name, tagline string, extra func(out io.Writer, def func(string) string)) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s: %s\n\n", name, tagline)
		fmt.Fprintf(out, "Version: %s (%s)\n\n", version.Version, version.Commit())

		if extra != nil {
			extra(out, def)
		}

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --output string         Output file or '-' for STDOUT [%s]\n", def("output"))
		fmt.Fprintln(out, "      --out-dir dir           One file per input in this directory (required for several inputs)")

		fmt.Fprintln(out, "\nLogging:")
		fmt.Fprintf(out, "      --log-level string      debug | info | warn | error [%s]\n", def("log-level"))
		fmt.Fprintln(out, "      --log-file file         Also write log records to this file")
		fmt.Fprintf(out, "      --log-append            Append to --log-file instead of truncating [%s]\n", def("log-append"))
		fmt.Fprintf(out, "  -q, --quiet                 Only log warnings and errors [%s]\n", def("quiet"))

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintln(out, "      --metrics-file file     Write counters in Prometheus textfile format")
		fmt.Fprintln(out, "      --examples              Show quickstart examples and exit")
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
}
