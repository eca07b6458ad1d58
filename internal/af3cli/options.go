// Package af3cli parses the foldprep-af3 command line.
package af3cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"foldprep/internal/clibase"
)

// Options is the parsed foldprep-af3 command line.
type Options struct {
	clibase.Common

	Name          string   // job name override for a single job
	Molecules     []string // TYPE:SEQUENCE[:COPIES], repeatable
	MoleculesFile string   // TSV of extra molecules
	JSONL         bool     // every job as one line of a single stream
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "AlphaFold 3 input records from queries", func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] query.fasta | job.yaml | -\n", name)
		_, _ = fmt.Fprintln(out, "\nInputs ending in .yaml or .yml are job files; everything else is read as FASTA")
		_, _ = fmt.Fprintln(out, "(one job per record, chains separated by ':').")

		_, _ = fmt.Fprintln(out, "\nJob:")
		_, _ = fmt.Fprintln(out, "      --name string           Job name [record id or file name]")
		_, _ = fmt.Fprintln(out, "  -m, --molecule TYPE:SEQ[:N] Extra RNA | DNA | CCD | SMILES entity (repeatable)")
		_, _ = fmt.Fprintln(out, "      --molecules file        TSV of extra entities: type sequence [copies]")
		_, _ = fmt.Fprintf(out, "      --jsonl                 All jobs as JSON Lines on one stream [%s]\n", def("jsonl"))
	})
	return fs
}

// PrintExamples prints a quickstart for foldprep-af3.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "foldprep-af3", func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "Homodimer with two ATP ligands:")
		_, _ = fmt.Fprintln(w, "  printf '>dimer\\nMKV:MKV\\n' | foldprep-af3 -m CCD:ATP:2 -")
		_, _ = fmt.Fprintln(w, "\nOne record per FASTA entry:")
		_, _ = fmt.Fprintln(w, "  foldprep-af3 --out-dir af3_inputs/ queries.fasta")
		_, _ = fmt.Fprintln(w, "\nEvery entry of several files on one JSON Lines stream:")
		_, _ = fmt.Fprintln(w, "  foldprep-af3 --jsonl -o batch.jsonl a.fasta b.fasta")
		_, _ = fmt.Fprintln(w, "\nJob file with precomputed MSAs:")
		_, _ = fmt.Fprintln(w, "  foldprep-af3 -o complex.json complex.yaml")
	})
}

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help, showExamples bool

	clibase.Register(fs, &o.Common)
	fs.StringVar(&o.Name, "name", "", "job name [record id or file name]")
	clibase.StringSlice(fs, &o.Molecules, "extra entity TYPE:SEQUENCE[:COPIES] (repeatable)", "molecule", "m")
	fs.StringVar(&o.MoleculesFile, "molecules", "", "TSV of extra entities: type sequence [copies]")
	fs.BoolVar(&o.JSONL, "jsonl", false, "write all jobs as JSON Lines to --output [false]")

	fs.BoolVar(&help, "h", false, "show this help [false]")
	fs.BoolVar(&help, "help", false, "show this help [false]")
	fs.BoolVar(&showExamples, "examples", false, "show quickstart examples and exit [false]")

	flagArgs, posArgs := clibase.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if showExamples {
		return o, clibase.ErrPrintedAndExitOK
	}
	if help {
		return o, flag.ErrHelp
	}
	if o.Version {
		return o, nil
	}
	o.Combined = o.JSONL
	if err := clibase.AfterParse(&o.Common, posArgs); err != nil {
		return o, err
	}
	if o.JSONL && o.OutDir != "" {
		return o, errors.New("--jsonl writes one stream; it cannot be combined with --out-dir")
	}
	if o.Name != "" && o.OutDir != "" {
		return o, errors.New("--name names a single job; it cannot be combined with --out-dir")
	}
	return o, nil
}

// IsJobFile reports whether path is read as a YAML job.
func IsJobFile(path string) bool {
	p := strings.TrimSuffix(strings.ToLower(path), ".gz")
	return strings.HasSuffix(p, ".yaml") || strings.HasSuffix(p, ".yml")
}
