// Package af3app runs foldprep-af3.
package af3app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"foldprep/internal/af3"
	"foldprep/internal/af3cli"
	"foldprep/internal/appshell"
	"foldprep/internal/clibase"
	"foldprep/internal/errs"
	"foldprep/internal/fasta"
	"foldprep/internal/job"
	"foldprep/internal/jsonlutil"
	"foldprep/internal/jsonutil"
	"foldprep/internal/writers"
	"foldprep/pkg/api"
)

const name = "foldprep-af3"

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := af3cli.NewFlagSet(name)
	fs.SetOutput(io.Discard) // silence default flag pkg

	opts, err := af3cli.ParseArgs(fs, argv)
	if code, done := appshell.ParseOutcome(fs, name, opts.Version, err, af3cli.PrintExamples, stdout, stderr); done {
		return code
	}

	sess, err := appshell.Open(opts.Common, stderr)
	if err != nil {
		return appshell.SetupError(name, err, stderr)
	}
	defer sess.Close()
	log := sess.Log
	ctx = sess.Context(ctx)

	extras, err := job.ParseMolecules(opts.Molecules)
	if err != nil {
		return sess.Fail(ctx, err, clibase.ExitUsage, "bad --molecule")
	}
	if opts.MoleculesFile != "" {
		more, err := job.LoadMoleculesTSV(ctx, opts.MoleculesFile)
		if err != nil {
			return sess.Fail(ctx, err, clibase.ExitUsage, "molecule list rejected", zap.String("path", opts.MoleculesFile))
		}
		extras = append(extras, more...)
	}

	reqs, err := collect(ctx, opts.Inputs)
	if err != nil {
		return sess.Fail(ctx, err, clibase.ExitUsage, "input rejected")
	}
	if len(reqs) > 1 && opts.OutDir == "" && !opts.JSONL {
		err := errs.New(errs.InvalidInput, "", "%d jobs in the input; use --out-dir or --jsonl", len(reqs))
		return sess.Fail(ctx, err, clibase.ExitUsage, "input rejected")
	}
	if opts.Name != "" {
		if len(reqs) > 1 {
			err := errs.New(errs.InvalidInput, opts.Name, "--name needs exactly one job, got %d", len(reqs))
			return sess.Fail(ctx, err, clibase.ExitUsage, "input rejected")
		}
		reqs[0].Name = opts.Name
	}

	var stream *bytes.Buffer
	var lines chan<- api.InputV2
	var streamDone <-chan error
	if opts.JSONL {
		stream = &bytes.Buffer{}
		lines, streamDone = jsonlutil.Start[api.InputV2](stream, 0, writers.IsBrokenPipe)
	}
	closeStream := func() error {
		if lines == nil {
			return nil
		}
		close(lines)
		lines = nil
		return <-streamDone
	}
	defer func() { _ = closeStream() }()

	for _, req := range reqs {
		if ctx.Err() != nil {
			return sess.Fail(ctx, ctx.Err(), clibase.ExitCancelled, "cancelled")
		}
		req.Extras = append(append([]af3.Molecule(nil), req.Extras...), extras...)
		in, err := af3.Assemble(req)
		if err != nil {
			return sess.Fail(ctx, err, clibase.ExitUsage, "job not assembled", zap.String("job", req.Name))
		}
		out := opts.Output
		if lines != nil {
			lines <- in
		} else {
			doc, err := jsonutil.MarshalPretty(in)
			if err != nil {
				return sess.Fail(ctx, err, clibase.ExitUsage, "job not encoded", zap.String("job", req.Name))
			}
			out = writers.OutputPath(opts.Output, opts.OutDir, fileName(req.Name), ".json")
			if err := writers.Emit(out, stdout, doc); err != nil {
				return sess.Fail(ctx, err, clibase.ExitIO, "job not written", zap.String("output", out))
			}
		}

		sum := af3.Summarize(in)
		sess.Metrics.Document(format(opts.JSONL))
		for class, n := range sum.Entities {
			sess.Metrics.Entities(class, n)
		}
		sess.Metrics.ChainIDs(sum.Chains)
		log.Info("wrote AF3 input",
			zap.String("job", req.Name),
			zap.String("output", out),
			zap.Int("entities", len(in.Sequences)),
			zap.Int("chains", sum.Chains),
		)
	}

	if stream != nil {
		if err := closeStream(); err != nil {
			return sess.Fail(ctx, err, clibase.ExitUsage, "jobs not encoded")
		}
		if err := writers.Emit(opts.Output, stdout, stream.Bytes()); err != nil {
			return sess.Fail(ctx, err, clibase.ExitIO, "jobs not written", zap.String("output", opts.Output))
		}
	}
	return clibase.ExitOK
}

func format(jsonl bool) string {
	if jsonl {
		return "af3-jsonl"
	}
	return "af3-json"
}

// collect turns every input into assembler requests: one per YAML job file,
// one per FASTA record.
func collect(ctx context.Context, inputs []string) ([]af3.Request, error) {
	var reqs []af3.Request
	for _, in := range inputs {
		if af3cli.IsJobFile(in) {
			j, err := job.Load(in)
			if err != nil {
				return nil, err
			}
			req, err := j.Request()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", in, err)
			}
			reqs = append(reqs, req)
			continue
		}
		err := fasta.ScanPathCtx(ctx, in, func(rec fasta.Record) error {
			chains, copies := fasta.Chains(string(rec.Seq))
			if rec.ID == "" {
				return errs.New(errs.InvalidInput, in, "FASTA record without a name")
			}
			if len(chains) == 0 {
				return errs.New(errs.InvalidInput, rec.ID, "FASTA record has no sequence")
			}
			reqs = append(reqs, af3.Request{Name: rec.ID, Sequences: chains, Copies: copies})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in, err)
		}
	}
	if len(reqs) == 0 {
		return nil, errs.New(errs.InvalidInput, strings.Join(inputs, ","), "no jobs found")
	}
	return reqs, nil
}

// fileName keeps a job name usable as a file name.
func fileName(job string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', '\t', ':':
			return '_'
		}
		return r
	}, job)
}
