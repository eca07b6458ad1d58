// Package cifapp runs foldprep-cif.
package cifapp

import (
	"context"
	"io"

	"go.uber.org/zap"

	"foldprep/internal/appshell"
	"foldprep/internal/cif"
	"foldprep/internal/cifcli"
	"foldprep/internal/clibase"
	"foldprep/internal/job"
	"foldprep/internal/pdb"
	"foldprep/internal/writers"
)

const name = "foldprep-cif"

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cifcli.NewFlagSet(name)
	fs.SetOutput(io.Discard) // silence default flag pkg

	opts, err := cifcli.ParseArgs(fs, argv)
	if code, done := appshell.ParseOutcome(fs, name, opts.Version, err, cifcli.PrintExamples, stdout, stderr); done {
		return code
	}

	sess, err := appshell.Open(opts.Common, stderr)
	if err != nil {
		return appshell.SetupError(name, err, stderr)
	}
	defer sess.Close()
	log := sess.Log

	var extra *cif.Table
	if opts.ExtraTable != "" {
		if extra, err = job.LoadTable(opts.ExtraTable); err != nil {
			return sess.Fail(ctx, err, clibase.ExitUsage, "extra table rejected", zap.String("path", opts.ExtraTable))
		}
		log.Debug("extra table loaded", zap.String("path", opts.ExtraTable), zap.Int("keys", extra.Len()))
	}

	for _, in := range opts.Inputs {
		if ctx.Err() != nil {
			return sess.Fail(ctx, ctx.Err(), clibase.ExitCancelled, "cancelled")
		}
		s, err := pdb.ReadFile(in, opts.ID)
		if err != nil {
			return sess.Fail(ctx, err, clibase.ExitUsage, "structure not readable", zap.String("input", in))
		}
		if s.AtomCount() == 0 {
			log.Warn("structure has no atoms", zap.String("input", in))
		}

		tbl := cif.AtomSiteTable(s)
		if extra != nil {
			tbl.Merge(extra)
		}
		doc, st, err := cif.NewModelWriter(s).Render(tbl)
		if err != nil {
			return sess.Fail(ctx, err, clibase.ExitUsage, "document not rendered", zap.String("input", in))
		}

		out := writers.OutputPath(opts.Output, opts.OutDir, outputStem(tbl, s.ID), ".cif")
		if err := writers.Emit(out, stdout, doc); err != nil {
			return sess.Fail(ctx, err, clibase.ExitIO, "document not written", zap.String("output", out))
		}

		sess.Metrics.Document("mmcif")
		sess.Metrics.Categories("loop", st.Loops)
		sess.Metrics.Categories("single", st.Categories-st.Loops)
		sess.Metrics.Categories("derived", st.Derived)
		sess.Metrics.Rows(st.Rows)
		log.Info("wrote mmCIF",
			zap.String("input", in),
			zap.String("output", out),
			zap.String("id", tbl.ID()),
			zap.Int("models", len(s.Models)),
			zap.Int("chains", s.ChainCount()),
			zap.Int("atoms", s.AtomCount()),
			zap.Int("categories", st.Categories+st.Derived),
		)
	}
	return clibase.ExitOK
}

func outputStem(t *cif.Table, fallback string) string {
	if t.ID() != "" {
		return t.ID()
	}
	if fallback != "" {
		return fallback
	}
	return "structure"
}
