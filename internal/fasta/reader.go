// Package fasta reads query FASTA files: one record per prediction job.
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"foldprep/internal/fileio"
)

// Record is one FASTA entry. ID is the first header word.
type Record struct {
	ID  string
	Seq []byte
}

// ScanPathCtx opens path ("-" is stdin, gzip accepted) and calls emit for
// every record. Cancellation via ctx is checked between lines. A non-nil
// error from emit stops the scan and is returned.
func ScanPathCtx(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := fileio.Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()

	sc := bufio.NewScanner(rc)
	const maxLine = 64 * 1024 * 1024 // single-line sequences
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		id    string
		inRec bool
		seq   []byte
	)
	flush := func() error {
		if !inRec {
			return nil
		}
		return emit(Record{ID: id, Seq: append([]byte(nil), seq...)})
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := bytes.TrimRight(sc.Bytes(), "\r")
		if len(line) > 0 && line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			id = ""
			if f := strings.Fields(string(line[1:])); len(f) > 0 {
				id = f[0]
			}
			inRec = true
			seq = seq[:0]
			continue
		}
		if !inRec {
			continue
		}
		seq = append(seq, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return flush()
}

// ReadPathCtx collects every record of path.
func ReadPathCtx(ctx context.Context, path string) ([]Record, error) {
	var out []Record
	err := ScanPathCtx(ctx, path, func(r Record) error {
		out = append(out, r)
		return nil
	})
	return out, err
}
