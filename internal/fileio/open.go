// Package fileio opens tool inputs: "-" for stdin, gzip detected by magic
// number or .gz suffix, plain files otherwise.
package fileio

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"
)

// Stdin is read when the path is "-". Tests may replace it.
var Stdin io.Reader = os.Stdin

// multiReadCloser closes every layer when Close is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

type noClose struct{}

func (noClose) Close() error { return nil }

// Open returns a reader for path with gzip transparently removed.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return maybeGzip(bufio.NewReader(Stdin), noClose{})
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(fh)
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(br)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	rc, err := maybeGzip(br, fh)
	if err != nil {
		_ = fh.Close()
	}
	return rc, err
}

// maybeGzip peeks at the stream for the gzip magic (1F 8B).
func maybeGzip(br *bufio.Reader, c io.Closer) (io.ReadCloser, error) {
	sig, _ := br.Peek(2)
	if len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b {
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, c}}, nil
	}
	return &multiReadCloser{Reader: br, closers: []io.Closer{c}}, nil
}

// ReadAll reads the whole (decompressed) content of path.
func ReadAll(path string) ([]byte, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
