package jsonlutil

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

type rec struct {
	Name string `json:"name"`
}

func TestStart(t *testing.T) {
	var buf bytes.Buffer
	in, done := Start[rec](&buf, 0, nil)
	in <- rec{"a"}
	in <- rec{"b<c"}
	close(in)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if buf.String() != "{\"name\":\"a\"}\n{\"name\":\"b<c\"}\n" {
		t.Fatalf("got %q", buf.String())
	}
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestStart_Errors(t *testing.T) {
	in, done := Start[rec](failWriter{io.ErrShortWrite}, 1, nil)
	in <- rec{"a"}
	close(in)
	if err := <-done; !errors.Is(err, io.ErrShortWrite) {
		t.Fatalf("err = %v", err)
	}

	in, done = Start[rec](failWriter{io.ErrClosedPipe}, 1, func(err error) bool { return errors.Is(err, io.ErrClosedPipe) })
	in <- rec{"a"}
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("broken pipe reported: %v", err)
	}
}
