package fileio

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func gz(t *testing.T, data string) []byte {
	t.Helper()
	var b bytes.Buffer
	gw := gzip.NewWriter(&b)
	if _, err := gw.Write([]byte(data)); err != nil {
		t.Fatalf("gzip: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return b.Bytes()
}

func TestReadAll_Plain(t *testing.T) {
	p := filepath.Join(t.TempDir(), "m.pdb")
	if err := os.WriteFile(p, []byte("ATOM\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadAll(p)
	if err != nil || string(got) != "ATOM\n" {
		t.Fatalf("ReadAll = %q, %v", got, err)
	}
}

func TestReadAll_GzipBySuffixAndMagic(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"m.pdb.gz", "no-suffix.pdb"} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, gz(t, ">q\nMKV\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := ReadAll(p)
		if err != nil || string(got) != ">q\nMKV\n" {
			t.Fatalf("%s: ReadAll = %q, %v", name, got, err)
		}
	}
}

func TestReadAll_Stdin(t *testing.T) {
	orig := Stdin
	defer func() { Stdin = orig }()
	Stdin = strings.NewReader("from stdin")

	got, err := ReadAll("-")
	if err != nil || string(got) != "from stdin" {
		t.Fatalf("ReadAll(-) = %q, %v", got, err)
	}
}

func TestOpen_Missing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
