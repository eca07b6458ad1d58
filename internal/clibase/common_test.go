package clibase

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSplitFlagsAndPositionals(t *testing.T) {
	fs := flag.NewFlagSet("x", flag.ContinueOnError)
	var c Common
	Register(fs, &c)
	flagArgs, posArgs := SplitFlagsAndPositionals(fs, []string{"a.pdb", "-q", "--out-dir", "out", "-", "--log-level=debug", "--", "-odd.pdb"})
	if strings.Join(flagArgs, " ") != "-q --out-dir out --log-level=debug" {
		t.Fatalf("flags = %v", flagArgs)
	}
	if strings.Join(posArgs, " ") != "a.pdb - -odd.pdb" {
		t.Fatalf("positionals = %v", posArgs)
	}
}

func TestExpandPositionals(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.pdb", "b.pdb", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("END\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := ExpandPositionals([]string{filepath.Join(dir, "*.pdb"), "-"})
	if err != nil || len(got) != 3 || got[2] != "-" {
		t.Fatalf("expand: err=%v got=%v", err, got)
	}
	if _, err := ExpandPositionals([]string{filepath.Join(dir, "*.cif")}); err == nil {
		t.Fatal("expected error for unmatched glob")
	}
}

func TestValidate(t *testing.T) {
	ok := Common{Inputs: []string{"a"}, Output: "-", LogLevel: "info"}
	if err := Validate(&ok); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		mod  func(*Common)
		want string
	}{
		{"no input", func(c *Common) { c.Inputs = nil }, "at least one input"},
		{"many inputs", func(c *Common) { c.Inputs = []string{"a", "b"} }, "--out-dir"},
		{"output and dir", func(c *Common) { c.Output = "x.cif"; c.OutDir = "out" }, "conflicts"},
		{"level", func(c *Common) { c.LogLevel = "loud" }, "--log-level"},
		{"append", func(c *Common) { c.LogAppend = true }, "--log-file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ok
			tt.mod(&c)
			if err := Validate(&c); err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestStringSlice(t *testing.T) {
	fs := flag.NewFlagSet("x", flag.ContinueOnError)
	var got []string
	StringSlice(fs, &got, "molecule", "molecule", "m")
	if err := fs.Parse([]string{"--molecule", "CCD:ATP", "-m", "DNA:AC"}); err != nil {
		t.Fatal(err)
	}
	if strings.Join(got, " ") != "CCD:ATP DNA:AC" {
		t.Fatalf("got %v", got)
	}
}

func TestUsageCommon(t *testing.T) {
	fs := flag.NewFlagSet("tool", flag.ContinueOnError)
	var c Common
	Register(fs, &c)
	var buf bytes.Buffer
	fs.SetOutput(&buf)
	UsageCommon(fs, "tool", "does things", func(out io.Writer, _ func(string) string) {
		_, _ = io.WriteString(out, "Usage:\n  tool x\n")
	})
	fs.Usage()
	for _, want := range []string{"tool: does things", "Usage:", "--log-file", "[info]"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("usage lacks %q:\n%s", want, buf.String())
		}
	}
}
