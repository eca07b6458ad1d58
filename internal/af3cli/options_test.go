package af3cli

import (
	"flag"
	"strings"
	"testing"
)

func newFS() *flag.FlagSet { return flag.NewFlagSet("test", flag.ContinueOnError) }

func TestParseArgs(t *testing.T) {
	o, err := ParseArgs(newFS(), []string{"-m", "CCD:ATP:2", "q.fa", "--molecule", "DNA:ACGT", "--molecules", "m.tsv", "--name", "job"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(o.Molecules, " ") != "CCD:ATP:2 DNA:ACGT" || o.MoleculesFile != "m.tsv" || o.Name != "job" || o.Inputs[0] != "q.fa" {
		t.Fatalf("bad parse: %+v", o)
	}
}

func TestParseArgs_NameWithOutDir(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"--name", "x", "--out-dir", "out", "q.fa"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestIsJobFile(t *testing.T) {
	for path, want := range map[string]bool{
		"job.yaml":    true,
		"JOB.YML":     true,
		"job.yaml.gz": true,
		"q.fasta":     false,
		"-":           false,
	} {
		if got := IsJobFile(path); got != want {
			t.Errorf("IsJobFile(%q) = %v", path, got)
		}
	}
}

func TestParseArgs_JSONL(t *testing.T) {
	o, err := ParseArgs(newFS(), []string{"a.fa", "--jsonl", "b.fa"})
	if err != nil {
		t.Fatal(err)
	}
	if !o.JSONL || !o.Combined || len(o.Inputs) != 2 {
		t.Fatalf("bad parse: %+v", o)
	}
	if _, err := ParseArgs(newFS(), []string{"--jsonl", "--out-dir", "out", "a.fa"}); err == nil {
		t.Fatal("expected --jsonl/--out-dir conflict")
	}
}
