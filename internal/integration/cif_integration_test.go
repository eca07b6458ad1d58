package integration

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"foldprep/internal/cifapp"
)

func atomLine(rec string, serial int, name, res, chain string, seq int, x, y, z float64, elem string) string {
	return fmt.Sprintf("%-6s%5d %-4s%1s%3s %1s%4d%1s   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s",
		rec, serial, name, "", res, chain, seq, "", x, y, z, 1.0, 20.0, elem)
}

func samplePDB() string {
	return strings.Join([]string{
		atomLine("ATOM", 1, " N", "MET", "A", 1, 1, 2, 3, "N"),
		atomLine("ATOM", 2, " CA", "MET", "A", 1, 2, 2, 3, "C"),
		atomLine("ATOM", 3, " N", "LYS", "A", 2, 3, 2, 3, "N"),
		atomLine("ATOM", 4, " N", "VAL", "B", 1, 4, 2, 3, "N"),
		atomLine("HETATM", 5, " O", "HOH", "B", 101, 5, 2, 3, "O"),
		"END",
	}, "\n") + "\n"
}

func write(t *testing.T, dir, name, data string) string {
	t.Helper()
	fn := filepath.Join(dir, name)
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func TestCIF_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	pdbPath := write(t, dir, "ranked_0.pdb", samplePDB())
	extra := write(t, dir, "extra.yaml", "_software.name: foldprep\n_software.classification: 'model building'\n")

	var out, errBuf bytes.Buffer
	code := cifapp.Run([]string{"--extra-table", extra, "-q", pdbPath}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errBuf.String())
	}
	doc := out.String()
	for _, want := range []string{
		"data_ranked_0\n#\nloop_\n_entity_poly_seq.entity_id\n",
		"#\n1 1 MET  n\n1 2 LYS  n\n2 1 VAL  n\n#\n",
		"loop_\n_struct_asym.id\n_struct_asym.entity_id\n#\nA 1\nC 2\n#\n",
		"loop_\n_atom_site.group_PDB\n_atom_site.id\n",
		"_software.name             foldprep\n_software.classification   'model building'\n#\n",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document lacks %q\n%s", want, doc)
		}
	}
	if !strings.HasSuffix(doc, "1 'Structure model' 1 0 1971-01-01\n#\n") {
		t.Fatalf("revision stamp not last:\n%s", doc)
	}

	// Same input, same bytes.
	var again bytes.Buffer
	if code := cifapp.Run([]string{"--extra-table", extra, "-q", pdbPath}, &again, &errBuf); code != 0 || again.String() != doc {
		t.Fatalf("second run differs (exit %d)", code)
	}
}

func TestCIF_OutDirAndGzip(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.pdb", samplePDB())
	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, _ = gw.Write([]byte(samplePDB()))
	_ = gw.Close()
	write(t, dir, "b.pdb.gz", gz.String())
	outDir := filepath.Join(dir, "cif")
	metricsPath := filepath.Join(dir, "metrics.prom")

	var out, errBuf bytes.Buffer
	code := cifapp.Run([]string{"--out-dir", outDir, "--metrics-file", metricsPath, "-q", filepath.Join(dir, "*.pdb*")}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errBuf.String())
	}
	if out.Len() != 0 {
		t.Fatalf("stdout not empty: %q", out.String())
	}
	a, errA := os.ReadFile(filepath.Join(outDir, "a.cif"))
	b, errB := os.ReadFile(filepath.Join(outDir, "b.cif"))
	if errA != nil || errB != nil {
		t.Fatalf("outputs missing: %v %v", errA, errB)
	}
	if !strings.HasPrefix(string(a), "data_a\n") || !strings.HasPrefix(string(b), "data_b\n") {
		t.Fatalf("block ids: %q / %q", string(a)[:8], string(b)[:8])
	}
	m, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(m), `foldprep_documents_written_total{format="mmcif"} 2`) {
		t.Fatalf("metrics:\n%s", m)
	}
}

func TestCIF_Errors(t *testing.T) {
	dir := t.TempDir()
	pdbPath := write(t, dir, "x.pdb", samplePDB())
	badTable := write(t, dir, "bad.yaml", "bad_key_no_dot: 1\n")
	outPath := filepath.Join(dir, "x.cif")

	var out, errBuf bytes.Buffer
	if code := cifapp.Run([]string{"--extra-table", badTable, "-o", outPath, pdbPath}, &out, &errBuf); code != 2 {
		t.Fatalf("bad table: exit %d", code)
	}
	if !strings.Contains(errBuf.String(), "malformed-key") {
		t.Fatalf("stderr lacks code: %s", errBuf.String())
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Fatalf("output written despite error: %v", err)
	}

	errBuf.Reset()
	if code := cifapp.Run([]string{filepath.Join(dir, "missing.pdb")}, &out, &errBuf); code != 2 {
		t.Fatalf("missing input: exit %d", code)
	}
	if code := cifapp.Run([]string{"a.pdb", "b.pdb"}, &out, &errBuf); code != 2 {
		t.Fatalf("two inputs without --out-dir: exit %d", code)
	}
	if code := cifapp.Run([]string{"--nope"}, &out, &errBuf); code != 2 {
		t.Fatalf("unknown flag: exit %d", code)
	}
}

func TestCIF_HelpAndVersion(t *testing.T) {
	var out, errBuf bytes.Buffer
	if code := cifapp.Run([]string{"-h"}, &out, &errBuf); code != 0 || !strings.Contains(out.String(), "Usage:") {
		t.Fatalf("help: exit %d out=%q", code, out.String())
	}
	out.Reset()
	if code := cifapp.Run([]string{"--version"}, &out, &errBuf); code != 0 || !strings.HasPrefix(out.String(), "foldprep-cif version ") {
		t.Fatalf("version: exit %d out=%q", code, out.String())
	}
	out.Reset()
	if code := cifapp.Run([]string{"--examples"}, &out, &errBuf); code != 0 || !strings.Contains(out.String(), "quickstart") {
		t.Fatalf("examples: exit %d out=%q", code, out.String())
	}
}
