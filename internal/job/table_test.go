package job

import (
	"errors"
	"strings"
	"testing"

	"foldprep/internal/errs"
)

func TestParseTable(t *testing.T) {
	tbl, err := ParseTable([]byte(`
data_: override
_software.name: foldprep
_software.version: 1.50
_citation.title: ~
_audit_author.name:
  - Smith, J.
  - Doe, A.
`))
	if err != nil {
		t.Fatal(err)
	}
	if tbl.ID() != "override" {
		t.Fatalf("id = %q", tbl.ID())
	}
	if keys := strings.Join(tbl.Keys(), " "); keys != "_software.name _software.version _citation.title _audit_author.name" {
		t.Fatalf("keys = %s", keys)
	}
	if v, _ := tbl.Get("_software.version"); v.At(0) != "1.50" {
		t.Fatalf("version = %q", v.At(0))
	}
	if v, _ := tbl.Get("_citation.title"); v.At(0) != "?" {
		t.Fatalf("null = %q", v.At(0))
	}
	if v, _ := tbl.Get("_audit_author.name"); !v.IsColumn() || v.Len() != 2 || v.At(0) != "Smith, J." {
		t.Fatalf("authors = %v", v.Strings())
	}
}

func TestParseTable_Errors(t *testing.T) {
	for doc, want := range map[string]errs.Code{
		"- a\n- b\n":           errs.InvalidInput,
		"_a.b:\n  nested: 1\n": errs.UnsupportedValueShape,
		"_a.b:\n  - [1, 2]\n":  errs.UnsupportedValueShape,
		"no_dot_key: 1\n":      errs.MalformedKey,
	} {
		if _, err := ParseTable([]byte(doc)); !errors.Is(err, want) {
			t.Errorf("%q: err = %v, want %s", doc, err, want)
		}
	}
}
