package job

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"foldprep/internal/af3"
	"foldprep/internal/errs"
	"foldprep/internal/fileio"
)

// ParseMolecule reads TYPE:SEQUENCE[:COPIES]. A trailing ":N" is taken as the
// copy count only when N is an integer, so aromatic SMILES bonds survive.
func ParseMolecule(spec string) (af3.Molecule, error) {
	typ, rest, ok := strings.Cut(spec, ":")
	if !ok || rest == "" {
		return af3.Molecule{}, errs.New(errs.InvalidInput, spec, "molecule must be TYPE:SEQUENCE[:COPIES]")
	}
	copies := 1
	if i := strings.LastIndexByte(rest, ':'); i >= 0 {
		if n, err := strconv.Atoi(rest[i+1:]); err == nil {
			copies = n
			rest = rest[:i]
		}
	}
	return af3.NewMolecule(typ, rest, copies)
}

// ParseMolecules applies ParseMolecule to every spec.
func ParseMolecules(specs []string) ([]af3.Molecule, error) {
	out := make([]af3.Molecule, 0, len(specs))
	for _, s := range specs {
		m, err := ParseMolecule(s)
		if err != nil {
			return nil, fmt.Errorf("--molecule %q: %w", s, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// LoadMoleculesTSV reads whitespace-separated "type sequence [copies]" rows.
// Blank lines and lines starting with '#' are skipped.
func LoadMoleculesTSV(ctx context.Context, path string) ([]af3.Molecule, error) {
	rc, err := fileio.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var out []af3.Molecule
	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	ln := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 2 || len(f) > 3 {
			return nil, fmt.Errorf("%s:%d: want 2 or 3 fields (type sequence [copies]), got %d", path, ln, len(f))
		}
		copies := 1
		if len(f) == 3 {
			if copies, err = strconv.Atoi(f[2]); err != nil {
				return nil, fmt.Errorf("%s:%d: bad copy count %q", path, ln, f[2])
			}
		}
		m, err := af3.NewMolecule(f[0], f[1], copies)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, ln, err)
		}
		out = append(out, m)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s:%d: %w", path, ln, err)
	}
	return out, nil
}
