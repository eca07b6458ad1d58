// Package pdb reads coordinate records from PDB-format files into a
// structure.Structure.
//
// Only ATOM, HETATM, MODEL, ENDMDL and END records are interpreted; every
// other record is skipped.
package pdb

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"foldprep/internal/fileio"
	"foldprep/internal/structure"
)

// ReadFile parses path ("-" for stdin, gzip accepted). When id is empty the
// file name without extensions is used.
func ReadFile(path, id string) (*structure.Structure, error) {
	rc, err := fileio.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	if id == "" {
		id = StemID(path)
	}
	s, err := Read(rc, id)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", path, err)
	}
	return s, nil
}

// StemID is the base name of path with every extension removed ("model.pdb.gz" -> "model").
func StemID(path string) string {
	if path == "-" {
		return "stdin"
	}
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}

type builder struct {
	s      *structure.Structure
	model  *structure.Model
	chains map[string]int
}

func (b *builder) startModel(serial int) {
	b.s.Models = append(b.s.Models, structure.Model{Serial: serial})
	b.model = &b.s.Models[len(b.s.Models)-1]
	b.chains = map[string]int{}
}

func (b *builder) chain(id string) *structure.Chain {
	if b.model == nil {
		b.startModel(0)
	}
	i, ok := b.chains[id]
	if !ok {
		i = len(b.model.Chains)
		b.chains[id] = i
		b.model.Chains = append(b.model.Chains, structure.Chain{ID: id})
	}
	return &b.model.Chains[i]
}

// Read parses PDB records from r. Errors carry the 1-based line number.
func Read(r io.Reader, id string) (*structure.Structure, error) {
	b := &builder{s: &structure.Structure{ID: id}}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	ln := 0
	for sc.Scan() {
		ln++
		line := sc.Text()
		switch record(line) {
		case "MODEL":
			serial, err := strconv.Atoi(col(line, 10, 14))
			if err != nil {
				serial, err = strconv.Atoi(strings.TrimSpace(line[5:]))
			}
			if err != nil {
				return nil, fmt.Errorf("%d: bad MODEL serial", ln)
			}
			b.startModel(serial)
		case "ENDMDL":
			b.model = nil
		case "END":
			return b.s, sc.Err()
		case "ATOM", "HETATM":
			if err := b.atom(line); err != nil {
				return nil, fmt.Errorf("%d: %w", ln, err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%d: %w", ln, err)
	}
	return b.s, nil
}

func (b *builder) atom(line string) error {
	hetero := record(line) == "HETATM"
	resName := col(line, 17, 20)
	seqNum, err := strconv.Atoi(col(line, 22, 26))
	if err != nil {
		return fmt.Errorf("bad residue number %q", col(line, 22, 26))
	}
	icode := col(line, 26, 27)

	var a structure.Atom
	if a.Serial, err = strconv.Atoi(col(line, 6, 11)); err != nil {
		return fmt.Errorf("bad atom serial %q", col(line, 6, 11))
	}
	a.Name = col(line, 12, 16)
	a.AltLoc = col(line, 16, 17)
	for _, c := range []struct {
		dst    *float64
		lo, hi int
		name   string
		def    float64
	}{
		{&a.X, 30, 38, "x", 0},
		{&a.Y, 38, 46, "y", 0},
		{&a.Z, 46, 54, "z", 0},
		{&a.Occupancy, 54, 60, "occupancy", 1},
		{&a.BFactor, 60, 66, "B-factor", 0},
	} {
		raw := col(line, c.lo, c.hi)
		if raw == "" && c.lo >= 54 {
			*c.dst = c.def
			continue
		}
		if *c.dst, err = strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Errorf("bad %s %q", c.name, raw)
		}
	}
	a.Element = col(line, 76, 78)
	if a.Element == "" {
		a.Element = guessElement(rawCol(line, 12, 16))
	}

	ch := b.chain(col(line, 21, 22))
	n := len(ch.Residues)
	if n == 0 || !sameResidue(ch.Residues[n-1], resName, seqNum, icode, hetero) {
		ch.Residues = append(ch.Residues, structure.Residue{Name: resName, Hetero: hetero, SeqNum: seqNum, ICode: icode})
		n++
	}
	ch.Residues[n-1].Atoms = append(ch.Residues[n-1].Atoms, a)
	return nil
}

func sameResidue(r structure.Residue, name string, seq int, icode string, hetero bool) bool {
	return r.Name == name && r.SeqNum == seq && r.ICode == icode && r.Hetero == hetero
}

func record(line string) string { return col(line, 0, 6) }

// rawCol returns line[lo:hi] clipped to the line length.
func rawCol(line string, lo, hi int) string {
	if lo >= len(line) {
		return ""
	}
	if hi > len(line) {
		hi = len(line)
	}
	return line[lo:hi]
}

func col(line string, lo, hi int) string { return strings.TrimSpace(rawCol(line, lo, hi)) }

// guessElement derives the element from the 4-column atom name: names that
// start in column 14 (leading blank or digit) are single-letter elements.
func guessElement(name string) string {
	if name == "" {
		return ""
	}
	if name[0] == ' ' || (name[0] >= '0' && name[0] <= '9') {
		rest := strings.TrimLeft(name, " 0123456789")
		if rest == "" {
			return ""
		}
		return rest[:1]
	}
	if name[0] == 'H' {
		return "H"
	}
	return strings.TrimSpace(rawCol(name, 0, 2))
}
