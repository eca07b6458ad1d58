package cif

import (
	"strconv"
	"strings"

	"foldprep/internal/chainid"
	"foldprep/internal/structure"
)

// AtomSiteTable fills a table with one _atom_site row per atom of s and sets
// the data block identifier from s.ID.
//
// Atoms are numbered from 1 within each model. label_seq_id counts polymer
// residues per chain and is "." for hetero residues. label_asym_id follows a
// per-model entity counter that advances whenever the record type changes or
// a new hetero residue name starts.
func AtomSiteTable(s *structure.Structure) *Table {
	t := NewTable()
	for _, m := range s.Models {
		modelNum := strconv.Itoa(m.Serial)
		if m.Serial == 0 {
			modelNum = "1"
		}
		entity := 0
		serial := 1
		for _, c := range m.Chains {
			chain := c.ID
			if strings.TrimSpace(chain) == "" {
				chain = "."
			}
			seq := 1
			prevType, prevName := "", ""
			for _, r := range c.Residues {
				group, labelSeq := "ATOM", strconv.Itoa(seq)
				if r.Hetero {
					group, labelSeq = "HETATM", "."
				} else {
					seq++
				}
				if group != prevType || (r.Hetero && r.Name != prevName) {
					entity++
				}
				prevType, prevName = group, r.Name
				asym, _ := chainid.Allocate(entity)

				icode := strings.TrimSpace(r.ICode)
				if icode == "" {
					icode = "?"
				}
				for _, a := range r.Atoms {
					t.Append("_atom_site.group_PDB", group)
					t.Append("_atom_site.id", strconv.Itoa(serial))
					serial++
					t.Append("_atom_site.type_symbol", orDefault(a.Element, "?"))
					t.Append("_atom_site.label_atom_id", strings.TrimSpace(a.Name))
					t.Append("_atom_site.label_alt_id", orDefault(a.AltLoc, "."))
					t.Append("_atom_site.label_comp_id", strings.TrimSpace(r.Name))
					t.Append("_atom_site.label_asym_id", asym)
					t.Append("_atom_site.label_entity_id", "?")
					t.Append("_atom_site.label_seq_id", labelSeq)
					t.Append("_atom_site.pdbx_PDB_ins_code", icode)
					t.Append("_atom_site.Cartn_x", strconv.FormatFloat(a.X, 'f', 3, 64))
					t.Append("_atom_site.Cartn_y", strconv.FormatFloat(a.Y, 'f', 3, 64))
					t.Append("_atom_site.Cartn_z", strconv.FormatFloat(a.Z, 'f', 3, 64))
					t.Append("_atom_site.occupancy", decimal(a.Occupancy))
					t.Append("_atom_site.B_iso_or_equiv", decimal(a.BFactor))
					t.Append("_atom_site.auth_seq_id", strconv.Itoa(r.SeqNum))
					t.Append("_atom_site.auth_asym_id", chain)
					t.Append("_atom_site.pdbx_PDB_model_num", modelNum)
				}
			}
		}
	}
	t.SetID(BlockID(s.ID))
	return t
}

// BlockID strips characters that cannot appear in a data_ block name.
func BlockID(id string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '#', '$', '\'', '"', '[', ']', ' ', '\t', '\n':
			return -1
		}
		return r
	}, id)
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

// decimal renders the shortest representation with at least one fractional
// digit: 1 -> "1.0", 23.45 -> "23.45".
func decimal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	return s
}
