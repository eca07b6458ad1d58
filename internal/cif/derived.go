package cif

import (
	"bytes"
	"strconv"

	"foldprep/internal/structure"
)

// StandardResidues are the twenty standard amino acids registered in
// _chem_comp, in one-letter-code order.
var StandardResidues = []string{
	"ALA", "CYS", "ASP", "GLU", "PHE", "GLY", "HIS", "ILE", "LYS", "LEU",
	"MET", "ASN", "PRO", "GLN", "ARG", "SER", "THR", "VAL", "TRP", "TYR",
}

// RevisionHistory is the fixed audit stamp closing every model document.
const RevisionHistory = `loop_
_pdbx_audit_revision_history.ordinal
_pdbx_audit_revision_history.data_content_type
_pdbx_audit_revision_history.major_revision
_pdbx_audit_revision_history.minor_revision
_pdbx_audit_revision_history.revision_date
1 'Structure model' 1 0 1971-01-01
#
`

const (
	polySeqHeader = `loop_
_entity_poly_seq.entity_id
_entity_poly_seq.num
_entity_poly_seq.mon_id
_entity_poly_seq.hetero
#
`
	chemCompHeader = `loop_
_chem_comp.id
_chem_comp.type
#
`
	structAsymHeader = `loop_
_struct_asym.id
_struct_asym.entity_id
#
`
)

// NewModelWriter returns a writer that adds the categories structure
// prediction readers expect but the atom table does not carry: the polymer
// sequence, the chemical component registry, the asymmetric units and the
// revision stamp.
func NewModelWriter(s *structure.Structure, opts ...Option) *Writer {
	all := append([]Option{
		WithHead(PolySeq(s), ChemComp(), StructAsym(s)),
		WithTail(Revision()),
	}, opts...)
	return NewWriter(all...)
}

// PolySeq lists every non-hetero residue as (chain position, residue
// position, name, "n"). Chain positions count every chain across all models;
// hetero residues do not consume a residue position.
func PolySeq(s *structure.Structure) Hook {
	return func(buf *bytes.Buffer, _ *Table) error {
		buf.WriteString(polySeqHeader)
		s.EachChain(func(pos int, c *structure.Chain) {
			chain := strconv.Itoa(pos)
			num := 1
			for _, r := range c.Residues {
				if r.Hetero {
					continue
				}
				buf.WriteString(chain + " " + strconv.Itoa(num) + " " + r.Name + "  n\n")
				num++
			}
		})
		buf.WriteString(Separator)
		return nil
	}
}

// ChemComp registers the standard residues as peptide-linking components.
func ChemComp() Hook {
	return func(buf *bytes.Buffer, _ *Table) error {
		buf.WriteString(chemCompHeader)
		for _, three := range StandardResidues {
			buf.WriteString(three + " \"peptide linking\"\n")
		}
		buf.WriteString(Separator)
		return nil
	}
}

// StructAsym pairs each chain's internal label with its 1-based position.
// Labels come from the table's _atom_site auth_asym_id/label_asym_id columns;
// chains without a label are skipped but still consume a position.
func StructAsym(s *structure.Structure) Hook {
	return func(buf *bytes.Buffer, t *Table) error {
		labels := AsymLabels(t)
		buf.WriteString(structAsymHeader)
		s.EachChain(func(pos int, c *structure.Chain) {
			if label, ok := labels[c.ID]; ok {
				buf.WriteString(label + " " + strconv.Itoa(pos) + "\n")
			}
		})
		buf.WriteString(Separator)
		return nil
	}
}

// Revision writes RevisionHistory verbatim.
func Revision() Hook {
	return func(buf *bytes.Buffer, _ *Table) error {
		buf.WriteString(RevisionHistory)
		return nil
	}
}

// AsymLabels maps author chain ids to internal asym ids using the paired
// _atom_site columns. Later rows win when an author id maps to several labels.
func AsymLabels(t *Table) map[string]string {
	auth, ok1 := t.Get("_atom_site.auth_asym_id")
	label, ok2 := t.Get("_atom_site.label_asym_id")
	out := map[string]string{}
	if !ok1 || !ok2 || !auth.Valid() || !label.Valid() {
		return out
	}
	n := min(auth.Len(), label.Len())
	for i := 0; i < n; i++ {
		out[auth.At(i)] = label.At(i)
	}
	return out
}
