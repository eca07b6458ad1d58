// Package api holds the stable JSON wire types written by foldprep.
package api

import (
	"bytes"
	"encoding/json"
)

// Dialect and InputVersion identify the structure-prediction engine input
// format. Keep fields, names and types stable.
const (
	Dialect      = "alphafold3"
	InputVersion = 2
)

// InputV2 is one prediction job.
type InputV2 struct {
	Dialect         string           `json:"dialect"`
	Version         int              `json:"version"`
	Name            string           `json:"name"`
	Sequences       []Entity         `json:"sequences"`
	ModelSeeds      []int            `json:"modelSeeds"`
	BondedAtomPairs []BondedAtomPair `json:"bondedAtomPairs"` // nil -> null
	UserCCD         *string          `json:"userCCD"`
}

// Entity is a tagged block; exactly one member is set.
type Entity struct {
	Protein *Protein     `json:"protein,omitempty"`
	RNA     *NucleicAcid `json:"rna,omitempty"`
	DNA     *NucleicAcid `json:"dna,omitempty"`
	Ligand  *Ligand      `json:"ligand,omitempty"`
}

// Protein chain(s) sharing one sequence.
type Protein struct {
	ID            []string       `json:"id"`
	Sequence      string         `json:"sequence"`
	Modifications []Modification `json:"modifications"`
	Templates     []Template     `json:"templates"`
	UnpairedMSA   MSA            `json:"unpairedMsa"`
	PairedMSA     MSA            `json:"pairedMsa"`
}

// NucleicAcid is an RNA or DNA entity. DNA carries no alignment field.
type NucleicAcid struct {
	ID          []string `json:"id"`
	Sequence    string   `json:"sequence"`
	UnpairedMSA *MSA     `json:"unpairedMsa,omitempty"`
}

// Ligand is either a chemical component (CCDCodes) or a SMILES string.
type Ligand struct {
	ID       []string `json:"id"`
	CCDCodes []string `json:"ccdCodes,omitempty"`
	SMILES   string   `json:"smiles,omitempty"`
}

// Modification is a post-translational modification at a 1-based residue.
type Modification struct {
	PTMType     string `json:"ptmType"`
	PTMPosition int    `json:"ptmPosition"`
}

// Template is a structural template given as mmCIF text with the residue
// mapping between query and template.
type Template struct {
	MMCIF           string `json:"mmcif"`
	QueryIndices    []int  `json:"queryIndices"`
	TemplateIndices []int  `json:"templateIndices"`
}

// BondedAtomPair names two atoms as [entity id, residue number, atom name].
type BondedAtomPair [2][3]any

// MSA is an alignment payload. Compute renders as JSON null, asking the
// engine to run its own search; otherwise Text is written as a string and
// the empty string means "no search".
type MSA struct {
	Text    string
	Compute bool
}

// ComputeMSA is the "let the engine compute it" sentinel.
var ComputeMSA = MSA{Compute: true}

// MarshalJSON writes null for Compute and the text otherwise.
func (m MSA) MarshalJSON() ([]byte, error) {
	if m.Compute {
		return []byte("null"), nil
	}
	return json.Marshal(m.Text)
}

// UnmarshalJSON maps null to ComputeMSA and a string to Text.
func (m *MSA) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*m = ComputeMSA
		return nil
	}
	*m = MSA{}
	return json.Unmarshal(b, &m.Text)
}
