// Package af3 builds AlphaFold 3 input records from molecule descriptors.
package af3

import (
	"strings"

	"foldprep/internal/errs"
)

// Kind is the closed set of molecule variants.
type Kind int

const (
	Protein Kind = iota
	RNA
	DNA
	CCD
	SMILES
)

// Code is the token used on the command line and in job files.
func (k Kind) Code() string {
	switch k {
	case Protein:
		return "PROTEIN"
	case RNA:
		return "RNA"
	case DNA:
		return "DNA"
	case CCD:
		return "CCD"
	case SMILES:
		return "SMILES"
	}
	return "UNKNOWN"
}

func (k Kind) String() string { return k.Code() }

// Class is the tag of the entity block in the input record. CCD and SMILES
// share "ligand"; extras are deduplicated and ordered per class.
func (k Kind) Class() string {
	switch k {
	case Protein:
		return "protein"
	case RNA:
		return "rna"
	case DNA:
		return "dna"
	default:
		return "ligand"
	}
}

// extraKinds are the kinds accepted as extra molecules; proteins come in
// through the polymer inputs only.
var extraKinds = map[string]Kind{
	"RNA":    RNA,
	"DNA":    DNA,
	"CCD":    CCD,
	"SMILES": SMILES,
}

// ParseKind matches an extra-molecule token case-insensitively.
func ParseKind(token string) (Kind, error) {
	k, ok := extraKinds[strings.ToUpper(strings.TrimSpace(token))]
	if !ok {
		return 0, errs.New(errs.UnknownMoleculeType, token, "molecule type must be one of RNA, DNA, CCD, SMILES")
	}
	return k, nil
}

// Molecule is one extra (non-protein) descriptor.
type Molecule struct {
	Kind     Kind
	Sequence string
	Copies   int
}

// NewMolecule validates token, sequence and copies at construction time.
func NewMolecule(token, sequence string, copies int) (Molecule, error) {
	k, err := ParseKind(token)
	if err != nil {
		return Molecule{}, err
	}
	if strings.TrimSpace(sequence) == "" {
		return Molecule{}, errs.New(errs.InvalidInput, k.Code(), "%s molecule needs a sequence", k.Code())
	}
	if copies < 1 {
		return Molecule{}, errs.New(errs.InvalidCopyCount, sequence, "copy count must be positive, got %d", copies)
	}
	return Molecule{Kind: k, Sequence: sequence, Copies: copies}, nil
}
