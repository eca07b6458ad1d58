// Package structure is the read-only macromolecular model the mmCIF writer
// walks: models hold chains, chains hold residues, residues hold atoms.
package structure

// Structure is one coordinate entry.
type Structure struct {
	ID     string
	Models []Model
}

// Model is one conformer set. Serial 0 means the source had no MODEL records.
type Model struct {
	Serial int
	Chains []Chain
}

// Chain is identified by its author-facing label (PDB chain id).
type Chain struct {
	ID       string
	Residues []Residue
}

// Residue carries the name and the hetero flag used to split polymer from
// non-polymer content.
type Residue struct {
	Name   string
	Hetero bool
	SeqNum int
	ICode  string
	Atoms  []Atom
}

// Atom is one coordinate record.
type Atom struct {
	Serial    int
	Name      string
	Element   string
	AltLoc    string
	X, Y, Z   float64
	Occupancy float64
	BFactor   float64
}

// ChainCount is the number of chains across all models.
func (s *Structure) ChainCount() int {
	n := 0
	for _, m := range s.Models {
		n += len(m.Chains)
	}
	return n
}

// AtomCount is the number of atoms across all models.
func (s *Structure) AtomCount() int {
	n := 0
	for _, m := range s.Models {
		for _, c := range m.Chains {
			for _, r := range c.Residues {
				n += len(r.Atoms)
			}
		}
	}
	return n
}

// EachChain calls fn for every chain in model order with its 1-based
// position across the whole structure.
func (s *Structure) EachChain(fn func(pos int, c *Chain)) {
	pos := 1
	for mi := range s.Models {
		for ci := range s.Models[mi].Chains {
			fn(pos, &s.Models[mi].Chains[ci])
			pos++
		}
	}
}
