package af3

import (
	"strconv"

	"foldprep/internal/chainid"
	"foldprep/internal/errs"
	"foldprep/pkg/api"
)

// Request is the input of Assemble. Sequences, Copies, Unpaired and Paired
// are parallel; Unpaired and Paired may be nil, meaning no alignments.
type Request struct {
	Name      string
	Sequences []string
	Copies    []int
	Unpaired  []string
	Paired    []string
	Extras    []Molecule
}

// Assemble allocates chain identifiers for every protein copy, then for the
// merged extra molecules, and returns the complete input record.
func Assemble(req Request) (api.InputV2, error) {
	n := len(req.Sequences)
	if len(req.Copies) != n {
		return api.InputV2{}, errs.New(errs.MismatchedInputs, "copies", "%d copy counts for %d sequences", len(req.Copies), n)
	}
	for _, p := range []struct {
		name string
		msas []string
	}{{"unpaired", req.Unpaired}, {"paired", req.Paired}} {
		if p.msas != nil && len(p.msas) != n {
			return api.InputV2{}, errs.New(errs.MismatchedInputs, p.name, "%d %s alignments for %d sequences", len(p.msas), p.name, n)
		}
	}

	var ids chainid.Counter
	seqs := make([]api.Entity, 0, n+len(req.Extras))
	for i, seq := range req.Sequences {
		chains, err := ids.Next(req.Copies[i])
		if err != nil {
			return api.InputV2{}, annotate(err, "sequence "+strconv.Itoa(i+1))
		}
		seqs = append(seqs, api.Entity{Protein: &api.Protein{
			ID:            chains,
			Sequence:      seq,
			Modifications: []api.Modification{},
			Templates:     []api.Template{},
			UnpairedMSA:   api.MSA{Text: at(req.Unpaired, i)},
			PairedMSA:     api.MSA{Text: at(req.Paired, i)},
		}})
	}

	merged, err := Merge(req.Extras)
	if err != nil {
		return api.InputV2{}, err
	}
	for _, m := range merged {
		chains, err := ids.Next(m.Copies)
		if err != nil {
			return api.InputV2{}, annotate(err, m.Kind.Code()+":"+m.Sequence)
		}
		seqs = append(seqs, entity(m, chains))
	}

	return api.InputV2{
		Dialect:    api.Dialect,
		Version:    api.InputVersion,
		Name:       req.Name,
		Sequences:  seqs,
		ModelSeeds: []int{1},
	}, nil
}

// Merge deduplicates extras by (kind, sequence), summing copies. Classes
// (rna, dna, ligand) keep their first-seen order and members keep insertion
// order within a class.
func Merge(extras []Molecule) ([]Molecule, error) {
	type key struct {
		kind Kind
		seq  string
	}
	var (
		classes []string
		members = map[string][]key{}
		copies  = map[key]int{}
	)
	for _, m := range extras {
		if m.Copies < 1 {
			return nil, errs.New(errs.InvalidCopyCount, m.Sequence, "copy count must be positive, got %d", m.Copies)
		}
		if m.Sequence == "" {
			return nil, errs.New(errs.InvalidInput, m.Kind.Code(), "%s molecule needs a sequence", m.Kind.Code())
		}
		c := m.Kind.Class()
		if _, seen := members[c]; !seen {
			classes = append(classes, c)
		}
		k := key{m.Kind, m.Sequence}
		if _, seen := copies[k]; !seen {
			members[c] = append(members[c], k)
		}
		copies[k] += m.Copies
	}
	out := make([]Molecule, 0, len(copies))
	for _, c := range classes {
		for _, k := range members[c] {
			out = append(out, Molecule{Kind: k.kind, Sequence: k.seq, Copies: copies[k]})
		}
	}
	return out, nil
}

func entity(m Molecule, chains []string) api.Entity {
	switch m.Kind {
	case RNA:
		return api.Entity{RNA: &api.NucleicAcid{ID: chains, Sequence: m.Sequence, UnpairedMSA: &api.MSA{Compute: true}}}
	case DNA:
		return api.Entity{DNA: &api.NucleicAcid{ID: chains, Sequence: m.Sequence}}
	case CCD:
		return api.Entity{Ligand: &api.Ligand{ID: chains, CCDCodes: []string{m.Sequence}}}
	case SMILES:
		return api.Entity{Ligand: &api.Ligand{ID: chains, SMILES: m.Sequence}}
	}
	return api.Entity{Protein: &api.Protein{
		ID:            chains,
		Sequence:      m.Sequence,
		Modifications: []api.Modification{},
		Templates:     []api.Template{},
	}}
}

func at(s []string, i int) string {
	if s == nil {
		return ""
	}
	return s[i]
}

func annotate(err error, subject string) error {
	if e, ok := err.(*errs.Error); ok {
		return &errs.Error{Code: e.Code, Subject: subject, Message: e.Message}
	}
	return err
}

// Summary counts entity blocks per class and allocated chain identifiers.
type Summary struct {
	Entities map[string]int
	Chains   int
}

// Summarize inspects an assembled record.
func Summarize(in api.InputV2) Summary {
	s := Summary{Entities: map[string]int{}}
	for _, e := range in.Sequences {
		switch {
		case e.Protein != nil:
			s.Entities["protein"]++
			s.Chains += len(e.Protein.ID)
		case e.RNA != nil:
			s.Entities["rna"]++
			s.Chains += len(e.RNA.ID)
		case e.DNA != nil:
			s.Entities["dna"]++
			s.Chains += len(e.DNA.ID)
		case e.Ligand != nil:
			s.Entities["ligand"]++
			s.Chains += len(e.Ligand.ID)
		}
	}
	return s
}
