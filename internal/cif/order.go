package cif

import "sort"

// FieldOrder maps a category name to its canonical field order.
type FieldOrder map[string][]string

// DefaultFieldOrder is the canonical order for the categories the writer knows.
var DefaultFieldOrder = FieldOrder{
	"_atom_site": {
		"group_PDB",
		"id",
		"type_symbol",
		"label_atom_id",
		"label_alt_id",
		"label_comp_id",
		"label_asym_id",
		"label_entity_id",
		"label_seq_id",
		"pdbx_PDB_ins_code",
		"Cartn_x",
		"Cartn_y",
		"Cartn_z",
		"occupancy",
		"B_iso_or_equiv",
		"pdbx_formal_charge",
		"auth_seq_id",
		"auth_comp_id",
		"auth_asym_id",
		"auth_atom_id",
		"pdbx_PDB_model_num",
	},
}

// With returns a copy of o with category's order replaced.
func (o FieldOrder) With(category string, fields ...string) FieldOrder {
	out := make(FieldOrder, len(o)+1)
	for k, v := range o {
		out[k] = v
	}
	out[category] = append([]string(nil), fields...)
	return out
}

// Apply reorders c.Fields by the registered order. Unregistered fields go
// after all registered ones and keep their relative order.
func (o FieldOrder) Apply(c *Category) {
	want, ok := o[c.Name]
	if !ok {
		return
	}
	rank := make(map[string]int, len(want))
	for i, f := range want {
		rank[f] = i
	}
	pos := func(f Field) int {
		if r, ok := rank[f.Name]; ok {
			return r
		}
		return len(want)
	}
	sort.SliceStable(c.Fields, func(i, j int) bool { return pos(c.Fields[i]) < pos(c.Fields[j]) })
}
