// Package chainid maps 1-based ordinals to the letter codes used as chain
// identifiers in AF3 input records and as label_asym_id values in mmCIF.
package chainid

import (
	"strconv"

	"foldprep/internal/errs"
)

// Allocate returns the letter code for ordinal n (n >= 1).
//
// The ordinal is read as a bijective base-26 numeral over A-Z, but digits are
// emitted least significant first and never reversed: 1->A, 26->Z, 27->AA,
// 28->BA, 52->ZA. Existing documents depend on this order.
func Allocate(n int) (string, error) {
	if n <= 0 {
		return "", errs.New(errs.InvalidOrdinal, strconv.Itoa(n), "chain ordinal must be positive, got %d", n)
	}
	var buf [16]byte
	out := buf[:0]
	for i := n - 1; i >= 0; i = i/26 - 1 {
		out = append(out, byte('A'+i%26))
	}
	return string(out), nil
}

// Counter hands out contiguous runs of identifiers. The zero value starts at ordinal 1.
type Counter struct {
	used int
}

// Used reports how many identifiers have been handed out.
func (c *Counter) Used() int { return c.used }

// Next claims count consecutive identifiers following the last claimed one.
func (c *Counter) Next(count int) ([]string, error) {
	if count <= 0 {
		return nil, errs.New(errs.InvalidCopyCount, strconv.Itoa(count), "copy count must be positive, got %d", count)
	}
	ids := make([]string, 0, count)
	for j := 1; j <= count; j++ {
		id, err := Allocate(c.used + j)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	c.used += count
	return ids, nil
}
