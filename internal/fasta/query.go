package fasta

import "strings"

// ChainSeparator splits a complex query into its chains.
const ChainSeparator = ":"

// Chains splits a query sequence on ':' and returns the distinct upper-cased
// chains in first-seen order with how often each occurred. Empty pieces are
// dropped.
func Chains(seq string) (chains []string, copies []int) {
	index := map[string]int{}
	for _, part := range strings.Split(seq, ChainSeparator) {
		part = strings.ToUpper(strings.Join(strings.Fields(part), ""))
		if part == "" {
			continue
		}
		if i, ok := index[part]; ok {
			copies[i]++
			continue
		}
		index[part] = len(chains)
		chains = append(chains, part)
		copies = append(copies, 1)
	}
	return chains, copies
}
