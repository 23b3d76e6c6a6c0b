// Package vocab builds the global token order: a bijection between token
// strings and dense ranks, sorted by ascending (frequency, lexical order).
package vocab

import (
	"sort"

	"github.com/entitymatch/debugblocker/internal/tokenize"
)

// Order maps a token string to its dense u32 rank.
type Order struct {
	rank map[string]uint32
	size int
}

// Size returns the vocabulary size (number of distinct tokens).
func (o *Order) Size() int { return o.size }

// Rank looks up a token's rank. ok is false if the token was never seen
// while building the order.
func (o *Order) Rank(token string) (rank uint32, ok bool) {
	r, ok := o.rank[token]
	return r, ok
}

// Build accumulates occurrence counts across every record of both tables
// (each occurrence within a record counts toward its token's frequency)
// and assigns ranks in ascending (frequency, token string) order.
func Build(sides ...[][]tokenize.Occurrence) *Order {
	freq := make(map[string]int)
	for _, records := range sides {
		for _, occ := range records {
			for _, o := range occ {
				freq[o.Token]++
			}
		}
	}

	tokens := make([]string, 0, len(freq))
	for t := range freq {
		tokens = append(tokens, t)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if freq[tokens[i]] != freq[tokens[j]] {
			return freq[tokens[i]] < freq[tokens[j]]
		}
		return tokens[i] < tokens[j]
	})

	rank := make(map[string]uint32, len(tokens))
	for i, t := range tokens {
		rank[t] = uint32(i)
	}
	return &Order{rank: rank, size: len(tokens)}
}
