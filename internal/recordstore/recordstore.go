// Package recordstore materializes tokenized records as the parallel
// sorted u32 arrays the join operates on: for each record, its token ranks
// and originating field indices, sorted ascending by rank.
package recordstore

import (
	"sort"

	"github.com/entitymatch/debugblocker/internal/tokenize"
	"github.com/entitymatch/debugblocker/internal/vocab"
)

// Records is one table's worth of rank-sorted token/field arrays.
// Invariant: len(Tokens[i]) == len(Fields[i]) and Tokens[i] is strictly
// increasing for every i (token suffixing upstream guarantees distinct
// token strings within a record, hence distinct ranks).
type Records struct {
	Tokens [][]uint32
	Fields [][]uint32
}

// NumRecords returns the number of records held.
func (r Records) NumRecords() int { return len(r.Tokens) }

// Build replaces each (token, field) occurrence with (rank, field) via
// order, then sorts each record ascending by rank.
func Build(occurrences [][]tokenize.Occurrence, order *vocab.Order) Records {
	n := len(occurrences)
	out := Records{Tokens: make([][]uint32, n), Fields: make([][]uint32, n)}

	for i, occ := range occurrences {
		ranks := make([]uint32, 0, len(occ))
		fields := make([]uint32, 0, len(occ))
		for _, o := range occ {
			rank, ok := order.Rank(o.Token)
			if !ok {
				continue
			}
			ranks = append(ranks, rank)
			fields = append(fields, o.Field)
		}

		idx := make([]int, len(ranks))
		for j := range idx {
			idx[j] = j
		}
		sort.Slice(idx, func(a, b int) bool { return ranks[idx[a]] < ranks[idx[b]] })

		sortedTokens := make([]uint32, len(ranks))
		sortedFields := make([]uint32, len(fields))
		for pos, j := range idx {
			sortedTokens[pos] = ranks[j]
			sortedFields[pos] = fields[j]
		}
		out.Tokens[i] = sortedTokens
		out.Fields[i] = sortedFields
	}
	return out
}

// FieldTotals sums, per field index, the number of token occurrences
// across every record — the raw material the configuration generator
// uses to size per-field budgets.
func FieldTotals(r Records, numFields int) []int64 {
	totals := make([]int64, numFields)
	for _, fields := range r.Fields {
		for _, f := range fields {
			if int(f) < numFields {
				totals[f]++
			}
		}
	}
	return totals
}
