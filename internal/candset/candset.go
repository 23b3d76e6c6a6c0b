// Package candset builds the exclusion index used to suppress pairs the
// blocker already accepted, re-indexed from table keys to record indices.
package candset

import (
	"github.com/entitymatch/debugblocker/pkg/debugblocker/table"
)

// Index is a left record index -> set of excluded right record indices.
type Index map[uint32]map[uint32]struct{}

// Excludes reports whether (l, r) is already present in the candidate set.
func (idx Index) Excludes(l, r uint32) bool {
	rs, ok := idx[l]
	if !ok {
		return false
	}
	_, ok = rs[r]
	return ok
}

// Build re-indexes cs's (fk_l, fk_r) key pairs against l and r's key
// columns. Pairs whose keys are absent from either table are silently
// dropped.
func Build(cs table.CandidateSet, l, r table.Table) Index {
	lKeyIdx := keyToIndex(l)
	rKeyIdx := keyToIndex(r)

	idx := make(Index)
	for _, p := range cs.Pairs() {
		li, ok := lKeyIdx[p.LKey]
		if !ok {
			continue
		}
		ri, ok := rKeyIdx[p.RKey]
		if !ok {
			continue
		}
		rs, ok := idx[li]
		if !ok {
			rs = make(map[uint32]struct{})
			idx[li] = rs
		}
		rs[ri] = struct{}{}
	}
	return idx
}

// keyToIndex builds a key-value -> record-index map over t's key column.
func keyToIndex(t table.Table) map[string]uint32 {
	keyCol := -1
	for i, c := range t.Columns() {
		if c == t.KeyColumn() {
			keyCol = i
			break
		}
	}
	m := make(map[string]uint32, t.NumRecords())
	if keyCol < 0 {
		return m
	}
	for i := 0; i < t.NumRecords(); i++ {
		v, isNull := t.Cell(i, keyCol)
		if isNull {
			continue
		}
		m[v] = uint32(i)
	}
	return m
}
