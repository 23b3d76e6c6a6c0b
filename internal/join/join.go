// Package join implements the per-configuration top-K prefix-filtered
// similarity join: the algorithmic core of the system. Given one
// configuration, it builds an inverted index over R's signatures, probes
// it with each L signature, and maintains a bounded min-heap of the best
// (sim, l_idx, r_idx) triples seen.
package join

import (
	"container/heap"

	"github.com/entitymatch/debugblocker/internal/candset"
	"github.com/entitymatch/debugblocker/internal/planner"
	"github.com/entitymatch/debugblocker/internal/recordstore"
)

// Entry is one top-K heap entry.
type Entry struct {
	Sim  float64
	LIdx uint32
	RIdx uint32
}

// worse reports whether a is a worse match than b: lower similarity, or
// equal similarity and a larger l_idx, or equal similarity and l_idx and a
// larger r_idx. The worst entry under this ordering sits at the heap root
// so it is the first evicted when a strictly better candidate arrives.
func worse(a, b Entry) bool {
	if a.Sim != b.Sim {
		return a.Sim < b.Sim
	}
	if a.LIdx != b.LIdx {
		return a.LIdx > b.LIdx
	}
	return a.RIdx > b.RIdx
}

// topKHeap is a bounded min-heap (by worse) of at most K entries.
type topKHeap []Entry

func (h topKHeap) Len() int            { return len(h) }
func (h topKHeap) Less(i, j int) bool  { return worse(h[i], h[j]) }
func (h topKHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *topKHeap) Push(x interface{}) { *h = append(*h, x.(Entry)) }
func (h *topKHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

func (h *topKHeap) offer(e Entry, k int) {
	if h.Len() < k {
		heap.Push(h, e)
		return
	}
	if h.Len() == 0 {
		return
	}
	if worse((*h)[0], e) {
		(*h)[0] = e
		heap.Fix(h, 0)
	}
}

// Run evaluates one configuration against L and R's record stores and the
// candidate-set exclusion index, returning up to k entries in ascending
// heap order (the caller sorts the final merged result).
func Run(cfg planner.Config, l, r recordstore.Records, excl candset.Index, k int) []Entry {
	rSigs := make([][]uint32, r.NumRecords())
	for i := range rSigs {
		rSigs[i] = signature(r.Tokens[i], r.Fields[i], cfg)
	}

	inv := buildInvertedIndex(rSigs)

	h := make(topKHeap, 0, k)
	for li := 0; li < l.NumRecords(); li++ {
		lSig := signature(l.Tokens[li], l.Fields[li], cfg)
		if len(lSig) == 0 {
			continue
		}

		candidates := probe(inv, lSig)
		floor := 0.0
		if h.Len() >= k {
			floor = h[0].Sim
		}

		for _, ri := range candidates {
			if excl.Excludes(uint32(li), ri) {
				continue
			}
			rSig := rSigs[ri]
			if len(rSig) == 0 {
				continue
			}

			if h.Len() >= k {
				maxPossible := maxAttainableSim(len(lSig), len(rSig))
				if maxPossible <= floor {
					continue
				}
			}

			sim := jaccard(lSig, rSig)
			if sim <= 0 {
				continue
			}
			h.offer(Entry{Sim: sim, LIdx: uint32(li), RIdx: ri}, k)
			if h.Len() >= k {
				floor = h[0].Sim
			}
		}
	}
	return h
}

// signature restricts a rank-sorted record to the configuration's masked
// fields, truncated per-field to its budget. The result stays sorted
// ascending by rank since the input already is.
func signature(tokens, fields []uint32, cfg planner.Config) []uint32 {
	counts := make([]int, len(cfg.Mask))
	sig := make([]uint32, 0, len(tokens))
	for i, tok := range tokens {
		f := fields[i]
		if int(f) >= len(cfg.Mask) || !cfg.Mask[f] {
			continue
		}
		if counts[f] >= cfg.Budget[f] {
			continue
		}
		counts[f]++
		sig = append(sig, tok)
	}
	return sig
}

func buildInvertedIndex(sigs [][]uint32) map[uint32][]uint32 {
	inv := make(map[uint32][]uint32)
	for ri, sig := range sigs {
		for _, tok := range sig {
			inv[tok] = append(inv[tok], uint32(ri))
		}
	}
	return inv
}

func probe(inv map[uint32][]uint32, sig []uint32) []uint32 {
	seen := make(map[uint32]struct{})
	var out []uint32
	for _, tok := range sig {
		for _, ri := range inv[tok] {
			if _, ok := seen[ri]; ok {
				continue
			}
			seen[ri] = struct{}{}
			out = append(out, ri)
		}
	}
	return out
}

func maxAttainableSim(lenL, lenR int) float64 {
	if lenL == 0 || lenR == 0 {
		return 0
	}
	minLen, maxLen := lenL, lenR
	if minLen > maxLen {
		minLen, maxLen = maxLen, minLen
	}
	return float64(minLen) / float64(maxLen)
}

// jaccard computes |sigL ∩ sigR| / (|sigL| + |sigR| - |∩|) via a linear
// merge-walk over both rank-sorted signatures.
func jaccard(sigL, sigR []uint32) float64 {
	i, j, inter := 0, 0, 0
	for i < len(sigL) && j < len(sigR) {
		switch {
		case sigL[i] == sigR[j]:
			inter++
			i++
			j++
		case sigL[i] < sigR[j]:
			i++
		default:
			j++
		}
	}
	union := len(sigL) + len(sigR) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
