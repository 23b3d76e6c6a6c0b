// Package executor runs every configuration's join concurrently and
// merges the resulting per-configuration heaps into one final top-K list.
package executor

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/entitymatch/debugblocker/internal/candset"
	"github.com/entitymatch/debugblocker/internal/join"
	"github.com/entitymatch/debugblocker/internal/planner"
	"github.com/entitymatch/debugblocker/internal/recordstore"
)

// pairKey identifies a (l_idx, r_idx) pair for merge deduplication.
type pairKey struct {
	l, r uint32
}

// Run evaluates configs in parallel over l and r, bounded to numWorkers
// concurrent configurations, then merges every worker's heap into a
// single top-K list: duplicates on (l_idx, r_idx) keep the maximum sim,
// and the result is sorted descending by sim, then ascending l_idx, then
// ascending r_idx, truncated to k.
func Run(ctx context.Context, configs []planner.Config, l, r recordstore.Records, excl candset.Index, k, numWorkers int) ([]join.Entry, error) {
	results := make([][]join.Entry, len(configs))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)
	for i, cfg := range configs {
		i, cfg := i, cfg
		g.Go(func() error {
			results[i] = join.Run(cfg, l, r, excl, k)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := make(map[pairKey]float64)
	for _, entries := range results {
		for _, e := range entries {
			key := pairKey{e.LIdx, e.RIdx}
			if cur, ok := best[key]; !ok || e.Sim > cur {
				best[key] = e.Sim
			}
		}
	}

	merged := make([]join.Entry, 0, len(best))
	for key, sim := range best {
		merged = append(merged, join.Entry{Sim: sim, LIdx: key.l, RIdx: key.r})
	}

	sort.Slice(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a.Sim != b.Sim {
			return a.Sim > b.Sim
		}
		if a.LIdx != b.LIdx {
			return a.LIdx < b.LIdx
		}
		return a.RIdx < b.RIdx
	})

	if len(merged) > k {
		merged = merged[:k]
	}
	return merged, nil
}
