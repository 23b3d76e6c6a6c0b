// Package features scores each aligned column pair by a uniqueness/density
// measure and picks up to eight non-key columns for tokenization.
package features

import (
	"fmt"
	"sort"

	"github.com/entitymatch/debugblocker/internal/corres"
	"github.com/entitymatch/debugblocker/internal/tablenorm"
	"github.com/entitymatch/debugblocker/pkg/debugblocker/internalerr"
	"github.com/entitymatch/debugblocker/pkg/debugblocker/table"
)

// UpperBound is the maximum number of fields selected for tokenization.
const UpperBound = 8

// Select scores every aligned column pair and returns the indices (into
// the aligned column list) of up to UpperBound highest-scoring non-key
// columns, ordered by descending score.
func Select(a corres.Aligned) ([]int, error) {
	lWeight := columnWeights(a.L, a.LCols)
	rWeight := columnWeights(a.R, a.RCols)

	type ranked struct {
		index  int
		weight float64
	}
	ranks := make([]ranked, 0, a.NumFields())
	for i := 0; i < a.NumFields(); i++ {
		if i == a.KeyIndex {
			continue
		}
		ranks = append(ranks, ranked{index: i, weight: lWeight[i] * rWeight[i]})
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].weight > ranks[j].weight
	})

	n := len(ranks)
	if n > UpperBound {
		n = UpperBound
	}

	selected := make([]int, n)
	for i := 0; i < n; i++ {
		selected[i] = ranks[i].index
	}

	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: no non-key columns survived scoring", internalerr.ErrNoUsableFeatures)
	}
	return selected, nil
}

// columnWeights computes weight(c) = non_empty_ratio + selectivity for
// every column index in cols (as seen from table t), returned in the same
// positional order as cols (i.e. indexable by the aligned field index).
func columnWeights(t table.Table, cols []int) []float64 {
	n := t.NumRecords()
	weights := make([]float64, len(cols))
	if n == 0 {
		return weights
	}

	for pos, col := range cols {
		dt := t.DType(col)
		seen := make(map[string]struct{})
		nonEmpty := 0
		for i := 0; i < n; i++ {
			raw, isNull := t.Cell(i, col)
			coerced := tablenorm.Coerce(raw, isNull, dt)
			if tablenorm.IsEmpty(coerced) {
				continue
			}
			nonEmpty++
			seen[coerced] = struct{}{}
		}

		nonEmptyRatio := float64(nonEmpty) / float64(n)
		selectivity := 0.0
		if nonEmpty != 0 {
			selectivity = float64(len(seen)) / float64(nonEmpty)
		}
		weights[pos] = nonEmptyRatio + selectivity
	}
	return weights
}
