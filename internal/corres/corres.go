// Package corres resolves and filters the column correspondence between
// the two input tables, and aligns it to concrete column indices.
package corres

import (
	"fmt"

	"github.com/entitymatch/debugblocker/pkg/debugblocker/internalerr"
	"github.com/entitymatch/debugblocker/pkg/debugblocker/table"
)

// Resolve builds the final, filtered column correspondence list for
// (l, r): if attrCorres is empty, a best-effort identical-name
// correspondence is used (full upstream auto-correspondence is an external
// collaborator's concern; this is a reasonable default for callers that
// don't supply one). The (l_key, r_key) pair is always present and moved
// to the final position. Pairs where both sides are numeric (and neither
// is the key column) are dropped.
func Resolve(l, r table.Table, attrCorres []table.ColumnPair) ([]table.ColumnPair, error) {
	lCols := l.Columns()
	rCols := r.Columns()
	lKey, rKey := l.KeyColumn(), r.KeyColumn()

	list := attrCorres
	if len(list) == 0 {
		list = autoCorrespond(lCols, rCols)
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: empty column correspondence and no identical column names to infer one from", internalerr.ErrInvalidInput)
		}
	}

	if err := validateNames(list, lCols, rCols); err != nil {
		return nil, err
	}

	list = moveKeyPairLast(list, lKey, rKey)

	lDType := nameDTypeMap(l, lCols)
	rDType := nameDTypeMap(r, rCols)

	filtered := make([]table.ColumnPair, 0, len(list))
	for _, pair := range list {
		bothNumeric := lDType[pair.LCol] == table.Numeric && rDType[pair.RCol] == table.Numeric
		isKeyPair := pair.LCol == lKey || pair.RCol == rKey
		if bothNumeric && !isKeyPair {
			continue
		}
		filtered = append(filtered, pair)
	}

	if len(filtered) == 1 && filtered[0].LCol == lKey && filtered[0].RCol == rKey {
		return nil, fmt.Errorf("%w: every non-key column pair is numeric on both sides", internalerr.ErrNoUsableFeatures)
	}

	return filtered, nil
}

// autoCorrespond pairs columns that share an identical name, in L's
// column order.
func autoCorrespond(lCols, rCols []string) []table.ColumnPair {
	rSet := make(map[string]struct{}, len(rCols))
	for _, c := range rCols {
		rSet[c] = struct{}{}
	}
	var out []table.ColumnPair
	for _, c := range lCols {
		if _, ok := rSet[c]; ok {
			out = append(out, table.ColumnPair{LCol: c, RCol: c})
		}
	}
	return out
}

func validateNames(list []table.ColumnPair, lCols, rCols []string) error {
	lSet := toSet(lCols)
	rSet := toSet(rCols)
	for _, pair := range list {
		if _, ok := lSet[pair.LCol]; !ok {
			return fmt.Errorf("%w: ltable has no column %q", internalerr.ErrInvalidInput, pair.LCol)
		}
		if _, ok := rSet[pair.RCol]; !ok {
			return fmt.Errorf("%w: rtable has no column %q", internalerr.ErrInvalidInput, pair.RCol)
		}
	}
	return nil
}

func toSet(cols []string) map[string]struct{} {
	set := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		set[c] = struct{}{}
	}
	return set
}

// moveKeyPairLast removes any existing (lKey, rKey) entry and appends it,
// guaranteeing the invariant that the key pair is last.
func moveKeyPairLast(list []table.ColumnPair, lKey, rKey string) []table.ColumnPair {
	out := make([]table.ColumnPair, 0, len(list)+1)
	for _, pair := range list {
		if pair.LCol == lKey && pair.RCol == rKey {
			continue
		}
		out = append(out, pair)
	}
	out = append(out, table.ColumnPair{LCol: lKey, RCol: rKey})
	return out
}

func nameDTypeMap(t table.Table, cols []string) map[string]table.DType {
	m := make(map[string]table.DType, len(cols))
	for i, c := range cols {
		m[c] = t.DType(i)
	}
	return m
}

// Aligned is a filtered, name-resolved view over L and R: parallel column
// index slices of equal length, with the key pair guaranteed last.
type Aligned struct {
	L, R     table.Table
	LCols    []int // indices into L.Columns()
	RCols    []int // indices into R.Columns()
	KeyIndex int    // position of the key pair within LCols/RCols
}

// NumFields returns the number of aligned columns, including the key.
func (a Aligned) NumFields() int { return len(a.LCols) }

// Build resolves the filtered pair list into column indices on the
// underlying tables.
func Build(l, r table.Table, pairs []table.ColumnPair) (Aligned, error) {
	if len(pairs) == 0 {
		return Aligned{}, fmt.Errorf("%w: empty column correspondence", internalerr.ErrInvalidInput)
	}
	lIdx := indexByName(l.Columns())
	rIdx := indexByName(r.Columns())

	out := Aligned{L: l, R: r, LCols: make([]int, len(pairs)), RCols: make([]int, len(pairs))}
	for i, pair := range pairs {
		li, ok := lIdx[pair.LCol]
		if !ok {
			return Aligned{}, fmt.Errorf("%w: ltable has no column %q", internalerr.ErrSchemaMismatch, pair.LCol)
		}
		ri, ok := rIdx[pair.RCol]
		if !ok {
			return Aligned{}, fmt.Errorf("%w: rtable has no column %q", internalerr.ErrSchemaMismatch, pair.RCol)
		}
		out.LCols[i] = li
		out.RCols[i] = ri
	}
	out.KeyIndex = len(pairs) - 1
	return out, nil
}

func indexByName(cols []string) map[string]int {
	m := make(map[string]int, len(cols))
	for i, c := range cols {
		m[c] = i
	}
	return m
}
