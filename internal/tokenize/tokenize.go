// Package tokenize turns selected column cells into per-record token
// occurrences: lowercase, split on spaces, and made unique within the
// record by a numeric suffix on repeats.
package tokenize

import (
	"strconv"
	"strings"

	"github.com/entitymatch/debugblocker/internal/corres"
	"github.com/entitymatch/debugblocker/internal/tablenorm"
	"github.com/entitymatch/debugblocker/pkg/debugblocker/table"
)

// Occurrence is one token as it appears in a record: the (possibly
// suffixed) token string and the position of its originating field within
// the selected feature list.
type Occurrence struct {
	Token string
	Field uint32
}

// Side selects which half of the aligned pair to read columns from.
type Side int

const (
	Left Side = iota
	Right
)

// Table tokenizes every record of one side (L or R) of the aligned tables
// against the given selected field indices (positions into the aligned
// column list, as returned by internal/features.Select). Field i of the
// returned occurrences refers to selected[i], i.e. its position within
// selected, not the underlying table column index.
func Table(a corres.Aligned, selected []int, side Side) [][]Occurrence {
	var t table.Table
	var cols []int
	if side == Left {
		t = a.L
		cols = a.LCols
	} else {
		t = a.R
		cols = a.RCols
	}

	n := t.NumRecords()
	out := make([][]Occurrence, n)
	for i := 0; i < n; i++ {
		out[i] = tokenizeRecord(t, i, cols, selected)
	}
	return out
}

func tokenizeRecord(t table.Table, record int, cols []int, selected []int) []Occurrence {
	var occ []Occurrence
	seen := make(map[string]int)

	for fieldPos, colPos := range selected {
		col := cols[colPos]
		raw, isNull := t.Cell(record, col)
		coerced := tablenorm.Coerce(raw, isNull, t.DType(col))
		if tablenorm.IsEmpty(coerced) {
			continue
		}

		for _, word := range strings.Split(strings.ToLower(coerced), " ") {
			if word == "" {
				continue
			}
			k := seen[word]
			seen[word] = k + 1
			tok := word
			if k >= 1 {
				tok = word + "_" + strconv.Itoa(k)
			}
			occ = append(occ, Occurrence{Token: tok, Field: uint32(fieldPos)})
		}
	}
	return occ
}
