// Package assemble rehydrates (l_idx, r_idx, sim) triples into full rows
// against the original tables, the way the external result assembler
// collaborator is expected to.
package assemble

import (
	"strconv"

	"github.com/entitymatch/debugblocker/internal/join"
	"github.com/entitymatch/debugblocker/pkg/debugblocker/table"
)

// Row is one assembled output record: left columns prefixed ltable_,
// right columns prefixed rtable_, plus the originating similarity and the
// _id rank assigned by its position in the result.
type Row struct {
	ID     int
	Sim    float64
	Values map[string]string
}

// Table re-expands a ranked sequence of join entries into rows, prefixing
// L's columns with "ltable_" and R's with "rtable_". Entry order is
// preserved and becomes the _id rank (0..len(entries)-1).
func Table(entries []join.Entry, l, r table.Table) []Row {
	lCols := l.Columns()
	rCols := r.Columns()

	rows := make([]Row, len(entries))
	for rank, e := range entries {
		values := make(map[string]string, len(lCols)+len(rCols))
		for c, name := range lCols {
			v, isNull := l.Cell(int(e.LIdx), c)
			if !isNull {
				values["ltable_"+name] = v
			}
		}
		for c, name := range rCols {
			v, isNull := r.Cell(int(e.RIdx), c)
			if !isNull {
				values["rtable_"+name] = v
			}
		}
		rows[rank] = Row{ID: rank, Sim: e.Sim, Values: values}
	}
	return rows
}

// String renders a row's _id and sim for logging/debugging purposes. The
// column values are not included.
func (row Row) String() string {
	return "#" + strconv.Itoa(row.ID) + " sim=" + strconv.FormatFloat(row.Sim, 'f', 6, 64)
}
