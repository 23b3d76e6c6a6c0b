// Package csv adapts a flat CSV file to table.Table. It is deliberately
// stdlib-only: no example repo in the surrounding pack reaches for a
// third-party CSV library for flat tabular loads.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/entitymatch/debugblocker/pkg/debugblocker/table"
)

// Table is an in-memory, read-only view over a loaded CSV file.
type Table struct {
	columns  []string
	dtypes   []table.DType
	rows     [][]string
	keyCol   string
}

// Columns implements table.Table.
func (t *Table) Columns() []string { return t.columns }

// DType implements table.Table.
func (t *Table) DType(c int) table.DType { return t.dtypes[c] }

// NumRecords implements table.Table.
func (t *Table) NumRecords() int { return len(t.rows) }

// Cell implements table.Table. An empty cell is treated as null.
func (t *Table) Cell(i, c int) (string, bool) {
	v := t.rows[i][c]
	return v, v == ""
}

// KeyColumn implements table.Table.
func (t *Table) KeyColumn() string { return t.keyCol }

// Load reads a CSV file with a header row into a Table. numericColumns
// names the columns that hold numeric values; every other column is
// treated as textual. keyColumn must name one of the header columns.
func Load(path, keyColumn string, numericColumns map[string]struct{}) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("csv: read header of %s: %w", path, err)
	}

	dtypes := make([]table.DType, len(header))
	for i, name := range header {
		if _, ok := numericColumns[name]; ok {
			dtypes[i] = table.Numeric
		} else {
			dtypes[i] = table.Textual
		}
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row of %s: %w", path, err)
		}
		rows = append(rows, padTo(rec, len(header)))
	}

	return &Table{columns: header, dtypes: dtypes, rows: rows, keyCol: keyColumn}, nil
}

func padTo(rec []string, n int) []string {
	if len(rec) >= n {
		return rec[:n]
	}
	out := make([]string, n)
	copy(out, rec)
	return out
}

// CandidateSet is a table.CandidateSet backed by a two-column
// (fk_l, fk_r) CSV with a header row.
type CandidateSet struct {
	pairs []table.KeyPair
}

// Pairs implements table.CandidateSet.
func (c *CandidateSet) Pairs() []table.KeyPair { return c.pairs }

// LoadCandidateSet reads a (fk_l, fk_r) CSV file into a CandidateSet.
func LoadCandidateSet(path string) (*CandidateSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err != nil { // header
		return nil, fmt.Errorf("csv: read header of %s: %w", path, err)
	}

	var pairs []table.KeyPair
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row of %s: %w", path, err)
		}
		if len(rec) < 2 {
			continue
		}
		pairs = append(pairs, table.KeyPair{LKey: rec[0], RKey: rec[1]})
	}
	return &CandidateSet{pairs: pairs}, nil
}
