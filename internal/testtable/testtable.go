// Package testtable provides a minimal in-memory table.Table for tests
// across the debugblocker packages.
package testtable

import "github.com/entitymatch/debugblocker/pkg/debugblocker/table"

// Table is a literal, in-memory table.Table.
type Table struct {
	Cols   []string
	Types  []table.DType
	Rows   [][]string // Rows[i][c]; "" means null
	KeyCol string
}

func (t *Table) Columns() []string      { return t.Cols }
func (t *Table) DType(c int) table.DType { return t.Types[c] }
func (t *Table) NumRecords() int         { return len(t.Rows) }
func (t *Table) KeyColumn() string       { return t.KeyCol }

func (t *Table) Cell(i, c int) (string, bool) {
	v := t.Rows[i][c]
	return v, v == ""
}

// CandidateSet is a literal table.CandidateSet.
type CandidateSet struct {
	KeyPairs []table.KeyPair
}

func (c *CandidateSet) Pairs() []table.KeyPair { return c.KeyPairs }
