// Package table defines the external contracts the debugblocker core
// consumes: the two input tables, the candidate set already blocked, and
// the column correspondence between them. DataFrame I/O, schema storage,
// and the upstream blocker are external collaborators; this package only
// describes the shape the core depends on. adapters/csv and adapters/sqlite
// provide concrete implementations.
package table

// DType is the coarse type of a column: the core only ever treats the
// textual subset as tokenizable; numeric columns are coerced to a rounded
// decimal string when a correspondence pair needs to cross the type line.
type DType int

const (
	Textual DType = iota
	Numeric
)

// Table is random-access, read-only tabular data: an ordered set of named
// columns and an ordered sequence of records, each addressable by index.
type Table interface {
	// Columns returns the ordered column names.
	Columns() []string

	// DType reports whether column c holds textual or numeric values.
	DType(c int) DType

	// NumRecords returns the number of records (rows).
	NumRecords() int

	// Cell returns the raw string form of record i, column c, and whether
	// the value is null/absent. Numeric columns still return a string
	// form (e.g. "3.0"); callers needing the emptiness/coercion rule use
	// internal/tablenorm.
	Cell(i, c int) (value string, isNull bool)

	// KeyColumn returns the name of this table's key column.
	KeyColumn() string
}

// ColumnPair is one entry of a column correspondence: (l_col, r_col).
type ColumnPair struct {
	LCol string
	RCol string
}

// CandidateSet exposes the blocker's already-accepted pairs via the
// original tables' key values, not record indices — the core re-indexes
// them against its own key→index maps.
type CandidateSet interface {
	// Pairs returns the (fk_l, fk_r) key-value pairs already in the
	// candidate set, using the same key domain as LTable/RTable's
	// KeyColumn values.
	Pairs() []KeyPair
}

// KeyPair is one candidate-set entry, referencing records by their table
// key values rather than by index.
type KeyPair struct {
	LKey string
	RKey string
}
