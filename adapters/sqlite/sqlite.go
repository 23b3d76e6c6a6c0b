// Package sqlite adapts a table stored in a SQLite database to
// table.Table, with an LRU cache in front of random-access Cell reads.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "modernc.org/sqlite"

	"github.com/entitymatch/debugblocker/pkg/debugblocker/table"
)

// DefaultCacheSize bounds the number of (record, column) cells kept warm.
const DefaultCacheSize = 4096

type cellKey struct {
	row int
	col int
}

type cellValue struct {
	value  string
	isNull bool
}

// Table is a read-only view over one SQLite table, addressed by rowid.
type Table struct {
	db      *sql.DB
	name    string
	columns []string
	dtypes  []table.DType
	keyCol  string
	rowIDs  []int64
	cache   *lru.Cache[cellKey, cellValue]
}

// Columns implements table.Table.
func (t *Table) Columns() []string { return t.columns }

// DType implements table.Table.
func (t *Table) DType(c int) table.DType { return t.dtypes[c] }

// NumRecords implements table.Table.
func (t *Table) NumRecords() int { return len(t.rowIDs) }

// KeyColumn implements table.Table.
func (t *Table) KeyColumn() string { return t.keyCol }

// Cell implements table.Table, consulting the LRU cache before issuing a
// point query against the database.
func (t *Table) Cell(i, c int) (string, bool) {
	key := cellKey{row: i, col: c}
	if v, ok := t.cache.Get(key); ok {
		return v.value, v.isNull
	}

	var raw sql.NullString
	query := fmt.Sprintf(`SELECT %q FROM %q WHERE rowid = ?`, t.columns[c], t.name)
	if err := t.db.QueryRow(query, t.rowIDs[i]).Scan(&raw); err != nil {
		t.cache.Add(key, cellValue{isNull: true})
		return "", true
	}

	v := cellValue{value: raw.String, isNull: !raw.Valid}
	t.cache.Add(key, v)
	return v.value, v.isNull
}

// Open opens a SQLite database at path and exposes tableName as a
// table.Table. numericColumns names the columns that hold numeric values;
// every other column is treated as textual.
func Open(ctx context.Context, path, tableName, keyColumn string, numericColumns map[string]struct{}) (*Table, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: enable WAL: %w", err)
	}

	columns, err := tableColumns(ctx, db, tableName)
	if err != nil {
		db.Close()
		return nil, err
	}

	dtypes := make([]table.DType, len(columns))
	for i, name := range columns {
		if _, ok := numericColumns[name]; ok {
			dtypes[i] = table.Numeric
		} else {
			dtypes[i] = table.Textual
		}
	}

	rowIDs, err := tableRowIDs(ctx, db, tableName)
	if err != nil {
		db.Close()
		return nil, err
	}

	cache, err := lru.New[cellKey, cellValue](DefaultCacheSize)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: create row cache: %w", err)
	}

	return &Table{
		db:      db,
		name:    tableName,
		columns: columns,
		dtypes:  dtypes,
		keyCol:  keyColumn,
		rowIDs:  rowIDs,
		cache:   cache,
	}, nil
}

// Close releases the underlying database handle.
func (t *Table) Close() error { return t.db.Close() }

func tableColumns(ctx context.Context, db *sql.DB, tableName string) ([]string, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%q)`, tableName))
	if err != nil {
		return nil, fmt.Errorf("sqlite: inspect table %s: %w", tableName, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var (
			cid        int
			name, ctyp string
			notnull    int
			dflt       sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &ctyp, &notnull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("sqlite: scan table_info row: %w", err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("sqlite: table %s has no columns or does not exist", tableName)
	}
	return columns, nil
}

func tableRowIDs(ctx context.Context, db *sql.DB, tableName string) ([]int64, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT rowid FROM %q ORDER BY rowid`, tableName))
	if err != nil {
		return nil, fmt.Errorf("sqlite: list rowids of %s: %w", tableName, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
