// Package table defines the in-memory table shared by readers, the join
// core and the output formatters.
//
// A Table is an ordered list of rows, each an ordered list of string
// cells, plus an optional header that maps column names to positions.
// Tables are treated as immutable once built.
package table

import (
	"errors"
	"fmt"
)

// ErrDuplicateColumn is returned when a header names the same column twice
var ErrDuplicateColumn = errors.New("duplicate column name")

// Row is an ordered list of cell values
type Row []string

// Cell returns the cell at position i and whether the row is wide enough
func (r Row) Cell(i int) (string, bool) {
	if i < 0 || i >= len(r) {
		return "", false
	}
	return r[i], true
}

// Table is an ordered sequence of rows with an optional column header.
type Table struct {
	Name    string   // Source name (file path or label), used in messages
	Columns []string // Column names, empty when the source had no header
	Rows    []Row

	index map[string]int
}

// New builds a table and indexes its header.
//
// Empty header entries are allowed and leave that position addressable only
// by index. Two non-empty entries with the same name are rejected.
func New(name string, columns []string, rows []Row) (*Table, error) {
	t := &Table{
		Name:    name,
		Columns: columns,
		Rows:    rows,
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if col == "" {
			continue
		}
		if prev, exists := t.index[col]; exists {
			return nil, fmt.Errorf("%w: %q at positions %d and %d in %s", ErrDuplicateColumn, col, prev, i, name)
		}
		t.index[col] = i
	}
	return t, nil
}

// MustNew is like New but panics on error. Intended for tests and fixtures.
func MustNew(name string, columns []string, rows []Row) *Table {
	t, err := New(name, columns, rows)
	if err != nil {
		panic(err)
	}
	return t
}

// ColumnIndex returns the position of the named column
func (t *Table) ColumnIndex(name string) (int, bool) {
	if t.index == nil {
		return 0, false
	}
	i, ok := t.index[name]
	return i, ok
}

// Width is the number of addressable columns.
//
// This is the header length or the widest row, whichever is larger, since
// unnamed columns past the header can still be addressed by position.
func (t *Table) Width() int {
	width := len(t.Columns)
	for _, row := range t.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasHeader reports whether the table carries column names
func (t *Table) HasHeader() bool {
	return len(t.Columns) > 0
}
