package query

import (
	"regexp"
	"strconv"

	"github.com/vegasq/csvjoin/table"
)

var columnRefPattern = regexp.MustCompile(`^([0-9]+):([\p{L}\p{N}_]+)$`)
var positionPattern = regexp.MustCompile(`^[0-9]+$`)

// ColumnRef addresses one column of one input table
type ColumnRef struct {
	Text   string // reference as written, e.g. "1:bar"
	File   int    // input table index
	Column int    // column position in that table
	Name   string // column name, empty for unnamed columns
}

// IsColumnRef reports whether s is exactly one column reference token
func IsColumnRef(s string) bool {
	return columnRefPattern.MatchString(s)
}

// ParseColumnRef parses "<file>:<selector>" and resolves it against tables.
//
// A selector made only of digits is a 0-based position; anything else is a
// column name looked up in the table header.
func ParseColumnRef(text string, tables []*table.Table) (ColumnRef, error) {
	m := columnRefPattern.FindStringSubmatch(text)
	if m == nil {
		return ColumnRef{}, newError(InvalidReference, text, "expected <file-index>:<column-name-or-index>")
	}

	file, err := strconv.Atoi(m[1])
	if err != nil || file >= len(tables) {
		return ColumnRef{}, newError(InvalidReference, text, "file index %s out of range (%d inputs)", m[1], len(tables))
	}

	tbl := tables[file]
	selector := m[2]

	if positionPattern.MatchString(selector) {
		col, err := strconv.Atoi(selector)
		width := tbl.Width()
		// rows shorter than the selector never match, so an empty table
		// accepts any position
		if err != nil || (col >= width && tbl.Len() > 0) {
			return ColumnRef{}, newError(UnknownColumn, text, "column position %s out of range in %s (%d columns)", selector, tbl.Name, width)
		}
		ref := ColumnRef{Text: text, File: file, Column: col}
		if col < len(tbl.Columns) {
			ref.Name = tbl.Columns[col]
		}
		return ref, nil
	}

	if len(selector) > MaxColumnNameLength {
		return ColumnRef{}, newError(UnknownColumn, text, "column name too long: %d chars (max %d)", len(selector), MaxColumnNameLength)
	}
	col, ok := tbl.ColumnIndex(selector)
	if !ok {
		if !tbl.HasHeader() {
			return ColumnRef{}, newError(UnknownColumn, text, "column %q not found: %s has no header", selector, tbl.Name)
		}
		return ColumnRef{}, newError(UnknownColumn, text, "column %q not found in %s", selector, tbl.Name)
	}
	return ColumnRef{Text: text, File: file, Column: col, Name: selector}, nil
}

// CellFromRow returns the referenced cell of a single row of table c.File
func (c ColumnRef) CellFromRow(row table.Row) (string, bool) {
	return row.Cell(c.Column)
}

// Cell returns the raw referenced cell of a row-group
func (c ColumnRef) Cell(group RowGroup) (string, error) {
	if c.File >= len(group.Rows) {
		e := newError(InvalidReference, c.Text, "file index %d out of range (%d rows in group)", c.File, len(group.Rows))
		e.Row = group.Position
		return "", e
	}
	cell, ok := c.CellFromRow(group.Rows[c.File])
	if !ok {
		e := newError(InvalidReference, c.Text, "row %d of input %d has only %d cells", group.Indices[c.File], c.File, len(group.Rows[c.File]))
		e.Row = group.Position
		return "", e
	}
	return cell, nil
}

// Resolve returns the raw cell text and its value view
func (c ColumnRef) Resolve(group RowGroup) (string, Value, error) {
	cell, err := c.Cell(group)
	if err != nil {
		return "", Value{}, err
	}
	return cell, ParseCell(cell), nil
}

// Bind resolves every column reference of a parsed expression against the
// input tables.
func Bind(expr Expression, tables []*table.Table) error {
	switch e := expr.(type) {
	case *ColumnExpr:
		ref, err := ParseColumnRef(e.Text, tables)
		if err != nil {
			return err
		}
		e.Ref = ref
		e.bound = true
	case *UnaryExpr:
		return Bind(e.Operand, tables)
	case *BinaryExpr:
		if err := Bind(e.Left, tables); err != nil {
			return err
		}
		return Bind(e.Right, tables)
	}
	return nil
}

// References lists the column references of an expression in source order
func References(expr Expression) []ColumnRef {
	var refs []ColumnRef
	var walk func(Expression)
	walk = func(expr Expression) {
		switch e := expr.(type) {
		case *ColumnExpr:
			refs = append(refs, e.Ref)
		case *UnaryExpr:
			walk(e.Operand)
		case *BinaryExpr:
			walk(e.Left)
			walk(e.Right)
		}
	}
	walk(expr)
	return refs
}
