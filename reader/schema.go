package reader

import (
	"strconv"

	"github.com/vegasq/csvjoin/query"
	"github.com/vegasq/csvjoin/table"
)

// ColumnInfo describes one addressable column of an input table.
type ColumnInfo struct {
	File     int    `json:"file"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Ref      string `json:"ref"`
	Type     string `json:"type"`
}

// ExtractSchemaInfo lists the columns of input file with the reference to
// use for each. Columns whose name cannot be written in a reference are
// referenced by position.
//
// Type is "numeric" when every non-empty cell of the column parses as a
// number, "text" otherwise, and "empty" when the column has no values.
func ExtractSchemaInfo(file int, t *table.Table) []ColumnInfo {
	width := t.Width()
	infos := make([]ColumnInfo, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(t.Columns) {
			name = t.Columns[i]
		}
		infos[i] = ColumnInfo{
			File:     file,
			Position: i,
			Name:     name,
			Ref:      columnRef(file, i, name),
			Type:     columnType(t, i),
		}
	}
	return infos
}

// columnRef prefers the by-name form when it round-trips to the same column
func columnRef(file, position int, name string) string {
	prefix := strconv.Itoa(file) + ":"
	if name != "" && query.IsColumnRef(prefix+name) {
		if _, err := strconv.Atoi(name); err != nil {
			return prefix + name
		}
	}
	return prefix + strconv.Itoa(position)
}

func columnType(t *table.Table, col int) string {
	seen := false
	for _, row := range t.Rows {
		cell, ok := row.Cell(col)
		if !ok || cell == "" {
			continue
		}
		seen = true
		if !query.ParseCell(cell).IsNumeric() {
			return "text"
		}
	}
	if !seen {
		return "empty"
	}
	return "numeric"
}

// SchemaTable lists the columns of every input as one table, suitable for
// any output formatter
func SchemaTable(tables []*table.Table) *table.Table {
	var rows []table.Row
	for file, t := range tables {
		for _, info := range ExtractSchemaInfo(file, t) {
			rows = append(rows, table.Row{
				strconv.Itoa(info.File),
				t.Name,
				strconv.Itoa(info.Position),
				info.Name,
				info.Ref,
				info.Type,
			})
		}
	}
	return table.MustNew("schema", []string{"file", "path", "position", "name", "ref", "type"}, rows)
}
