package output

import (
	"fmt"
	"io"

	"github.com/segmentio/parquet-go"

	"github.com/vegasq/csvjoin/table"
)

// ParquetFormatter writes the table as a parquet file with one required
// string column per output column.
//
// Parquet groups order their fields by name, so the columns appear sorted
// when the file is read back.
type ParquetFormatter struct {
	writer io.Writer
}

// NewParquetFormatter creates a new parquet formatter
func NewParquetFormatter(w io.Writer) *ParquetFormatter {
	return &ParquetFormatter{writer: w}
}

// SetOutput sets the output writer
func (p *ParquetFormatter) SetOutput(w io.Writer) {
	p.writer = w
}

// Format writes every row of the table
func (p *ParquetFormatter) Format(t *table.Table) error {
	names := labels(t)
	if len(names) == 0 {
		return fmt.Errorf("cannot write parquet without columns")
	}

	group := make(parquet.Group, len(names))
	for _, name := range names {
		if _, dup := group[name]; dup {
			return fmt.Errorf("duplicate parquet column %q", name)
		}
		group[name] = parquet.String()
	}
	schema := parquet.NewSchema("csvjoin", group)

	// leaf[i] is the parquet column index of table column i
	leafIndex := make(map[string]int, len(names))
	for i, field := range schema.Fields() {
		leafIndex[field.Name()] = i
	}
	leaf := make([]int, len(names))
	for i, name := range names {
		leaf[i] = leafIndex[name]
	}

	writer := parquet.NewWriter(p.writer, schema)

	rows := make([]parquet.Row, len(t.Rows))
	for r, row := range t.Rows {
		cells := record(row, len(names))
		values := make(parquet.Row, len(names))
		for i, cell := range cells {
			values[leaf[i]] = parquet.ValueOf(cell).Level(0, 0, leaf[i])
		}
		rows[r] = values
	}

	if _, err := writer.WriteRows(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
