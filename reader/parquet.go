package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/segmentio/parquet-go"

	"github.com/vegasq/csvjoin/table"
)

// ReadParquet loads a parquet file into a table.
//
// Columns follow the file schema's top-level field order. Every value is
// rendered to its text form so it can be joined and evaluated like a
// delimited cell; nulls become empty cells.
func ReadParquet(data []byte, name string) (*table.Table, error) {
	pqFile, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file %s: %w", name, err)
	}

	fields := pqFile.Schema().Fields()
	columns := make([]string, len(fields))
	for i, field := range fields {
		columns[i] = field.Name()
	}

	reader := parquet.NewReader(pqFile)
	defer func() { _ = reader.Close() }()

	rows := make([]table.Row, 0, pqFile.NumRows())
	for {
		values := make(map[string]interface{})
		err := reader.Read(&values)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row %d of %s: %w", len(rows), name, err)
		}

		row := make(table.Row, len(columns))
		for i, col := range columns {
			row[i] = FormatValue(values[col])
		}
		rows = append(rows, row)
	}

	return table.New(name, columns, rows)
}

// FormatValue converts a decoded value to its cell text
func FormatValue(v interface{}) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32, float64:
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
