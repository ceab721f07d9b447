package reader

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vegasq/csvjoin/table"
)

// ReadXLSX loads the first sheet of a workbook into a table.
//
// The header convention matches delimited text: when the first non-empty
// row's first cell starts with the comment marker, that row (marker
// stripped) names the columns.
func ReadXLSX(data []byte, name string, opts Options) (*table.Table, error) {
	opts = opts.withDefaults()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in %s", name)
	}

	sheetRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheets[0], name, err)
	}

	var columns []string
	rows := make([]table.Row, 0, len(sheetRows))
	first := true

	for _, cells := range sheetRows {
		row := make(table.Row, len(cells))
		blank := true
		for i, c := range cells {
			row[i] = strings.TrimSpace(c)
			if row[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}

		if strings.HasPrefix(row[0], opts.Comment) {
			if first {
				row[0] = strings.TrimSpace(strings.TrimPrefix(row[0], opts.Comment))
				columns = row
			}
			first = false
			continue
		}
		first = false
		rows = append(rows, row)
	}

	return table.New(name, columns, rows)
}
