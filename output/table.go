package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/csvjoin/table"
)

// TableFormatter outputs an aligned text table
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (f *TableFormatter) SetOutput(w io.Writer) {
	f.writer = w
}

// Format renders the table with a header row
func (f *TableFormatter) Format(t *table.Table) error {
	names := labels(t)

	tw := tablewriter.NewWriter(f.writer)
	tw.SetHeader(names)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	for _, row := range t.Rows {
		tw.Append(record(row, len(names)))
	}
	tw.Render()
	return nil
}
