package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/csvjoin/table"
)

// CSVFormatter outputs rows as separator-joined lines.
//
// Cells are written verbatim, without quoting, so the output reads back
// with the same delimited reader used for inputs.
type CSVFormatter struct {
	writer io.Writer
	opts   Options
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer, opts Options) *CSVFormatter {
	if opts.Separator == "" {
		opts.Separator = ","
	}
	return &CSVFormatter{writer: w, opts: opts}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes the table as delimited lines
func (c *CSVFormatter) Format(t *table.Table) error {
	bw := bufio.NewWriter(c.writer)

	if c.opts.Header && t.HasHeader() {
		if _, err := fmt.Fprintf(bw, "# %s\n", strings.Join(t.Columns, c.opts.Separator)); err != nil {
			return err
		}
	}

	for _, row := range t.Rows {
		if _, err := bw.WriteString(strings.Join(row, c.opts.Separator)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}
