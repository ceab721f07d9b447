package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/csvjoin/table"
)

// ErrUnknownFormat is returned by New for an unsupported format name
var ErrUnknownFormat = errors.New("unknown output format")

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to write a table in the target format
// and SetOutput to change the output destination.
type Formatter interface {
	// Format writes the table in the formatter's specific format
	Format(t *table.Table) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// Options configures formatters that have a choice to make
type Options struct {
	Separator string // CSV cell separator (default ",")
	Header    bool   // CSV only: write a "#" header line first
}

// Format names accepted by New
const (
	FormatCSV     = "csv"
	FormatJSON    = "json"
	FormatJSONL   = "jsonl"
	FormatNDJSON  = "ndjson"
	FormatTable   = "table"
	FormatParquet = "parquet"
)

// Formats lists the accepted format names
var Formats = []string{FormatCSV, FormatJSON, FormatJSONL, FormatNDJSON, FormatTable, FormatParquet}

// New returns the formatter for a format name
func New(format string, w io.Writer, opts Options) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", FormatCSV:
		return NewCSVFormatter(w, opts), nil
	case FormatJSON:
		return NewJSONFormatter(w), nil
	case FormatJSONL, FormatNDJSON:
		return NewJSONLinesFormatter(w), nil
	case FormatTable:
		return NewTableFormatter(w), nil
	case FormatParquet:
		return NewParquetFormatter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, format, strings.Join(Formats, ", "))
	}
}

// labels returns one name per column, using the position for columns the
// table leaves unnamed
func labels(t *table.Table) []string {
	width := t.Width()
	names := make([]string, width)
	for i := range names {
		if i < len(t.Columns) && t.Columns[i] != "" {
			names[i] = t.Columns[i]
		} else {
			names[i] = fmt.Sprintf("col%d", i)
		}
	}
	return names
}

// record pads or cuts row to width
func record(row table.Row, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}
