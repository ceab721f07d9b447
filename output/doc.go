// Package output provides formatters for writing joined tables.
//
// This package defines the Formatter interface and provides implementations
// for the output formats of the command line tool. All formatters work on a
// *table.Table whose Columns are the output column labels.
//
// # Supported Formats
//
//   - CSV: separator-joined cells, one line per row, no quoting
//   - JSON: an indented array of objects keyed by column label
//   - JSON Lines: One JSON object per line (suitable for streaming)
//   - Table: an aligned text table for terminals
//   - Parquet: one required string column per output column
//
// # Basic Usage
//
// Select a formatter by name:
//
//	formatter, err := output.New("jsonl", os.Stdout, output.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Format(t); err != nil {
//	    log.Fatal(err)
//	}
//
// # CSV Header
//
// CSV output carries no header unless Options.Header is set, in which case
// the labels are written as a "#" comment line:
//
//	# 0:city,1:bar,0:foo + 1:bar
//	Austin,100,101
//
// That form reads back as an input with named columns.
//
// # Using as String
//
// Write to a bytes buffer to get string output:
//
//	var buf bytes.Buffer
//	formatter := output.NewCSVFormatter(&buf, output.Options{Separator: ";"})
//	if err := formatter.Format(t); err != nil {
//	    log.Fatal(err)
//	}
//	csvString := buf.String()
package output
