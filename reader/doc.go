// Package reader loads input tables for the join.
//
// # Delimited text
//
// The default format is separator-delimited text. The first non-blank line,
// when it starts with "#", names the columns:
//
//	# city, date, foo
//	Austin, 20140916, 1
//	Berkeley, 20140916, 2
//
// Other "#" lines and blank lines are ignored and every cell is trimmed.
// Cells are not quoted, so the separator cannot appear inside a value.
//
// # Other formats
//
// Files ending in .parquet are read with github.com/segmentio/parquet-go and
// files ending in .xlsx with github.com/xuri/excelize/v2 (first sheet, same
// "#" header convention as delimited text).
//
// Any input may be compressed with gzip, bzip2, xz, zstd or lz4 (detected by
// magic bytes) or brotli (detected by the .br extension):
//
//	t, err := reader.ReadFile("cities.csv.gz", reader.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Multi-file Operations
//
// A path containing glob metacharacters is expanded with doublestar, so
// "logs/**/*.csv" matches recursively. Matches are read in sorted order and
// concatenated into a single table:
//
//	t, err := reader.ReadInput("data/2024-*.csv", reader.DefaultOptions())
//
// "-" reads standard input.
package reader
