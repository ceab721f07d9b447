package reader

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vegasq/csvjoin/table"
)

// Format identifies how an input is parsed
type Format int

const (
	FormatDelimited Format = iota
	FormatParquet
	FormatXLSX
)

func (f Format) String() string {
	switch f {
	case FormatParquet:
		return "parquet"
	case FormatXLSX:
		return "xlsx"
	default:
		return "delimited"
	}
}

// DetectFormat picks the parser from the file extension, ignoring any
// compression suffix
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(StripCompressionExt(name))) {
	case ".parquet", ".pq":
		return FormatParquet
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatDelimited
	}
}

// Stdin is the path that selects standard input
const Stdin = "-"

// ReadInput loads one input: "-" reads standard input, a glob pattern is
// expanded with ReadMultipleFiles, anything else is read with ReadFile.
func ReadInput(path string, opts Options) (*table.Table, error) {
	switch {
	case path == Stdin:
		return Read(os.Stdin, "stdin", opts)
	case IsPattern(path):
		if _, err := os.Stat(path); err == nil {
			return ReadFile(path, opts)
		}
		return ReadMultipleFiles(path, opts)
	default:
		return ReadFile(path, opts)
	}
}

// ReadInputs loads every input in order. Table i of the result is input i.
func ReadInputs(paths []string, opts Options) ([]*table.Table, error) {
	tables := make([]*table.Table, 0, len(paths))
	for i, path := range paths {
		t, err := ReadInput(path, opts)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		slog.Debug("loaded input",
			slog.Int("file_index", i),
			slog.String("path", path),
			slog.Int("columns", t.Width()),
			slog.Int("rows", t.Len()),
		)
		tables = append(tables, t)
	}
	return tables, nil
}

// ReadFile opens path and parses it according to its extension
func ReadFile(path string, opts Options) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f, path, opts)
}

// Read decompresses r if needed and parses it. name selects the format
// and is used in error messages.
func Read(r io.Reader, name string, opts Options) (*table.Table, error) {
	opts = opts.withDefaults()

	dr, ct, closeFn, err := Decompress(r, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	defer closeFn()

	if ct != CompressionNone {
		slog.Debug("decompressing input", slog.String("path", name), slog.String("compression", ct.String()))
	}

	format := DetectFormat(name)
	if format == FormatDelimited {
		return ReadDelimited(dr, name, opts)
	}

	// parquet and xlsx need random access
	data, err := io.ReadAll(dr)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if format == FormatParquet {
		return ReadParquet(data, name)
	}
	return ReadXLSX(data, name, opts)
}
