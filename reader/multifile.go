package reader

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vegasq/csvjoin/table"
)

var (
	// ErrNoFiles is returned when a glob pattern matches nothing
	ErrNoFiles = errors.New("no files match pattern")

	// ErrTooManyFiles is returned when a glob pattern exceeds Options.MaxFiles
	ErrTooManyFiles = errors.New("glob pattern matched too many files")

	// ErrHeaderMismatch is returned when globbed files disagree on columns
	ErrHeaderMismatch = errors.New("header mismatch between matched files")
)

// IsPattern reports whether path contains glob metacharacters
func IsPattern(path string) bool {
	return strings.ContainsAny(path, "*?[]{}")
}

// ReadMultipleFiles reads every file matching a doublestar pattern (e.g.
// "data/**/*.csv") and concatenates them, in sorted path order, into one
// table. All matches must carry the same header.
func ReadMultipleFiles(pattern string, opts Options) (*table.Table, error) {
	opts = opts.withDefaults()

	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}

	files := matches[:0]
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, match)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, pattern)
	}
	if len(files) > opts.MaxFiles {
		return nil, fmt.Errorf("%w (%d), maximum is %d", ErrTooManyFiles, len(files), opts.MaxFiles)
	}
	sort.Strings(files)

	var columns []string
	var rows []table.Row
	for i, path := range files {
		t, err := ReadFile(path, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if i == 0 {
			columns = t.Columns
		} else if !sameColumns(columns, t.Columns) {
			return nil, fmt.Errorf("%w: %s has %v, %s has %v", ErrHeaderMismatch, files[0], columns, path, t.Columns)
		}
		rows = append(rows, t.Rows...)
	}

	slog.Debug("read glob pattern",
		slog.String("pattern", pattern),
		slog.Int("files", len(files)),
		slog.Int("rows", len(rows)),
	)

	return table.New(pattern, columns, rows)
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
