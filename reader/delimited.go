package reader

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/csvjoin/table"
)

// maxLineLength bounds a single input line
const maxLineLength = 16 * 1024 * 1024

// ReadDelimited parses separator-delimited text into a table.
//
// The first non-blank line, when it starts with the comment marker, holds
// the column names. Later comment lines and blank lines are skipped. Cells
// are split on the separator with surrounding whitespace trimmed; there is
// no quoting.
func ReadDelimited(r io.Reader, name string, opts Options) (*table.Table, error) {
	opts = opts.withDefaults()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var columns []string
	rows := make([]table.Row, 0)
	first := true
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, opts.Comment) {
			if header := strings.TrimPrefix(trimmed, opts.Comment); first && strings.TrimSpace(header) != "" {
				columns = splitCells(header, opts.Separator)
			}
			first = false
			continue
		}
		first = false

		rows = append(rows, splitCells(line, opts.Separator))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s near line %d: %w", name, lineNo+1, err)
	}

	return table.New(name, columns, rows)
}

// splitCells splits a line on sep and trims every cell
func splitCells(line, sep string) table.Row {
	parts := strings.Split(line, sep)
	row := make(table.Row, len(parts))
	for i, p := range parts {
		row[i] = strings.TrimSpace(p)
	}
	return row
}
