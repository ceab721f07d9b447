package query

import (
	"context"
	"log/slog"
	"strconv"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/vegasq/csvjoin/table"
)

// ProjectOptions controls output projection
type ProjectOptions struct {
	// Workers > 1 evaluates row-groups concurrently. Output order is the
	// same as with a single worker.
	Workers int
}

// ProjectRow evaluates every spec against one row-group
func ProjectRow(group RowGroup, specs []*OutputSpec) (table.Row, error) {
	row := make(table.Row, len(specs))
	for i, spec := range specs {
		cell, err := spec.Eval(group)
		if err != nil {
			return nil, err
		}
		row[i] = cell
	}
	return row, nil
}

// Project builds the output table: one row per row-group, one cell per
// spec, header taken from the spec labels. The first evaluation error
// aborts the projection.
func Project(ctx context.Context, groups []RowGroup, specs []*OutputSpec, opts ProjectOptions) (*table.Table, error) {
	columns := make([]string, len(specs))
	for i, spec := range specs {
		columns[i] = spec.Label
	}

	rows := make([]table.Row, len(groups))

	if opts.Workers <= 1 {
		for i, group := range groups {
			row, err := ProjectRow(group, specs)
			if err != nil {
				return nil, err
			}
			rows[i] = row
		}
	} else {
		// Errors are kept per slot and the lowest index wins. Scheduling
		// stops after a failure; every earlier slot is already queued.
		errs := make([]error, len(groups))
		var failed atomic.Bool
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Workers)
		for i, group := range groups {
			if failed.Load() || gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				row, err := ProjectRow(group, specs)
				if err != nil {
					errs[i] = err
					failed.Store(true)
					return nil
				}
				rows[i] = row
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	slog.Debug("projection completed",
		slog.Int("rows", len(rows)),
		slog.Int("columns", len(specs)),
		slog.Int("workers", opts.Workers),
	)

	return table.New("output", uniqueLabels(columns), rows)
}

// uniqueLabels suffixes repeated labels so the output header stays
// addressable by name. A suffix never reuses a label already in the list.
func uniqueLabels(labels []string) []string {
	used := make(map[string]bool, len(labels))
	for _, label := range labels {
		used[label] = true
	}
	seen := make(map[string]int, len(labels))
	out := make([]string, len(labels))
	for i, label := range labels {
		seen[label]++
		if seen[label] == 1 {
			out[i] = label
			continue
		}
		n := seen[label]
		candidate := label + "_" + strconv.Itoa(n)
		for used[candidate] {
			n++
			candidate = label + "_" + strconv.Itoa(n)
		}
		seen[label] = n
		used[candidate] = true
		out[i] = candidate
	}
	return out
}
