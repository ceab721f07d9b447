package query

import (
	"iter"
	"log/slog"
	"sort"
	"strings"

	"github.com/vegasq/csvjoin/table"
)

// JoinSpec holds one join-key reference per input table, ordered by file
// index.
type JoinSpec []ColumnRef

// ParseJoinSpec parses one reference per table. The references may be
// given in any order but must cover every input exactly once.
func ParseJoinSpec(texts []string, tables []*table.Table) (JoinSpec, error) {
	joined := strings.Join(texts, " ")
	if len(texts) != len(tables) {
		e := newError(InvalidReference, "", "join spec has %d references for %d inputs", len(texts), len(tables))
		e.Spec = joined
		return nil, e
	}

	spec := make(JoinSpec, 0, len(texts))
	seen := make(map[int]string, len(texts))
	for _, text := range texts {
		ref, err := ParseColumnRef(strings.TrimSpace(text), tables)
		if err != nil {
			return nil, annotate(err, joined, -1)
		}
		if prev, dup := seen[ref.File]; dup {
			e := newError(InvalidReference, text, "input %d already joined on %q", ref.File, prev)
			e.Spec = joined
			return nil, e
		}
		seen[ref.File] = text
		spec = append(spec, ref)
	}

	sort.Slice(spec, func(i, j int) bool { return spec[i].File < spec[j].File })
	return spec, nil
}

// JoinOptions tunes join-key normalization
type JoinOptions struct {
	// IgnoreCase folds case in addition to trimming whitespace
	IgnoreCase bool
}

// Joiner performs an N-way inner equality join.
//
// Tables 1..N-1 are indexed by normalized key (first occurrence wins), then
// table 0 is scanned in order and every key found in all indexes yields one
// RowGroup.
type Joiner struct {
	tables  []*table.Table
	spec    JoinSpec
	opts    JoinOptions
	indexes []map[string]int
}

// NewJoiner validates spec against tables and builds the key indexes
func NewJoiner(tables []*table.Table, spec JoinSpec, opts JoinOptions) (*Joiner, error) {
	if len(tables) == 0 {
		return nil, newError(InvalidReference, "", "no input tables")
	}
	if len(spec) != len(tables) {
		return nil, newError(InvalidReference, "", "join spec has %d references for %d inputs", len(spec), len(tables))
	}
	for i, ref := range spec {
		if ref.File != i {
			return nil, newError(InvalidReference, ref.Text, "join reference %d addresses input %d", i, ref.File)
		}
		if ref.Column >= tables[i].Width() && tables[i].Len() > 0 {
			return nil, newError(UnknownColumn, ref.Text, "column position %d out of range in %s", ref.Column, tables[i].Name)
		}
	}

	j := &Joiner{
		tables:  tables,
		spec:    spec,
		opts:    opts,
		indexes: make([]map[string]int, len(tables)),
	}
	for i := 1; i < len(tables); i++ {
		j.indexes[i] = j.buildIndex(i)
	}
	return j, nil
}

// normalize maps a raw key cell to its join form
func (j *Joiner) normalize(key string) string {
	key = strings.TrimSpace(key)
	if j.opts.IgnoreCase {
		key = strings.ToLower(key)
	}
	return key
}

// buildIndex maps each normalized key of table i to its first row
func (j *Joiner) buildIndex(i int) map[string]int {
	tbl := j.tables[i]
	ref := j.spec[i]
	index := make(map[string]int, tbl.Len())
	duplicates := 0
	short := 0

	for pos, row := range tbl.Rows {
		cell, ok := ref.CellFromRow(row)
		if !ok {
			short++
			continue
		}
		key := j.normalize(cell)
		if _, exists := index[key]; exists {
			duplicates++
			continue
		}
		index[key] = pos
	}

	slog.Debug("built join index",
		slog.String("table", tbl.Name),
		slog.String("column", ref.Text),
		slog.Int("keys", len(index)),
		slog.Int("duplicate_keys", duplicates),
		slog.Int("short_rows", short),
	)
	if duplicates > 0 {
		slog.Warn("duplicate join keys ignored, first occurrence kept",
			slog.String("table", tbl.Name),
			slog.Int("duplicate_keys", duplicates),
		)
	}

	return index
}

// All returns the row-groups lazily, in table 0 row order
func (j *Joiner) All() iter.Seq[RowGroup] {
	return func(yield func(RowGroup) bool) {
		seen := make(map[string]struct{})
		position := 0
		n := len(j.tables)

		for pos, row := range j.tables[0].Rows {
			cell, ok := j.spec[0].CellFromRow(row)
			if !ok {
				continue
			}
			key := j.normalize(cell)
			if _, dup := seen[key]; dup {
				continue
			}

			indices := make([]int, n)
			indices[0] = pos
			matched := true
			for i := 1; i < n; i++ {
				at, found := j.indexes[i][key]
				if !found {
					matched = false
					break
				}
				indices[i] = at
			}
			if !matched {
				continue
			}
			seen[key] = struct{}{}

			rows := make([]table.Row, n)
			for i, at := range indices {
				rows[i] = j.tables[i].Rows[at]
			}
			if !yield(RowGroup{Position: position, Indices: indices, Rows: rows}) {
				return
			}
			position++
		}
	}
}

// Join parses refs, builds a Joiner and collects every row-group
func Join(tables []*table.Table, refs []string, opts JoinOptions) ([]RowGroup, error) {
	spec, err := ParseJoinSpec(refs, tables)
	if err != nil {
		return nil, err
	}
	joiner, err := NewJoiner(tables, spec, opts)
	if err != nil {
		return nil, err
	}
	return joiner.Collect(), nil
}

// Collect materializes the join
func (j *Joiner) Collect() []RowGroup {
	return j.CollectN(0)
}

// CollectN materializes at most limit row-groups. A limit <= 0 means no
// limit.
func (j *Joiner) CollectN(limit int) []RowGroup {
	groups := make([]RowGroup, 0)
	for group := range j.All() {
		if limit > 0 && len(groups) == limit {
			break
		}
		groups = append(groups, group)
	}

	slog.Info("join completed",
		slog.Int("inputs", len(j.tables)),
		slog.Int("first_table_rows", j.tables[0].Len()),
		slog.Int("row_groups", len(groups)),
		slog.Int("limit", limit),
	)
	return groups
}
