package query

import (
	"testing"

	"github.com/vegasq/csvjoin/table"
)

// cityTables returns the two tables of the worked example
func cityTables(t *testing.T) []*table.Table {
	t.Helper()
	left, err := table.New("file0.csv", []string{"city", "date", "time", "delta", "foo"}, []table.Row{
		{"Austin", "20140916", "111", "0", "1"},
		{"Berkeley", "20140916", "111", "0", "2"},
		{"Duke", "20140916", "111", "0", "3"},
		{"Eaton", "20140916", "111", "0", "4"},
	})
	if err != nil {
		t.Fatalf("failed to build left table: %v", err)
	}
	right, err := table.New("file1.csv", []string{"city", "id", "code", "bar"}, []table.Row{
		{"Austin", "1", "11", "100"},
		{"Berkeley", "2", "22", "200"},
		{"Charleston", "3", "33", "300"},
		{"Duke", "4", "44", "400"},
	})
	if err != nil {
		t.Fatalf("failed to build right table: %v", err)
	}
	return []*table.Table{left, right}
}

// singleGroup builds a one-table row-group for expression tests
func singleGroup(t *testing.T, columns []string, cells ...string) ([]*table.Table, RowGroup) {
	t.Helper()
	row := table.Row(cells)
	tbl, err := table.New("t.csv", columns, []table.Row{row})
	if err != nil {
		t.Fatalf("failed to build table: %v", err)
	}
	return []*table.Table{tbl}, RowGroup{Position: 0, Indices: []int{0}, Rows: []table.Row{row}}
}

func rowsEqual(a, b []table.Row) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}
