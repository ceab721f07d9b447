package reader

import (
	"reflect"
	"testing"

	"github.com/vegasq/csvjoin/table"
)

func TestExtractSchemaInfo(t *testing.T) {
	tbl := table.MustNew("file1.csv", []string{"city", "id", "", "2", "first name"}, []table.Row{
		{"Austin", "100", "", "x", "Ann"},
		{"Berkeley", "2e3", "", "y"},
	})

	got := ExtractSchemaInfo(1, tbl)
	want := []ColumnInfo{
		{File: 1, Position: 0, Name: "city", Ref: "1:city", Type: "text"},
		{File: 1, Position: 1, Name: "id", Ref: "1:id", Type: "numeric"},
		{File: 1, Position: 2, Name: "", Ref: "1:2", Type: "empty"},
		{File: 1, Position: 3, Name: "2", Ref: "1:3", Type: "text"},
		{File: 1, Position: 4, Name: "first name", Ref: "1:4", Type: "text"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractSchemaInfo() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestExtractSchemaInfo_NoHeader(t *testing.T) {
	tbl := table.MustNew("plain.csv", nil, []table.Row{
		{"a", "1"},
		{"b", "2", "3"},
	})

	got := ExtractSchemaInfo(0, tbl)
	if len(got) != 3 {
		t.Fatalf("ExtractSchemaInfo() returned %d columns, want 3", len(got))
	}
	for i, info := range got {
		if info.Name != "" {
			t.Errorf("column %d Name = %q, want empty", i, info.Name)
		}
	}
	if got[2].Ref != "0:2" || got[2].Type != "numeric" {
		t.Errorf("column 2 = %+v, want ref 0:2 numeric", got[2])
	}
}

func TestSchemaTable(t *testing.T) {
	tables := []*table.Table{
		table.MustNew("file0.csv", []string{"city", "foo"}, []table.Row{{"Austin", "1"}}),
		table.MustNew("file1.csv", []string{"city"}, []table.Row{{"Austin"}}),
	}

	got := SchemaTable(tables)
	want := []table.Row{
		{"0", "file0.csv", "0", "city", "0:city", "text"},
		{"0", "file0.csv", "1", "foo", "0:foo", "numeric"},
		{"1", "file1.csv", "0", "city", "1:city", "text"},
	}
	if !reflect.DeepEqual(got.Rows, want) {
		t.Errorf("SchemaTable() rows = %q, want %q", got.Rows, want)
	}
	if idx, ok := got.ColumnIndex("ref"); !ok || idx != 4 {
		t.Errorf("ColumnIndex(ref) = %d, %v", idx, ok)
	}
}
