package reader

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/vegasq/csvjoin/table"
)

func writeWorkbook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName() error = %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow() error = %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.xlsx")
	writeWorkbook(t, path, [][]interface{}{
		{"# city", "id", "bar"},
		{"Austin", 1, 100},
		{},
		{" Berkeley ", 2, 200},
	})

	tbl, err := ReadFile(path, DefaultOptions())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	wantColumns := []string{"city", "id", "bar"}
	if !reflect.DeepEqual(tbl.Columns, wantColumns) {
		t.Errorf("Columns = %q, want %q", tbl.Columns, wantColumns)
	}
	wantRows := []table.Row{{"Austin", "1", "100"}, {"Berkeley", "2", "200"}}
	if !reflect.DeepEqual(tbl.Rows, wantRows) {
		t.Errorf("Rows = %q, want %q", tbl.Rows, wantRows)
	}
}

func TestReadXLSX_NoHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.xlsx")
	writeWorkbook(t, path, [][]interface{}{
		{"Austin", 1},
		{"Duke", 4},
	})

	tbl, err := ReadFile(path, DefaultOptions())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if tbl.HasHeader() {
		t.Errorf("HasHeader() = true, want false (columns %q)", tbl.Columns)
	}
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}
}

func TestReadXLSX_Invalid(t *testing.T) {
	if _, err := ReadXLSX([]byte("not a workbook"), "bad.xlsx", DefaultOptions()); err == nil {
		t.Error("ReadXLSX() expected error for invalid data")
	}
}
