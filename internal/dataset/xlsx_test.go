package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheets map[string][][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("new sheet: %v", err)
			}
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestLoadXLSXFirstSheet(t *testing.T) {
	buf := writeWorkbook(t, map[string][][]any{
		"Data": {
			{"product", "units"},
			{"widget", 12},
			{"gadget", 7},
		},
	})
	tbl, err := LoadXLSX(buf, Options{})
	if err != nil {
		t.Fatalf("LoadXLSX: %v", err)
	}
	if len(tbl.Headers) != 2 || tbl.Headers[0] != "product" {
		t.Fatalf("headers = %v", tbl.Headers)
	}
	if len(tbl.Rows) != 2 || tbl.Rows[0][1] != "12" {
		t.Fatalf("rows = %v", tbl.Rows)
	}
}

func TestLoadXLSXNamedSheet(t *testing.T) {
	buf := writeWorkbook(t, map[string][][]any{
		"Summary": {
			{"note"},
			{"ignore me"},
		},
	})
	// Add a second sheet to the same workbook.
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	if _, err := f.NewSheet("Numbers"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	for i, row := range [][]any{{"n"}, {1}, {2}} {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Numbers", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	out, err := f.WriteToBuffer()
	f.Close()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	tbl, err := LoadXLSX(out, Options{Sheet: "Numbers"})
	if err != nil {
		t.Fatalf("LoadXLSX: %v", err)
	}
	if tbl.Headers[0] != "n" || len(tbl.Rows) != 2 {
		t.Fatalf("unexpected table: %v %v", tbl.Headers, tbl.Rows)
	}
}

func TestLoadXLSXFileSetsName(t *testing.T) {
	buf := writeWorkbook(t, map[string][][]any{
		"Data": {
			{"a"},
			{"1"},
		},
	})
	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	tbl, err := LoadXLSXFile(path, Options{})
	if err != nil {
		t.Fatalf("LoadXLSXFile: %v", err)
	}
	if tbl.Name != "book.xlsx" {
		t.Fatalf("name = %q", tbl.Name)
	}
}

func TestLoadXLSXEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	f.Close()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	if _, err := LoadXLSX(buf, Options{}); err == nil {
		t.Fatalf("expected error for empty sheet")
	}
}
