package dataset

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// LoadXLSXFile reads an XLSX workbook from disk.
func LoadXLSXFile(path string, opt Options) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()
	t, err := tableFromWorkbook(f, opt)
	if err != nil {
		return nil, err
	}
	t.Name = filepath.Base(path)
	return t, nil
}

// LoadXLSX reads an XLSX workbook from a stream (e.g., an upload).
func LoadXLSX(r io.Reader, opt Options) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()
	return tableFromWorkbook(f, opt)
}

func tableFromWorkbook(f *excelize.File, opt Options) (*Table, error) {
	sheet := opt.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, errors.New("sheet is empty")
	}
	headers := CleanHeaders(rows[0])

	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}

	t := &Table{Headers: headers}
	for _, rec := range rows[1:] {
		if len(t.Rows) >= maxRows {
			t.Truncated = true
			break
		}
		row := make([]string, len(headers))
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	if len(t.Rows) == 0 {
		return nil, errors.New("sheet has no data rows")
	}
	return t, nil
}
