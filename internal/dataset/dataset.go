package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	// MaxFileSize caps uploaded/downloaded spreadsheet size.
	MaxFileSize = 10 << 20
	// DefaultMaxRows caps rows loaded into memory; 0 means unlimited.
	DefaultMaxRows = 100000
)

// Options controls dataset loading.
type Options struct {
	// MaxRows limits rows loaded; 0 means DefaultMaxRows.
	MaxRows int
	// Delimiter for CSV. If 0, auto-detects among ',', ';', '\t'.
	Delimiter rune
	// Sheet selects an XLSX sheet by name; empty means the first sheet.
	Sheet string
}

// Table is a loaded tabular dataset: a header row plus data rows.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
	// Truncated reports whether loading stopped at MaxRows.
	Truncated bool
}

// Record maps a column name to a scalar cell value.
type Record map[string]string

// Records converts rows into column-name keyed records.
func (t *Table) Records() []Record {
	out := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(Record, len(t.Headers))
		for i, h := range t.Headers {
			if i < len(row) {
				rec[h] = strings.TrimSpace(row[i])
			} else {
				rec[h] = ""
			}
		}
		out = append(out, rec)
	}
	return out
}

// Column returns all values of a named column, in row order.
func (t *Table) Column(name string) []string {
	idx := -1
	for i, h := range t.Headers {
		if h == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	out := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if idx < len(row) {
			out = append(out, strings.TrimSpace(row[idx]))
		} else {
			out = append(out, "")
		}
	}
	return out
}

// Load reads a dataset from a local file, choosing the loader by extension.
// CSV and TSV go through the CSV reader; .xlsx goes through excelize.
func Load(path string, opt Options) (*Table, error) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") {
		return LoadXLSXFile(path, opt)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	if opt.Delimiter == 0 && strings.HasSuffix(lower, ".tsv") {
		opt.Delimiter = '\t'
	}
	t, err := LoadCSV(f, opt)
	if err != nil {
		return nil, err
	}
	t.Name = filepath.Base(path)
	return t, nil
}

// LoadCSV reads a CSV/TSV stream into a Table. Headers are trimmed; empty
// header cells are synthesized as "column_N". Ragged rows are padded.
func LoadCSV(r io.Reader, opt Options) (*Table, error) {
	delim := opt.Delimiter
	buffered, sniffed, err := sniffDelimiter(r)
	if err != nil {
		return nil, err
	}
	if delim == 0 {
		delim = sniffed
	}

	cr := csv.NewReader(buffered)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("dataset is empty")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	headers := CleanHeaders(header)

	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}

	t := &Table{Headers: headers}
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			// Skip malformed rows rather than failing the whole load.
			continue
		}
		if len(t.Rows) >= maxRows {
			t.Truncated = true
			break
		}
		row := make([]string, len(headers))
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	if len(t.Rows) == 0 {
		return nil, errors.New("dataset has no data rows")
	}
	return t, nil
}

// CleanHeaders trims whitespace and synthesizes names for blank headers.
func CleanHeaders(raw []string) []string {
	out := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		if n, dup := seen[h]; dup {
			seen[h] = n + 1
			h = fmt.Sprintf("%s_%d", h, n+1)
		}
		seen[h] = 1
		out[i] = h
	}
	return out
}

// sniffDelimiter peeks at the first line and picks the separator that splits
// it into the most fields among ',', ';' and '\t'. Returns a reader that
// replays the consumed bytes.
func sniffDelimiter(r io.Reader) (io.Reader, rune, error) {
	head := make([]byte, 4096)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, ',', fmt.Errorf("read dataset: %w", err)
	}
	head = head[:n]
	firstLine := string(head)
	if idx := strings.IndexByte(firstLine, '\n'); idx >= 0 {
		firstLine = firstLine[:idx]
	}
	best := ','
	bestCount := strings.Count(firstLine, ",")
	if c := strings.Count(firstLine, ";"); c > bestCount {
		best, bestCount = ';', c
	}
	if c := strings.Count(firstLine, "\t"); c > bestCount {
		best = '\t'
	}
	return io.MultiReader(strings.NewReader(string(head)), r), best, nil
}
