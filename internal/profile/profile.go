package profile

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fernandopv429/data-gemini-visualizer/internal/dataset"
)

// typeThreshold is the share of non-empty values that must parse as a type
// before the column is classified as that type.
const typeThreshold = 0.8

// Kind is a detected column type.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
	KindTemporal    Kind = "temporal"
)

// Classification holds three disjoint column-name lists by detected type.
type Classification struct {
	Numeric     []string `json:"numeric"`
	Categorical []string `json:"categorical"`
	Temporal    []string `json:"temporal"`
}

// Quality is a best-effort data-quality summary of a table.
type Quality struct {
	TotalRows       int `json:"totalRows"`
	DuplicateRows   int `json:"duplicateRows"`
	MissingValues   int `json:"missingValues"`
	Inconsistencies int `json:"inconsistencies"`
}

// ColumnSummary captures inferred type and statistics per column.
type ColumnSummary struct {
	Name    string `json:"name"`
	Kind    Kind   `json:"kind"`
	NonNull int    `json:"nonNull"`
	Missing int    `json:"missing"`
	Unique  int    `json:"unique"`
	// IDLike marks columns whose every value is distinct (likely identifiers).
	IDLike bool `json:"idLike,omitempty"`
	// Numeric stats (valid when Kind == KindNumeric).
	Min  float64 `json:"min,omitempty"`
	Max  float64 `json:"max,omitempty"`
	Mean float64 `json:"mean,omitempty"`
	Std  float64 `json:"std,omitempty"`
	// Top categorical values by frequency.
	TopValues []ValueCount `json:"topValues,omitempty"`
}

// ValueCount pairs a categorical value with its occurrence count.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Profile is the full local analysis of a table.
type Profile struct {
	Name           string          `json:"name"`
	Rows           int             `json:"rows"`
	Columns        []ColumnSummary `json:"columns"`
	Classification Classification  `json:"classification"`
	Quality        Quality         `json:"quality"`
}

// Analyze inspects a table and produces a Profile. Pure function: no I/O.
func Analyze(t *dataset.Table) *Profile {
	p := &Profile{Name: t.Name, Rows: len(t.Rows)}
	p.Quality.TotalRows = len(t.Rows)
	p.Quality.DuplicateRows = countDuplicates(t.Rows)

	for _, name := range t.Headers {
		col := summarizeColumn(name, t.Column(name))
		p.Quality.MissingValues += col.missing
		p.Quality.Inconsistencies += col.inconsistent
		p.Columns = append(p.Columns, col.ColumnSummary)
		switch col.Kind {
		case KindNumeric:
			p.Classification.Numeric = append(p.Classification.Numeric, name)
		case KindTemporal:
			p.Classification.Temporal = append(p.Classification.Temporal, name)
		default:
			p.Classification.Categorical = append(p.Classification.Categorical, name)
		}
	}
	return p
}

type columnResult struct {
	ColumnSummary
	missing      int
	inconsistent int
}

func summarizeColumn(name string, values []string) columnResult {
	res := columnResult{ColumnSummary: ColumnSummary{Name: name, Min: math.Inf(1), Max: math.Inf(-1)}}

	var (
		numCnt, dtCnt, txtCnt int
		n                     int
		mean, m2              float64
		uniq                  = make(map[string]int)
	)
	for _, v := range values {
		if IsMissing(v) {
			res.missing++
			continue
		}
		res.NonNull++
		uniq[v]++
		num, isNum := ParseNumber(v)
		isDt := !isNum && IsTemporal(v)
		switch {
		case isNum:
			numCnt++
			// Welford update for streaming mean/std.
			n++
			if num < res.Min {
				res.Min = num
			}
			if num > res.Max {
				res.Max = num
			}
			delta := num - mean
			mean += delta / float64(n)
			m2 += delta * (num - mean)
		case isDt:
			dtCnt++
		default:
			txtCnt++
		}
	}
	res.Missing = res.missing
	res.Unique = len(uniq)

	res.Kind = classify(numCnt, dtCnt, res.NonNull, values)
	switch res.Kind {
	case KindNumeric:
		res.Mean = mean
		if n > 1 {
			res.Std = math.Sqrt(m2 / float64(n-1))
		}
		// Cells that failed to parse as the majority type count as
		// inconsistencies.
		res.inconsistent = dtCnt + txtCnt
	case KindTemporal:
		res.Min, res.Max = 0, 0
		res.inconsistent = numCnt + txtCnt
	default:
		res.Min, res.Max = 0, 0
		res.TopValues = topValues(uniq, 8)
	}
	if res.NonNull > 10 && res.Unique == res.NonNull {
		res.IDLike = true
	}
	return res
}

// classify picks the column kind using the 80% threshold over non-empty values.
func classify(numCnt, dtCnt, nonNull int, values []string) Kind {
	if nonNull == 0 {
		return KindCategorical
	}
	threshold := int(float64(nonNull) * typeThreshold)
	if threshold == 0 {
		threshold = 1
	}
	if dtCnt >= threshold {
		return KindTemporal
	}
	if numCnt >= threshold {
		return KindNumeric
	}
	// Month-name style columns ("Jan-2026", "Q1 2025") parse as neither
	// numbers nor full dates but are still temporal.
	if matchesTemporalPattern(values) {
		return KindTemporal
	}
	return KindCategorical
}

func topValues(counts map[string]int, limit int) []ValueCount {
	out := make([]ValueCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, ValueCount{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func countDuplicates(rows [][]string) int {
	seen := make(map[string]bool, len(rows))
	dups := 0
	for _, row := range rows {
		key := strings.Join(row, "\x1f")
		if seen[key] {
			dups++
		}
		seen[key] = true
	}
	return dups
}

// IsMissing reports whether a cell value counts as missing.
func IsMissing(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "null", "n/a", "na", "nan", "none", "-":
		return true
	}
	return false
}

// ParseNumber parses a cell as a float, tolerating thousands separators,
// currency prefixes, and percent suffixes.
func ParseNumber(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, false
	}
	neg := false
	if strings.HasPrefix(raw, "-") {
		neg = true
		raw = raw[1:]
	}
	for _, prefix := range []string{"$", "€", "£", "R$"} {
		raw = strings.TrimPrefix(raw, prefix)
	}
	raw = strings.TrimSuffix(raw, "%")
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.TrimSpace(raw)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}

var timeLayouts = []string{
	time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
	"2006-01-02 15:04", "2006-01-02 15:04:05", "1/2/2006", "Jan 2, 2006", "2 Jan 2006",
}

// IsTemporal reports whether a cell parses as a date/time.
func IsTemporal(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, l := range timeLayouts {
		if _, err := time.Parse(l, s); err == nil {
			return true
		}
	}
	return false
}

var temporalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z][a-z]{2}-\d{4}$`),  // Jan-2026
	regexp.MustCompile(`^\d{4}-\d{2}$`),          // 2026-01
	regexp.MustCompile(`^Q[1-4][\s-]\d{4}$`),     // Q1 2026 / Q1-2026
	regexp.MustCompile(`^[A-Z][a-z]+ \d{4}$`),    // January 2026
}

func matchesTemporalPattern(values []string) bool {
	nonEmpty, matched := 0, 0
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		nonEmpty++
		for _, re := range temporalPatterns {
			if re.MatchString(strings.TrimSpace(v)) {
				matched++
				break
			}
		}
	}
	return nonEmpty > 0 && float64(matched)/float64(nonEmpty) >= typeThreshold
}

// TemporalOrder converts a temporal label into a sortable integer.
// Returns 0 when the label is not recognized.
func TemporalOrder(s string) int64 {
	s = strings.TrimSpace(s)
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.Unix()
		}
	}
	if t, err := time.Parse("Jan-2006", s); err == nil {
		return t.Unix()
	}
	if t, err := time.Parse("2006-01", s); err == nil {
		return t.Unix()
	}
	return 0
}
