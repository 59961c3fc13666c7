package profile

import (
	"fmt"
	"strings"

	"github.com/fernandopv429/data-gemini-visualizer/internal/dataset"
)

// Markdown renders a compact profile suitable for prompts or standalone docs.
func (p *Profile) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if p.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", p.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", p.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n", len(p.Columns)))
	b.WriteString(fmt.Sprintf("Duplicates: %d, Missing cells: %d, Inconsistent cells: %d\n\n",
		p.Quality.DuplicateRows, p.Quality.MissingValues, p.Quality.Inconsistencies))

	b.WriteString("[SCHEMA]\n")
	for _, c := range p.Columns {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", c.Name, c.Kind, c.NonNull, missPct))
		switch c.Kind {
		case KindNumeric:
			b.WriteString(fmt.Sprintf("; min %.4g, max %.4g, mean %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Std))
		case KindCategorical:
			if len(c.TopValues) > 0 {
				b.WriteString("; top: ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
				}
				if c.Unique > len(c.TopValues) {
					b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
				}
			}
		}
		if c.IDLike {
			b.WriteString(" [id-like]")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// SampleMarkdown renders up to n sample rows as a markdown table. This is the
// row excerpt included in AI prompts.
func SampleMarkdown(t *dataset.Table, n int) string {
	if n <= 0 {
		n = 5
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	var b strings.Builder
	b.WriteString("| ")
	for i, h := range t.Headers {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(safeVal(h))
	}
	b.WriteString(" |\n| ")
	for i := range t.Headers {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString("---")
	}
	b.WriteString(" |\n")
	for _, row := range t.Rows[:n] {
		b.WriteString("| ")
		for i := range t.Headers {
			if i > 0 {
				b.WriteString(" | ")
			}
			val := ""
			if i < len(row) {
				val = row[i]
			}
			if len(val) > 80 {
				val = val[:77] + "..."
			}
			b.WriteString(safeVal(val))
		}
		b.WriteString(" |\n")
	}
	return b.String()
}

func safeVal(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
