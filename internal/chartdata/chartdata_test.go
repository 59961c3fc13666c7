package chartdata

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fernandopv429/data-gemini-visualizer/internal/dataset"
	"github.com/fernandopv429/data-gemini-visualizer/internal/profile"
)

func mustTable(t *testing.T, csv string) *dataset.Table {
	t.Helper()
	tbl, err := dataset.LoadCSV(strings.NewReader(csv), dataset.Options{})
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return tbl
}

func TestBuildBarAggregatesAndSorts(t *testing.T) {
	tbl := mustTable(t, `region,amount
North,100
South,300
North,50
East,20
`)
	cls := profile.Classification{Categorical: []string{"region"}, Numeric: []string{"amount"}}
	b := Build(tbl, cls)

	if len(b.Bar) != 3 {
		t.Fatalf("expected 3 bars, got %v", b.Bar)
	}
	if b.Bar[0].Name != "South" || b.Bar[0].Value != 300 {
		t.Fatalf("expected South first, got %+v", b.Bar[0])
	}
	if b.Bar[1].Name != "North" || b.Bar[1].Value != 150 {
		t.Fatalf("expected North summed to 150, got %+v", b.Bar[1])
	}
	if len(b.Pie) != 3 {
		t.Fatalf("pie should mirror bar, got %v", b.Pie)
	}
	if b.Titles.Bar != "amount by region" {
		t.Fatalf("unexpected title: %q", b.Titles.Bar)
	}
	if b.Source != "local" {
		t.Fatalf("source = %q", b.Source)
	}
}

func TestBuildCapsSlices(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("cat,v\n")
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&sb, "c%d,%d\n", i, i)
	}
	tbl := mustTable(t, sb.String())
	cls := profile.Classification{Categorical: []string{"cat"}, Numeric: []string{"v"}}
	b := Build(tbl, cls)
	if len(b.Bar) != 10 {
		t.Fatalf("expected top-10 cap, got %d", len(b.Bar))
	}
}

func TestBuildCountsWhenNoNumericColumn(t *testing.T) {
	tbl := mustTable(t, `color
red
red
blue
`)
	cls := profile.Classification{Categorical: []string{"color"}}
	b := Build(tbl, cls)
	if len(b.Bar) != 2 || b.Bar[0].Name != "red" || b.Bar[0].Value != 2 {
		t.Fatalf("unexpected counts: %v", b.Bar)
	}
	if b.Titles.Bar != "count by color" {
		t.Fatalf("unexpected title: %q", b.Titles.Bar)
	}
}

func TestBuildLineSortsTemporally(t *testing.T) {
	tbl := mustTable(t, `date,sales
2024-03-01,30
2024-01-01,10
2024-02-01,20
`)
	cls := profile.Classification{Temporal: []string{"date"}, Numeric: []string{"sales"}}
	b := Build(tbl, cls)
	if len(b.Line) != 3 {
		t.Fatalf("expected 3 line points, got %v", b.Line)
	}
	if b.Line[0].X != "2024-01-01" || b.Line[2].X != "2024-03-01" {
		t.Fatalf("line not in temporal order: %v", b.Line)
	}
}

func TestBuildScatterFromTwoNumerics(t *testing.T) {
	tbl := mustTable(t, `w,h,label
1,2,a
3,4,b
x,5,c
`)
	cls := profile.Classification{Numeric: []string{"w", "h"}, Categorical: []string{"label"}}
	b := Build(tbl, cls)
	if len(b.Scatter) != 2 {
		t.Fatalf("non-numeric pair should be skipped, got %v", b.Scatter)
	}
	if b.Scatter[0].X != 1 || b.Scatter[0].Y != 2 || b.Scatter[0].Name != "a" {
		t.Fatalf("unexpected point: %+v", b.Scatter[0])
	}
	if b.Titles.Scatter != "h vs w" {
		t.Fatalf("unexpected title: %q", b.Titles.Scatter)
	}
}

func TestBuildEmptyClassification(t *testing.T) {
	tbl := mustTable(t, `a
1
`)
	b := Build(tbl, profile.Classification{})
	if !b.Empty() {
		t.Fatalf("expected empty bundle, got %+v", b)
	}
}
