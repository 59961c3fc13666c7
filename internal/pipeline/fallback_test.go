package pipeline

import (
	"strings"
	"testing"

	"github.com/fernandopv429/data-gemini-visualizer/internal/profile"
)

func TestApplyCleanPlanImputationStrategies(t *testing.T) {
	cases := []struct {
		name     string
		strategy string
		value    string
		want     string
	}{
		{"mean", "mean", "", "20"},
		{"median", "median", "", "20"},
		{"constant", "constant", "-1", "-1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tbl := mustTable(t, "v\n10\n20\n30\n\nn/a\n")
			ApplyCleanPlan(tbl, CleanPlan{Imputations: []Imputation{
				{Column: "v", Strategy: c.strategy, Value: c.value},
			}})
			for _, row := range tbl.Rows {
				if profile.IsMissing(row[0]) {
					t.Fatalf("missing cell not filled: %v", tbl.Rows)
				}
			}
			if tbl.Rows[3][0] != c.want {
				t.Fatalf("fill = %q, want %q", tbl.Rows[3][0], c.want)
			}
		})
	}
}

func TestApplyCleanPlanModeImputation(t *testing.T) {
	tbl := mustTable(t, "color\nred\nred\nblue\nn/a\n")
	ApplyCleanPlan(tbl, CleanPlan{Imputations: []Imputation{
		{Column: "color", Strategy: "mode"},
	}})
	if tbl.Rows[3][0] != "red" {
		t.Fatalf("mode fill = %q", tbl.Rows[3][0])
	}
}

func TestApplyCleanPlanIgnoresUnknowns(t *testing.T) {
	tbl := mustTable(t, "a\n1\nn/a\n")
	ApplyCleanPlan(tbl, CleanPlan{Imputations: []Imputation{
		{Column: "missing_col", Strategy: "mean"},
		{Column: "a", Strategy: "bogus"},
	}})
	if tbl.Rows[1][0] != "n/a" {
		t.Fatalf("unknown strategy should not fill, got %q", tbl.Rows[1][0])
	}
}

func TestApplyCleanPlanColumnNameCaseInsensitive(t *testing.T) {
	tbl := mustTable(t, "Amount\n5\nn/a\n")
	ApplyCleanPlan(tbl, CleanPlan{Imputations: []Imputation{
		{Column: "amount", Strategy: "constant", Value: "9"},
	}})
	if tbl.Rows[1][0] != "9" {
		t.Fatalf("case-insensitive match failed: %v", tbl.Rows)
	}
}

func TestLocalCleanPlanFromProfile(t *testing.T) {
	tbl := mustTable(t, "region,amount\nNorth,100\nNorth,100\nSouth,\n")
	prof := profile.Analyze(tbl)
	plan := LocalCleanPlan(prof)

	if !plan.DropDuplicates {
		t.Fatalf("expected duplicate drop")
	}
	if len(plan.Imputations) != 1 || plan.Imputations[0].Column != "amount" || plan.Imputations[0].Strategy != "mean" {
		t.Fatalf("unexpected imputations: %v", plan.Imputations)
	}
	joined := strings.Join(plan.Notes, "; ")
	if !strings.Contains(joined, "duplicate") || !strings.Contains(joined, "amount") {
		t.Fatalf("notes = %v", plan.Notes)
	}
}
