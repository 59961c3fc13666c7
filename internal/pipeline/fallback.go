package pipeline

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fernandopv429/data-gemini-visualizer/internal/dataset"
	"github.com/fernandopv429/data-gemini-visualizer/internal/profile"
)

// LocalCleanPlan derives a cleaning plan from the profile alone: drop
// duplicates when any exist, impute numeric columns with the mean and
// categorical columns with the mode when they have missing cells.
func LocalCleanPlan(prof *profile.Profile) CleanPlan {
	plan := CleanPlan{}
	if prof.Quality.DuplicateRows > 0 {
		plan.DropDuplicates = true
		plan.Notes = append(plan.Notes, fmt.Sprintf("drop %d duplicate rows", prof.Quality.DuplicateRows))
	}
	for _, c := range prof.Columns {
		if c.Missing == 0 {
			continue
		}
		switch c.Kind {
		case profile.KindNumeric:
			plan.Imputations = append(plan.Imputations, Imputation{Column: c.Name, Strategy: "mean"})
			plan.Notes = append(plan.Notes, fmt.Sprintf("fill %d missing values in %q with column mean", c.Missing, c.Name))
		case profile.KindCategorical:
			plan.Imputations = append(plan.Imputations, Imputation{Column: c.Name, Strategy: "mode"})
			plan.Notes = append(plan.Notes, fmt.Sprintf("fill %d missing values in %q with most frequent value", c.Missing, c.Name))
		}
	}
	return plan
}

// ApplyCleanPlan mutates the table according to the plan. Unknown columns
// and strategies are ignored; cleaning is best-effort.
func ApplyCleanPlan(t *dataset.Table, plan CleanPlan) {
	if plan.DropDuplicates {
		dropDuplicateRows(t)
	}
	for _, imp := range plan.Imputations {
		idx := columnIndex(t, imp.Column)
		if idx < 0 {
			continue
		}
		fill := imputationValue(t, idx, imp)
		if fill == "" {
			continue
		}
		for _, row := range t.Rows {
			if idx < len(row) && profile.IsMissing(row[idx]) {
				row[idx] = fill
			}
		}
	}
}

func dropDuplicateRows(t *dataset.Table) {
	seen := make(map[string]bool, len(t.Rows))
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		key := strings.Join(row, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, row)
	}
	t.Rows = kept
}

func columnIndex(t *dataset.Table, name string) int {
	for i, h := range t.Headers {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

func imputationValue(t *dataset.Table, idx int, imp Imputation) string {
	if imp.Strategy == "constant" {
		return imp.Value
	}
	var nums []float64
	counts := make(map[string]int)
	for _, row := range t.Rows {
		if idx >= len(row) || profile.IsMissing(row[idx]) {
			continue
		}
		v := strings.TrimSpace(row[idx])
		counts[v]++
		if n, ok := profile.ParseNumber(v); ok {
			nums = append(nums, n)
		}
	}
	switch imp.Strategy {
	case "mean":
		if len(nums) == 0 {
			return ""
		}
		var sum float64
		for _, n := range nums {
			sum += n
		}
		return strconv.FormatFloat(sum/float64(len(nums)), 'f', -1, 64)
	case "median":
		if len(nums) == 0 {
			return ""
		}
		sort.Float64s(nums)
		mid := len(nums) / 2
		if len(nums)%2 == 0 {
			return strconv.FormatFloat((nums[mid-1]+nums[mid])/2, 'f', -1, 64)
		}
		return strconv.FormatFloat(nums[mid], 'f', -1, 64)
	case "mode":
		best, bestCnt := "", 0
		for v, c := range counts {
			if c > bestCnt || (c == bestCnt && v < best) {
				best, bestCnt = v, c
			}
		}
		return best
	}
	return ""
}

// LocalAnalysis converts a profile into the analyze-stage shape.
func LocalAnalysis(prof *profile.Profile) Analysis {
	a := Analysis{
		Classification: prof.Classification,
		Quality:        prof.Quality,
		Source:         "local",
	}
	for _, c := range prof.Columns {
		if c.IDLike {
			a.Insights = append(a.Insights, fmt.Sprintf("%q looks like an identifier column (all values unique)", c.Name))
		}
	}
	if prof.Quality.DuplicateRows > 0 {
		a.Insights = append(a.Insights, fmt.Sprintf("%d duplicate rows detected", prof.Quality.DuplicateRows))
	}
	return a
}

// LocalSummary writes a canned plain-language summary from the profile.
func LocalSummary(prof *profile.Profile) string {
	cls := prof.Classification
	return fmt.Sprintf(
		"The dataset %s contains %d rows and %d columns (%d numeric, %d categorical, %d temporal). "+
			"%d cells are missing and %d rows are duplicates.",
		prof.Name, prof.Rows, len(prof.Columns),
		len(cls.Numeric), len(cls.Categorical), len(cls.Temporal),
		prof.Quality.MissingValues, prof.Quality.DuplicateRows)
}

// LocalReport assembles a static report from the profile and summary.
func LocalReport(prof *profile.Profile, summary string) *Report {
	r := &Report{
		ExecutiveSummary: summary,
		TechnicalNotes: fmt.Sprintf(
			"Automated offline analysis. Quality counts: %d duplicate rows, %d missing cells, %d inconsistent cells out of %d rows.",
			prof.Quality.DuplicateRows, prof.Quality.MissingValues, prof.Quality.Inconsistencies, prof.Rows),
		Source: "local",
	}
	for _, c := range prof.Columns {
		if c.Kind == profile.KindNumeric && c.NonNull > 0 {
			r.KeyInsights = append(r.KeyInsights,
				fmt.Sprintf("%s ranges from %.4g to %.4g (mean %.4g)", c.Name, c.Min, c.Max, c.Mean))
		}
		if len(r.KeyInsights) >= 5 {
			break
		}
	}
	if prof.Quality.MissingValues > 0 {
		r.Recommendations = append(r.Recommendations, "Review columns with missing values before drawing conclusions.")
	}
	if prof.Quality.DuplicateRows > 0 {
		r.Recommendations = append(r.Recommendations, "Deduplicate rows at the source to avoid double counting.")
	}
	if len(r.Recommendations) == 0 {
		r.Recommendations = append(r.Recommendations, "Re-run with an API key configured for a narrative report.")
	}
	return r
}
