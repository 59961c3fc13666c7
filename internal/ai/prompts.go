package ai

import (
	"fmt"
	"strings"
)

// Prompt builders for each pipeline stage. Each takes the compact dataset
// profile (markdown) plus a small row sample, never the full dataset, and
// instructs the model to reply with bare JSON in a stage-specific shape.

// PromptInput bundles the context shared by every stage prompt.
type PromptInput struct {
	DatasetName string
	Profile     string // markdown profile from internal/profile
	Sample      string // markdown table of sample rows
}

const replyJSONOnly = "Respond with ONLY valid JSON. No markdown, no backticks, no commentary."

// CleaningPrompt asks the model for a cleaning plan: which rows to drop and
// how to fill missing values. The plan is applied locally.
func CleaningPrompt(in PromptInput) string {
	var b strings.Builder
	writeHeader(&b, in, "You are a data-cleaning assistant inspecting a tabular dataset.")
	b.WriteString(`TASK:
Propose a cleaning plan for this dataset. Do NOT return cleaned rows; return instructions.

`)
	b.WriteString(replyJSONOnly)
	b.WriteString(`
{
  "dropDuplicates": true,
  "imputations": [
    {"column": "column_name", "strategy": "mean|median|mode|constant", "value": ""}
  ],
  "notes": ["short human-readable description of each action"]
}`)
	return b.String()
}

// AnalysisPrompt asks the model for a quality summary and a column type
// classification into three disjoint lists.
func AnalysisPrompt(in PromptInput) string {
	var b strings.Builder
	writeHeader(&b, in, "You are a data analyst classifying the columns of a tabular dataset.")
	b.WriteString(`TASK:
1. Classify EVERY column into exactly one of: numeric, categorical, temporal.
2. Estimate data quality: total rows, duplicate rows, missing values, inconsistent cells.
3. List up to 5 notable insights about the data.

`)
	b.WriteString(replyJSONOnly)
	b.WriteString(`
{
  "classification": {
    "numeric": ["col"],
    "categorical": ["col"],
    "temporal": ["col"]
  },
  "quality": {"totalRows": 0, "duplicateRows": 0, "missingValues": 0, "inconsistencies": 0},
  "insights": ["..."]
}`)
	return b.String()
}

// ChartDataPrompt asks the model for render-ready chart data in four shapes.
func ChartDataPrompt(in PromptInput, classification string) string {
	var b strings.Builder
	writeHeader(&b, in, "You are preparing chart data from a tabular dataset.")
	if classification != "" {
		b.WriteString("COLUMN CLASSIFICATION:\n")
		b.WriteString(classification)
		b.WriteString("\n\n")
	}
	b.WriteString(`TASK:
Build chart-ready data. Pick the most informative columns:
- bar/pie: group a categorical column, aggregate a numeric column (max 10 slices)
- line: a temporal (or ordered categorical) x-axis against a numeric y-axis
- scatter: two numeric columns, point name from an identifying column

`)
	b.WriteString(replyJSONOnly)
	b.WriteString(`
{
  "bar": [{"name": "...", "value": 0}],
  "line": [{"x": "...", "y": 0}],
  "pie": [{"name": "...", "value": 0}],
  "scatter": [{"x": 0, "y": 0, "name": "..."}],
  "titles": {"bar": "...", "line": "...", "pie": "...", "scatter": "..."}
}`)
	return b.String()
}

// SummaryPrompt asks for a short plain-language summary of the dataset.
func SummaryPrompt(in PromptInput) string {
	var b strings.Builder
	writeHeader(&b, in, "You are a data analyst summarizing a dataset for a non-technical reader.")
	b.WriteString(`TASK:
Write 2-4 sentences describing what this dataset contains and anything notable.

`)
	b.WriteString(replyJSONOnly)
	b.WriteString(`
{"summary": "..."}`)
	return b.String()
}

// ReportPrompt asks for a narrative report bundle.
func ReportPrompt(in PromptInput, summary string) string {
	var b strings.Builder
	writeHeader(&b, in, "You are writing an analysis report for a tabular dataset.")
	if summary != "" {
		b.WriteString("DATASET SUMMARY:\n")
		b.WriteString(summary)
		b.WriteString("\n\n")
	}
	b.WriteString(`TASK:
Produce a report with an executive summary (for leadership), technical notes
(data quality, caveats), key insights, and recommendations.

`)
	b.WriteString(replyJSONOnly)
	b.WriteString(`
{
  "executiveSummary": "...",
  "technicalNotes": "...",
  "keyInsights": ["..."],
  "recommendations": ["..."]
}`)
	return b.String()
}

func writeHeader(b *strings.Builder, in PromptInput, role string) {
	b.WriteString(role)
	b.WriteString("\n\n")
	if in.DatasetName != "" {
		fmt.Fprintf(b, "DATASET: %s\n\n", in.DatasetName)
	}
	if in.Profile != "" {
		b.WriteString(in.Profile)
		b.WriteString("\n")
	}
	if in.Sample != "" {
		b.WriteString("[SAMPLE ROWS]\n")
		b.WriteString(in.Sample)
		b.WriteString("\n")
	}
}
