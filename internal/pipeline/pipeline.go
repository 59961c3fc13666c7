// Package pipeline runs the sequential analysis chain over a dataset:
// clean, analyze, chart-data, summarize, report. Each stage asks the AI
// service first and falls back to a local heuristic when the call fails or
// the reply does not parse; the chain always continues.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fernandopv429/data-gemini-visualizer/internal/ai"
	"github.com/fernandopv429/data-gemini-visualizer/internal/chartdata"
	"github.com/fernandopv429/data-gemini-visualizer/internal/dataset"
	"github.com/fernandopv429/data-gemini-visualizer/internal/profile"
)

// Generator is the AI boundary: one prompt in, one text reply out.
// *ai.Client satisfies it; tests substitute a stub.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// CleanPlan is the model's (or fallback's) cleaning instructions. The plan
// is always applied locally; the model never returns rows.
type CleanPlan struct {
	DropDuplicates bool         `json:"dropDuplicates"`
	Imputations    []Imputation `json:"imputations"`
	Notes          []string     `json:"notes"`
}

// Imputation fills missing values in one column.
type Imputation struct {
	Column   string `json:"column"`
	Strategy string `json:"strategy"` // mean, median, mode, constant
	Value    string `json:"value,omitempty"`
}

// Analysis is the analyze stage output.
type Analysis struct {
	Classification profile.Classification `json:"classification"`
	Quality        profile.Quality        `json:"quality"`
	Insights       []string               `json:"insights,omitempty"`
	Source         string                 `json:"source"` // "ai" or "local"
}

// Report is the narrative bundle from the report stage.
type Report struct {
	ExecutiveSummary string   `json:"executiveSummary"`
	TechnicalNotes   string   `json:"technicalNotes"`
	KeyInsights      []string `json:"keyInsights,omitempty"`
	Recommendations  []string `json:"recommendations,omitempty"`
	Source           string   `json:"source"`
}

// Result is the full pipeline output for one dataset.
type Result struct {
	Dataset      string            `json:"dataset"`
	CleanActions []string          `json:"cleanActions,omitempty"`
	Analysis     Analysis          `json:"analysis"`
	Charts       *chartdata.Bundle `json:"charts"`
	Summary      string            `json:"summary"`
	Report       *Report           `json:"report"`
	// Warnings records stages that fell back to local heuristics.
	Warnings []string `json:"warnings,omitempty"`
}

// Pipeline executes the analysis chain.
type Pipeline struct {
	gen        Generator
	sampleRows int
	logf       func(format string, args ...any)
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithSampleRows sets how many rows are excerpted into prompts.
func WithSampleRows(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.sampleRows = n
		}
	}
}

// WithLogf installs a debug logger.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(p *Pipeline) { p.logf = logf }
}

// New builds a Pipeline. gen may be nil: every stage then uses its local
// fallback, which is the offline mode.
func New(gen Generator, opts ...Option) *Pipeline {
	p := &Pipeline{gen: gen, sampleRows: 5, logf: func(string, ...any) {}}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run executes the full chain. It never fails: stage errors are recorded as
// warnings and replaced by fallback output.
func (p *Pipeline) Run(ctx context.Context, t *dataset.Table) *Result {
	res := &Result{Dataset: t.Name}

	// Stage 1: clean. The plan mutates the table the later stages see.
	plan := p.cleanPlan(ctx, t, res)
	ApplyCleanPlan(t, plan)
	res.CleanActions = plan.Notes

	prof := profile.Analyze(t)
	in := p.promptInput(t, prof)

	// Stage 2: analyze.
	res.Analysis = p.analyze(ctx, in, prof, res)

	// Stage 3: chart data.
	res.Charts = p.chartData(ctx, in, t, res.Analysis.Classification, res)

	// Stage 4: summarize.
	res.Summary = p.summarize(ctx, in, prof, res)

	// Stage 5: report.
	res.Report = p.report(ctx, in, res.Summary, prof, res)

	return res
}

// promptBudgetTokens bounds the profile and sample sections of each prompt
// so wide datasets cannot blow past the model's context window.
const promptBudgetTokens = 8000

func (p *Pipeline) promptInput(t *dataset.Table, prof *profile.Profile) ai.PromptInput {
	return ai.PromptInput{
		DatasetName: t.Name,
		Profile:     ai.TruncateToTokenLimit(prof.Markdown(), promptBudgetTokens),
		Sample:      ai.TruncateToTokenLimit(profile.SampleMarkdown(t, p.sampleRows), promptBudgetTokens),
	}
}

func (p *Pipeline) cleanPlan(ctx context.Context, t *dataset.Table, res *Result) CleanPlan {
	prof := profile.Analyze(t)
	in := p.promptInput(t, prof)
	if p.gen != nil {
		reply, err := p.gen.Generate(ctx, ai.CleaningPrompt(in))
		if err == nil {
			var plan CleanPlan
			if err := ai.DecodeJSON(reply, &plan); err == nil {
				p.logf("clean: using model plan (%d imputations)", len(plan.Imputations))
				return plan
			}
			err = fmt.Errorf("clean reply: unparsable")
			res.fallback("clean", err)
		} else {
			res.fallback("clean", err)
		}
	}
	return LocalCleanPlan(prof)
}

func (p *Pipeline) analyze(ctx context.Context, in ai.PromptInput, prof *profile.Profile, res *Result) Analysis {
	if p.gen != nil {
		reply, err := p.gen.Generate(ctx, ai.AnalysisPrompt(in))
		if err == nil {
			var a Analysis
			if err := ai.DecodeJSON(reply, &a); err == nil && classificationComplete(a.Classification) {
				a.Source = "ai"
				return a
			}
			res.fallback("analyze", fmt.Errorf("analysis reply: unparsable or incomplete"))
		} else {
			res.fallback("analyze", err)
		}
	}
	return LocalAnalysis(prof)
}

func (p *Pipeline) chartData(ctx context.Context, in ai.PromptInput, t *dataset.Table, cls profile.Classification, res *Result) *chartdata.Bundle {
	if p.gen != nil {
		clsJSON, _ := json.Marshal(cls)
		reply, err := p.gen.Generate(ctx, ai.ChartDataPrompt(in, string(clsJSON)))
		if err == nil {
			var b chartdata.Bundle
			if err := ai.DecodeJSON(reply, &b); err == nil && !b.Empty() {
				b.Source = "ai"
				return &b
			}
			res.fallback("chart-data", fmt.Errorf("chart reply: unparsable or empty"))
		} else {
			res.fallback("chart-data", err)
		}
	}
	return chartdata.Build(t, cls)
}

func (p *Pipeline) summarize(ctx context.Context, in ai.PromptInput, prof *profile.Profile, res *Result) string {
	if p.gen != nil {
		reply, err := p.gen.Generate(ctx, ai.SummaryPrompt(in))
		if err == nil {
			var out struct {
				Summary string `json:"summary"`
			}
			if err := ai.DecodeJSON(reply, &out); err == nil && strings.TrimSpace(out.Summary) != "" {
				return out.Summary
			}
			// Some models answer in prose despite instructions; accept it.
			if s := ai.StripFences(reply); s != "" && !strings.HasPrefix(s, "{") {
				return s
			}
			res.fallback("summarize", fmt.Errorf("summary reply: unparsable"))
		} else {
			res.fallback("summarize", err)
		}
	}
	return LocalSummary(prof)
}

func (p *Pipeline) report(ctx context.Context, in ai.PromptInput, summary string, prof *profile.Profile, res *Result) *Report {
	if p.gen != nil {
		reply, err := p.gen.Generate(ctx, ai.ReportPrompt(in, summary))
		if err == nil {
			var r Report
			if err := ai.DecodeJSON(reply, &r); err == nil && r.ExecutiveSummary != "" {
				r.Source = "ai"
				return &r
			}
			res.fallback("report", fmt.Errorf("report reply: unparsable"))
		} else {
			res.fallback("report", err)
		}
	}
	return LocalReport(prof, summary)
}

func (r *Result) fallback(stage string, err error) {
	r.Warnings = append(r.Warnings, fmt.Sprintf("%s: %v (using local fallback)", stage, err))
}

func classificationComplete(c profile.Classification) bool {
	return len(c.Numeric)+len(c.Categorical)+len(c.Temporal) > 0
}
