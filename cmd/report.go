package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fernandopv429/data-gemini-visualizer/internal/pipeline"
)

var (
	reportOutputPath string
	reportFormat     string
	reportDelimiter  string
	reportSheet      string
	reportMaxRows    int
	reportLocal      bool
)

var reportCmd = &cobra.Command{
	Use:   "report <file-or-url>",
	Short: "Generate a narrative report (summary, insights, recommendations)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		t, err := loadTable(ctx, args[0], reportDelimiter, reportSheet, reportMaxRows)
		if err != nil {
			return err
		}

		pipe := buildPipeline()
		if reportLocal {
			pipe = localPipeline()
		}
		res := pipe.Run(ctx, t)
		printWarnings(res.Warnings)

		if strings.EqualFold(reportFormat, "markdown") || strings.EqualFold(reportFormat, "md") {
			return writeRaw(renderReportMarkdown(res), reportOutputPath)
		}
		return writeOutput(res.Report, reportOutputPath, reportFormat)
	},
}

func renderReportMarkdown(res *pipeline.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Report: %s\n\n", res.Dataset)
	if res.Summary != "" {
		fmt.Fprintf(&b, "%s\n\n", res.Summary)
	}
	r := res.Report
	if r == nil {
		return b.String()
	}
	if r.ExecutiveSummary != "" {
		fmt.Fprintf(&b, "## Executive Summary\n\n%s\n\n", r.ExecutiveSummary)
	}
	if len(r.KeyInsights) > 0 {
		b.WriteString("## Key Insights\n\n")
		for _, s := range r.KeyInsights {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}
	if len(r.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for _, s := range r.Recommendations {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}
	if r.TechnicalNotes != "" {
		fmt.Fprintf(&b, "## Technical Notes\n\n%s\n", r.TechnicalNotes)
	}
	return b.String()
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&reportOutputPath, "output", "o", "", "optional path to write the report")
	reportCmd.Flags().StringVar(&reportFormat, "format", "markdown", "output format: markdown|json|yaml")
	reportCmd.Flags().StringVar(&reportDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	reportCmd.Flags().StringVar(&reportSheet, "sheet", "", "XLSX: sheet name to analyze (default first sheet)")
	reportCmd.Flags().IntVar(&reportMaxRows, "max-rows", 0, "maximum rows to load (0 = config default)")
	reportCmd.Flags().BoolVar(&reportLocal, "local", false, "skip AI calls and generate a local report")
}
