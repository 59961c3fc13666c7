package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fernandopv429/data-gemini-visualizer/internal/chartdata"
	"github.com/fernandopv429/data-gemini-visualizer/internal/profile"
)

var (
	chartOutputPath string
	chartFormat     string
	chartDelimiter  string
	chartSheet      string
	chartMaxRows    int
	chartLocal      bool
)

var chartCmd = &cobra.Command{
	Use:   "chart <file-or-url>",
	Short: "Produce chart-ready aggregations (bar, line, pie, scatter) for a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		t, err := loadTable(ctx, args[0], chartDelimiter, chartSheet, chartMaxRows)
		if err != nil {
			return err
		}

		if chartLocal {
			p := profile.Analyze(t)
			b := chartdata.Build(t, p.Classification)
			return writeOutput(b, chartOutputPath, chartFormat)
		}

		res := buildPipeline().Run(ctx, t)
		printWarnings(res.Warnings)
		return writeOutput(res.Charts, chartOutputPath, chartFormat)
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().StringVarP(&chartOutputPath, "output", "o", "", "optional path to write results")
	chartCmd.Flags().StringVar(&chartFormat, "format", "json", "output format: json|yaml")
	chartCmd.Flags().StringVar(&chartDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	chartCmd.Flags().StringVar(&chartSheet, "sheet", "", "XLSX: sheet name to analyze (default first sheet)")
	chartCmd.Flags().IntVar(&chartMaxRows, "max-rows", 0, "maximum rows to load (0 = config default)")
	chartCmd.Flags().BoolVar(&chartLocal, "local", false, "skip AI calls and aggregate locally")
}
