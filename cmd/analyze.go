package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fernandopv429/data-gemini-visualizer/internal/profile"
	"github.com/fernandopv429/data-gemini-visualizer/internal/store"
)

var (
	anaOutputPath string
	anaFormat     string
	anaDelimiter  string
	anaSheet      string
	anaMaxRows    int
	anaLocal      bool
	anaNoSave     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file-or-url>",
	Short: "Run the full pipeline: clean, classify, chart data, summary, report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		t, err := loadTable(ctx, args[0], anaDelimiter, anaSheet, anaMaxRows)
		if err != nil {
			return err
		}

		pipe := buildPipeline()
		if anaLocal {
			pipe = localPipeline()
		}
		res := pipe.Run(ctx, t)

		printWarnings(res.Warnings)

		if !anaNoSave && cfg != nil && cfg.HistoryDB != "" {
			st, err := store.Open(cfg.HistoryDB)
			if err != nil {
				fmt.Fprintf(os.Stderr, "⚠ Warning: history store unavailable: %v\n", err)
			} else {
				defer st.Close()
				if id, err := st.SaveRun(ctx, res); err != nil {
					fmt.Fprintf(os.Stderr, "⚠ Warning: failed to save run: %v\n", err)
				} else if debug {
					fmt.Fprintf(os.Stderr, "saved run %s\n", id)
				}
			}
		}

		return writeOutput(res, anaOutputPath, anaFormat)
	},
}

// profileCmd exposes the local heuristics alone: no AI calls, markdown out.
var profileCmd = &cobra.Command{
	Use:   "profile <file-or-url>",
	Short: "Print the local dataset profile (types, quality, stats) as markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(cmd.Context(), args[0], anaDelimiter, anaSheet, anaMaxRows)
		if err != nil {
			return err
		}
		fmt.Println(profile.Analyze(t).Markdown())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(profileCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write results")
	analyzeCmd.Flags().StringVar(&anaFormat, "format", "json", "output format: json|yaml")
	analyzeCmd.Flags().StringVar(&anaDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	analyzeCmd.Flags().StringVar(&anaSheet, "sheet", "", "XLSX: sheet name to analyze (default first sheet)")
	analyzeCmd.Flags().IntVar(&anaMaxRows, "max-rows", 0, "maximum rows to load (0 = config default)")
	analyzeCmd.Flags().BoolVar(&anaLocal, "local", false, "skip AI calls and use local heuristics only")
	analyzeCmd.Flags().BoolVar(&anaNoSave, "no-save", false, "do not record this run in history")
	profileCmd.Flags().StringVar(&anaDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	profileCmd.Flags().StringVar(&anaSheet, "sheet", "", "XLSX: sheet name to analyze (default first sheet)")
	profileCmd.Flags().IntVar(&anaMaxRows, "max-rows", 0, "maximum rows to load (0 = config default)")
}
