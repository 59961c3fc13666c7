package cmd

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cleanOutputPath string
	cleanDelimiter  string
	cleanSheet      string
	cleanMaxRows    int
	cleanLocal      bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean <file-or-url>",
	Short: "Apply the cleaning plan (dedupe, imputation) and emit the cleaned CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		t, err := loadTable(ctx, args[0], cleanDelimiter, cleanSheet, cleanMaxRows)
		if err != nil {
			return err
		}

		pipe := buildPipeline()
		if cleanLocal {
			pipe = localPipeline()
		}
		res := pipe.Run(ctx, t)
		printWarnings(res.Warnings)

		for _, a := range res.CleanActions {
			fmt.Fprintf(os.Stderr, "• %s\n", a)
		}

		out := os.Stdout
		if cleanOutputPath != "" {
			f, err := os.Create(cleanOutputPath)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()
			out = f
		}
		w := csv.NewWriter(out)
		if err := w.Write(t.Headers); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		for _, row := range t.Rows {
			if err := w.Write(row); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		if cleanOutputPath != "" {
			fmt.Printf("✓ Wrote %s\n", cleanOutputPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringVarP(&cleanOutputPath, "output", "o", "", "path to write the cleaned CSV (default stdout)")
	cleanCmd.Flags().StringVar(&cleanDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	cleanCmd.Flags().StringVar(&cleanSheet, "sheet", "", "XLSX: sheet name to analyze (default first sheet)")
	cleanCmd.Flags().IntVar(&cleanMaxRows, "max-rows", 0, "maximum rows to load (0 = config default)")
	cleanCmd.Flags().BoolVar(&cleanLocal, "local", false, "skip AI calls and apply local cleaning heuristics")
}
