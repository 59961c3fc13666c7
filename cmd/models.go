package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fernandopv429/data-gemini-visualizer/internal/ai"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the supported Gemini models",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MODEL\tCONTEXT\tDESCRIPTION")
		for _, m := range ai.Catalog() {
			marker := ""
			if cfg != nil && cfg.Model == m.Name {
				marker = " *"
			}
			fmt.Fprintf(w, "%s%s\t%d\t%s\n", m.Name, marker, m.ContextTokens, m.Description)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
