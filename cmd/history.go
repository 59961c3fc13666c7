package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fernandopv429/data-gemini-visualizer/internal/store"
)

var (
	historyLimit  int
	historyFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the local run history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent analysis runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openHistory()
		if err != nil {
			return err
		}
		defer st.Close()

		runs, err := st.ListRuns(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if historyFormat != "table" {
			return writeOutput(runs, "", historyFormat)
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATASET\tCREATED\tSUMMARY")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				r.ID, r.Dataset, r.CreatedAt.Format("2006-01-02 15:04"), truncate(r.Summary, 60))
		}
		return w.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the full stored result of a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openHistory()
		if err != nil {
			return err
		}
		defer st.Close()

		res, err := st.GetRun(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		format := historyFormat
		if format == "table" {
			format = "json"
		}
		return writeOutput(res, "", format)
	},
}

func openHistory() (*store.Store, error) {
	if cfg == nil || cfg.HistoryDB == "" {
		return nil, fmt.Errorf("no history database configured")
	}
	return store.Open(cfg.HistoryDB)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.PersistentFlags().StringVar(&historyFormat, "format", "table", "output format: table|json|yaml")
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum runs to list")
}
