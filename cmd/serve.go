package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fernandopv429/data-gemini-visualizer/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP upload and analysis server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" && cfg != nil {
			addr = cfg.ServerAddr
		}
		if addr == "" {
			addr = "127.0.0.1:8080"
		}

		st, err := openHistory()
		if err != nil {
			fmt.Fprintf(os.Stderr, "⚠ Warning: history store unavailable: %v\n", err)
			st = nil
		} else {
			defer st.Close()
		}

		srv := server.New(buildPipeline(), st)
		return srv.ListenAndServe(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
}
