package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fernandopv429/data-gemini-visualizer/internal/ai"
	cfgpkg "github.com/fernandopv429/data-gemini-visualizer/internal/config"
	"github.com/fernandopv429/data-gemini-visualizer/internal/pipeline"
)

var (
	// Global flags (wired to config/viper)
	cfgFile string
	debug   bool
	// Retry/HTTP flags (override config if set)
	flagHTTPTimeoutSec   int
	flagRetryMaxAttempts int
	flagRetryBaseDelayMs int
	flagRetryMaxDelayMs  int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "dataviz",
	Short: "dataviz: analyze spreadsheets with AI-assisted chart and report generation",
	Long: `dataviz ingests a CSV, TSV, XLSX file or public spreadsheet URL, profiles it
locally, and asks a Gemini model for cleaning plans, column classification,
chart-ready data, and narrative reports. Every AI stage has a local fallback,
so the tool also works fully offline.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.dataviz/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "HTTP client timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryMaxAttempts, "retry-max", 0, "max retry attempts on 429/5xx (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryBaseDelayMs, "retry-base-ms", 0, "base retry backoff in ms (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryMaxDelayMs, "retry-max-ms", 0, "max retry backoff cap in ms (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = &cfgpkg.Global{}
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		cfg.HTTPTimeoutSec = flagHTTPTimeoutSec
	}
	if f.Changed("retry-max") && flagRetryMaxAttempts > 0 {
		cfg.RetryMaxAttempts = flagRetryMaxAttempts
	}
	if f.Changed("retry-base-ms") && flagRetryBaseDelayMs > 0 {
		cfg.RetryBaseDelayMs = flagRetryBaseDelayMs
	}
	if f.Changed("retry-max-ms") && flagRetryMaxDelayMs > 0 {
		cfg.RetryMaxDelayMs = flagRetryMaxDelayMs
	}
}

// buildGenerator constructs the AI client from config, or nil when no API
// key is set (all pipeline stages then use their local fallbacks).
func buildGenerator() pipeline.Generator {
	if cfg == nil || cfg.APIKey == "" {
		if debug {
			fmt.Fprintln(os.Stderr, "no API key configured; running in offline mode")
		}
		return nil
	}
	return ai.NewClient(
		cfg.APIKey,
		cfg.Model,
		time.Duration(cfg.HTTPTimeoutSec)*time.Second,
		cfg.RetryMaxAttempts,
		time.Duration(cfg.RetryBaseDelayMs)*time.Millisecond,
		time.Duration(cfg.RetryMaxDelayMs)*time.Millisecond,
	)
}

// localPipeline builds a pipeline with no generator, forcing local
// heuristics for every stage.
func localPipeline() *pipeline.Pipeline {
	opts := []pipeline.Option{}
	if cfg != nil && cfg.SampleRows > 0 {
		opts = append(opts, pipeline.WithSampleRows(cfg.SampleRows))
	}
	return pipeline.New(nil, opts...)
}

// buildPipeline assembles the analysis pipeline from config and flags.
func buildPipeline() *pipeline.Pipeline {
	opts := []pipeline.Option{}
	if cfg != nil && cfg.SampleRows > 0 {
		opts = append(opts, pipeline.WithSampleRows(cfg.SampleRows))
	}
	if debug {
		opts = append(opts, pipeline.WithLogf(func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "debug: "+format+"\n", args...)
		}))
	}
	return pipeline.New(buildGenerator(), opts...)
}
