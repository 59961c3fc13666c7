package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/fernandopv429/data-gemini-visualizer/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and update the persistent configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		shown := *cfg
		if shown.APIKey != "" {
			shown.APIKey = maskKey(shown.APIKey)
		}
		return writeOutput(&shown, "", "yaml")
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value and save it",
	Long: `Set a configuration value and persist it to the config file.

Keys: api_key, model, sample_rows, max_rows, http_timeout_sec,
retry_max_attempts, retry_base_delay_ms, retry_max_delay_ms,
history_db, server_addr`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := strings.ToLower(args[0]), args[1]
		if err := setConfigValue(cfg, key, value); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Set %s\n", key)
		return nil
	},
}

func setConfigValue(c *cfgpkg.Global, key, value string) error {
	setInt := func(dst *int) error {
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative integer", key)
		}
		*dst = n
		return nil
	}
	switch key {
	case "api_key":
		c.APIKey = value
	case "model":
		c.Model = value
	case "sample_rows":
		return setInt(&c.SampleRows)
	case "max_rows":
		return setInt(&c.MaxRows)
	case "http_timeout_sec":
		return setInt(&c.HTTPTimeoutSec)
	case "retry_max_attempts":
		return setInt(&c.RetryMaxAttempts)
	case "retry_base_delay_ms":
		return setInt(&c.RetryBaseDelayMs)
	case "retry_max_delay_ms":
		return setInt(&c.RetryMaxDelayMs)
	case "history_db":
		c.HistoryDB = value
	case "server_addr":
		c.ServerAddr = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func maskKey(k string) string {
	if len(k) <= 8 {
		return "****"
	}
	return k[:4] + "..." + k[len(k)-4:]
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
