package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fernandopv429/data-gemini-visualizer/internal/dataset"
)

// loadTable loads a dataset from a local path or an http(s) URL.
func loadTable(ctx context.Context, source, delimiter, sheet string, maxRows int) (*dataset.Table, error) {
	opt := dataset.Options{Sheet: sheet}
	if maxRows > 0 {
		opt.MaxRows = maxRows
	} else if cfg != nil && cfg.MaxRows > 0 {
		opt.MaxRows = cfg.MaxRows
	}
	switch delimiter {
	case "":
	case ",":
		opt.Delimiter = ','
	case ";":
		opt.Delimiter = ';'
	case "\t", "tab":
		opt.Delimiter = '\t'
	default:
		return nil, fmt.Errorf("unsupported --delimiter: %s", delimiter)
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return dataset.FetchURL(ctx, source, opt)
	}
	return dataset.Load(source, opt)
}

// writeRaw writes pre-rendered text to path, or stdout when path is empty.
func writeRaw(s, path string) error {
	if path == "" {
		_, err := fmt.Print(s)
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("✓ Wrote %s\n", path)
	return nil
}

// printWarnings reports fallback warnings from a pipeline run on stderr.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "⚠ %s\n", w)
	}
}

// writeOutput marshals v as JSON or YAML to path, or stdout when path is empty.
func writeOutput(v any, path, format string) error {
	var (
		b   []byte
		err error
	)
	switch strings.ToLower(format) {
	case "", "json":
		b, err = json.MarshalIndent(v, "", "  ")
		if err == nil {
			b = append(b, '\n')
		}
	case "yaml", "yml":
		b, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("unsupported --format: %s (use json|yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	if path == "" {
		_, err = os.Stdout.Write(b)
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("✓ Wrote %s\n", path)
	return nil
}
