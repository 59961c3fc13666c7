package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	c, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Model != "gemini-2.0-flash" {
		t.Fatalf("model = %q", c.Model)
	}
	if c.SampleRows != 5 || c.MaxRows != 100000 {
		t.Fatalf("sampling defaults: %+v", c)
	}
	if c.RetryMaxAttempts != 3 || c.RetryBaseDelayMs != 500 || c.RetryMaxDelayMs != 4000 {
		t.Fatalf("retry defaults: %+v", c)
	}
	if c.ServerAddr != "127.0.0.1:8080" {
		t.Fatalf("server addr = %q", c.ServerAddr)
	}
	if c.HistoryDB == "" {
		t.Fatalf("expected default history db path")
	}
}

func TestLoadGeminiAPIKeyEnvFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key-123")
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	c, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.APIKey != "test-key-123" {
		t.Fatalf("api key = %q", c.APIKey)
	}
}

func TestSaveAndReload(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")

	c := &Global{
		APIKey:     "saved-key",
		Model:      "gemini-1.5-pro",
		SampleRows: 8,
		HistoryDB:  "/tmp/h.db",
	}
	if err := Save(c, cfgFile); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(cfgFile); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	got, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.APIKey != "saved-key" || got.Model != "gemini-1.5-pro" || got.SampleRows != 8 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.HistoryDB != "/tmp/h.db" {
		t.Fatalf("history db = %q", got.HistoryDB)
	}
}
