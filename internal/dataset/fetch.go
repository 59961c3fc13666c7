package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// FetchURL downloads a public spreadsheet (CSV export) over HTTPS and loads
// it as a Table. Google Sheets share links are rewritten to their CSV export
// form.
func FetchURL(ctx context.Context, rawURL string, opt Options) (*Table, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	fetchURL := rewriteSheetURL(u)

	client := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch spreadsheet: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch spreadsheet: unexpected status %s", resp.Status)
	}

	body := io.LimitReader(resp.Body, MaxFileSize)
	t, err := LoadCSV(body, opt)
	if err != nil {
		return nil, err
	}
	name := path.Base(u.Path)
	if name == "" || name == "/" || name == "." {
		name = u.Host
	}
	t.Name = name
	return t, nil
}

// rewriteSheetURL converts a Google Sheets share link into its CSV export
// endpoint. Other URLs pass through unchanged.
func rewriteSheetURL(u *url.URL) string {
	if u.Host != "docs.google.com" || !strings.Contains(u.Path, "/spreadsheets/d/") {
		return u.String()
	}
	parts := strings.Split(u.Path, "/")
	for i, p := range parts {
		if p == "d" && i+1 < len(parts) {
			id := parts[i+1]
			return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv", id)
		}
	}
	return u.String()
}
