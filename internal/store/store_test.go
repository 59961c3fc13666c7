package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fernandopv429/data-gemini-visualizer/internal/chartdata"
	"github.com/fernandopv429/data-gemini-visualizer/internal/pipeline"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleResult(name string) *pipeline.Result {
	return &pipeline.Result{
		Dataset: name,
		Summary: "a summary of " + name,
		Charts: &chartdata.Bundle{
			Bar:    []chartdata.NamePoint{{Name: "North", Value: 150}},
			Source: "local",
		},
		Report: &pipeline.Report{ExecutiveSummary: "exec", Source: "local"},
	}
}

func TestSaveAndGetRun(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	id, err := st.SaveRun(ctx, sampleResult("sales.csv"))
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if id == "" {
		t.Fatalf("expected non-empty run id")
	}

	got, err := st.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Dataset != "sales.csv" || got.Summary != "a summary of sales.csv" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if got.Charts == nil || len(got.Charts.Bar) != 1 || got.Charts.Bar[0].Name != "North" {
		t.Fatalf("charts not round-tripped: %+v", got.Charts)
	}
}

func TestGetRunNotFound(t *testing.T) {
	st := openTestStore(t)
	_, err := st.GetRun(context.Background(), "no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListRuns(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"a.csv", "b.csv", "c.csv"} {
		if _, err := st.SaveRun(ctx, sampleResult(name)); err != nil {
			t.Fatalf("SaveRun(%s): %v", name, err)
		}
	}

	runs, err := st.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	for _, r := range runs {
		if r.ID == "" || r.Dataset == "" || r.CreatedAt.IsZero() {
			t.Fatalf("incomplete meta: %+v", r)
		}
	}

	limited, err := st.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(limited))
	}
}
