// Package store persists analysis runs in a local SQLite database so past
// results can be listed and re-fetched without re-calling the AI service.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/fernandopv429/data-gemini-visualizer/internal/pipeline"
)

// Store wraps the runs database.
type Store struct {
	db *sql.DB
}

// RunMeta is a history listing entry.
type RunMeta struct {
	ID        string    `json:"id"`
	Dataset   string    `json:"dataset"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
}

// ErrNotFound is returned when a run id does not exist.
var ErrNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	dataset    TEXT NOT NULL,
	summary    TEXT NOT NULL DEFAULT '',
	result     TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
`

// Open opens (creating if needed) the runs database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init store schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// SaveRun persists a pipeline result and returns its generated id.
func (s *Store) SaveRun(ctx context.Context, res *pipeline.Result) (string, error) {
	blob, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, dataset, summary, result, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, res.Dataset, res.Summary, string(blob), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunMeta, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, dataset, summary, created_at FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()
	var out []RunMeta
	for rows.Next() {
		var m RunMeta
		var ts string
		if err := rows.Scan(&m.ID, &m.Dataset, &m.Summary, &ts); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		m.CreatedAt, _ = time.Parse(time.RFC3339, ts)
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetRun fetches one stored result by id.
func (s *Store) GetRun(ctx context.Context, id string) (*pipeline.Result, error) {
	var blob string
	err := s.db.QueryRowContext(ctx, `SELECT result FROM runs WHERE id = ?`, id).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	var res pipeline.Result
	if err := json.Unmarshal([]byte(blob), &res); err != nil {
		return nil, fmt.Errorf("decode stored run: %w", err)
	}
	return &res, nil
}
