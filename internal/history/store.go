// Package history persists finished practice sessions.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/satprep/practice/internal/practice"
)

var ErrNotFound = errors.New("not found")

// Store implements practice.Recorder on a session_results table with a JSONB
// data column.
type Store struct {
	db *sql.DB
}

func NewStore(ctx context.Context, db *sql.DB) (*Store, error) {
	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS session_results (
			id          TEXT PRIMARY KEY,
			section     TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			data        JSONB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS session_results_finished_at
			ON session_results (finished_at)`,
	} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return nil, fmt.Errorf("creating table: %w", err)
		}
	}
	return &Store{db: db}, nil
}

func (s *Store) RecordResult(ctx context.Context, res practice.Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO session_results (id, section, finished_at, data) VALUES (?, ?, ?, jsonb(?))
		 ON CONFLICT(id) DO UPDATE SET section = excluded.section, finished_at = excluded.finished_at, data = excluded.data`,
		res.ID, res.Section, res.FinishedAt.UTC().Format(time.RFC3339Nano), string(data),
	)
	if err != nil {
		return fmt.Errorf("inserting result: %w", err)
	}
	return nil
}

func (s *Store) GetResult(ctx context.Context, id string) (practice.Result, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM session_results WHERE id = ?`, id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return practice.Result{}, ErrNotFound
	}
	if err != nil {
		return practice.Result{}, err
	}

	var res practice.Result
	if err := json.Unmarshal([]byte(data), &res); err != nil {
		return practice.Result{}, err
	}
	return res, nil
}

// ListResults returns up to limit results, most recently finished first.
// A limit <= 0 returns everything.
func (s *Store) ListResults(ctx context.Context, limit int) ([]practice.Result, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT json(data) FROM session_results ORDER BY finished_at DESC, id LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []practice.Result{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var res practice.Result
		if err := json.Unmarshal([]byte(data), &res); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
