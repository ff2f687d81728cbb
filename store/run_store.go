// Package store persists demo runs in postgres.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jeffsasaki/antipatterns/models"
)

// ErrRunNotFound is returned when no run has the requested id.
var ErrRunNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id       TEXT PRIMARY KEY,
	slug         TEXT NOT NULL,
	status       TEXT NOT NULL,
	output       TEXT NOT NULL DEFAULT '',
	error        TEXT NOT NULL DEFAULT '',
	requested_at TIMESTAMPTZ NOT NULL,
	completed_at TIMESTAMPTZ
)`

// RunStore reads and writes runs through database/sql.
type RunStore struct {
	db *sql.DB
}

func NewRunStore(db *sql.DB) *RunStore {
	return &RunStore{db: db}
}

// Migrate creates the runs table when it is missing.
func (s *RunStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate runs: %w", err)
	}
	return nil
}

// Create inserts a new run.
func (s *RunStore) Create(ctx context.Context, run models.Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (run_id, slug, status, requested_at)
		VALUES ($1, $2, $3, $4)`,
		run.ID, run.Slug, run.Status, run.RequestedAt)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	return nil
}

func (s *RunStore) Get(ctx context.Context, id string) (models.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT run_id, slug, status, output, error, requested_at, completed_at
		FROM runs WHERE run_id = $1`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Run{}, ErrRunNotFound
	}
	if err != nil {
		return models.Run{}, fmt.Errorf("select run %s: %w", id, err)
	}
	return run, nil
}

// List returns every run, newest first.
func (s *RunStore) List(ctx context.Context) ([]models.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, slug, status, output, error, requested_at, completed_at
		FROM runs ORDER BY requested_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer rows.Close()

	runs := make([]models.Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ApplyResult records the outcome of a run.
func (s *RunStore) ApplyResult(ctx context.Context, result models.RunResult, completedAt time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE runs SET status = $1, output = $2, error = $3, completed_at = $4
		WHERE run_id = $5`,
		result.Status, result.Output, result.Error, completedAt, result.RunID)
	if err != nil {
		return fmt.Errorf("update run %s: %w", result.RunID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update run %s: %w", result.RunID, err)
	}
	if n == 0 {
		return ErrRunNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (models.Run, error) {
	var run models.Run
	var completedAt sql.NullTime
	if err := row.Scan(&run.ID, &run.Slug, &run.Status, &run.Output, &run.Error, &run.RequestedAt, &completedAt); err != nil {
		return models.Run{}, err
	}
	if completedAt.Valid {
		t := completedAt.Time
		run.CompletedAt = &t
	}
	return run, nil
}
