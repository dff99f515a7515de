package storage

import (
	"fmt"

	"github.com/queuectl/queuectl/internal/apperr"
	"github.com/queuectl/queuectl/internal/model"
)

// List returns jobs ordered by updated_at descending. An empty
// stateFilter returns all jobs.
func (s *Store) List(stateFilter string) ([]model.Job, error) {
	query := `SELECT id, command, state, attempts, run_at, created_at, updated_at FROM jobs`
	args := []any{}
	if stateFilter != "" {
		query += ` WHERE state = ?`
		args = append(args, stateFilter)
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := s.Db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list: %w", apperr.ErrStorageError)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		var j model.Job
		if err := rows.Scan(&j.ID, &j.Command, &j.State, &j.Attempts, &j.RunAt, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list: %w", apperr.ErrStorageError)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// DLQList returns dlq entries ordered by failed_at descending.
func (s *Store) DLQList() ([]model.DLQEntry, error) {
	rows, err := s.Db.Query(`SELECT id, command, attempts, failed_at, last_error FROM dlq ORDER BY failed_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("dlq_list: %w", apperr.ErrStorageError)
	}
	defer rows.Close()

	var entries []model.DLQEntry
	for rows.Next() {
		var e model.DLQEntry
		var lastErr *string
		if err := rows.Scan(&e.ID, &e.Command, &e.Attempts, &e.FailedAt, &lastErr); err != nil {
			return nil, fmt.Errorf("dlq_list: %w", apperr.ErrStorageError)
		}
		if lastErr != nil {
			e.LastError = *lastErr
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Counts aggregates job counts by state plus the dead (dlq) count.
func (s *Store) Counts() (model.Counts, error) {
	var c model.Counts

	rows, err := s.Db.Query(`SELECT state, count(*) FROM jobs GROUP BY state`)
	if err != nil {
		return c, fmt.Errorf("counts: %w", apperr.ErrStorageError)
	}
	defer rows.Close()

	for rows.Next() {
		var state string
		var n int
		if err := rows.Scan(&state, &n); err != nil {
			return c, fmt.Errorf("counts: %w", apperr.ErrStorageError)
		}
		switch state {
		case model.StatePending:
			c.Pending = n
		case model.StateProcessing:
			c.Processing = n
		case model.StateFailed:
			c.Failed = n
		case model.StateCompleted:
			c.Completed = n
		}
	}
	if err := rows.Err(); err != nil {
		return c, fmt.Errorf("counts: %w", apperr.ErrStorageError)
	}

	row := s.Db.QueryRow(`SELECT count(*) FROM dlq`)
	if err := row.Scan(&c.Dead); err != nil {
		return c, fmt.Errorf("counts: %w", apperr.ErrStorageError)
	}
	return c, nil
}
