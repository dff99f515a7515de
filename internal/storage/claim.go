package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/queuectl/queuectl/internal/apperr"
	"github.com/queuectl/queuectl/internal/model"
)

// FetchAndClaim selects the earliest-eligible job (pending or failed, with
// run_at <= now; tie-broken by created_at then id) and atomically
// transitions it to processing in one transaction, returning the claimed
// row. Returns (nil, nil) if no job is eligible. workerTag is used only
// for the caller's own logging.
func (s *Store) FetchAndClaim(workerTag string) (*model.Job, error) {
	var job *model.Job
	err := withBusyRetry(func() error {
		tx, err := s.Db.Begin()
		if err != nil {
			return err
		}
		defer tx.Rollback()

		now := time.Now()
		row := tx.QueryRow(
			`SELECT id, command, state, attempts, run_at, created_at, updated_at
			 FROM jobs
			 WHERE state IN (?, ?) AND run_at <= ?
			 ORDER BY run_at ASC, created_at ASC, id ASC
			 LIMIT 1`,
			model.StatePending, model.StateFailed, now,
		)

		var j model.Job
		if err := row.Scan(&j.ID, &j.Command, &j.State, &j.Attempts, &j.RunAt, &j.CreatedAt, &j.UpdatedAt); err != nil {
			if err == sql.ErrNoRows {
				job = nil
				return nil
			}
			return err
		}

		if _, err := tx.Exec(
			`UPDATE jobs SET state = ?, updated_at = ? WHERE id = ?`,
			model.StateProcessing, now, j.ID,
		); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}

		j.State = model.StateProcessing
		j.UpdatedAt = now
		job = &j
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("fetch_and_claim(%s): %w", workerTag, apperr.ErrStorageError)
	}
	return job, nil
}
