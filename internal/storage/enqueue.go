package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/queuectl/queuectl/internal/apperr"
	"github.com/queuectl/queuectl/internal/model"
)

// Enqueue inserts a new pending job. If id is empty a fresh token is
// generated with uuid.NewString(). Returns apperr.ErrDuplicateID if id
// already exists in either jobs or dlq (invariant 1: id is unique across
// the union of both tables, so the check spans both, not just a single
// table's primary key).
func (s *Store) Enqueue(command, id string) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}

	now := time.Now()
	var dup bool
	err := withBusyRetry(func() error {
		tx, err := s.Db.Begin()
		if err != nil {
			return err
		}
		defer tx.Rollback()

		var exists int
		row := tx.QueryRow(
			`SELECT count(*) FROM (
				SELECT id FROM jobs WHERE id = ?
				UNION ALL
				SELECT id FROM dlq WHERE id = ?
			)`, id, id)
		if err := row.Scan(&exists); err != nil {
			return err
		}
		if exists > 0 {
			dup = true
			return nil
		}

		if _, err := tx.Exec(
			`INSERT INTO jobs (id, command, state, attempts, run_at, created_at, updated_at)
			 VALUES (?, ?, ?, 0, ?, ?, ?)`,
			id, command, model.StatePending, now, now, now,
		); err != nil {
			return err
		}
		return tx.Commit()
	})

	if dup {
		return "", fmt.Errorf("job id %q: %w", id, apperr.ErrDuplicateID)
	}
	if err != nil {
		return "", fmt.Errorf("enqueue %q: %w", id, apperr.ErrStorageError)
	}
	return id, nil
}
