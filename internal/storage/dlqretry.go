package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/queuectl/queuectl/internal/apperr"
	"github.com/queuectl/queuectl/internal/model"
)

// DLQRetry moves a dlq row back into jobs as pending, attempts=0,
// run_at=now, in one transaction. Returns apperr.ErrNotFound if id is not
// in the dlq.
func (s *Store) DLQRetry(id string) error {
	now := time.Now()
	var notFound bool
	err := withBusyRetry(func() error {
		tx, err := s.Db.Begin()
		if err != nil {
			return err
		}
		defer tx.Rollback()

		var command string
		row := tx.QueryRow(`SELECT command FROM dlq WHERE id = ?`, id)
		if err := row.Scan(&command); err != nil {
			if err == sql.ErrNoRows {
				notFound = true
				return nil
			}
			return err
		}

		if _, err := tx.Exec(`DELETE FROM dlq WHERE id = ?`, id); err != nil {
			return err
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

	if notFound {
		return fmt.Errorf("dlq_retry %q: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("dlq_retry %q: %w", id, apperr.ErrStorageError)
	}
	return nil
}
