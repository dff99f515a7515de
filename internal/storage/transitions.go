package storage

import (
	"fmt"
	"log"
	"time"

	"github.com/queuectl/queuectl/internal/apperr"
	"github.com/queuectl/queuectl/internal/model"
)

// Complete transitions a processing job to completed. A row not
// currently in processing is a no-op: logged (it indicates a bug
// upstream — a worker completing a job it never held the claim on) rather
// than surfaced as an error.
func (s *Store) Complete(id string) error {
	now := time.Now()
	var affected int64
	err := withBusyRetry(func() error {
		res, err := s.Db.Exec(
			`UPDATE jobs SET state = ?, updated_at = ? WHERE id = ? AND state = ?`,
			model.StateCompleted, now, id, model.StateProcessing,
		)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("complete %q: %w", id, apperr.ErrStorageError)
	}
	if affected == 0 {
		log.Printf("complete %q: row was not in processing state, ignoring", id)
	}
	return nil
}

// Reschedule transitions a processing job back to failed, incrementing
// attempts and setting run_at to now+delay.
func (s *Store) Reschedule(id string, delay time.Duration) error {
	now := time.Now()
	err := withBusyRetry(func() error {
		_, err := s.Db.Exec(
			`UPDATE jobs SET state = ?, attempts = attempts + 1, run_at = ?, updated_at = ?
			 WHERE id = ? AND state = ?`,
			model.StateFailed, now.Add(delay), now, id, model.StateProcessing,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("reschedule %q: %w", id, apperr.ErrStorageError)
	}
	return nil
}

// GiveUp atomically increments attempts, deletes the row from jobs, and
// inserts a row into dlq with the final attempts, failed_at=now, and
// lastErr. The attempts value stored in dlq is the count of attempted
// executions (post-increment).
func (s *Store) GiveUp(id string, lastErr string) error {
	now := time.Now()
	err := withBusyRetry(func() error {
		tx, err := s.Db.Begin()
		if err != nil {
			return err
		}
		defer tx.Rollback()

		var command string
		var attempts int
		row := tx.QueryRow(`SELECT command, attempts FROM jobs WHERE id = ? AND state = ?`, id, model.StateProcessing)
		if err := row.Scan(&command, &attempts); err != nil {
			return err
		}
		attempts++

		if _, err := tx.Exec(`DELETE FROM jobs WHERE id = ?`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(
			`INSERT INTO dlq (id, command, attempts, failed_at, last_error) VALUES (?, ?, ?, ?, ?)`,
			id, command, attempts, now, lastErr,
		); err != nil {
			return err
		}
		return tx.Commit()
	})
	if err != nil {
		return fmt.Errorf("give_up %q: %w", id, apperr.ErrStorageError)
	}
	return nil
}
