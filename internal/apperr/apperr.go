// Package apperr names the error taxonomy the control surface maps to exit
// behavior: InvalidInput, DuplicateId, NotFound, AlreadyRunning, and
// StorageError. Callers compare with errors.Is; the Store and the CLI both
// wrap these with fmt.Errorf("...: %w", ...) for context.
package apperr

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrDuplicateID    = errors.New("duplicate id")
	ErrNotFound       = errors.New("not found")
	ErrAlreadyRunning = errors.New("already running")
	ErrStorageError   = errors.New("storage error")
)
