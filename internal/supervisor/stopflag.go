package supervisor

import (
	"errors"
	"os"
)

// StopFlag is the cross-process stop latch: a filesystem sentinel file.
// The Supervisor's signal handler creates it; every Worker process stats
// it once per poll tick.
type StopFlag struct {
	path string
}

// NewStopFlag returns a StopFlag backed by the sentinel file at path.
func NewStopFlag(path string) *StopFlag {
	return &StopFlag{path: path}
}

// IsSet reports whether the sentinel file currently exists.
func (f *StopFlag) IsSet() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// Set creates the sentinel file. Idempotent: calling Set twice (e.g. two
// signals arriving before the Supervisor exits) is a no-op the second time.
func (f *StopFlag) Set() error {
	file, err := os.Create(f.path)
	if err != nil {
		return err
	}
	return file.Close()
}

// Clear removes the sentinel file, ignoring a not-exist error.
func (f *StopFlag) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
