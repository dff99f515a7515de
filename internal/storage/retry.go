package storage

import (
	"strings"
	"time"
)

// busyRetryDelays bounds the Store's own retry of transient lock
// contention to 5 attempts totaling well under 100ms (1+2+4+8 = 15ms of
// sleep across 5 tries; no sleep follows the last try, so the final 16ms
// entry is never slept).
var busyRetryDelays = []time.Duration{
	time.Millisecond,
	2 * time.Millisecond,
	4 * time.Millisecond,
	8 * time.Millisecond,
	16 * time.Millisecond,
}

func isBusyErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}

// withBusyRetry runs fn up to len(busyRetryDelays) times, sleeping between
// attempts only while the error is a transient lock-contention error.
func withBusyRetry(fn func() error) error {
	var err error
	for i, delay := range busyRetryDelays {
		err = fn()
		if !isBusyErr(err) {
			return err
		}
		if i < len(busyRetryDelays)-1 {
			time.Sleep(delay)
		}
	}
	return err
}
