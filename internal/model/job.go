// Package model defines the row shapes shared by the store, the worker,
// and the CLI surface.
package model

import "time"

// Job states. A job is always in exactly one of these; "dead" jobs live in
// a separate table (DLQEntry) rather than carrying a fifth state value.
const (
	StatePending    = "pending"
	StateProcessing = "processing"
	StateFailed     = "failed"
	StateCompleted  = "completed"
)

// Job is a row in the jobs table.
type Job struct {
	ID        string    `json:"id"`
	Command   string    `json:"command"`
	State     string    `json:"state"`
	Attempts  int       `json:"attempts"`
	RunAt     time.Time `json:"run_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DLQEntry is a row in the dlq table. LastError is empty when the job was
// never actually attempted with a recorded failure reason (should not
// normally happen, since give_up always follows a failed execution).
type DLQEntry struct {
	ID        string    `json:"id"`
	Command   string    `json:"command"`
	Attempts  int       `json:"attempts"`
	FailedAt  time.Time `json:"failed_at"`
	LastError string    `json:"last_error,omitempty"`
}

// Counts is the aggregate job-state summary used by `status`.
type Counts struct {
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Failed     int `json:"failed"`
	Completed  int `json:"completed"`
	Dead       int `json:"dead"`
}
