package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/queuectl/queuectl/internal/apperr"
	"github.com/queuectl/queuectl/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(filepath.Join(dir, "queue.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEnqueue_DuplicateID(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Enqueue("true", "dup")
	if err != nil {
		t.Fatalf("first enqueue: %v", err)
	}
	if id != "dup" {
		t.Fatalf("id = %q, want dup", id)
	}

	_, err = s.Enqueue("true", "dup")
	if !errors.Is(err, apperr.ErrDuplicateID) {
		t.Fatalf("second enqueue: err = %v, want ErrDuplicateID", err)
	}
}

func TestEnqueue_GeneratesIDWhenAbsent(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Enqueue("true", "")
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated id")
	}
}

func TestFetchAndClaim_RespectsEligibility(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Enqueue("true", "future"); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	// Push the job's run_at into the future directly; Enqueue always uses now.
	if _, err := s.Db.Exec(`UPDATE jobs SET run_at = ? WHERE id = ?`, time.Now().Add(time.Hour), "future"); err != nil {
		t.Fatalf("seed future run_at: %v", err)
	}

	job, err := s.FetchAndClaim("w0")
	if err != nil {
		t.Fatalf("fetch_and_claim: %v", err)
	}
	if job != nil {
		t.Fatalf("claimed a not-yet-eligible job: %+v", job)
	}
}

func TestFetchAndClaim_ClaimsEarliestByRunAtThenCreatedAt(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Enqueue("cmd-a", "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Enqueue("cmd-b", "b"); err != nil {
		t.Fatal(err)
	}

	job, err := s.FetchAndClaim("w0")
	if err != nil {
		t.Fatalf("fetch_and_claim: %v", err)
	}
	if job == nil {
		t.Fatal("expected a claimed job")
	}
	if job.ID != "a" {
		t.Fatalf("claimed id = %q, want a (earliest created)", job.ID)
	}
	if job.State != model.StateProcessing {
		t.Fatalf("claimed job state = %q, want processing", job.State)
	}

	// Claiming again must not return the same job.
	job2, err := s.FetchAndClaim("w1")
	if err != nil {
		t.Fatalf("fetch_and_claim: %v", err)
	}
	if job2 == nil || job2.ID != "b" {
		t.Fatalf("second claim = %+v, want job b", job2)
	}
}

func TestComplete_MarksJobCompleted(t *testing.T) {
	s := newTestStore(t)

	s.Enqueue("true", "j1")
	job, err := s.FetchAndClaim("w0")
	if err != nil || job == nil {
		t.Fatalf("claim: job=%+v err=%v", job, err)
	}
	if err := s.Complete(job.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	rows, err := s.List(model.StateCompleted)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "j1" {
		t.Fatalf("completed rows = %+v", rows)
	}
}

func TestReschedule_IncrementsAttemptsAndDelaysRunAt(t *testing.T) {
	s := newTestStore(t)
	s.Enqueue("false", "j2")
	job, _ := s.FetchAndClaim("w0")

	if err := s.Reschedule(job.ID, 2*time.Second); err != nil {
		t.Fatalf("reschedule: %v", err)
	}

	rows, err := s.List(model.StateFailed)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("failed rows = %+v", rows)
	}
	if rows[0].Attempts != 1 {
		t.Fatalf("attempts = %d, want 1", rows[0].Attempts)
	}
	if !rows[0].RunAt.After(time.Now()) {
		t.Fatalf("run_at should be in the future: %v", rows[0].RunAt)
	}
}

func TestGiveUp_MovesToDLQExclusively(t *testing.T) {
	s := newTestStore(t)
	s.Enqueue("false", "j3")
	job, _ := s.FetchAndClaim("w0")

	if err := s.GiveUp(job.ID, "boom"); err != nil {
		t.Fatalf("give_up: %v", err)
	}

	jobs, err := s.List("")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, j := range jobs {
		if j.ID == "j3" {
			t.Fatal("job j3 still present in jobs after give_up")
		}
	}

	entries, err := s.DLQList()
	if err != nil {
		t.Fatalf("dlq_list: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "j3" {
		t.Fatalf("dlq entries = %+v", entries)
	}
	if entries[0].Attempts != 1 {
		t.Fatalf("dlq attempts = %d, want 1 (attempted-execution count)", entries[0].Attempts)
	}
	if entries[0].LastError != "boom" {
		t.Fatalf("last_error = %q, want boom", entries[0].LastError)
	}
}

func TestDLQRetry_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	s.Enqueue("false", "j4")
	job, _ := s.FetchAndClaim("w0")
	s.GiveUp(job.ID, "boom")

	if err := s.DLQRetry("j4"); err != nil {
		t.Fatalf("dlq_retry: %v", err)
	}

	entries, _ := s.DLQList()
	if len(entries) != 0 {
		t.Fatalf("dlq should be empty, got %+v", entries)
	}

	jobs, _ := s.List(model.StatePending)
	if len(jobs) != 1 || jobs[0].Attempts != 0 {
		t.Fatalf("pending jobs = %+v", jobs)
	}
	if jobs[0].RunAt.After(time.Now()) {
		t.Fatalf("run_at should be <= now, got %v", jobs[0].RunAt)
	}
}

func TestDLQRetry_NotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.DLQRetry("nope")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCounts(t *testing.T) {
	s := newTestStore(t)
	s.Enqueue("true", "p1")
	s.Enqueue("true", "p2")
	job, _ := s.FetchAndClaim("w0")
	s.Complete(job.ID)

	counts, err := s.Counts()
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts.Pending != 1 || counts.Completed != 1 {
		t.Fatalf("counts = %+v", counts)
	}
}
