// Package worker implements the long-lived poll/execute/decide loop run by
// one Worker OS process, checking the cross-process stop flag between
// jobs (see internal/supervisor).
package worker

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/queuectl/queuectl/internal/config"
	"github.com/queuectl/queuectl/internal/executor"
	"github.com/queuectl/queuectl/internal/policy"
	"github.com/queuectl/queuectl/internal/storage"
	"github.com/queuectl/queuectl/internal/supervisor"
)

// PollInterval is the fixed delay between eligibility checks when the
// queue is empty.
const PollInterval = 1 * time.Second

// Worker is a long-lived loop: poll Store for a claimed job, execute it,
// apply policy, update Store. Tag identifies this worker for log
// prefixing only — it is never persisted.
type Worker struct {
	Tag   int
	Store *storage.Store
	Cfg   *config.Config
}

// New returns a Worker identified by tag.
func New(tag int, store *storage.Store, cfg *config.Config) *Worker {
	return &Worker{Tag: tag, Store: store, Cfg: cfg}
}

// Run loops until stop is set, checking it at each loop boundary (never
// mid-job): fetch_and_claim -> execute -> decide -> update, or sleep
// PollInterval when the queue is empty.
func (w *Worker) Run(stop *supervisor.StopFlag) {
	log.Printf("Worker %d: starting", w.Tag)
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		if stop.IsSet() {
			log.Printf("Worker %d: stop flag observed, shutting down", w.Tag)
			return
		}

		processed := w.tick()
		if !processed {
			<-ticker.C
		}
	}
}

// tick attempts to claim and process exactly one job, reporting whether a
// job was found. Any error is logged and treated as non-fatal: a single
// job's failure must not strand the worker.
func (w *Worker) tick() bool {
	job, err := w.Store.FetchAndClaim(workerTag(w.Tag))
	if err != nil {
		log.Printf("Worker %d: error claiming job: %v", w.Tag, err)
		return false
	}
	if job == nil {
		return false
	}

	log.Printf("Worker %d: executing job %s: %s", w.Tag, job.ID, job.Command)
	out := executor.Execute(context.Background(), job.Command)

	if out.Success {
		if err := w.Store.Complete(job.ID); err != nil {
			log.Printf("Worker %d: error completing job %s: %v", w.Tag, job.ID, err)
		} else {
			log.Printf("Worker %d: job %s completed", w.Tag, job.ID)
		}
		return true
	}

	attemptsAfter := job.Attempts + 1
	decision := policy.Decide(attemptsAfter, w.Cfg.MaxRetries, w.Cfg.BackoffBase)
	if decision.GiveUp {
		if err := w.Store.GiveUp(job.ID, out.Reason); err != nil {
			log.Printf("Worker %d: error moving job %s to dlq: %v", w.Tag, job.ID, err)
		} else {
			log.Printf("Worker %d: job %s moved to dlq after %d attempts: %s", w.Tag, job.ID, attemptsAfter, out.Reason)
		}
		return true
	}

	if err := w.Store.Reschedule(job.ID, decision.Delay); err != nil {
		log.Printf("Worker %d: error rescheduling job %s: %v", w.Tag, job.ID, err)
	} else {
		log.Printf("Worker %d: job %s failed (%s), retrying in %s", w.Tag, job.ID, out.Reason, decision.Delay)
	}
	return true
}

func workerTag(tag int) string {
	return "w" + strconv.Itoa(tag)
}
