package supervisor

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/queuectl/queuectl/internal/apperr"
	"github.com/queuectl/queuectl/internal/config"
)

// Supervisor spawns Count worker OS processes sharing the Store file and a
// filesystem stop flag, writes its own pid to a pidfile, and joins the
// children on shutdown.
type Supervisor struct {
	Cfg   *config.Config
	Count int
}

// New returns a Supervisor that will run count workers against cfg.
func New(cfg *config.Config, count int) *Supervisor {
	return &Supervisor{Cfg: cfg, Count: count}
}

// Start writes the pidfile (failing with apperr.ErrAlreadyRunning if a live
// supervisor already owns it), installs SIGINT/SIGTERM handlers that set
// the stop flag, self-execs Count worker-run children, and blocks until
// they all exit. Once it has written the pidfile, it removes it before
// returning; the early error returns leave an existing pidfile untouched.
func (sv *Supervisor) Start() error {
	pidPath := sv.Cfg.PidPath()
	if pid, err := ReadPID(pidPath); err == nil && IsAlive(pid) {
		return fmt.Errorf("worker.pid names live process %d: %w", pid, apperr.ErrAlreadyRunning)
	}

	stop := NewStopFlag(sv.Cfg.StopFlagPath())
	if err := stop.Clear(); err != nil {
		return fmt.Errorf("clear stale stop flag: %w", err)
	}

	if err := WritePID(pidPath); err != nil {
		return fmt.Errorf("write pidfile: %w", err)
	}
	defer RemovePID(pidPath)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case sig := <-sigCh:
				log.Printf("Supervisor: received %v, signaling workers to stop", sig)
				if err := stop.Set(); err != nil {
					log.Printf("Supervisor: failed to set stop flag: %v", err)
				}
			case <-done:
				return
			}
		}
	}()

	log.Printf("Supervisor: starting %d worker(s), pid %d", sv.Count, os.Getpid())

	var wg sync.WaitGroup
	for i := 0; i < sv.Count; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			sv.runChild(index)
		}(i)
	}
	wg.Wait()

	if err := stop.Clear(); err != nil {
		log.Printf("Supervisor: failed to clear stop flag: %v", err)
	}
	log.Println("Supervisor: all workers have exited")
	return nil
}

// runChild self-execs one worker-run child and logs its exit. A worker's
// early exit is terminal for that worker only; the Supervisor does not
// respawn it.
func (sv *Supervisor) runChild(index int) {
	self, err := os.Executable()
	if err != nil {
		self = os.Args[0]
	}

	cmd := exec.Command(self, "internal", "worker-run",
		"--index", strconv.Itoa(index),
		"--data-dir", sv.Cfg.DataDir,
		"--max-retries", strconv.Itoa(sv.Cfg.MaxRetries),
		"--backoff-base", strconv.Itoa(sv.Cfg.BackoffBase),
	)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		log.Printf("Supervisor: worker %d failed to start: %v", index, err)
		return
	}
	log.Printf("Supervisor: worker %d started, pid %d", index, cmd.Process.Pid)

	if err := cmd.Wait(); err != nil {
		log.Printf("Supervisor: worker %d exited with error: %v", index, err)
		return
	}
	log.Printf("Supervisor: worker %d exited cleanly", index)
}

// Stop reads the pidfile and sends SIGTERM to that process, returning
// immediately without waiting for it to exit.
func Stop(cfg *config.Config) error {
	pid, err := ReadPID(cfg.PidPath())
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no worker.pid found: %w", apperr.ErrNotFound)
		}
		return fmt.Errorf("read pidfile: %w", apperr.ErrStorageError)
	}
	if !IsAlive(pid) {
		return fmt.Errorf("pid %d is not running: %w", pid, apperr.ErrNotFound)
	}
	if err := syscall.Kill(pid, syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal pid %d: %w", pid, apperr.ErrStorageError)
	}
	return nil
}
