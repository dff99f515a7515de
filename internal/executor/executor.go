// Package executor runs a job's command as a child process through the
// platform shell, classifying the result into a Success/Failure outcome.
package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Outcome is the result of one execution attempt. Reason is empty on
// success and a short diagnostic string on failure.
type Outcome struct {
	Success bool
	Reason  string
}

// Execute runs command via "sh -c", inheriting the caller's standard
// streams. It blocks until the child exits or ctx is done.
func Execute(ctx context.Context, command string) Outcome {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return Outcome{Success: true}
	}

	return Outcome{Success: false, Reason: classify(err)}
}

func classify(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Sprintf("exit status %d", exitErr.ExitCode())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out"
	}
	return fmt.Sprintf("spawn error: %v", err)
}
