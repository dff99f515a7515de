package executor

import (
	"context"
	"strings"
	"testing"
)

func TestExecute_Success(t *testing.T) {
	out := Execute(context.Background(), "true")
	if !out.Success {
		t.Fatalf("expected success, got failure: %s", out.Reason)
	}
}

func TestExecute_NonZeroExit(t *testing.T) {
	out := Execute(context.Background(), "exit 1")
	if out.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(out.Reason, "exit status 1") {
		t.Fatalf("Reason = %q, want it to mention exit status 1", out.Reason)
	}
}

func TestExecute_False(t *testing.T) {
	out := Execute(context.Background(), "false")
	if out.Success {
		t.Fatal("expected failure")
	}
}
