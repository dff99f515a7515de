package policy

import (
	"testing"
	"time"
)

func TestDecide_DefaultBackoffSchedule(t *testing.T) {
	// max_retries=3, backoff_base=2: successive retry delays are 2,4,8s,
	// give up on the 4th failure (attempts_after_failure=4).
	cases := []struct {
		attempts int
		wantGive bool
		wantWait time.Duration
	}{
		{1, false, 2 * time.Second},
		{2, false, 4 * time.Second},
		{3, false, 8 * time.Second},
		{4, true, 0},
	}

	for _, c := range cases {
		got := Decide(c.attempts, 3, 2)
		if got.GiveUp != c.wantGive {
			t.Errorf("attempts=%d: GiveUp = %v, want %v", c.attempts, got.GiveUp, c.wantGive)
		}
		if !c.wantGive && got.Delay != c.wantWait {
			t.Errorf("attempts=%d: Delay = %v, want %v", c.attempts, got.Delay, c.wantWait)
		}
	}
}

func TestDecide_ScenarioConfig(t *testing.T) {
	// S1-S6 scenario config: max_retries=2, backoff_base=1 -> delays of
	// 1s, 1s, give up on the 3rd failure (attempts_after=3).
	for attempts := 1; attempts <= 2; attempts++ {
		got := Decide(attempts, 2, 1)
		if got.GiveUp {
			t.Fatalf("attempts=%d: unexpected GiveUp", attempts)
		}
		if got.Delay != time.Second {
			t.Fatalf("attempts=%d: Delay = %v, want 1s", attempts, got.Delay)
		}
	}
	if d := Decide(3, 2, 1); !d.GiveUp {
		t.Fatal("attempts=3: expected GiveUp")
	}
}

func TestDecide_OverflowClamp(t *testing.T) {
	d := Decide(62, 1000, 2)
	if d.GiveUp {
		t.Fatal("expected reschedule, not give up")
	}
	if d.Delay != maxDelay {
		t.Fatalf("Delay = %v, want clamp at %v", d.Delay, maxDelay)
	}
}

func TestDecide_BoundaryEqualsMaxRetries(t *testing.T) {
	// attempts_after_this_failure == max_retries must still reschedule,
	// not give up (strict > in the predicate).
	d := Decide(3, 3, 2)
	if d.GiveUp {
		t.Fatal("attempts == max_retries should reschedule, not give up")
	}
}
