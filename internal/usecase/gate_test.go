package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"resumatic/internal/domain"
)

func TestGateUnlockWaitsForLatency(t *testing.T) {
	g := NewGate(30*time.Millisecond, discardLogger())
	s := domain.NewSession(time.Now())
	s.SetGeneratedMarkup("<div>x</div>")

	start := time.Now()
	already, err := g.Unlock(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}
	if already {
		t.Error("first unlock reported as already unlocked")
	}
	if time.Since(start) < 30*time.Millisecond {
		t.Error("unlock returned before the configured latency")
	}
	if !g.IsUnlocked(s) {
		t.Error("session not unlocked")
	}

	start = time.Now()
	if already, _ := g.Unlock(context.Background(), s); !already {
		t.Error("second unlock not reported as already unlocked")
	}
	if time.Since(start) >= 30*time.Millisecond {
		t.Error("second unlock waited again")
	}
}

func TestGateUnlockCancelled(t *testing.T) {
	g := NewGate(time.Hour, discardLogger())
	s := domain.NewSession(time.Now())
	s.SetGeneratedMarkup("<div>x</div>")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Unlock(ctx, s); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if s.Unlocked {
		t.Error("cancelled unlock set the flag")
	}
}

func TestGateUnlockNeedsResume(t *testing.T) {
	g := NewGate(0, discardLogger())
	s := domain.NewSession(time.Now())

	if _, err := g.Unlock(context.Background(), s); !errors.Is(err, domain.ErrNoResume) {
		t.Fatalf("err = %v, want ErrNoResume", err)
	}
}
