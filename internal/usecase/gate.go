package usecase

import (
	"context"
	"log/slog"
	"time"

	"resumatic/internal/domain"
)

// Gate is the access gate standing in for a payment step.
type Gate struct {
	latency time.Duration
	log     *slog.Logger
}

func NewGate(latency time.Duration, log *slog.Logger) *Gate {
	if log == nil {
		log = slog.Default()
	}
	return &Gate{latency: latency, log: log}
}

func (g *Gate) IsUnlocked(s *domain.Session) bool { return s != nil && s.Unlocked }

// Unlock flips the session's flag after the configured processing latency.
// It reports whether the session was already unlocked, in which case it
// returns at once. A session without a resume cannot be unlocked.
func (g *Gate) Unlock(ctx context.Context, s *domain.Session) (bool, error) {
	if g.IsUnlocked(s) {
		return true, nil
	}
	if !s.HasResume() {
		return false, domain.ErrNoResume
	}
	if g.latency > 0 {
		t := time.NewTimer(g.latency)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	s.SetUnlocked(true)
	g.log.Info("gate.unlocked", "session_id", s.ID)
	return false, nil
}
