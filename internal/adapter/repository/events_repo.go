package repository

import (
	"context"

	"resumatic/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// EventsRepo appends pipeline events to Postgres. With no pool it
// silently drops them.
type EventsRepo struct {
	pool *pgxpool.Pool
}

func NewEventsRepo(pool *pgxpool.Pool) *EventsRepo {
	return &EventsRepo{pool: pool}
}

func (r *EventsRepo) Record(ctx context.Context, ev domain.Event) error {
	if r == nil || r.pool == nil {
		return nil
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO pipeline_events (id, session_id, stage, status, detail, bytes, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO NOTHING`,
		ev.ID, ev.SessionID, ev.Stage, ev.Status, ev.Detail, ev.Bytes, ev.CreatedAt)
	return err
}
