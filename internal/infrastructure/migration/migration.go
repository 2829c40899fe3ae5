package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Migration is one idempotent schema step.
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

var migrations = []Migration{
	{Name: "create_pipeline_events", Up: createPipelineEvents},
	{Name: "index_pipeline_events_session", Up: indexPipelineEventsSession},
}

// RunMigrations applies every migration in order. All statements use
// IF NOT EXISTS, so running them on each start is safe.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	log.Info("migrations.start", "count", len(migrations))
	for _, m := range migrations {
		if err := m.Up(ctx, pool); err != nil {
			log.Error("migrations.failed", "name", m.Name, "error", err)
			return err
		}
		log.Info("migrations.applied", "name", m.Name)
	}
	return nil
}

func createPipelineEvents(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS pipeline_events (
			id         UUID PRIMARY KEY,
			session_id UUID NOT NULL,
			stage      TEXT NOT NULL,
			status     TEXT NOT NULL,
			detail     TEXT NOT NULL DEFAULT '',
			bytes      INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	return err
}

func indexPipelineEventsSession(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS pipeline_events_session_idx ON pipeline_events (session_id, created_at);`)
	return err
}
