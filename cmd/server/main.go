package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "resumatic/internal/adapter/http"
	"resumatic/internal/adapter/repository"
	"resumatic/internal/config"
	"resumatic/internal/infrastructure/migration"
	"resumatic/internal/style"
	"resumatic/internal/usecase"
	"resumatic/pkg/ai"
	infra "resumatic/pkg/infrastructure"

	"github.com/jackc/pgx/v4/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config.load_failed", "error", err)
		os.Exit(1)
	}
	log := cfg.Logger()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool := openEventLog(ctx, cfg, log)
	if pool != nil {
		defer pool.Close()
	}

	gen, err := newGenerator(ctx, cfg, log)
	if err != nil {
		log.Error("ai.init_failed", "backend", cfg.AIBackend, "error", err)
		os.Exit(1)
	}

	renderer, err := infra.NewRenderer(infra.RendererOptions{
		Strategy: cfg.PDFStrategy,
		BinPath:  cfg.ChromePath,
		TempDir:  cfg.TempDir,
		Timeout:  cfg.PDFTimeout,
		Log:      log,
	})
	if err != nil {
		log.Error("pdf.init_failed", "error", err)
		os.Exit(1)
	}

	var exporter *usecase.Exporter
	if renderer == nil {
		exporter = usecase.NewExporter(nil, nil, log)
	} else {
		exporter = usecase.NewExporter(renderer, infra.VerifyPDF, log)
	}

	processor := usecase.NewProcessor(
		usecase.NewComposer(gen, cfg.GenerationTimeout, cfg.MarkupStrict, log),
		usecase.NewGate(cfg.UnlockLatency, log),
		exporter,
		style.CSS(),
		repository.NewEventsRepo(pool),
		log,
	)

	sessions := repository.NewSessionStore(cfg.SessionTTL)
	go sweepSessions(ctx, sessions, cfg.SessionTTL, log)

	app := httpadapter.NewApp(httpadapter.NewHandler(processor, sessions, log), log, 30*time.Second)

	errc := make(chan error, 1)
	go func() {
		log.Info("server.start", "port", cfg.Port, "pdf_strategy", cfg.PDFStrategy, "ai_backend", cfg.AIBackend)
		errc <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		if err != nil {
			log.Error("server.failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	log.Info("server.shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		log.Error("server.shutdown_failed", "error", err)
	}
}

// openEventLog connects the optional event log database and applies its
// schema. Any failure disables the log instead of stopping the service.
func openEventLog(ctx context.Context, cfg config.Config, log *slog.Logger) *pgxpool.Pool {
	if cfg.JobsDatabaseURL == "" {
		log.Info("events.disabled")
		return nil
	}
	pool, err := infra.NewJobsPool(ctx, cfg.JobsDatabaseURL)
	if err != nil {
		log.Warn("events.db_unavailable", "error", err)
		return nil
	}
	if err := migration.RunMigrations(ctx, pool, log); err != nil {
		log.Warn("events.migrations_failed", "error", err)
		pool.Close()
		return nil
	}
	return pool
}

func newGenerator(ctx context.Context, cfg config.Config, log *slog.Logger) (usecase.TextGenerator, error) {
	if cfg.AIBackend == config.BackendGemini {
		g, err := ai.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
	return ai.NewClient(cfg.AIServiceURL, cfg.GenerationTimeout, cfg.AIMaxAttempts, log), nil
}

func sweepSessions(ctx context.Context, sessions *repository.SessionStore, ttl time.Duration, log *slog.Logger) {
	if ttl <= 0 {
		return
	}
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := sessions.Sweep(now); n > 0 {
				log.Info("sessions.swept", "removed", n, "remaining", sessions.Len())
			}
		}
	}
}
