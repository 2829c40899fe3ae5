package usecase

import (
	"context"
	"log/slog"
	"time"

	"resumatic/internal/domain"
	"resumatic/internal/model"

	"github.com/google/uuid"
)

// EventLog records pipeline events. Implementations must be safe to call
// with no backing store.
type EventLog interface {
	Record(ctx context.Context, ev domain.Event) error
}

// Processor runs the wizard pipeline: compose, gate, export. Every stage
// takes the session explicitly and only mutates it on success; callers
// persist the session afterwards.
type Processor struct {
	composer *Composer
	gate     *Gate
	exporter *Exporter
	css      string
	events   EventLog
	log      *slog.Logger
	now      func() time.Time
}

func NewProcessor(c *Composer, g *Gate, e *Exporter, css string, events EventLog, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	return &Processor{composer: c, gate: g, exporter: e, css: css, events: events, log: log, now: time.Now}
}

// CSS is the stylesheet used for preview and export.
func (p *Processor) CSS() string { return p.css }

// PDFAvailable reports whether the active strategy produces PDF bytes.
func (p *Processor) PDFAvailable() bool { return p.exporter.PDFAvailable() }

// Submit validates the form input and generates a resume. On success the
// input and markup are stored on s.
func (p *Processor) Submit(ctx context.Context, s *domain.Session, in domain.PipelineInput) (Composition, error) {
	if err := model.ValidateInput(in); err != nil {
		return Composition{}, err
	}
	start := p.now()
	comp, err := p.composer.Compose(ctx, in)
	if err != nil {
		p.record(ctx, s, domain.StageCompose, err, 0)
		return Composition{}, err
	}
	s.SetInput(in)
	s.SetGeneratedMarkup(comp.Markup)
	s.UpdatedAt = p.now()
	p.log.Info("compose.done", "session_id", s.ID, "markup_len", len(comp.Markup), "missing", comp.Missing, "elapsed_ms", p.now().Sub(start).Milliseconds())
	p.record(ctx, s, domain.StageCompose, nil, len(comp.Markup))
	return comp, nil
}

// Autofill validates the input and asks the backend for supplementary
// education and work history. The session is not modified.
func (p *Processor) Autofill(ctx context.Context, s *domain.Session, in domain.PipelineInput) (AutofillDetails, error) {
	if err := model.ValidateInput(in); err != nil {
		return AutofillDetails{}, err
	}
	d, err := p.composer.Autofill(ctx, in)
	p.record(ctx, s, domain.StageAutofill, err, 0)
	return d, err
}

func (p *Processor) IsUnlocked(s *domain.Session) bool { return p.gate.IsUnlocked(s) }

// Unlock runs the access gate. See Gate.Unlock.
func (p *Processor) Unlock(ctx context.Context, s *domain.Session) (bool, error) {
	already, err := p.gate.Unlock(ctx, s)
	if err != nil {
		return false, err
	}
	if !already {
		s.UpdatedAt = p.now()
		p.record(ctx, s, domain.StageUnlock, nil, 0)
	}
	return already, nil
}

func (p *Processor) Navigate(s *domain.Session, want domain.Step) domain.Step {
	return Resolve(s, want)
}

// Preview returns the resume as a standalone document for on-screen
// display. It only needs a resume: the download page shows the same
// document once the session is unlocked, so no lock check applies.
func (p *Processor) Preview(s *domain.Session) (string, error) {
	if !s.HasResume() {
		return "", domain.ErrNoResume
	}
	art, err := p.exporter.ExportHTML(s.GeneratedMarkup, p.css)
	if err != nil {
		return "", err
	}
	return string(art.Body), nil
}

func (p *Processor) ExportHTML(ctx context.Context, s *domain.Session) (domain.ExportArtifact, error) {
	if err := guardDownload(s); err != nil {
		return domain.ExportArtifact{}, err
	}
	art, err := p.exporter.ExportHTML(s.GeneratedMarkup, p.css)
	p.record(ctx, s, domain.StageExportHTML, err, len(art.Body))
	return art, err
}

func (p *Processor) ExportPrintable(ctx context.Context, s *domain.Session) (domain.ExportArtifact, error) {
	if err := guardDownload(s); err != nil {
		return domain.ExportArtifact{}, err
	}
	return p.exporter.ExportPrintable(s.GeneratedMarkup, p.css)
}

func (p *Processor) ExportPDF(ctx context.Context, s *domain.Session) (domain.ExportArtifact, error) {
	if err := guardDownload(s); err != nil {
		return domain.ExportArtifact{}, err
	}
	art, err := p.exporter.ExportPDF(ctx, s.GeneratedMarkup, p.css)
	p.record(ctx, s, domain.StageExportPDF, err, len(art.Body))
	return art, err
}

// Reset starts the session over.
func (p *Processor) Reset(ctx context.Context, s *domain.Session) {
	s.Reset()
	s.UpdatedAt = p.now()
	p.record(ctx, s, domain.StageReset, nil, 0)
}

// record writes an event on a best-effort basis.
func (p *Processor) record(ctx context.Context, s *domain.Session, stage string, err error, n int) {
	if p.events == nil || s == nil {
		return
	}
	ev := domain.Event{
		ID:        uuid.New(),
		SessionID: s.ID,
		Stage:     stage,
		Status:    "ok",
		Bytes:     n,
		CreatedAt: p.now(),
	}
	if err != nil {
		ev.Status = "failed"
		if f, ok := domain.AsFailure(err); ok {
			ev.Detail = string(f.Kind)
		} else {
			ev.Detail = err.Error()
		}
	}
	if recErr := p.events.Record(ctx, ev); recErr != nil {
		p.log.Warn("events.record_failed", "stage", stage, "error", recErr)
	}
}
