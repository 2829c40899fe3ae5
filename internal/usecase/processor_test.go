package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"resumatic/internal/domain"
	"resumatic/internal/markup"
)

const testCSS = ".resume-header { color: #111; }"

type harness struct {
	gen      *fakeGenerator
	renderer *fakeRenderer
	events   *memEvents
	p        *Processor
}

func newHarness(r Renderer) *harness {
	h := &harness{
		gen:    &fakeGenerator{out: `{"resume": "<div class=\"resume-header\">Jane</div>"}`},
		events: &memEvents{},
	}
	if fr, ok := r.(*fakeRenderer); ok {
		h.renderer = fr
	}
	log := discardLogger()
	h.p = NewProcessor(
		NewComposer(h.gen, time.Second, false, log),
		NewGate(0, log),
		NewExporter(r, okVerify, log),
		testCSS,
		h.events,
		log,
	)
	return h
}

func completedSession(t *testing.T, h *harness) *domain.Session {
	t.Helper()
	s := domain.NewSession(time.Now())
	if _, err := h.p.Submit(context.Background(), s, validInput); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := h.p.Unlock(context.Background(), s); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	return s
}

func TestSubmitRejectsShortJobDescription(t *testing.T) {
	h := newHarness(&fakeRenderer{out: fakePDF()})
	s := domain.NewSession(time.Now())

	in := domain.PipelineInput{JobDescription: strings.Repeat("j", 49), UserInput: strings.Repeat("u", 20)}
	_, err := h.p.Submit(context.Background(), s, in)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want validation failure", err)
	}
	if h.gen.calls != 0 {
		t.Errorf("backend called %d times for invalid input", h.gen.calls)
	}
	if s.JobDescription != "" || s.HasResume() {
		t.Error("session modified by rejected submission")
	}
}

func TestSubmitStoresMarkupAndProceedsToGate(t *testing.T) {
	h := newHarness(&fakeRenderer{out: fakePDF()})
	s := domain.NewSession(time.Now())

	in := domain.PipelineInput{JobDescription: strings.Repeat("j", 50), UserInput: strings.Repeat("u", 20)}
	comp, err := h.p.Submit(context.Background(), s, in)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if s.GeneratedMarkup != comp.Markup || !strings.Contains(s.GeneratedMarkup, "Jane") {
		t.Errorf("markup = %q", s.GeneratedMarkup)
	}
	if s.Input() != in {
		t.Errorf("input = %+v", s.Input())
	}
	if got := h.p.Navigate(s, domain.StepPayment); got != domain.StepPayment {
		t.Errorf("Navigate(payment) = %s", got)
	}
	if got := h.p.Navigate(s, domain.StepDownload); got != domain.StepPayment {
		t.Errorf("Navigate(download) before unlock = %s", got)
	}
}

func TestSubmitBackendFailureLeavesSession(t *testing.T) {
	h := newHarness(&fakeRenderer{out: fakePDF()})
	h.gen.err = errBackend
	s := domain.NewSession(time.Now())

	_, err := h.p.Submit(context.Background(), s, validInput)
	if !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("err = %v, want generation failure", err)
	}
	if s.GeneratedMarkup != "" {
		t.Errorf("markup = %q, want empty", s.GeneratedMarkup)
	}
	if got := h.events.stages(); len(got) != 1 || got[0] != "compose:failed" {
		t.Errorf("events = %v", got)
	}
}

func TestExportPDFFailureLeavesSession(t *testing.T) {
	h := newHarness(&fakeRenderer{err: errors.New("chrome exited with status 1")})
	s := completedSession(t, h)
	before := *s

	_, err := h.p.ExportPDF(context.Background(), s)
	if !errors.Is(err, domain.ErrPdfRender) {
		t.Fatalf("err = %v, want pdf render failure", err)
	}
	f, _ := domain.AsFailure(err)
	if !strings.Contains(f.Message, "HTML") {
		t.Errorf("message does not offer the HTML download: %q", f.Message)
	}
	if *s != before {
		t.Errorf("session changed: %+v -> %+v", before, *s)
	}
	if _, err := h.p.ExportHTML(context.Background(), s); err != nil {
		t.Errorf("HTML fallback failed: %v", err)
	}
}

func TestResetClearsCompletedSession(t *testing.T) {
	h := newHarness(&fakeRenderer{out: fakePDF()})
	s := completedSession(t, h)
	id := s.ID

	h.p.Reset(context.Background(), s)

	if s.JobDescription != "" || s.UserInput != "" || s.GeneratedMarkup != "" || s.Unlocked {
		t.Errorf("session not reset: %+v", s)
	}
	if s.ID != id {
		t.Error("reset changed the session id")
	}
	if got := h.p.Navigate(s, domain.StepDownload); got != domain.StepPayment {
		t.Errorf("Navigate(download) after reset = %s", got)
	}
}

func TestExportRequiresUnlock(t *testing.T) {
	h := newHarness(&fakeRenderer{out: fakePDF()})
	s := domain.NewSession(time.Now())
	if _, err := h.p.Submit(context.Background(), s, validInput); err != nil {
		t.Fatal(err)
	}

	if _, err := h.p.ExportHTML(context.Background(), s); !errors.Is(err, domain.ErrLocked) {
		t.Errorf("ExportHTML err = %v, want ErrLocked", err)
	}
	if _, err := h.p.ExportPDF(context.Background(), s); !errors.Is(err, domain.ErrLocked) {
		t.Errorf("ExportPDF err = %v, want ErrLocked", err)
	}
	if _, err := h.p.ExportPrintable(context.Background(), s); !errors.Is(err, domain.ErrLocked) {
		t.Errorf("ExportPrintable err = %v, want ErrLocked", err)
	}
	if h.renderer.calls != 0 {
		t.Error("renderer ran for a locked session")
	}
}

func TestExportWithoutResume(t *testing.T) {
	h := newHarness(&fakeRenderer{out: fakePDF()})
	s := domain.NewSession(time.Now())
	s.SetUnlocked(true)

	if _, err := h.p.ExportHTML(context.Background(), s); !errors.Is(err, domain.ErrNoResume) {
		t.Errorf("err = %v, want ErrNoResume", err)
	}
	if _, err := h.p.Preview(s); !errors.Is(err, domain.ErrNoResume) {
		t.Errorf("Preview err = %v, want ErrNoResume", err)
	}
}

func TestExportHTMLIsIdempotent(t *testing.T) {
	h := newHarness(&fakeRenderer{out: fakePDF()})
	s := completedSession(t, h)

	a, err := h.p.ExportHTML(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}
	b, err := h.p.ExportHTML(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}
	if string(a.Body) != string(b.Body) {
		t.Error("two exports of the same session differ")
	}
	if a.FileName != domain.HTMLFileName || a.ContentType != domain.ContentTypeHTML {
		t.Errorf("artifact = %s %s", a.FileName, a.ContentType)
	}
	body, err := markup.ExtractBody(string(a.Body))
	if err != nil {
		t.Fatal(err)
	}
	if body != s.GeneratedMarkup {
		t.Errorf("embedded fragment = %q, want %q", body, s.GeneratedMarkup)
	}
	if !strings.Contains(string(a.Body), testCSS) {
		t.Error("stylesheet not embedded")
	}
}

func TestExportPDF(t *testing.T) {
	h := newHarness(&fakeRenderer{out: fakePDF()})
	s := completedSession(t, h)

	art, err := h.p.ExportPDF(context.Background(), s)
	if err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}
	if art.FileName != domain.PDFFileName || art.ContentType != domain.ContentTypePDF {
		t.Errorf("artifact = %s %s", art.FileName, art.ContentType)
	}
	if !strings.Contains(h.renderer.last, s.GeneratedMarkup) || !strings.Contains(h.renderer.last, testCSS) {
		t.Error("renderer did not receive the full document")
	}
	stages := h.events.stages()
	if stages[len(stages)-1] != "export_pdf:ok" {
		t.Errorf("events = %v", stages)
	}
	for _, ev := range h.events.events {
		if strings.Contains(ev.Detail, "Jane") {
			t.Error("event carries resume content")
		}
	}
}

func TestExportPDFEmptyOutput(t *testing.T) {
	h := newHarness(&fakeRenderer{out: nil})
	s := completedSession(t, h)

	if _, err := h.p.ExportPDF(context.Background(), s); !errors.Is(err, domain.ErrPdfRender) {
		t.Fatalf("err = %v, want pdf render failure", err)
	}
}

func TestExportPDFPrintStrategy(t *testing.T) {
	h := newHarness(nil)
	s := completedSession(t, h)

	if h.p.PDFAvailable() {
		t.Fatal("PDFAvailable with no renderer")
	}
	if _, err := h.p.ExportPDF(context.Background(), s); !errors.Is(err, domain.ErrPdfRender) {
		t.Fatalf("err = %v, want pdf render failure", err)
	}
	art, err := h.p.ExportPrintable(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(art.Body), "window.print()") {
		t.Error("printable document does not open the print dialog")
	}
}

func TestUnlockIsOneShot(t *testing.T) {
	h := newHarness(&fakeRenderer{out: fakePDF()})
	s := completedSession(t, h)

	already, err := h.p.Unlock(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}
	if !already {
		t.Error("second unlock not reported as already unlocked")
	}
	if got := h.p.Navigate(s, domain.StepPayment); got != domain.StepDownload {
		t.Errorf("Navigate(payment) after unlock = %s", got)
	}
}

func TestEventLogFailureIsIgnored(t *testing.T) {
	h := newHarness(&fakeRenderer{out: fakePDF()})
	h.events.err = errors.New("db down")
	s := domain.NewSession(time.Now())

	if _, err := h.p.Submit(context.Background(), s, validInput); err != nil {
		t.Fatalf("Submit: %v", err)
	}
}

func TestPreviewServedBeforeAndAfterUnlock(t *testing.T) {
	h := newHarness(&fakeRenderer{out: fakePDF()})
	s := domain.NewSession(time.Now())
	if _, err := h.p.Submit(context.Background(), s, validInput); err != nil {
		t.Fatal(err)
	}

	locked, err := h.p.Preview(s)
	if err != nil {
		t.Fatalf("Preview before unlock: %v", err)
	}
	if _, err := h.p.Unlock(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	if got := h.p.Navigate(s, domain.StepPreview); got != domain.StepDownload {
		t.Errorf("Navigate(preview) after unlock = %s", got)
	}
	unlocked, err := h.p.Preview(s)
	if err != nil {
		t.Fatalf("Preview after unlock: %v", err)
	}
	if locked != unlocked {
		t.Error("preview document changed after unlock")
	}
	body, err := markup.ExtractBody(unlocked)
	if err != nil || body != s.GeneratedMarkup {
		t.Errorf("preview body = %q, %v", body, err)
	}
}
