package usecase

import (
	"context"
	"log/slog"
	"time"

	"resumatic/internal/domain"
	"resumatic/internal/markup"
)

// Renderer converts a standalone HTML document into PDF bytes.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// Exporter produces downloadable artifacts. The HTML path never touches the
// renderer.
type Exporter struct {
	renderer Renderer
	verify   func([]byte) (int, error)
	log      *slog.Logger
}

// NewExporter builds an Exporter. A nil renderer means PDFs are produced
// through the browser's print dialog only. verify may be nil.
func NewExporter(r Renderer, verify func([]byte) (int, error), log *slog.Logger) *Exporter {
	if log == nil {
		log = slog.Default()
	}
	return &Exporter{renderer: r, verify: verify, log: log}
}

// PDFAvailable reports whether ExportPDF can produce bytes.
func (e *Exporter) PDFAvailable() bool { return e.renderer != nil }

func (e *Exporter) ExportHTML(fragment, css string) (domain.ExportArtifact, error) {
	if fragment == "" {
		return domain.ExportArtifact{}, domain.ErrNoResume
	}
	return domain.ExportArtifact{
		Format:      domain.FormatHTML,
		FileName:    domain.HTMLFileName,
		ContentType: domain.ContentTypeHTML,
		Body:        []byte(markup.Wrap(fragment, css)),
	}, nil
}

// ExportPrintable returns the document that opens the print dialog, for
// users saving the PDF themselves.
func (e *Exporter) ExportPrintable(fragment, css string) (domain.ExportArtifact, error) {
	if fragment == "" {
		return domain.ExportArtifact{}, domain.ErrNoResume
	}
	return domain.ExportArtifact{
		Format:      domain.FormatHTML,
		FileName:    domain.HTMLFileName,
		ContentType: domain.ContentTypeHTML,
		Body:        []byte(markup.WrapPrintable(fragment, css)),
	}, nil
}

func (e *Exporter) ExportPDF(ctx context.Context, fragment, css string) (domain.ExportArtifact, error) {
	if fragment == "" {
		return domain.ExportArtifact{}, domain.ErrNoResume
	}
	if e.renderer == nil {
		return domain.ExportArtifact{}, domain.NewPdfRenderFailure(
			`Automatic PDF export is not available. Open the print view and choose "Save as PDF", or download the HTML version.`, nil)
	}

	start := time.Now()
	pdf, err := e.renderer.RenderHTMLToPDF(ctx, markup.Wrap(fragment, css))
	if err != nil {
		e.log.Error("pdf.render_failed", "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return domain.ExportArtifact{}, domain.NewPdfRenderFailure("", err)
	}
	pages := 0
	if e.verify != nil {
		pages, err = e.verify(pdf)
		if err != nil {
			e.log.Error("pdf.verify_failed", "error", err, "bytes", len(pdf))
			return domain.ExportArtifact{}, domain.NewPdfRenderFailure("", err)
		}
	} else if len(pdf) == 0 {
		return domain.ExportArtifact{}, domain.NewPdfRenderFailure("PDF generation failed: the converter produced no output. Please try the HTML download.", nil)
	}
	e.log.Info("pdf.render_done", "bytes", len(pdf), "pages", pages, "elapsed_ms", time.Since(start).Milliseconds())

	return domain.ExportArtifact{
		Format:      domain.FormatPDF,
		FileName:    domain.PDFFileName,
		ContentType: domain.ContentTypePDF,
		Body:        pdf,
	}, nil
}
