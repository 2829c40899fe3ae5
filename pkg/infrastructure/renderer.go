package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// PDFRenderer is a headless strategy turning a standalone HTML document
// into PDF bytes.
type PDFRenderer interface {
	Name() string
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// RendererOptions configures NewRenderer.
type RendererOptions struct {
	Strategy string
	BinPath  string
	TempDir  string
	Timeout  time.Duration
	Log      *slog.Logger
}

// NewRenderer picks the strategy once at startup. The "print" strategy
// has no server-side renderer and yields nil.
func NewRenderer(opts RendererOptions) (PDFRenderer, error) {
	switch opts.Strategy {
	case "chromedp", "":
		return NewChromedpRenderer(opts.BinPath, opts.TempDir, opts.Timeout, opts.Log), nil
	case "rod":
		return NewRodRenderer(opts.BinPath, opts.TempDir, opts.Timeout, opts.Log), nil
	case "print":
		return nil, nil
	}
	return nil, fmt.Errorf("infrastructure: unknown pdf strategy %q", opts.Strategy)
}
