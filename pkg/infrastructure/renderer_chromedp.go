package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// ChromedpRenderer prints documents to PDF with a headless Chrome driven
// over the DevTools protocol. Each call launches its own browser whose
// profile lives in the per-request scratch directory.
type ChromedpRenderer struct {
	ExecPath string
	TempDir  string
	Timeout  time.Duration
	Log      *slog.Logger
}

func NewChromedpRenderer(execPath, tempDir string, timeout time.Duration, log *slog.Logger) *ChromedpRenderer {
	return &ChromedpRenderer{ExecPath: execPath, TempDir: tempDir, Timeout: timeout, Log: log}
}

func (r *ChromedpRenderer) Name() string { return "chromedp" }

func (r *ChromedpRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	var pdfBuf []byte
	err := withScratchDir(r.TempDir, r.Log, func(dir string) error {
		htmlPath := filepath.Join(dir, "index.html")
		if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
			return err
		}

		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserDataDir(filepath.Join(dir, "profile")),
		)
		if r.ExecPath != "" {
			opts = append(opts, chromedp.ExecPath(r.ExecPath))
		}

		allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
		defer cancel()

		cctx, cancelCtx := chromedp.NewContext(allocCtx)
		defer cancelCtx()

		runCtx, cancelRun := renderContext(cctx, r.Timeout)
		defer cancelRun()

		var fontsReady bool
		err := chromedp.Run(runCtx,
			chromedp.Navigate("file://"+htmlPath),
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.Evaluate(`document.fonts.ready.then(() => true)`, &fontsReady,
				func(p *runtime.EvaluateParams) *runtime.EvaluateParams { return p.WithAwaitPromise(true) }),
			chromedp.ActionFunc(func(ctx context.Context) error {
				var err error
				pdfBuf, _, err = page.PrintToPDF().
					WithPrintBackground(true).
					WithLandscape(false).
					WithPaperWidth(a4WidthIn).
					WithPaperHeight(a4HeightIn).
					WithMarginTop(marginIn).
					WithMarginBottom(marginIn).
					WithMarginLeft(marginIn).
					WithMarginRight(marginIn).
					WithPreferCSSPageSize(true).
					Do(ctx)
				return err
			}),
		)
		if err != nil {
			return fmt.Errorf("chromedp: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}
