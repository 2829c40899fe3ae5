package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodRenderer is the go-rod implementation of the headless strategy. It
// honours the same print parameters as ChromedpRenderer.
type RodRenderer struct {
	BinPath string
	TempDir string
	Timeout time.Duration
	Log     *slog.Logger
}

func NewRodRenderer(binPath, tempDir string, timeout time.Duration, log *slog.Logger) *RodRenderer {
	return &RodRenderer{BinPath: binPath, TempDir: tempDir, Timeout: timeout, Log: log}
}

func (r *RodRenderer) Name() string { return "rod" }

func f64(v float64) *float64 { return &v }

func (r *RodRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	var pdfBuf []byte
	err := withScratchDir(r.TempDir, r.Log, func(dir string) error {
		htmlPath := filepath.Join(dir, "index.html")
		if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
			return err
		}

		runCtx, cancel := renderContext(ctx, r.Timeout)
		defer cancel()

		l := launcher.New().
			Context(runCtx).
			Headless(true).
			NoSandbox(true).
			UserDataDir(filepath.Join(dir, "profile"))
		if r.BinPath != "" {
			l = l.Bin(r.BinPath)
		}
		defer func() {
			l.Kill()
			l.Cleanup()
		}()

		u, err := l.Launch()
		if err != nil {
			return fmt.Errorf("rod: launch browser: %w", err)
		}

		browser := rod.New().ControlURL(u).Context(runCtx)
		if err := browser.Connect(); err != nil {
			return fmt.Errorf("rod: connect: %w", err)
		}
		defer browser.Close()

		p, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + htmlPath})
		if err != nil {
			return fmt.Errorf("rod: open page: %w", err)
		}
		if err := p.WaitLoad(); err != nil {
			return fmt.Errorf("rod: wait load: %w", err)
		}
		if _, err := p.Eval(`() => document.fonts.ready.then(() => true)`); err != nil {
			return fmt.Errorf("rod: wait fonts: %w", err)
		}

		rd, err := p.PDF(&proto.PagePrintToPDF{
			PrintBackground:   true,
			PaperWidth:        f64(a4WidthIn),
			PaperHeight:       f64(a4HeightIn),
			MarginTop:         f64(marginIn),
			MarginBottom:      f64(marginIn),
			MarginLeft:        f64(marginIn),
			MarginRight:       f64(marginIn),
			PreferCSSPageSize: true,
		})
		if err != nil {
			return fmt.Errorf("rod: print: %w", err)
		}
		pdfBuf, err = io.ReadAll(rd)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}
