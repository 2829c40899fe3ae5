// Command exportfragment runs a resume fragment through the export pipeline
// offline and writes the HTML and PDF artifacts to a directory. It is handy
// for checking print CSS and renderer setups without the wizard.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"resumatic/internal/config"
	"resumatic/internal/markup"
	"resumatic/internal/model"
	"resumatic/internal/style"
	"resumatic/internal/usecase"
	infra "resumatic/pkg/infrastructure"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	in := flag.String("in", "", "path to a generated resume fragment (required)")
	outDir := flag.String("out", "./out", "directory for the exported files")
	strategy := flag.String("strategy", cfg.PDFStrategy, "pdf strategy: chromedp, rod or print")
	chrome := flag.String("chrome", cfg.ChromePath, "browser binary (empty: auto-detect)")
	timeout := flag.Duration("timeout", cfg.PDFTimeout, "render timeout")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *timeout <= 0 {
		fmt.Fprintf(os.Stderr, "-timeout must be positive, got %s\n", *timeout)
		os.Exit(2)
	}
	log := cfg.Logger()

	raw, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read fragment: %v\n", err)
		os.Exit(2)
	}
	fragment := markup.Normalize(string(raw))
	if fragment == "" {
		fmt.Fprintln(os.Stderr, "fragment is empty after normalisation")
		os.Exit(1)
	}
	if rep, err := model.CheckMarkup(fragment); err == nil && !rep.OK() {
		fmt.Fprintf(os.Stderr, "warning: missing sections %v, document tags %v\n", rep.Missing, rep.DocumentTags)
	}

	renderer, err := infra.NewRenderer(infra.RendererOptions{
		Strategy: *strategy,
		BinPath:  *chrome,
		TempDir:  cfg.TempDir,
		Timeout:  *timeout,
		Log:      log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "renderer: %v\n", err)
		os.Exit(2)
	}
	exporter := usecase.NewExporter(renderer, infra.VerifyPDF, log)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create out dir: %v\n", err)
		os.Exit(1)
	}

	htmlArt, err := exporter.ExportHTML(fragment, style.CSS())
	if err != nil {
		fmt.Fprintf(os.Stderr, "export html: %v\n", err)
		os.Exit(1)
	}
	htmlPath := filepath.Join(*outDir, htmlArt.FileName)
	if err := os.WriteFile(htmlPath, htmlArt.Body, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write html: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d bytes)\n", htmlPath, len(htmlArt.Body))

	if !exporter.PDFAvailable() {
		printArt, err := exporter.ExportPrintable(fragment, style.CSS())
		if err != nil {
			fmt.Fprintf(os.Stderr, "export printable: %v\n", err)
			os.Exit(1)
		}
		printPath := filepath.Join(*outDir, "print.html")
		if err := os.WriteFile(printPath, printArt.Body, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write printable: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s; open it in a browser and save as PDF\n", printPath)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout+10*time.Second)
	defer cancel()
	start := time.Now()
	pdfArt, err := exporter.ExportPDF(ctx, fragment, style.CSS())
	if err != nil {
		fmt.Fprintf(os.Stderr, "export pdf: %v\n", err)
		os.Exit(1)
	}
	pdfPath := filepath.Join(*outDir, pdfArt.FileName)
	if err := os.WriteFile(pdfPath, pdfArt.Body, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write pdf: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d bytes, %s, %s)\n", pdfPath, len(pdfArt.Body), renderer.Name(), time.Since(start).Round(time.Millisecond))
}
