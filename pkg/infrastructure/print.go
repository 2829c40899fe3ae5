package infrastructure

import (
	"context"
	"log/slog"
	"os"
	"time"

	"resumatic/internal/domain"

	"github.com/google/uuid"
)

// Print parameters shared by every headless strategy: A4 portrait, 20mm
// margins, backgrounds on. Chrome takes inches.
const (
	a4WidthIn  = 8.27
	a4HeightIn = 11.69
	marginIn   = 20.0 / 25.4
)

var removeAll = os.RemoveAll

// withScratchDir runs fn with a fresh, uniquely named directory under base
// and removes it afterwards whatever fn returned. A failed removal is
// logged and never replaces fn's result.
func withScratchDir(base string, log *slog.Logger, fn func(dir string) error) error {
	if log == nil {
		log = slog.Default()
	}
	dir, err := os.MkdirTemp(base, "resume-"+uuid.NewString()+"-")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := removeAll(dir); rmErr != nil {
			f := domain.NewCleanupFailure(dir, rmErr)
			log.Warn("pdf.cleanup_failed", "kind", f.Kind, "path", dir, "error", f)
		}
	}()
	return fn(dir)
}

// renderContext bounds a render by d. A non-positive d leaves ctx as is
// so that a zero value never makes every render fail at once.
func renderContext(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
