package http

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the fiber application with middleware and every route.
// readTimeout bounds request bodies; handlers carry their own deadlines for
// generation and rendering.
func NewApp(h *Handler, log *slog.Logger, readTimeout time.Duration) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "resumatic",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
		ReadTimeout:           readTimeout,
	})

	app.Use(requestIDMiddleware())
	app.Use(requestLogger(log))
	app.Use(recover.New())

	h.Register(app)
	return app
}

func (h *Handler) Register(app *fiber.App) {
	app.Get("/healthz", h.Health)

	api := app.Group("/api")
	api.Get("/session", h.Session)
	api.Post("/resume", h.CreateResume)
	api.Post("/resume/autofill", h.Autofill)
	api.Get("/resume/preview", h.Preview)
	api.Get("/navigate/:step", h.Navigate)
	api.Post("/unlock", h.Unlock)
	api.Get("/export/html", h.ExportHTML)
	api.Get("/export/pdf", h.ExportPDF)
	api.Get("/export/print", h.ExportPrint)
	api.Post("/reset", h.Reset)
}
