package http

import (
	"log/slog"
	"time"

	"resumatic/internal/domain"
	"resumatic/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	SessionCookie   = "resumatic_session"
	sessionLocalKey = "session_id"

	routeExportHTML = "/api/export/html"
)

// SessionStore loads and saves wizard sessions by id. Get must return a
// copy the handler may mutate freely. Save must refuse a copy older than
// the stored one with domain.ErrStaleSession.
type SessionStore interface {
	Get(id uuid.UUID, now time.Time) (*domain.Session, bool)
	Save(s *domain.Session) error
}

type Handler struct {
	pipeline *usecase.Processor
	sessions SessionStore
	log      *slog.Logger
	now      func() time.Time
}

func NewHandler(p *usecase.Processor, sessions SessionStore, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{pipeline: p, sessions: sessions, log: log, now: time.Now}
}

// session loads the caller's session, starting a new one when the cookie
// is missing or points at an evicted session. The cookie carries no expiry
// so it lives as long as the browser session.
func (h *Handler) session(c *fiber.Ctx) *domain.Session {
	now := h.now()
	if id, err := uuid.Parse(c.Cookies(SessionCookie)); err == nil {
		if s, ok := h.sessions.Get(id, now); ok {
			c.Locals(sessionLocalKey, s.ID.String())
			return s
		}
	}
	s := domain.NewSession(now)
	if err := h.sessions.Save(s); err != nil {
		h.log.Warn("session.create_failed", "session_id", s.ID, "error", err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    s.ID.String(),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Locals(sessionLocalKey, s.ID.String())
	return s
}

// save writes s back. A stale save means another request changed the
// session meanwhile; its result stands and this one is reported as a
// conflict.
func (h *Handler) save(s *domain.Session) error {
	s.UpdatedAt = h.now()
	return h.sessions.Save(s)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

type sessionView struct {
	ID             string `json:"id"`
	JobDescription string `json:"jobDescription"`
	UserInput      string `json:"userInput"`
	HasResume      bool   `json:"hasResume"`
	MarkupLength   int    `json:"markupLength"`
	Unlocked       bool   `json:"unlocked"`
	PDFAvailable   bool   `json:"pdfAvailable"`
}

func (h *Handler) Session(c *fiber.Ctx) error {
	s := h.session(c)
	return c.JSON(sessionView{
		ID:             s.ID.String(),
		JobDescription: s.JobDescription,
		UserInput:      s.UserInput,
		HasResume:      s.HasResume(),
		MarkupLength:   len(s.GeneratedMarkup),
		Unlocked:       s.Unlocked,
		PDFAvailable:   h.pipeline.PDFAvailable(),
	})
}

func parseInput(c *fiber.Ctx) (domain.PipelineInput, bool) {
	var in domain.PipelineInput
	if err := c.BodyParser(&in); err != nil {
		return in, false
	}
	return in, true
}

func badPayload(c *fiber.Ctx) error {
	return respondError(c, fiber.StatusBadRequest, ErrorResponse{
		Error: ErrorBody{Code: "invalid_payload", Message: "Request body must be a JSON object."},
	})
}

func (h *Handler) CreateResume(c *fiber.Ctx) error {
	s := h.session(c)
	in, ok := parseInput(c)
	if !ok {
		return badPayload(c)
	}

	comp, err := h.pipeline.Submit(c.UserContext(), s, in)
	if err != nil {
		return h.writeError(c, err)
	}
	if err := h.save(s); err != nil {
		return h.writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"markup":          comp.Markup,
		"missingSections": comp.Missing,
		"next":            domain.StepPreview,
		"redirect":        domain.StepPreview.Path(),
	})
}

func (h *Handler) Autofill(c *fiber.Ctx) error {
	s := h.session(c)
	in, ok := parseInput(c)
	if !ok {
		return badPayload(c)
	}

	d, err := h.pipeline.Autofill(c.UserContext(), s, in)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(d)
}

func (h *Handler) Preview(c *fiber.Ctx) error {
	s := h.session(c)
	doc, err := h.pipeline.Preview(s)
	if err != nil {
		return h.writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, domain.ContentTypeHTML)
	return c.SendString(doc)
}

func (h *Handler) Navigate(c *fiber.Ctx) error {
	want, ok := domain.ParseStep(c.Params("step"))
	if !ok {
		return respondError(c, fiber.StatusNotFound, ErrorResponse{
			Error: ErrorBody{Code: "unknown_step", Message: "Unknown wizard step.", Details: c.Params("step")},
		})
	}
	s := h.session(c)
	got := h.pipeline.Navigate(s, want)
	return c.JSON(fiber.Map{
		"requested":  want,
		"step":       got,
		"path":       got.Path(),
		"redirected": got != want,
	})
}

func (h *Handler) Unlock(c *fiber.Ctx) error {
	s := h.session(c)
	already, err := h.pipeline.Unlock(c.UserContext(), s)
	if err != nil {
		return h.writeError(c, err)
	}
	if !already {
		if err := h.save(s); err != nil {
			return h.writeError(c, err)
		}
	}
	return c.JSON(fiber.Map{
		"unlocked":        true,
		"alreadyUnlocked": already,
		"next":            domain.StepDownload,
		"redirect":        domain.StepDownload.Path(),
	})
}

func (h *Handler) ExportHTML(c *fiber.Ctx) error {
	s := h.session(c)
	art, err := h.pipeline.ExportHTML(c.UserContext(), s)
	if err != nil {
		return h.writeError(c, err)
	}
	return sendArtifact(c, art, true)
}

func (h *Handler) ExportPDF(c *fiber.Ctx) error {
	s := h.session(c)
	art, err := h.pipeline.ExportPDF(c.UserContext(), s)
	if err != nil {
		return h.writeError(c, err)
	}
	return sendArtifact(c, art, true)
}

// ExportPrint serves the document inline so the browser opens it and
// shows the print dialog.
func (h *Handler) ExportPrint(c *fiber.Ctx) error {
	s := h.session(c)
	art, err := h.pipeline.ExportPrintable(c.UserContext(), s)
	if err != nil {
		return h.writeError(c, err)
	}
	return sendArtifact(c, art, false)
}

func (h *Handler) Reset(c *fiber.Ctx) error {
	s := h.session(c)
	h.pipeline.Reset(c.UserContext(), s)
	if err := h.save(s); err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"next":     domain.StepCreate,
		"redirect": domain.StepCreate.Path(),
	})
}

func sendArtifact(c *fiber.Ctx, art domain.ExportArtifact, download bool) error {
	if download {
		c.Attachment(art.FileName)
	}
	c.Set(fiber.HeaderContentType, art.ContentType)
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(art.Body)
}
