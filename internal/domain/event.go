package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stages recorded in the pipeline event log.
const (
	StageCompose    = "compose"
	StageAutofill   = "autofill"
	StageUnlock     = "unlock"
	StageExportHTML = "export_html"
	StageExportPDF  = "export_pdf"
	StageReset      = "reset"
)

// Event is one entry of the pipeline event log. It never carries the job
// description, the user's text or the generated markup.
type Event struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	Stage     string    `json:"stage"`
	Status    string    `json:"status"`
	Detail    string    `json:"detail,omitempty"`
	Bytes     int       `json:"bytes"`
	CreatedAt time.Time `json:"created_at"`
}
