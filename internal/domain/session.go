package domain

import (
	"time"

	"github.com/google/uuid"
)

// PipelineInput is what the create-resume form submits.
type PipelineInput struct {
	JobDescription string `json:"jobDescription"`
	UserInput      string `json:"userInput"`
}

// Session holds the wizard state of one browser session. It is passed
// explicitly to every pipeline stage and saved back by the caller.
type Session struct {
	ID              uuid.UUID `json:"id"`
	JobDescription  string    `json:"job_description"`
	UserInput       string    `json:"user_input"`
	GeneratedMarkup string    `json:"generated_markup"`
	Unlocked        bool      `json:"unlocked"`
	// Version is bumped by the store on every save; a save carrying an
	// older version is refused.
	Version         int64     `json:"version"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewSession(now time.Time) *Session {
	return &Session{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// HasResume reports whether a resume was generated. An empty markup means
// "no resume yet".
func (s *Session) HasResume() bool { return s != nil && s.GeneratedMarkup != "" }

func (s *Session) SetInput(in PipelineInput) {
	s.JobDescription = in.JobDescription
	s.UserInput = in.UserInput
}

func (s *Session) Input() PipelineInput {
	return PipelineInput{JobDescription: s.JobDescription, UserInput: s.UserInput}
}

func (s *Session) SetGeneratedMarkup(markup string) { s.GeneratedMarkup = markup }

func (s *Session) SetUnlocked(v bool) { s.Unlocked = v }

// Reset clears the pipeline fields back to their initial values. Identity
// and timestamps are kept so the same cookie keeps working.
func (s *Session) Reset() {
	s.JobDescription = ""
	s.UserInput = ""
	s.GeneratedMarkup = ""
	s.Unlocked = false
}

// Clone returns an independent copy.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
