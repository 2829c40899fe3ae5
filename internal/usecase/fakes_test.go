package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"resumatic/internal/domain"
)

const validFragment = `<div class="resume-header"><h1>Jane Doe</h1><p class="job-title">Backend Engineer</p></div>
<div class="resume-body">
<div class="resume-left-column">
<section class="contact-section"><h2>Contact</h2><p>jane@example.com</p></section>
<section class="education-section"><h2>Education</h2><p>BSc Computer Science</p></section>
<section class="skills-section"><h2>Skills</h2><ul><li>Go</li></ul></section>
</div>
<div class="resume-right-column">
<section class="profile-section"><h2>Profile</h2><p>Builds services.</p></section>
<section class="experience-section"><h2>Experience</h2><div class="experience-entry"><h3>Acme</h3></div></section>
</div>
</div>`

var validInput = domain.PipelineInput{
	JobDescription: strings.Repeat("Senior Go engineer for distributed systems. ", 2),
	UserInput:      "Five years of Go, Kafka and Postgres.",
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeGenerator struct {
	mu      sync.Mutex
	out     string
	err     error
	block   bool
	calls   int
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.out, f.err
}

type fakeRenderer struct {
	out   []byte
	err   error
	calls int
	last  string
}

func (f *fakeRenderer) RenderHTMLToPDF(_ context.Context, html string) ([]byte, error) {
	f.calls++
	f.last = html
	return f.out, f.err
}

type memEvents struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (m *memEvents) Record(_ context.Context, ev domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, ev)
	return nil
}

func (m *memEvents) stages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, ev := range m.events {
		out = append(out, ev.Stage+":"+ev.Status)
	}
	return out
}

var errBackend = errors.New("backend unavailable")

func fakePDF() []byte { return []byte("%PDF-1.7\n%fake\n%%EOF\n") }

func okVerify(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, errors.New("empty")
	}
	return 1, nil
}
