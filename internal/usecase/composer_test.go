package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"resumatic/internal/domain"
)

func TestComposeReturnsFragment(t *testing.T) {
	gen := &fakeGenerator{out: "```html\n" + validFragment + "\n```"}
	c := NewComposer(gen, time.Second, false, discardLogger())

	comp, err := c.Compose(context.Background(), validInput)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	for _, tag := range []string{"<html", "<head", "<body", "<style", "```"} {
		if strings.Contains(comp.Markup, tag) {
			t.Errorf("markup contains %q", tag)
		}
	}
	if !strings.Contains(comp.Markup, `class="resume-header"`) {
		t.Errorf("markup lost its classes: %s", comp.Markup)
	}
	if len(comp.Missing) != 0 {
		t.Errorf("Missing = %v, want none", comp.Missing)
	}
	if gen.calls != 1 {
		t.Errorf("backend calls = %d, want 1", gen.calls)
	}
	if !strings.Contains(gen.prompts[0], validInput.UserInput) {
		t.Error("prompt does not embed the user input")
	}
}

func TestComposeStripsDocumentShell(t *testing.T) {
	raw := "<!DOCTYPE html><html><head><style>body{color:red}</style></head><body>" + validFragment + "</body></html>"
	c := NewComposer(&fakeGenerator{out: raw}, time.Second, false, discardLogger())

	comp, err := c.Compose(context.Background(), validInput)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if strings.Contains(comp.Markup, "<body") || strings.Contains(comp.Markup, "color:red") {
		t.Errorf("document shell survived: %s", comp.Markup)
	}
}

func TestComposeBackendError(t *testing.T) {
	c := NewComposer(&fakeGenerator{err: errBackend}, time.Second, false, discardLogger())

	_, err := c.Compose(context.Background(), validInput)
	if !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("err = %v, want generation failure", err)
	}
	if !errors.Is(err, errBackend) {
		t.Errorf("cause not preserved: %v", err)
	}
}

func TestComposeEmptyOutput(t *testing.T) {
	c := NewComposer(&fakeGenerator{out: "   "}, time.Second, false, discardLogger())

	if _, err := c.Compose(context.Background(), validInput); !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("err = %v, want generation failure", err)
	}
}

func TestComposeTimeout(t *testing.T) {
	c := NewComposer(&fakeGenerator{block: true}, 20*time.Millisecond, false, discardLogger())

	start := time.Now()
	_, err := c.Compose(context.Background(), validInput)
	if !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("err = %v, want generation failure", err)
	}
	f, _ := domain.AsFailure(err)
	if !strings.Contains(f.Message, "timed out") {
		t.Errorf("message = %q", f.Message)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("timeout was not applied")
	}
}

func TestComposeMissingSections(t *testing.T) {
	partial := `<div class="resume-header"><h1>Jane</h1></div>`

	lenient := NewComposer(&fakeGenerator{out: partial}, time.Second, false, discardLogger())
	comp, err := lenient.Compose(context.Background(), validInput)
	if err != nil {
		t.Fatalf("lenient Compose: %v", err)
	}
	if len(comp.Missing) == 0 {
		t.Error("expected missing sections to be reported")
	}

	strict := NewComposer(&fakeGenerator{out: partial}, time.Second, true, discardLogger())
	if _, err := strict.Compose(context.Background(), validInput); !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("strict err = %v, want generation failure", err)
	}
}

func TestAutofill(t *testing.T) {
	out := "Sure! ```json\n{\"educationDetails\": \"BSc, 2015\", \"workHistoryDetails\": \"Acme 2016-2020\"}\n```"
	c := NewComposer(&fakeGenerator{out: out}, time.Second, false, discardLogger())

	d, err := c.Autofill(context.Background(), validInput)
	if err != nil {
		t.Fatalf("Autofill: %v", err)
	}
	if d.EducationDetails != "BSc, 2015" || d.WorkHistoryDetails != "Acme 2016-2020" {
		t.Errorf("details = %+v", d)
	}
}

func TestAutofillRejectsIncompleteObject(t *testing.T) {
	c := NewComposer(&fakeGenerator{out: `{"educationDetails": "BSc"}`}, time.Second, false, discardLogger())

	if _, err := c.Autofill(context.Background(), validInput); !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("err = %v, want generation failure", err)
	}
}
