package domain

import (
	"errors"
	"fmt"
)

// FailureKind classifies pipeline failures.
type FailureKind string

const (
	KindValidation FailureKind = "validation_failure"
	KindGeneration FailureKind = "generation_failure"
	KindPdfRender  FailureKind = "pdf_render_failure"
	KindCleanup    FailureKind = "cleanup_failure"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrGeneration = errors.New("resume generation failed")
	ErrPdfRender  = errors.New("pdf rendering failed")
	ErrCleanup    = errors.New("temporary file cleanup failed")

	// ErrLocked is returned when an export is attempted before unlock.
	ErrLocked = errors.New("resume is locked")
	// ErrNoResume is returned when a stage needs generated markup and there is none.
	ErrNoResume = errors.New("no resume generated yet")
	// ErrStaleSession is returned when a session is saved over a newer copy.
	ErrStaleSession = errors.New("session was changed by another request")
)

var kindSentinels = map[FailureKind]error{
	KindValidation: ErrValidation,
	KindGeneration: ErrGeneration,
	KindPdfRender:  ErrPdfRender,
	KindCleanup:    ErrCleanup,
}

// Failure is a classified pipeline error carrying a user-facing message.
type Failure struct {
	Kind    FailureKind
	Message string
	// Fields holds per-field messages for validation failures.
	Fields map[string]string
	Cause  error
}

func (f *Failure) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Cause)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error { return f.Cause }

// Is matches the sentinel error of the failure kind.
func (f *Failure) Is(target error) bool {
	return kindSentinels[f.Kind] == target
}

func NewValidationFailure(fields map[string]string) *Failure {
	return &Failure{Kind: KindValidation, Message: "Invalid form data.", Fields: fields}
}

func NewGenerationFailure(message string, cause error) *Failure {
	if message == "" {
		message = "AI failed to generate resume. Please try again."
	}
	return &Failure{Kind: KindGeneration, Message: message, Cause: cause}
}

func NewPdfRenderFailure(message string, cause error) *Failure {
	if message == "" {
		message = "PDF generation failed. Please try the HTML download."
	}
	return &Failure{Kind: KindPdfRender, Message: message, Cause: cause}
}

func NewCleanupFailure(path string, cause error) *Failure {
	return &Failure{Kind: KindCleanup, Message: "could not remove " + path, Cause: cause}
}

// AsFailure unwraps err into a *Failure if it holds one.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
