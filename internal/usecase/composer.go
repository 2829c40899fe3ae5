package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"resumatic/internal/domain"
	"resumatic/internal/markup"
	"resumatic/internal/model"
	ai "resumatic/pkg/ai"
	"resumatic/pkg/ai/prompts"
)

// TextGenerator is the generation backend: one prompt in, text out.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Composition is the result of a successful Compose.
type Composition struct {
	Markup string
	// Missing lists expected resume sections the backend left out.
	Missing []string
}

// AutofillDetails is supplementary history the backend invented.
type AutofillDetails struct {
	EducationDetails   string `json:"educationDetails"`
	WorkHistoryDetails string `json:"workHistoryDetails"`
}

// Composer builds prompts from the form input and turns backend replies
// into resume fragments. It does not validate input lengths.
type Composer struct {
	gen     TextGenerator
	timeout time.Duration
	strict  bool
	log     *slog.Logger
}

func NewComposer(gen TextGenerator, timeout time.Duration, strict bool, log *slog.Logger) *Composer {
	if log == nil {
		log = slog.Default()
	}
	return &Composer{gen: gen, timeout: timeout, strict: strict, log: log}
}

func (c *Composer) Compose(ctx context.Context, in domain.PipelineInput) (Composition, error) {
	prompt, err := prompts.Resume(prompts.Input{JobDescription: in.JobDescription, UserInput: in.UserInput})
	if err != nil {
		return Composition{}, domain.NewGenerationFailure("", err)
	}

	out, err := c.generate(ctx, prompt)
	if err != nil {
		return Composition{}, err
	}

	fragment := markup.Normalize(out)
	if fragment == "" {
		return Composition{}, domain.NewGenerationFailure("", ai.ErrEmptyOutput)
	}

	rep, err := model.CheckMarkup(fragment)
	if err != nil {
		return Composition{}, domain.NewGenerationFailure("", err)
	}
	if len(rep.DocumentTags) > 0 {
		return Composition{}, domain.NewGenerationFailure("", errors.New("fragment contains document tags"))
	}
	if len(rep.Missing) > 0 {
		c.log.Warn("compose.sections_missing", "missing", rep.Missing, "strict", c.strict)
		if c.strict {
			return Composition{}, domain.NewGenerationFailure("The generated resume was incomplete. Please try again.", errors.New("missing sections"))
		}
	}
	return Composition{Markup: fragment, Missing: rep.Missing}, nil
}

func (c *Composer) Autofill(ctx context.Context, in domain.PipelineInput) (AutofillDetails, error) {
	prompt, err := prompts.Autofill(prompts.Input{JobDescription: in.JobDescription, UserInput: in.UserInput})
	if err != nil {
		return AutofillDetails{}, domain.NewGenerationFailure("", err)
	}
	out, err := c.generate(ctx, prompt)
	if err != nil {
		return AutofillDetails{}, err
	}
	m, err := ai.ExtractJSONObject(out)
	if err != nil {
		return AutofillDetails{}, domain.NewGenerationFailure("", err)
	}
	if err := model.ValidateAutofill(m); err != nil {
		return AutofillDetails{}, domain.NewGenerationFailure("", err)
	}
	edu, _ := m["educationDetails"].(string)
	work, _ := m["workHistoryDetails"].(string)
	return AutofillDetails{EducationDetails: edu, WorkHistoryDetails: work}, nil
}

// generate makes the single bounded backend call.
func (c *Composer) generate(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	start := time.Now()
	out, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		c.log.Error("compose.backend_failed", "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", domain.NewGenerationFailure("Resume generation timed out. Please try again.", err)
		}
		return "", domain.NewGenerationFailure("", err)
	}
	return out, nil
}
