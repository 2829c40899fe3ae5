package ai

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// Gemini generates text with Google's Gemini models through langchaingo.
type Gemini struct {
	model llms.Model
	log   *slog.Logger
}

func NewGemini(ctx context.Context, apiKey, model string, log *slog.Logger) (*Gemini, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Gemini{model: llm, log: log}, nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	out, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt)
	if err != nil {
		g.log.Error("ai.gemini.error", "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return "", err
	}
	g.log.Info("ai.gemini.done", "output_len", len(out), "elapsed_ms", time.Since(start).Milliseconds())
	if strings.TrimSpace(out) == "" {
		return "", ErrEmptyOutput
	}
	return out, nil
}
