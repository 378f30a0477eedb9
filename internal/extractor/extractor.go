// ABOUTME: Extraction pipeline: prompt, model call, JSON salvage and normalization.
// ABOUTME: Failures at any stage degrade to an empty record instead of an error.
package extractor

import (
	"context"
	"log/slog"
)

// Generator produces text for a prompt. inference.Client satisfies it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Extractor struct {
	gen    Generator
	logger *slog.Logger
}

func New(gen Generator, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{gen: gen, logger: logger}
}

// Extract runs raw text through the model and returns the normalized record.
func (e *Extractor) Extract(ctx context.Context, rawText string) Record {
	e.logger.Info("extracting workout data", "raw_len", len(rawText))

	text, err := e.gen.Generate(ctx, BuildPrompt(rawText))
	if err != nil {
		e.logger.Warn("model call failed", "error", err)
		text = ""
	}
	e.logger.Debug("model output", "text", text)

	raw, err := salvage(text)
	if err != nil {
		e.logger.Debug("no JSON object in model output", "error", err)
		raw = emptyRaw()
	}

	rec := Normalize(raw)

	e.logger.Info("extraction complete",
		"metrics", len(rec.Metrics),
		"exercises", len(rec.Exercises),
		"general_notes", len(rec.GeneralNotes),
	)
	return rec
}
