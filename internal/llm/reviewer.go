// Package llm renders review prompts and generates reviews through the
// configured language model.
package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sevigo/goframe/llms"

	"github.com/sevigo/diffwarden/internal/core"
)

// Reviewer turns a diff and its review options into a generated review.
type Reviewer struct {
	model   llms.Model
	prompts *PromptManager
	logger  *slog.Logger
}

// NewReviewer creates a Reviewer on top of a goframe model.
func NewReviewer(model llms.Model, prompts *PromptManager, logger *slog.Logger) *Reviewer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reviewer{model: model, prompts: prompts, logger: logger}
}

// Review renders the prompt for the requested template and calls the
// model once. There is no retry and no timeout here; the call runs to
// completion or fails with the provider error.
func (r *Reviewer) Review(ctx context.Context, diff string, opts core.ReviewOptions, repoCfg *core.RepoConfig) (string, error) {
	name := opts.Template
	if name != "" && !r.prompts.Has(name) {
		r.logger.Warn("unknown prompt template, falling back to default", "template", name)
	}

	data := PromptData{
		Diff:   diff,
		Focus:  opts.Focus,
		Ignore: opts.Ignore,
	}
	if repoCfg != nil {
		data.Instructions = repoCfg.CustomInstructions
	}

	prompt, err := r.prompts.Render(name, data)
	if err != nil {
		return "", err
	}

	r.logger.Info("requesting review from model", "template", templateLabel(name), "prompt_chars", len(prompt))
	response, err := r.model.Call(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("review generation failed: %w", err)
	}
	r.logger.Info("review generated", "chars", len(response))
	return response, nil
}

func templateLabel(name string) string {
	if name == "" {
		return DefaultTemplate
	}
	return name
}
