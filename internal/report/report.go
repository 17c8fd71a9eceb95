// Package report formats finished reviews for the terminal or a file.
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const wrapWidth = 100

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Header renders the one-line banner above a review.
func Header(target, model string, cached bool) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Code Review"))
	b.WriteString("  ")
	b.WriteString(metaStyle.Render(fmt.Sprintf("target=%s model=%s", target, model)))
	if cached {
		b.WriteString("  ")
		b.WriteString(metaStyle.Render("(cached)"))
	}
	return b.String()
}

// Render converts the review markdown to styled terminal output. Any
// rendering failure falls back to the raw markdown; presentation never
// loses the review.
func Render(review string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return review
	}
	out, err := r.Render(review)
	if err != nil {
		return review
	}
	return out
}

// WriteFile writes the raw review markdown to path.
func WriteFile(path, review string) error {
	if err := os.WriteFile(path, []byte(review), 0o644); err != nil {
		return fmt.Errorf("writing review to %s: %w", path, err)
	}
	return nil
}
