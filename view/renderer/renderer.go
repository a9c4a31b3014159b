package renderer

import (
	"fmt"

	"github.com/boolean-maybe/structsearch/config"

	"github.com/charmbracelet/glamour"
)

// DefaultWordWrap is the column glamour wraps rendered markdown at.
const DefaultWordWrap = 80

// MarkdownRenderer turns markdown into terminal text (ANSI escapes allowed).
type MarkdownRenderer interface {
	Render(markdown string) (string, error)
}

// GlamourRenderer renders markdown with a glamour standard style.
type GlamourRenderer struct {
	term *glamour.TermRenderer
}

// NewGlamourRenderer creates a renderer styled for the effective theme.
func NewGlamourRenderer() (*GlamourRenderer, error) {
	return NewGlamourRendererWithStyle(config.GetEffectiveTheme(), DefaultWordWrap)
}

// NewGlamourRendererWithStyle creates a renderer for a named glamour style
// ("dark", "light", "notty", ...).
func NewGlamourRendererWithStyle(style string, wordWrap int) (*GlamourRenderer, error) {
	term, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return nil, fmt.Errorf("create glamour renderer: %w", err)
	}
	return &GlamourRenderer{term: term}, nil
}

// Render renders markdown to ANSI text
func (r *GlamourRenderer) Render(markdown string) (string, error) {
	out, err := r.term.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// FallbackRenderer returns markdown unchanged. Used when glamour cannot be
// initialized.
type FallbackRenderer struct{}

// Render returns the input as is
func (FallbackRenderer) Render(markdown string) (string, error) {
	return markdown, nil
}

// New returns a glamour renderer, or the fallback when glamour fails.
func New() MarkdownRenderer {
	r, err := NewGlamourRenderer()
	if err != nil {
		return FallbackRenderer{}
	}
	return r
}
