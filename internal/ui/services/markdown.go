// Package services holds rendering helpers used by the UI.
package services

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown for a terminal of the given width.
type MarkdownRenderer interface {
	Render(content string, width int) (string, error)
}

// GlamourRenderer renders markdown with glamour.
type GlamourRenderer struct {
	style string
}

// NewGlamourRenderer picks a style from the terminal background.
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{}
}

// NewGlamourRendererWithStyle uses a fixed standard style such as "dark" or "notty".
func NewGlamourRendererWithStyle(style string) *GlamourRenderer {
	return &GlamourRenderer{style: style}
}

func (g *GlamourRenderer) Render(content string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if g.style != "" {
		opts = append(opts, glamour.WithStandardStyle(g.style))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// RenderMarkdown renders content, clamping width to a sane minimum.
func RenderMarkdown(content string, width int, renderer MarkdownRenderer) (string, error) {
	if width < 20 {
		width = 80
	}
	return renderer.Render(content, width)
}
