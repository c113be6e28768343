package ui

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders markdown with glamour for a terminal of the given
// width. The raw text is returned if rendering fails.
func RenderMarkdown(markdown string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}
