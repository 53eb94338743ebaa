// Package render formats assistant replies for terminal display.
package render

import "github.com/charmbracelet/glamour"

// Markdown renders markdown content for terminal display. On any rendering
// failure the raw content is returned unchanged; display formatting is never
// worth failing a reply over.
func Markdown(content string, width int) string {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}
