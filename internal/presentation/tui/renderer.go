package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// DefaultWordWrap is the column the recap is wrapped at.
const DefaultWordWrap = 80

// NewRenderer returns a function that renders markdown for the terminal.
// An empty style picks light or dark automatically; otherwise it names a
// glamour standard style such as "dark", "light" or "notty".
func NewRenderer(style string) (func(string) (string, error), error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(DefaultWordWrap)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render, nil
}
