package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// DefaultWordWrap is used when a non-positive wrap width is given.
const DefaultWordWrap = 100

// Styles lists the glamour standard styles accepted by New.
var Styles = []string{"auto", "dark", "light", "dracula", "tokyo-night", "pink", "ascii", "notty"}

// Renderer turns Markdown into styled terminal output. It is a thin wrapper
// so the style and wrap width are chosen once and reused.
type Renderer struct {
	style string
	wrap  int
	tr    *glamour.TermRenderer
}

func New(style string, wrap int) (*Renderer, error) {
	if wrap <= 0 {
		wrap = DefaultWordWrap
	}
	if strings.TrimSpace(style) == "" {
		style = "dark"
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return &Renderer{style: style, wrap: wrap, tr: tr}, nil
}

// Style reports the glamour style in use.
func (r *Renderer) Style() string { return r.style }

// Wrap reports the word-wrap width in use.
func (r *Renderer) Wrap() int { return r.wrap }

// WithWrap returns a renderer with the same style and a new wrap width, or r
// itself if the width is unchanged.
func (r *Renderer) WithWrap(wrap int) (*Renderer, error) {
	if wrap == r.wrap {
		return r, nil
	}
	return New(r.style, wrap)
}

// Render renders md. Empty input renders to an empty string.
func (r *Renderer) Render(md string) (string, error) {
	if strings.TrimSpace(md) == "" {
		return "", nil
	}
	out, err := r.tr.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// Markdown renders s with the default dark style.
func Markdown(s string) (string, error) {
	r, err := New("dark", DefaultWordWrap)
	if err != nil {
		return "", err
	}
	return r.Render(s)
}
