// Package render turns Markdown responses into something a display surface
// can show: sanitized HTML for the web page, ANSI text for terminals.
package render

import (
	"bytes"
	"html/template"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/term"
)

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy   = bluemonday.UGCPolicy()
)

// HTML renders Markdown to sanitized HTML. If conversion fails the source is
// returned escaped inside a <pre> block.
func HTML(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(src) + "</pre>")
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}

// Terminal renders Markdown for terminal display
type Terminal struct {
	renderer *glamour.TermRenderer
}

// NewTerminal creates a Terminal wrapping at width columns. When the renderer
// cannot be created, Render returns its input unchanged.
func NewTerminal(width int) *Terminal {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return &Terminal{}
	}
	return &Terminal{renderer: r}
}

// Render returns the original content if rendering fails or the renderer is
// unavailable.
func (t *Terminal) Render(content string) string {
	if t == nil || t.renderer == nil {
		return content
	}
	rendered, err := t.renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsStdinTTY returns true if stdin is a terminal.
func IsStdinTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Terminal styles, in the page's accent colors.
var (
	accent = lipgloss.Color("#6c63ff")
	muted  = lipgloss.Color("#a0a0a0")

	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	PromptStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	MutedStyle   = lipgloss.NewStyle().Foreground(muted)
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0a800"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f"))
)
