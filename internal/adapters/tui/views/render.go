package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"lcatrace/internal/adapters/tui/styles"
	"lcatrace/internal/ports"
)

// RenderHelpLine renders key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		help := b.Help()
		parts = append(parts, styles.HelpKey.Render(help.Key)+" "+styles.HelpDesc.Render(help.Desc))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderStatus joins status fields into one status bar
func RenderStatus(fields ...string) string {
	return styles.StatusBar.Render(strings.Join(fields, " • "))
}

// RenderWarnings lists up to limit data warnings, then a count of the rest
func RenderWarnings(warnings []ports.Warning, limit int) []string {
	if len(warnings) == 0 {
		return nil
	}

	lines := []string{styles.WarningMsg.Render(fmt.Sprintf("%d data warnings", len(warnings)))}
	for i, w := range warnings {
		if i == limit {
			lines = append(lines, styles.MutedText.Render(fmt.Sprintf("  … %d more", len(warnings)-limit)))
			break
		}
		lines = append(lines, styles.MutedText.Render(fmt.Sprintf("  %s %s: %s", w.Kind, w.Activity, w.Detail)))
	}
	return lines
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title section
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n\n")
	return v
}

// Subtitle adds a subtitle section
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle))
	v.b.WriteString("\n\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// Lines adds each text as its own line
func (v *ViewBuilder) Lines(texts []string) *ViewBuilder {
	for _, text := range texts {
		v.Line(text)
	}
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds muted text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	return v.Line(styles.MutedText.Render(text))
}

// Message adds a message if non-empty, with appropriate error/success styling
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString(RenderMessage(message, isError))
	v.b.WriteString("\n\n")
	return v
}

// Help adds a help line with key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// String returns the built view string wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
