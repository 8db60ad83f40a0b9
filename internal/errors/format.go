package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-json-experiment/json"
)

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	codeStyle   = lipgloss.NewStyle().Bold(true)
	sourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	causeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
)

var colorEnabled = true

// DisableColors turns off styling in Format.
func DisableColors() {
	colorEnabled = false
}

// EnableColors turns styling back on.
func EnableColors() {
	colorEnabled = true
}

func paint(style lipgloss.Style, text string) string {
	if !colorEnabled {
		return text
	}
	return style.Render(text)
}

// Format returns a multi-line diagnostic for terminal display.
func (e *Diagnostic) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(paint(errorStyle, "ERROR"))
	if e.Code != "" {
		b.WriteString(" ")
		b.WriteString(paint(codeStyle, e.Code+":"))
	} else {
		b.WriteString(":")
	}
	b.WriteString(" ")
	b.WriteString(e.Message)
	b.WriteString("\n\n")

	if e.Source != "" {
		fmt.Fprintf(&b, "  %s\n\n", paint(sourceStyle, e.Source))
	}

	if e.Wrapped != nil && e.Wrapped.Error() != e.Message {
		fmt.Fprintf(&b, "  %s\n\n", paint(causeStyle, e.Wrapped.Error()))
	}

	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, 70) {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s %s\n", paint(hintStyle, "Hint:"), e.Suggestion)
	}

	return b.String()
}

// FormatCompact returns a compact single-line error format.
func (e *Diagnostic) FormatCompact() string {
	var b strings.Builder

	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)

	if e.Source != "" {
		b.WriteString(" (")
		b.WriteString(e.Source)
		b.WriteString(")")
	}

	return b.String()
}

// FormatJSON returns the error as a JSON object.
func (e *Diagnostic) FormatJSON() string {
	out := diagnosticJSON{
		Code:       e.Code,
		Category:   string(e.Category),
		Message:    e.Message,
		Detail:     e.Detail,
		Source:     e.Source,
		Suggestion: e.Suggestion,
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}
	b, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Message)
	}
	return string(b)
}

type diagnosticJSON struct {
	Code       string `json:"code,omitempty"`
	Category   string `json:"category"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	Source     string `json:"source,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Cause      string `json:"cause,omitempty"`
}

// wrapText wraps text to the specified width.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= width {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	var current strings.Builder

	for _, word := range words {
		if current.Len()+len(word)+1 > width {
			if current.Len() > 0 {
				lines = append(lines, current.String())
				current.Reset()
			}
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}

	return lines
}

// PrintError prints a formatted error to w.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprint(w, From(err).Format())
}
