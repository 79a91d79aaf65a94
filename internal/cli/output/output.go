// Package output renders command results in terminal, markdown, and JSON
// form. The auto mode picks styled text on a TTY and markdown when piped,
// keeping scripted and agent invocations parseable without flags.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode selects the output format.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Styles holds the lipgloss styles used across commands.
type Styles struct {
	Header  lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
}

func defaultStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header2: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	}
}

// Renderer writes command output in the effective mode.
type Renderer struct {
	out       io.Writer
	errOut    io.Writer
	effective Mode
	styles    Styles
}

// NewRenderer creates a renderer. ModeAuto (or an unrecognized mode) resolves
// to text when out is a terminal and markdown otherwise.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	effective := mode
	switch mode {
	case ModeText, ModeMarkdown, ModeJSON:
	default:
		effective = detectMode(out)
	}
	return &Renderer{
		out:       out,
		errOut:    errOut,
		effective: effective,
		styles:    defaultStyles(),
	}
}

// detectMode resolves ModeAuto based on whether out is a color-capable TTY.
func detectMode(out io.Writer) Mode {
	if f, ok := out.(*os.File); ok {
		if termenv.NewOutput(f).Profile != termenv.Ascii {
			return ModeText
		}
	}
	return ModeMarkdown
}

// EffectiveMode returns the resolved output mode.
func (r *Renderer) EffectiveMode() Mode { return r.effective }

// Writer returns the primary output writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the error output writer.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Styles returns the style set for styled text output.
func (r *Renderer) Styles() Styles { return r.styles }

// Println writes a line to the primary output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to the primary output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header writes a section header appropriate for the effective mode.
func (r *Renderer) Header(level int, text string) {
	if r.effective == ModeText {
		style := r.styles.Header
		if level > 1 {
			style = r.styles.Header2
		}
		r.Println(style.Render(text))
		return
	}
	r.Println(FormatHeader(level, text))
}

// Success writes a success line to the primary output.
func (r *Renderer) Success(msg string) {
	if r.effective == ModeText {
		r.Println(r.styles.Success.Render("✓ " + msg))
		return
	}
	r.Println("✓ " + msg)
}

// Errorf writes an error line to the error output.
func (r *Renderer) Errorf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if r.effective == ModeText {
		msg = r.styles.Error.Render(msg)
	}
	_, _ = fmt.Fprintln(r.errOut, msg)
}

// JSON writes v as indented JSON to the primary output.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatHeader renders a markdown header line.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue renders a markdown key-value bullet.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s**: %s", key, value)
}
