// Package ui prints the user-facing messages of a run: confirmations on
// stdout, problems on stderr. Styling is applied only when the target is a
// color-capable terminal.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#00875F", Dark: "#5FD787"}).
			Bold(true)
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}).
			Bold(true)
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD75F"})
	pathStyle = lipgloss.NewStyle().Underline(true)
)

// Printer writes run messages
type Printer struct {
	out    io.Writer
	errOut io.Writer
	styled bool
}

// NewPrinter creates a Printer. FormatAuto inspects out when it is a file.
func NewPrinter(out, errOut io.Writer, format Format) *Printer {
	if format == FormatAuto {
		format = FormatText
		if f, ok := out.(*os.File); ok {
			format = DetectFormat(f)
		}
	}
	return &Printer{out: out, errOut: errOut, styled: format == FormatTerminal}
}

// Success prints a confirmation to the standard output stream
func (p *Printer) Success(msg string) {
	if p.styled {
		fmt.Fprintf(p.out, "%s %s\n", successStyle.Render("✓"), msg)
		return
	}
	fmt.Fprintln(p.out, msg)
}

// Created confirms that path was written
func (p *Printer) Created(path string) {
	if p.styled {
		path = pathStyle.Render(path)
	}
	p.Success("created config file at " + path)
}

// Warn prints a warning to the error stream
func (p *Printer) Warn(msg string) {
	if p.styled {
		fmt.Fprintf(p.errOut, "%s %s\n", warnStyle.Render("⚠"), msg)
		return
	}
	fmt.Fprintf(p.errOut, "Warning: %s\n", msg)
}

// Error prints an error to the error stream
func (p *Printer) Error(msg string) {
	if p.styled {
		fmt.Fprintf(p.errOut, "%s %s\n", errorStyle.Render("✗ Error:"), msg)
		return
	}
	fmt.Fprintf(p.errOut, "Error: %s\n", msg)
}
