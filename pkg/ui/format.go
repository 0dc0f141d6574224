package ui

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/yaml2config/pkg/errors"
)

// Format selects how messages are printed
type Format int

const (
	// FormatAuto styles output only when it goes to a color terminal
	FormatAuto Format = iota
	// FormatTerminal always styles output
	FormatTerminal
	// FormatText never styles output
	FormatText
)

// FormatNames lists the names accepted by ParseFormat, canonical name first
var FormatNames = map[Format][]string{
	FormatAuto:     {"auto"},
	FormatTerminal: {"term", "terminal"},
	FormatText:     {"text", "plain"},
}

func (f Format) String() string {
	if names, ok := FormatNames[f]; ok {
		return names[0]
	}
	return "unknown"
}

// ParseFormat reads a format name as given on the command line. The empty
// string means auto.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return FormatAuto, nil
	}
	for _, f := range []Format{FormatAuto, FormatTerminal, FormatText} {
		for _, n := range FormatNames[f] {
			if n == name {
				return f, nil
			}
		}
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput,
		"unknown output format %q: use auto, term or text", s).
		WithDetail("format", s)
}

// DetectFormat picks FormatTerminal when output is a color-capable terminal
// and NO_COLOR is unset, FormatText otherwise.
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	fd := output.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return FormatText
	}
	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
